// Package cmd provides the root command and CLI setup for nbgrade.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"nbgrade.dev/pkg/nbgrade/internal/adapter"
	"nbgrade.dev/pkg/nbgrade/internal/controller"
	"nbgrade.dev/pkg/nbgrade/internal/domain"
	m "nbgrade.dev/pkg/nbgrade/internal/model"
)

var submissionFS adapter.SubmissionFSAdapter
var reportStore adapter.ReportStore
var gradebooks adapter.GradebookOpener
var courseLoader adapter.CourseLoader
var grader domain.Grader

var (
	coursePathFlag      string
	logPathFlag         string
	debugFlag           bool
	gradebookDriverFlag string
	gradebookDSNFlag    string
	noGradebookFlag     bool
	plainFlag           bool
)

func init() {
	submissionFS = adapter.NewLocalSubmissionFSAdapter()
	reportStore = adapter.NewReportStore()
	gradebooks = adapter.NewSQLGradebookOpener()
	courseLoader = adapter.NewYAMLCourseLoader()
	grader = domain.NewGrader()
}

const rootLongDescription = `nbgrade grades Jupyter notebook submissions against a course rubric.

Each notebook section is scored by the code cells that were executed and
the raw answer cells that were filled in. Reports are written per student
together with a combined report and a CSV class summary.`

const submissionsHelp = `The submissions directory either holds one folder per student named
Name_ID (use --multi) or is itself a single student download.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "nbgrade",
		Short:         "Jupyter notebook rubric grader",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVar(&coursePathFlag, courseFlagName, "", "course YAML file (default: embedded GL4U RNAseq course)")
	bindFlagToConfig(flags.Lookup(courseFlagName), courseConfigKey)

	flags.StringVar(&logPathFlag, logFlagName, defaultLogFilename, "log file path")
	bindFlagToConfig(flags.Lookup(logFlagName), logFilenameKey)

	flags.BoolVar(&debugFlag, debugFlagName, defaultLogVerbose, "log at debug level")
	bindFlagToConfig(flags.Lookup(debugFlagName), logVerboseKey)

	flags.StringVar(&gradebookDriverFlag, gradebookDriverFlagName, defaultGradebookDriver, "gradebook driver: sqlite or postgres")
	bindFlagToConfig(flags.Lookup(gradebookDriverFlagName), gradebookDriverKey)

	flags.StringVar(&gradebookDSNFlag, gradebookDSNFlagName, "", "gradebook data source name")
	bindFlagToConfig(flags.Lookup(gradebookDSNFlagName), gradebookDSNKey)

	flags.BoolVar(&noGradebookFlag, noGradebookFlagName, false, "do not record grading runs")
	bindFlagToConfig(flags.Lookup(noGradebookFlagName), gradebookDisabledKey)

	flags.BoolVar(&plainFlag, plainFlagName, false, "plain output even on a terminal")
	bindFlagToConfig(flags.Lookup(plainFlagName), uiPlainKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// newWorkflow builds a workflow whose output goes to cmd.
func newWorkflow(cmd *cobra.Command) domain.Workflow {
	return domain.NewWorkflow(
		submissionFS,
		reportStore,
		gradebooks,
		controller.NewUI(cmd, !viper.GetBool(uiPlainKey)),
		grader,
	)
}

func loadCourse() (m.Course, error) {
	course, err := courseLoader.LoadCourse(m.Path(viper.GetString(courseConfigKey)))
	if err != nil {
		return m.Course{}, fmt.Errorf("load course: %w", err)
	}

	return course, nil
}

func gradebookArgs() domain.GradebookArgs {
	return domain.GradebookArgs{
		Disabled: viper.GetBool(gradebookDisabledKey),
		Driver:   adapter.GradebookDriver(viper.GetString(gradebookDriverKey)),
		DSN:      viper.GetString(gradebookDSNKey),
	}
}

func submissionsPath(args []string) m.Path {
	if len(args) == 0 {
		return m.Path(".")
	}

	return m.Path(args[0])
}
