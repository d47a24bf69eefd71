package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"nbgrade.dev/pkg/nbgrade/internal/domain"
)

var (
	multiFlag    bool
	verboseFlag  bool
	diffFlag     bool
	parallelFlag int
)

const gradeLongDescription = `Grade every notebook submission and write the grade reports.

` + submissionsHelp

// gradeCmd represents the grade command.
var gradeCmd = newGradeCmd()

func newGradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grade [submissions_dir]",
		Short: "Grade notebook submissions",
		Long:  gradeLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			course, err := loadCourse()
			if err != nil {
				return err
			}

			_, err = newWorkflow(cmd).Grade(cmd.Context(), domain.GradeArgs{
				Course:       course,
				Submissions:  submissionsPath(args),
				MultiStudent: viper.GetBool(multiConfigKey),
				Verbose:      viper.GetBool(verboseConfigKey),
				ShowDiff:     viper.GetBool(diffConfigKey),
				Threads:      viper.GetInt(parallelConfigKey),
				Gradebook:    gradebookArgs(),
			})

			return err
		},
	}

	configureGradeFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(gradeCmd)
}

func configureGradeFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&multiFlag, multiFlagName, "m", false, "submissions directory holds one Name_ID folder per student")
	bindFlagToConfig(cmd.Flags().Lookup(multiFlagName), multiConfigKey)

	cmd.Flags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "add code/raw breakdown and missed cells to reports")
	bindFlagToConfig(cmd.Flags().Lookup(verboseFlagName), verboseConfigKey)

	cmd.Flags().BoolVar(&diffFlag, diffFlagName, false, "show changes against previously written reports")
	bindFlagToConfig(cmd.Flags().Lookup(diffFlagName), diffConfigKey)

	cmd.Flags().IntVarP(&parallelFlag, parallelFlagName, "p", defaultParallel, "number of students graded in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)
}
