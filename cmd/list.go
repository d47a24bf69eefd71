package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"nbgrade.dev/pkg/nbgrade/internal/domain"
)

const listLongDescription = `List discovered students and the notebooks and screenshots found for
each course activity.

` + submissionsHelp

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [submissions_dir]",
		Short: "List student submissions",
		Long:  listLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			course, err := loadCourse()
			if err != nil {
				return err
			}

			multi, err := cmd.Flags().GetBool(multiFlagName)
			if err != nil {
				return err
			}

			_, err = newWorkflow(cmd).List(cmd.Context(), domain.ListArgs{
				Course:       course,
				Submissions:  submissionsPath(args),
				MultiStudent: multi || viper.GetBool(multiConfigKey),
			})

			return err
		},
	}

	cmd.Flags().BoolP(multiFlagName, "m", false, "submissions directory holds one Name_ID folder per student")

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
