package cmd

import (
	"github.com/spf13/cobra"

	"nbgrade.dev/pkg/nbgrade/internal/domain"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "View the latest recorded grading run",
		Long:  "View the most recent grading run of the course stored in the gradebook.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			course, err := loadCourse()
			if err != nil {
				return err
			}

			_, err = newWorkflow(cmd).View(cmd.Context(), domain.ViewArgs{
				Course:    course,
				Gradebook: gradebookArgs(),
			})

			return err
		},
	}
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
