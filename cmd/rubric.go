package cmd

import (
	"github.com/spf13/cobra"

	"nbgrade.dev/pkg/nbgrade/internal/domain"
)

// rubricCmd represents the rubric command.
var rubricCmd = newRubricCmd()

func newRubricCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rubric [asset_id]",
		Short: "Show the course rubric",
		Long:  "Show the sections and expected points of every course activity, or of one activity.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			course, err := loadCourse()
			if err != nil {
				return err
			}

			rubricArgs := domain.RubricArgs{Course: course}
			if len(args) == 1 {
				rubricArgs.AssetID = args[0]
			}

			return newWorkflow(cmd).Rubric(cmd.Context(), rubricArgs)
		},
	}
}

func init() {
	rootCmd.AddCommand(rubricCmd)
}
