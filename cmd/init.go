package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"nbgrade.dev/pkg/nbgrade/internal/adapter"
)

const courseTemplateFlagName = "course-template"

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default nbgrade.yaml configuration file",
		Long: `Create an nbgrade.yaml in the current working directory populated with the
current CLI defaults so it can be edited manually. With --course-template the
built-in course is also written out as a starting point for a custom course.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			err := viper.SafeWriteConfigAs(targetPath)
			if err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			templatePath, err := cmd.Flags().GetString(courseTemplateFlagName)
			if err != nil || templatePath == "" {
				return err
			}

			return writeCourseTemplate(templatePath)
		},
	}

	cmd.Flags().String(courseTemplateFlagName, "", "also write the built-in course YAML to this path")

	return cmd
}

func writeCourseTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("course template %s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("check course template: %w", err)
	}

	if err := os.WriteFile(path, adapter.DefaultCourseYAML(), 0o600); err != nil {
		return fmt.Errorf("write course template: %w", err)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
