package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

const unknownBuild = "(devel)"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print nbgrade build details",
		Long:  "Prints the nbgrade module version, the VCS revision it was built from and the Go toolchain.",
		Run: func(cmd *cobra.Command, _ []string) {
			version, revision, goVersion := buildDetails()

			cmd.Printf("nbgrade %s\n", version)
			cmd.Printf("revision: %s\n", revision)
			cmd.Printf("go: %s\n", goVersion)
		},
	}
}

// buildDetails reads the embedded build info, falling back to "(devel)"
// for anything the binary does not carry.
func buildDetails() (version, revision, goVersion string) {
	version, revision, goVersion = unknownBuild, unknownBuild, unknownBuild

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version, revision, goVersion
	}

	if info.Main.Version != "" {
		version = info.Main.Version
	}

	if info.GoVersion != "" {
		goVersion = info.GoVersion
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && setting.Value != "" {
			revision = setting.Value
		}
	}

	return version, revision, goVersion
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
}
