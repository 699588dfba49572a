// Package cli provides the duotone command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/duotone/internal/domain/build"
)

// NewRootCmd creates the root command for duotone.
func NewRootCmd(info build.Info) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "duotone",
		Short: "Per-mode appearance sync for light and dark desktops",
		Long: `duotone keeps two independent sets of desktop-appearance settings,
one per light/dark mode (including two independent wallpapers), and
re-applies the right set whenever the active mode changes.

Run the daemon with 'duotone run'; flip modes with 'duotone toggle'.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s, %s)", info.Version, info.Commit, info.BuildDate, info.GoVersion),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newToggleCmd(),
		newApplyCmd(),
		newStatusCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

// Execute runs the CLI and exits non-zero on error.
func Execute(info build.Info) {
	if err := NewRootCmd(info).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
