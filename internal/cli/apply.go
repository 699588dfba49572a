package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/duotone/internal/domain/appearance"
	"github.com/bnema/duotone/internal/engine"
	"github.com/bnema/duotone/internal/infrastructure/filesystem"
	"github.com/bnema/duotone/internal/infrastructure/gsettings"
)

func newApplyCmd() *cobra.Command {
	var modeFlag string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a mode's saved appearance set once and exit",
		Long: `Apply the saved theme parameters and wallpaper for a mode, then
exit. With no --mode, re-applies the currently active mode's set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			eng := engine.New(engine.Deps{
				Stores:     gsettings.NewProvider(logger),
				FS:         filesystem.New(),
				Dispatcher: inlineDispatcher{},
				Logger:     logger,
				Config:     engineConfig(cfg),
			})
			if err := eng.Start(cmd.Context()); err != nil {
				return err
			}
			defer eng.Stop()

			mode := eng.Mode()
			switch modeFlag {
			case "":
			case "light":
				mode = appearance.ModeLight
			case "dark":
				mode = appearance.ModeDark
			default:
				return fmt.Errorf("invalid mode %q (want light or dark)", modeFlag)
			}

			eng.SwitchTo(mode)
			eng.ApplyMode(mode)
			gsettings.Sync()
			fmt.Printf("Applied %s appearance set\n", mode)
			return nil
		},
	}

	cmd.Flags().StringVar(&modeFlag, "mode", "", "mode to apply: light or dark (default: active mode)")
	return cmd
}
