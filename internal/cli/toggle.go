package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/duotone/internal/domain/appearance"
	"github.com/bnema/duotone/internal/infrastructure/dbusaction"
	"github.com/bnema/duotone/internal/infrastructure/gsettings"
)

func newToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark mode",
		Long: `Ask the running daemon to flip the active mode. When no daemon is
running, flips the color-scheme key directly; the next daemon start
will reconcile the rest.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
			defer cancel()

			if err := dbusaction.Toggle(ctx); err == nil {
				return nil
			}

			// No daemon on the bus: flip the key ourselves.
			_, cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := gsettings.NewProvider(logger).Open(cfg.Schemas.Interface)
			if err != nil {
				return err
			}
			mode := appearance.ModeFromColorScheme(store.String(appearance.KeyColorScheme))
			next := appearance.ColorSchemeDefault
			if mode.Opposite() == appearance.ModeDark {
				next = appearance.ColorSchemePreferDark
			}
			if err := store.SetString(appearance.KeyColorScheme, next); err != nil {
				return err
			}
			gsettings.Sync()
			fmt.Printf("Switched to %s mode\n", mode.Opposite())
			return nil
		},
	}
}
