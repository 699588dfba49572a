package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bnema/duotone/internal/application/port"
	"github.com/bnema/duotone/internal/domain/appearance"
	"github.com/bnema/duotone/internal/infrastructure/gsettings"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active mode and both saved appearance sets",
		RunE: func(_ *cobra.Command, _ []string) error {
			_, cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			provider := gsettings.NewProvider(logger)
			iface, err := provider.Open(cfg.Schemas.Interface)
			if err != nil {
				return err
			}
			background, err := provider.Open(cfg.Schemas.Background)
			if err != nil {
				return err
			}
			private, havePrivate := provider.OpenOptional(cfg.Schemas.Private)

			fmt.Println(renderStatus(iface, background, private, havePrivate))
			return nil
		},
	}
}

func renderStatus(iface, background, private port.SettingsStore, havePrivate bool) string {
	theme := newStatusTheme()
	active := appearance.ModeFromColorScheme(iface.String(appearance.KeyColorScheme))

	badge := theme.LightMode
	if active == appearance.ModeDark {
		badge = theme.DarkMode
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("duotone"))
	b.WriteString("  ")
	b.WriteString(badge.Render(active.String() + " mode"))
	b.WriteString("\n\n")

	sections := make([]string, 0, 2)
	for _, mode := range appearance.Modes() {
		sections = append(sections, renderModeSection(theme, mode, mode == active, background, private, havePrivate))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sections[0], " ", sections[1]))
	return b.String()
}

func renderModeSection(theme statusTheme, mode appearance.Mode, active bool, background, private port.SettingsStore, havePrivate bool) string {
	header := theme.Section.Render(strings.ToUpper(mode.String()))
	if active {
		header += theme.Muted.Render("  (active)")
	}

	lines := []string{header, ""}
	lines = append(lines, statusLine(theme, "wallpaper", background.String(appearance.WallpaperKey(mode))))

	if havePrivate {
		for _, p := range appearance.Parameters() {
			lines = append(lines, statusLine(theme, p.String(), private.String(appearance.PrivateKey(mode, p))))
		}
	} else {
		lines = append(lines, theme.Muted.Render("private schema not installed"))
	}

	return theme.Box.Render(strings.Join(lines, "\n"))
}

func statusLine(theme statusTheme, key, value string) string {
	if value == "" {
		return theme.Key.Render(key) + theme.Muted.Render("(unset)")
	}
	return theme.Key.Render(key) + theme.Value.Render(value)
}
