// Package appearance holds the pure appearance-domain types: modes,
// theme parameters, settings key naming, and wallpaper classification.
package appearance

import "strings"

// Mode is the active appearance mode. It is never stored anywhere; it is
// derived from the interface store's color-scheme string at every decision
// point so a stale cached mode can never leak into a decision.
type Mode int

const (
	ModeLight Mode = iota
	ModeDark
)

// Color-scheme values written by the toggle action.
const (
	ColorSchemeDefault    = "default"
	ColorSchemePreferDark = "prefer-dark"
)

func (m Mode) String() string {
	if m == ModeDark {
		return "dark"
	}
	return "light"
}

// Opposite returns the other mode.
func (m Mode) Opposite() Mode {
	if m == ModeDark {
		return ModeLight
	}
	return ModeDark
}

// ModeFromColorScheme derives the mode from a color-scheme preference
// string. Dark iff the string contains "dark" (case-sensitive), which
// covers both "prefer-dark" and vendor variants like "gtk-dark".
func ModeFromColorScheme(scheme string) Mode {
	if strings.Contains(scheme, "dark") {
		return ModeDark
	}
	return ModeLight
}

// Modes lists both modes, light first.
func Modes() []Mode {
	return []Mode{ModeLight, ModeDark}
}
