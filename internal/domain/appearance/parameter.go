package appearance

import "strings"

// Parameter is one of the five managed theme parameters.
type Parameter int

const (
	ParamGtkTheme Parameter = iota
	ParamIconTheme
	ParamCursorTheme
	ParamAccentColor
	ParamShellTheme
)

// maxValueLen bounds stored parameter values; anything longer is treated
// as absent rather than an error.
const maxValueLen = 100

// ShellThemeDefault is the sentinel meaning "reset the shell theme to the
// built-in default" instead of writing a theme name.
const ShellThemeDefault = "Default"

func (p Parameter) String() string {
	switch p {
	case ParamGtkTheme:
		return "gtk-theme"
	case ParamIconTheme:
		return "icon-theme"
	case ParamCursorTheme:
		return "cursor-theme"
	case ParamAccentColor:
		return "accent-color"
	case ParamShellTheme:
		return "shell-theme"
	}
	return "unknown"
}

// Parameters lists all managed parameters in apply order.
func Parameters() []Parameter {
	return []Parameter{
		ParamGtkTheme,
		ParamIconTheme,
		ParamCursorTheme,
		ParamAccentColor,
		ParamShellTheme,
	}
}

// LiveKey returns the key the parameter lives under in its live store:
// the interface store for all parameters except the shell theme, which
// lives under "name" in the user-theme store.
func (p Parameter) LiveKey() string {
	if p == ParamShellTheme {
		return KeyUserThemeName
	}
	return p.String()
}

// PrivateKey returns the private-store key holding the managed value for
// the given mode, e.g. "dark-gtk-theme".
func PrivateKey(m Mode, p Parameter) string {
	return m.String() + "-" + p.String()
}

// ParsePrivateKey inverts PrivateKey. Returns false for keys that are not
// per-mode parameter keys (such as the toggle-shortcut key).
func ParsePrivateKey(key string) (Mode, Parameter, bool) {
	var m Mode
	var rest string
	switch {
	case strings.HasPrefix(key, "light-"):
		m, rest = ModeLight, strings.TrimPrefix(key, "light-")
	case strings.HasPrefix(key, "dark-"):
		m, rest = ModeDark, strings.TrimPrefix(key, "dark-")
	default:
		return 0, 0, false
	}
	for _, p := range Parameters() {
		if p.String() == rest {
			return m, p, true
		}
	}
	return 0, 0, false
}

// ValidValue reports whether a value read from a live store is safe to
// persist. Oversized values are classified invalid and the caller skips
// the save with a warning.
func ValidValue(v string) bool {
	return len(v) <= maxValueLen
}
