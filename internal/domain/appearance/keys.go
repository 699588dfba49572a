package appearance

// Settings keys consumed and produced by the engine.
const (
	// Background store.
	KeyPictureURI     = "picture-uri"
	KeyPictureURIDark = "picture-uri-dark"

	// Interface store.
	KeyColorScheme = "color-scheme"

	// User-theme store.
	KeyUserThemeName = "name"

	// Private store, alongside the ten per-mode parameter keys.
	KeyToggleShortcut = "dark-light-toggle"
)

// WallpaperKey returns the background-store key nominally owned by the
// given mode.
func WallpaperKey(m Mode) string {
	if m == ModeDark {
		return KeyPictureURIDark
	}
	return KeyPictureURI
}

// WallpaperKeyMode inverts WallpaperKey.
func WallpaperKeyMode(key string) (Mode, bool) {
	switch key {
	case KeyPictureURI:
		return ModeLight, true
	case KeyPictureURIDark:
		return ModeDark, true
	}
	return 0, false
}

// WallpaperKeys lists both background-store wallpaper keys.
func WallpaperKeys() []string {
	return []string{KeyPictureURI, KeyPictureURIDark}
}
