package appearance

import (
	"path"
	"strings"
)

// WallpaperClass partitions wallpaper URIs by how the engine may treat
// them.
type WallpaperClass int

const (
	// WallpaperPlain is anything else: possibly an accidental or echoed
	// write to the wrong mode's key, subject to reconciliation.
	WallpaperPlain WallpaperClass = iota

	// WallpaperPaired names its mode by filename convention (or is a
	// dynamic .xml descriptor). Chosen deliberately, never overwritten.
	WallpaperPaired

	// WallpaperSpecial is the conventional mode-less background file that
	// external tools write, requiring the reconciliation protocol.
	WallpaperSpecial
)

// specialSegment marks the conventional background file GNOME tools write
// when the user picks a wallpaper.
const specialSegment = "/.config/background"

// fileURIPrefix on wallpaper URIs as written by gnome-control-center.
const fileURIPrefix = "file://"

// pairedSuffixes are the filename-stem suffixes that mark a wallpaper as
// deliberately chosen for one mode.
var pairedSuffixes = []string{"-l", "-d", "-light", "-dark", "-day", "-night"}

func (c WallpaperClass) String() string {
	switch c {
	case WallpaperPaired:
		return "paired"
	case WallpaperSpecial:
		return "special"
	}
	return "plain"
}

// ClassifyWallpaper classifies a wallpaper URI. Special wins over Paired,
// so the conventional file keeps its reconciliation semantics even when a
// mode-suffixed copy of it is classified Special too; the engine's revert
// branch converges on those.
func ClassifyWallpaper(uri string) WallpaperClass {
	if strings.Contains(uri, specialSegment) {
		return WallpaperSpecial
	}
	base := path.Base(strings.TrimPrefix(uri, fileURIPrefix))
	ext := path.Ext(base)
	if ext == ".xml" {
		// Dynamic wallpaper descriptor, exempt from mode promotion.
		return WallpaperPaired
	}
	if ext != "" {
		stem := strings.TrimSuffix(base, ext)
		for _, s := range pairedSuffixes {
			if strings.HasSuffix(stem, s) {
				return WallpaperPaired
			}
		}
	}
	return WallpaperPlain
}

// URIToPath strips the file:// prefix from a wallpaper URI. URIs without
// the prefix are returned unchanged; the background keys only ever hold
// local paths in practice.
func URIToPath(uri string) string {
	return strings.TrimPrefix(uri, fileURIPrefix)
}

// PathToURI is the inverse of URIToPath.
func PathToURI(p string) string {
	if strings.HasPrefix(p, fileURIPrefix) {
		return p
	}
	return fileURIPrefix + p
}
