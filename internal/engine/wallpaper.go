package engine

import (
	"path/filepath"
	"strings"

	"github.com/bnema/duotone/internal/domain/appearance"
)

// processWallpaperChange runs at debounce-fire time for one wallpaper
// key. It re-reads the current value rather than using a snapshot, so
// intermediate values inside the quiet window are dropped.
func (e *Engine) processWallpaperChange(key string) {
	if !e.started {
		return
	}
	keyMode, ok := appearance.WallpaperKeyMode(key)
	if !ok {
		return
	}
	uri := e.background.String(key)
	active := e.Mode()
	class := appearance.ClassifyWallpaper(uri)
	e.log.Debug().Str("key", key).Str("uri", uri).
		Stringer("class", class).Stringer("mode", active).
		Msg("wallpaper change")

	switch class {
	case appearance.WallpaperSpecial:
		e.reconcileSpecial(key, keyMode, uri, active)
	case appearance.WallpaperPaired:
		// Deliberately chosen for the key's own mode; trust it as-is.
		e.wallpapers[keyMode] = uri
	default:
		if keyMode != active {
			// Interactive changes only ever target the active mode's
			// key, so a plain write to the inactive key is an echo or an
			// accident. Undo it.
			e.revertWallpaper(key, keyMode, uri)
			return
		}
		e.wallpapers[active] = uri
	}
}

// revertWallpaper points key back at the cached URI for its own mode.
// With no cached value there is nothing to restore, so the value is
// adopted instead of blanking the key.
func (e *Engine) revertWallpaper(key string, keyMode appearance.Mode, uri string) {
	cached := e.wallpapers[keyMode]
	if cached == "" || cached == uri {
		e.wallpapers[keyMode] = uri
		return
	}
	e.log.Info().Str("key", key).Str("uri", uri).Str("restored", cached).
		Msg("reverting wallpaper write to inactive mode key")
	e.writeString(e.background, key, cached)
}

// reconcileSpecial handles writes of the conventional mode-less
// background file that external tools produce.
//
// A write through the key NOT matching the active mode carries the
// wallpaper the user just picked, so it is promoted: the conventional
// file is copied to a mode-suffixed sibling and the ACTIVE mode's key is
// pointed at the copy. A write through the active mode's own key is
// spurious (the promotion already happened, or will) and is reverted.
// Copy and key update commit together or not at all.
func (e *Engine) reconcileSpecial(key string, keyMode appearance.Mode, uri string, active appearance.Mode) {
	matchesActive := keyMode == active
	if matchesActive {
		e.revertWallpaper(key, keyMode, uri)
		return
	}

	src := appearance.URIToPath(uri)
	ext := filepath.Ext(src)
	if ext == "" {
		ext = ".png"
	}
	dst := strings.TrimSuffix(src, filepath.Ext(src)) + "-" + active.String() + ext

	exists, err := e.fs.Exists(e.ctx, src)
	if err != nil {
		e.log.Warn().Err(err).Str("path", src).Msg("cannot stat conventional background file")
		return
	}
	if !exists {
		e.log.Debug().Str("path", src).Msg("conventional background file missing, skipping")
		return
	}
	if err := e.fs.Copy(e.ctx, src, dst); err != nil {
		e.log.Warn().Err(err).Str("src", src).Str("dst", dst).
			Msg("background copy failed, abandoning promotion")
		return
	}

	promoted := appearance.PathToURI(dst)
	e.writeString(e.background, appearance.WallpaperKey(active), promoted)
	e.wallpapers[active] = promoted
	e.log.Info().Str("uri", promoted).Stringer("mode", active).
		Msg("promoted conventional background file")
}
