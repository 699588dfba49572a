package engine

import (
	"github.com/bnema/duotone/internal/application/port"
	"github.com/bnema/duotone/internal/domain/appearance"
)

// saveParameter persists a live theme-key change into the private store
// under the current mode. Changes caused by our own apply arrive while
// suspendSave is set and are ignored.
func (e *Engine) saveParameter(p appearance.Parameter) {
	if e.suspendSave {
		e.log.Debug().Str("parameter", p.String()).Msg("change caused by own apply, ignoring")
		return
	}
	if e.private == nil {
		return
	}
	var st port.SettingsStore = e.iface
	if p == appearance.ParamShellTheme {
		st = e.userTheme
		if st == nil {
			return
		}
	}

	value := st.String(p.LiveKey())
	if !appearance.ValidValue(value) {
		e.log.Warn().Str("parameter", p.String()).Int("len", len(value)).
			Msg("value too long, treating as absent and skipping save")
		return
	}

	mode := e.Mode()
	key := appearance.PrivateKey(mode, p)
	if e.private.String(key) == value {
		return
	}
	if err := e.private.SetString(key, value); err != nil {
		e.log.Warn().Err(err).Str("key", key).Msg("failed to persist parameter")
		return
	}
	e.log.Debug().Str("key", key).Str("value", value).Msg("parameter saved")
}

// applyCurrent re-applies the stored set for the mode derived right now.
func (e *Engine) applyCurrent() {
	if !e.started {
		return
	}
	e.ApplyMode(e.Mode())
}

// ApplyMode writes every stored parameter for mode into the live stores.
// Parameters with no stored value are skipped so the live setting is
// never clobbered with an empty one. suspendSave bounds the whole batch,
// including error paths, so none of our own writes is mistaken for a
// user save; writes are compared first, so a second immediate apply
// performs zero writes.
func (e *Engine) ApplyMode(mode appearance.Mode) {
	if e.private == nil {
		e.log.Debug().Msg("no private store, nothing to apply")
		return
	}
	e.log.Info().Stringer("mode", mode).Msg("applying stored appearance")

	e.suspendSave = true
	if e.cfg.Bidirectional {
		e.suspendApply = true
	}
	defer func() {
		e.suspendSave = false
		e.suspendApply = false
	}()

	for _, p := range appearance.Parameters() {
		e.applyParameter(mode, p)
	}
}

// applyParameter applies one stored parameter; failures are logged and
// do not abort the rest of the batch.
func (e *Engine) applyParameter(mode appearance.Mode, p appearance.Parameter) {
	stored := e.private.String(appearance.PrivateKey(mode, p))
	if stored == "" {
		e.log.Debug().Str("parameter", p.String()).Stringer("mode", mode).
			Msg("no managed value, leaving live setting untouched")
		return
	}
	if p == appearance.ParamShellTheme {
		if e.userTheme == nil {
			return
		}
		if stored == appearance.ShellThemeDefault {
			if e.userTheme.String(appearance.KeyUserThemeName) != "" {
				e.userTheme.Reset(appearance.KeyUserThemeName)
			}
			return
		}
		e.writeString(e.userTheme, appearance.KeyUserThemeName, stored)
		return
	}
	e.writeString(e.iface, p.LiveKey(), stored)
}

// onPrivateEdit mirrors a live edit of one private-store key into the
// corresponding live store, so edits show up without waiting for a mode
// switch. Only keys for the currently active mode are mirrored; changes
// caused by our own save arrive while suspendApply is set and are
// ignored.
func (e *Engine) onPrivateEdit(key string) {
	if e.suspendApply {
		e.log.Debug().Str("key", key).Msg("change caused by own save, ignoring")
		return
	}
	mode, p, ok := appearance.ParsePrivateKey(key)
	if !ok || mode != e.Mode() {
		return
	}
	value := e.private.String(key)
	if !appearance.ValidValue(value) {
		e.log.Warn().Str("key", key).Int("len", len(value)).Msg("value too long, not mirroring")
		return
	}

	e.suspendSave = true
	defer func() { e.suspendSave = false }()
	e.applyParameter(mode, p)
}
