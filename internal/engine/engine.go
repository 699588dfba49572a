// Package engine implements the appearance synchronization engine: it
// keeps one set of theme parameters and one wallpaper per mode, and
// re-applies the right set whenever the active mode changes.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/duotone/internal/application/port"
	"github.com/bnema/duotone/internal/debounce"
	"github.com/bnema/duotone/internal/domain/appearance"
)

// Config selects the schemas the engine binds to and tunes its behavior.
type Config struct {
	BackgroundSchema string
	InterfaceSchema  string
	UserThemeSchema  string
	PrivateSchema    string

	// DebounceDelay is the quiet period for wallpaper-key notifications.
	// No other key class is debounced.
	DebounceDelay time.Duration

	// Bidirectional mirrors live edits of the private store straight into
	// the live stores instead of waiting for the next mode switch.
	Bidirectional bool
}

// DefaultConfig returns the GNOME schema ids and a 50 ms debounce.
func DefaultConfig() Config {
	return Config{
		BackgroundSchema: "org.gnome.desktop.background",
		InterfaceSchema:  "org.gnome.desktop.interface",
		UserThemeSchema:  "org.gnome.shell.extensions.user-theme",
		PrivateSchema:    "com.github.bnema.duotone",
		DebounceDelay:    50 * time.Millisecond,
		Bidirectional:    true,
	}
}

// Deps carries the injected collaborators. Publisher may be nil.
type Deps struct {
	Stores     port.StoreProvider
	FS         port.FileSystem
	Dispatcher port.Dispatcher
	Publisher  port.AccelPublisher
	Logger     zerolog.Logger
	Config     Config
}

// Engine is the synchronization state machine. It owns all decision
// logic and all mutable state: the per-mode wallpaper cache, the pending
// debounce timers, and the two suspend flags.
//
// The engine is single-threaded by contract: every entry point runs in
// the dispatcher context. Reentrancy (a settings write made inside a
// handler synchronously triggering another handler) is absorbed by the
// suspend flags, not by a lock.
type Engine struct {
	cfg     Config
	stores  port.StoreProvider
	fs      port.FileSystem
	sched   *debounce.Scheduler
	publish port.AccelPublisher
	log     zerolog.Logger

	ctx context.Context

	background port.SettingsStore
	iface      port.SettingsStore
	userTheme  port.SettingsStore // nil when the schema is absent
	private    port.SettingsStore // nil when the schema is absent

	wallpapers map[appearance.Mode]string

	// suspendSave marks a window in which theme-key changes were caused
	// by our own apply and must not be mistaken for user saves.
	// suspendApply marks a window in which private-store changes were
	// caused by our own save and must not re-trigger a mirror.
	suspendSave  bool
	suspendApply bool

	unsubs  []func()
	started bool
}

// New creates an engine from its collaborators. Call Start to bind it.
func New(deps Deps) *Engine {
	return &Engine{
		cfg:        deps.Config,
		stores:     deps.Stores,
		fs:         deps.FS,
		sched:      debounce.NewScheduler(deps.Dispatcher),
		publish:    deps.Publisher,
		log:        deps.Logger,
		wallpapers: make(map[appearance.Mode]string),
	}
}

// Start opens the stores, loads the wallpaper cache and registers every
// subscription. The background and interface stores are mandatory: if
// either is missing, Start fails as a whole and tears down anything it
// registered. The user-theme and private stores are optional and their
// absence only degrades features.
func (e *Engine) Start(ctx context.Context) error {
	if e.started {
		return errors.New("engine already started")
	}
	e.ctx = ctx

	var errs []error
	background, err := e.stores.Open(e.cfg.BackgroundSchema)
	if err != nil {
		errs = append(errs, fmt.Errorf("background store %q: %w", e.cfg.BackgroundSchema, err))
	}
	iface, err := e.stores.Open(e.cfg.InterfaceSchema)
	if err != nil {
		errs = append(errs, fmt.Errorf("interface store %q: %w", e.cfg.InterfaceSchema, err))
	}
	if len(errs) > 0 {
		e.Stop()
		return errors.Join(errs...)
	}
	e.background = background
	e.iface = iface

	if st, ok := e.stores.OpenOptional(e.cfg.UserThemeSchema); ok {
		e.userTheme = st
	} else {
		e.log.Info().Str("schema", e.cfg.UserThemeSchema).
			Msg("user-theme store absent, shell-theme handling disabled")
	}
	if st, ok := e.stores.OpenOptional(e.cfg.PrivateSchema); ok {
		e.private = st
	} else {
		e.log.Warn().Str("schema", e.cfg.PrivateSchema).
			Msg("private store absent, theme persistence disabled")
	}

	for _, m := range appearance.Modes() {
		e.wallpapers[m] = e.background.String(appearance.WallpaperKey(m))
	}

	for _, key := range appearance.WallpaperKeys() {
		e.track(e.background.Subscribe(key, func() {
			e.sched.Schedule(key, e.cfg.DebounceDelay, func() {
				e.processWallpaperChange(key)
			})
		}))
	}
	for _, p := range []appearance.Parameter{
		appearance.ParamGtkTheme,
		appearance.ParamIconTheme,
		appearance.ParamCursorTheme,
		appearance.ParamAccentColor,
	} {
		e.track(e.iface.Subscribe(p.LiveKey(), func() {
			e.saveParameter(p)
		}))
	}
	e.track(e.iface.Subscribe(appearance.KeyColorScheme, func() {
		e.applyCurrent()
	}))
	if e.userTheme != nil {
		e.track(e.userTheme.Subscribe(appearance.KeyUserThemeName, func() {
			e.saveParameter(appearance.ParamShellTheme)
		}))
	}
	if e.private != nil {
		if e.cfg.Bidirectional {
			for _, m := range appearance.Modes() {
				for _, p := range appearance.Parameters() {
					key := appearance.PrivateKey(m, p)
					e.track(e.private.Subscribe(key, func() {
						e.onPrivateEdit(key)
					}))
				}
			}
		}
		e.track(e.private.Subscribe(appearance.KeyToggleShortcut, func() {
			e.publishAccels()
		}))
		e.publishAccels()
	}

	e.started = true
	e.log.Info().Stringer("mode", e.Mode()).
		Bool("user_theme", e.userTheme != nil).
		Bool("private", e.private != nil).
		Msg("sync engine started")
	return nil
}

// Stop releases every subscription, cancels every pending timer and
// drops all cached state. Safe after a partial or failed Start, and
// idempotent. No engine callback runs after Stop returns, in the
// dispatcher-serialized sense: late timer fires find their registration
// gone and no-op.
func (e *Engine) Stop() {
	for _, unsubscribe := range e.unsubs {
		unsubscribe()
	}
	e.unsubs = nil
	e.sched.CancelAll()
	e.background = nil
	e.iface = nil
	e.userTheme = nil
	e.private = nil
	e.wallpapers = make(map[appearance.Mode]string)
	e.suspendSave = false
	e.suspendApply = false
	e.started = false
}

// Mode derives the active mode from the interface store. It is computed
// fresh on every decision point and never cached across events.
func (e *Engine) Mode() appearance.Mode {
	return appearance.ModeFromColorScheme(e.iface.String(appearance.KeyColorScheme))
}

// Toggle flips the color-scheme preference between prefer-dark and the
// default value. The mode-switch apply rides on the resulting
// color-scheme change notification.
func (e *Engine) Toggle() {
	if !e.started {
		return
	}
	target := appearance.ColorSchemePreferDark
	if e.Mode() == appearance.ModeDark {
		target = appearance.ColorSchemeDefault
	}
	e.log.Info().Str("color_scheme", target).Msg("toggling mode")
	e.writeString(e.iface, appearance.KeyColorScheme, target)
}

// SwitchTo sets the color-scheme preference so the derived mode becomes
// mode. No-op when the mode is already active.
func (e *Engine) SwitchTo(mode appearance.Mode) {
	if !e.started || e.Mode() == mode {
		return
	}
	target := appearance.ColorSchemeDefault
	if mode == appearance.ModeDark {
		target = appearance.ColorSchemePreferDark
	}
	e.writeString(e.iface, appearance.KeyColorScheme, target)
}

// track records a subscription for release on Stop.
func (e *Engine) track(unsubscribe func()) {
	e.unsubs = append(e.unsubs, unsubscribe)
}

// writeString writes value under key only when it differs from the
// current value, and reports whether a write happened. Write failures
// are logged and absorbed; each write is independent.
func (e *Engine) writeString(st port.SettingsStore, key, value string) bool {
	if st.String(key) == value {
		return false
	}
	if err := st.SetString(key, value); err != nil {
		e.log.Warn().Err(err).Str("key", key).Msg("settings write failed")
		return false
	}
	return true
}

func (e *Engine) publishAccels() {
	if e.publish == nil || e.private == nil {
		return
	}
	e.publish.PublishToggleAccels(e.private.Strv(appearance.KeyToggleShortcut))
}
