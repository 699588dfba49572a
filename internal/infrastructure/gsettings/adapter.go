// Package gsettings implements port.SettingsStore over GSettings via
// gotk4. Change callbacks are delivered on the GLib main loop, which is
// also the engine's dispatcher context.
package gsettings

import (
	"errors"
	"fmt"

	coreglib "github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/rs/zerolog"

	"github.com/bnema/duotone/internal/application/port"
)

// ErrSchemaMissing is returned by Open for schemas that are not
// installed on this system.
var ErrSchemaMissing = errors.New("settings schema not installed")

// Provider opens GSettings stores after checking schema availability, so
// a missing schema degrades instead of aborting the process (gio panics
// when handed an unknown schema id).
type Provider struct {
	log zerolog.Logger
}

// NewProvider creates a GSettings store provider.
func NewProvider(log zerolog.Logger) *Provider {
	return &Provider{log: log}
}

func (p *Provider) lookup(schemaID string) *gio.SettingsSchema {
	source := gio.SettingsSchemaSourceGetDefault()
	if source == nil {
		return nil
	}
	return source.Lookup(schemaID, true)
}

// Open returns the store for a mandatory schema.
func (p *Provider) Open(schemaID string) (port.SettingsStore, error) {
	schema := p.lookup(schemaID)
	if schema == nil {
		return nil, fmt.Errorf("%q: %w", schemaID, ErrSchemaMissing)
	}
	return newStore(schemaID, schema, p.log), nil
}

// OpenOptional returns (nil, false) for schemas that are not installed.
func (p *Provider) OpenOptional(schemaID string) (port.SettingsStore, bool) {
	schema := p.lookup(schemaID)
	if schema == nil {
		return nil, false
	}
	return newStore(schemaID, schema, p.log), true
}

var _ port.StoreProvider = (*Provider)(nil)

// Store wraps one gio.Settings object. Keys absent from the schema read
// as empty and write as no-ops, so a schema from an older desktop
// release (no accent-color yet) degrades per key instead of panicking.
type Store struct {
	id       string
	schema   *gio.SettingsSchema
	settings *gio.Settings
	log      zerolog.Logger
}

func newStore(schemaID string, schema *gio.SettingsSchema, log zerolog.Logger) *Store {
	return &Store{
		id:       schemaID,
		schema:   schema,
		settings: gio.NewSettings(schemaID),
		log:      log.With().Str("schema", schemaID).Logger(),
	}
}

func (s *Store) String(key string) string {
	if !s.schema.HasKey(key) {
		return ""
	}
	return s.settings.String(key)
}

func (s *Store) SetString(key, value string) error {
	if !s.schema.HasKey(key) {
		return fmt.Errorf("schema %q has no key %q", s.id, key)
	}
	if !s.settings.SetString(key, value) {
		return fmt.Errorf("key %q in %q is not writable", key, s.id)
	}
	return nil
}

func (s *Store) Reset(key string) {
	if !s.schema.HasKey(key) {
		return
	}
	s.settings.Reset(key)
}

func (s *Store) Strv(key string) []string {
	if !s.schema.HasKey(key) {
		return nil
	}
	return s.settings.Strv(key)
}

// Subscribe connects to changed::<key> and returns the disconnect.
func (s *Store) Subscribe(key string, fn func()) func() {
	if !s.schema.HasKey(key) {
		s.log.Debug().Str("key", key).Msg("key absent from schema, subscription is a no-op")
		return func() {}
	}
	var handle coreglib.SignalHandle = s.settings.Connect("changed::"+key, fn)
	var done bool
	return func() {
		if done {
			return
		}
		done = true
		s.settings.HandlerDisconnect(handle)
	}
}

var _ port.SettingsStore = (*Store)(nil)

// Sync flushes queued writes to the backend. One-shot CLI commands call
// this before exiting; the daemon never needs it.
func Sync() {
	gio.SettingsSync()
}
