// Package port defines the boundary interfaces the engine depends on.
// Infrastructure adapters implement them; tests substitute fakes.
package port

import "context"

// SettingsStore is a typed key/value store with change notifications,
// backed by GSettings in production.
//
// Change callbacks are delivered in the engine's dispatcher context. A
// SetString call made from inside a callback may synchronously trigger
// another callback before it returns; the engine's suspend flags absorb
// that reentrancy.
type SettingsStore interface {
	// String returns the current value for key, or "" if the key does not
	// exist in the store's schema.
	String(key string) string

	// SetString writes value under key. Callers compare before writing;
	// the store is not assumed to dedupe.
	SetString(key, value string) error

	// Reset reverts key to its schema default.
	Reset(key string)

	// Strv returns the current string-list value for key.
	Strv(key string) []string

	// Subscribe registers fn for change notifications on key and returns
	// the matching unsubscribe. Every exit path of the subscriber must
	// call it.
	Subscribe(key string, fn func()) (unsubscribe func())
}

// StoreProvider opens settings stores by schema id.
type StoreProvider interface {
	// Open returns the store for a mandatory schema, or an error if the
	// schema is not installed.
	Open(schemaID string) (SettingsStore, error)

	// OpenOptional returns (nil, false) when the schema is not installed;
	// absence of an optional store degrades features, it is not an error.
	OpenOptional(schemaID string) (SettingsStore, bool)
}

// FileSystem is the small file surface the special background-file
// protocol needs.
type FileSystem interface {
	Exists(ctx context.Context, path string) (bool, error)

	// Copy overwrites dst with the contents of src. The copy must be
	// atomic at dst: a reader never observes a half-written file.
	Copy(ctx context.Context, src, dst string) error
}
