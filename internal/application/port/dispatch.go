package port

// Dispatcher serializes work onto the engine's single event context (the
// GLib main loop in production). All engine entry points run inside it;
// the engine holds no locks of its own.
type Dispatcher interface {
	Post(fn func())
}

// AccelPublisher advertises the current toggle-action accelerator so a
// shell-side binder can pick it up. Optional; a nil publisher disables
// advertising.
type AccelPublisher interface {
	PublishToggleAccels(accels []string)
}
