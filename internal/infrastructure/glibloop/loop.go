// Package glibloop runs the GLib main loop and implements the engine's
// dispatcher on top of it.
package glibloop

import (
	"runtime"

	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/bnema/duotone/internal/application/port"
)

// Dispatcher posts work onto the GLib main loop via idle sources. Safe
// to call from any goroutine.
type Dispatcher struct{}

func (Dispatcher) Post(fn func()) {
	glib.IdleAdd(func() bool {
		fn()
		return false // one-shot
	})
}

var _ port.Dispatcher = Dispatcher{}

// Loop wraps a GLib main loop for the daemon process.
type Loop struct {
	ml *glib.MainLoop
}

// NewLoop creates the main loop on the default context. Call Run from
// the main goroutine with the OS thread locked.
func NewLoop() *Loop {
	return &Loop{ml: glib.NewMainLoop(nil, false)}
}

// Run blocks until Quit is called.
func (l *Loop) Run() {
	runtime.LockOSThread()
	l.ml.Run()
}

// Quit stops the loop. Safe to call from any goroutine; the quit is
// posted through the loop itself so in-flight events finish first.
func (l *Loop) Quit() {
	glib.IdleAdd(func() bool {
		l.ml.Quit()
		return false
	})
}
