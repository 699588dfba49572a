// Package dbusaction exposes the mode-toggle action on the session bus.
// The daemon exports a Toggle method; the CLI's toggle command and any
// shell-side keybinding helper call it remotely.
package dbusaction

import (
	"context"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/rs/zerolog"

	"github.com/bnema/duotone/internal/application/port"
)

const (
	// BusName is the well-known name the daemon claims.
	BusName = "com.github.bnema.Duotone"
	// ObjectPath of the exported action object.
	ObjectPath = "/com/github/bnema/Duotone"
	// InterfaceName of the action interface.
	InterfaceName = "com.github.bnema.Duotone"
)

const introXML = `
<node>
	<interface name="` + InterfaceName + `">
		<method name="Toggle"/>
		<method name="ToggleAccels">
			<arg direction="out" type="as"/>
		</method>
	</interface>` + introspect.IntrospectDataString + `</node>`

// Service owns the bus connection and the exported action object. It
// also implements port.AccelPublisher so the engine can advertise the
// configured toggle shortcut.
type Service struct {
	dispatch port.Dispatcher
	toggle   func()
	log      zerolog.Logger

	conn *dbus.Conn

	mu     sync.Mutex
	accels []string
}

// NewService creates the action service. toggle runs in the dispatcher
// context, never on the bus goroutine.
func NewService(dispatch port.Dispatcher, toggle func(), log zerolog.Logger) *Service {
	return &Service{dispatch: dispatch, toggle: toggle, log: log}
}

// Start connects to the session bus, exports the action object and
// claims the well-known name.
func (s *Service) Start(ctx context.Context) error {
	conn, err := dbus.ConnectSessionBus(dbus.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("connect session bus: %w", err)
	}

	if err := conn.Export(s, ObjectPath, InterfaceName); err != nil {
		conn.Close()
		return fmt.Errorf("export action object: %w", err)
	}
	if err := conn.Export(introspect.Introspectable(introXML), ObjectPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		conn.Close()
		return fmt.Errorf("export introspection: %w", err)
	}

	reply, err := conn.RequestName(BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		conn.Close()
		return fmt.Errorf("request name %s: %w", BusName, err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		conn.Close()
		return fmt.Errorf("name %s already taken, is another instance running?", BusName)
	}

	s.conn = conn
	s.log.Debug().Str("name", BusName).Msg("action service on session bus")
	return nil
}

// Stop releases the name and closes the connection. Safe after a failed
// Start and idempotent.
func (s *Service) Stop() {
	if s.conn == nil {
		return
	}
	if _, err := s.conn.ReleaseName(BusName); err != nil {
		s.log.Warn().Err(err).Msg("failed to release bus name")
	}
	if err := s.conn.Close(); err != nil {
		s.log.Warn().Err(err).Msg("failed to close bus connection")
	}
	s.conn = nil
}

// Toggle is the exported D-Bus method. It posts the mode flip into the
// engine's dispatcher and returns immediately.
func (s *Service) Toggle() *dbus.Error {
	s.dispatch.Post(s.toggle)
	return nil
}

// ToggleAccels is the exported D-Bus method returning the advertised
// accelerator for the toggle action.
func (s *Service) ToggleAccels() ([]string, *dbus.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.accels...), nil
}

// PublishToggleAccels implements port.AccelPublisher.
func (s *Service) PublishToggleAccels(accels []string) {
	s.mu.Lock()
	s.accels = append([]string(nil), accels...)
	s.mu.Unlock()
	s.log.Debug().Strs("accels", accels).Msg("toggle accelerator published")
}

var _ port.AccelPublisher = (*Service)(nil)
