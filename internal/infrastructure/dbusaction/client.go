package dbusaction

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

// Toggle asks a running daemon to flip the mode. Returns an error when
// no daemon holds the bus name.
func Toggle(ctx context.Context) error {
	conn, err := dbus.ConnectSessionBus(dbus.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("connect session bus: %w", err)
	}
	defer conn.Close()

	call := conn.Object(BusName, ObjectPath).CallWithContext(ctx, InterfaceName+".Toggle", 0)
	if call.Err != nil {
		return fmt.Errorf("call %s.Toggle: %w", InterfaceName, call.Err)
	}
	return nil
}
