// Package host runs the administrative operations the bot performs on the
// machine it lives on: service manager queries, restarts, uptime and the
// public address lookup.
package host

import (
	"context"
	"fmt"
	"strings"
)

// ActiveState is the only service state reported as running.
const ActiveState = "active"

// Controller is the set of host operations the bot needs.
type Controller interface {
	// QueryServiceActive returns the unit state as printed by the service
	// manager, e.g. "active", "inactive" or "failed".
	QueryServiceActive(ctx context.Context) (string, error)
	// QueryUptime returns the host uptime in human-readable form.
	QueryUptime(ctx context.Context) (string, error)
	// RestartService restarts the unit with elevated privilege.
	RestartService(ctx context.Context) error
	// QueryPublicIP returns the externally visible address of the host.
	QueryPublicIP(ctx context.Context) (string, error)
}

// IsActive reports whether state is exactly the active state. Every other
// value, including "activating", counts as not running.
func IsActive(state string) bool {
	return state == ActiveState
}

// OpError describes a failed host operation. Output carries whatever the
// command or endpoint returned, if anything.
type OpError struct {
	Op     string
	Output string
	Err    error
}

func (e *OpError) Error() string {
	msg := e.Op
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += fmt.Sprintf(" (%s)", out)
	}
	return msg
}

func (e *OpError) Unwrap() error {
	return e.Err
}
