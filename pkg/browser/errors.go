package browser

import (
	"errors"
	"fmt"
)

// ErrLaunchConflict reports that a freshly started instance never became
// reachable on the debug port. The usual cause is a stale browser process of
// a different build already holding the port.
var ErrLaunchConflict = errors.New("browser instance conflict on debug port")

// ConfigError reports a Config missing a field required by the selected
// connection mode.
type ConfigError struct {
	// Field is the yaml name of the missing field
	Field string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("browser config: %s is required", e.Field)
}

// ConnectError reports a failed attach to a browser endpoint.
type ConnectError struct {
	// Endpoint is the URL the attach was made against
	Endpoint string

	// Err is the underlying failure from the automation driver
	Err error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("failed to connect to browser at %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}
