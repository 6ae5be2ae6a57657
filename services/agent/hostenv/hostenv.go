package hostenv

import (
	"os"
	"time"
)

// Environment provides the runtime-observed values embedded in a report:
// the host the agent runs on and the current time
type Environment interface {
	Hostname() (string, error)
	Now() time.Time
	IsInterfaceNil() bool
}

type osEnvironment struct{}

// NewOSEnvironment creates an Environment backed by the operating system
func NewOSEnvironment() *osEnvironment {
	return &osEnvironment{}
}

// Hostname returns the hostname reported by the operating system
func (env *osEnvironment) Hostname() (string, error) {
	return os.Hostname()
}

// Now returns the current local time
func (env *osEnvironment) Now() time.Time {
	return time.Now()
}

// IsInterfaceNil returns true if the value under the interface is nil
func (env *osEnvironment) IsInterfaceNil() bool {
	return env == nil
}
