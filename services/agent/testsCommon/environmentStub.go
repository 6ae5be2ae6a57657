package testsCommon

import "time"

// EnvironmentStub -
type EnvironmentStub struct {
	HostnameHandler func() (string, error)
	NowHandler      func() time.Time
}

// Hostname -
func (stub *EnvironmentStub) Hostname() (string, error) {
	if stub.HostnameHandler != nil {
		return stub.HostnameHandler()
	}

	return "stub-host", nil
}

// Now -
func (stub *EnvironmentStub) Now() time.Time {
	if stub.NowHandler != nil {
		return stub.NowHandler()
	}

	return time.Time{}
}

// IsInterfaceNil -
func (stub *EnvironmentStub) IsInterfaceNil() bool {
	return stub == nil
}
