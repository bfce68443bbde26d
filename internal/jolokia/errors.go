package jolokia

import "fmt"

// ConnectError means the agent could not be reached or rejected the
// credentials when the session was opened.
type ConnectError struct {
	URL string
	Err error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("error opening connection to %s: %v", e.URL, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// InstanceNotFoundError means the target object disappeared between
// resolution and invocation, or never existed under that exact name.
type InstanceNotFoundError struct {
	ObjectName string
}

func (e *InstanceNotFoundError) Error() string {
	return fmt.Sprintf("MBean %s not found on the endpoint", e.ObjectName)
}

// InvocationError carries a remote-side failure of the operation itself.
type InvocationError struct {
	ObjectName string
	Operation  string
	RemoteType string
	Message    string
	Err        error
}

func (e *InvocationError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("error invoking operation %s on %s: %v", e.Operation, e.ObjectName, e.Err)
	case e.RemoteType != "":
		return fmt.Sprintf("error invoking operation %s on %s: %s: %s", e.Operation, e.ObjectName, e.RemoteType, e.Message)
	default:
		return fmt.Sprintf("error invoking operation %s on %s: %s", e.Operation, e.ObjectName, e.Message)
	}
}

func (e *InvocationError) Unwrap() error { return e.Err }
