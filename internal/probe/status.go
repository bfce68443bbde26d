package probe

// Status is the health outcome of one probe run.
type Status int

// Exit codes follow the Nagios plugin convention (WARNING=1 is unused by
// this check).
const (
	StatusOK       Status = 0
	StatusCritical Status = 2
	StatusUnknown  Status = 3
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ExitCode returns the process exit code monitoring systems expect.
func (s Status) ExitCode() int {
	switch s {
	case StatusOK, StatusCritical:
		return int(s)
	default:
		return int(StatusUnknown)
	}
}
