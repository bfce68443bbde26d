package probe

import (
	"fmt"
	"strings"

	"github.com/checkjmx/checkjmx/internal/jolokia"
)

// nullResultText is printed when the remote operation returned null; a
// health operation that answers nothing is a failed health check.
const nullResultText = "Value not set. JMX query returned null value."

// statusKey is the conventional health field inside mapping results, with
// healthyStatus its expected value for a healthy service.
const (
	statusKey     = "status"
	healthyStatus = "UP"
)

// UnsupportedResultTypeError means the remote operation returned a value
// shape the check cannot interpret.
type UnsupportedResultTypeError struct {
	Kind jolokia.Kind
}

func (e *UnsupportedResultTypeError) Error() string {
	return fmt.Sprintf("type of return value not supported [%s]: must be a number, string, mapping, or sequence", e.Kind)
}

// Interpret classifies a remote result into a health status and the line to
// print for it.
func Interpret(v jolokia.Value) (Status, string, error) {
	switch v.Kind() {
	case jolokia.KindNull:
		return StatusCritical, nullResultText, nil

	case jolokia.KindNumber, jolokia.KindString:
		return StatusOK, v.Text(), nil

	case jolokia.KindMapping:
		status := StatusOK
		if sv, ok := v.Get(statusKey); ok {
			if sv.Kind() != jolokia.KindString || sv.Text() != healthyStatus {
				status = StatusCritical
			}
		}
		entries := v.Entries()
		parts := make([]string, 0, len(entries))
		for _, e := range entries {
			parts = append(parts, e.Key+"="+e.Value.Text())
		}
		return status, strings.Join(parts, ", "), nil

	case jolokia.KindSequence:
		items := v.Items()
		parts := make([]string, 0, len(items))
		for _, item := range items {
			parts = append(parts, item.Text())
		}
		return StatusOK, strings.Join(parts, ", "), nil

	default:
		return StatusUnknown, "", &UnsupportedResultTypeError{Kind: v.Kind()}
	}
}
