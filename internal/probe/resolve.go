package probe

import (
	"context"
	"fmt"
	"strings"
)

// Searcher is the slice of the management client target resolution needs.
type Searcher interface {
	Search(ctx context.Context, pattern string) ([]string, error)
}

// NotFoundError means an ObjectName pattern matched nothing on the endpoint.
type NotFoundError struct {
	Pattern string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no MBean matches pattern %s", e.Pattern)
}

// AmbiguousTargetError means an ObjectName pattern matched more than one
// object, so there is no single target to invoke.
type AmbiguousTargetError struct {
	Pattern string
	Matches []string
}

func (e *AmbiguousTargetError) Error() string {
	return fmt.Sprintf("object name not unique: pattern %s matches %d MBeans", e.Pattern, len(e.Matches))
}

// IsPattern reports whether an ObjectName is a pattern rather than an exact
// name. JMX patterns use * and ? in the domain part and a trailing ",*" for
// property patterns; a wildcard anywhere marks the name as one.
func IsPattern(objectName string) bool {
	return strings.ContainsAny(objectName, "*?")
}

// ResolveTarget turns an exact-or-pattern object identifier into the
// canonical name of exactly one object. Exact names pass through without
// touching the endpoint.
func ResolveTarget(ctx context.Context, s Searcher, objectName string) (string, error) {
	if !IsPattern(objectName) {
		return objectName, nil
	}
	matches, err := s.Search(ctx, objectName)
	if err != nil {
		return "", err
	}
	switch len(matches) {
	case 0:
		return "", &NotFoundError{Pattern: objectName}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousTargetError{Pattern: objectName, Matches: matches}
	}
}
