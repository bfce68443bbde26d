// Package probe drives one health-check invocation end to end: open the
// session, resolve the target object, invoke the operation, release the
// session, and interpret the result.
package probe

import (
	"context"

	"go.uber.org/zap"

	"github.com/checkjmx/checkjmx/internal/jolokia"
)

// Invoker is the management-client surface the probe drives. *jolokia.Client
// satisfies it; tests substitute fakes.
type Invoker interface {
	Connect(ctx context.Context) error
	Search(ctx context.Context, pattern string) ([]string, error)
	Exec(ctx context.Context, objectName, operation string) (jolokia.Value, error)
	Close() error
}

// Result is what one probe run produces: a status and the line to print.
type Result struct {
	Status Status
	Output string
}

// Probe performs single-shot health checks against one endpoint.
type Probe struct {
	client Invoker
	logger *zap.Logger
}

// New creates a Probe around an already-configured client.
func New(client Invoker, logger *zap.Logger) *Probe {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Probe{client: client, logger: logger}
}

// Run executes the check: connect, resolve, invoke, interpret. The session
// is released exactly once per successful connect, on every exit path. Any
// returned error means the check could not be completed; health outcomes
// (including an unhealthy service) come back as a Result, not an error.
func (p *Probe) Run(ctx context.Context, objectName, operation string) (Result, error) {
	if err := p.client.Connect(ctx); err != nil {
		return Result{Status: StatusUnknown}, err
	}
	defer func() {
		if err := p.client.Close(); err != nil {
			p.logger.Warn("error releasing connection", zap.Error(err))
		}
	}()

	resolved, err := ResolveTarget(ctx, p.client, objectName)
	if err != nil {
		return Result{Status: StatusUnknown}, err
	}
	if resolved != objectName {
		p.logger.Debug("resolved object name pattern",
			zap.String("pattern", objectName),
			zap.String("object", resolved))
	}

	value, err := p.client.Exec(ctx, resolved, operation)
	if err != nil {
		return Result{Status: StatusUnknown}, err
	}

	status, text, err := Interpret(value)
	if err != nil {
		return Result{Status: StatusUnknown}, err
	}
	p.logger.Debug("probe finished",
		zap.String("object", resolved),
		zap.String("operation", operation),
		zap.Stringer("status", status))
	return Result{Status: status, Output: text}, nil
}
