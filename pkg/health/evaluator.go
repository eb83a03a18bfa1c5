package health

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Verdict is the combined outcome of one check cycle
type Verdict struct {
	Healthy      bool
	Connectivity Result
	Freshness    Result
}

// Evaluator combines the connectivity and freshness checks into a verdict
type Evaluator struct {
	connectivity Checker
	freshness    Checker
	statuses     map[CheckType]*Status
	logger       zerolog.Logger
}

// NewEvaluator creates an evaluator over the two sub-checks
func NewEvaluator(connectivity, freshness Checker, logger zerolog.Logger) *Evaluator {
	return &Evaluator{
		connectivity: connectivity,
		freshness:    freshness,
		statuses: map[CheckType]*Status{
			CheckTypeConnectivity: NewStatus(),
			CheckTypeFreshness:    NewStatus(),
		},
		logger: logger,
	}
}

// Evaluate runs both checks and ANDs their outcomes. Both checks always run,
// so each failure is logged even when the other one already failed. With
// noPing the connectivity check passes without probing anything.
func (e *Evaluator) Evaluate(ctx context.Context, noPing bool) Verdict {
	var connectivity Result
	if noPing {
		e.logger.Debug().Msg("--no-ping option is specified. Skipping ping")
		connectivity = Result{Healthy: true, Message: "connectivity check skipped", CheckedAt: time.Now()}
	} else {
		connectivity = e.run(ctx, CheckTypeConnectivity, e.connectivity)
	}

	freshness := e.run(ctx, CheckTypeFreshness, e.freshness)

	return Verdict{
		Healthy:      connectivity.Healthy && freshness.Healthy,
		Connectivity: connectivity,
		Freshness:    freshness,
	}
}

// Status returns the history of a sub-check
func (e *Evaluator) Status(t CheckType) Status {
	if s, ok := e.statuses[t]; ok {
		return *s
	}
	return Status{}
}

func (e *Evaluator) run(ctx context.Context, t CheckType, c Checker) Result {
	result := c.Check(ctx)
	status := e.statuses[t]
	status.Update(result)

	e.logger.Debug().
		Str("check", string(t)).
		Bool("healthy", result.Healthy).
		Dur("duration", result.Duration).
		Int("consecutive_failures", status.ConsecutiveFailures).
		Msg(result.Message)

	return result
}
