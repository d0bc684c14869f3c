// Package simnet injects the latency and failure characteristics of a
// remote backend into local operations. An Executor wraps an operation
// with an artificial delay and a probabilistic failure draw, exposing
// loading and error state for presentation to render.
package simnet

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/sellerdesk/pkg/types"
)

// TransportError is the injected failure. It matches
// types.ErrSimulatedTransport via errors.Is.
type TransportError struct {
	Message string
}

func (e *TransportError) Error() string { return e.Message }

// Is reports whether target is the simulated-transport sentinel.
func (e *TransportError) Is(target error) bool {
	return target == types.ErrSimulatedTransport
}

// transportErrMessage mirrors the message a failed fetch would carry.
const transportErrMessage = "simulated network error: failed to fetch data from server"

// Params configures a single simulated run.
type Params struct {
	Delay         time.Duration
	SimulateError bool
	ErrorChance   float64
}

// Executor runs operations behind a simulated network. Each Run sets
// loading, suspends for the configured delay, optionally fails, then
// invokes the operation; loading is cleared on every exit path.
//
// Overlap policy: a new Run supersedes any run still suspended in its
// delay. The superseded run's sleep is cancelled and its bookkeeping
// writes are suppressed, so the newest run's loading/error state always
// wins regardless of resolution order.
type Executor struct {
	mu      sync.Mutex
	loading bool
	errMsg  string
	gen     uint64
	cancel  context.CancelFunc

	// Test seams. randFloat draws the failure sample in [0,1);
	// sleep suspends for the simulated latency.
	randFloat func() float64
	sleep     func(ctx context.Context, d time.Duration) error

	logger *zap.Logger
}

// NewExecutor returns an Executor ready for use. The logger may be nil.
func NewExecutor(logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		randFloat: rand.Float64,
		sleep:     sleepCtx,
		logger:    logger,
	}
}

// sleepCtx suspends for d or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes op behind the simulated network described by p. It
// returns op's error, a *TransportError when the failure draw hits, or
// the context error when cancelled or superseded by a newer Run.
func (e *Executor) Run(ctx context.Context, p Params, op func() error) error {
	e.mu.Lock()
	e.gen++
	gen := e.gen
	if e.cancel != nil {
		e.cancel() // supersede the run still in its delay
	}
	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.loading = true
	e.errMsg = ""
	e.mu.Unlock()

	err := e.run(runCtx, p, op)

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		// A newer run owns the state now; report the stale result to
		// the caller but do not touch shared bookkeeping.
		return err
	}
	e.loading = false
	if err != nil {
		e.errMsg = err.Error()
	}
	e.cancel = nil
	cancel()
	return err
}

func (e *Executor) run(ctx context.Context, p Params, op func() error) error {
	if err := e.sleep(ctx, p.Delay); err != nil {
		return err
	}
	if p.SimulateError && e.randFloat() < p.ErrorChance {
		e.logger.Debug("injected transport failure",
			zap.Float64("chance", p.ErrorChance))
		return &TransportError{Message: transportErrMessage}
	}
	return op()
}

// Loading reports whether a run is in flight.
func (e *Executor) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

// Err returns the user-visible message of the last failed run, or the
// empty string after a success or ClearError.
func (e *Executor) Err() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errMsg
}

// ClearError discards the current error message.
func (e *Executor) ClearError() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errMsg = ""
}
