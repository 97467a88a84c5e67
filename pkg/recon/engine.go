// Package recon implements the reconciliation engine: it normalizes
// heterogeneous ATM identifiers and timestamps, classifies raw fault
// descriptions into canonical categories via ordered rule tables, and matches
// each fault record to the best candidate ticket in a downtime log using a
// tiered strategy per fault source.
//
// One engine run is a pure function of its two input tables and the tolerance
// parameter: both tables are read-only snapshots, nothing is mutated across
// runs, and each fault source is processed independently of the others.
package recon

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bankops/atmrecon/pkg/errors"
	"github.com/bankops/atmrecon/pkg/logging"
	"github.com/bankops/atmrecon/pkg/tabular"
)

// DefaultTolerance is the default time-proximity window for matching a fault
// to a ticket. The usable range is 0 to 120 minutes.
const DefaultTolerance = 30 * time.Minute

// Engine reconciles fault tables against one clean downtime ticket log.
// It is safe to call Reconcile for different sources concurrently: the
// ticket log is read-only and strategies share no mutable state.
type Engine struct {
	log       *TicketLog
	tolerance time.Duration
	logger    *zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithTolerance sets the time-proximity window in which a ticket's start time
// is considered to belong to a fault. A zero tolerance matches only tickets
// with an exactly equal start time.
func WithTolerance(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.tolerance = d
		}
	}
}

// WithLogger sets the logger used by the engine.
func WithLogger(logger *zerolog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New builds an engine from a raw downtime ticket dump. The dump's true
// header row is located and promoted, the clean table parsed and indexed.
// An unusable ticket log (no header within the scan window) is fatal for the
// whole batch: no source can be reconciled without it.
func New(raw *tabular.Table, opts ...Option) (*Engine, error) {
	e := &Engine{
		tolerance: DefaultTolerance,
		logger:    logging.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	clean, err := CleanTicketTable(raw)
	if err != nil {
		return nil, err
	}
	log, err := BuildTicketLog(clean)
	if err != nil {
		return nil, err
	}
	e.log = log

	e.logger.Debug().
		Int("tickets", log.Len()).
		Dur("tolerance", e.tolerance).
		Msg("Ticket log loaded")
	return e, nil
}

// TicketLog exposes the clean, indexed ticket log.
func (e *Engine) TicketLog() *TicketLog {
	return e.log
}

// Tolerance returns the engine's time-proximity window.
func (e *Engine) Tolerance() time.Duration {
	return e.tolerance
}

// Reconcile runs the strategy for one fault source. Structural failures
// (missing or ambiguous columns) are returned as a SourceError naming the
// source; they never affect the other sources.
func (e *Engine) Reconcile(source Source, faults *tabular.Table) ([]Result, error) {
	strategy, ok := StrategyFor(source, e.tolerance)
	if !ok {
		return nil, errors.WrapSource(string(source), errors.ErrNotFound)
	}

	results, err := strategy.Reconcile(faults, e.log)
	if err != nil {
		return nil, errors.WrapSource(string(source), err)
	}

	e.logger.Info().
		Str("source", string(source)).
		Int("records", faults.Len()).
		Int("results", len(results)).
		Msg("Source reconciled")
	return results, nil
}

// ReconcileAll runs every provided fault source independently and collects
// per-source results, summaries and errors. Failure of one source never
// blocks the others from producing results.
func (e *Engine) ReconcileAll(batch map[Source]*tabular.Table) *BatchResult {
	out := &BatchResult{
		RunID:     uuid.NewString(),
		Results:   make(map[Source][]Result),
		Summaries: make(map[Source]Summary),
		Errors:    make(map[Source]error),
	}

	for _, source := range Sources {
		faults, ok := batch[source]
		if !ok || faults == nil {
			continue
		}
		results, err := e.Reconcile(source, faults)
		if err != nil {
			e.logger.Error().Err(err).Str("source", string(source)).Msg("Source failed")
			out.Errors[source] = err
			continue
		}
		out.Results[source] = results
		out.Summaries[source] = Summarize(results)
	}
	return out
}
