package recon

import (
	"time"

	"github.com/bankops/atmrecon/pkg/tabular"
)

// Strategy reconciles one fault source against the shared downtime ticket
// log. Strategies are independent and side-effect-free: each consumes the
// read-only log plus its own fault table and produces a fresh result set, so
// running the same strategy twice on unchanged inputs yields identical output.
type Strategy interface {
	// Name returns the strategy name for logging and error reporting.
	Name() string

	// Source returns the fault source this strategy handles.
	Source() Source

	// Reconcile matches every fault record in the table against the ticket
	// log. Structural problems (missing or ambiguous columns) abort the
	// whole source; per-record parse failures do not.
	Reconcile(faults *tabular.Table, log *TicketLog) ([]Result, error)
}

// StrategyFor returns the strategy for a fault source.
func StrategyFor(source Source, tolerance time.Duration) (Strategy, bool) {
	switch source {
	case SourceExclusions:
		return &ExclusionStrategy{Tolerance: tolerance}, true
	case SourceFaultLog:
		return &FaultLogStrategy{}, true
	case SourceVendor:
		return &VendorStrategy{Tolerance: tolerance}, true
	}
	return nil, false
}

// nearest selects the candidate whose start time is closest to at, together
// with the absolute difference. Candidates without a start time are skipped.
// Equal minimal differences resolve to the lowest ticket key, so the pick is
// stable regardless of table order.
func nearest(candidates []*Ticket, at time.Time) (*Ticket, time.Duration) {
	var best *Ticket
	var bestDiff time.Duration
	for _, t := range candidates {
		if !t.HasStart {
			continue
		}
		diff := absDiff(t.Start, at)
		switch {
		case best == nil, diff < bestDiff:
			best, bestDiff = t, diff
		case diff == bestDiff && t.Key < best.Key:
			best = t
		}
	}
	return best, bestDiff
}

// earliest selects the candidate with the minimum start time, ties resolving
// to the lowest ticket key. Candidates without a start time are considered
// only when no candidate has one, in which case the lowest key wins outright.
func earliest(candidates []*Ticket) *Ticket {
	var best *Ticket
	for _, t := range candidates {
		if !t.HasStart {
			continue
		}
		switch {
		case best == nil, t.Start.Before(best.Start):
			best = t
		case t.Start.Equal(best.Start) && t.Key < best.Key:
			best = t
		}
	}
	if best != nil {
		return best
	}
	for _, t := range candidates {
		if best == nil || t.Key < best.Key {
			best = t
		}
	}
	return best
}

func absDiff(a, b time.Time) time.Duration {
	d := a.Sub(b)
	if d < 0 {
		return -d
	}
	return d
}

// ticketTimes copies a ticket's parsed time bounds into result pointers.
func ticketTimes(t *Ticket) (start, end *time.Time) {
	if t.HasStart {
		s := t.Start
		start = &s
	}
	if t.HasEnd {
		e := t.End
		end = &e
	}
	return start, end
}
