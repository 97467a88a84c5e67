package recon

import (
	"time"

	"github.com/bankops/atmrecon/pkg/tabular"
)

// Exclusion report column specs. End-of-window headers vary across reports
// ("end", "close", "termination"), so the end columns accept any of them.
var (
	colExclATM       = tabular.ColumnSpec{Name: "ATM identifier", All: []string{"ATM"}}
	colExclStartDate = tabular.ColumnSpec{Name: "start date", All: []string{"DATE", "START"}}
	colExclStartTime = tabular.ColumnSpec{Name: "start time", All: []string{"TIME", "START"}}
	colExclEndDate   = tabular.ColumnSpec{Name: "end date", All: []string{"DATE"}, Any: []string{"END", "CLOSE", "TERM"}}
	colExclEndTime   = tabular.ColumnSpec{Name: "end time", All: []string{"TIME"}, Any: []string{"END", "CLOSE", "TERM"}}
	colExclCode      = tabular.ColumnSpec{Name: "exclusion code", Any: []string{"SBIF", "CODE"}}
)

// ExclusionStrategy reconciles the exclusion report source by time proximity
// alone: each fault matches the ticket with the nearest start time on the
// same ATM, flagged as a time mismatch when the distance exceeds the
// tolerance. Fault records whose start time cannot be parsed are silently
// dropped; they cannot be time-anchored.
type ExclusionStrategy struct {
	Tolerance time.Duration
}

// Name returns the strategy name.
func (s *ExclusionStrategy) Name() string { return "exclusions" }

// Source returns the fault source this strategy handles.
func (s *ExclusionStrategy) Source() Source { return SourceExclusions }

// Reconcile implements the Strategy interface.
func (s *ExclusionStrategy) Reconcile(faults *tabular.Table, log *TicketLog) ([]Result, error) {
	atmCol, err := faults.Find(colExclATM)
	if err != nil {
		return nil, err
	}
	startDateCol, err := faults.Find(colExclStartDate)
	if err != nil {
		return nil, err
	}
	startTimeCol, err := faults.Find(colExclStartTime)
	if err != nil {
		return nil, err
	}
	endDateCol, err := faults.Find(colExclEndDate)
	if err != nil {
		return nil, err
	}
	endTimeCol, err := faults.Find(colExclEndTime)
	if err != nil {
		return nil, err
	}
	codeCol, err := faults.Find(colExclCode)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, faults.Len())
	for i := 0; i < faults.Len(); i++ {
		start, ok := CombineDateTime(faults.Cell(i, startDateCol), faults.Cell(i, startTimeCol))
		if !ok {
			continue
		}
		r := Result{
			ATMID:      faults.Cell(i, atmCol),
			Category:   CategoryByCode(faults.Cell(i, codeCol)),
			Status:     StatusNotFound,
			TicketKey:  NoTicket,
			FaultStart: &start,
		}
		if end, ok := CombineDateTime(faults.Cell(i, endDateCol), faults.Cell(i, endTimeCol)); ok {
			r.FaultEnd = &end
		}

		candidates := log.Candidates(NormalizeID(r.ATMID))
		if best, diff := nearest(candidates, start); best != nil {
			r.TicketKey = best.Key
			r.TicketStart, r.TicketEnd = ticketTimes(best)
			if diff <= s.Tolerance {
				r.Status = StatusFound
			} else {
				r.Status = StatusTimeMismatch
			}
		}
		results = append(results, r)
	}
	return results, nil
}
