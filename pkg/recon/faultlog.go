package recon

import (
	"github.com/bankops/atmrecon/pkg/tabular"
)

// Generic fault log column specs.
var (
	colFaultATM     = tabular.ColumnSpec{Name: "ATM identifier", All: []string{"ATM"}}
	colFaultSummary = tabular.ColumnSpec{Name: "fault summary", All: []string{"SUMMARY"}}
)

// FaultLogStrategy reconciles the generic fault log source against the most
// recent ticket per ATM. Recency alone determines the match; no fault-side
// timestamp or tolerance is consulted, so every fault record produces a
// result row.
type FaultLogStrategy struct{}

// Name returns the strategy name.
func (s *FaultLogStrategy) Name() string { return "faultlog" }

// Source returns the fault source this strategy handles.
func (s *FaultLogStrategy) Source() Source { return SourceFaultLog }

// Reconcile implements the Strategy interface.
func (s *FaultLogStrategy) Reconcile(faults *tabular.Table, log *TicketLog) ([]Result, error) {
	atmCol, err := faults.Find(colFaultATM)
	if err != nil {
		return nil, err
	}
	summaryCol, err := faults.Find(colFaultSummary)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, faults.Len())
	for i := 0; i < faults.Len(); i++ {
		r := Result{
			ATMID:     faults.Cell(i, atmCol),
			Category:  CategoryBySummary(faults.Cell(i, summaryCol)),
			Status:    StatusNotFound,
			TicketKey: NoTicket,
		}
		if latest, ok := log.Latest(NormalizeID(r.ATMID)); ok {
			r.Status = StatusFoundInLog
			r.TicketKey = latest.Key
			r.TicketStart, r.TicketEnd = ticketTimes(latest)
		}
		results = append(results, r)
	}
	return results, nil
}
