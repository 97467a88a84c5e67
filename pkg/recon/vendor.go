package recon

import (
	"strings"
	"time"

	"github.com/bankops/atmrecon/pkg/tabular"
)

// Vendor fault log column specs. The start date/time columns are optional:
// a vendor dump without them can still be reconciled through work-order
// references.
var (
	colVendorATM       = tabular.ColumnSpec{Name: "ATM identifier", All: []string{"ATM"}}
	colVendorWO        = tabular.ColumnSpec{Name: "work order", All: []string{"WO"}}
	colVendorFault     = tabular.ColumnSpec{Name: "fault description", All: []string{"FAULT"}}
	colVendorStartDate = tabular.ColumnSpec{Name: "start date", All: []string{"DATE"}, Any: []string{"START", "INITIAL"}}
	colVendorStartTime = tabular.ColumnSpec{Name: "start time", All: []string{"TIME"}, Any: []string{"START", "INITIAL"}}
)

// VendorStrategy reconciles the vendor fault log source through tiered
// fallback. A work-order reference logged on the ticket is the most
// trustworthy signal and always wins; absent that, identifier plus time
// proximity is the next best, refined by category agreement to break ties
// among concurrent incidents on the same machine; identifier alone is a
// last-resort, low-confidence signal kept visibly distinct in the output.
type VendorStrategy struct {
	Tolerance time.Duration
}

// Name returns the strategy name.
func (s *VendorStrategy) Name() string { return "vendor" }

// Source returns the fault source this strategy handles.
func (s *VendorStrategy) Source() Source { return SourceVendor }

// Reconcile implements the Strategy interface.
func (s *VendorStrategy) Reconcile(faults *tabular.Table, log *TicketLog) ([]Result, error) {
	atmCol, err := faults.Find(colVendorATM)
	if err != nil {
		return nil, err
	}
	woCol, err := faults.Find(colVendorWO)
	if err != nil {
		return nil, err
	}
	faultCol, err := faults.Find(colVendorFault)
	if err != nil {
		return nil, err
	}
	startDateCol, err := faults.FindOptional(colVendorStartDate)
	if err != nil {
		return nil, err
	}
	startTimeCol, err := faults.FindOptional(colVendorStartTime)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, faults.Len())
	for i := 0; i < faults.Len(); i++ {
		r := Result{
			ATMID:     faults.Cell(i, atmCol),
			Category:  CategoryByVendorFault(faults.Cell(i, faultCol)),
			Status:    StatusNotFound,
			TicketKey: NoTicket,
		}

		// Tier 1: exact work-order reference.
		if wo := strings.TrimSpace(faults.Cell(i, woCol)); wo != "" && !strings.EqualFold(wo, "nan") {
			if refs := log.ByReference(wo); len(refs) > 0 {
				s.record(&r, refs[0], StatusFoundByReference)
				results = append(results, r)
				continue
			}
		}

		start, okStart := time.Time{}, false
		if startDateCol >= 0 {
			start, okStart = CombineDateTime(faults.Cell(i, startDateCol), faults.Cell(i, startTimeCol))
		}
		if !okStart {
			// Without a reference hit the record cannot be time-anchored.
			continue
		}
		r.FaultStart = &start

		candidates := log.Candidates(NormalizeID(r.ATMID))
		if len(candidates) == 0 {
			results = append(results, r)
			continue
		}

		within := withinTolerance(candidates, start, s.Tolerance)

		// Tier 2: identifier + time + category agreement.
		if agreeing := categoryAgreement(within, r.Category); len(agreeing) > 0 {
			best, _ := nearest(agreeing, start)
			s.record(&r, best, StatusFoundByIDTimeCategory)
			results = append(results, r)
			continue
		}

		// Tier 3: identifier + time.
		if len(within) > 0 {
			best, _ := nearest(within, start)
			s.record(&r, best, StatusFoundByIDTime)
			results = append(results, r)
			continue
		}

		// Tier 4: identifier only, earliest ticket.
		s.record(&r, earliest(candidates), StatusFoundByIDOnly)
		results = append(results, r)
	}
	return results, nil
}

func (s *VendorStrategy) record(r *Result, t *Ticket, status MatchStatus) {
	r.Status = status
	r.TicketKey = t.Key
	r.TicketStart, r.TicketEnd = ticketTimes(t)
}

// withinTolerance filters candidates to those whose start time is within the
// tolerance window of the fault's start time.
func withinTolerance(candidates []*Ticket, at time.Time, tolerance time.Duration) []*Ticket {
	out := make([]*Ticket, 0, len(candidates))
	for _, t := range candidates {
		if t.HasStart && absDiff(t.Start, at) <= tolerance {
			out = append(out, t)
		}
	}
	return out
}

// categoryAgreement filters candidates to those whose ticket category text
// contains the fault's canonical category, case-insensitively.
func categoryAgreement(candidates []*Ticket, category string) []*Ticket {
	needle := strings.ToLower(category)
	out := make([]*Ticket, 0, len(candidates))
	for _, t := range candidates {
		if strings.Contains(strings.ToLower(t.Category), needle) {
			out = append(out, t)
		}
	}
	return out
}
