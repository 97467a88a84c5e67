package recon

import (
	"strings"
	"time"
)

// Source identifies one of the three fault record sources.
type Source string

// The fault sources the engine knows how to reconcile.
const (
	SourceExclusions Source = "exclusions"
	SourceFaultLog   Source = "faultlog"
	SourceVendor     Source = "vendor"
)

// Sources lists all fault sources in their processing order.
var Sources = []Source{SourceExclusions, SourceFaultLog, SourceVendor}

// MatchStatus is the terminal per-record outcome of one reconciliation pass.
// Each record is classified exactly once per run.
type MatchStatus string

// Match statuses shared across the strategies. The found_by_* statuses are
// ordered by confidence: a reference match is the most trustworthy signal,
// an identifier-only match the least.
const (
	StatusNotFound              MatchStatus = "not_found"
	StatusFound                 MatchStatus = "found"
	StatusTimeMismatch          MatchStatus = "time_mismatch"
	StatusFoundInLog            MatchStatus = "found_in_log"
	StatusFoundByReference      MatchStatus = "found_by_reference"
	StatusFoundByIDTimeCategory MatchStatus = "found_by_id_time_category"
	StatusFoundByIDTime         MatchStatus = "found_by_id_time"
	StatusFoundByIDOnly         MatchStatus = "found_by_id_only"
)

// Found reports whether the status represents a confirmed ticket match.
// A time_mismatch still reports a ticket but is not counted as found.
func (s MatchStatus) Found() bool {
	return strings.HasPrefix(string(s), "found")
}

// NoTicket is the sentinel ticket key reported when no ticket matched.
const NoTicket = "N/A"

// Result is one output row of a reconciliation pass, produced per fault
// record that could be time-anchored (or per record outright, for the
// sources that do not need fault-side time).
type Result struct {
	ATMID     string      `json:"atm_id"`
	Category  string      `json:"category"`
	Status    MatchStatus `json:"match_status"`
	TicketKey string      `json:"matched_ticket_key"`

	FaultStart  *time.Time `json:"fault_start,omitempty"`
	FaultEnd    *time.Time `json:"fault_end,omitempty"`
	TicketStart *time.Time `json:"matched_start_time,omitempty"`
	TicketEnd   *time.Time `json:"matched_end_time,omitempty"`
}

// Summary aggregates the outcome counts of one source's pass.
type Summary struct {
	Total        int `json:"total"`
	Matched      int `json:"matched"`
	Unmatched    int `json:"unmatched"`
	TimeMismatch int `json:"time_mismatch"`
}

// Summarize computes the outcome counts for one result set.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Status.Found():
			s.Matched++
		case r.Status == StatusTimeMismatch:
			s.TimeMismatch++
		default:
			s.Unmatched++
		}
	}
	return s
}

// BatchResult collects the independent per-source outcomes of one engine run.
// A source appears in Errors when it could not be processed at all; failure of
// one source never blocks the others.
type BatchResult struct {
	RunID     string              `json:"run_id"`
	Results   map[Source][]Result `json:"results"`
	Summaries map[Source]Summary  `json:"summaries"`
	Errors    map[Source]error    `json:"-"`
}
