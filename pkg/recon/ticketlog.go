package recon

import (
	"strings"
	"time"

	"github.com/bankops/atmrecon/pkg/errors"
	"github.com/bankops/atmrecon/pkg/tabular"
)

// headerScanWindow bounds the search for the true header row inside a raw
// ticket dump. Report banners occupy at most a few leading rows; scanning
// deeper risks promoting a data row that merely mentions the marker tokens.
const headerScanWindow = 5

// Marker tokens that identify the true header row of a downtime ticket dump.
const (
	ticketKeyMarker = "TICKET KEY"
	startTimeMarker = "START TIME"
)

// Ticket is one downtime record from the canonical log. Start is only
// meaningful when HasStart is true; a ticket without a parsable start time
// cannot take part in time-based matching.
type Ticket struct {
	Key       string
	ATMID     string
	NormID    string
	Reference string
	Category  string
	Start     time.Time
	HasStart  bool
	End       time.Time
	HasEnd    bool
}

// TicketLog is the clean, indexed downtime ticket table shared read-only by
// all reconciliation strategies.
type TicketLog struct {
	tickets []Ticket
	byID    map[string][]int
	byRef   map[string][]int
}

// CleanTicketTable locates the true header row inside a raw, loosely
// structured ticket dump and promotes it. At most the first 5 rows are
// scanned for a row whose concatenated upper-cased text contains both
// "TICKET KEY" and "START TIME"; rows before it are discarded, header cells
// are trimmed, and all-empty data rows are dropped. When no header is found
// within the window the whole batch is unusable and ErrTicketLogUnusable is
// returned.
func CleanTicketTable(raw *tabular.Table) (*tabular.Table, error) {
	headerIdx := -1
	for i := 0; i < len(raw.Rows) && i < headerScanWindow; i++ {
		text := strings.ToUpper(strings.Join(raw.Rows[i], " "))
		if strings.Contains(text, ticketKeyMarker) && strings.Contains(text, startTimeMarker) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, errors.ErrTicketLogUnusable
	}

	headers := make([]string, len(raw.Rows[headerIdx]))
	for i, h := range raw.Rows[headerIdx] {
		headers[i] = strings.TrimSpace(h)
	}

	clean := tabular.New(headers, nil)
	for i := headerIdx + 1; i < len(raw.Rows); i++ {
		if raw.IsEmptyRow(i) {
			continue
		}
		clean.Rows = append(clean.Rows, raw.Rows[i])
	}
	return clean, nil
}

// Ticket table column specs. REFERENCE is optional: exclusion and generic
// fault log reconciliation never consult it.
var (
	colTicketID       = tabular.ColumnSpec{Name: "ticket identifier", All: []string{"ID"}}
	colTicketKey      = tabular.ColumnSpec{Name: "ticket key", All: []string{"TICKET KEY"}}
	colTicketStart    = tabular.ColumnSpec{Name: "ticket start time", All: []string{"START TIME"}}
	colTicketEnd      = tabular.ColumnSpec{Name: "ticket end time", All: []string{"END TIME"}}
	colTicketCategory = tabular.ColumnSpec{Name: "ticket category", All: []string{"CATEGORY"}}
	colTicketRef      = tabular.ColumnSpec{Name: "ticket reference", All: []string{"REFERENCE"}}
)

// BuildTicketLog parses and indexes a clean ticket table. The identifier
// column is normalized, start/end times parsed, and references trimmed.
func BuildTicketLog(clean *tabular.Table) (*TicketLog, error) {
	idCol, err := clean.Find(colTicketID)
	if err != nil {
		return nil, err
	}
	keyCol, err := clean.Find(colTicketKey)
	if err != nil {
		return nil, err
	}
	startCol, err := clean.Find(colTicketStart)
	if err != nil {
		return nil, err
	}
	endCol, err := clean.Find(colTicketEnd)
	if err != nil {
		return nil, err
	}
	catCol, err := clean.Find(colTicketCategory)
	if err != nil {
		return nil, err
	}
	refCol, err := clean.FindOptional(colTicketRef)
	if err != nil {
		return nil, err
	}

	log := &TicketLog{
		byID:  make(map[string][]int),
		byRef: make(map[string][]int),
	}

	for i := 0; i < clean.Len(); i++ {
		t := Ticket{
			Key:      clean.Cell(i, keyCol),
			ATMID:    clean.Cell(i, idCol),
			Category: clean.Cell(i, catCol),
		}
		t.NormID = NormalizeID(t.ATMID)
		t.Start, t.HasStart = ParseTimestamp(clean.Cell(i, startCol))
		t.End, t.HasEnd = ParseTimestamp(clean.Cell(i, endCol))
		if refCol >= 0 {
			t.Reference = strings.TrimSpace(clean.Cell(i, refCol))
		}

		idx := len(log.tickets)
		log.tickets = append(log.tickets, t)
		if t.NormID != "" {
			log.byID[t.NormID] = append(log.byID[t.NormID], idx)
		}
		if t.Reference != "" {
			log.byRef[t.Reference] = append(log.byRef[t.Reference], idx)
		}
	}
	return log, nil
}

// Len returns the number of tickets in the log.
func (l *TicketLog) Len() int {
	return len(l.tickets)
}

// Candidates returns the tickets sharing the given normalized identifier, in
// table order. An empty identifier matches nothing.
func (l *TicketLog) Candidates(normID string) []*Ticket {
	if normID == "" {
		return nil
	}
	idxs := l.byID[normID]
	out := make([]*Ticket, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, &l.tickets[i])
	}
	return out
}

// ByReference returns the tickets whose trimmed reference equals ref exactly,
// in table order.
func (l *TicketLog) ByReference(ref string) []*Ticket {
	idxs := l.byRef[ref]
	out := make([]*Ticket, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, &l.tickets[i])
	}
	return out
}

// Latest returns the ticket with the maximum start time for the given
// normalized identifier. Tickets without a parsable start time are ignored.
// Identical maximal start times resolve to the lowest ticket key, so the
// result is stable across runs regardless of table order.
func (l *TicketLog) Latest(normID string) (*Ticket, bool) {
	var best *Ticket
	for _, t := range l.Candidates(normID) {
		if !t.HasStart {
			continue
		}
		switch {
		case best == nil, t.Start.After(best.Start):
			best = t
		case t.Start.Equal(best.Start) && t.Key < best.Key:
			best = t
		}
	}
	return best, best != nil
}
