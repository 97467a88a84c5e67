package recon_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankops/atmrecon/pkg/recon"
	"github.com/bankops/atmrecon/pkg/tabular"
)

// faultLogTable builds a generic fault log fixture with {atm, summary} rows.
func faultLogTable(rows ...[]string) *tabular.Table {
	return tabular.New([]string{"ATM", "FAULT SUMMARY"}, rows)
}

func TestFaultLogReconcileLatestTicket(t *testing.T) {
	log := ticketLog(t,
		[]string{"42", "INC001", "2024-01-01 10:00:00", "", "Communications", ""},
		[]string{"42", "INC003", "2024-01-09 08:00:00", "2024-01-09 09:30:00", "Communications", ""},
		[]string{"42", "INC002", "2024-01-05 10:00:00", "", "Communications", ""},
	)
	faults := faultLogTable(
		[]string{"ATM-042", "dispenser failure"},
	)

	s := &recon.FaultLogStrategy{}
	results, err := s.Reconcile(faults, log)
	require.NoError(t, err)
	require.Len(t, results, 1)

	// Recency alone decides: the most recent ticket wins regardless of any
	// fault-side timestamp.
	r := results[0]
	assert.Equal(t, recon.StatusFoundInLog, r.Status)
	assert.Equal(t, "INC003", r.TicketKey)
	assert.Equal(t, recon.CategoryDispenser, r.Category)
	require.NotNil(t, r.TicketStart)
	assert.Equal(t, time.Date(2024, 1, 9, 8, 0, 0, 0, time.UTC), *r.TicketStart)
	assert.Nil(t, r.FaultStart)
}

func TestFaultLogReconcileNotFound(t *testing.T) {
	log := ticketLog(t,
		[]string{"7", "INC001", "2024-01-01 10:00:00", "", "Communications", ""},
	)
	faults := faultLogTable(
		[]string{"42", "host down"},
		[]string{"no-digits", "card reader error"},
	)

	s := &recon.FaultLogStrategy{}
	results, err := s.Reconcile(faults, log)
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, r := range results {
		assert.Equal(t, recon.StatusNotFound, r.Status)
		assert.Equal(t, recon.NoTicket, r.TicketKey)
	}
	assert.Equal(t, recon.CategoryAppDown, results[0].Category)
	assert.Equal(t, recon.CategoryCardReader, results[1].Category)
}

func TestFaultLogReconcileMissingColumn(t *testing.T) {
	log := ticketLog(t)
	faults := tabular.New([]string{"ATM", "DESCRIPTION"}, nil)

	s := &recon.FaultLogStrategy{}
	_, err := s.Reconcile(faults, log)
	assert.Error(t, err)
}
