package recon_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankops/atmrecon/pkg/recon"
	"github.com/bankops/atmrecon/pkg/tabular"
)

// vendorTable builds a vendor fault log fixture. Rows are
// {atm, wo, fault, initial date, initial time}.
func vendorTable(rows ...[]string) *tabular.Table {
	return tabular.New(
		[]string{"ATM", "WO", "FAULT DESCRIPTION", "INITIAL DATE", "INITIAL TIME"},
		rows,
	)
}

func TestVendorReconcileReferenceWins(t *testing.T) {
	log := ticketLog(t,
		// Same ATM, well within tolerance: would win tier 2 or 3.
		[]string{"42", "INC001", "2024-01-01 10:05:00", "", "Dispenser not paying", ""},
		// Different ATM, far away in time, but carries the work order.
		[]string{"99", "INC002", "2024-03-01 00:00:00", "2024-03-01 04:00:00", "Communications", "WO-123"},
	)
	faults := vendorTable(
		[]string{"42", "WO-123", "dispenser shutter blocked", "2024-01-01", "10:00"},
	)

	s := &recon.VendorStrategy{Tolerance: 30 * time.Minute}
	results, err := s.Reconcile(faults, log)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, recon.StatusFoundByReference, r.Status)
	assert.Equal(t, "INC002", r.TicketKey)
	require.NotNil(t, r.TicketStart)
	require.NotNil(t, r.TicketEnd)
}

func TestVendorReconcileIDTimeCategory(t *testing.T) {
	log := ticketLog(t,
		// Nearer in time but the wrong category.
		[]string{"42", "INC001", "2024-01-01 10:02:00", "", "Receipt printer", ""},
		// Slightly farther, category agrees.
		[]string{"42", "INC002", "2024-01-01 10:20:00", "", "ATM dispenser not paying since 09:50", ""},
	)
	faults := vendorTable(
		[]string{"42", "", "dispenser error 0x31", "2024-01-01", "10:00"},
	)

	s := &recon.VendorStrategy{Tolerance: 30 * time.Minute}
	results, err := s.Reconcile(faults, log)
	require.NoError(t, err)
	require.Len(t, results, 1)

	// Category agreement outranks raw time proximity.
	r := results[0]
	assert.Equal(t, recon.StatusFoundByIDTimeCategory, r.Status)
	assert.Equal(t, "INC002", r.TicketKey)
}

func TestVendorReconcileIDTime(t *testing.T) {
	log := ticketLog(t,
		[]string{"42", "INC001", "2024-01-01 10:25:00", "", "Communications", ""},
		[]string{"42", "INC002", "2024-01-01 10:05:00", "", "Communications", ""},
	)
	faults := vendorTable(
		[]string{"42", "", "printer out of ribbon", "2024-01-01", "10:00"},
	)

	s := &recon.VendorStrategy{Tolerance: 30 * time.Minute}
	results, err := s.Reconcile(faults, log)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, recon.StatusFoundByIDTime, r.Status)
	assert.Equal(t, "INC002", r.TicketKey)
	assert.Equal(t, recon.CategoryReceiptPrint, r.Category)
}

func TestVendorReconcileIDOnly(t *testing.T) {
	log := ticketLog(t,
		[]string{"42", "INC005", "2024-06-01 10:00:00", "", "Communications", ""},
		[]string{"42", "INC001", "2024-02-01 10:00:00", "", "Communications", ""},
	)
	faults := vendorTable(
		[]string{"42", "", "hardware", "2024-01-01", "10:00"},
	)

	s := &recon.VendorStrategy{Tolerance: 30 * time.Minute}
	results, err := s.Reconcile(faults, log)
	require.NoError(t, err)
	require.Len(t, results, 1)

	// Nothing within tolerance: fall back to the earliest ticket on the ATM.
	r := results[0]
	assert.Equal(t, recon.StatusFoundByIDOnly, r.Status)
	assert.Equal(t, "INC001", r.TicketKey)
}

func TestVendorReconcileNotFound(t *testing.T) {
	log := ticketLog(t,
		[]string{"7", "INC001", "2024-01-01 10:00:00", "", "Communications", ""},
	)
	faults := vendorTable(
		[]string{"42", "", "screen failure", "2024-01-01", "10:00"},
	)

	s := &recon.VendorStrategy{Tolerance: 30 * time.Minute}
	results, err := s.Reconcile(faults, log)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, recon.StatusNotFound, results[0].Status)
	assert.Equal(t, recon.NoTicket, results[0].TicketKey)
}

// Without a reference hit and without a parsable start the record is dropped.
func TestVendorReconcileDropsTimelessRecords(t *testing.T) {
	log := ticketLog(t,
		[]string{"42", "INC001", "2024-01-01 10:00:00", "", "Communications", ""},
	)
	faults := vendorTable(
		[]string{"42", "", "hardware", "bad date", "10:00"},
		[]string{"42", "nan", "hardware", "", ""},
		[]string{"42", "WO-999", "hardware", "", ""},
		[]string{"42", "", "hardware", "2024-01-01", "10:10"},
	)

	s := &recon.VendorStrategy{Tolerance: 30 * time.Minute}
	results, err := s.Reconcile(faults, log)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, recon.StatusFoundByIDTime, results[0].Status)
}

// A vendor dump without start columns still resolves work-order references.
func TestVendorReconcileReferenceOnlyDump(t *testing.T) {
	log := ticketLog(t,
		[]string{"42", "INC001", "2024-01-01 10:00:00", "", "Communications", "WO-777"},
	)
	faults := tabular.New(
		[]string{"ATM", "WO", "FAULT DESCRIPTION"},
		[][]string{
			{"42", "WO-777", "hardware"},
			{"42", "", "hardware"},
		},
	)

	s := &recon.VendorStrategy{Tolerance: 30 * time.Minute}
	results, err := s.Reconcile(faults, log)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, recon.StatusFoundByReference, results[0].Status)
	assert.Equal(t, "INC001", results[0].TicketKey)
}
