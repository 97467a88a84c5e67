package ingest_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankops/atmrecon/internal/ingest"
	"github.com/bankops/atmrecon/pkg/errors"
)

func TestReadTable(t *testing.T) {
	csv := "ATM,FAULT SUMMARY\n42,dispenser failure\n7,host down\n"

	table, err := ingest.ReadTable(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []string{"ATM", "FAULT SUMMARY"}, table.Headers)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "dispenser failure", table.Cell(0, 1))
}

func TestReadTableRaggedRows(t *testing.T) {
	csv := "A,B,C\n1,2,3\n4,5\n6\n"

	table, err := ingest.ReadTable(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())
	assert.Equal(t, "5", table.Cell(1, 1))
	assert.Equal(t, "", table.Cell(1, 2))
}

func TestReadTableEmpty(t *testing.T) {
	_, err := ingest.ReadTable(strings.NewReader(""))
	assert.ErrorIs(t, err, errors.ErrEmptyTable)
}

func TestReadRawTable(t *testing.T) {
	csv := "Downtime Report,,\nID,TICKET KEY,START TIME\n42,INC001,2024-01-01 10:00:00\n"

	table, err := ingest.ReadRawTable(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Nil(t, table.Headers, "raw dumps carry no trusted header")
	require.Equal(t, 3, table.Len())
	assert.Equal(t, "Downtime Report", table.Cell(0, 0))

	// An empty stream is a valid raw table; usability is judged later.
	table, err = ingest.ReadRawTable(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestOpenTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faults.csv")
	require.NoError(t, os.WriteFile(path, []byte("ATM,FAULT SUMMARY\n42,cash out\n"), 0o644))

	table, err := ingest.OpenTable(path)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}

func TestOpenTableMissingFile(t *testing.T) {
	_, err := ingest.OpenTable(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)

	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestOpenTableMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("A,B\n\"unterminated\n"), 0o644))

	_, err := ingest.OpenTable(path)
	require.Error(t, err)

	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}
