// Package ingest reads CSV exports of the operational spreadsheets into the
// tabular model consumed by the reconciliation engine.
package ingest

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/bankops/atmrecon/pkg/errors"
	"github.com/bankops/atmrecon/pkg/tabular"
)

// ReadTable reads a CSV stream whose first record is the header row.
// Rows may be ragged; fields are not padded.
func ReadTable(r io.Reader) (*tabular.Table, error) {
	records, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.ErrEmptyTable
	}
	return tabular.New(records[0], records[1:]), nil
}

// ReadRawTable reads a CSV stream with no trusted header: every record
// becomes a data row. Raw downtime dumps carry report banners before the
// true header, which the engine locates itself.
func ReadRawTable(r io.Reader) (*tabular.Table, error) {
	records, err := readAll(r)
	if err != nil {
		return nil, err
	}
	return tabular.New(nil, records), nil
}

// OpenTable reads a headered CSV file from disk.
func OpenTable(path string) (*tabular.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	t, err := ReadTable(f)
	if err != nil {
		return nil, errors.WrapParse("csv", path, err)
	}
	return t, nil
}

// OpenRawTable reads a headerless CSV file from disk.
func OpenRawTable(path string) (*tabular.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	t, err := ReadRawTable(f)
	if err != nil {
		return nil, errors.WrapParse("csv", path, err)
	}
	return t, nil
}

func readAll(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	// Source spreadsheets are ragged; do not enforce a fixed field count.
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
