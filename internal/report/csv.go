// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report serializes PaperRecords: the CSV report (the default
// output), JSON and YAML renditions of the same rows, a terminal preview
// table, and an optional SQLite export.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// WriteCSV writes records to path as a header row followed by one row per
// record, in order. An existing file is truncated. The file is closed
// before WriteCSV returns, and a failed close is reported.
func WriteCSV(path string, records []types.PaperRecord) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := EncodeCSV(f, records); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// EncodeCSV writes the header and records to w.
func EncodeCSV(w io.Writer, records []types.PaperRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(types.CSVHeader); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(r.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV loads a report written by WriteCSV.
func ReadCSV(path string) ([]types.PaperRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := DecodeCSV(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return records, nil
}

// DecodeCSV parses a report from r. The first row must equal
// types.CSVHeader.
func DecodeCSV(r io.Reader) ([]types.PaperRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(types.CSVHeader)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("missing header row")
	}
	if err != nil {
		return nil, err
	}
	if !slices.Equal(header, types.CSVHeader) {
		return nil, fmt.Errorf("unexpected header %q", header)
	}

	var records []types.PaperRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rec, _ := types.RecordFromRow(row)
		records = append(records, rec)
	}
	return records, nil
}
