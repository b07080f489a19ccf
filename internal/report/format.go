// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// Write writes records to path in the given format. An existing file is
// overwritten.
func Write(path string, format types.OutputFormat, records []types.PaperRecord) error {
	switch format {
	case types.FormatCSV, "":
		return WriteCSV(path, records)
	case types.FormatJSON:
		return writeFile(path, records, FormatJSON)
	case types.FormatYAML:
		return writeFile(path, records, FormatYAML)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func writeFile(path string, records []types.PaperRecord, encode func([]types.PaperRecord, io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := encode(records, f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// FormatJSON writes records as an indented JSON array keyed by the CSV
// column names.
func FormatJSON(records []types.PaperRecord, w io.Writer) error {
	if records == nil {
		records = []types.PaperRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// FormatYAML writes records as a YAML list keyed by the CSV column names.
func FormatYAML(records []types.PaperRecord, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(records)
}

// FormatTable writes a human-readable preview of records to w.
func FormatTable(records []types.PaperRecord, w io.Writer) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records.")
		return
	}

	fmt.Fprintf(w, "%-10s  %-50s  %-4s  %-30s  %s\n",
		"PMID", "Title", "Year", "Non-academic Author(s)", "Email")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, r := range records {
		fmt.Fprintf(w, "%-10s  %-50s  %-4s  %-30s  %s\n",
			r.PubmedID, truncate(r.Title, 50), r.PublicationDate, truncate(r.Authors, 30), r.CorrespondingEmail)
	}

	fmt.Fprintf(w, "\n%d records\n", len(records))
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
