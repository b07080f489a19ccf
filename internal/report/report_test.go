// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-papers/pkg/types"
)

func sampleRecords() []types.PaperRecord {
	return []types.PaperRecord{
		{
			PubmedID:           "38000001",
			Title:              `Antibodies, "quoted" titles, and commas`,
			PublicationDate:    "2024",
			Authors:            "Jane Doe, Min Kim",
			Affiliations:       "Acme Corp, Boston, MA., Genentech Inc.",
			CorrespondingEmail: "jane@acme.example",
		},
		{
			PubmedID:           "38000002",
			Title:              "Line\nbreak in title",
			PublicationDate:    "",
			Authors:            "",
			Affiliations:       "",
			CorrespondingEmail: types.NoEmail,
		},
		{
			PubmedID:           "38000003",
			Title:              "Ünïcödé: résumé",
			PublicationDate:    "2022",
			Authors:            "Søren Ødegård",
			Affiliations:       "Novo Nordisk A/S",
			CorrespondingEmail: types.NoEmail,
		},
	}
}

// --- CSV ---

func TestWriteCSVHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, WriteCSV(path, sampleRecords()[:1]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "PubmedID,Title,Publication Date,Non-academic Author(s),Company Affiliation(s),Corresponding Author Email", lines[0])
	assert.Equal(t, `38000001,"Antibodies, ""quoted"" titles, and commas",2024,"Jane Doe, Min Kim","Acme Corp, Boston, MA., Genentech Inc.",jane@acme.example`, lines[1])
}

func TestCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	want := sampleRecords()

	require.NoError(t, WriteCSV(path, want))
	got, err := ReadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestWriteCSVRowCount(t *testing.T) {
	for _, n := range []int{0, 1, 10} {
		records := make([]types.PaperRecord, n)
		for i := range records {
			records[i] = types.PaperRecord{PubmedID: string(rune('a' + i)), CorrespondingEmail: types.NoEmail}
		}

		var buf bytes.Buffer
		require.NoError(t, EncodeCSV(&buf, records))
		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		assert.Len(t, lines, n+1, "header plus %d rows", n)
	}
}

func TestWriteCSVOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("stale content\n", 100)), 0o644))

	require.NoError(t, WriteCSV(path, sampleRecords()[:1]))

	got, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestWriteCSVUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "results.csv")
	err := WriteCSV(path, sampleRecords())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating")
}

func TestDecodeCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"empty", "", "missing header"},
		{"wrong header", "a,b,c,d,e,f\n", "unexpected header"},
		{"short row", strings.Join(types.CSVHeader, ",") + "\n1,2,3\n", "wrong number of fields"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

// --- Other formats ---

func TestWriteFormats(t *testing.T) {
	dir := t.TempDir()
	records := sampleRecords()

	jsonPath := filepath.Join(dir, "results.json")
	require.NoError(t, Write(jsonPath, types.FormatJSON, records))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var fromJSON []types.PaperRecord
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	assert.Equal(t, records, fromJSON)
	assert.Contains(t, string(data), `"Corresponding Author Email": "N/A"`)

	yamlPath := filepath.Join(dir, "results.yaml")
	require.NoError(t, Write(yamlPath, types.FormatYAML, records))
	data, err = os.ReadFile(yamlPath)
	require.NoError(t, err)
	var fromYAML []types.PaperRecord
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	assert.Equal(t, records, fromYAML)

	csvPath := filepath.Join(dir, "results.csv")
	require.NoError(t, Write(csvPath, "", records))
	fromCSV, err := ReadCSV(csvPath)
	require.NoError(t, err)
	assert.Equal(t, records, fromCSV)

	assert.Error(t, Write(filepath.Join(dir, "x"), "xlsx", records))
}

func TestFormatJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(nil, &buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(sampleRecords(), &buf)
	out := buf.String()

	assert.Contains(t, out, "PMID")
	assert.Contains(t, out, "38000003")
	assert.Contains(t, out, "3 records")

	buf.Reset()
	FormatTable(nil, &buf)
	assert.Equal(t, "No records.\n", buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ÄÖÜ...", truncate("ÄÖÜßäöü", 6))
}

// --- SQLite ---

func TestExportSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papers.db")
	ctx := context.Background()

	require.NoError(t, ExportSQLite(ctx, path, sampleRecords()))
	got, err := LoadSQLite(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), got)

	// A second export replaces the table rather than appending.
	require.NoError(t, ExportSQLite(ctx, path, sampleRecords()[:1]))
	got, err = LoadSQLite(ctx, path)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
