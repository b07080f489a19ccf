package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowMatchesHeader(t *testing.T) {
	r := PaperRecord{
		PubmedID:           "1",
		Title:              "T",
		PublicationDate:    "2024",
		Authors:            "Jane Doe",
		Affiliations:       "Acme Corp",
		CorrespondingEmail: NoEmail,
	}
	row := r.Row()
	require.Len(t, row, len(CSVHeader))

	back, ok := RecordFromRow(row)
	assert.True(t, ok)
	assert.Equal(t, r, back)

	_, ok = RecordFromRow(row[:5])
	assert.False(t, ok)
}

func TestOptionalString(t *testing.T) {
	var absent OptionalString
	assert.Equal(t, "d", absent.Or("d"))
	assert.Equal(t, "d", absent.OrIfEmpty("d"))
	assert.False(t, absent.Present())

	empty := Some("")
	assert.Equal(t, "", empty.Or("d"))
	assert.Equal(t, "d", empty.OrIfEmpty("d"))
	assert.False(t, empty.Present())

	v := Some("x")
	assert.Equal(t, "x", v.Or("d"))
	assert.Equal(t, "x", v.OrIfEmpty("d"))
	assert.True(t, v.Present())
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			HTTP:   HTTPConfig{UserAgent: "get-papers-list/dev"},
			Output: OutputConfig{File: "results.csv", Format: FormatCSV},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"json format", func(c *Config) { c.Output.Format = FormatJSON }, ""},
		{"yaml format", func(c *Config) { c.Output.Format = FormatYAML }, ""},
		{"email set", func(c *Config) { c.NCBI.Email = "dev@example.com" }, ""},
		{"unknown format", func(c *Config) { c.Output.Format = "xlsx" }, "Config.Output.Format"},
		{"missing file", func(c *Config) { c.Output.File = "" }, "Config.Output.File"},
		{"bad email", func(c *Config) { c.NCBI.Email = "not-an-email" }, "Config.NCBI.Email"},
		{"missing user agent", func(c *Config) { c.HTTP.UserAgent = "" }, "Config.HTTP.UserAgent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
