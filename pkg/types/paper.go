// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pubmed-papers pipeline:
// the flattened report row, the author entries it is built from, and the
// CLI configuration.
package types

// NoEmail is written in place of a missing corresponding-author email.
const NoEmail = "N/A"

// CSVHeader is the fixed header row of every report, in column order.
var CSVHeader = []string{
	"PubmedID",
	"Title",
	"Publication Date",
	"Non-academic Author(s)",
	"Company Affiliation(s)",
	"Corresponding Author Email",
}

// AuthorEntry is an author that passed the affiliation filter. Entries are
// never built for authors that were dropped.
type AuthorEntry struct {
	// Name is "First Last" as assembled from the author's name parts.
	Name string `json:"name" yaml:"name"`

	// Affiliation is the first affiliation string found for the author.
	Affiliation string `json:"affiliation" yaml:"affiliation"`
}

// PaperRecord is one report row. Every field is a flat string; list-valued
// columns are joined with ", " in parallel order.
type PaperRecord struct {
	// PubmedID is the PMID of the article.
	PubmedID string `json:"PubmedID" yaml:"PubmedID"`

	// Title is the article title.
	Title string `json:"Title" yaml:"Title"`

	// PublicationDate is the publication year.
	PublicationDate string `json:"Publication Date" yaml:"Publication Date"`

	// Authors lists the qualifying author names.
	Authors string `json:"Non-academic Author(s)" yaml:"Non-academic Author(s)"`

	// Affiliations lists the qualifying authors' affiliations, one per author.
	Affiliations string `json:"Company Affiliation(s)" yaml:"Company Affiliation(s)"`

	// CorrespondingEmail is the corresponding-author email, or NoEmail.
	CorrespondingEmail string `json:"Corresponding Author Email" yaml:"Corresponding Author Email"`
}

// Row returns the record's fields in CSVHeader order.
func (r PaperRecord) Row() []string {
	return []string{
		r.PubmedID,
		r.Title,
		r.PublicationDate,
		r.Authors,
		r.Affiliations,
		r.CorrespondingEmail,
	}
}

// RecordFromRow is the inverse of Row. It returns false when row does not
// have exactly one value per header column.
func RecordFromRow(row []string) (PaperRecord, bool) {
	if len(row) != len(CSVHeader) {
		return PaperRecord{}, false
	}
	return PaperRecord{
		PubmedID:           row[0],
		Title:              row[1],
		PublicationDate:    row[2],
		Authors:            row[3],
		Affiliations:       row[4],
		CorrespondingEmail: row[5],
	}, true
}

// OptionalString is a value that may be absent from the source document.
// The zero value is absent.
type OptionalString struct {
	Value string
	Valid bool
}

// Some returns a present OptionalString holding s.
func Some(s string) OptionalString {
	return OptionalString{Value: s, Valid: true}
}

// Or returns the value when present, or def when absent.
func (o OptionalString) Or(def string) string {
	if !o.Valid {
		return def
	}
	return o.Value
}

// OrIfEmpty returns def when the value is absent or the empty string.
func (o OptionalString) OrIfEmpty(def string) string {
	if !o.Valid || o.Value == "" {
		return def
	}
	return o.Value
}

// Present reports whether the value exists and is non-empty.
func (o OptionalString) Present() bool {
	return o.Valid && o.Value != ""
}
