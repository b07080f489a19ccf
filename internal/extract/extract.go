// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns a parsed EFetch document into flat report rows,
// keeping only authors whose affiliation looks non-academic.
package extract

import (
	"strings"

	"github.com/pdiddy/pubmed-papers/internal/xmltree"
	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// Element paths within the EFetch document. Every lookup takes the first
// match at any depth below the article or author node. Only the title reads
// through inline markup; every other field is the element's own leading text,
// so an Email nested in an Affiliation stays out of the affiliation.
const (
	articlePath     = ".//PubmedArticle"
	pmidPath        = ".//PMID"
	titlePath       = ".//ArticleTitle"
	yearPath        = ".//PubDate/Year"
	authorPath      = ".//Author"
	lastNamePath    = "LastName"
	foreNamePath    = "ForeName"
	collectivePath  = "CollectiveName"
	affiliationPath = ".//Affiliation"
	emailPath       = ".//AffiliationInfo/Affiliation/Email"
)

// AcademicKeyword marks an affiliation as academic when it appears in the
// lowercased affiliation string. Other academic markers ("institute",
// "college") are deliberately not checked.
const AcademicKeyword = "university"

const listSep = ", "

// Summary counts what Records saw and kept.
type Summary struct {
	Articles     int
	AuthorsSeen  int
	AuthorsKept  int
	EmailMissing int
}

// IsNonAcademic reports whether an author with this affiliation is kept:
// the affiliation must be present, non-empty, and free of AcademicKeyword
// in any letter case.
func IsNonAcademic(affiliation types.OptionalString) bool {
	if !affiliation.Present() {
		return false
	}
	return !strings.Contains(strings.ToLower(affiliation.Value), AcademicKeyword)
}

// article holds the raw, possibly absent fields of one PubmedArticle before
// default substitution.
type article struct {
	pmid    types.OptionalString
	title   types.OptionalString
	year    types.OptionalString
	email   types.OptionalString
	authors []types.AuthorEntry
}

// record applies the per-field defaults: absent text fields become empty
// and an absent or empty email becomes types.NoEmail.
func (a article) record() types.PaperRecord {
	names := make([]string, len(a.authors))
	affiliations := make([]string, len(a.authors))
	for i, au := range a.authors {
		names[i] = au.Name
		affiliations[i] = au.Affiliation
	}
	return types.PaperRecord{
		PubmedID:           a.pmid.Or(""),
		Title:              a.title.Or(""),
		PublicationDate:    a.year.Or(""),
		Authors:            strings.Join(names, listSep),
		Affiliations:       strings.Join(affiliations, listSep),
		CorrespondingEmail: a.email.OrIfEmpty(types.NoEmail),
	}
}

// Records returns one PaperRecord per PubmedArticle in doc, in document
// order. Missing elements never cause an error; a nil doc yields no records.
func Records(doc *xmltree.Node) []types.PaperRecord {
	records, _ := RecordsWithSummary(doc)
	return records
}

// RecordsWithSummary is Records plus counts for diagnostics.
func RecordsWithSummary(doc *xmltree.Node) ([]types.PaperRecord, Summary) {
	var sum Summary
	nodes := doc.FindAll(articlePath)
	records := make([]types.PaperRecord, 0, len(nodes))
	for _, n := range nodes {
		a := parseArticle(n, &sum)
		if !a.email.Present() {
			sum.EmailMissing++
		}
		records = append(records, a.record())
	}
	sum.Articles = len(records)
	return records, sum
}

func parseArticle(n *xmltree.Node, sum *Summary) article {
	a := article{
		pmid:  n.FindText(pmidPath),
		title: n.FindInnerText(titlePath),
		year:  n.FindText(yearPath),
		email: n.FindText(emailPath),
	}
	for _, au := range n.FindAll(authorPath) {
		sum.AuthorsSeen++
		if entry, ok := authorEntry(au); ok {
			a.authors = append(a.authors, entry)
			sum.AuthorsKept++
		}
	}
	return a
}

// authorEntry builds the entry for a qualifying author. The filter runs
// before construction so no entry exists for a dropped author.
func authorEntry(n *xmltree.Node) (types.AuthorEntry, bool) {
	affiliation := n.FindText(affiliationPath)
	if !IsNonAcademic(affiliation) {
		return types.AuthorEntry{}, false
	}
	return types.AuthorEntry{
		Name:        authorName(n),
		Affiliation: affiliation.Value,
	}, true
}

// authorName joins ForeName and LastName with a space, skipping a missing
// part. Group authors without either part fall back to CollectiveName.
func authorName(n *xmltree.Node) string {
	var parts []string
	if fore := n.FindText(foreNamePath); fore.Present() {
		parts = append(parts, fore.Value)
	}
	if last := n.FindText(lastNamePath); last.Present() {
		parts = append(parts, last.Value)
	}
	if len(parts) == 0 {
		return n.FindText(collectivePath).Or("")
	}
	return strings.Join(parts, " ")
}
