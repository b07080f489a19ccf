// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one invocation end to end: search for IDs, fetch
// their records, extract report rows, and write the report.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/pubmed-papers/internal/extract"
	"github.com/pdiddy/pubmed-papers/internal/report"
	"github.com/pdiddy/pubmed-papers/internal/xmltree"
	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// Notices printed to the user on the two normal outcomes.
const (
	NoResultsNotice = "No relevant papers found."
	savedNoticeFmt  = "Results saved to %s\n"
)

// Searcher finds PubMed IDs for a query.
type Searcher interface {
	SearchIDs(ctx context.Context, query string) ([]string, error)
}

// Fetcher retrieves the record document for a batch of IDs.
type Fetcher interface {
	FetchDetails(ctx context.Context, ids []string) (*xmltree.Node, error)
}

// Source is both halves of the E-utilities client.
type Source interface {
	Searcher
	Fetcher
}

// Options controls a single run.
type Options struct {
	Query  string
	Output types.OutputConfig

	// Out receives user-facing notices and the optional preview table.
	Out io.Writer

	// Debug receives diagnostics. Nil discards them.
	Debug io.Writer
}

// Summary describes what a run produced.
type Summary struct {
	IDs     []string
	Records []types.PaperRecord
	Extract extract.Summary

	// Written is false when no records were found and no file was created.
	Written bool
}

// Run executes the pipeline once. Every error is returned with the failing
// stage named; nothing is retried. Finding no records is not an error: the
// no-results notice is printed and no file is written.
func Run(ctx context.Context, src Source, opts Options) (Summary, error) {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	debug := opts.Debug
	if debug == nil {
		debug = io.Discard
	}

	var sum Summary

	ids, err := src.SearchIDs(ctx, opts.Query)
	if err != nil {
		return sum, fmt.Errorf("searching PubMed: %w", err)
	}
	sum.IDs = ids
	fmt.Fprintf(debug, "debug: %d IDs found\n", len(ids))

	doc, err := src.FetchDetails(ctx, ids)
	if err != nil {
		return sum, fmt.Errorf("fetching paper details: %w", err)
	}

	sum.Records, sum.Extract = extract.RecordsWithSummary(doc)
	fmt.Fprintf(debug, "debug: %d articles, %d of %d authors kept, %d without email\n",
		sum.Extract.Articles, sum.Extract.AuthorsKept, sum.Extract.AuthorsSeen, sum.Extract.EmailMissing)

	if len(sum.Records) == 0 {
		fmt.Fprintln(out, NoResultsNotice)
		return sum, nil
	}

	if opts.Output.Preview {
		report.FormatTable(sum.Records, out)
	}

	if err := report.Write(opts.Output.File, opts.Output.Format, sum.Records); err != nil {
		return sum, fmt.Errorf("writing report: %w", err)
	}
	sum.Written = true

	if opts.Output.DB != "" {
		if err := report.ExportSQLite(ctx, opts.Output.DB, sum.Records); err != nil {
			return sum, fmt.Errorf("exporting to %s: %w", opts.Output.DB, err)
		}
		fmt.Fprintf(debug, "debug: exported %d rows to %s\n", len(sum.Records), opts.Output.DB)
	}

	fmt.Fprintf(out, savedNoticeFmt, opts.Output.File)
	return sum, nil
}
