// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// ExportSQLite writes records into the papers table of the SQLite database
// at path, replacing whatever the table held before. The table mirrors the
// CSV columns plus the row position so report order can be restored.
func ExportSQLite(ctx context.Context, path string, records []types.PaperRecord) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	statements := []string{
		`DROP TABLE IF EXISTS papers`,
		`CREATE TABLE papers (
			position INTEGER PRIMARY KEY,
			pubmed_id TEXT NOT NULL,
			title TEXT NOT NULL,
			publication_date TEXT NOT NULL,
			authors TEXT NOT NULL,
			affiliations TEXT NOT NULL,
			corresponding_email TEXT NOT NULL
		)`,
		`CREATE INDEX idx_papers_pubmed_id ON papers(pubmed_id)`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO papers
		(position, pubmed_id, title, publication_date, authors, affiliations, corresponding_email)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, i, r.PubmedID, r.Title, r.PublicationDate,
			r.Authors, r.Affiliations, r.CorrespondingEmail); err != nil {
			return fmt.Errorf("inserting paper %s: %w", r.PubmedID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing export: %w", err)
	}
	return nil
}

// LoadSQLite reads the papers table written by ExportSQLite, in report order.
func LoadSQLite(ctx context.Context, path string) ([]types.PaperRecord, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT pubmed_id, title, publication_date,
		authors, affiliations, corresponding_email FROM papers ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var records []types.PaperRecord
	for rows.Next() {
		var r types.PaperRecord
		if err := rows.Scan(&r.PubmedID, &r.Title, &r.PublicationDate,
			&r.Authors, &r.Affiliations, &r.CorrespondingEmail); err != nil {
			return nil, fmt.Errorf("scanning paper: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
