package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/matsen/citejump/internal/bib"
)

// DB is an ephemeral SQLite view over a set of bibliography entries. It is
// rebuilt from JSONL on open; nothing is ever written back.
type DB struct {
	db *sql.DB
}

const entriesDDL = `CREATE TABLE IF NOT EXISTS entries (
  idx INTEGER,
  id TEXT PRIMARY KEY,
  title TEXT,
  year TEXT,
  arxiv_id TEXT,
  doi TEXT,
  author_text TEXT,
  author_count INTEGER,
  authors TEXT,
  journal TEXT,
  volume TEXT,
  page TEXT,
  article_id TEXT
)`

var entriesIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_entries_year ON entries(year)",
	"CREATE INDEX IF NOT EXISTS idx_entries_doi ON entries(doi)",
}

// Open opens (or creates) a SQLite database at path. Use ":memory:" for a
// fully ephemeral view.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(entriesDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	for _, ddl := range entriesIndexes {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating index: %w", err)
		}
	}
	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Load replaces the table contents with the given entries.
func (d *DB) Load(entries []bib.Entry) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entries"); err != nil {
		return fmt.Errorf("clearing entries: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO entries
		(idx, id, title, year, arxiv_id, doi, author_text, author_count, authors, journal, volume, page, article_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		authors, err := json.Marshal(e.AuthorLastNames)
		if err != nil {
			return fmt.Errorf("encoding authors for %s: %w", e.ID, err)
		}
		var journal, volume, page, articleID string
		if p := e.Publication; p != nil {
			journal, volume, page, articleID = p.JournalTitle, p.JournalVolume, p.PageStart, p.ArticleID
		}
		if _, err := stmt.Exec(e.Index, e.ID, e.Title, e.Year, e.ArxivID, e.DOI,
			e.AuthorText, e.AuthorCount, string(authors), journal, volume, page, articleID); err != nil {
			return fmt.Errorf("inserting entry %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

// GetByID returns the entry with the given stable id, or nil.
func (d *DB) GetByID(id string) (*bib.Entry, error) {
	rows, err := d.db.Query(selectColumns+" WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("querying entry: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

// Search returns entries filtered by author surname substring and/or exact
// year, ordered by bibliography position. Empty filters match everything.
func (d *DB) Search(author, year string) ([]bib.Entry, error) {
	query := selectColumns
	var conds []string
	var args []any
	if author != "" {
		conds = append(conds, "(authors LIKE ? OR author_text LIKE ?)")
		pattern := "%" + author + "%"
		args = append(args, pattern, pattern)
	}
	if year != "" {
		conds = append(conds, "year = ?")
		args = append(args, year)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY idx"

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Count returns the number of loaded entries.
func (d *DB) Count() (int, error) {
	var n int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return n, nil
}

const selectColumns = `SELECT idx, id, title, year, arxiv_id, doi, author_text, author_count, authors, journal, volume, page, article_id FROM entries`

func scanEntries(rows *sql.Rows) ([]bib.Entry, error) {
	var entries []bib.Entry
	for rows.Next() {
		var e bib.Entry
		var authors, journal, volume, page, articleID string
		if err := rows.Scan(&e.Index, &e.ID, &e.Title, &e.Year, &e.ArxivID, &e.DOI,
			&e.AuthorText, &e.AuthorCount, &authors, &journal, &volume, &page, &articleID); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		if authors != "" {
			if err := json.Unmarshal([]byte(authors), &e.AuthorLastNames); err != nil {
				return nil, fmt.Errorf("decoding authors for %s: %w", e.ID, err)
			}
		}
		if journal != "" || volume != "" || page != "" || articleID != "" {
			e.Publication = &bib.Publication{
				JournalTitle:  journal,
				JournalVolume: volume,
				PageStart:     page,
				ArticleID:     articleID,
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
