// Package catalog indexes the tool table in an in-memory SQLite database so
// clients can discover tools by keyword.
package catalog

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/rachitkumarrastogi/unity-mcp-server/pkg/types"
)

// Index provides keyword search over tool entries.
type Index struct {
	db    *sql.DB
	count int
}

// NewIndex loads entries into a fresh in-memory database. Entry order is
// kept as the display order within each category.
func NewIndex(entries []types.ToolEntry) (*Index, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}

	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	idx := &Index{db: db}
	if err := idx.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	if err := idx.load(entries); err != nil {
		db.Close()
		return nil, err
	}
	return idx, nil
}

func (idx *Index) createTables() error {
	schema := `
	CREATE TABLE tools (
		position INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE INDEX idx_tools_category ON tools(category, position);
	`
	_, err := idx.db.Exec(schema)
	return err
}

func (idx *Index) load(entries []types.ToolEntry) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO tools (position, name, description, category) VALUES (?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.Exec(i, e.Name, e.Description, e.Category); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to index tool %s: %w", e.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	idx.count = len(entries)
	return nil
}

// Close releases the database.
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// Len returns the number of indexed tools.
func (idx *Index) Len() int {
	return idx.count
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search returns the tools whose name, description or category contains
// query, ignoring case, grouped by category. Categories are sorted and tools
// keep their table order. An empty query lists every tool.
func (idx *Index) Search(query string) ([]types.ToolGroup, error) {
	query = strings.TrimSpace(query)

	var args []interface{}
	whereClause := ""
	if query != "" {
		// LIKE is case-insensitive for ASCII in SQLite
		whereClause = `WHERE name LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\' OR category LIKE ? ESCAPE '\'`
		pattern := "%" + likeEscaper.Replace(query) + "%"
		args = append(args, pattern, pattern, pattern)
	}

	rows, err := idx.db.Query(fmt.Sprintf(`
		SELECT name, description, category
		FROM tools
		%s
		ORDER BY category, position
	`, whereClause), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]types.ToolGroup, 0)
	for rows.Next() {
		var e types.ToolEntry
		if err := rows.Scan(&e.Name, &e.Description, &e.Category); err != nil {
			return nil, err
		}
		if n := len(groups); n == 0 || groups[n-1].Category != e.Category {
			groups = append(groups, types.ToolGroup{Category: e.Category})
		}
		last := &groups[len(groups)-1]
		last.Tools = append(last.Tools, e)
	}
	return groups, rows.Err()
}
