// Package query executes read-only SQL against the database snapshot.
package query

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/matsen/zotpick/internal/snapshot"
	_ "modernc.org/sqlite"
)

// ErrQueryFailed indicates the engine reported an error for a query.
var ErrQueryFailed = errors.New("query failed")

// Runner executes queries against the snapshot. Every Run call
// re-validates the snapshot first, so staleness is bounded by query
// frequency rather than by explicit invalidation events.
type Runner struct {
	snap *snapshot.Manager
}

// NewRunner creates a runner over the given snapshot manager.
func NewRunner(snap *snapshot.Manager) *Runner {
	return &Runner{snap: snap}
}

// Run ensures the snapshot is current, then executes a single read-only
// query and returns all rows with every column rendered as a string
// (SQL NULL becomes ""). Engine errors are returned as errors wrapping
// ErrQueryFailed, never as data.
func (r *Runner) Run(query string, args ...any) ([][]string, error) {
	path, err := r.snap.Ensure()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	defer db.Close()

	// The snapshot is owned exclusively; a single connection is enough.
	db.SetMaxOpenConns(1)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}

	var result [][]string
	for rows.Next() {
		values := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
		}

		row := make([]string, len(cols))
		for i, v := range values {
			row[i] = v.String
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}

	return result, nil
}
