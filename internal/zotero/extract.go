// Package zotero extracts normalized reference records from a Zotero
// SQLite database.
//
// Extraction runs exactly two queries regardless of library size: one
// for all creators, one for all items with their multi-valued fields
// pivoted into columns. The two result sets are joined in memory by
// item ID.
package zotero

import (
	"fmt"
	"strconv"

	"github.com/matsen/zotpick/internal/query"
	"github.com/matsen/zotpick/internal/reference"
)

// Extractor loads references through a query runner.
type Extractor struct {
	runner *query.Runner
}

// New creates an extractor over the given runner.
func New(runner *query.Runner) *Extractor {
	return &Extractor{runner: runner}
}

// LoadAll extracts every reference from the source database.
//
// A zero-item library yields an empty slice and a nil error; that is a
// reportable outcome for the caller, not a failure. Query errors abort
// the load.
func (e *Extractor) LoadAll() ([]reference.Reference, error) {
	authors, err := e.loadAuthors()
	if err != nil {
		return nil, err
	}

	rows, err := e.runner.Run(itemsQuery, maxItems)
	if err != nil {
		return nil, err
	}

	refs := make([]reference.Reference, 0, len(rows))
	for _, row := range rows {
		itemID, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing item ID %q: %w", row[0], err)
		}

		title := row[3]
		if title == "" {
			title = reference.DefaultTitle
		}

		refs = append(refs, reference.Reference{
			ItemID:         itemID,
			Key:            row[1],
			Type:           row[2],
			Title:          title,
			Year:           reference.ExtractYear(row[4]),
			URL:            row[5],
			Extra:          reference.ParseExtra(row[6]),
			Abstract:       row[7],
			Publication:    row[8],
			AuthorsDisplay: reference.FormatAuthors(authors[itemID]),
		})
	}

	return refs, nil
}

// loadAuthors builds the item ID → ordered author list mapping. Each
// list is capped at maxAuthors during the build; order of arrival
// matters since the query sorts by creator-role priority.
func (e *Extractor) loadAuthors() (map[int64][]reference.Author, error) {
	rows, err := e.runner.Run(authorsQuery)
	if err != nil {
		return nil, err
	}

	authors := make(map[int64][]reference.Author)
	for _, row := range rows {
		itemID, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing item ID %q: %w", row[0], err)
		}
		if len(authors[itemID]) >= maxAuthors {
			continue
		}
		authors[itemID] = append(authors[itemID], reference.Author{
			Last:  row[1],
			First: row[2],
		})
	}

	return authors, nil
}
