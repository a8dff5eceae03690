// Package search implements the first-match license search: scan the catalog
// in order, stop at the first file containing the query and highlight that
// occurrence.
package search

import (
	apperrors "github.com/computerscienceiscool/license-search/internal/errors"
	"github.com/computerscienceiscool/license-search/pkg/license"
	"github.com/computerscienceiscool/license-search/pkg/sandbox"
)

// Kind tags a Result.
type Kind int

const (
	NoQuery Kind = iota
	Found
	NotFound
)

func (k Kind) String() string {
	switch k {
	case NoQuery:
		return "no_query"
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Result is the outcome of a single search. Label and Highlight are only set
// when Kind is Found. Scanned counts the files that were read.
type Result struct {
	Kind      Kind
	Label     string
	Highlight Highlight
	Scanned   int
}

// Handler searches a fixed catalog through a FileReader. It holds no mutable
// state and is safe for concurrent use when its reader is.
type Handler struct {
	catalog *license.Catalog
	reader  sandbox.FileReader
}

// NewHandler creates a handler over catalog.
func NewHandler(catalog *license.Catalog, reader sandbox.FileReader) *Handler {
	return &Handler{catalog: catalog, reader: reader}
}

// Catalog returns the catalog the handler searches.
func (h *Handler) Catalog() *license.Catalog {
	return h.catalog
}

// Handle runs one search. An empty query yields NoQuery without touching the
// filesystem. A file that cannot be read aborts the search with a
// *errors.ReadError.
func (h *Handler) Handle(query string) (Result, error) {
	if query == "" {
		return Result{Kind: NoQuery}, nil
	}

	var scanned int
	for _, entry := range h.catalog.Entries() {
		content, err := h.reader.ReadFile(entry.File)
		scanned++
		if err != nil {
			return Result{Scanned: scanned}, &apperrors.ReadError{Entry: entry.Name, Path: entry.File, Err: err}
		}

		if hl, ok := HighlightFirst(content, query); ok {
			return Result{Kind: Found, Label: entry.Name, Highlight: hl, Scanned: scanned}, nil
		}
	}

	return Result{Kind: NotFound, Scanned: scanned}, nil
}
