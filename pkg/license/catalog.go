// Package license describes the ordered set of license documents that can be
// searched. A Catalog is built once at startup and never changes afterwards.
package license

import (
	"fmt"
	"strings"

	apperrors "github.com/computerscienceiscool/license-search/internal/errors"
)

// Entry is one searchable license document.
type Entry struct {
	Name string `yaml:"name" mapstructure:"name"`
	File string `yaml:"file" mapstructure:"file"`
}

// Catalog is an immutable ordered list of entries. Order is search priority:
// the first entry containing a query wins.
type Catalog struct {
	entries []Entry
}

// NewCatalog validates entries and returns a catalog holding a private copy.
// Names and files are stored exactly as given.
func NewCatalog(entries []Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, &apperrors.ValidationError{Field: "licenses", Value: 0, Err: apperrors.ErrInvalidCatalog}
	}

	copied := make([]Entry, len(entries))
	for i, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			return nil, &apperrors.ValidationError{Field: fmt.Sprintf("licenses[%d].name", i), Value: e.Name, Err: apperrors.ErrInvalidCatalog}
		}
		if strings.TrimSpace(e.File) == "" {
			return nil, &apperrors.ValidationError{Field: fmt.Sprintf("licenses[%d].file", i), Value: e.File, Err: apperrors.ErrInvalidCatalog}
		}
		copied[i] = e
	}

	return &Catalog{entries: copied}, nil
}

// Entries returns a copy of the entries in search order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Names returns the display names in search order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

// DefaultEntries returns the licenses shipped with the search page.
// Several large texts are included so response timings are measurable.
func DefaultEntries() []Entry {
	return []Entry{
		{Name: "Apache License, Version 1.0", File: "LICENSE-1.0.txt"},
		{Name: "Apache License, Version 1.1", File: "LICENSE-1.1.txt"},
		{Name: "Apache License, Version 2.0", File: "LICENSE-2.0.txt"},
		{Name: "GNU GENERAL PUBLIC LICENSE - Version 1, February 1989", File: "gpl-1.0.txt"},
		{Name: "GNU GENERAL PUBLIC LICENSE - Version 2, June 1991", File: "gpl-2.0.txt"},
		{Name: "GNU GENERAL PUBLIC LICENSE - Version 3, 29 June 2007", File: "gpl-3.0.txt"},
		{Name: "GNU LESSER GENERAL PUBLIC LICENSE", File: "lgpl.txt"},
		{Name: "GNU AFFERO GENERAL PUBLIC LICENSE", File: "agpl.txt"},
		{Name: "GNU Free Documentation License", File: "fdl.txt"},
	}
}
