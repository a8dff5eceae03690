package search

import "strings"

// Highlight is a license text split around the first occurrence of a query.
type Highlight struct {
	Before string
	Match  string
	After  string
}

// Text joins the three parts back together with the match wrapped in open
// and close.
func (h Highlight) Text(open, close string) string {
	return h.Before + open + h.Match + close + h.After
}

// HighlightFirst finds the first literal, case-sensitive occurrence of query
// in content. The query is compared byte for byte; nothing in it is treated
// as pattern syntax.
func HighlightFirst(content, query string) (Highlight, bool) {
	if query == "" {
		return Highlight{}, false
	}

	i := strings.Index(content, query)
	if i < 0 {
		return Highlight{}, false
	}

	end := i + len(query)
	return Highlight{
		Before: content[:i],
		Match:  content[i:end],
		After:  content[end:],
	}, true
}
