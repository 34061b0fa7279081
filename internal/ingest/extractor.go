package ingest

import (
	"regexp"
	"strings"
)

var (
	// The $-_ range is deliberate; it covers / : ; ? = and the digits, which
	// is what keeps full URL paths and query strings in one match.
	urlPattern     = regexp.MustCompile(`https?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*(),]|(?:%[0-9a-fA-F]{2}))+`)
	digitsOnly     = regexp.MustCompile(`^\d+$`)
	numericDecimal = regexp.MustCompile(`^[\d.]+$`)
)

// Fields the data heuristically recovered from one spreadsheet row
type Fields struct {
	Name  string
	Note  string
	Link  string
	Price string
}

// extractLink pulls the first URL out of a cell and returns it with the
// remaining text, URL removed
func extractLink(cell string) (string, string) {
	match := urlPattern.FindString(cell)
	if match == "" {
		return "", strings.TrimSpace(cell)
	}
	leftover := strings.TrimSpace(strings.Replace(cell, match, "", 1))
	return match, leftover
}

// Extract assigns each non-empty cell to price, link, name or note. The
// precedence per cell is fixed and first match wins:
//
//  1. starts with "$"            → price (first one only)
//  2. contains a URL             → link (first one only); leftover text joins the note
//  3. length > 5, no name yet, not purely numeric → name
//  4. distinct from the name, not numeric         → appended to the note
//
// The source columns vary wildly between sheets, which is why position means
// nothing here and content is everything.
func Extract(cells []string) Fields {
	var f Fields

	for _, cell := range cells {
		cellStr := strings.TrimSpace(cell)
		if cellStr == "" {
			continue
		}

		if strings.HasPrefix(cellStr, "$") {
			if f.Price == "" {
				f.Price = cellStr
			}
			continue
		}

		if link, leftover := extractLink(cellStr); link != "" && f.Link == "" {
			f.Link = link
			if leftover != "" {
				f.Note += " " + leftover
			}
			continue
		}

		if len(cellStr) > 5 && f.Name == "" {
			// Avoid bare numbers like "11" posing as names
			if !digitsOnly.MatchString(cellStr) {
				f.Name = cellStr
				continue
			}
		}

		if f.Name != "" && cellStr != f.Name && !numericDecimal.MatchString(cellStr) {
			if f.Note != "" {
				f.Note += " | " + cellStr
			} else {
				f.Note = cellStr
			}
		}
	}

	return f
}
