package reference

import "regexp"

// yearRe matches the first 4-digit run in a free-form date string.
var yearRe = regexp.MustCompile(`\d{4}`)

// ExtractYear pulls a 4-digit year out of a free-form date string.
// Returns "" when no year is present.
func ExtractYear(date string) string {
	return yearRe.FindString(date)
}

// FormatAuthors derives the compact author display string:
//
//	0 authors → ""
//	1 author  → "Last"
//	2 authors → "A & B"
//	3+        → "A et al."
//
// Only family names are used. The caller is expected to pass authors in
// priority order; lists longer than three carry no extra information
// since only the first name appears in the "et al." form.
func FormatAuthors(authors []Author) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return authors[0].Last
	case 2:
		return authors[0].Last + " & " + authors[1].Last
	default:
		return authors[0].Last + " et al."
	}
}
