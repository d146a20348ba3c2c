// Package lineup splits free-text event titles into candidate band names.
//
// Venues that publish no structured lineup usually list the bands in the
// event title, e.g. "Death File Red, Bruka, Ungrieved". Splitting is
// heuristic and source-agnostic; callers decide what to do with the result.
package lineup

import "strings"

// separators are the characters that delimit band names in a title.
// The word "and" and a bare "&" are connector noise, not names.
var separators = []rune{',', ':', '/', '&'}

// Tokenize splits text into an ordered list of band names. Whitespace is
// trimmed, empty pieces and connector words are dropped, order is kept and
// repeats are not deduplicated. A title with no separators comes back as a
// single entry; a title that is nothing but separators and noise comes back
// empty.
func Tokenize(text string) []string {
	pieces := strings.FieldsFunc(text, func(r rune) bool {
		for _, sep := range separators {
			if r == sep {
				return true
			}
		}
		return false
	})

	names := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		name := strings.TrimSpace(piece)
		if name == "" || isNoise(name) {
			continue
		}
		names = append(names, name)
	}
	return names
}

func isNoise(name string) bool {
	return strings.EqualFold(name, "and")
}
