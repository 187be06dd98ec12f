// Search over patron names and addresses.
//
// Literal patterns (no regex metacharacters) take a fast path using
// strings.Contains on the name and address. Patterns containing regex
// metacharacters are compiled once and matched against each field.
// Matching is case-insensitive unless SearchOptions.CaseSensitive is set.
package patron

import (
	"iter"
	"regexp"
	"strings"
)

// SearchOptions configures Search behaviour. Callers control result count
// by breaking out of the range loop.
type SearchOptions struct {
	CaseSensitive bool
	NameOnly      bool // skip the address field
}

// Search yields entries whose name or address matches pattern, in insertion
// order. An invalid regex yields a single ErrInvalidPattern error.
func (d *Directory) Search(pattern string, opts SearchOptions) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		match, err := matcher(pattern, opts.CaseSensitive)
		if err != nil {
			yield(Entry{}, err)
			return
		}

		for _, e := range d.entries {
			if match(e.Name) || (!opts.NameOnly && match(e.Address)) {
				if !yield(e, nil) {
					return
				}
			}
		}
	}
}

func matcher(pattern string, caseSensitive bool) (func(string) bool, error) {
	if regexp.QuoteMeta(pattern) == pattern {
		if caseSensitive {
			return func(s string) bool { return strings.Contains(s, pattern) }, nil
		}
		needle := strings.ToLower(pattern)
		return func(s string) bool { return strings.Contains(strings.ToLower(s), needle) }, nil
	}

	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, ErrInvalidPattern
	}
	return re.MatchString, nil
}
