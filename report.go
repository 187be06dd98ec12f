// Load reports.
package patron

import (
	"io"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// SkipReason says why a line was left out of a load.
type SkipReason string

const (
	SkipMalformed SkipReason = "malformed"
	SkipDuplicate SkipReason = "duplicate"
)

// SkippedLine is one input line that was not loaded.
type SkippedLine struct {
	Number int        `json:"line"`
	Raw    string     `json:"raw"`
	Reason SkipReason `json:"reason"`
	Err    error      `json:"-"`
}

// LoadReport summarises a Load pass for operator review.
type LoadReport struct {
	ID         uuid.UUID     `json:"id"`
	Source     string        `json:"source,omitempty"`
	Lines      int           `json:"lines"`
	Loaded     int           `json:"loaded"`
	Malformed  int           `json:"malformed"`
	Duplicates int           `json:"duplicates"`
	Skipped    []SkippedLine `json:"skipped"`
	Digest     string        `json:"digest"`
}

// Clean reports whether every non-blank line was loaded.
func (r *LoadReport) Clean() bool {
	return len(r.Skipped) == 0
}

func (r *LoadReport) skip(n int, raw string, reason SkipReason, err error) {
	switch reason {
	case SkipDuplicate:
		r.Duplicates++
	default:
		r.Malformed++
	}
	r.Skipped = append(r.Skipped, SkippedLine{Number: n, Raw: raw, Reason: reason, Err: err})
}

type skippedJSON struct {
	Number int        `json:"line"`
	Raw    string     `json:"raw"`
	Reason SkipReason `json:"reason"`
	Error  string     `json:"error,omitempty"`
}

type reportJSON struct {
	ID         uuid.UUID     `json:"id"`
	Source     string        `json:"source,omitempty"`
	Lines      int           `json:"lines"`
	Loaded     int           `json:"loaded"`
	Malformed  int           `json:"malformed"`
	Duplicates int           `json:"duplicates"`
	Skipped    []skippedJSON `json:"skipped"`
	Digest     string        `json:"digest"`
}

// WriteJSON writes the report as a single indented JSON document. Skipped
// lines carry their error text.
func (r *LoadReport) WriteJSON(w io.Writer) error {
	out := reportJSON{
		ID:         r.ID,
		Source:     r.Source,
		Lines:      r.Lines,
		Loaded:     r.Loaded,
		Malformed:  r.Malformed,
		Duplicates: r.Duplicates,
		Skipped:    make([]skippedJSON, len(r.Skipped)),
		Digest:     r.Digest,
	}
	for i, s := range r.Skipped {
		out.Skipped[i] = skippedJSON{Number: s.Number, Raw: s.Raw, Reason: s.Reason}
		if s.Err != nil {
			out.Skipped[i].Error = s.Err.Error()
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
