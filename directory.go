// Directory type, configuration and construction.
//
// A Directory is an ordered set of entries unique by ID. Insertion order is
// kept for display; an id→position index makes lookups constant time
// without changing what callers observe. A Directory is not safe for
// concurrent use; callers sharing one across goroutines must guard it.
package patron

import (
	"io"

	"github.com/charmbracelet/log"
)

// Config holds directory configuration options.
type Config struct {
	Limits        Limits      // Fine range; a zero Max means DefaultMaxFine
	HashAlgorithm int         // 1=xxHash3, 2=FNV1a, 3=Blake2b
	HistoryDepth  int         // Revisions kept per id (default 16, negative disables)
	MaxLineSize   int         // Longest line Load accepts (default 64KB)
	Logger        *log.Logger // Defaults to a discarding logger
}

// Directory is an in-memory collection of patron entries.
type Directory struct {
	entries []Entry
	index   map[string]int        // id -> position in entries
	history map[string][]revision // id -> superseded versions, oldest first
	config  Config
	log     *log.Logger
}

// New returns an empty directory. Zero config values take defaults. Limits
// that admit no fine at all (a negative Min, or Min above Max once Max is
// defaulted) are replaced by DefaultLimits and a warning is logged.
func New(config Config) *Directory {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Limits.Max.IsZero() {
		config.Limits.Max = DefaultMaxFine
	}
	if config.Limits.Min.IsNegative() || config.Limits.Min.GreaterThan(config.Limits.Max) {
		config.Logger.Warn("invalid fine limits, using defaults",
			"min", config.Limits.Min.StringFixed(2), "max", config.Limits.Max.StringFixed(2))
		config.Limits = DefaultLimits()
	}
	if config.HashAlgorithm == 0 {
		config.HashAlgorithm = AlgXXHash3
	}
	if config.HistoryDepth == 0 {
		config.HistoryDepth = 16
	}
	if config.MaxLineSize <= 0 {
		config.MaxLineSize = 64 * 1024
	}

	return &Directory{
		index:   make(map[string]int),
		history: make(map[string][]revision),
		config:  config,
		log:     config.Logger,
	}
}

// Limits returns the fine range entries are validated against.
func (d *Directory) Limits() Limits {
	return d.config.Limits
}

// Len returns the number of entries.
func (d *Directory) Len() int {
	return len(d.entries)
}

// reindex rebuilds positions from start onwards after a removal shifts
// entries left.
func (d *Directory) reindex(start int) {
	for i := start; i < len(d.entries); i++ {
		d.index[d.entries[i].ID] = i
	}
}
