// Entry enumeration in insertion order.
package patron

import (
	"iter"
	"slices"
)

// List returns a snapshot of all entries in insertion order. Mutating the
// returned slice does not affect the directory.
func (d *Directory) List() []Entry {
	return slices.Clone(d.entries)
}

// All yields entries in insertion order. The directory must not be mutated
// while ranging; take a List snapshot first if the loop body edits it.
func (d *Directory) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range d.entries {
			if !yield(e) {
				return
			}
		}
	}
}
