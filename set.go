// Entry creation and update.
//
// Add appends a new entry. Update replaces an existing entry in place and
// may change its ID; the superseded version is kept as a revision. Batch
// validates every input before committing any of them.
package patron

import (
	"fmt"
)

// Add inserts e after re-validating its fields. Returns ErrDuplicateID if an
// entry with the same ID exists.
func (d *Directory) Add(e Entry) error {
	e, err := e.check(d.config.Limits)
	if err != nil {
		return err
	}
	if _, ok := d.index[e.ID]; ok {
		return fmt.Errorf("add %s: %w", e.ID, ErrDuplicateID)
	}

	d.index[e.ID] = len(d.entries)
	d.entries = append(d.entries, e)
	d.log.Debug("entry added", "id", e.ID)
	return nil
}

// Batch adds several entries under all-or-nothing semantics. All inputs are
// validated, and checked for duplicates against the directory and each
// other, before any are inserted.
func (d *Directory) Batch(entries ...Entry) error {
	checked := make([]Entry, len(entries))
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		c, err := e.check(d.config.Limits)
		if err != nil {
			return fmt.Errorf("batch: entry %d: %w", i, err)
		}
		if _, ok := d.index[c.ID]; ok || seen[c.ID] {
			return fmt.Errorf("batch: entry %d: add %s: %w", i, c.ID, ErrDuplicateID)
		}
		seen[c.ID] = true
		checked[i] = c
	}

	for _, e := range checked {
		d.index[e.ID] = len(d.entries)
		d.entries = append(d.entries, e)
	}
	d.log.Debug("batch added", "count", len(checked))
	return nil
}

// Update replaces the entry at originalID with e. The ID may change: if
// e.ID differs from originalID and is already used by another entry,
// ErrDuplicateID is returned and nothing changes. Returns ErrNotFound if
// originalID is absent.
func (d *Directory) Update(originalID string, e Entry) error {
	pos, ok := d.index[originalID]
	if !ok {
		return fmt.Errorf("update %s: %w", originalID, ErrNotFound)
	}
	e, err := e.check(d.config.Limits)
	if err != nil {
		return err
	}
	if e.ID != originalID {
		if _, taken := d.index[e.ID]; taken {
			return fmt.Errorf("update %s -> %s: %w", originalID, e.ID, ErrDuplicateID)
		}
	}

	old := d.entries[pos]
	d.retain(old, e.ID)
	d.entries[pos] = e
	if e.ID != originalID {
		delete(d.index, originalID)
		d.index[e.ID] = pos
	}
	d.log.Debug("entry updated", "id", originalID, "new_id", e.ID)
	return nil
}
