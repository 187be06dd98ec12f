// Entry removal.
package patron

import (
	"fmt"
	"slices"
)

// Remove deletes the entry with the given ID and returns it. Its history is
// kept, including the removed version, so History still works afterwards.
func (d *Directory) Remove(id string) (Entry, error) {
	pos, ok := d.index[id]
	if !ok {
		return Entry{}, fmt.Errorf("remove %s: %w", id, ErrNotFound)
	}

	e := d.entries[pos]
	d.retain(e, e.ID)
	d.entries = slices.Delete(d.entries, pos, pos+1)
	delete(d.index, id)
	d.reindex(pos)
	d.log.Debug("entry removed", "id", id)
	return e, nil
}
