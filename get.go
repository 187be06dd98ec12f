// Entry lookup.
package patron

// Find returns the entry with the given ID. The boolean is false on a miss.
func (d *Directory) Find(id string) (Entry, bool) {
	pos, ok := d.index[id]
	if !ok {
		return Entry{}, false
	}
	return d.entries[pos], true
}

// Exists reports whether an entry with the given ID is present.
func (d *Directory) Exists(id string) bool {
	_, ok := d.index[id]
	return ok
}
