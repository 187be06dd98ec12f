// Explicit persistence of a directory.
//
// A Directory is never written implicitly. Save streams the encoded lines;
// SaveFile builds the whole file in memory and hands it to atomic.WriteFile,
// which writes a temporary file in the same directory, syncs it and renames
// it over the target. A crash mid-save leaves the previous file intact.
//
// Names containing the delimiter are saved as-is, but on reload the anchor
// rule attributes everything after the name's first interior delimiter to
// the address. WriteJSON is lossless and should be preferred for exports
// that must round-trip such names.
package patron

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/natefinch/atomic"
)

// Save writes every entry as an encoded line, in insertion order.
func (d *Directory) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, e := range d.entries {
		bw.WriteString(Encode(e))
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// SaveFile atomically replaces path with the encoded directory.
func (d *Directory) SaveFile(path string) error {
	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	d.log.Info("directory saved", "path", path, "entries", len(d.entries))
	return nil
}

// WriteJSON writes one JSON object per entry, newline-delimited.
func (d *Directory) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, e := range d.entries {
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	return nil
}
