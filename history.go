// Revision history for updated and removed entries.
//
// Update and Remove retain the version they replace. Each revision is the
// entry's JSON form, Zstd-compressed and then Ascii85-encoded so it stays a
// compact printable string. JSON is used instead of the line codec because
// a name containing the delimiter does not survive a line round-trip.
//
// History is keyed by ID and follows an ID change made through Update. It
// outlives Remove, so a removed patron's last state can still be inspected.
// Only Config.HistoryDepth revisions are kept per ID; the oldest go first.
package patron

import (
	"bytes"
	"encoding/ascii85"
	"fmt"
	"io"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
)

// One encoder and decoder serve every directory's revisions; EncodeAll and
// DecodeAll are safe to call concurrently.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	zstdDecoder, _ = zstd.NewReader(nil)
)

// Revision is a superseded version of an entry.
type Revision struct {
	Entry Entry
	TS    int64 // Unix milliseconds when it was superseded
}

type revision struct {
	snapshot string
	ts       int64
}

// History returns the superseded versions of id, oldest first. A present
// entry with no revisions yields an empty slice. Returns ErrNotFound if the
// ID has neither an entry nor any history.
func (d *Directory) History(id string) ([]Revision, error) {
	revs, ok := d.history[id]
	if !ok && !d.Exists(id) {
		return nil, fmt.Errorf("history %s: %w", id, ErrNotFound)
	}

	out := make([]Revision, 0, len(revs))
	for _, r := range revs {
		e, err := restore(r.snapshot)
		if err != nil {
			return nil, fmt.Errorf("history %s: %w", id, err)
		}
		out = append(out, Revision{Entry: e, TS: r.ts})
	}
	return out, nil
}

// retain records old as a revision filed under key. When key differs from
// old.ID the existing history moves with it.
func (d *Directory) retain(old Entry, key string) {
	if d.config.HistoryDepth < 0 {
		return
	}

	revs := d.history[old.ID]
	if key != old.ID {
		delete(d.history, old.ID)
		revs = append(d.history[key], revs...)
	}

	snap, err := snapshot(old)
	if err != nil {
		d.log.Warn("revision not kept", "id", old.ID, "err", err)
	} else {
		revs = append(revs, revision{snapshot: snap, ts: time.Now().UnixMilli()})
	}
	if over := len(revs) - d.config.HistoryDepth; over > 0 {
		revs = revs[over:]
	}
	d.history[key] = revs
}

func snapshot(e Entry) (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	return compress(data), nil
}

func restore(s string) (Entry, error) {
	data, err := decompress(s)
	if err != nil {
		return Entry{}, err
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, fmt.Errorf("%w: %w", ErrDecompress, err)
	}
	return e, nil
}

// compress packs a revision's JSON into the printable form kept in the
// history map: zstd first, then Ascii85 so a snapshot can be logged or
// dumped next to patron lines without escaping.
func compress(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	var snap bytes.Buffer
	w := ascii85.NewEncoder(&snap)
	// Writes into a bytes.Buffer cannot fail; Close emits the final group.
	_, _ = w.Write(zstdEncoder.EncodeAll(data, nil))
	_ = w.Close()
	return snap.String()
}

// decompress reverses compress. Either stage failing means the stored
// revision is unreadable and is reported as ErrDecompress.
func decompress(snap string) ([]byte, error) {
	if snap == "" {
		return nil, nil
	}

	packed, err := io.ReadAll(ascii85.NewDecoder(strings.NewReader(snap)))
	if err != nil {
		return nil, fmt.Errorf("%w: revision ascii85: %w", ErrDecompress, err)
	}
	data, err := zstdDecoder.DecodeAll(packed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: revision zstd: %w", ErrDecompress, err)
	}
	return data, nil
}
