// Bulk loading of patron files.
//
// Load streams a source line by line. Each non-blank line is decoded and
// added; a line that fails to decode is recorded as malformed and a line
// whose ID is already present is recorded as a duplicate, keeping the entry
// seen first. A line longer than Config.MaxLineSize is malformed too; the
// reader skips past it and carries on. No single line aborts the load.
// Only a read error stops it, and the partial report is still returned
// alongside the error.
package patron

import (
	"bufio"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// bom is the UTF-8 byte order mark some editors prepend.
const bom = "\ufeff"

// Load reads records from r into the directory.
func (d *Directory) Load(r io.Reader) (*LoadReport, error) {
	report := &LoadReport{ID: uuid.New()}
	h := newHasher(d.config.HashAlgorithm)
	lr := &lineReader{
		br:    bufio.NewReaderSize(r, min(d.config.MaxLineSize, 64*1024)),
		limit: d.config.MaxLineSize,
		h:     h,
	}

	for {
		raw, long, err := lr.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			report.Lines = lr.n
			report.Digest = sum(h)
			return report, fmt.Errorf("load: read line %d: %w", lr.n+1, err)
		}
		n := lr.n

		if long {
			err := &MalformedError{Line: raw, Reason: fmt.Sprintf("line exceeds %d bytes", lr.limit)}
			report.skip(n, raw, SkipMalformed, err)
			d.log.Warn("line skipped", "line", n, "reason", SkipMalformed, "err", err)
			continue
		}

		line := raw
		if n == 1 {
			line = strings.TrimPrefix(line, bom)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		e, err := Decode(line, d.config.Limits)
		if err != nil {
			report.skip(n, raw, SkipMalformed, err)
			d.log.Warn("line skipped", "line", n, "reason", SkipMalformed, "err", err)
			continue
		}
		if err := d.Add(e); err != nil {
			reason := SkipMalformed
			if errors.Is(err, ErrDuplicateID) {
				reason = SkipDuplicate
			}
			report.skip(n, raw, reason, err)
			d.log.Warn("line skipped", "line", n, "reason", reason, "err", err)
			continue
		}
		report.Loaded++
	}
	report.Lines = lr.n
	report.Digest = sum(h)

	d.log.Info("load complete",
		"id", report.ID,
		"loaded", report.Loaded,
		"malformed", report.Malformed,
		"duplicates", report.Duplicates,
	)
	return report, nil
}

// lineReader splits a source into lines, feeding every byte it consumes
// to h so the digest covers the whole source, overlong lines included.
type lineReader struct {
	br    *bufio.Reader
	limit int
	h     hash.Hash
	n     int // lines returned so far
}

// next returns the next line without its line ending. A line longer than limit
// comes back cut to limit bytes with long set; the remainder is consumed
// and hashed but not kept. io.EOF is returned once the source is drained.
func (lr *lineReader) next() (string, bool, error) {
	var buf []byte
	long, read := false, false
	for {
		chunk, err := lr.br.ReadSlice('\n')
		if len(chunk) > 0 {
			read = true
		}
		if err == nil {
			chunk = chunk[:len(chunk)-1]
		}
		lr.h.Write(chunk)
		if !long {
			if room := lr.limit - len(buf); len(chunk) > room {
				buf = append(buf, chunk[:room]...)
				long = true
			} else {
				buf = append(buf, chunk...)
			}
		}

		switch {
		case err == nil:
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if !read {
				return "", false, io.EOF
			}
		default:
			return "", false, err
		}
		lr.h.Write([]byte{'\n'})
		lr.n++
		return strings.TrimSuffix(string(buf), "\r"), long, nil
	}
}

// LoadFile opens path and loads it. Failure to open the file is returned
// as an error with a nil report.
func (d *Directory) LoadFile(path string) (*LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	defer f.Close()

	report, err := d.Load(f)
	if report != nil {
		report.Source = path
	}
	return report, err
}
