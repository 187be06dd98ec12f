package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/jpl-au/patron"
)

// open loads path into a fresh directory. Skipped lines are logged by the
// directory; the report is returned so callers can decide whether saving
// is safe. A read error part way through still returns the partial report.
func (a *app) open(path string) (*patron.Directory, *patron.LoadReport, error) {
	dir := patron.New(a.cfg.Options(a.log))
	report, err := dir.LoadFile(path)
	return dir, report, err
}

// openOrCreate is open for commands that write the file back. A missing
// file is an empty directory, so the first add creates it.
func (a *app) openOrCreate(path string) (*patron.Directory, *patron.LoadReport, error) {
	dir, report, err := a.open(path)
	if !errors.Is(err, fs.ErrNotExist) {
		return dir, report, err
	}
	a.log.Info("file does not exist, starting empty", "path", path)
	report, err = dir.Load(strings.NewReader(""))
	if err != nil {
		return nil, nil, err
	}
	report.Source = path
	return dir, report, nil
}

// save writes dir back to path. It refuses when the load skipped lines,
// since they would be silently dropped, unless --force was given. An
// unchanged directory is not rewritten.
func (a *app) save(dir *patron.Directory, report *patron.LoadReport, path string) error {
	if !report.Clean() && !a.opts.force {
		return fmt.Errorf("%s has %d skipped lines; rerun with --force to save without them",
			path, len(report.Skipped))
	}
	if dir.Fingerprint() == report.Digest {
		a.log.Info("no changes to save", "path", path)
		return nil
	}
	return dir.SaveFile(path)
}

func printEntry(w io.Writer, e patron.Entry) {
	fmt.Fprintf(w, "%s  %-30s  %-40s  %10s\n", e.ID, e.Name, e.Address, e.Fine.StringFixed(2))
}
