package main

import (
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/jpl-au/patron"
)

func (a *app) cmdLoad(args []string) error {
	_, report, err := a.open(args[0])
	if report == nil {
		return err
	}
	if a.opts.json {
		if jerr := report.WriteJSON(a.out); jerr != nil {
			return jerr
		}
		return err
	}

	fmt.Fprintf(a.out, "Source:     %s\n", report.Source)
	fmt.Fprintf(a.out, "Digest:     %s\n", report.Digest)
	fmt.Fprintf(a.out, "Loaded:     %d\n", report.Loaded)
	fmt.Fprintf(a.out, "Malformed:  %d\n", report.Malformed)
	fmt.Fprintf(a.out, "Duplicates: %d\n", report.Duplicates)
	for _, s := range report.Skipped {
		fmt.Fprintf(a.out, "  line %d (%s): %s\n    %v\n", s.Number, s.Reason, s.Raw, s.Err)
	}
	return err
}

func (a *app) cmdList(args []string) error {
	dir, _, err := a.open(args[0])
	if err != nil {
		return err
	}
	if a.opts.json {
		return dir.WriteJSON(a.out)
	}
	for e := range dir.All() {
		printEntry(a.out, e)
	}
	return nil
}

func (a *app) cmdFind(args []string) error {
	dir, _, err := a.open(args[0])
	if err != nil {
		return err
	}
	e, ok := dir.Find(args[1])
	if !ok {
		return fmt.Errorf("find %s: %w", args[1], patron.ErrNotFound)
	}
	if a.opts.json {
		return json.NewEncoder(a.out).Encode(e)
	}
	printEntry(a.out, e)
	return nil
}

func (a *app) cmdSearch(args []string) error {
	dir, _, err := a.open(args[0])
	if err != nil {
		return err
	}
	opts := patron.SearchOptions{CaseSensitive: a.opts.sensitive, NameOnly: a.opts.nameOnly}
	for e, err := range dir.Search(args[1], opts) {
		if err != nil {
			return err
		}
		printEntry(a.out, e)
	}
	return nil
}

func (a *app) cmdAdd(args []string) error {
	dir, report, err := a.openOrCreate(args[0])
	if err != nil {
		return err
	}
	e, err := patron.NewEntry(args[1], args[2], args[3], args[4], dir.Limits())
	if err != nil {
		return err
	}
	if err := dir.Add(e); err != nil {
		return err
	}
	return a.save(dir, report, args[0])
}

func (a *app) cmdEdit(args []string) error {
	dir, report, err := a.openOrCreate(args[0])
	if err != nil {
		return err
	}
	e, err := patron.NewEntry(args[2], args[3], args[4], args[5], dir.Limits())
	if err != nil {
		return err
	}
	if err := dir.Update(args[1], e); err != nil {
		return err
	}
	if revs, err := dir.History(e.ID); err == nil && len(revs) > 0 {
		fmt.Fprint(a.out, "was: ")
		printEntry(a.out, revs[len(revs)-1].Entry)
	}
	return a.save(dir, report, args[0])
}

func (a *app) cmdRemove(args []string) error {
	dir, report, err := a.openOrCreate(args[0])
	if err != nil {
		return err
	}
	e, err := dir.Remove(args[1])
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, "removed: ")
	printEntry(a.out, e)
	return a.save(dir, report, args[0])
}

// cmdCheck runs a single validator so operators can test values before
// editing.
func (a *app) cmdCheck(args []string) error {
	kind, value := strings.ToLower(args[0]), args[1]
	limits := a.cfg.Options(a.log).Limits

	var out string
	switch kind {
	case "id":
		v, err := patron.ValidateID(value)
		if err != nil {
			return err
		}
		out = v
	case "fine", "amount":
		v, err := patron.ValidateAmount(value, limits.Min, limits.Max)
		if err != nil {
			return err
		}
		out = v.StringFixed(2)
	case "quantity", "qty":
		v, err := patron.ValidateQuantity(value)
		if err != nil {
			return err
		}
		out = fmt.Sprint(v)
	default:
		k, ok := patron.ParseFieldKind(kind)
		if !ok {
			return errors.New("unknown kind: " + kind)
		}
		v, err := k.Validate(value)
		if err != nil {
			return err
		}
		out = v
	}
	fmt.Fprintf(a.out, "ok: %s\n", out)
	return nil
}
