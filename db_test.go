package patron

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func newTestDirectory(t *testing.T, entries ...Entry) *Directory {
	t.Helper()
	d := New(Config{})
	for _, e := range entries {
		if err := d.Add(e); err != nil {
			t.Fatalf("Add(%s): %v", e.ID, err)
		}
	}
	return d
}

func ids(d *Directory) []string {
	var out []string
	for e := range d.All() {
		out = append(out, e.ID)
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddAndFind(t *testing.T) {
	jane := mustEntry(t, "1234567", "Jane Doe", "Pine St", "12.50")
	d := newTestDirectory(t, jane)

	got, ok := d.Find("1234567")
	if !ok {
		t.Fatal("Find: not found")
	}
	if got.Name != "Jane Doe" {
		t.Errorf("Name = %q, want %q", got.Name, "Jane Doe")
	}
	if _, ok := d.Find("7654321"); ok {
		t.Error("Find on missing id returned ok")
	}
	if !d.Exists("1234567") || d.Exists("7654321") {
		t.Error("Exists disagrees with Find")
	}
}

func TestAddDuplicate(t *testing.T) {
	d := newTestDirectory(t, mustEntry(t, "1234567", "Jane", "Pine St", "1.00"))

	err := d.Add(mustEntry(t, "1234567", "Other", "Oak Ave", "2.00"))
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("second Add = %v, want ErrDuplicateID", err)
	}
	if d.Len() != 1 {
		t.Errorf("Len = %d, want 1", d.Len())
	}
	got, _ := d.Find("1234567")
	if got.Name != "Jane" {
		t.Errorf("Name = %q, first entry was overwritten", got.Name)
	}
}

func TestAddValidates(t *testing.T) {
	d := New(Config{})

	tests := []struct {
		name    string
		e       Entry
		wantErr error
	}{
		{"bad id", Entry{ID: "12", Name: "a", Address: "b"}, ErrInvalidFormat},
		{"empty name", Entry{ID: "1234567", Address: "b"}, ErrEmpty},
		{"negative fine", Entry{ID: "1234567", Name: "a", Address: "b", Fine: decimal.NewFromInt(-1)}, ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := d.Add(tt.e); !errors.Is(err, tt.wantErr) {
				t.Errorf("Add = %v, want %v", err, tt.wantErr)
			}
		})
	}
	if d.Len() != 0 {
		t.Errorf("Len = %d, want 0", d.Len())
	}
}

func TestListOrder(t *testing.T) {
	d := newTestDirectory(t,
		mustEntry(t, "3000000", "C", "c", "0"),
		mustEntry(t, "1000000", "A", "a", "0"),
		mustEntry(t, "2000000", "B", "b", "0"),
	)

	want := []string{"3000000", "1000000", "2000000"}
	if got := ids(d); !equalIDs(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}

	list := d.List()
	list[0].Name = "changed"
	if got, _ := d.Find("3000000"); got.Name != "C" {
		t.Error("mutating List result changed the directory")
	}
}

func TestAllBreak(t *testing.T) {
	d := newTestDirectory(t,
		mustEntry(t, "1000000", "A", "a", "0"),
		mustEntry(t, "2000000", "B", "b", "0"),
	)
	n := 0
	for range d.All() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("iterations = %d, want 1", n)
	}
}

func TestRemove(t *testing.T) {
	d := newTestDirectory(t,
		mustEntry(t, "1000000", "A", "a", "0"),
		mustEntry(t, "2000000", "B", "b", "0"),
		mustEntry(t, "3000000", "C", "c", "0"),
	)

	e, err := d.Remove("2000000")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if e.Name != "B" {
		t.Errorf("removed %q, want B", e.Name)
	}
	if got := ids(d); !equalIDs(got, []string{"1000000", "3000000"}) {
		t.Errorf("ids = %v", got)
	}
	// Index must follow the shift.
	if got, ok := d.Find("3000000"); !ok || got.Name != "C" {
		t.Errorf("Find after remove = %+v, %v", got, ok)
	}

	if _, err := d.Remove("2000000"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Remove = %v, want ErrNotFound", err)
	}
}

func TestUpdate(t *testing.T) {
	d := newTestDirectory(t,
		mustEntry(t, "1000000", "A", "a", "0"),
		mustEntry(t, "2000000", "B", "b", "0"),
	)

	if err := d.Update("1000000", mustEntry(t, "1000000", "A2", "a2", "3.00")); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := d.Find("1000000")
	if got.Name != "A2" || got.Fine.StringFixed(2) != "3.00" {
		t.Errorf("after update = %+v", got)
	}
}

func TestUpdateChangesID(t *testing.T) {
	d := newTestDirectory(t,
		mustEntry(t, "1000000", "A", "a", "0"),
		mustEntry(t, "2000000", "B", "b", "0"),
	)

	if err := d.Update("1000000", mustEntry(t, "9000000", "A", "a", "0")); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if d.Exists("1000000") {
		t.Error("old id still present")
	}
	// Position is kept.
	if got := ids(d); !equalIDs(got, []string{"9000000", "2000000"}) {
		t.Errorf("ids = %v", got)
	}
	// The old id is free again.
	if err := d.Add(mustEntry(t, "1000000", "New", "n", "0")); err != nil {
		t.Errorf("Add reused id: %v", err)
	}
}

func TestUpdateCollision(t *testing.T) {
	d := newTestDirectory(t,
		mustEntry(t, "1000000", "A", "a", "0"),
		mustEntry(t, "2000000", "B", "b", "0"),
		mustEntry(t, "3000000", "C", "c", "0"),
	)

	err := d.Update("1000000", mustEntry(t, "3000000", "A", "a", "0"))
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("Update = %v, want ErrDuplicateID", err)
	}
	got, ok := d.Find("1000000")
	if !ok || got.Name != "A" {
		t.Errorf("original changed: %+v, %v", got, ok)
	}
	if got, _ := d.Find("3000000"); got.Name != "C" {
		t.Errorf("third entry changed: %+v", got)
	}
	if d.Len() != 3 {
		t.Errorf("Len = %d, want 3", d.Len())
	}
}

func TestUpdateNotFound(t *testing.T) {
	d := New(Config{})
	err := d.Update("1234567", mustEntry(t, "1234567", "A", "a", "0"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update = %v, want ErrNotFound", err)
	}
}

func TestBatch(t *testing.T) {
	d := newTestDirectory(t, mustEntry(t, "1000000", "A", "a", "0"))

	err := d.Batch(
		mustEntry(t, "2000000", "B", "b", "0"),
		mustEntry(t, "2000000", "B again", "b", "0"),
	)
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("Batch with internal duplicate = %v, want ErrDuplicateID", err)
	}
	if d.Len() != 1 {
		t.Fatalf("Len = %d after failed batch, want 1", d.Len())
	}

	err = d.Batch(
		mustEntry(t, "2000000", "B", "b", "0"),
		Entry{ID: "bad"},
	)
	if !errors.Is(err, ErrInvalidField) {
		t.Fatalf("Batch with invalid entry = %v, want ErrInvalidField", err)
	}
	if d.Len() != 1 {
		t.Fatalf("Len = %d after failed batch, want 1", d.Len())
	}

	if err := d.Batch(
		mustEntry(t, "2000000", "B", "b", "0"),
		mustEntry(t, "3000000", "C", "c", "0"),
	); err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if got := ids(d); !equalIDs(got, []string{"1000000", "2000000", "3000000"}) {
		t.Errorf("ids = %v", got)
	}
}
