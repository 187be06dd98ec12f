package patron

import (
	"errors"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

func TestNewEntry(t *testing.T) {
	e, err := NewEntry("0070070", "  James Bond ", "25 Wellington Square", "0.07", DefaultLimits())
	if err != nil {
		t.Fatalf("NewEntry: %v", err)
	}
	if e.ID != "0070070" {
		t.Errorf("ID = %q, want leading zeros kept", e.ID)
	}
	if e.Name != "James Bond" {
		t.Errorf("Name = %q, want trimmed", e.Name)
	}
	if e.Fine.StringFixed(2) != "0.07" {
		t.Errorf("Fine = %s, want 0.07", e.Fine.StringFixed(2))
	}
}

func TestNewEntryInvalid(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		pname   string
		address string
		fine    string
		field   string
		wantErr error
	}{
		{"short id", "123", "Jane", "Pine St", "1.00", "id", ErrInvalidFormat},
		{"empty name", "1234567", " ", "Pine St", "1.00", "name", ErrEmpty},
		{"empty address", "1234567", "Jane", "", "1.00", "address", ErrEmpty},
		{"bad fine", "1234567", "Jane", "Pine St", "abc", "fine", ErrNotANumber},
		{"fine too large", "1234567", "Jane", "Pine St", "10000.00", "fine", ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEntry(tt.id, tt.pname, tt.address, tt.fine, DefaultLimits())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			var fe *FieldError
			if !errors.As(err, &fe) || fe.Field != tt.field {
				t.Errorf("err = %v, want FieldError on %s", err, tt.field)
			}
		})
	}
}

func TestEntryEqualByID(t *testing.T) {
	a := Entry{ID: "1234567", Name: "Jane", Address: "Pine St", Fine: decimal.NewFromInt(1)}
	b := Entry{ID: "1234567", Name: "Janet", Address: "Oak Ave", Fine: decimal.NewFromInt(9)}
	c := Entry{ID: "7654321", Name: "Jane", Address: "Pine St", Fine: decimal.NewFromInt(1)}

	if !a.Equal(b) {
		t.Error("entries with the same id should be equal")
	}
	if a.Equal(c) {
		t.Error("entries with different ids should not be equal")
	}
}

func TestEntryFineRounding(t *testing.T) {
	// A struct literal with excess precision is rounded half-up on check.
	e := Entry{ID: "1234567", Name: "Jane", Address: "Pine St", Fine: decimal.RequireFromString("2.345")}
	got, err := e.check(DefaultLimits())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if got.Fine.StringFixed(2) != "2.35" {
		t.Errorf("Fine = %s, want 2.35", got.Fine.StringFixed(2))
	}
}

func TestEntryJSON(t *testing.T) {
	e, _ := NewEntry("0000001", "Mary-Jane Watson", "20 Ingram St", "5", DefaultLimits())

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"fine":"5.00"`) {
		t.Errorf("json = %s, want fine as 2-decimal string", data)
	}

	var got Entry
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.ID != e.ID || got.Name != e.Name || got.Address != e.Address || !got.Fine.Equal(e.Fine) {
		t.Errorf("round trip = %+v, want %+v", got, e)
	}
}

func TestEntryUnmarshalBadFine(t *testing.T) {
	var e Entry
	err := json.Unmarshal([]byte(`{"id":"1234567","name":"a","address":"b","fine":"lots"}`), &e)
	if err == nil {
		t.Fatal("expected error for non-numeric fine")
	}
}
