// Patron entry type and fine limits.
//
// An Entry is one line of the patron file. Identity is the ID alone; name,
// address and fine are attributes that Update may change.
package patron

import (
	json "github.com/goccy/go-json"

	"github.com/shopspring/decimal"
)

// Default fine bounds, inclusive.
var (
	DefaultMinFine = decimal.Zero
	DefaultMaxFine = decimal.RequireFromString("9999.99")
)

// Limits is the inclusive range a fine must fall within.
type Limits struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// DefaultLimits returns [DefaultMinFine, DefaultMaxFine].
func DefaultLimits() Limits {
	return Limits{Min: DefaultMinFine, Max: DefaultMaxFine}
}

// Entry is a single library patron.
type Entry struct {
	ID      string          // 7 digits, leading zeros kept
	Name    string          // may contain the delimiter
	Address string          // may contain the delimiter
	Fine    decimal.Decimal // 2-decimal scale
}

// NewEntry validates raw field values and builds an Entry. The fine is
// parsed against limits and stored at 2-decimal scale.
func NewEntry(id, name, address, fine string, limits Limits) (Entry, error) {
	var e Entry
	var err error
	if e.ID, err = ValidateID(id); err != nil {
		return Entry{}, err
	}
	if e.Name, err = KindName.Validate(name); err != nil {
		return Entry{}, err
	}
	if e.Address, err = KindAddress.Validate(address); err != nil {
		return Entry{}, err
	}
	if e.Fine, err = ValidateAmount(fine, limits.Min, limits.Max); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Equal reports whether e and o identify the same patron.
func (e Entry) Equal(o Entry) bool {
	return e.ID == o.ID
}

// check re-validates an entry built outside NewEntry, e.g. a struct literal
// handed to Add.
func (e Entry) check(limits Limits) (Entry, error) {
	return NewEntry(e.ID, e.Name, e.Address, e.Fine.StringFixed(2), limits)
}

type entryJSON struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Fine    string `json:"fine"`
}

// MarshalJSON renders the fine as a fixed 2-decimal string.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{e.ID, e.Name, e.Address, e.Fine.StringFixed(2)})
}

// UnmarshalJSON accepts the MarshalJSON form. Fields are not validated;
// pass the result through NewEntry or Add for that.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw entryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	fine, err := decimal.NewFromString(raw.Fine)
	if err != nil {
		return fieldErr("fine", raw.Fine, ErrNotANumber, "")
	}
	*e = Entry{ID: raw.ID, Name: raw.Name, Address: raw.Address, Fine: fine.Round(2)}
	return nil
}
