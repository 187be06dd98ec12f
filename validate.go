// Field validators.
//
// Every validator is a pure function: it trims or parses its input and
// returns the normalised value or a *FieldError. Nothing here touches a
// Directory, so interactive callers can check a value before committing it.
package patron

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// IDLength is the fixed number of digits in a patron identifier.
const IDLength = 7

// Delimiter separates the fields of an encoded record.
const Delimiter = '-'

// ValidateID checks that s is exactly IDLength ASCII digits. The id is kept
// as text so leading zeros survive.
func ValidateID(s string) (string, error) {
	if len(s) != IDLength || !digits(s) {
		return "", fieldErr("id", s, ErrInvalidFormat, fmt.Sprintf("want %d digits", IDLength))
	}
	return s, nil
}

// Shape is an optional predicate applied after the length check.
type Shape struct {
	Name  string // reported in FormatMismatch errors, e.g. "email"
	Match func(string) bool
}

// ValidateText trims s and checks its rune length against [min, max]. When
// shape is non-nil the trimmed value must also satisfy it.
func ValidateText(field, s string, min, max int, shape *Shape) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", fieldErr(field, s, ErrEmpty, "")
	}
	n := utf8.RuneCountInString(v)
	if n < min {
		return "", fieldErr(field, s, ErrTooShort, fmt.Sprintf("min %d", min))
	}
	if max > 0 && n > max {
		return "", fieldErr(field, s, ErrTooLong, fmt.Sprintf("max %d", max))
	}
	if shape != nil && !shape.Match(v) {
		return "", fieldErr(field, s, ErrFormatMismatch, "want "+shape.Name)
	}
	return v, nil
}

// ValidateAmount parses s as a non-negative decimal with at most two
// fractional digits and checks it against [min, max]. Only digits and a
// single dot are accepted. A leading minus parses so that negative input
// is reported as ErrOutOfRange rather than ErrNotANumber.
func ValidateAmount(s string, min, max decimal.Decimal) (decimal.Decimal, error) {
	v := strings.TrimSpace(s)
	if !amount(strings.TrimPrefix(v, "-")) {
		return decimal.Decimal{}, fieldErr("fine", s, ErrNotANumber, "digits with at most 2 decimals")
	}
	if strings.HasPrefix(strings.TrimPrefix(v, "-"), ".") {
		v = strings.Replace(v, ".", "0.", 1)
	}
	v = strings.TrimSuffix(v, ".")
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, fieldErr("fine", s, ErrNotANumber, "")
	}
	if d.LessThan(min) || d.GreaterThan(max) {
		return decimal.Decimal{}, fieldErr("fine", s, ErrOutOfRange,
			fmt.Sprintf("want %s..%s", min.StringFixed(2), max.StringFixed(2)))
	}
	return d.Round(2), nil
}

// ValidateQuantity parses s as a whole number that must not be negative.
// Only digits are accepted, with an optional leading minus so that any
// negative input, however large, reports ErrNegative.
func ValidateQuantity(s string) (uint64, error) {
	v := strings.TrimSpace(s)
	if neg, ok := strings.CutPrefix(v, "-"); ok && neg != "" && digits(neg) {
		if strings.Trim(neg, "0") == "" {
			return 0, nil
		}
		return 0, fieldErr("quantity", s, ErrNegative, "")
	}
	if v == "" || !digits(v) {
		return 0, fieldErr("quantity", s, ErrNotANumber, "")
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fieldErr("quantity", s, ErrOutOfRange, "max 18446744073709551615")
	}
	return n, nil
}

// amount reports whether s is digits with at most one dot and at most two
// digits after it. At least one digit is required.
func amount(s string) bool {
	seen, dot, frac := false, false, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			seen = true
			if dot {
				frac++
				if frac > 2 {
					return false
				}
			}
		case c == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return seen
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FieldKind is the closed set of free-text fields the validators know how
// to check. Each kind carries its own bounds and optional shape.
type FieldKind int

const (
	KindName FieldKind = iota
	KindAddress
	KindSKU
	KindCategory
	KindDescription
	KindEmail
	KindPhone
	KindPassword
)

type kindRule struct {
	name     string
	min, max int
	shape    *Shape
}

var kindRules = [...]kindRule{
	KindName:        {"name", 1, 100, nil},
	KindAddress:     {"address", 1, 200, nil},
	KindSKU:         {"sku", 1, 20, &Shape{"alphanumeric", alphanumeric}},
	KindCategory:    {"category", 1, 50, nil},
	KindDescription: {"description", 1, 500, nil},
	KindEmail:       {"email", 3, 254, &Shape{"email address", email}},
	KindPhone:       {"phone", 7, 15, &Shape{"digits only", digits}},
	KindPassword:    {"password", 8, 128, &Shape{"letters and digits", password}},
}

func (k FieldKind) String() string {
	if k < 0 || int(k) >= len(kindRules) {
		return "unknown"
	}
	return kindRules[k].name
}

// Validate checks s against the bounds and shape of k.
func (k FieldKind) Validate(s string) (string, error) {
	if k < 0 || int(k) >= len(kindRules) {
		return "", fieldErr("unknown", s, ErrFormatMismatch, "unknown field kind")
	}
	r := kindRules[k]
	return ValidateText(r.name, s, r.min, r.max, r.shape)
}

// ParseFieldKind maps a kind name such as "email" to its FieldKind.
func ParseFieldKind(name string) (FieldKind, bool) {
	for i, r := range kindRules {
		if strings.EqualFold(r.name, name) {
			return FieldKind(i), true
		}
	}
	return 0, false
}

func alphanumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// email accepts local@domain.tld with no whitespace and a single '@'.
func email(s string) bool {
	if strings.ContainsFunc(s, unicode.IsSpace) {
		return false
	}
	local, domain, ok := strings.Cut(s, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return false
	}
	dot := strings.LastIndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}

func password(s string) bool {
	return strings.ContainsFunc(s, unicode.IsLetter) && strings.ContainsFunc(s, unicode.IsDigit)
}
