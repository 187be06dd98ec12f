// Line codec for patron records.
//
// A record is "<id>-<name>-<address>-<fine>". The name and address may both
// contain '-', so the line is decoded by anchoring the two ends first:
//
//   - head: exactly IDLength digits followed by the delimiter.
//   - tail: the longest trailing run of digits and dots, which must be
//     preceded by the delimiter. Because '-' is not in that run, there is
//     only one place the tail can start.
//   - middle: everything between the head and tail delimiters, split at
//     the first delimiter after the first character. Both halves must be
//     non-empty. Remaining delimiters belong to the address.
//
// A line failing any anchor is malformed and is never partially decoded.
// A line passing the anchors still has each field validated.
package patron

import (
	"strings"
)

// Encode renders e as a single line without a trailing newline.
func Encode(e Entry) string {
	var b strings.Builder
	b.Grow(len(e.ID) + len(e.Name) + len(e.Address) + 16)
	b.WriteString(e.ID)
	b.WriteByte(Delimiter)
	b.WriteString(e.Name)
	b.WriteByte(Delimiter)
	b.WriteString(e.Address)
	b.WriteByte(Delimiter)
	b.WriteString(e.Fine.StringFixed(2))
	return b.String()
}

// Decode parses one line into an Entry. It returns a *MalformedError when
// the line does not have the record shape and a *FieldError when the shape
// matches but a field fails validation.
func Decode(line string, limits Limits) (Entry, error) {
	line = strings.TrimSuffix(line, "\r")

	id, name, address, fine, reason := split(line)
	if reason != "" {
		return Entry{}, &MalformedError{Line: line, Reason: reason}
	}
	return NewEntry(id, name, address, fine, limits)
}

// split applies the anchor rule and returns the four raw fields, or a
// non-empty reason describing which anchor failed.
func split(line string) (id, name, address, fine, reason string) {
	// Head: fixed-width id and its delimiter.
	if len(line) <= IDLength || !digits(line[:IDLength]) {
		return "", "", "", "", "missing 7-digit id"
	}
	if line[IDLength] != Delimiter {
		return "", "", "", "", "id not followed by delimiter"
	}
	id = line[:IDLength]
	rest := line[IDLength+1:]

	// Tail: trailing digits-and-dots run.
	k := len(rest)
	for k > 0 && (rest[k-1] == '.' || (rest[k-1] >= '0' && rest[k-1] <= '9')) {
		k--
	}
	if k == len(rest) {
		return "", "", "", "", "missing trailing fine"
	}
	if k == 0 || rest[k-1] != Delimiter {
		return "", "", "", "", "fine not preceded by delimiter"
	}
	fine = rest[k:]
	middle := rest[:k-1]

	// Middle: first delimiter after a non-empty name, leaving a non-empty
	// address.
	if len(middle) < 3 {
		return "", "", "", "", "missing name or address"
	}
	i := strings.IndexByte(middle[1:], Delimiter)
	if i < 0 {
		return "", "", "", "", "missing delimiter between name and address"
	}
	i++
	if i == len(middle)-1 {
		return "", "", "", "", "missing address"
	}
	return id, middle[:i], middle[i+1:], fine, ""
}
