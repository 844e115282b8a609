package headers

import (
	"strings"

	"golang.org/x/net/http/httpguts"
)

type entry struct {
	name  string
	value string
}

// List is the backing state of a Headers instance. Names are stored
// lowercased, in insertion order.
type List struct {
	entries []entry
}

// Append adds a value, keeping existing values of the same name.
func (l *List) Append(name, value string) {
	l.entries = append(l.entries, entry{strings.ToLower(name), value})
}

// Delete removes every value of name.
func (l *List) Delete(name string) {
	name = strings.ToLower(name)
	kept := l.entries[:0]
	for _, e := range l.entries {
		if e.name != name {
			kept = append(kept, e)
		}
	}
	l.entries = kept
}

// Get returns the values of name joined by ", ".
func (l *List) Get(name string) (string, bool) {
	name = strings.ToLower(name)
	var values []string
	for _, e := range l.entries {
		if e.name == name {
			values = append(values, e.value)
		}
	}
	if len(values) == 0 {
		return "", false
	}
	return strings.Join(values, ", "), true
}

// Has reports whether name has any value.
func (l *List) Has(name string) bool {
	_, ok := l.Get(name)
	return ok
}

// Set replaces every value of name with value. The first occurrence keeps
// its position.
func (l *List) Set(name, value string) {
	name = strings.ToLower(name)
	kept := l.entries[:0]
	found := false
	for _, e := range l.entries {
		if e.name != name {
			kept = append(kept, e)
			continue
		}
		if !found {
			kept = append(kept, entry{name, value})
			found = true
		}
	}
	l.entries = kept
	if !found {
		l.entries = append(l.entries, entry{name, value})
	}
}

// Clone returns an independent copy.
func (l *List) Clone() *List {
	return &List{entries: append([]entry(nil), l.entries...)}
}

// Len reports the number of stored pairs.
func (l *List) Len() int {
	return len(l.entries)
}

// normalizeValue strips leading and trailing HTTP whitespace and rejects
// values carrying control bytes other than tab.
func normalizeValue(value string) (string, bool) {
	value = strings.Trim(value, " \t\r\n")
	if !httpguts.ValidHeaderFieldValue(value) {
		return "", false
	}
	return value, true
}
