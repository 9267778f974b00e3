package cgiclient

import (
	"strings"
)

// HeaderValue holds the value of one response header name. A header that
// appeared exactly once holds a single string; a header that appeared more
// than once holds the values in the order they appeared. A HeaderValue never
// holds a one-element list: IsMulti is true strictly from the second
// occurrence on.
type HeaderValue struct {
	values []string
}

// SingleValue creates a HeaderValue for a header that appeared once.
func SingleValue(value string) HeaderValue {
	return HeaderValue{values: []string{value}}
}

// MultiValue creates a HeaderValue for a header that appeared more than once.
// Passing fewer than two values does not produce a multi-valued header; the
// result behaves like SingleValue (or a zero HeaderValue if empty).
func MultiValue(values ...string) HeaderValue {
	return HeaderValue{values: append([]string(nil), values...)}
}

// IsMulti reports whether the header name appeared more than once.
func (v HeaderValue) IsMulti() bool {
	return len(v.values) > 1
}

// Value returns the header value for a single-occurrence header, or the
// first value for a multi-occurrence one.
func (v HeaderValue) Value() string {
	if len(v.values) == 0 {
		return ""
	}
	return v.values[0]
}

// Values returns all values for this header name in order of appearance.
func (v HeaderValue) Values() []string {
	return append([]string(nil), v.values...)
}

func (v HeaderValue) String() string {
	return strings.Join(v.values, ", ")
}

// Headers maps lower-cased header names to their values. Names are
// case-folded on insertion, so lookups are case-insensitive as long as the
// lookup key is lower-cased too; use Get/Values for arbitrary-case lookups.
type Headers map[string]HeaderValue

// Add records one occurrence of a header. The first occurrence of a name
// stores a single value; each later occurrence for the same name appends to
// an ordered list.
func (h Headers) Add(name, value string) {
	key := strings.ToLower(name)
	if existing, ok := h[key]; ok {
		existing.values = append(existing.values, value)
		h[key] = existing
		return
	}
	h[key] = SingleValue(value)
}

// Get returns the value of a header by case-insensitive name, or "" if the
// header is absent. For a multi-valued header it returns the first value.
func (h Headers) Get(name string) string {
	return h[strings.ToLower(name)].Value()
}

// Values returns all values of a header by case-insensitive name, or nil if
// the header is absent.
func (h Headers) Values(name string) []string {
	v, ok := h[strings.ToLower(name)]
	if !ok {
		return nil
	}
	return v.Values()
}

// Has reports whether a header with the given case-insensitive name exists.
func (h Headers) Has(name string) bool {
	_, ok := h[strings.ToLower(name)]
	return ok
}
