package core

import (
	"encoding/json"
	"slices"
)

// AttributeSet is a duplicate-free list of attribute values.
// Membership order carries no meaning but is kept stable across round-trips.
type AttributeSet []string

// NewAttributeSet builds a set from values, dropping duplicates.
func NewAttributeSet(values ...string) AttributeSet {
	out := make(AttributeSet, 0, len(values))
	for _, v := range values {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// Has reports membership.
func (s AttributeSet) Has(value string) bool {
	return slices.Contains(s, value)
}

// Toggle returns a new set with value removed if present, appended otherwise.
// The receiver is left untouched.
func (s AttributeSet) Toggle(value string) AttributeSet {
	if s.Has(value) {
		out := make(AttributeSet, 0, len(s))
		for _, v := range s {
			if v != value {
				out = append(out, v)
			}
		}
		return out
	}
	out := make(AttributeSet, len(s), len(s)+1)
	copy(out, s)
	return append(out, value)
}

// Clone returns an independent, non-nil copy.
func (s AttributeSet) Clone() AttributeSet {
	out := make(AttributeSet, len(s))
	copy(out, s)
	return out
}

// MarshalJSON always emits an array, never null.
func (s AttributeSet) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

// UnmarshalJSON is lenient: null or a non-array value yields the empty set,
// non-string elements are skipped and duplicates collapse.
func (s *AttributeSet) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseAttributeSet(raw)
	return nil
}

// ParseAttributeSet converts a decoded JSON value into a set using the lenient
// rules of UnmarshalJSON.
func ParseAttributeSet(raw any) AttributeSet {
	items, ok := raw.([]any)
	if !ok {
		return AttributeSet{}
	}
	out := make(AttributeSet, 0, len(items))
	for _, item := range items {
		v, ok := item.(string)
		if !ok || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}
