package types

import "sort"

// TypeID names a class. Two TypeIDs are equal only if their strings are equal.
type TypeID = string

// Span is a half-open character range [Start, End).
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Validate checks that the span offsets are usable.
func (s Span) Validate() error {
	if s.Start < 0 || s.End < 0 {
		return Errorf(ErrInvalidSpan, "negative offset in span [%d, %d)", s.Start, s.End)
	}
	if s.End < s.Start {
		return Errorf(ErrInvalidSpan, "span end %d precedes start %d", s.End, s.Start)
	}
	return nil
}

// Overlaps reports whether two spans share at least one character.
// Empty spans overlap a span that strictly contains their position.
func (s Span) Overlaps(o Span) bool {
	if s == o {
		return true
	}
	return s.Start < o.End && o.Start < s.End
}

// TypedEntity is a mention with a span and the set of types assigned to it.
type TypedEntity struct {
	Span  `yaml:",inline"`
	Types []TypeID `json:"types" yaml:"types"`
}

// NewTypedEntity creates an entity covering [start, end) with the given types.
func NewTypedEntity(start, end int, types ...TypeID) TypedEntity {
	return TypedEntity{Span: Span{Start: start, End: end}, Types: types}
}

// SortedTypes returns the distinct types of a set in lexicographic order.
func SortedTypes(set map[TypeID]struct{}) []TypeID {
	out := make([]TypeID, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
