package matching

import (
	"fmt"

	"github.com/BaSui01/hiermatch/types"
)

// Alignment pairs a gold entity with the annotator entity judged to denote
// the same mention. Both fields are indices into the input collections.
type Alignment struct {
	Gold      int `json:"gold"`
	Annotator int `json:"annotator"`
}

// SpanMatcher decides which gold and annotator entities correspond.
type SpanMatcher interface {
	Align(gold, annotator []types.TypedEntity) ([]Alignment, error)
}

// SpanMatcherFunc adapts a function to the SpanMatcher interface.
type SpanMatcherFunc func(gold, annotator []types.TypedEntity) ([]Alignment, error)

// Align implements SpanMatcher.
func (f SpanMatcherFunc) Align(gold, annotator []types.TypedEntity) ([]Alignment, error) {
	return f(gold, annotator)
}

// SpanMode selects a built-in span matcher.
type SpanMode string

const (
	// SpanModeExact aligns entities with identical offsets
	SpanModeExact SpanMode = "exact"
	// SpanModeWeak aligns entities with overlapping offsets
	SpanModeWeak SpanMode = "weak"
)

// NewSpanMatcher returns the built-in matcher for mode.
func NewSpanMatcher(mode SpanMode) (SpanMatcher, error) {
	switch mode {
	case SpanModeExact:
		return ExactSpanMatcher{}, nil
	case SpanModeWeak, "":
		return WeakSpanMatcher{}, nil
	default:
		return nil, types.Errorf(types.ErrInvalidInput, "unknown span mode: %s", mode)
	}
}

// ExactSpanMatcher pairs each gold entity with the first unused annotator
// entity carrying the same offsets.
type ExactSpanMatcher struct{}

// Align implements SpanMatcher.
func (ExactSpanMatcher) Align(gold, annotator []types.TypedEntity) ([]Alignment, error) {
	if err := validateEntities(gold, annotator); err != nil {
		return nil, err
	}
	return greedyAlign(gold, annotator, func(g, a types.Span) bool { return g == a }), nil
}

// WeakSpanMatcher pairs each gold entity with an unused overlapping
// annotator entity, preferring one with identical offsets.
type WeakSpanMatcher struct{}

// Align implements SpanMatcher.
func (WeakSpanMatcher) Align(gold, annotator []types.TypedEntity) ([]Alignment, error) {
	if err := validateEntities(gold, annotator); err != nil {
		return nil, err
	}
	return greedyAlign(gold, annotator, types.Span.Overlaps), nil
}

// greedyAlign walks gold entities in order. For each one an unused annotator
// entity with identical span wins; otherwise the lowest-index unused entity
// accepted by match is taken.
func greedyAlign(gold, annotator []types.TypedEntity, match func(g, a types.Span) bool) []Alignment {
	used := make([]bool, len(annotator))
	var alignments []Alignment

	for gi, g := range gold {
		best := -1
		for ai, a := range annotator {
			if used[ai] || !match(g.Span, a.Span) {
				continue
			}
			if g.Span == a.Span {
				best = ai
				break
			}
			if best < 0 {
				best = ai
			}
		}
		if best >= 0 {
			used[best] = true
			alignments = append(alignments, Alignment{Gold: gi, Annotator: best})
		}
	}
	return alignments
}

func validateEntities(gold, annotator []types.TypedEntity) error {
	for i, e := range gold {
		if err := e.Span.Validate(); err != nil {
			return fmt.Errorf("gold entity %d: %w", i, err)
		}
	}
	for i, e := range annotator {
		if err := e.Span.Validate(); err != nil {
			return fmt.Errorf("annotator entity %d: %w", i, err)
		}
	}
	return nil
}

// validateAlignments rejects indices a custom SpanMatcher returned out of range.
func validateAlignments(alignments []Alignment, goldLen, annotatorLen int) error {
	for _, a := range alignments {
		if a.Gold < 0 || a.Gold >= goldLen {
			return types.Errorf(types.ErrInvalidAlignment, "gold index %d out of range [0, %d)", a.Gold, goldLen)
		}
		if a.Annotator < 0 || a.Annotator >= annotatorLen {
			return types.Errorf(types.ErrInvalidAlignment, "annotator index %d out of range [0, %d)", a.Annotator, annotatorLen)
		}
	}
	return nil
}
