package matching

import "github.com/BaSui01/hiermatch/types"

// Accumulator is an append-only log of matching calls. Each call holds the
// triples of its aligned entity pairs in pair order. It is not safe for
// concurrent mutation; parallel runs use one Accumulator per worker and
// Merge them afterwards.
type Accumulator struct {
	calls [][]types.MatchTriple
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Append records the triples of one call and returns the call index.
func (a *Accumulator) Append(triples []types.MatchTriple) int {
	a.calls = append(a.calls, append([]types.MatchTriple{}, triples...))
	return len(a.calls) - 1
}

// Len returns the number of recorded calls.
func (a *Accumulator) Len() int {
	return len(a.calls)
}

// Call returns a copy of the triples recorded for call i.
func (a *Accumulator) Call(i int) ([]types.MatchTriple, bool) {
	if i < 0 || i >= len(a.calls) {
		return nil, false
	}
	return append([]types.MatchTriple{}, a.calls[i]...), true
}

// Calls returns a deep copy of every call, in call order.
func (a *Accumulator) Calls() [][]types.MatchTriple {
	out := make([][]types.MatchTriple, len(a.calls))
	for i, c := range a.calls {
		out[i] = append([]types.MatchTriple{}, c...)
	}
	return out
}

// Merge appends the calls of other after the calls already recorded.
func (a *Accumulator) Merge(other *Accumulator) {
	if other == nil {
		return
	}
	for _, c := range other.calls {
		a.Append(c)
	}
}

// Total sums every triple of every call.
func (a *Accumulator) Total() types.MatchTriple {
	var total types.MatchTriple
	for _, c := range a.calls {
		total = total.Add(types.SumTriples(c))
	}
	return total
}
