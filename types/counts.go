package types

import "fmt"

// MatchTriple is the outcome of comparing the types of one aligned entity pair.
type MatchTriple struct {
	Matched       int `json:"matched"`
	FalsePositive int `json:"false_positive"`
	FalseNegative int `json:"false_negative"`
}

// NewMatchTriple creates a triple from its three counts.
func NewMatchTriple(matched, falsePositive, falseNegative int) MatchTriple {
	return MatchTriple{Matched: matched, FalsePositive: falsePositive, FalseNegative: falseNegative}
}

// Add returns the element-wise sum of two triples.
func (m MatchTriple) Add(o MatchTriple) MatchTriple {
	return MatchTriple{
		Matched:       m.Matched + o.Matched,
		FalsePositive: m.FalsePositive + o.FalsePositive,
		FalseNegative: m.FalseNegative + o.FalseNegative,
	}
}

// IsZero reports whether all counts are zero.
func (m MatchTriple) IsZero() bool {
	return m == MatchTriple{}
}

// Array returns the counts in (matched, fp, fn) order.
func (m MatchTriple) Array() [3]int {
	return [3]int{m.Matched, m.FalsePositive, m.FalseNegative}
}

// String implements fmt.Stringer.
func (m MatchTriple) String() string {
	return fmt.Sprintf("(%d, %d, %d)", m.Matched, m.FalsePositive, m.FalseNegative)
}

// SumTriples adds up a list of triples.
func SumTriples(triples []MatchTriple) MatchTriple {
	var total MatchTriple
	for _, t := range triples {
		total = total.Add(t)
	}
	return total
}
