package matching

import (
	"github.com/BaSui01/hiermatch/hierarchy"
	"github.com/BaSui01/hiermatch/kb"
	"github.com/BaSui01/hiermatch/types"
)

// Strategy selects how two type sets are compared.
type Strategy string

const (
	// StrategySubsumption expands both sets by their descendant closures and
	// counts the intersection and both differences
	StrategySubsumption Strategy = "subsumption"
	// StrategyGreedy pairs exact types first, then credits each remaining gold
	// type through its closest over- or under-specialized annotator type
	StrategyGreedy Strategy = "greedy"
)

type strategyFunc func(m *TypeSetMatcher, gold, annotator typeSet) types.MatchTriple

var strategies = map[Strategy]strategyFunc{
	StrategySubsumption: (*TypeSetMatcher).matchSubsumption,
	StrategyGreedy:      (*TypeSetMatcher).matchGreedy,
}

// ParseStrategy validates a strategy name. The empty name selects
// StrategySubsumption.
func ParseStrategy(name string) (Strategy, error) {
	if name == "" {
		return StrategySubsumption, nil
	}
	s := Strategy(name)
	if _, ok := strategies[s]; !ok {
		return "", types.Errorf(types.ErrInvalidInput, "unknown matching strategy: %s", name)
	}
	return s, nil
}

type typeSet map[types.TypeID]struct{}

func toSet(ids []types.TypeID) typeSet {
	set := make(typeSet, len(ids))
	for _, t := range ids {
		set[t] = struct{}{}
	}
	return set
}

// TypeSetMatcher compares the type sets of one aligned entity pair. It only
// reads the hierarchy, so one matcher may serve concurrent callers.
type TypeSetMatcher struct {
	hierarchy  *hierarchy.Hierarchy
	classifier kb.Classifier
	strategy   Strategy
	match      strategyFunc
}

// NewTypeSetMatcher creates a matcher. A nil hierarchy behaves as one without
// edges; a nil classifier treats every type as known.
func NewTypeSetMatcher(h *hierarchy.Hierarchy, classifier kb.Classifier, strategy Strategy) (*TypeSetMatcher, error) {
	strategy, err := ParseStrategy(string(strategy))
	if err != nil {
		return nil, err
	}
	if h == nil {
		h = hierarchy.New()
	}
	if classifier == nil {
		classifier = kb.AllKnown
	}
	return &TypeSetMatcher{
		hierarchy:  h,
		classifier: classifier,
		strategy:   strategy,
		match:      strategies[strategy],
	}, nil
}

// Strategy returns the configured strategy.
func (m *TypeSetMatcher) Strategy() Strategy {
	return m.strategy
}

// Match compares gold and annotator types and returns one triple. Duplicate
// identifiers collapse; either side may be empty.
func (m *TypeSetMatcher) Match(gold, annotator []types.TypeID) types.MatchTriple {
	return m.match(m, toSet(gold), toSet(annotator))
}

// Relation classifies annotator against gold. Types outside the known
// namespaces carry no hierarchy information, so they are only ever exact
// or unrelated.
func (m *TypeSetMatcher) Relation(gold, annotator types.TypeID) hierarchy.Relation {
	if gold == annotator {
		return hierarchy.RelationExact
	}
	if !m.classifier.IsKnown(gold) || !m.classifier.IsKnown(annotator) {
		return hierarchy.RelationUnrelated
	}
	return m.hierarchy.Relation(gold, annotator)
}

// expand adds the known descendants of every known type. Unknown types stay
// atomic on both ends of an edge.
func (m *TypeSetMatcher) expand(set typeSet) typeSet {
	out := make(typeSet, len(set))
	for t := range set {
		out[t] = struct{}{}
		if !m.classifier.IsKnown(t) {
			continue
		}
		for _, d := range m.hierarchy.Descendants(t) {
			if m.classifier.IsKnown(d) {
				out[d] = struct{}{}
			}
		}
	}
	return out
}

func (m *TypeSetMatcher) matchSubsumption(gold, annotator typeSet) types.MatchTriple {
	g := m.expand(gold)
	a := m.expand(annotator)

	var triple types.MatchTriple
	for t := range g {
		if _, ok := a[t]; ok {
			triple.Matched++
		} else {
			triple.FalseNegative++
		}
	}
	for t := range a {
		if _, ok := g[t]; !ok {
			triple.FalsePositive++
		}
	}
	return triple
}

func (m *TypeSetMatcher) matchGreedy(gold, annotator typeSet) types.MatchTriple {
	if len(gold) == 0 {
		return types.MatchTriple{FalsePositive: len(annotator)}
	}

	remainingAnnotator := make(typeSet, len(annotator))
	for t := range annotator {
		remainingAnnotator[t] = struct{}{}
	}

	var triple types.MatchTriple
	var remainingGold []types.TypeID

	// Exact phase consumes one type from each side.
	for _, g := range types.SortedTypes(gold) {
		if _, ok := remainingAnnotator[g]; ok {
			delete(remainingAnnotator, g)
			triple.Matched++
			continue
		}
		remainingGold = append(remainingGold, g)
	}

	// Hierarchical phase leaves annotator types in place.
	candidates := types.SortedTypes(remainingAnnotator)
	for _, g := range remainingGold {
		switch m.closestRelation(g, candidates) {
		case hierarchy.RelationOver:
			triple.Matched++
			triple.FalseNegative++
		case hierarchy.RelationUnder:
			triple.Matched++
			triple.FalsePositive++
		default:
			triple.FalseNegative++
		}
	}
	return triple
}

// closestRelation returns the relation of the candidate nearest to gold in
// the hierarchy. candidates must be sorted; the first one wins a distance tie.
func (m *TypeSetMatcher) closestRelation(gold types.TypeID, candidates []types.TypeID) hierarchy.Relation {
	best := hierarchy.RelationUnrelated
	bestDist := -1

	for _, a := range candidates {
		rel := m.Relation(gold, a)
		var dist int
		var ok bool
		switch rel {
		case hierarchy.RelationUnder:
			dist, ok = m.hierarchy.Distance(gold, a)
		case hierarchy.RelationOver:
			dist, ok = m.hierarchy.Distance(a, gold)
		}
		if !ok {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = rel, dist
		}
	}
	return best
}
