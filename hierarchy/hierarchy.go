package hierarchy

import (
	"sort"
	"sync"

	"github.com/BaSui01/hiermatch/types"
)

// Relation classifies how an annotator type relates to a gold type.
type Relation int

const (
	// RelationUnrelated means neither type subsumes the other
	RelationUnrelated Relation = iota
	// RelationExact means both types are identical
	RelationExact
	// RelationUnder means the annotator type is a proper ancestor of the gold type
	RelationUnder
	// RelationOver means the annotator type is a proper descendant of the gold type
	RelationOver
)

// String implements fmt.Stringer.
func (r Relation) String() string {
	switch r {
	case RelationExact:
		return "exact"
	case RelationUnder:
		return "under"
	case RelationOver:
		return "over"
	default:
		return "unrelated"
	}
}

// Edge is a subclass-of fact: Child is a direct subclass of Parent.
type Edge struct {
	Child  types.TypeID `json:"child" yaml:"child"`
	Parent types.TypeID `json:"parent" yaml:"parent"`
}

type typeSet map[types.TypeID]struct{}

// Hierarchy is an immutable subclass-of graph with memoized closures.
// The graph may have multiple parents per type and may contain cycles;
// every traversal keeps its own visited set, so it always terminates.
// A built Hierarchy is safe for concurrent use.
type Hierarchy struct {
	// parents maps a type to its direct parents, sorted
	parents map[types.TypeID][]types.TypeID
	// children maps a type to its direct children, sorted
	children map[types.TypeID][]types.TypeID
	// cyclic lists types found on a cycle at build time, sorted
	cyclic []types.TypeID

	mu          sync.RWMutex
	ancestors   map[types.TypeID]typeSet
	descendants map[types.TypeID]typeSet
}

func newHierarchy(parents, children map[types.TypeID][]types.TypeID) *Hierarchy {
	return &Hierarchy{
		parents:     parents,
		children:    children,
		ancestors:   make(map[types.TypeID]typeSet),
		descendants: make(map[types.TypeID]typeSet),
	}
}

// New builds a hierarchy from the given edges with default builder settings.
func New(edges ...Edge) *Hierarchy {
	return NewBuilder().AddEdges(edges...).Build()
}

// Contains reports whether the type takes part in at least one edge.
func (h *Hierarchy) Contains(t types.TypeID) bool {
	if _, ok := h.parents[t]; ok {
		return true
	}
	_, ok := h.children[t]
	return ok
}

// Types returns every type mentioned by an edge, sorted.
func (h *Hierarchy) Types() []types.TypeID {
	set := make(typeSet, len(h.parents)+len(h.children))
	for t := range h.parents {
		set[t] = struct{}{}
	}
	for t := range h.children {
		set[t] = struct{}{}
	}
	return types.SortedTypes(set)
}

// Parents returns the direct parents of t.
func (h *Hierarchy) Parents(t types.TypeID) []types.TypeID {
	return append([]types.TypeID(nil), h.parents[t]...)
}

// Children returns the direct children of t.
func (h *Hierarchy) Children(t types.TypeID) []types.TypeID {
	return append([]types.TypeID(nil), h.children[t]...)
}

// CyclicTypes returns the types detected on subclass-of cycles.
func (h *Hierarchy) CyclicTypes() []types.TypeID {
	return append([]types.TypeID(nil), h.cyclic...)
}

// Ancestors returns the ancestor closure of t (t included), sorted.
func (h *Hierarchy) Ancestors(t types.TypeID) []types.TypeID {
	return types.SortedTypes(h.ancestorSet(t))
}

// Descendants returns the descendant closure of t (t included), sorted.
func (h *Hierarchy) Descendants(t types.TypeID) []types.TypeID {
	return types.SortedTypes(h.descendantSet(t))
}

// IsAncestor reports whether a is a proper ancestor of b.
func (h *Hierarchy) IsAncestor(a, b types.TypeID) bool {
	if a == b {
		return false
	}
	_, ok := h.ancestorSet(b)[a]
	return ok
}

// IsDescendant reports whether a is a proper descendant of b.
func (h *Hierarchy) IsDescendant(a, b types.TypeID) bool {
	return h.IsAncestor(b, a)
}

// Relation classifies annotator relative to gold. On a cycle both types are
// ancestors of each other; RelationUnder wins in that case.
func (h *Hierarchy) Relation(gold, annotator types.TypeID) Relation {
	switch {
	case gold == annotator:
		return RelationExact
	case h.IsAncestor(annotator, gold):
		return RelationUnder
	case h.IsDescendant(annotator, gold):
		return RelationOver
	default:
		return RelationUnrelated
	}
}

// Distance returns the number of subclass-of edges on the shortest upward
// path from descendant to ancestor. ok is false when no such path exists.
func (h *Hierarchy) Distance(descendant, ancestor types.TypeID) (int, bool) {
	if descendant == ancestor {
		return 0, true
	}
	visited := typeSet{descendant: {}}
	frontier := []types.TypeID{descendant}
	for depth := 1; len(frontier) > 0; depth++ {
		var next []types.TypeID
		for _, t := range frontier {
			for _, p := range h.parents[t] {
				if p == ancestor {
					return depth, true
				}
				if _, seen := visited[p]; seen {
					continue
				}
				visited[p] = struct{}{}
				next = append(next, p)
			}
		}
		frontier = next
	}
	return 0, false
}

func (h *Hierarchy) ancestorSet(t types.TypeID) typeSet {
	return h.memoized(h.ancestors, h.parents, t)
}

func (h *Hierarchy) descendantSet(t types.TypeID) typeSet {
	return h.memoized(h.descendants, h.children, t)
}

// memoized returns the cached closure of t over adj, computing it on a miss.
// Cached sets are never mutated after being stored. Types outside the graph
// are their own closure and are not cached.
func (h *Hierarchy) memoized(cache map[types.TypeID]typeSet, adj map[types.TypeID][]types.TypeID, t types.TypeID) typeSet {
	if !h.Contains(t) {
		return typeSet{t: {}}
	}
	h.mu.RLock()
	set, ok := cache[t]
	h.mu.RUnlock()
	if ok {
		return set
	}

	set = closure(adj, t)

	h.mu.Lock()
	if existing, ok := cache[t]; ok {
		set = existing
	} else {
		cache[t] = set
	}
	h.mu.Unlock()
	return set
}

// closure walks adj from start with an explicit stack. A node already in the
// visited set is never expanded again, which breaks cycles.
func closure(adj map[types.TypeID][]types.TypeID, start types.TypeID) typeSet {
	visited := typeSet{start: {}}
	stack := []types.TypeID{start}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range adj[n] {
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			stack = append(stack, next)
		}
	}
	return visited
}

// precompute fills both closure caches for every known type.
func (h *Hierarchy) precompute() {
	for _, t := range h.Types() {
		h.ancestorSet(t)
		h.descendantSet(t)
	}
}

func sortedUnique(in []types.TypeID) []types.TypeID {
	sort.Strings(in)
	out := in[:0]
	for i, t := range in {
		if i > 0 && t == in[i-1] {
			continue
		}
		out = append(out, t)
	}
	return out
}
