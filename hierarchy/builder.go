package hierarchy

import (
	"go.uber.org/zap"

	"github.com/BaSui01/hiermatch/types"
)

// Builder provides a fluent API for constructing a Hierarchy
type Builder struct {
	edges      []Edge
	precompute bool
	logger     *zap.Logger
}

// NewBuilder creates a new hierarchy builder
func NewBuilder() *Builder {
	return &Builder{
		logger: zap.NewNop(),
	}
}

// WithLogger sets a custom logger
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	b.logger = logger.With(zap.String("component", "hierarchy_builder"))
	return b
}

// WithPrecompute makes Build fill the closure caches for every known type
func (b *Builder) WithPrecompute(enabled bool) *Builder {
	b.precompute = enabled
	return b
}

// AddEdge adds a subclass-of edge from child to parent
func (b *Builder) AddEdge(child, parent types.TypeID) *Builder {
	b.edges = append(b.edges, Edge{Child: child, Parent: parent})
	return b
}

// AddEdges adds several subclass-of edges
func (b *Builder) AddEdges(edges ...Edge) *Builder {
	b.edges = append(b.edges, edges...)
	return b
}

// Build creates the Hierarchy. Self-loops are dropped and duplicate edges
// collapse. Cycles are reported but kept; closures stay finite regardless.
func (b *Builder) Build() *Hierarchy {
	parents := make(map[types.TypeID][]types.TypeID)
	children := make(map[types.TypeID][]types.TypeID)
	selfLoops := 0

	for _, e := range b.edges {
		if e.Child == e.Parent {
			selfLoops++
			continue
		}
		parents[e.Child] = append(parents[e.Child], e.Parent)
		children[e.Parent] = append(children[e.Parent], e.Child)
	}
	for t, ps := range parents {
		parents[t] = sortedUnique(ps)
	}
	for t, cs := range children {
		children[t] = sortedUnique(cs)
	}

	edges := 0
	for _, ps := range parents {
		edges += len(ps)
	}

	h := newHierarchy(parents, children)
	h.cyclic = detectCycles(h)

	if selfLoops > 0 {
		b.logger.Warn("dropped self-referencing subclass-of edges", zap.Int("count", selfLoops))
	}
	if len(h.cyclic) > 0 {
		b.logger.Warn("cycle detected in type hierarchy",
			zap.Strings("types", h.cyclic),
		)
	}

	if b.precompute {
		h.precompute()
	}

	b.logger.Debug("type hierarchy built",
		zap.Int("edges", edges),
		zap.Int("types", len(h.Types())),
		zap.Bool("precomputed", b.precompute),
	)

	return h
}

// detectCycles runs a DFS over parent edges and returns the types that close
// a back edge, sorted.
func detectCycles(h *Hierarchy) []types.TypeID {
	visited := make(map[types.TypeID]bool)
	recStack := make(map[types.TypeID]bool)
	found := make(typeSet)

	for _, t := range h.Types() {
		if !visited[t] {
			hasCycleDFS(h, t, visited, recStack, found)
		}
	}
	return types.SortedTypes(found)
}

func hasCycleDFS(h *Hierarchy, t types.TypeID, visited, recStack map[types.TypeID]bool, found typeSet) {
	visited[t] = true
	recStack[t] = true

	for _, p := range h.parents[t] {
		if !visited[p] {
			hasCycleDFS(h, p, visited, recStack, found)
		} else if recStack[p] {
			// Back edge found
			found[p] = struct{}{}
			found[t] = struct{}{}
		}
	}

	recStack[t] = false
}
