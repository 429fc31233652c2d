package hierarchy

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ns = "http://example.org/"

// chain builds A <- B <- C.
func chain() *Hierarchy {
	return New(
		Edge{Child: ns + "B", Parent: ns + "A"},
		Edge{Child: ns + "C", Parent: ns + "B"},
	)
}

// dag builds the multi-parent hierarchy used by the DAG vectors:
//
//	      A
//	    / | \
//	  B   C   D
//	 / \  |/ /|\ \
//	E   F G H I \ J
//	         / \|
//	        K   L
func dag() *Hierarchy {
	return New(
		Edge{Child: ns + "B", Parent: ns + "A"},
		Edge{Child: ns + "C", Parent: ns + "A"},
		Edge{Child: ns + "D", Parent: ns + "A"},
		Edge{Child: ns + "E", Parent: ns + "B"},
		Edge{Child: ns + "F", Parent: ns + "B"},
		Edge{Child: ns + "G", Parent: ns + "C"},
		Edge{Child: ns + "G", Parent: ns + "D"},
		Edge{Child: ns + "H", Parent: ns + "D"},
		Edge{Child: ns + "I", Parent: ns + "D"},
		Edge{Child: ns + "J", Parent: ns + "D"},
		Edge{Child: ns + "K", Parent: ns + "I"},
		Edge{Child: ns + "L", Parent: ns + "D"},
		Edge{Child: ns + "L", Parent: ns + "I"},
	)
}

func TestHierarchy_Closures(t *testing.T) {
	h := chain()

	assert.Equal(t, []string{ns + "A", ns + "B", ns + "C"}, h.Ancestors(ns+"C"))
	assert.Equal(t, []string{ns + "A"}, h.Ancestors(ns+"A"))
	assert.Equal(t, []string{ns + "A", ns + "B", ns + "C"}, h.Descendants(ns+"A"))
	assert.Equal(t, []string{ns + "C"}, h.Descendants(ns+"C"))

	t.Run("unknown type is its own closure", func(t *testing.T) {
		assert.Equal(t, []string{"x"}, h.Ancestors("x"))
		assert.Equal(t, []string{"x"}, h.Descendants("x"))
		assert.False(t, h.Contains("x"))
		assert.False(t, h.IsAncestor(ns+"A", "x"))

		h.mu.RLock()
		defer h.mu.RUnlock()
		assert.NotContains(t, h.ancestors, "x", "types outside the graph are not cached")
		assert.NotContains(t, h.descendants, "x")
	})

	t.Run("multiple parents", func(t *testing.T) {
		d := dag()
		assert.Equal(t, []string{ns + "A", ns + "C", ns + "D", ns + "G"}, d.Ancestors(ns+"G"))
		assert.Equal(t,
			[]string{ns + "D", ns + "G", ns + "H", ns + "I", ns + "J", ns + "K", ns + "L"},
			d.Descendants(ns+"D"))
	})
}

func TestHierarchy_AncestorQueries(t *testing.T) {
	h := chain()

	assert.True(t, h.IsAncestor(ns+"A", ns+"C"))
	assert.True(t, h.IsAncestor(ns+"B", ns+"C"))
	assert.False(t, h.IsAncestor(ns+"C", ns+"A"))
	assert.False(t, h.IsAncestor(ns+"B", ns+"B"), "a type is not its own proper ancestor")

	assert.True(t, h.IsDescendant(ns+"C", ns+"A"))
	assert.False(t, h.IsDescendant(ns+"A", ns+"C"))
}

func TestHierarchy_Relation(t *testing.T) {
	h := dag()

	tests := []struct {
		gold, annotator string
		want            Relation
	}{
		{ns + "B", ns + "B", RelationExact},
		{ns + "E", ns + "A", RelationUnder},
		{ns + "B", ns + "E", RelationOver},
		{ns + "D", ns + "K", RelationOver},
		{ns + "D", ns + "C", RelationUnrelated},
		{ns + "G", ns + "H", RelationUnrelated},
		{"foreign", ns + "A", RelationUnrelated},
		{"foreign", "foreign", RelationExact},
	}

	for _, tt := range tests {
		t.Run(tt.gold+"/"+tt.annotator, func(t *testing.T) {
			assert.Equal(t, tt.want, h.Relation(tt.gold, tt.annotator))
		})
	}

	assert.Equal(t, "under", RelationUnder.String())
	assert.Equal(t, "over", RelationOver.String())
	assert.Equal(t, "exact", RelationExact.String())
	assert.Equal(t, "unrelated", RelationUnrelated.String())
}

func TestHierarchy_Distance(t *testing.T) {
	h := dag()

	d, ok := h.Distance(ns+"L", ns+"D")
	require.True(t, ok)
	assert.Equal(t, 1, d, "direct edge beats the path through I")

	d, ok = h.Distance(ns+"K", ns+"A")
	require.True(t, ok)
	assert.Equal(t, 3, d)

	d, ok = h.Distance(ns+"B", ns+"B")
	require.True(t, ok)
	assert.Equal(t, 0, d)

	_, ok = h.Distance(ns+"A", ns+"K")
	assert.False(t, ok)
}

func TestHierarchy_Cycles(t *testing.T) {
	h := New(
		Edge{Child: "a", Parent: "b"},
		Edge{Child: "b", Parent: "c"},
		Edge{Child: "c", Parent: "a"},
		Edge{Child: "d", Parent: "a"},
	)

	assert.Equal(t, []string{"a", "b", "c"}, h.Ancestors("a"))
	assert.Equal(t, []string{"a", "b", "c", "d"}, h.Ancestors("d"))
	assert.Equal(t, []string{"a", "b", "c", "d"}, h.Descendants("c"))
	assert.NotEmpty(t, h.CyclicTypes())
	assert.Equal(t, RelationUnder, h.Relation("a", "b"))
	assert.Equal(t, RelationUnder, h.Relation("b", "a"))

	_, ok := h.Distance("d", "x")
	assert.False(t, ok)
}

func TestHierarchy_ConcurrentReaders(t *testing.T) {
	h := dag()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, typ := range h.Types() {
				h.Ancestors(typ)
				h.Descendants(typ)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, []string{ns + "A", ns + "B", ns + "E"}, h.Ancestors(ns+"E"))
}

func TestHierarchy_AccessorsReturnCopies(t *testing.T) {
	h := dag()

	parents := h.Parents(ns + "G")
	require.Equal(t, []string{ns + "C", ns + "D"}, parents)
	parents[0] = "mutated"
	assert.Equal(t, []string{ns + "C", ns + "D"}, h.Parents(ns+"G"))

	assert.Equal(t, []string{ns + "K", ns + "L"}, h.Children(ns+"I"))
	assert.Len(t, h.Types(), 12)
}
