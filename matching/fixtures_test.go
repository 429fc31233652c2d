package matching

import (
	"github.com/BaSui01/hiermatch/hierarchy"
	"github.com/BaSui01/hiermatch/kb"
	"github.com/BaSui01/hiermatch/types"
)

const ns = "http://example.org/"

var knownKB = kb.NewWhitelistClassifier(ns)

func uris(names ...string) []types.TypeID {
	out := make([]types.TypeID, len(names))
	for i, n := range names {
		out[i] = ns + n
	}
	return out
}

func edge(child, parent string) hierarchy.Edge {
	return hierarchy.Edge{Child: ns + child, Parent: ns + parent}
}

// chainHierarchy is A <- B <- C.
func chainHierarchy() *hierarchy.Hierarchy {
	return hierarchy.New(edge("B", "A"), edge("C", "B"))
}

// treeHierarchy is
//
//	    A
//	   / \
//	  B   C
//	 / \   \
//	D   E   F
func treeHierarchy() *hierarchy.Hierarchy {
	return hierarchy.New(
		edge("B", "A"), edge("C", "A"),
		edge("D", "B"), edge("E", "B"),
		edge("F", "C"),
	)
}

// dagHierarchy gives G, L several parents.
func dagHierarchy() *hierarchy.Hierarchy {
	return hierarchy.New(
		edge("B", "A"), edge("C", "A"), edge("D", "A"),
		edge("E", "B"), edge("F", "B"),
		edge("G", "C"), edge("G", "D"),
		edge("H", "D"), edge("I", "D"), edge("J", "D"),
		edge("K", "I"),
		edge("L", "D"), edge("L", "I"),
	)
}

type typeCase struct {
	name      string
	gold      []types.TypeID
	annotator []types.TypeID
	want      types.MatchTriple
}
