package kb

import (
	"sort"
	"strings"

	"github.com/BaSui01/hiermatch/types"
)

// Classifier decides whether a type identifier belongs to a recognized
// knowledge base namespace.
type Classifier interface {
	IsKnown(t types.TypeID) bool
}

// WhitelistClassifier recognizes identifiers by URI prefix.
type WhitelistClassifier struct {
	prefixes []string
}

// NewWhitelistClassifier creates a classifier for the given prefixes. Empty
// prefixes are ignored, since they would match every identifier.
func NewWhitelistClassifier(prefixes ...string) *WhitelistClassifier {
	seen := make(map[string]struct{}, len(prefixes))
	kept := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		kept = append(kept, p)
	}
	sort.Strings(kept)
	return &WhitelistClassifier{prefixes: kept}
}

// IsKnown implements Classifier.
func (c *WhitelistClassifier) IsKnown(t types.TypeID) bool {
	for _, p := range c.prefixes {
		if strings.HasPrefix(t, p) {
			return true
		}
	}
	return false
}

// Prefixes returns the configured prefixes, sorted.
func (c *WhitelistClassifier) Prefixes() []string {
	return append([]string(nil), c.prefixes...)
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(t types.TypeID) bool

// IsKnown implements Classifier.
func (f ClassifierFunc) IsKnown(t types.TypeID) bool {
	return f(t)
}

// AllKnown treats every identifier as known.
var AllKnown Classifier = ClassifierFunc(func(types.TypeID) bool { return true })
