package search

import (
	"github.com/cristianoliveira/debugmenu/internal/tree"
)

// MaxResults caps the number of search results.
const MaxResults = 10

// Index is a flat cache of the leaves of a tree, rebuilt on the first search
// after the tree changed.
type Index struct {
	tree     *tree.Tree
	provider Provider

	leaves  []*tree.Node
	version uint64
	built   bool
}

// NewIndex creates an index over t. A nil provider searches by substring.
func NewIndex(t *tree.Tree, provider Provider) *Index {
	if provider == nil {
		provider = NewSubstringProvider()
	}
	return &Index{tree: t, provider: provider}
}

// SetProvider swaps the matching strategy.
func (x *Index) SetProvider(p Provider) {
	if p != nil {
		x.provider = p
	}
}

// Provider returns the matching strategy.
func (x *Index) Provider() Provider {
	return x.provider
}

// Invalidate drops the cache.
func (x *Index) Invalidate() {
	x.built = false
	x.leaves = nil
}

// Leaves returns the cached leaves, rebuilding them when stale.
func (x *Index) Leaves() []*tree.Node {
	if !x.built || x.version != x.tree.Version() {
		x.leaves = x.tree.Leaves()
		x.version = x.tree.Version()
		x.built = true
	}
	return x.leaves
}

// Search returns up to MaxResults leaves matching query, in cache order.
func (x *Index) Search(query string) []*tree.Node {
	var results []*tree.Node
	for _, leaf := range x.Leaves() {
		if len(results) == MaxResults {
			break
		}
		if x.provider.Match(leaf.Action, query) {
			results = append(results, leaf)
		}
	}
	return results
}
