package rvmhost

import (
	"fmt"
	"strings"
	"sync"

	"github.com/funvibe/rvm/internal/typeir"
)

// ResultCache memoizes ResolveType/ResolveTypeOf results per (program
// identity, argument identity) so a host resolving the same generic
// instantiation repeatedly — e.g. a long-lived reflection server handling
// many requests for the same handful of types — doesn't re-run the
// processor each time. Keyed by pointer identity rather than structural
// equality: packed programs are immutable once decoded and type arguments
// reaching a resolution call are themselves already-resolved nodes, so
// pointer identity is a sound proxy for "the same instantiation".
//
// Grounded on the teacher's compiledTraitDefaults/moduleCache memoization
// style (internal/vm/vm.go): a plain map guarded by a mutex, no eviction —
// the teacher's caches are also unbounded for the lifetime of a single
// process run.
type ResultCache struct {
	mu    sync.Mutex
	byKey map[string]*typeir.Node
}

func NewResultCache() *ResultCache {
	return &ResultCache{byKey: make(map[string]*typeir.Node)}
}

func cacheKey(program any, args []*typeir.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%p", program)
	for _, a := range args {
		fmt.Fprintf(&b, "|%p", a)
	}
	return b.String()
}

// Get returns the cached node for (program, args), if present.
func (c *ResultCache) Get(program any, args []*typeir.Node) (*typeir.Node, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.byKey[cacheKey(program, args)]
	return n, ok
}

// Put stores the resolved node for (program, args).
func (c *ResultCache) Put(program any, args []*typeir.Node, result *typeir.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byKey[cacheKey(program, args)] = result
}

// Clear discards every cached entry, used by hosts that hot-reload
// compiled programs and so can no longer trust pointer identity across a
// reload boundary.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byKey = make(map[string]*typeir.Node)
}
