// Package nodestore provides a concrete, in-memory implementation of
// addrspace.Store, with per-node reference counting so that the
// borrow/release discipline required by Invariant 1 is actually
// checkable in tests.
package nodestore

import (
	"sync"
	"sync/atomic"

	"addrspaced/internal/addrspace"
	"addrspaced/internal/logger"
)

type entry struct {
	node     addrspace.Node
	refcount int32
}

// Store is a sync.RWMutex-guarded map of nodes keyed by their NodeId.
type Store struct {
	lgr logger.Logger
	mu  sync.RWMutex
	byID map[string]*entry
}

func New(lgr logger.Logger) *Store {
	if lgr == nil {
		lgr = &logger.NopLogger{}
	}
	return &Store{
		lgr:  lgr.Named("nodestore"),
		byID: make(map[string]*entry),
	}
}

// Put inserts or replaces a node. Intended for seeding (see
// standard_namespace.go) and test setup, not for live mutation during
// traversal - node creation/mutation is out of scope per spec.md's
// Non-goals.
func (s *Store) Put(n addrspace.Node) {
	key := nodeKey(n.NodeId)
	s.mu.Lock()
	s.byID[key] = &entry{node: n}
	s.mu.Unlock()
}

func (s *Store) Get(id addrspace.NodeId) (addrspace.Node, bool) {
	key := nodeKey(id)
	s.mu.RLock()
	e, ok := s.byID[key]
	s.mu.RUnlock()
	if !ok {
		s.lgr.Debug("get: node not found", logger.F("id", id.String_()))
		return addrspace.Node{}, false
	}
	atomic.AddInt32(&e.refcount, 1)
	return e.node, true
}

func (s *Store) Release(id addrspace.NodeId) {
	key := nodeKey(id)
	s.mu.RLock()
	e, ok := s.byID[key]
	s.mu.RUnlock()
	if !ok {
		s.lgr.Warn("release: node not found", logger.F("id", id.String_()))
		return
	}
	if atomic.AddInt32(&e.refcount, -1) < 0 {
		s.lgr.Error("release: refcount went negative", logger.F("id", id.String_()))
	}
}

func (s *Store) TypeDefinition(id addrspace.NodeId) (addrspace.ExpandedNodeId, bool) {
	n, ok := s.Get(id)
	if !ok {
		return addrspace.ExpandedNodeId{}, false
	}
	defer s.Release(id)
	td := n.TypeDefinition.NodeId
	if td.NamespaceIndex == 0 && td.IdType == addrspace.IdNumeric && td.Numeric == 0 {
		return addrspace.ExpandedNodeId{}, false
	}
	return n.TypeDefinition, true
}

func (s *Store) IsInTree(root, candidate addrspace.NodeId, refTypes []addrspace.NodeId) bool {
	restrict := len(refTypes) == 1
	var refType addrspace.NodeId
	if restrict {
		refType = refTypes[0]
	}
	get := func(id addrspace.NodeId) (addrspace.Node, bool) {
		s.mu.RLock()
		e, ok := s.byID[nodeKey(id)]
		s.mu.RUnlock()
		if !ok {
			return addrspace.Node{}, false
		}
		return e.node, true
	}
	return addrspace.Reachable(get, root, candidate, refType, restrict)
}

// OutstandingBorrows reports the total refcount across every node,
// used by tests to assert that every Get has a matching Release.
func (s *Store) OutstandingBorrows() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, e := range s.byID {
		total += int(atomic.LoadInt32(&e.refcount))
	}
	return total
}

func nodeKey(id addrspace.NodeId) string {
	return id.String_()
}
