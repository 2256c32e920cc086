package addrspace

import "sync"

// testStore is a minimal, refcounted Store implementation used only by
// this package's own tests, so Browse/BrowseNext/Translate can be
// exercised without depending on internal/nodestore.
type testStore struct {
	mu    sync.Mutex
	nodes map[string]*testEntry
	gets  int // number of Get calls, found or not
}

type testEntry struct {
	node     Node
	refcount int
}

func newTestStore() *testStore {
	return &testStore{nodes: make(map[string]*testEntry)}
}

func (s *testStore) put(n Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[n.NodeId.key()] = &testEntry{node: n}
}

func (s *testStore) Get(id NodeId) (Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	e, ok := s.nodes[id.key()]
	if !ok {
		return Node{}, false
	}
	e.refcount++
	return e.node, true
}

func (s *testStore) Release(id NodeId) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.nodes[id.key()]; ok {
		e.refcount--
	}
}

func (s *testStore) TypeDefinition(id NodeId) (ExpandedNodeId, bool) {
	s.mu.Lock()
	e, ok := s.nodes[id.key()]
	s.mu.Unlock()
	if !ok {
		return ExpandedNodeId{}, false
	}
	if isZeroNodeId(e.node.TypeDefinition.NodeId) {
		return ExpandedNodeId{}, false
	}
	return e.node.TypeDefinition, true
}

func (s *testStore) IsInTree(root, candidate NodeId, refTypes []NodeId) bool {
	restrict := len(refTypes) == 1
	var refType NodeId
	if restrict {
		refType = refTypes[0]
	}
	get := func(id NodeId) (Node, bool) {
		s.mu.Lock()
		e, ok := s.nodes[id.key()]
		s.mu.Unlock()
		if !ok {
			return Node{}, false
		}
		return e.node, true
	}
	return Reachable(get, root, candidate, refType, restrict)
}

func (s *testStore) outstandingBorrows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, e := range s.nodes {
		total += e.refcount
	}
	return total
}
