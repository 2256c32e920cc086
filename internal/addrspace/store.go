package addrspace

// Store is the node-store collaborator consumed by every component in
// this package. Every node returned by Get is a borrow: the caller must
// call Release exactly once on every control-flow exit, including error
// paths, before the operation that borrowed it returns.
type Store interface {
	// Get borrows the node identified by id. ok is false if the node
	// does not exist, in which case the returned Node is the zero value
	// and there is nothing to release.
	Get(id NodeId) (n Node, ok bool)

	// Release returns a node borrowed via Get.
	Release(id NodeId)

	// TypeDefinition resolves the HasTypeDefinition target of id, if any.
	TypeDefinition(id NodeId) (ExpandedNodeId, bool)

	// IsInTree reports whether candidate is reachable from root by
	// following forward references, used to implement subtype-closure
	// membership tests for IncludeSubtypes. When refTypes holds exactly
	// one reference type only references of that type are followed; the
	// implementations in this repository follow references of every type
	// when refTypes is empty or holds more than one entry.
	IsInTree(root, candidate NodeId, refTypes []NodeId) bool
}
