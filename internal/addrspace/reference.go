package addrspace

// matches reports whether a reference kind with the given isInverse flag
// satisfies a browse direction. It does not look at the reference type:
// exact-type matching and the HasSubtype expansion for IncludeSubtypes
// live in relevantKind below (and in walkElementReferenceTargets for
// path elements), which consult Store.IsInTree.
func matches(direction BrowseDirection, isInverse bool) bool {
	switch direction {
	case BrowseForward:
		return !isInverse
	case BrowseInverse:
		return isInverse
	case BrowseBoth:
		return true
	default:
		return false
	}
}

// relevantKind decides whether a ReferenceKind should be walked for a
// given BrowseDescription, mirroring relevantReference in the
// traversal core: direction must match, and if a reference type filter
// is set, the kind's type must equal it or, when IncludeSubtypes is
// set, be reachable from it through HasSubtype.
func relevantKind(store Store, bd BrowseDescription, hasSubtype NodeId, kind ReferenceKind) bool {
	if !matches(bd.Direction, kind.IsInverse) {
		return false
	}
	if isZeroNodeId(bd.ReferenceTypeId) {
		return true
	}
	if kind.ReferenceTypeId.Equal(bd.ReferenceTypeId) {
		return true
	}
	if !bd.IncludeSubtypes {
		return false
	}
	return store.IsInTree(bd.ReferenceTypeId, kind.ReferenceTypeId, []NodeId{hasSubtype})
}

func isZeroNodeId(id NodeId) bool {
	return id.NamespaceIndex == 0 && id.IdType == IdNumeric && id.Numeric == 0
}

// nodeClassMatches reports whether a node survives a BrowseDescription's
// NodeClassMask filter (0 / NodeClassMask means "no filtering").
func nodeClassMatches(mask NodeClass, nc NodeClass) bool {
	if mask == NodeClassMask {
		return true
	}
	return mask&nc != 0
}

// Reachable walks outgoing references of kind refTypeId (or every kind,
// when restrictType is false) from root looking for candidate,
// guarding against reference cycles with a visited set. This backs the
// default Store.IsInTree implementation used by the HasSubtype closure
// test (nodestore.Store), and is exported for reuse by any Store
// implementation that wants the same semantics.
func Reachable(get func(NodeId) (Node, bool), root, candidate NodeId, refTypeId NodeId, restrictType bool) bool {
	if root.Equal(candidate) {
		return true
	}
	visited := map[string]struct{}{root.key(): {}}
	frontier := []NodeId{root}
	for len(frontier) > 0 {
		next := make([]NodeId, 0, len(frontier))
		for _, cur := range frontier {
			n, ok := get(cur)
			if !ok {
				continue
			}
			for _, kind := range n.References {
				if kind.IsInverse {
					continue
				}
				if restrictType && !kind.ReferenceTypeId.Equal(refTypeId) {
					continue
				}
				for _, tgt := range kind.Targets {
					if !tgt.IsLocal() {
						continue
					}
					if tgt.NodeId.Equal(candidate) {
						return true
					}
					if _, seen := visited[tgt.NodeId.key()]; seen {
						continue
					}
					visited[tgt.NodeId.key()] = struct{}{}
					next = append(next, tgt.NodeId)
				}
			}
		}
		frontier = next
	}
	return false
}
