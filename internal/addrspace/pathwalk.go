package addrspace

// pathFrontierEntry carries one node reached so far during a relative
// path descent. The element index used for RemainingPathIndex on
// external-server suspensions is passed to stepPathElement separately.
type pathFrontierEntry struct {
	nodeId ExpandedNodeId
}

// stepPathElement advances every local node in current one hop along
// elem, returning the set of nodes reached (next) and, for any target
// that resolved to a different server, a BrowsePathTarget recording the
// suspension point. This is C7: a single level of walkBrowsePath's
// breadth-first descent.
func stepPathElement(store Store, hasSubtype NodeId, elem RelativePathElement, current []pathFrontierEntry, pathIndexOfElement uint32) (next []pathFrontierEntry, suspended []BrowsePathTarget) {
	seen := make(map[string]struct{})
	for _, entry := range current {
		if !entry.nodeId.IsLocal() {
			// Already suspended by an earlier element; nothing further to
			// walk locally.
			continue
		}
		n, ok := store.Get(entry.nodeId.NodeId)
		if !ok {
			continue
		}
		targets := walkElementReferenceTargets(store, hasSubtype, elem, n)
		store.Release(entry.nodeId.NodeId)

		for _, tgt := range targets {
			if !tgt.NodeId.IsLocal() {
				suspended = append(suspended, BrowsePathTarget{
					TargetId:           tgt.NodeId,
					RemainingPathIndex: pathIndexOfElement,
				})
				continue
			}
			key := tgt.NodeId.NodeId.key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			next = append(next, pathFrontierEntry{nodeId: tgt.NodeId})
		}
	}
	return next, suspended
}

// walkElementReferenceTargets returns every target of n reachable
// through a kind matching elem's reference-type filter whose browse
// name equals elem.TargetName. Mirrors
// walkBrowsePathElementReferenceTargets.
func walkElementReferenceTargets(store Store, hasSubtype NodeId, elem RelativePathElement, n Node) []ExpandedNodeId {
	var out []ExpandedNodeId
	for _, kind := range n.References {
		if !matches(BrowseDirection(boolToDirection(elem.IsInverse)), kind.IsInverse) {
			continue
		}
		if !isZeroNodeId(elem.ReferenceTypeId) {
			if !kind.ReferenceTypeId.Equal(elem.ReferenceTypeId) {
				if !elem.IncludeSubtypes || !store.IsInTree(elem.ReferenceTypeId, kind.ReferenceTypeId, []NodeId{hasSubtype}) {
					continue
				}
			}
		}
		for _, tgt := range kind.Targets {
			if !targetNameMatches(store, tgt, elem.TargetName) {
				continue
			}
			out = append(out, tgt)
		}
	}
	return out
}

func boolToDirection(isInverse bool) BrowseDirection {
	if isInverse {
		return BrowseInverse
	}
	return BrowseForward
}

func targetNameMatches(store Store, tgt ExpandedNodeId, want QualifiedName) bool {
	if !tgt.IsLocal() {
		// Can't resolve a browse name on another server; the original
		// implementation treats every external target as a name match
		// candidate and lets suspension carry the decision onward.
		return true
	}
	n, ok := store.Get(tgt.NodeId)
	if !ok {
		return false
	}
	defer store.Release(tgt.NodeId)
	return n.BrowseName.Equal(want)
}
