package addrspace

// fillReferenceDescription builds one ReferenceDescription row for a
// single target of a reference kind. Target existence and the
// NodeClassMask filter are applied unconditionally for every local
// target, regardless of which ResultMask bits were requested - only the
// choice of which optional fields get copied onto the result is gated
// by the mask.
func fillReferenceDescription(store Store, bd BrowseDescription, kind ReferenceKind, target ExpandedNodeId) (ReferenceDescription, bool) {
	rd := ReferenceDescription{
		NodeId: target,
	}
	if bd.ResultMask&ResultMaskReferenceTypeId != 0 {
		rd.ReferenceTypeId = kind.ReferenceTypeId
	}
	if bd.ResultMask&ResultMaskIsForward != 0 {
		rd.IsForward = !kind.IsInverse
	}

	if !target.IsLocal() {
		// External targets can't be resolved further within this server;
		// existence and NodeClassMask filtering only apply to local nodes.
		return rd, true
	}

	n, ok := store.Get(target.NodeId)
	if !ok {
		return rd, false
	}
	defer store.Release(target.NodeId)
	if !nodeClassMatches(bd.NodeClassMask, n.NodeClass) {
		return rd, false
	}

	if bd.ResultMask&ResultMaskNodeClass != 0 {
		rd.NodeClass = n.NodeClass
	}
	if bd.ResultMask&ResultMaskBrowseName != 0 {
		rd.BrowseName = n.BrowseName
	}
	if bd.ResultMask&ResultMaskDisplayName != 0 {
		rd.DisplayName = n.DisplayName
	}
	if bd.ResultMask&ResultMaskTypeDefinition != 0 {
		if td, ok := store.TypeDefinition(target.NodeId); ok {
			rd.TypeDefinition = td
		}
	}
	return rd, true
}
