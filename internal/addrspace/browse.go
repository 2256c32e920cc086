package addrspace

import (
	"addrspaced/internal/addrspace/status"
	"addrspaced/internal/logger"
)

// hasSubtypeRef is the well-known ReferenceTypeId for HasSubtype,
// ns=0;i=45, used to expand IncludeSubtypes filters. It is a package
// variable rather than a Store-resolved value because its identity is
// fixed by the OPC UA core namespace, the same way ua_services_view.c
// hardcodes UA_NS0ID_HASSUBTYPE.
var hasSubtypeRef = NewNumericNodeId(0, 45)

// initialReferenceBufferCap is the starting capacity of a browse
// result buffer, doubled on overflow (mirrors the C source's
// refs_size starting at 2).
const initialReferenceBufferCap = 2

// browseCursor is the in-progress walk state for a single node's
// browse: which reference kind and which target within it comes next.
// A fresh browseCursor lives on the caller's stack; it is only promoted
// into the session's continuation-point registry if the walk needs to
// stop before exhausting the node's references (lazy promotion, per
// spec.md §9).
type browseCursor struct {
	kindIndex   int
	targetIndex int
}

// browseNode walks node n's references starting at cur, filling up to
// maxReferences ReferenceDescription rows. It returns the rows, the
// cursor position to resume from, and whether more references remain
// beyond what was returned.
func browseNode(lgr logger.Logger, store Store, bd BrowseDescription, n Node, cur browseCursor, maxReferences uint32) ([]ReferenceDescription, browseCursor, bool) {
	capHint := initialReferenceBufferCap
	if maxReferences > 0 && int(maxReferences) < capHint {
		capHint = int(maxReferences)
	}
	out := make([]ReferenceDescription, 0, capHint)

	for ki := cur.kindIndex; ki < len(n.References); ki++ {
		kind := n.References[ki]
		if !relevantKind(store, bd, hasSubtypeRef, kind) {
			cur = browseCursor{kindIndex: ki + 1, targetIndex: 0}
			continue
		}
		startTarget := 0
		if ki == cur.kindIndex {
			startTarget = cur.targetIndex
		}
		for ti := startTarget; ti < len(kind.Targets); ti++ {
			if maxReferences > 0 && uint32(len(out)) >= maxReferences {
				return out, browseCursor{kindIndex: ki, targetIndex: ti}, true
			}
			rd, ok := fillReferenceDescription(store, bd, kind, kind.Targets[ti])
			if !ok {
				// Target node vanished or failed the node-class filter:
				// skipped without consuming a slot against maxReferences,
				// per spec.md's pinned Open Question decision.
				lgr.Warn("browse target unresolved, skipping", logger.F("kind", ki), logger.F("target", ti))
				continue
			}
			if len(out) == cap(out) {
				grown := make([]ReferenceDescription, len(out), growBuffer(cap(out), maxReferences))
				copy(grown, out)
				out = grown
			}
			out = append(out, rd)
		}
		cur = browseCursor{kindIndex: ki + 1, targetIndex: 0}
	}
	return out, cur, false
}

// growBuffer doubles a buffer capacity, clamped to the effective max
// when one is set (mirrors the C source's amortized-doubling growth).
func growBuffer(current int, max uint32) int {
	grown := current * 2
	if grown == 0 {
		grown = initialReferenceBufferCap
	}
	if max > 0 && grown > int(max) {
		grown = int(max)
	}
	return grown
}

// browseOneNode is the full C3 algorithm for a single BrowseDescription:
// validate the starting node exists, then walk it from the zero cursor.
// It does not touch the continuation-point registry; that bookkeeping
// belongs to the Browse/BrowseNext service layer (C5/C6), which knows
// about sessions.
func browseOneNode(lgr logger.Logger, store Store, bd BrowseDescription, maxReferences uint32) ([]ReferenceDescription, browseCursor, bool, *status.Error) {
	if bd.Direction != BrowseForward && bd.Direction != BrowseInverse && bd.Direction != BrowseBoth {
		return nil, browseCursor{}, false, status.New(status.BadBrowseDirectionInvalid)
	}
	if !isZeroNodeId(bd.ReferenceTypeId) && !isReferenceTypeNode(store, bd.ReferenceTypeId) {
		return nil, browseCursor{}, false, status.New(status.BadReferenceTypeIdInvalid)
	}
	n, ok := store.Get(bd.NodeId)
	if !ok {
		return nil, browseCursor{}, false, status.New(status.BadNodeIdUnknown)
	}
	defer store.Release(bd.NodeId)

	refs, next, hasMore := browseNode(lgr, store, bd, n, browseCursor{}, maxReferences)
	if refs == nil {
		refs = []ReferenceDescription{}
	}
	return refs, next, hasMore, nil
}

// isReferenceTypeNode reports whether id resolves to a node of
// NodeClassReferenceType, matching ua_services_view.c's validation that
// a BrowseDescription's ReferenceTypeId, when set, must actually name a
// reference type before any references are walked.
func isReferenceTypeNode(store Store, id NodeId) bool {
	n, ok := store.Get(id)
	if !ok {
		return false
	}
	store.Release(id)
	return n.NodeClass == NodeClassReferenceType
}
