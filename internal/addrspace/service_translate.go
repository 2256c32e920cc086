package addrspace

import (
	"context"

	"addrspaced/internal/addrspace/status"
	"addrspaced/internal/telemetry/browsetrace"
)

// TranslateBrowsePathsToNodeIds implements the C8 service: resolve each
// RelativePath starting at startingNode to the node(s) it names, via
// breadth-first descent using two alternating frontier buffers (current
// consumed while next is built), matching walkBrowsePath.
func (s *Service) TranslateBrowsePathsToNodeIds(ctx context.Context, startingNodes []NodeId, paths []RelativePath) []BrowsePathResult {
	ctx, span := browsetrace.Start(ctx, "TranslateBrowsePathsToNodeIds")
	defer span.End()

	if len(startingNodes) == 0 || len(paths) == 0 || len(startingNodes) != len(paths) {
		return []BrowsePathResult{{StatusCode: status.BadNothingToDo}}
	}
	if s.maxNodesPerTranslateBrowsePaths > 0 && uint32(len(paths)) > s.maxNodesPerTranslateBrowsePaths {
		return []BrowsePathResult{{StatusCode: status.BadTooManyOperations}}
	}

	results := make([]BrowsePathResult, len(paths))
	for i := range paths {
		select {
		case <-ctx.Done():
			results[i] = BrowsePathResult{StatusCode: status.BadTimeout}
			continue
		default:
		}
		results[i] = s.translateOne(startingNodes[i], paths[i])
	}
	return results
}

func (s *Service) translateOne(start NodeId, path RelativePath) BrowsePathResult {
	if len(path.Elements) == 0 {
		return BrowsePathResult{StatusCode: status.BadNothingToDo}
	}
	for _, elem := range path.Elements {
		if elem.TargetName.Name == "" {
			// Rejected before the store is ever touched, per spec.md's
			// boundary behavior for a path element with an empty
			// targetName.
			return BrowsePathResult{StatusCode: status.BadBrowseNameInvalid}
		}
	}
	if _, ok := s.store.Get(start); !ok {
		return BrowsePathResult{StatusCode: status.BadNodeIdUnknown}
	}
	s.store.Release(start)

	current := []pathFrontierEntry{{nodeId: LocalId(start)}}
	var allSuspended []BrowsePathTarget

	for idx, elem := range path.Elements {
		if len(current) == 0 {
			break
		}
		next, suspended := stepPathElement(s.store, hasSubtypeRef, elem, current, uint32(idx))
		allSuspended = append(allSuspended, suspended...)
		current = next
	}

	targets := make([]BrowsePathTarget, 0, len(current)+len(allSuspended))
	for _, entry := range current {
		targets = append(targets, BrowsePathTarget{
			TargetId:           entry.nodeId,
			RemainingPathIndex: NoRemainingPath,
		})
	}
	targets = append(targets, allSuspended...)

	result := BrowsePathResult{Targets: targets}
	if len(targets) == 0 {
		result.Targets = []BrowsePathTarget{}
	}
	result.StatusCode = statusForTranslate(result)
	return result
}

// TranslateOne is the single-path convenience wrapper, mirroring
// UA_Server_translateBrowsePathToNodeIds.
func (s *Service) TranslateOne(ctx context.Context, start NodeId, path RelativePath) BrowsePathResult {
	return s.TranslateBrowsePathsToNodeIds(ctx, []NodeId{start}, []RelativePath{path})[0]
}

// statusForTranslate maps an empty-result translate into the
// BadNoMatch status the caller should surface alongside an empty
// target list, per spec.md.
func statusForTranslate(r BrowsePathResult) status.Code {
	if len(r.Targets) == 0 {
		return status.BadNoMatch
	}
	return status.Good
}
