package addrspace

import (
	"context"

	"addrspaced/internal/addrspace/status"
	"addrspaced/internal/telemetry/browsetrace"
)

// BrowseNext implements the BrowseNext service (spec.md C6): resume one
// or more previously issued continuation points, optionally releasing
// them instead of continuing (releaseContinuationPoints=true). Unlike
// the original C implementation, the release flag is passed explicitly
// per spec.md §9 rather than read off a thread-local.
func (s *Service) BrowseNext(ctx context.Context, sessionID string, releaseContinuationPoints bool, continuationPoints []string) []BrowseResult {
	ctx, span := browsetrace.StartForSession(ctx, "BrowseNext", sessionID)
	defer span.End()

	if len(continuationPoints) == 0 {
		return []BrowseResult{{StatusCode: status.BadNothingToDo}}
	}

	results := make([]BrowseResult, len(continuationPoints))
	for i, id := range continuationPoints {
		select {
		case <-ctx.Done():
			results[i] = BrowseResult{StatusCode: status.BadTimeout}
			continue
		default:
		}
		results[i] = s.browseNextOne(sessionID, id, releaseContinuationPoints)
	}
	return results
}

func (s *Service) browseNextOne(sessionID, id string, release bool) BrowseResult {
	cp, serr := s.sessions.Find(sessionID, id)
	if serr != nil {
		return BrowseResult{StatusCode: serr.Code}
	}
	if release {
		// Point already removed by Find; nothing further to do.
		return BrowseResult{StatusCode: status.Good}
	}

	n, ok := s.store.Get(cp.BrowseDescription.NodeId)
	if !ok {
		return BrowseResult{StatusCode: status.BadNodeIdUnknown}
	}
	defer s.store.Release(cp.BrowseDescription.NodeId)

	cur := browseCursor{kindIndex: cp.KindIndex, targetIndex: cp.TargetIndex}
	refs, next, hasMore := browseNode(s.lgr, s.store, cp.BrowseDescription, n, cur, cp.MaxReferences)

	result := BrowseResult{StatusCode: status.Good, References: refs}
	if hasMore {
		cp.KindIndex = next.kindIndex
		cp.TargetIndex = next.targetIndex
		if serr := s.sessions.Reinsert(sessionID, cp); serr != nil {
			result.StatusCode = serr.Code
			return result
		}
		result.ContinuationPoint = cp.Identifier
	}
	return result
}

// BrowseNextOne is the single-call convenience wrapper under the
// administrative session, mirroring UA_Server_browseNext.
func (s *Service) BrowseNextOne(ctx context.Context, release bool, continuationPoint string) BrowseResult {
	return s.BrowseNext(ctx, AdminSession, release, []string{continuationPoint})[0]
}
