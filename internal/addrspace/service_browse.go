package addrspace

import (
	"context"

	"addrspaced/internal/addrspace/status"
	"addrspaced/internal/logger"
	"addrspaced/internal/telemetry/browsetrace"
)

// BrowseResult is one row of a Browse/BrowseNext response: the
// reference descriptions computed for a single BrowseDescription (or
// the node a continuation point was bound to), the status of that
// computation, and a continuation point identifier when more results
// remain than maxReferences allowed through.
type BrowseResult struct {
	StatusCode        status.Code
	References        []ReferenceDescription
	ContinuationPoint string
}

// ViewDescription selects the view a browse operates over. The zero
// value selects the default (entire) address space; spec.md's
// Non-goals exclude non-default view filtering, so ViewId is only
// validated, never interpreted.
type ViewDescription struct {
	ViewId NodeId
}

func (v ViewDescription) isDefault() bool { return isZeroNodeId(v.ViewId) }

// Service is the address-space traversal service surface: Browse,
// BrowseNext, TranslateBrowsePathsToNodeIds, and the RegisterNodes
// family. It is the entry point embedders use (cmd/server,
// cmd/browsecli); the admin gRPC surface in internal/transport/adminpb
// works on the SessionManager directly and does not go through it.
type Service struct {
	store    Store
	sessions *SessionManager
	lgr      logger.Logger

	maxNodesPerBrowse                 uint32
	maxReferencesPerNode              uint32
	maxNodesPerTranslateBrowsePaths   uint32
	maxNodesPerRegisterNodes          uint32
}

// Option configures a Service at construction time.
type Option func(*Service)

func WithLogger(lgr logger.Logger) Option {
	return func(s *Service) { s.lgr = lgr }
}

func WithMaxNodesPerBrowse(n uint32) Option {
	return func(s *Service) { s.maxNodesPerBrowse = n }
}

func WithMaxReferencesPerNode(n uint32) Option {
	return func(s *Service) { s.maxReferencesPerNode = n }
}

func WithMaxNodesPerTranslateBrowsePaths(n uint32) Option {
	return func(s *Service) { s.maxNodesPerTranslateBrowsePaths = n }
}

func WithMaxNodesPerRegisterNodes(n uint32) Option {
	return func(s *Service) { s.maxNodesPerRegisterNodes = n }
}

func NewService(store Store, sessions *SessionManager, opts ...Option) *Service {
	s := &Service{
		store:    store,
		sessions: sessions,
		lgr:      &logger.NopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Browse implements the Browse service (spec.md C5): for each
// BrowseDescription, walk the starting node's references up to
// requestedMaxReferencesPerNode (clamped by the server's own limit),
// registering a continuation point under sessionID when more results
// remain.
func (s *Service) Browse(ctx context.Context, sessionID string, view ViewDescription, requestedMaxReferencesPerNode uint32, descriptions []BrowseDescription) []BrowseResult {
	ctx, span := browsetrace.StartForSession(ctx, "Browse", sessionID)
	defer span.End()

	if !view.isDefault() {
		return []BrowseResult{{StatusCode: status.BadViewIdUnknown}}
	}
	if len(descriptions) == 0 {
		return []BrowseResult{{StatusCode: status.BadNothingToDo}}
	}
	if s.maxNodesPerBrowse > 0 && uint32(len(descriptions)) > s.maxNodesPerBrowse {
		return []BrowseResult{{StatusCode: status.BadTooManyOperations}}
	}

	maxRefs := requestedMaxReferencesPerNode
	if s.maxReferencesPerNode > 0 && (maxRefs == 0 || maxRefs > s.maxReferencesPerNode) {
		maxRefs = s.maxReferencesPerNode
	}

	results := make([]BrowseResult, len(descriptions))
	for i, bd := range descriptions {
		select {
		case <-ctx.Done():
			results[i] = BrowseResult{StatusCode: status.BadTimeout}
			continue
		default:
		}
		results[i] = s.browseOne(sessionID, bd, maxRefs)
	}
	return results
}

func (s *Service) browseOne(sessionID string, bd BrowseDescription, maxRefs uint32) BrowseResult {
	refs, cur, hasMore, serr := browseOneNode(s.lgr, s.store, bd, maxRefs)
	if serr != nil {
		return BrowseResult{StatusCode: serr.Code}
	}
	result := BrowseResult{StatusCode: status.Good, References: refs}
	if hasMore {
		cp := &ContinuationPoint{
			BrowseDescription: bd,
			KindIndex:         cur.kindIndex,
			TargetIndex:       cur.targetIndex,
			MaxReferences:     maxRefs,
		}
		id, serr := s.sessions.Allocate(sessionID, cp)
		if serr != nil {
			// Allocation failed (cap reached / RNG failure): the page we
			// already computed is still valid, but there is no way to
			// resume it. Surface that honestly rather than lying about
			// completeness.
			result.StatusCode = serr.Code
			return result
		}
		result.ContinuationPoint = id
	}
	return result
}

// BrowseOne is a convenience wrapper around Browse for a single
// description under the process-wide administrative session, mirroring
// UA_Server_browse's no-session single-call entry point.
func (s *Service) BrowseOne(ctx context.Context, bd BrowseDescription, maxReferences uint32) BrowseResult {
	return s.Browse(ctx, AdminSession, ViewDescription{}, maxReferences, []BrowseDescription{bd})[0]
}
