package adminpb

import (
	"context"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"addrspaced/internal/addrspace"
	"addrspaced/internal/ctxutil"
	"addrspaced/internal/logger"
)

// service implements AdminServer against an addrspace.SessionManager.
// It never touches Browse/BrowseNext/TranslateBrowsePathsToNodeIds:
// those stay plain Go calls on addrspace.Service, per SPEC_FULL.md's
// Non-goal on a second wire protocol for traversal itself.
type service struct {
	UnimplementedAdminServer
	sessions *addrspace.SessionManager
	lgr      logger.Logger
}

func NewService(sessions *addrspace.SessionManager, lgr logger.Logger) AdminServer {
	if lgr == nil {
		lgr = &logger.NopLogger{}
	}
	return &service{sessions: sessions, lgr: lgr.Named("adminpb")}
}

func (s *service) Ping(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

func (s *service) ContinuationPointCount(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.Int32Value, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	sessionID := ""
	if req != nil {
		sessionID = req.GetValue()
	}
	count := s.sessions.Count(sessionID)
	return wrapperspb.Int32(int32(count)), nil
}

func (s *service) ReleaseSession(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if err := ctxutil.CheckContext(ctx); err != nil {
		return nil, err
	}
	sessionID := ""
	if req != nil {
		sessionID = req.GetValue()
	}
	s.sessions.Retire(sessionID)
	s.lgr.Info("session released", logger.F("session", sessionID))
	return &emptypb.Empty{}, nil
}
