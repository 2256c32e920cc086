package adminpb

import (
	"context"
	"testing"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"addrspaced/internal/addrspace"
)

func TestPing(t *testing.T) {
	sessions := addrspace.NewSessionManager(0, nil)
	svc := NewService(sessions, nil)

	if _, err := svc.Ping(context.Background(), &emptypb.Empty{}); err != nil {
		t.Fatalf("Ping() error = %v, want nil", err)
	}
}

func TestContinuationPointCount(t *testing.T) {
	sessions := addrspace.NewSessionManager(0, nil)
	svc := NewService(sessions, nil)

	sessions.Allocate("sess", &addrspace.ContinuationPoint{})
	sessions.Allocate("sess", &addrspace.ContinuationPoint{})

	out, err := svc.ContinuationPointCount(context.Background(), wrapperspb.String("sess"))
	if err != nil {
		t.Fatalf("ContinuationPointCount() error = %v, want nil", err)
	}
	if out.GetValue() != 2 {
		t.Fatalf("ContinuationPointCount = %d, want 2", out.GetValue())
	}
}

func TestReleaseSession(t *testing.T) {
	sessions := addrspace.NewSessionManager(0, nil)
	svc := NewService(sessions, nil)

	sessions.Allocate("sess", &addrspace.ContinuationPoint{})
	if _, err := svc.ReleaseSession(context.Background(), wrapperspb.String("sess")); err != nil {
		t.Fatalf("ReleaseSession() error = %v, want nil", err)
	}
	if sessions.Count("sess") != 0 {
		t.Fatalf("Count after ReleaseSession = %d, want 0", sessions.Count("sess"))
	}
}

func TestPingCanceledContext(t *testing.T) {
	sessions := addrspace.NewSessionManager(0, nil)
	svc := NewService(sessions, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Ping(ctx, &emptypb.Empty{}); err == nil {
		t.Fatalf("Ping(canceled ctx) error = nil, want an error")
	}
}
