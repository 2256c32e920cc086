package addrspace

import (
	"context"
	"testing"

	"addrspaced/internal/addrspace/status"
)

func TestRegisterNodesPassthrough(t *testing.T) {
	s := newTestStore()
	svc := NewService(s, NewSessionManager(0, nil))

	ids := []NodeId{NewNumericNodeId(0, 1), NewNumericNodeId(0, 2)}
	out, serr := svc.RegisterNodes(context.Background(), ids)
	if serr != nil {
		t.Fatalf("RegisterNodes error = %v, want nil", serr)
	}
	if len(out) != 2 || !out[0].Equal(ids[0]) || !out[1].Equal(ids[1]) {
		t.Fatalf("RegisterNodes = %+v, want unchanged copy of %+v", out, ids)
	}
}

func TestRegisterNodesEmpty(t *testing.T) {
	s := newTestStore()
	svc := NewService(s, NewSessionManager(0, nil))

	_, serr := svc.RegisterNodes(context.Background(), nil)
	if serr == nil || serr.Code != status.BadNothingToDo {
		t.Fatalf("RegisterNodes(empty) error = %v, want BadNothingToDo", serr)
	}
}

func TestRegisterNodesTooMany(t *testing.T) {
	s := newTestStore()
	svc := NewService(s, NewSessionManager(0, nil), WithMaxNodesPerRegisterNodes(1))

	_, serr := svc.RegisterNodes(context.Background(), []NodeId{NewNumericNodeId(0, 1), NewNumericNodeId(0, 2)})
	if serr == nil || serr.Code != status.BadTooManyOperations {
		t.Fatalf("RegisterNodes(too many) error = %v, want BadTooManyOperations", serr)
	}
}

func TestUnregisterNodesEmptyReturnsImmediately(t *testing.T) {
	s := newTestStore()
	// maxNodesPerRegisterNodes intentionally left at 0 (unbounded); the
	// bug-fixed behavior must detect the empty slice before ever
	// consulting that limit.
	svc := NewService(s, NewSessionManager(0, nil), WithMaxNodesPerRegisterNodes(0))

	serr := svc.UnregisterNodes(context.Background(), nil)
	if serr == nil || serr.Code != status.BadNothingToDo {
		t.Fatalf("UnregisterNodes(empty) error = %v, want BadNothingToDo", serr)
	}
}

func TestUnregisterNodesTooMany(t *testing.T) {
	s := newTestStore()
	svc := NewService(s, NewSessionManager(0, nil), WithMaxNodesPerRegisterNodes(1))

	serr := svc.UnregisterNodes(context.Background(), []NodeId{NewNumericNodeId(0, 1), NewNumericNodeId(0, 2)})
	if serr == nil || serr.Code != status.BadTooManyOperations {
		t.Fatalf("UnregisterNodes(too many) error = %v, want BadTooManyOperations", serr)
	}
}

func TestUnregisterNodesOk(t *testing.T) {
	s := newTestStore()
	svc := NewService(s, NewSessionManager(0, nil))

	if serr := svc.UnregisterNodes(context.Background(), []NodeId{NewNumericNodeId(0, 1)}); serr != nil {
		t.Fatalf("UnregisterNodes error = %v, want nil", serr)
	}
}
