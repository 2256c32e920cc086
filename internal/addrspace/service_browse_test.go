package addrspace

import (
	"context"
	"testing"

	"addrspaced/internal/addrspace/status"
)

func newTestNamespace() (*testStore, NodeId, NodeId, NodeId) {
	root := NewNumericNodeId(0, 84)
	objects := NewNumericNodeId(0, 85)
	views := NewNumericNodeId(0, 87)
	organizes := NewNumericNodeId(0, 35)

	s := newTestStore()
	s.put(Node{
		NodeId:     root,
		NodeClass:  NodeClassObject,
		BrowseName: QualifiedName{Name: "Root"},
		References: []ReferenceKind{
			{ReferenceTypeId: organizes, Targets: []ExpandedNodeId{LocalId(objects), LocalId(views)}},
		},
	})
	s.put(Node{
		NodeId:     objects,
		NodeClass:  NodeClassObject,
		BrowseName: QualifiedName{Name: "Objects"},
		References: []ReferenceKind{
			{ReferenceTypeId: organizes, IsInverse: true, Targets: []ExpandedNodeId{LocalId(root)}},
		},
	})
	s.put(Node{
		NodeId:     views,
		NodeClass:  NodeClassObject,
		BrowseName: QualifiedName{Name: "Views"},
	})
	return s, root, objects, views
}

func TestBrowseEmptyDescriptions(t *testing.T) {
	s, _, _, _ := newTestNamespace()
	svc := NewService(s, NewSessionManager(0, nil))
	results := svc.Browse(context.Background(), "sess", ViewDescription{}, 0, nil)
	if len(results) != 1 || results[0].StatusCode != status.BadNothingToDo {
		t.Fatalf("Browse(empty) = %+v, want single BadNothingToDo", results)
	}
}

func TestBrowseTooManyOperations(t *testing.T) {
	s, root, _, _ := newTestNamespace()
	svc := NewService(s, NewSessionManager(0, nil), WithMaxNodesPerBrowse(1))
	descs := []BrowseDescription{
		{NodeId: root, Direction: BrowseForward},
		{NodeId: root, Direction: BrowseForward},
	}
	results := svc.Browse(context.Background(), "sess", ViewDescription{}, 0, descs)
	if len(results) != 1 || results[0].StatusCode != status.BadTooManyOperations {
		t.Fatalf("Browse(too many) = %+v, want single BadTooManyOperations", results)
	}
}

func TestBrowseNonDefaultView(t *testing.T) {
	s, root, _, _ := newTestNamespace()
	svc := NewService(s, NewSessionManager(0, nil))
	view := ViewDescription{ViewId: NewNumericNodeId(0, 12345)}
	results := svc.Browse(context.Background(), "sess", view, 0, []BrowseDescription{{NodeId: root}})
	if results[0].StatusCode != status.BadViewIdUnknown {
		t.Fatalf("StatusCode = %s, want BadViewIdUnknown", results[0].StatusCode)
	}
}

func TestBrowseInvalidDirection(t *testing.T) {
	s, root, _, _ := newTestNamespace()
	svc := NewService(s, NewSessionManager(0, nil))
	results := svc.Browse(context.Background(), "sess", ViewDescription{}, 0,
		[]BrowseDescription{{NodeId: root, Direction: BrowseDirection(99)}})
	if results[0].StatusCode != status.BadBrowseDirectionInvalid {
		t.Fatalf("StatusCode = %s, want BadBrowseDirectionInvalid", results[0].StatusCode)
	}
}

func TestBrowseUnknownNode(t *testing.T) {
	s, _, _, _ := newTestNamespace()
	svc := NewService(s, NewSessionManager(0, nil))
	results := svc.Browse(context.Background(), "sess", ViewDescription{}, 0,
		[]BrowseDescription{{NodeId: NewNumericNodeId(0, 777), Direction: BrowseForward}})
	if results[0].StatusCode != status.BadNodeIdUnknown {
		t.Fatalf("StatusCode = %s, want BadNodeIdUnknown", results[0].StatusCode)
	}
}

func TestBrowseLeafReturnsEmptyNonNil(t *testing.T) {
	s, _, _, views := newTestNamespace()
	svc := NewService(s, NewSessionManager(0, nil))
	results := svc.Browse(context.Background(), "sess", ViewDescription{}, 0,
		[]BrowseDescription{{NodeId: views, Direction: BrowseForward, ResultMask: ResultMaskAll}})
	if results[0].StatusCode != status.Good {
		t.Fatalf("StatusCode = %s, want Good", results[0].StatusCode)
	}
	if results[0].References == nil {
		t.Fatalf("References = nil, want empty-but-non-nil slice")
	}
	if len(results[0].References) != 0 {
		t.Fatalf("References = %v, want empty", results[0].References)
	}
}

func TestBrowsePaginationRoundTrip(t *testing.T) {
	root := NewNumericNodeId(0, 1)
	organizes := NewNumericNodeId(0, 35)

	var children []ExpandedNodeId
	s := newTestStore()
	for i := uint32(0); i < 5; i++ {
		id := NewNumericNodeId(0, 100+i)
		children = append(children, LocalId(id))
		s.put(Node{NodeId: id, NodeClass: NodeClassObject, BrowseName: QualifiedName{Name: "child"}})
	}
	s.put(Node{
		NodeId:     root,
		NodeClass:  NodeClassObject,
		BrowseName: QualifiedName{Name: "root"},
		References: []ReferenceKind{{ReferenceTypeId: organizes, Targets: children}},
	})

	svc := NewService(s, NewSessionManager(0, nil))
	bd := BrowseDescription{NodeId: root, Direction: BrowseForward, ResultMask: ResultMaskAll}

	first := svc.Browse(context.Background(), "sess", ViewDescription{}, 2, []BrowseDescription{bd})[0]
	if first.StatusCode != status.Good {
		t.Fatalf("first page status = %s, want Good", first.StatusCode)
	}
	if len(first.References) != 2 {
		t.Fatalf("first page len = %d, want 2", len(first.References))
	}
	if first.ContinuationPoint == "" {
		t.Fatalf("expected a continuation point on a partial page")
	}

	second := svc.BrowseNext(context.Background(), "sess", false, []string{first.ContinuationPoint})[0]
	if len(second.References) != 2 {
		t.Fatalf("second page len = %d, want 2", len(second.References))
	}
	if second.ContinuationPoint == "" {
		t.Fatalf("expected another continuation point after 4 of 5 references")
	}
	if second.ContinuationPoint != first.ContinuationPoint {
		t.Fatalf("continuation point changed across a partial resume: %q -> %q, want the same id re-emitted", first.ContinuationPoint, second.ContinuationPoint)
	}

	third := svc.BrowseNext(context.Background(), "sess", false, []string{second.ContinuationPoint})[0]
	if len(third.References) != 1 {
		t.Fatalf("third page len = %d, want 1", len(third.References))
	}
	if third.ContinuationPoint != "" {
		t.Fatalf("did not expect a continuation point on the final page")
	}

	if got := s.outstandingBorrows(); got != 0 {
		t.Fatalf("outstanding borrows after full pagination = %d, want 0", got)
	}
}

func TestBrowseNextInvalidContinuationPoint(t *testing.T) {
	s, _, _, _ := newTestNamespace()
	svc := NewService(s, NewSessionManager(0, nil))
	results := svc.BrowseNext(context.Background(), "sess", false, []string{"bogus"})
	if results[0].StatusCode != status.BadContinuationPointInvalid {
		t.Fatalf("StatusCode = %s, want BadContinuationPointInvalid", results[0].StatusCode)
	}
}

func TestBrowseNextRelease(t *testing.T) {
	root := NewNumericNodeId(0, 1)
	organizes := NewNumericNodeId(0, 35)
	s := newTestStore()
	var children []ExpandedNodeId
	for i := uint32(0); i < 3; i++ {
		id := NewNumericNodeId(0, 200+i)
		children = append(children, LocalId(id))
		s.put(Node{NodeId: id, NodeClass: NodeClassObject, BrowseName: QualifiedName{Name: "c"}})
	}
	s.put(Node{NodeId: root, NodeClass: NodeClassObject, References: []ReferenceKind{{ReferenceTypeId: organizes, Targets: children}}})

	sessions := NewSessionManager(0, nil)
	svc := NewService(s, sessions)
	bd := BrowseDescription{NodeId: root, Direction: BrowseForward}
	first := svc.Browse(context.Background(), "sess", ViewDescription{}, 1, []BrowseDescription{bd})[0]
	if first.ContinuationPoint == "" {
		t.Fatalf("expected a continuation point")
	}

	released := svc.BrowseNext(context.Background(), "sess", true, []string{first.ContinuationPoint})[0]
	if released.StatusCode != status.Good {
		t.Fatalf("release status = %s, want Good", released.StatusCode)
	}
	if sessions.Count("sess") != 0 {
		t.Fatalf("Count after release = %d, want 0", sessions.Count("sess"))
	}
}

func TestBrowseNextNoContinuationPoints(t *testing.T) {
	sessions := NewSessionManager(0, nil)
	s, _, _, _ := newTestNamespace()
	svc := NewService(s, sessions)
	results := svc.BrowseNext(context.Background(), "sess", false, nil)
	if results[0].StatusCode != status.BadNothingToDo {
		t.Fatalf("StatusCode = %s, want BadNothingToDo", results[0].StatusCode)
	}
}

func TestBrowseNodeClassMaskFiltersTargets(t *testing.T) {
	root := NewNumericNodeId(0, 1)
	organizes := NewNumericNodeId(0, 35)
	obj := NewNumericNodeId(0, 400)
	v := NewNumericNodeId(0, 401)

	s := newTestStore()
	s.put(Node{NodeId: obj, NodeClass: NodeClassObject, BrowseName: QualifiedName{Name: "o"}})
	s.put(Node{NodeId: v, NodeClass: NodeClassVariable, BrowseName: QualifiedName{Name: "v"}})
	s.put(Node{
		NodeId:    root,
		NodeClass: NodeClassObject,
		References: []ReferenceKind{
			{ReferenceTypeId: organizes, Targets: []ExpandedNodeId{LocalId(obj), LocalId(v)}},
		},
	})

	svc := NewService(s, NewSessionManager(0, nil))
	bd := BrowseDescription{NodeId: root, Direction: BrowseForward, ResultMask: ResultMaskAll, NodeClassMask: NodeClassVariable}
	result := svc.Browse(context.Background(), "sess", ViewDescription{}, 0, []BrowseDescription{bd})[0]

	if result.StatusCode != status.Good {
		t.Fatalf("StatusCode = %s, want Good", result.StatusCode)
	}
	if len(result.References) != 1 {
		t.Fatalf("References = %+v, want exactly the variable target", result.References)
	}
	if !result.References[0].NodeId.NodeId.Equal(v) {
		t.Fatalf("References[0].NodeId = %+v, want the variable node", result.References[0].NodeId)
	}
}

func TestBrowseReferenceTypeIdMustNameAReferenceType(t *testing.T) {
	s, root, objects, _ := newTestNamespace()
	svc := NewService(s, NewSessionManager(0, nil))
	bd := BrowseDescription{NodeId: root, Direction: BrowseForward, ReferenceTypeId: objects}
	results := svc.Browse(context.Background(), "sess", ViewDescription{}, 0, []BrowseDescription{bd})
	if results[0].StatusCode != status.BadReferenceTypeIdInvalid {
		t.Fatalf("StatusCode = %s, want BadReferenceTypeIdInvalid", results[0].StatusCode)
	}
}

func TestSessionManagerCapEnforced(t *testing.T) {
	root := NewNumericNodeId(0, 1)
	organizes := NewNumericNodeId(0, 35)
	s := newTestStore()
	var children []ExpandedNodeId
	for i := uint32(0); i < 4; i++ {
		id := NewNumericNodeId(0, 300+i)
		children = append(children, LocalId(id))
		s.put(Node{NodeId: id, NodeClass: NodeClassObject})
	}
	s.put(Node{NodeId: root, References: []ReferenceKind{{ReferenceTypeId: organizes, Targets: children}}})

	sessions := NewSessionManager(1, nil)
	svc := NewService(s, sessions)
	bd := BrowseDescription{NodeId: root, Direction: BrowseForward}

	first := svc.Browse(context.Background(), "sess", ViewDescription{}, 1, []BrowseDescription{bd})[0]
	if first.ContinuationPoint == "" {
		t.Fatalf("expected a continuation point on the first call")
	}

	second := svc.Browse(context.Background(), "sess", ViewDescription{}, 1, []BrowseDescription{bd})[0]
	if second.StatusCode != status.BadNoContinuationPoints {
		t.Fatalf("StatusCode = %s, want BadNoContinuationPoints once the session cap is reached", second.StatusCode)
	}
}
