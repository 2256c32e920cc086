package addrspace

import (
	"context"
	"testing"

	"addrspaced/internal/addrspace/status"
)

func newPathTestStore() (*testStore, NodeId, NodeId, NodeId) {
	root := NewNumericNodeId(0, 1)
	child := NewNumericNodeId(0, 2)
	external := NewNumericNodeId(0, 3)
	organizes := NewNumericNodeId(0, 35)

	s := newTestStore()
	s.put(Node{
		NodeId:     root,
		NodeClass:  NodeClassObject,
		BrowseName: QualifiedName{Name: "Root"},
		References: []ReferenceKind{
			{ReferenceTypeId: organizes, Targets: []ExpandedNodeId{
				LocalId(child),
				{NodeId: external, ServerIndex: 1, NamespaceURI: "urn:other"},
			}},
		},
	})
	s.put(Node{
		NodeId:     child,
		NodeClass:  NodeClassObject,
		BrowseName: QualifiedName{Name: "Child"},
	})
	return s, root, child, organizes
}

func TestTranslateResolvesLocalTarget(t *testing.T) {
	s, root, child, organizes := newPathTestStore()
	svc := NewService(s, NewSessionManager(0, nil))

	path := RelativePath{Elements: []RelativePathElement{
		{ReferenceTypeId: organizes, TargetName: QualifiedName{Name: "Child"}},
	}}
	result := svc.TranslateOne(context.Background(), root, path)

	if result.StatusCode != status.Good {
		t.Fatalf("StatusCode = %s, want Good", result.StatusCode)
	}
	// The fixture's root also references an external-server node, which
	// is always kept as a suspended candidate; locally resolved targets
	// come first.
	if len(result.Targets) != 2 {
		t.Fatalf("Targets = %+v, want the local child plus the suspended external target", result.Targets)
	}
	if !result.Targets[0].TargetId.NodeId.Equal(child) {
		t.Fatalf("resolved target = %s, want %s", result.Targets[0].TargetId.NodeId.String_(), child.String_())
	}
	if result.Targets[0].RemainingPathIndex != NoRemainingPath {
		t.Fatalf("RemainingPathIndex = %d, want NoRemainingPath", result.Targets[0].RemainingPathIndex)
	}
}

func TestTranslateNoMatch(t *testing.T) {
	root := NewNumericNodeId(0, 1)
	child := NewNumericNodeId(0, 2)
	organizes := NewNumericNodeId(0, 35)

	// No external reference here: every target is locally resolvable, so
	// a name that matches nothing should yield a true BadNoMatch instead
	// of an external-server suspension masking it.
	s := newTestStore()
	s.put(Node{
		NodeId:     root,
		NodeClass:  NodeClassObject,
		References: []ReferenceKind{{ReferenceTypeId: organizes, Targets: []ExpandedNodeId{LocalId(child)}}},
	})
	s.put(Node{NodeId: child, NodeClass: NodeClassObject, BrowseName: QualifiedName{Name: "Child"}})

	svc := NewService(s, NewSessionManager(0, nil))
	path := RelativePath{Elements: []RelativePathElement{
		{ReferenceTypeId: organizes, TargetName: QualifiedName{Name: "DoesNotExist"}},
	}}
	result := svc.TranslateOne(context.Background(), root, path)

	if result.StatusCode != status.BadNoMatch {
		t.Fatalf("StatusCode = %s, want BadNoMatch", result.StatusCode)
	}
	if len(result.Targets) != 0 {
		t.Fatalf("Targets = %+v, want empty", result.Targets)
	}
}

func TestTranslateSuspendsAtExternalServer(t *testing.T) {
	s, root, _, organizes := newPathTestStore()
	svc := NewService(s, NewSessionManager(0, nil))

	path := RelativePath{Elements: []RelativePathElement{
		{ReferenceTypeId: organizes, TargetName: QualifiedName{Name: "AnythingExternal"}},
	}}
	result := svc.TranslateOne(context.Background(), root, path)

	foundSuspended := false
	for _, tgt := range result.Targets {
		if tgt.RemainingPathIndex != NoRemainingPath {
			foundSuspended = true
		}
	}
	if !foundSuspended {
		t.Fatalf("expected at least one suspended target pointing at the external server, got %+v", result.Targets)
	}
}

func TestTranslateEmptyInput(t *testing.T) {
	s, _, _, _ := newPathTestStore()
	svc := NewService(s, NewSessionManager(0, nil))

	results := svc.TranslateBrowsePathsToNodeIds(context.Background(), nil, nil)
	if len(results) != 1 || results[0].StatusCode != status.BadNothingToDo {
		t.Fatalf("TranslateBrowsePathsToNodeIds(empty) = %+v, want single BadNothingToDo", results)
	}
}

func TestTranslateEmptyTargetNameRejectedWithoutTouchingStore(t *testing.T) {
	s, root, _, organizes := newPathTestStore()
	svc := NewService(s, NewSessionManager(0, nil))

	path := RelativePath{Elements: []RelativePathElement{
		{ReferenceTypeId: organizes, TargetName: QualifiedName{Name: ""}},
	}}
	result := svc.TranslateOne(context.Background(), root, path)

	if result.StatusCode != status.BadBrowseNameInvalid {
		t.Fatalf("StatusCode = %s, want BadBrowseNameInvalid", result.StatusCode)
	}
	if got := s.gets; got != 0 {
		t.Fatalf("store Get calls = %d, want 0 (store must not be touched)", got)
	}
}

func TestTranslateUnknownStartingNode(t *testing.T) {
	s, _, _, organizes := newPathTestStore()
	svc := NewService(s, NewSessionManager(0, nil))

	path := RelativePath{Elements: []RelativePathElement{{ReferenceTypeId: organizes, TargetName: QualifiedName{Name: "Child"}}}}
	result := svc.TranslateOne(context.Background(), NewNumericNodeId(0, 9999), path)
	if result.StatusCode != status.BadNodeIdUnknown {
		t.Fatalf("StatusCode = %s, want BadNodeIdUnknown", result.StatusCode)
	}
}
