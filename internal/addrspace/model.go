package addrspace

import (
	"fmt"

	"addrspaced/internal/addrspace/status"
)

// NodeId identifies a node within a single server's address space. The
// identifier itself is one of four OPC UA encodings; which one is live
// is indicated by IdType.
type IdType uint8

const (
	IdNumeric IdType = iota
	IdString
	IdGUID
	IdOpaque
)

type NodeId struct {
	NamespaceIndex uint16
	IdType         IdType
	Numeric        uint32
	String         string
	Bytes          []byte // GUID (16 bytes) or opaque payload
}

func NewNumericNodeId(ns uint16, id uint32) NodeId {
	return NodeId{NamespaceIndex: ns, IdType: IdNumeric, Numeric: id}
}

func NewStringNodeId(ns uint16, id string) NodeId {
	return NodeId{NamespaceIndex: ns, IdType: IdString, String: id}
}

func (n NodeId) String_() string {
	switch n.IdType {
	case IdNumeric:
		return fmt.Sprintf("ns=%d;i=%d", n.NamespaceIndex, n.Numeric)
	case IdString:
		return fmt.Sprintf("ns=%d;s=%s", n.NamespaceIndex, n.String)
	case IdGUID:
		return fmt.Sprintf("ns=%d;g=%x", n.NamespaceIndex, n.Bytes)
	default:
		return fmt.Sprintf("ns=%d;b=%x", n.NamespaceIndex, n.Bytes)
	}
}

func (n NodeId) Equal(o NodeId) bool {
	if n.NamespaceIndex != o.NamespaceIndex || n.IdType != o.IdType {
		return false
	}
	switch n.IdType {
	case IdNumeric:
		return n.Numeric == o.Numeric
	case IdString:
		return n.String == o.String
	default:
		if len(n.Bytes) != len(o.Bytes) {
			return false
		}
		for i := range n.Bytes {
			if n.Bytes[i] != o.Bytes[i] {
				return false
			}
		}
		return true
	}
}

// key returns a value suitable for use as a map key, since NodeId itself
// has a []byte field and is therefore not comparable.
func (n NodeId) key() string { return n.IdType.prefix() + n.String_() }

func (t IdType) prefix() string {
	switch t {
	case IdNumeric:
		return "n:"
	case IdString:
		return "s:"
	case IdGUID:
		return "g:"
	default:
		return "o:"
	}
}

// ExpandedNodeId extends NodeId with the optional out-of-server
// indirection fields: a ServerIndex (0 means "this server") and,
// when the target lives in a different server, a NamespaceURI that
// lets the caller resolve NamespaceIndex against a different server's
// namespace table.
type ExpandedNodeId struct {
	NodeId       NodeId
	NamespaceURI string
	ServerIndex  uint32
}

func LocalId(id NodeId) ExpandedNodeId { return ExpandedNodeId{NodeId: id} }

func (e ExpandedNodeId) IsLocal() bool { return e.ServerIndex == 0 }

type NodeClass uint32

const (
	NodeClassUnspecified NodeClass = 0
	NodeClassObject      NodeClass = 1 << 0
	NodeClassVariable    NodeClass = 1 << 1
	NodeClassMethod      NodeClass = 1 << 2
	NodeClassObjectType  NodeClass = 1 << 3
	NodeClassVariableType NodeClass = 1 << 4
	NodeClassReferenceType NodeClass = 1 << 5
	NodeClassDataType    NodeClass = 1 << 6
	NodeClassView        NodeClass = 1 << 7
)

// NodeClassMask is the "all node classes" selector accepted by
// BrowseDescription.NodeClassMask: 0 means "no filtering".
const NodeClassMask NodeClass = 0

type QualifiedName struct {
	NamespaceIndex uint16
	Name           string
}

func (q QualifiedName) Equal(o QualifiedName) bool {
	return q.NamespaceIndex == o.NamespaceIndex && q.Name == o.Name
}

type LocalizedText struct {
	Locale string
	Text   string
}

// BrowseDirection selects which edge orientation a browse or path
// descent considers relative to the starting node.
type BrowseDirection uint8

const (
	BrowseForward BrowseDirection = iota
	BrowseInverse
	BrowseBoth
)

// ReferenceKind groups a node's outgoing (or incoming) references that
// share a (referenceTypeId, isInverse) pair, per spec.md's data model.
type ReferenceKind struct {
	ReferenceTypeId NodeId
	IsInverse       bool
	Targets         []ExpandedNodeId
}

// Node is the minimal shape address-space traversal needs out of a
// stored node: enough to build a ReferenceDescription and to test
// reference-kind membership.
type Node struct {
	NodeId        NodeId
	NodeClass     NodeClass
	BrowseName    QualifiedName
	DisplayName   LocalizedText
	TypeDefinition ExpandedNodeId
	References    []ReferenceKind
}

// ResultMask selects which optional fields a ReferenceDescription
// populates; bits mirror spec.md's BrowseResultMask.
type ResultMask uint32

const (
	ResultMaskReferenceTypeId ResultMask = 1 << 0
	ResultMaskIsForward       ResultMask = 1 << 1
	ResultMaskNodeClass       ResultMask = 1 << 2
	ResultMaskBrowseName      ResultMask = 1 << 3
	ResultMaskDisplayName     ResultMask = 1 << 4
	ResultMaskTypeDefinition  ResultMask = 1 << 5

	ResultMaskAll = ResultMaskReferenceTypeId | ResultMaskIsForward | ResultMaskNodeClass |
		ResultMaskBrowseName | ResultMaskDisplayName | ResultMaskTypeDefinition
)

// BrowseDescription is a single browse request against one starting node.
type BrowseDescription struct {
	NodeId          NodeId
	Direction       BrowseDirection
	ReferenceTypeId NodeId
	IncludeSubtypes bool
	NodeClassMask   NodeClass
	ResultMask      ResultMask
}

// ReferenceDescription is one row of a browse result.
type ReferenceDescription struct {
	ReferenceTypeId NodeId
	IsForward       bool
	NodeId          ExpandedNodeId
	BrowseName      QualifiedName
	DisplayName     LocalizedText
	NodeClass       NodeClass
	TypeDefinition  ExpandedNodeId
}

// RelativePathElement names one hop of a relative path: which reference
// kind to traverse and the target browse name to match.
type RelativePathElement struct {
	ReferenceTypeId NodeId
	IsInverse       bool
	IncludeSubtypes bool
	TargetName      QualifiedName
}

type RelativePath struct {
	Elements []RelativePathElement
}

// BrowsePathTarget is one resolved (or partially resolved) endpoint of a
// translated browse path. RemainingPathIndex is NoRemainingPath when the
// path fully resolved within this server, or the index of the first
// unresolved element when the target continues on another server.
type BrowsePathTarget struct {
	TargetId           ExpandedNodeId
	RemainingPathIndex uint32
}

// NoRemainingPath is the sentinel RemainingPathIndex value meaning "the
// path fully resolved within this server" (spec.md's UINT32_MAX).
const NoRemainingPath uint32 = 0xFFFFFFFF

type BrowsePathResult struct {
	StatusCode status.Code
	Targets    []BrowsePathTarget
}
