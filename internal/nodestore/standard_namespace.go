package nodestore

import (
	"addrspaced/internal/addrspace"
	"addrspaced/internal/logger"
)

// Well-known core-namespace node ids used to seed a minimal, realistic
// address space sufficient to exercise spec.md's scenarios S1-S6.
var (
	idRootFolder    = addrspace.NewNumericNodeId(0, 84)
	idObjectsFolder = addrspace.NewNumericNodeId(0, 85)
	idTypesFolder   = addrspace.NewNumericNodeId(0, 86)
	idViewsFolder   = addrspace.NewNumericNodeId(0, 87)
	idServer        = addrspace.NewNumericNodeId(0, 2253)

	idHasSubtype            = addrspace.NewNumericNodeId(0, 45)
	idHierarchicalReferences = addrspace.NewNumericNodeId(0, 33)
	idOrganizes             = addrspace.NewNumericNodeId(0, 35)
	idHasComponent          = addrspace.NewNumericNodeId(0, 47)
	idHasTypeDefinition     = addrspace.NewNumericNodeId(0, 40)

	idBaseObjectType = addrspace.NewNumericNodeId(0, 58)
	idFolderType     = addrspace.NewNumericNodeId(0, 61)
	idServerType     = addrspace.NewNumericNodeId(0, 2004)
)

func local(id addrspace.NodeId) addrspace.ExpandedNodeId { return addrspace.LocalId(id) }

func forward(refType addrspace.NodeId, targets ...addrspace.NodeId) addrspace.ReferenceKind {
	k := addrspace.ReferenceKind{ReferenceTypeId: refType, IsInverse: false}
	for _, t := range targets {
		k.Targets = append(k.Targets, local(t))
	}
	return k
}

func inverse(refType addrspace.NodeId, targets ...addrspace.NodeId) addrspace.ReferenceKind {
	k := addrspace.ReferenceKind{ReferenceTypeId: refType, IsInverse: true}
	for _, t := range targets {
		k.Targets = append(k.Targets, local(t))
	}
	return k
}

func qn(name string) addrspace.QualifiedName { return addrspace.QualifiedName{NamespaceIndex: 0, Name: name} }

func text(s string) addrspace.LocalizedText { return addrspace.LocalizedText{Locale: "en", Text: s} }

// NewStandardNamespace builds a Store seeded with a small, realistic
// slice of the OPC UA core namespace: the Root/Objects/Types/Views
// folder hierarchy, the Server object, and the HasSubtype chain
// RootFolder's FolderType sits in, wired exactly as spec.md's scenarios
// S1-S6 require (a browsable folder tree, a type hierarchy to exercise
// IncludeSubtypes, and at least one node with no outgoing references to
// exercise BadNothingToDo-adjacent empty-result paths).
func NewStandardNamespace(lgr logger.Logger) *Store {
	s := New(lgr)

	s.Put(addrspace.Node{
		NodeId:      idRootFolder,
		NodeClass:   addrspace.NodeClassObject,
		BrowseName:  qn("Root"),
		DisplayName: text("Root"),
		TypeDefinition: local(idFolderType),
		References: []addrspace.ReferenceKind{
			forward(idOrganizes, idObjectsFolder, idTypesFolder, idViewsFolder),
			forward(idHasTypeDefinition, idFolderType),
		},
	})

	s.Put(addrspace.Node{
		NodeId:      idObjectsFolder,
		NodeClass:   addrspace.NodeClassObject,
		BrowseName:  qn("Objects"),
		DisplayName: text("Objects"),
		TypeDefinition: local(idFolderType),
		References: []addrspace.ReferenceKind{
			inverse(idOrganizes, idRootFolder),
			forward(idOrganizes, idServer),
			forward(idHasTypeDefinition, idFolderType),
		},
	})

	s.Put(addrspace.Node{
		NodeId:      idTypesFolder,
		NodeClass:   addrspace.NodeClassObject,
		BrowseName:  qn("Types"),
		DisplayName: text("Types"),
		TypeDefinition: local(idFolderType),
		References: []addrspace.ReferenceKind{
			inverse(idOrganizes, idRootFolder),
			forward(idHasTypeDefinition, idFolderType),
		},
	})

	s.Put(addrspace.Node{
		NodeId:      idViewsFolder,
		NodeClass:   addrspace.NodeClassObject,
		BrowseName:  qn("Views"),
		DisplayName: text("Views"),
		TypeDefinition: local(idFolderType),
		References: []addrspace.ReferenceKind{
			inverse(idOrganizes, idRootFolder),
			forward(idHasTypeDefinition, idFolderType),
		},
		// Deliberately no forward Organizes children: exercises the
		// "browse a leaf, get an empty-but-non-nil result" path.
	})

	s.Put(addrspace.Node{
		NodeId:      idServer,
		NodeClass:   addrspace.NodeClassObject,
		BrowseName:  qn("Server"),
		DisplayName: text("Server"),
		TypeDefinition: local(idServerType),
		References: []addrspace.ReferenceKind{
			inverse(idOrganizes, idObjectsFolder),
			forward(idHasTypeDefinition, idServerType),
		},
	})

	// Reference-type and object-type hierarchy, enough to exercise
	// IncludeSubtypes: HierarchicalReferences is the supertype of
	// Organizes and HasComponent; FolderType and ServerType both derive
	// from BaseObjectType.
	s.Put(addrspace.Node{
		NodeId:      idHierarchicalReferences,
		NodeClass:   addrspace.NodeClassReferenceType,
		BrowseName:  qn("HierarchicalReferences"),
		DisplayName: text("HierarchicalReferences"),
		References: []addrspace.ReferenceKind{
			forward(idHasSubtype, idOrganizes, idHasComponent),
		},
	})
	s.Put(addrspace.Node{
		NodeId:      idOrganizes,
		NodeClass:   addrspace.NodeClassReferenceType,
		BrowseName:  qn("Organizes"),
		DisplayName: text("Organizes"),
		References: []addrspace.ReferenceKind{
			inverse(idHasSubtype, idHierarchicalReferences),
		},
	})
	s.Put(addrspace.Node{
		NodeId:      idHasComponent,
		NodeClass:   addrspace.NodeClassReferenceType,
		BrowseName:  qn("HasComponent"),
		DisplayName: text("HasComponent"),
		References: []addrspace.ReferenceKind{
			inverse(idHasSubtype, idHierarchicalReferences),
		},
	})
	s.Put(addrspace.Node{
		NodeId:      idHasSubtype,
		NodeClass:   addrspace.NodeClassReferenceType,
		BrowseName:  qn("HasSubtype"),
		DisplayName: text("HasSubtype"),
	})
	s.Put(addrspace.Node{
		NodeId:      idHasTypeDefinition,
		NodeClass:   addrspace.NodeClassReferenceType,
		BrowseName:  qn("HasTypeDefinition"),
		DisplayName: text("HasTypeDefinition"),
	})

	s.Put(addrspace.Node{
		NodeId:      idBaseObjectType,
		NodeClass:   addrspace.NodeClassObjectType,
		BrowseName:  qn("BaseObjectType"),
		DisplayName: text("BaseObjectType"),
		References: []addrspace.ReferenceKind{
			forward(idHasSubtype, idFolderType, idServerType),
		},
	})
	s.Put(addrspace.Node{
		NodeId:      idFolderType,
		NodeClass:   addrspace.NodeClassObjectType,
		BrowseName:  qn("FolderType"),
		DisplayName: text("FolderType"),
		References: []addrspace.ReferenceKind{
			inverse(idHasSubtype, idBaseObjectType),
		},
	})
	s.Put(addrspace.Node{
		NodeId:      idServerType,
		NodeClass:   addrspace.NodeClassObjectType,
		BrowseName:  qn("ServerType"),
		DisplayName: text("ServerType"),
		References: []addrspace.ReferenceKind{
			inverse(idHasSubtype, idBaseObjectType),
		},
	})

	return s
}

// RootFolder, ObjectsFolder and friends are exported accessors so
// callers (cmd/browsecli, tests) can refer to the seeded well-known ids
// without redeclaring their numeric values.
func RootFolder() addrspace.NodeId    { return idRootFolder }
func ObjectsFolder() addrspace.NodeId { return idObjectsFolder }
func TypesFolder() addrspace.NodeId   { return idTypesFolder }
func ViewsFolder() addrspace.NodeId   { return idViewsFolder }
func ServerObject() addrspace.NodeId  { return idServer }
func OrganizesRef() addrspace.NodeId  { return idOrganizes }
func HasSubtypeRef() addrspace.NodeId { return idHasSubtype }
func HierarchicalReferencesRef() addrspace.NodeId { return idHierarchicalReferences }
