package addressspace

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/specialistvlad/addressspace/internal/binding"
	"github.com/specialistvlad/addressspace/internal/ctxlog"
	"github.com/specialistvlad/addressspace/internal/enumeration"
	"github.com/specialistvlad/addressspace/internal/ids"
	"github.com/specialistvlad/addressspace/internal/modelerr"
	"github.com/specialistvlad/addressspace/internal/node"
	"github.com/specialistvlad/addressspace/internal/nodeid"
	"github.com/specialistvlad/addressspace/internal/refstore"
	"github.com/specialistvlad/addressspace/internal/variant"
)

// firstNumericID is the first identifier the numeric allocator hands out.
const firstNumericID = 1000

// Namespace creates nodes whose ids and browse names belong to one
// namespace index.
type Namespace struct {
	space *AddressSpace
	index uint16
	uri   string

	guidIDs bool
	next    uint32
}

// NamespaceOption configures a Namespace.
type NamespaceOption func(*Namespace)

// WithGUIDIdentifiers makes the namespace allocate random GUID ids instead
// of sequential numeric ones.
func WithGUIDIdentifiers() NamespaceOption {
	return func(ns *Namespace) {
		ns.guidIDs = true
	}
}

func newNamespace(s *AddressSpace, index uint16, uri string, opts ...NamespaceOption) *Namespace {
	ns := &Namespace{space: s, index: index, uri: uri, next: firstNumericID}
	for _, opt := range opts {
		opt(ns)
	}
	return ns
}

// Index returns the namespace index.
func (ns *Namespace) Index() uint16 { return ns.index }

// URI returns the namespace URI.
func (ns *Namespace) URI() string { return ns.uri }

// AddDataType creates a data type node.
func (ns *Namespace) AddDataType(ctx context.Context, spec DataTypeSpec) (*node.Node, error) {
	return ns.addType(ctx, "AddDataType", typeDecl{
		id:          spec.NodeID,
		browseName:  spec.BrowseName,
		displayName: spec.DisplayName,
		description: spec.Description,
		subtypeOf:   spec.SubtypeOf,
		attrs:       &node.DataTypeAttributes{IsAbstract: spec.IsAbstract},
	})
}

// AddReferenceType creates a reference type node.
func (ns *Namespace) AddReferenceType(ctx context.Context, spec ReferenceTypeSpec) (*node.Node, error) {
	return ns.addType(ctx, "AddReferenceType", typeDecl{
		id:          spec.NodeID,
		browseName:  spec.BrowseName,
		description: spec.Description,
		subtypeOf:   spec.SubtypeOf,
		attrs: &node.ReferenceTypeAttributes{
			IsAbstract:  spec.IsAbstract,
			Symmetric:   spec.Symmetric,
			InverseName: spec.InverseName,
		},
	})
}

// AddObjectType creates an object type node.
func (ns *Namespace) AddObjectType(ctx context.Context, spec ObjectTypeSpec) (*node.Node, error) {
	return ns.addType(ctx, "AddObjectType", typeDecl{
		id:          spec.NodeID,
		browseName:  spec.BrowseName,
		description: spec.Description,
		subtypeOf:   spec.SubtypeOf,
		attrs:       &node.ObjectTypeAttributes{IsAbstract: spec.IsAbstract},
	})
}

// AddVariableType creates a variable type node.
func (ns *Namespace) AddVariableType(ctx context.Context, spec VariableTypeSpec) (*node.Node, error) {
	rank := node.ValueRankAny
	if spec.ValueRank != nil {
		rank = *spec.ValueRank
	}
	dataType := spec.DataType
	if dataType.IsNull() {
		dataType = ids.BaseDataType
	}
	return ns.addType(ctx, "AddVariableType", typeDecl{
		id:          spec.NodeID,
		browseName:  spec.BrowseName,
		description: spec.Description,
		subtypeOf:   spec.SubtypeOf,
		attrs: &node.VariableTypeAttributes{
			IsAbstract: spec.IsAbstract,
			DataType:   dataType,
			ValueRank:  rank,
		},
	})
}

// AddEnumerationType creates an enumerated data type derived from
// Enumeration. The definition is checked before anything is registered:
// repeated names or values fail with modelerr.ErrDuplicateDefinition and
// malformed ones with modelerr.ErrInvalidDefinition. The new type gets an
// EnumStrings property for enumeration.Names and an EnumValues property
// for enumeration.Values.
func (ns *Namespace) AddEnumerationType(ctx context.Context, spec EnumerationTypeSpec) (*node.Node, error) {
	const op = "AddEnumerationType"
	if err := ns.space.checkDisposed(op); err != nil {
		return nil, err
	}
	def, err := enumeration.New(spec.Enumeration)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", op, spec.BrowseName, err)
	}

	s := ns.space
	s.mu.Lock()
	defer s.mu.Unlock()

	dt, err := ns.addTypeLocked(ctx, op, typeDecl{
		id:          spec.NodeID,
		browseName:  spec.BrowseName,
		description: spec.Description,
		subtypeOf:   ids.Enumeration,
		attrs:       &node.DataTypeAttributes{Enumeration: def},
	})
	if err != nil {
		return nil, err
	}

	prop := enumProperty(def, spec.Enumeration)
	prop.PropertyOf = dt.ID()
	if _, err := ns.addVariableLocked(ctx, op, prop); err != nil {
		s.deleteLocked(ctx, dt.ID(), map[nodeid.NodeID]bool{})
		s.refreshReferenceCountLocked(ctx)
		return nil, err
	}
	return dt, nil
}

func enumProperty(def *enumeration.Definition, spec enumeration.Spec) VariableSpec {
	fields := def.Fields()
	raw := make([]any, len(fields))

	if _, ok := spec.(enumeration.Names); ok {
		for i, f := range fields {
			raw[i] = variant.LocalizedText{Text: f.Name}
		}
		value, err := variant.NewArray(variant.LocalizedTextType, raw)
		if err != nil {
			panic(err)
		}
		return VariableSpec{
			BrowseName: "EnumStrings",
			DataType:   ids.LocalizedText,
			ValueRank:  Rank(node.ValueRankOneDimension),
			Value:      value,
		}
	}

	for i, f := range fields {
		raw[i] = variant.EnumValueType{
			Value:       f.Value,
			DisplayName: variant.LocalizedText{Text: f.Name},
			Description: variant.LocalizedText{Text: f.Description},
		}
	}
	value, err := variant.NewArray(variant.ExtensionObject, raw)
	if err != nil {
		panic(err)
	}
	return VariableSpec{
		BrowseName: "EnumValues",
		DataType:   ids.EnumValueType,
		ValueRank:  Rank(node.ValueRankOneDimension),
		Value:      value,
	}
}

// AddObject creates an object instance. It is organized by or a component
// of its parent and typed by TypeDefinition, BaseObjectType by default.
func (ns *Namespace) AddObject(ctx context.Context, spec ObjectSpec) (*node.Node, error) {
	if spec.TypeDefinition.IsNull() {
		spec.TypeDefinition = ids.BaseObjectType
	}
	return ns.addObject(ctx, "AddObject", spec)
}

// AddFolder creates an object of FolderType.
func (ns *Namespace) AddFolder(ctx context.Context, spec ObjectSpec) (*node.Node, error) {
	if spec.TypeDefinition.IsNull() {
		spec.TypeDefinition = ids.FolderType
	}
	return ns.addObject(ctx, "AddFolder", spec)
}

func (ns *Namespace) addObject(ctx context.Context, op string, spec ObjectSpec) (*node.Node, error) {
	s := ns.space
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkDisposed(op); err != nil {
		return nil, err
	}

	parent, err := parentOf(op,
		parentRef{refType: ids.HasComponent, id: spec.ComponentOf},
		parentRef{refType: ids.Organizes, id: spec.OrganizedBy},
	)
	if err != nil {
		return nil, err
	}
	id, err := ns.allocateLocked(ctx, op, spec.NodeID)
	if err != nil {
		return nil, err
	}
	n, err := ns.newNode(op, id, spec.BrowseName, spec.DisplayName, spec.Description, &node.ObjectAttributes{EventNotifier: spec.EventNotifier})
	if err != nil {
		return nil, err
	}

	edges := []refstore.Edge{{SourceID: id, ReferenceTypeID: ids.HasTypeDefinition, TargetID: spec.TypeDefinition}}
	if parent != nil {
		edges = append([]refstore.Edge{{SourceID: parent.id, ReferenceTypeID: parent.refType, TargetID: id}}, edges...)
	}
	if err := ns.insertLocked(ctx, n, edges...); err != nil {
		return nil, err
	}
	return n, nil
}

// AddVariable creates a variable and its value binding. The parent is
// linked with HasProperty, HasComponent or Organizes depending on which
// field of spec is set. An unresolved parent or data type fails with
// modelerr.ErrReferenceIntegrity. A non-null spec.Value is stored with
// SetValueFromSource; if it is rejected no node is registered.
func (ns *Namespace) AddVariable(ctx context.Context, spec VariableSpec) (*Variable, error) {
	s := ns.space
	s.mu.Lock()
	defer s.mu.Unlock()
	return ns.addVariableLocked(ctx, "AddVariable", spec)
}

func (ns *Namespace) addVariableLocked(ctx context.Context, op string, spec VariableSpec) (*Variable, error) {
	s := ns.space
	if err := s.checkDisposed(op); err != nil {
		return nil, err
	}

	parent, err := parentOf(op,
		parentRef{refType: ids.HasProperty, id: spec.PropertyOf},
		parentRef{refType: ids.HasComponent, id: spec.ComponentOf},
		parentRef{refType: ids.Organizes, id: spec.OrganizedBy},
	)
	if err != nil {
		return nil, err
	}
	if dt, ok := s.g.Node(ctx, spec.DataType); !ok || dt.Class() != node.ClassDataType {
		return nil, modelerr.New(op, modelerr.ErrReferenceIntegrity, "data type %s of %q does not exist", spec.DataType, spec.BrowseName)
	}

	typeDef := spec.TypeDefinition
	if typeDef.IsNull() {
		typeDef = ids.BaseDataVariableType
		if !spec.PropertyOf.IsNull() {
			typeDef = ids.PropertyType
		}
	}
	rank := node.ValueRankScalar
	if spec.ValueRank != nil {
		rank = *spec.ValueRank
	}
	access := spec.AccessLevel
	if access == 0 {
		access = node.AccessLevelCurrentRead | node.AccessLevelCurrentWrite
	}

	id, err := ns.allocateLocked(ctx, op, spec.NodeID)
	if err != nil {
		return nil, err
	}
	n, err := ns.newNode(op, id, spec.BrowseName, spec.DisplayName, spec.Description, &node.VariableAttributes{
		DataType:    spec.DataType,
		ValueRank:   rank,
		AccessLevel: access,
	})
	if err != nil {
		return nil, err
	}

	edges := []refstore.Edge{{SourceID: id, ReferenceTypeID: ids.HasTypeDefinition, TargetID: typeDef}}
	if parent != nil {
		edges = append([]refstore.Edge{{SourceID: parent.id, ReferenceTypeID: parent.refType, TargetID: id}}, edges...)
	}
	if err := ns.insertLocked(ctx, n, edges...); err != nil {
		return nil, err
	}

	b := binding.New(n, s.types,
		binding.WithDisposedFlag(s.disposed),
		binding.WithObserver(s.metrics),
		binding.WithLogger(s.logger),
		binding.WithClock(s.now),
	)
	if !spec.Value.IsNull() {
		if err := b.SetValueFromSource(spec.Value); err != nil {
			s.deleteLocked(ctx, id, map[nodeid.NodeID]bool{})
			s.refreshReferenceCountLocked(ctx)
			return nil, err
		}
	}
	s.bindings[id] = b
	if id == ids.ServerNamespaceArray && spec.Value.IsNull() {
		s.publishNamespaceArrayLocked()
	}
	return &Variable{Binding: b}, nil
}

type typeDecl struct {
	id          nodeid.NodeID
	browseName  string
	displayName string
	description string
	subtypeOf   nodeid.NodeID
	attrs       node.Attributes
}

func (ns *Namespace) addType(ctx context.Context, op string, d typeDecl) (*node.Node, error) {
	s := ns.space
	s.mu.Lock()
	defer s.mu.Unlock()
	return ns.addTypeLocked(ctx, op, d)
}

func (ns *Namespace) addTypeLocked(ctx context.Context, op string, d typeDecl) (*node.Node, error) {
	if err := ns.space.checkDisposed(op); err != nil {
		return nil, err
	}
	id, err := ns.allocateLocked(ctx, op, d.id)
	if err != nil {
		return nil, err
	}
	n, err := ns.newNode(op, id, d.browseName, d.displayName, d.description, d.attrs)
	if err != nil {
		return nil, err
	}

	var edges []refstore.Edge
	if !d.subtypeOf.IsNull() {
		edges = append(edges, refstore.Edge{SourceID: d.subtypeOf, ReferenceTypeID: ids.HasSubtype, TargetID: id})
	}
	if err := ns.insertLocked(ctx, n, edges...); err != nil {
		return nil, err
	}
	return n, nil
}

// insertLocked adds n with its initial references and updates metrics.
func (ns *Namespace) insertLocked(ctx context.Context, n *node.Node, edges ...refstore.Edge) error {
	s := ns.space
	if err := s.g.AddNodeWithReferences(ctx, n, edges...); err != nil {
		return err
	}
	s.metrics.NodeAdded(n.Class())
	s.refreshReferenceCountLocked(ctx)
	return nil
}

func (ns *Namespace) newNode(op string, id nodeid.NodeID, browseName, displayName, description string, attrs node.Attributes) (*node.Node, error) {
	if browseName == "" {
		return nil, modelerr.New(op, modelerr.ErrInvalidDefinition, "browse name of %s is empty", id)
	}
	n := node.New(id, nodeid.NewQualifiedName(ns.index, browseName), attrs)
	if displayName != "" {
		n.DisplayName = variant.LocalizedText{Text: displayName}
	}
	if description != "" {
		n.Description = variant.LocalizedText{Text: description}
	}
	return n, nil
}

// allocateLocked returns explicit when it is free, or a fresh id.
func (ns *Namespace) allocateLocked(ctx context.Context, op string, explicit nodeid.NodeID) (nodeid.NodeID, error) {
	g := ns.space.g
	if !explicit.IsNull() {
		if explicit.Namespace() != ns.index {
			return nodeid.NodeID{}, modelerr.New(op, modelerr.ErrInvalidDefinition, "node id %s does not belong to namespace %d", explicit, ns.index)
		}
		if _, taken := g.Node(ctx, explicit); taken {
			return nodeid.NodeID{}, modelerr.New(op, modelerr.ErrDuplicateDefinition, "node id %s is already in use", explicit)
		}
		return explicit, nil
	}

	if ns.guidIDs {
		id := nodeid.NewGUID(ns.index, uuid.New())
		if _, taken := g.Node(ctx, id); taken {
			panic(fmt.Sprintf("addressspace: allocated GUID %s is already in use", id))
		}
		return id, nil
	}
	for {
		id := nodeid.NewNumeric(ns.index, ns.next)
		ns.next++
		if _, taken := g.Node(ctx, id); !taken {
			return id, nil
		}
		ctxlog.FromContext(ctx).Debug("Skipping explicitly assigned id.", "node_id", id.String())
	}
}

type parentRef struct {
	refType nodeid.NodeID
	id      nodeid.NodeID
}

// parentOf returns the single parent relation that is set, if any.
func parentOf(op string, candidates ...parentRef) (*parentRef, error) {
	var found *parentRef
	for i := range candidates {
		if candidates[i].id.IsNull() {
			continue
		}
		if found != nil {
			return nil, modelerr.New(op, modelerr.ErrInvalidDefinition, "more than one parent relation given")
		}
		found = &candidates[i]
	}
	return found, nil
}
