package builder

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/addressspace/internal/addressspace"
	"github.com/specialistvlad/addressspace/internal/config"
	"github.com/specialistvlad/addressspace/internal/ctxlog"
	"github.com/specialistvlad/addressspace/internal/enumeration"
	"github.com/specialistvlad/addressspace/internal/modelerr"
	"github.com/specialistvlad/addressspace/internal/node"
	"github.com/specialistvlad/addressspace/internal/nodeid"
	"github.com/specialistvlad/addressspace/internal/variant"
	"github.com/zclconf/go-cty/cty"
)

// refs holds the resolved references of one declaration.
type refs struct {
	id, subtypeOf, componentOf, organizedBy, propertyOf, typeDefinition, dataType nodeid.NodeID
}

func (r *resolver) resolveAll(decl *config.Node) (refs, error) {
	var out refs
	var err error
	if out.id, err = r.explicitID(decl); err != nil {
		return out, err
	}
	targets := []struct {
		ref string
		dst *nodeid.NodeID
	}{
		{decl.SubtypeOf, &out.subtypeOf},
		{decl.ComponentOf, &out.componentOf},
		{decl.OrganizedBy, &out.organizedBy},
		{decl.PropertyOf, &out.propertyOf},
		{decl.TypeDefinition, &out.typeDefinition},
		{decl.DataType, &out.dataType},
	}
	for _, t := range targets {
		if *t.dst, err = r.resolve(t.ref); err != nil {
			return out, err
		}
	}
	return out, nil
}

// apply creates the node for decl and returns its id.
func (r *resolver) apply(ctx context.Context, decl *config.Node) (nodeid.NodeID, error) {
	logger := ctxlog.FromContext(ctx).With("declaration", decl.Name, "kind", string(decl.Kind))
	ns, err := r.namespace(decl)
	if err != nil {
		return nodeid.NodeID{}, err
	}
	rf, err := r.resolveAll(decl)
	if err != nil {
		return nodeid.NodeID{}, err
	}

	var n *node.Node
	switch decl.Kind {
	case config.KindDataType:
		n, err = ns.AddDataType(ctx, addressspace.DataTypeSpec{
			NodeID:      rf.id,
			BrowseName:  decl.EffectiveBrowseName(),
			DisplayName: decl.DisplayName,
			Description: decl.Description,
			SubtypeOf:   rf.subtypeOf,
			IsAbstract:  decl.IsAbstract,
		})
	case config.KindEnumeration:
		var spec enumeration.Spec
		if spec, err = enumSpec(decl); err != nil {
			return nodeid.NodeID{}, err
		}
		n, err = ns.AddEnumerationType(ctx, addressspace.EnumerationTypeSpec{
			NodeID:      rf.id,
			BrowseName:  decl.EffectiveBrowseName(),
			Description: decl.Description,
			Enumeration: spec,
		})
	case config.KindReferenceType:
		n, err = ns.AddReferenceType(ctx, addressspace.ReferenceTypeSpec{
			NodeID:      rf.id,
			BrowseName:  decl.EffectiveBrowseName(),
			Description: decl.Description,
			SubtypeOf:   rf.subtypeOf,
			IsAbstract:  decl.IsAbstract,
			Symmetric:   decl.Symmetric,
			InverseName: decl.InverseName,
		})
	case config.KindObjectType:
		n, err = ns.AddObjectType(ctx, addressspace.ObjectTypeSpec{
			NodeID:      rf.id,
			BrowseName:  decl.EffectiveBrowseName(),
			Description: decl.Description,
			SubtypeOf:   rf.subtypeOf,
			IsAbstract:  decl.IsAbstract,
		})
	case config.KindVariableType:
		n, err = ns.AddVariableType(ctx, addressspace.VariableTypeSpec{
			NodeID:      rf.id,
			BrowseName:  decl.EffectiveBrowseName(),
			Description: decl.Description,
			SubtypeOf:   rf.subtypeOf,
			IsAbstract:  decl.IsAbstract,
			DataType:    rf.dataType,
			ValueRank:   decl.ValueRank,
		})
	case config.KindObject, config.KindFolder:
		spec := addressspace.ObjectSpec{
			NodeID:         rf.id,
			BrowseName:     decl.EffectiveBrowseName(),
			DisplayName:    decl.DisplayName,
			Description:    decl.Description,
			ComponentOf:    rf.componentOf,
			OrganizedBy:    rf.organizedBy,
			TypeDefinition: rf.typeDefinition,
		}
		if decl.Kind == config.KindFolder {
			n, err = ns.AddFolder(ctx, spec)
		} else {
			n, err = ns.AddObject(ctx, spec)
		}
	case config.KindVariable:
		var v *addressspace.Variable
		if v, err = r.applyVariable(ctx, ns, decl, rf); err == nil {
			n = v.Node()
		}
	default:
		panic(fmt.Sprintf("builder: unhandled kind %q", decl.Kind))
	}
	if err != nil {
		return nodeid.NodeID{}, err
	}

	logger.Debug("Build: Node created.", "node_id", n.ID().String())
	return n.ID(), nil
}

func (r *resolver) applyVariable(ctx context.Context, ns *addressspace.Namespace, decl *config.Node, rf refs) (*addressspace.Variable, error) {
	spec := addressspace.VariableSpec{
		NodeID:         rf.id,
		BrowseName:     decl.EffectiveBrowseName(),
		DisplayName:    decl.DisplayName,
		Description:    decl.Description,
		PropertyOf:     rf.propertyOf,
		ComponentOf:    rf.componentOf,
		OrganizedBy:    rf.organizedBy,
		DataType:       rf.dataType,
		ValueRank:      decl.ValueRank,
		TypeDefinition: rf.typeDefinition,
	}

	types := r.space.TypeSystem()
	enumValue := decl.HasValue() && decl.ValueType == "" && types.IsEnumeration(ctx, rf.dataType)
	if decl.HasValue() && !enumValue {
		value, err := r.variantOf(ctx, decl, rf.dataType)
		if err != nil {
			return nil, err
		}
		spec.Value = value
	}

	v, err := ns.AddVariable(ctx, spec)
	if err != nil {
		return nil, err
	}
	if enumValue {
		if _, err := v.WriteEnumValue(decl.Value); err != nil {
			return nil, r.rollback(ctx, v.ID(), err)
		}
	}
	return v, nil
}

// rollback removes a node created for a declaration that failed afterwards.
// A failed removal is joined to cause.
func (r *resolver) rollback(ctx context.Context, id nodeid.NodeID, cause error) error {
	if err := r.space.DeleteNode(ctx, id); err != nil {
		ctxlog.FromContext(ctx).Error("Failed to remove partially built node.", "node_id", id.String(), "error", err)
		return errors.Join(cause, fmt.Errorf("removing %s: %w", id, err))
	}
	return cause
}

// variantOf converts the declared value using the built-in type of
// dataType, or ValueType when given. Abstract data types infer the tag from
// the value itself.
func (r *resolver) variantOf(ctx context.Context, decl *config.Node, dataType nodeid.NodeID) (variant.Variant, error) {
	var t variant.Type
	if decl.ValueType != "" {
		parsed, err := variant.ParseType(decl.ValueType)
		if err != nil {
			return variant.Variant{}, modelerr.New("Build", modelerr.ErrInvalidDefinition, "%v", err)
		}
		t = parsed
	} else {
		bt, err := r.space.TypeSystem().BuiltInType(ctx, dataType)
		if err != nil {
			return variant.Variant{}, modelerr.New("Build", modelerr.ErrReferenceIntegrity, "data type %s: %v", dataType, err)
		}
		t = bt
		if t == variant.VariantType {
			t = inferType(decl.Value)
		}
	}

	v, err := variant.FromCty(t, decl.Value)
	if err != nil {
		return variant.Variant{}, modelerr.New("Build", modelerr.ErrTypeMismatch, "value of %s: %v", decl.Name, err)
	}
	return v, nil
}

// inferType picks a tag for a value declared on an abstract data type.
func inferType(val cty.Value) variant.Type {
	ty := val.Type()
	if ty.IsListType() || ty.IsSetType() {
		ty = ty.ElementType()
	}
	if ty.IsTupleType() && len(ty.TupleElementTypes()) > 0 {
		ty = ty.TupleElementTypes()[0]
	}
	switch {
	case ty == cty.Bool:
		return variant.Boolean
	case ty == cty.Number:
		return variant.Double
	}
	return variant.String
}

// enumSpec builds the tagged enumeration spec from declared fields. Either
// every field has a value or none has.
func enumSpec(decl *config.Node) (enumeration.Spec, error) {
	explicit := 0
	for _, f := range decl.Fields {
		if f.Value != nil {
			explicit++
		}
	}
	switch explicit {
	case 0:
		names := make(enumeration.Names, len(decl.Fields))
		for i, f := range decl.Fields {
			names[i] = f.Name
		}
		return names, nil
	case len(decl.Fields):
		values := make(enumeration.Values, len(decl.Fields))
		for i, f := range decl.Fields {
			values[i] = enumeration.NamedValue{DisplayName: f.Name, Value: *f.Value, Description: f.Description}
		}
		return values, nil
	}
	return nil, modelerr.New("Build", modelerr.ErrInvalidDefinition, "%s: either every field or no field must have a value", decl)
}

func (r *resolver) applyReference(ctx context.Context, ref *config.Reference) error {
	var ends [3]nodeid.NodeID
	for i, s := range []string{ref.Source, ref.Type, ref.Target} {
		id, err := r.resolve(s)
		if err != nil {
			return fmt.Errorf("reference at %s: %w", ref.Origin, err)
		}
		ends[i] = id
	}
	if err := r.space.AddReference(ctx, ends[0], ends[1], ends[2]); err != nil {
		return fmt.Errorf("reference at %s: %w", ref.Origin, err)
	}
	return nil
}
