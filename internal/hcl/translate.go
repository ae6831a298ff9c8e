// This file contains the logic for translating decoded HCL blocks into the
// format-agnostic nodeset model defined in the config package.

package hcl

import (
	"fmt"

	"github.com/specialistvlad/addressspace/internal/config"
	"github.com/zclconf/go-cty/cty"
)

func translate(root *fileRoot) (*config.Model, error) {
	m := &config.Model{}
	defaultNS := root.DefaultNamespace

	for _, ns := range root.Namespaces {
		m.Namespaces = append(m.Namespaces, &config.Namespace{URI: ns.URI, GUIDIDs: ns.GUIDIDs})
		if defaultNS == "" {
			defaultNS = ns.URI
		}
	}
	namespaceOf := func(explicit string) string {
		if explicit != "" {
			return explicit
		}
		return defaultNS
	}

	typeGroups := []struct {
		kind   config.Kind
		blocks []*typeBlock
	}{
		{config.KindReferenceType, root.ReferenceTypes},
		{config.KindDataType, root.DataTypes},
		{config.KindObjectType, root.ObjectTypes},
		{config.KindVariableType, root.VariableTypes},
	}
	for _, group := range typeGroups {
		for _, b := range group.blocks {
			n, err := translateType(group.kind, b)
			if err != nil {
				return nil, err
			}
			n.Namespace = namespaceOf(b.Namespace)
			m.Nodes = append(m.Nodes, n)
		}
	}

	for _, b := range root.Enumerations {
		if err := checkRemain(b.Body); err != nil {
			return nil, err
		}
		n := &config.Node{
			Kind:        config.KindEnumeration,
			Name:        b.Name,
			Namespace:   namespaceOf(b.Namespace),
			NodeID:      b.NodeID,
			BrowseName:  b.BrowseName,
			DisplayName: b.DisplayName,
			Description: b.Description,
			Source:      sourceOf(b.Body),
		}
		for _, f := range b.Fields {
			n.Fields = append(n.Fields, &config.EnumField{Name: f.Name, Value: f.Value, Description: f.Description})
		}
		m.Nodes = append(m.Nodes, n)
	}

	instanceGroups := []struct {
		kind   config.Kind
		blocks []*instanceBlock
	}{
		{config.KindFolder, root.Folders},
		{config.KindObject, root.Objects},
		{config.KindVariable, root.Variables},
	}
	for _, group := range instanceGroups {
		for _, b := range group.blocks {
			n, err := translateInstance(group.kind, b)
			if err != nil {
				return nil, err
			}
			n.Namespace = namespaceOf(b.Namespace)
			m.Nodes = append(m.Nodes, n)
		}
	}

	for _, b := range root.References {
		if err := checkRemain(b.Body); err != nil {
			return nil, err
		}
		m.References = append(m.References, &config.Reference{
			Source: b.Source,
			Type:   b.Type,
			Target: b.Target,
			Origin: sourceOf(b.Body),
		})
	}
	return m, nil
}

func translateType(kind config.Kind, b *typeBlock) (*config.Node, error) {
	if err := checkRemain(b.Body); err != nil {
		return nil, err
	}
	n := &config.Node{
		Kind:        kind,
		Name:        b.Name,
		NodeID:      b.NodeID,
		BrowseName:  b.BrowseName,
		DisplayName: b.DisplayName,
		Description: b.Description,
		SubtypeOf:   b.SubtypeOf,
		IsAbstract:  b.IsAbstract,
		Symmetric:   b.Symmetric,
		InverseName: b.InverseName,
		DataType:    b.DataType,
		ValueRank:   b.ValueRank,
		Source:      sourceOf(b.Body),
	}
	if kind != config.KindReferenceType && (b.Symmetric || b.InverseName != "") {
		return nil, fmt.Errorf("%s: symmetric and inverse_name only apply to reference types", n)
	}
	if kind != config.KindVariableType && (b.DataType != "" || b.ValueRank != nil) {
		return nil, fmt.Errorf("%s: data_type and value_rank only apply to variable types", n)
	}
	return n, nil
}

func translateInstance(kind config.Kind, b *instanceBlock) (*config.Node, error) {
	if err := checkRemain(b.Body); err != nil {
		return nil, err
	}
	n := &config.Node{
		Kind:           kind,
		Name:           b.Name,
		NodeID:         b.NodeID,
		BrowseName:     b.BrowseName,
		DisplayName:    b.DisplayName,
		Description:    b.Description,
		ComponentOf:    b.ComponentOf,
		OrganizedBy:    b.OrganizedBy,
		PropertyOf:     b.PropertyOf,
		TypeDefinition: b.TypeDefinition,
		DataType:       b.DataType,
		ValueRank:      b.ValueRank,
		ValueType:      b.ValueType,
		Value:          cty.NilVal,
		Source:         sourceOf(b.Body),
	}

	if kind != config.KindVariable {
		if b.PropertyOf != "" || b.DataType != "" || b.ValueRank != nil || b.ValueType != "" {
			return nil, fmt.Errorf("%s: property_of, data_type, value_rank and value_type only apply to variables", n)
		}
	}

	if b.Value != nil {
		val, diags := b.Value.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%s: evaluating value: %w", n, diags)
		}
		if !val.IsNull() {
			if kind != config.KindVariable {
				return nil, fmt.Errorf("%s: only variables take a value", n)
			}
			n.Value = val
		}
	}
	return n, nil
}
