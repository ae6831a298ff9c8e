package yaml

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/specialistvlad/addressspace/internal/config"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

func translate(doc *fileYAML, filename string) (*config.Model, error) {
	m := &config.Model{}
	defaultNS := doc.DefaultNamespace
	for _, ns := range doc.Namespaces {
		m.Namespaces = append(m.Namespaces, &config.Namespace{URI: ns.URI, GUIDIDs: ns.GUIDIDs})
		if defaultNS == "" {
			defaultNS = ns.URI
		}
	}

	for i, y := range doc.Nodes {
		n := &config.Node{
			Kind:           config.Kind(y.Kind),
			Name:           y.Name,
			Namespace:      y.Namespace,
			NodeID:         y.NodeID,
			BrowseName:     y.BrowseName,
			DisplayName:    y.DisplayName,
			Description:    y.Description,
			SubtypeOf:      y.SubtypeOf,
			IsAbstract:     y.IsAbstract,
			Symmetric:      y.Symmetric,
			InverseName:    y.InverseName,
			ComponentOf:    y.ComponentOf,
			OrganizedBy:    y.OrganizedBy,
			PropertyOf:     y.PropertyOf,
			TypeDefinition: y.TypeDefinition,
			DataType:       y.DataType,
			ValueRank:      y.ValueRank,
			ValueType:      y.ValueType,
			Value:          cty.NilVal,
			Source:         fmt.Sprintf("%s:nodes[%d]", filename, i),
		}
		if n.Namespace == "" {
			n.Namespace = defaultNS
		}
		if !n.Kind.Valid() {
			return nil, fmt.Errorf("%s: unknown kind %q", n.Source, y.Kind)
		}
		for _, f := range y.Fields {
			n.Fields = append(n.Fields, &config.EnumField{Name: f.Name, Value: f.Value, Description: f.Description})
		}
		if len(n.Fields) > 0 && n.Kind != config.KindEnumeration {
			return nil, fmt.Errorf("%s: only enumerations take fields", n)
		}
		if y.Value != nil {
			if n.Kind != config.KindVariable {
				return nil, fmt.Errorf("%s: only variables take a value", n)
			}
			val, err := toCty(y.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: value: %w", n, err)
			}
			n.Value = val
		}
		m.Nodes = append(m.Nodes, n)
	}

	for i, r := range doc.References {
		m.References = append(m.References, &config.Reference{
			Source: r.Source,
			Type:   r.Type,
			Target: r.Target,
			Origin: fmt.Sprintf("%s:references[%d]", filename, i),
		})
	}
	return m, nil
}

// toCty converts a decoded YAML value into the cty value HCL would have
// produced for the same literal.
func toCty(n *yaml.Node) (cty.Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return toCty(n.Alias)
	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := toCty(c)
			if err != nil {
				return cty.NilVal, err
			}
			elems = append(elems, v)
		}
		return cty.TupleVal(elems), nil
	case yaml.MappingNode:
		if len(n.Content) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := toCty(n.Content[i+1])
			if err != nil {
				return cty.NilVal, err
			}
			attrs[n.Content[i].Value] = v
		}
		return cty.ObjectVal(attrs), nil
	case yaml.ScalarNode:
		return scalarToCty(n)
	}
	return cty.NilVal, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

func scalarToCty(n *yaml.Node) (cty.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return cty.NullVal(cty.DynamicPseudoType), nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return cty.NilVal, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return cty.BoolVal(b), nil
	case "!!int", "!!float":
		f, _, err := big.ParseFloat(n.Value, 0, 512, big.ToNearestEven)
		if err != nil {
			return cty.NilVal, fmt.Errorf("line %d: invalid number %q", n.Line, n.Value)
		}
		return cty.NumberVal(f), nil
	}
	return cty.StringVal(n.Value), nil
}
