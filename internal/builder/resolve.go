package builder

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/addressspace/internal/addressspace"
	"github.com/specialistvlad/addressspace/internal/config"
	"github.com/specialistvlad/addressspace/internal/ids"
	"github.com/specialistvlad/addressspace/internal/modelerr"
	"github.com/specialistvlad/addressspace/internal/nodeid"
)

// resolver turns the textual references of declarations into node ids.
type resolver struct {
	space *addressspace.AddressSpace
	model *config.Model

	byName map[string]*config.Node
	// byID indexes declarations with an explicit node id.
	byID    map[nodeid.NodeID]*config.Node
	created map[string]nodeid.NodeID
}

func newResolver(space *addressspace.AddressSpace, model *config.Model) (*resolver, error) {
	r := &resolver{
		space:   space,
		model:   model,
		byName:  make(map[string]*config.Node, len(model.Nodes)),
		byID:    make(map[nodeid.NodeID]*config.Node),
		created: make(map[string]nodeid.NodeID, len(model.Nodes)),
	}
	for _, decl := range model.Nodes {
		r.byName[decl.Name] = decl
		id, err := r.explicitID(decl)
		if err != nil {
			return nil, err
		}
		if id.IsNull() {
			continue
		}
		if prev, dup := r.byID[id]; dup {
			return nil, modelerr.New("Build", modelerr.ErrDuplicateDefinition, "%s and %s both declare node id %s", prev, decl, id)
		}
		r.byID[id] = decl
	}
	return r, nil
}

// namespace returns the namespace a declaration belongs to.
func (r *resolver) namespace(decl *config.Node) (*addressspace.Namespace, error) {
	uri := decl.Namespace
	if uri == "" {
		uri = ids.StandardNamespaceURI
	}
	ns, ok := r.space.NamespaceByURI(uri)
	if !ok {
		return nil, modelerr.New("Build", modelerr.ErrNotFound, "%s: namespace %q is not registered", decl, uri)
	}
	return ns, nil
}

// explicitID returns the absolute id a declaration asks for, or the null id.
func (r *resolver) explicitID(decl *config.Node) (nodeid.NodeID, error) {
	if decl.NodeID == "" {
		return nodeid.NodeID{}, nil
	}
	if strings.HasPrefix(decl.NodeID, "ns=") {
		return nodeid.NodeID{}, modelerr.New("Build", modelerr.ErrInvalidDefinition, "%s: node_id %q must not carry a namespace index", decl, decl.NodeID)
	}
	id, err := nodeid.Parse(decl.NodeID)
	if err != nil {
		return nodeid.NodeID{}, modelerr.New("Build", modelerr.ErrInvalidDefinition, "%s: %v", decl, err)
	}
	ns, err := r.namespace(decl)
	if err != nil {
		return nodeid.NodeID{}, err
	}
	return id.WithNamespace(ns.Index()), nil
}

// declaration returns the declaration ref points at, if any. ref is either
// a declaration name or an absolute node id.
func (r *resolver) declaration(ref string) (*config.Node, bool) {
	if ref == "" {
		return nil, false
	}
	if decl, ok := r.byName[ref]; ok {
		return decl, true
	}
	id, err := nodeid.Parse(ref)
	if err != nil {
		return nil, false
	}
	decl, ok := r.byID[id]
	return decl, ok
}

// resolve returns the node id ref names. Declarations must already be
// created. An empty ref resolves to the null id.
func (r *resolver) resolve(ref string) (nodeid.NodeID, error) {
	if ref == "" {
		return nodeid.NodeID{}, nil
	}
	if decl, ok := r.byName[ref]; ok {
		id, created := r.created[decl.Name]
		if !created {
			panic(fmt.Sprintf("builder: %s used before it was created", decl))
		}
		return id, nil
	}
	id, err := nodeid.Parse(ref)
	if err != nil {
		return nodeid.NodeID{}, modelerr.New("Build", modelerr.ErrNotFound, "%q is neither a declaration nor a node id", ref)
	}
	return id, nil
}

// dependencies lists the declarations decl must be created after.
func (r *resolver) dependencies(decl *config.Node) []*config.Node {
	refs := []string{decl.SubtypeOf, decl.ComponentOf, decl.OrganizedBy, decl.PropertyOf, decl.TypeDefinition, decl.DataType}
	for _, id := range implicitDependencies(decl) {
		refs = append(refs, id.String())
	}

	var out []*config.Node
	for _, ref := range refs {
		if dep, ok := r.declaration(ref); ok {
			out = append(out, dep)
		}
	}
	return out
}

// implicitDependencies returns the well-known nodes the factory for decl
// references without the declaration naming them.
func implicitDependencies(decl *config.Node) []nodeid.NodeID {
	var out []nodeid.NodeID
	if decl.SubtypeOf != "" {
		out = append(out, ids.HasSubtype)
	}
	switch decl.Kind {
	case config.KindEnumeration:
		out = append(out, ids.HasSubtype, ids.Enumeration, ids.HasProperty, ids.HasTypeDefinition, ids.PropertyType, ids.LocalizedText, ids.EnumValueType)
	case config.KindObject, config.KindFolder, config.KindVariable:
		out = append(out, ids.HasTypeDefinition)
		if decl.TypeDefinition == "" {
			out = append(out, defaultTypeDefinition(decl))
		}
		switch {
		case decl.PropertyOf != "":
			out = append(out, ids.HasProperty)
		case decl.ComponentOf != "":
			out = append(out, ids.HasComponent)
		case decl.OrganizedBy != "":
			out = append(out, ids.Organizes)
		}
	}
	return out
}

func defaultTypeDefinition(decl *config.Node) nodeid.NodeID {
	switch {
	case decl.Kind == config.KindFolder:
		return ids.FolderType
	case decl.Kind == config.KindObject:
		return ids.BaseObjectType
	case decl.PropertyOf != "":
		return ids.PropertyType
	}
	return ids.BaseDataVariableType
}
