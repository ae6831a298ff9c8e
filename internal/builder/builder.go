package builder

import (
	"context"
	"fmt"

	"github.com/specialistvlad/addressspace/internal/addressspace"
	"github.com/specialistvlad/addressspace/internal/config"
	"github.com/specialistvlad/addressspace/internal/ctxlog"
	"github.com/specialistvlad/addressspace/internal/dag"
	"github.com/specialistvlad/addressspace/internal/modelerr"
	"github.com/specialistvlad/addressspace/internal/nodeid"
)

// Result describes what Build created.
type Result struct {
	// IDs maps declaration names to the ids of the created nodes.
	IDs map[string]nodeid.NodeID
	// Order is the creation order of the declarations.
	Order []string
	// Namespaces lists the URIs that were newly registered.
	Namespaces []string
}

// Build applies model to space.
func Build(ctx context.Context, space *addressspace.AddressSpace, model *config.Model) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting nodeset application.", "nodes", len(model.Nodes), "references", len(model.References))

	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid nodeset: %w", err)
	}

	res := &Result{IDs: make(map[string]nodeid.NodeID, len(model.Nodes))}

	// First pass: namespaces.
	for _, decl := range model.Namespaces {
		if _, ok := space.NamespaceByURI(decl.URI); ok {
			logger.Debug("Build: Namespace already registered.", "uri", decl.URI)
			continue
		}
		var opts []addressspace.NamespaceOption
		if decl.GUIDIDs {
			opts = append(opts, addressspace.WithGUIDIdentifiers())
		}
		if _, err := space.RegisterNamespace(ctx, decl.URI, opts...); err != nil {
			return nil, err
		}
		res.Namespaces = append(res.Namespaces, decl.URI)
	}

	r, err := newResolver(space, model)
	if err != nil {
		return nil, err
	}

	// Second pass: dependency ordering.
	order, err := r.order(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("Build: Dependency ordering complete.", "order_length", len(order))

	// Third pass: node creation.
	for _, name := range order {
		decl := r.byName[name]
		id, err := r.apply(ctx, decl)
		if err != nil {
			return res, fmt.Errorf("%s: %w", decl, err)
		}
		r.created[name] = id
		res.IDs[name] = id
		res.Order = append(res.Order, name)
	}

	// Final pass: extra references and hierarchy validation.
	for _, ref := range model.References {
		if err := r.applyReference(ctx, ref); err != nil {
			return res, err
		}
	}
	if err := space.TypeSystem().CheckHierarchy(ctx); err != nil {
		return res, fmt.Errorf("error validating type hierarchy: %w", err)
	}

	nodes, refs := space.Counts(ctx)
	logger.Info("Build: Nodeset applied.", "created", len(res.Order), "nodes", nodes, "references", refs)
	return res, nil
}

// order returns the declaration names sorted so that dependencies come
// first. Ties keep declaration order.
func (r *resolver) order(ctx context.Context) ([]string, error) {
	d := dag.New()
	for _, decl := range r.model.Nodes {
		d.AddNode(decl.Name)
	}
	for _, decl := range r.model.Nodes {
		logger := ctxlog.FromContext(ctx).With("declaration", decl.Name)
		for _, dep := range r.dependencies(decl) {
			if dep.Name == decl.Name {
				continue
			}
			logger.Debug("Linking dependency.", "depends_on", dep.Name)
			if err := d.AddEdge(dep.Name, decl.Name); err != nil {
				return nil, fmt.Errorf("error linking dependency: %w", err)
			}
		}
	}
	order, err := d.TopologicalOrder()
	if err != nil {
		return nil, modelerr.New("Build", modelerr.ErrReferenceIntegrity, "declarations depend on each other: %v", err)
	}
	return order, nil
}
