package addressspace

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/addressspace/internal/binding"
	"github.com/specialistvlad/addressspace/internal/ctxlog"
	"github.com/specialistvlad/addressspace/internal/graph"
	"github.com/specialistvlad/addressspace/internal/ids"
	"github.com/specialistvlad/addressspace/internal/inmemoryrefs"
	"github.com/specialistvlad/addressspace/internal/inmemorystore"
	"github.com/specialistvlad/addressspace/internal/metric"
	"github.com/specialistvlad/addressspace/internal/modelerr"
	"github.com/specialistvlad/addressspace/internal/node"
	"github.com/specialistvlad/addressspace/internal/nodeid"
	"github.com/specialistvlad/addressspace/internal/typesystem"
	"github.com/specialistvlad/addressspace/internal/variant"
)

// AddressSpace is the explicit context object holding one model.
type AddressSpace struct {
	g     *graph.Manager
	types *typesystem.TypeSystem

	metrics  *metric.Metrics
	logger   *slog.Logger
	now      func() time.Time
	disposed *atomic.Bool

	// mu serializes structural mutation and guards the fields below.
	mu         sync.RWMutex
	namespaces []*Namespace
	bindings   map[nodeid.NodeID]*binding.Binding
}

// Option configures an AddressSpace.
type Option func(*AddressSpace)

// WithMetrics records model statistics into m.
func WithMetrics(m *metric.Metrics) Option {
	return func(s *AddressSpace) {
		s.metrics = m
	}
}

// WithLogger sets the logger handed to variable bindings. Structural
// operations log through the logger of their context.
func WithLogger(logger *slog.Logger) Option {
	return func(s *AddressSpace) {
		s.logger = logger
	}
}

// WithClock overrides the time source of value timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *AddressSpace) {
		s.now = now
	}
}

// New creates an empty address space. Namespace 0 is registered with the
// standard URI; its nodes are expected to come from a loader.
func New(ctx context.Context, opts ...Option) *AddressSpace {
	g := graph.New(inmemorystore.New(), inmemoryrefs.New())
	s := &AddressSpace{
		g:        g,
		types:    typesystem.New(g),
		logger:   ctxlog.FromContext(ctx),
		now:      time.Now,
		disposed: new(atomic.Bool),
		bindings: make(map[nodeid.NodeID]*binding.Binding),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.namespaces = []*Namespace{newNamespace(s, 0, ids.StandardNamespaceURI)}
	s.metrics.SetNamespaces(1)

	ctxlog.FromContext(ctx).Debug("Address space created.")
	return s
}

// RegisterNamespace appends a namespace for uri and returns it. The
// returned namespace gets the next free index.
func (s *AddressSpace) RegisterNamespace(ctx context.Context, uri string, opts ...NamespaceOption) (*Namespace, error) {
	const op = "RegisterNamespace"
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkDisposed(op); err != nil {
		return nil, err
	}
	if uri == "" {
		return nil, modelerr.New(op, modelerr.ErrInvalidDefinition, "namespace uri is empty")
	}
	for _, ns := range s.namespaces {
		if ns.uri == uri {
			return nil, modelerr.New(op, modelerr.ErrDuplicateDefinition, "namespace %q already has index %d", uri, ns.index)
		}
	}

	ns := newNamespace(s, uint16(len(s.namespaces)), uri, opts...)
	s.namespaces = append(s.namespaces, ns)
	s.metrics.SetNamespaces(len(s.namespaces))
	s.publishNamespaceArrayLocked()

	ctxlog.FromContext(ctx).Debug("Namespace registered.", "uri", uri, "index", ns.index)
	return ns, nil
}

// Namespace returns the namespace at index.
func (s *AddressSpace) Namespace(index uint16) (*Namespace, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if int(index) >= len(s.namespaces) {
		return nil, false
	}
	return s.namespaces[index], true
}

// NamespaceByURI returns the namespace registered for uri.
func (s *AddressSpace) NamespaceByURI(uri string) (*Namespace, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ns := range s.namespaces {
		if ns.uri == uri {
			return ns, true
		}
	}
	return nil, false
}

// OwnNamespace returns the first namespace registered after namespace 0,
// the one an application owns.
func (s *AddressSpace) OwnNamespace() (*Namespace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkDisposed("OwnNamespace"); err != nil {
		return nil, err
	}
	if len(s.namespaces) < 2 {
		return nil, modelerr.New("OwnNamespace", modelerr.ErrNotFound, "no namespace registered besides the standard one")
	}
	return s.namespaces[1], nil
}

// NamespaceArray returns the namespace URIs ordered by index.
func (s *AddressSpace) NamespaceArray() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.namespaceArrayLocked()
}

// TypeSystem returns the type hierarchy queries of the space.
func (s *AddressSpace) TypeSystem() *typesystem.TypeSystem {
	return s.types
}

// FindNode returns the node with id.
func (s *AddressSpace) FindNode(ctx context.Context, id nodeid.NodeID) (*node.Node, error) {
	if err := s.checkDisposed("FindNode"); err != nil {
		return nil, err
	}
	n, ok := s.g.Node(ctx, id)
	if !ok {
		return nil, modelerr.New("FindNode", modelerr.ErrNotFound, "node %s", id)
	}
	return n, nil
}

// FindDataType returns the data type with the given browse name.
func (s *AddressSpace) FindDataType(ctx context.Context, browseName nodeid.QualifiedName) (*node.Node, error) {
	const op = "FindDataType"
	if err := s.checkDisposed(op); err != nil {
		return nil, err
	}
	for _, n := range s.g.FindByBrowseName(ctx, browseName) {
		if n.Class() == node.ClassDataType {
			return n, nil
		}
	}
	return nil, modelerr.New(op, modelerr.ErrNotFound, "data type %s", browseName)
}

// FindVariable returns the handle of the variable with id.
func (s *AddressSpace) FindVariable(ctx context.Context, id nodeid.NodeID) (*Variable, error) {
	const op = "FindVariable"
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkDisposed(op); err != nil {
		return nil, err
	}
	b, ok := s.bindings[id]
	if !ok {
		return nil, modelerr.New(op, modelerr.ErrNotFound, "variable %s", id)
	}
	return &Variable{Binding: b}, nil
}

// BrowseNode returns the references of id that match desc, in insertion
// order.
func (s *AddressSpace) BrowseNode(ctx context.Context, id nodeid.NodeID, desc graph.BrowseDescription) ([]graph.ReferenceDescription, error) {
	if err := s.checkDisposed("BrowseNode"); err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() { s.metrics.Browsed(time.Since(start)) }()
	return s.g.Browse(ctx, id, desc)
}

// AddReference inserts source -[refType]-> target together with its
// inverse. Repeating an existing reference is a no-op.
func (s *AddressSpace) AddReference(ctx context.Context, source, refType, target nodeid.NodeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkDisposed("AddReference"); err != nil {
		return err
	}
	if err := s.g.AddReference(ctx, source, refType, target); err != nil {
		return err
	}
	s.refreshReferenceCountLocked(ctx)
	return nil
}

// DeleteReference removes source -[refType]-> target together with its
// inverse. Unknown references fail with modelerr.ErrNotFound.
func (s *AddressSpace) DeleteReference(ctx context.Context, source, refType, target nodeid.NodeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkDisposed("DeleteReference"); err != nil {
		return err
	}
	if err := s.g.RemoveReference(ctx, source, refType, target); err != nil {
		return err
	}
	s.refreshReferenceCountLocked(ctx)
	return nil
}

// HasReference reports whether source -[refType]-> target exists. A
// disposed space has no references.
func (s *AddressSpace) HasReference(ctx context.Context, source, refType, target nodeid.NodeID) bool {
	if s.disposed.Load() {
		return false
	}
	return s.g.HasReference(ctx, source, refType, target)
}

// DeleteNode removes id, its aggregated children and every reference
// touching them.
func (s *AddressSpace) DeleteNode(ctx context.Context, id nodeid.NodeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkDisposed("DeleteNode"); err != nil {
		return err
	}
	if _, ok := s.g.Node(ctx, id); !ok {
		return modelerr.New("DeleteNode", modelerr.ErrNotFound, "node %s", id)
	}
	s.deleteLocked(ctx, id, map[nodeid.NodeID]bool{})
	s.refreshReferenceCountLocked(ctx)
	return nil
}

func (s *AddressSpace) deleteLocked(ctx context.Context, id nodeid.NodeID, seen map[nodeid.NodeID]bool) {
	if seen[id] {
		return
	}
	seen[id] = true

	for _, r := range s.g.References(ctx, id) {
		if r.IsForward && s.g.IsSubtypeOf(ctx, r.ReferenceTypeID, ids.Aggregates) {
			if _, ok := s.g.Node(ctx, r.TargetID); ok {
				s.deleteLocked(ctx, r.TargetID, seen)
			}
		}
	}

	n, ok := s.g.Node(ctx, id)
	if !ok {
		return
	}
	if _, err := s.g.DeleteNode(ctx, id); err != nil {
		// The node was looked up under the structural lock.
		panic(err)
	}
	delete(s.bindings, id)
	s.metrics.NodeRemoved(n.Class())
}

// Counts returns the number of nodes and references in the space.
func (s *AddressSpace) Counts(ctx context.Context) (nodes, references int) {
	return s.g.Counts(ctx)
}

// Dispose releases every node, reference and binding at once. Afterwards
// every operation fails with modelerr.ErrDisposed. Calling it again is a
// no-op.
func (s *AddressSpace) Dispose(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed.Swap(true) {
		return
	}
	nodes, refs := s.g.Counts(ctx)
	s.g.Clear(ctx)
	s.bindings = nil
	s.namespaces = nil
	s.metrics.Reset()

	ctxlog.FromContext(ctx).Debug("Address space disposed.", "nodes", nodes, "references", refs)
}

// IsDisposed reports whether Dispose was called.
func (s *AddressSpace) IsDisposed() bool {
	return s.disposed.Load()
}

func (s *AddressSpace) checkDisposed(op string) error {
	if s.disposed.Load() {
		return modelerr.New(op, modelerr.ErrDisposed, "")
	}
	return nil
}

func (s *AddressSpace) refreshReferenceCountLocked(ctx context.Context) {
	_, refs := s.g.Counts(ctx)
	s.metrics.SetReferences(refs)
}

func (s *AddressSpace) namespaceArrayLocked() []string {
	out := make([]string, len(s.namespaces))
	for i, ns := range s.namespaces {
		out[i] = ns.uri
	}
	return out
}

// publishNamespaceArrayLocked mirrors the namespace array into the
// Server.NamespaceArray variable once the base model provides it.
func (s *AddressSpace) publishNamespaceArrayLocked() {
	b, ok := s.bindings[ids.ServerNamespaceArray]
	if !ok {
		return
	}
	uris := s.namespaceArrayLocked()
	raw := make([]any, len(uris))
	for i, u := range uris {
		raw[i] = u
	}
	v, err := variant.NewArray(variant.String, raw)
	if err != nil {
		panic(err)
	}
	if err := b.SetValueFromSource(v); err != nil {
		s.logger.Warn("Cannot publish namespace array.", "error", err)
	}
}
