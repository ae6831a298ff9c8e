// Package graph provides a unified facade over the node store and the
// reference store: the browse engine of the address space.
//
// # Why Graph Package Exists
//
// Nodes and references live in two separate stores. Keeping them
// consistent takes a few rules. A reference may only be added when both
// endpoints and its reference type exist. A subtype edge must never close
// a cycle. Deleting a node must drop its references too. The Manager
// enforces these rules under a single structural lock so that readers
// never observe a reference to a missing node.
//
// # Architecture: The Facade Pattern
//
//	┌─────────────────────────────────────┐
//	│           Graph Facade              │
//	│  (AddNode, AddReference, Browse,    │
//	│   subtype queries, DeleteNode)      │
//	└──────────┬────────────┬─────────────┘
//	           │            │
//	           ▼            ▼
//	  ┌────────────┐  ┌────────────┐
//	  │    Node    │  │ Reference  │
//	  │   Store    │  │   Store    │
//	  └────────────┘  └────────────┘
//
// # Browsing
//
// Browse returns the references of one node that match a BrowseDescription,
// in insertion order. The description filters by reference type (optionally
// including its subtypes), direction and target node class. The result mask
// only selects which fields of each ReferenceDescription are populated; it
// never changes which references match.
//
//	refs, err := g.Browse(ctx, ids.Enumeration, graph.BrowseDescription{
//	    Direction:  graph.BrowseForward,
//	    ResultMask: graph.ResultMaskAll,
//	})
package graph
