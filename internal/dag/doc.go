// Package dag provides a small, concurrency-safe directed graph over string
// ids with cycle detection and deterministic topological ordering.
//
// The address space uses it in two places: to verify that the subtype
// hierarchy of a loaded model is acyclic, and to order nodeset declarations
// so that every node is created after the nodes it refers to.
package dag
