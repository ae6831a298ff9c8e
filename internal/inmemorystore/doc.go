// Package inmemorystore provides a thread-safe, in-memory implementation
// of the nodestore.Store interface. Nodes are kept in insertion order and
// indexed by id and by browse name.
package inmemorystore
