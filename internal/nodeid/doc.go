// internal/nodeid/doc.go

/*
Package nodeid provides the identifiers used throughout the address space.

A NodeID is an opaque, comparable value made of a namespace index and an
identifier of one of four kinds. Its canonical text form is

	i=85            numeric identifier in namespace 0
	ns=1;i=1000     numeric identifier in namespace 1
	ns=2;s=Pump.1   string identifier
	ns=1;g=...      GUID identifier
	ns=1;b=...      opaque identifier (base64)

A QualifiedName pairs a namespace index with a browse name and renders as
`1:MyEnumType2`. Names in namespace 0 render without the prefix.

This package enforces the identifier schema and centralizes all
formatting and parsing logic.
*/
package nodeid
