// Package enumeration implements enumeration definitions: immutable, ordered
// mappings between member names and integer values.
//
// A definition is built from one of two specification forms:
//
//	enumeration.Names{"RUNNING", "BLOCKED", "IDLE"}      // values 0, 1, 2
//	enumeration.Values{{DisplayName: "VALUE01", Value: 1}, {DisplayName: "VALUE04", Value: 4}}
//
// Names and values are pairwise distinct. Validate resolves a candidate of
// any integer or string form to exactly one member.
package enumeration
