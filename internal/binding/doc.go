// Package binding holds the current value of a variable node and enforces
// its declared data type on every store.
//
// A Binding offers two setters of different strength.
// SetValueFromSource is the raw path used by device drivers and other
// trusted producers: it checks the built-in type tag only, so an
// enumerated variable may briefly hold an integer that is not a member.
// WriteValue and WriteEnumValue are the validated paths: they also check
// membership and leave the value untouched on failure. ReadEnumValue
// reports a non-member raw value as modelerr.ErrNotFound.
package binding
