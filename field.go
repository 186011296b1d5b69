// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package econf

// Loadable is implemented by record types whose fields can be overridden
// from environment variables. Implementations are typically generated by
// the econfgen tool; hand-written descriptor lists are equally valid.
//
// EnvFields must return the descriptors in field declaration order and must
// return descriptors pointing into the receiver, so that applying an
// override mutates the record itself.
type Loadable interface {
	EnvFields() []Field
}

// Field describes one field of a record for the resolver.
type Field struct {
	// Name is the declared field identifier. It becomes one path segment of
	// the derived environment key (upper-cased by [Key]).
	Name string

	// Rename, when non-empty, replaces Name as the key segment. The string
	// is used verbatim apart from case normalization.
	Rename string

	// Skip excludes the field entirely: no key is derived, the environment
	// is not consulted, and the field does not participate in collision
	// tracking. Value may be nil for skipped fields.
	Skip bool

	// Value is the resolution target: a leaf built by one of the typed
	// constructors (Bool, Int, YAML, ...) or a nested record via [Struct].
	Value Value
}

// Value is the resolution target of a single field: either a leaf whose
// value is parsed from the raw environment string, or a nested record that
// is resolved recursively. Values are created through the package's
// constructor functions.
type Value interface {
	target()
}

// leaf parses a raw environment string and stores the result through a
// captured pointer. apply must either store a complete value or leave the
// target untouched and return the parse error.
type leaf struct {
	typ   string
	apply func(raw string) error
}

func (*leaf) target() {}

// nested wraps a record that is resolved recursively with an extended path.
type nested struct {
	rec Loadable
}

func (nested) target() {}

// Struct marks a field as a nested record. The resolver never parses the
// field's own derived key as a value; it always descends into rec's fields
// with the path extended by the field's segment.
func Struct(rec Loadable) Value {
	return nested{rec: rec}
}
