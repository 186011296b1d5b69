// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package econf

// WarningKind classifies the non-fatal anomalies a load pass can encounter.
type WarningKind int

const (
	// ParseFailure means the environment variable was set but its value
	// could not be coerced to the field's type. The field keeps its
	// previous value.
	ParseFailure WarningKind = iota

	// KeyCollision means two or more distinct field paths derived the same
	// environment variable name. Every colliding field still received the
	// value independently.
	KeyCollision
)

// String returns the kind's diagnostic label.
func (k WarningKind) String() string {
	switch k {
	case ParseFailure:
		return "parse_failure"
	case KeyCollision:
		return "key_collision"
	default:
		return "unknown"
	}
}

// Warning is one structured diagnostic produced during a load pass. A load
// never fails because of a warning; warnings are logged and kept on the
// [Loader] for inspection.
type Warning struct {
	// Kind classifies the anomaly.
	Kind WarningKind

	// Key is the derived environment variable name involved.
	Key string

	// Raw is the environment value that failed to parse (ParseFailure only).
	Raw string

	// Type is the Go type name of the target field (ParseFailure only).
	Type string

	// Paths lists the dotted field paths that derived Key, in the order the
	// traversal reached them (KeyCollision only).
	Paths []string

	// Err is the underlying parse error (ParseFailure only).
	Err error
}
