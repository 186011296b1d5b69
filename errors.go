// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package econf

import "errors"

// Parse errors surfaced inside ParseFailure warnings by the leaf
// constructors that add constraints on top of the standard conversions.
var (
	// errZeroValue is returned by NonZeroInt and NonZeroUint when the
	// parsed number equals zero.
	errZeroValue = errors.New("value must be non-zero")

	// errNotOneRune is returned by Rune when the value is empty, malformed
	// UTF-8, or longer than a single character.
	errNotOneRune = errors.New("value must be exactly one character")
)
