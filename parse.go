// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package econf

import (
	"encoding"
	"fmt"
	"net/netip"
	"reflect"
	"strconv"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

type float interface {
	~float32 | ~float64
}

// newLeaf builds a leaf that parses the raw string with parse and, on
// success, stores the result through p. The target type name is captured
// for warning diagnostics.
func newLeaf[T any](p *T, parse func(string) (T, error)) Value {
	return &leaf{
		typ: reflect.TypeOf((*T)(nil)).Elem().String(),
		apply: func(raw string) error {
			v, err := parse(raw)
			if err != nil {
				return err
			}
			*p = v

			return nil
		},
	}
}

// bitsOf reports the bit width of the numeric type T, used to range-check
// fixed-width integers during parsing.
func bitsOf[T any]() int {
	return reflect.TypeOf((*T)(nil)).Elem().Bits()
}

// Bool accepts the literals understood by [strconv.ParseBool]
// (1, t, T, TRUE, true, True, 0, f, F, FALSE, false, False).
func Bool(p *bool) Value {
	return newLeaf(p, strconv.ParseBool)
}

// String stores the raw environment value verbatim.
func String(p *string) Value {
	return newLeaf(p, func(raw string) (string, error) {
		return raw, nil
	})
}

// Rune requires the value to be exactly one character.
func Rune(p *rune) Value {
	return newLeaf(p, func(raw string) (rune, error) {
		r, size := utf8.DecodeRuneInString(raw)
		if r == utf8.RuneError || size != len(raw) {
			return 0, errNotOneRune
		}

		return r, nil
	})
}

// Int parses a decimal integer, range-checked against T's width.
func Int[T signed](p *T) Value {
	return newLeaf(p, parseInt[T])
}

// Uint parses a decimal unsigned integer, range-checked against T's width.
func Uint[T unsigned](p *T) Value {
	return newLeaf(p, parseUint[T])
}

// Float parses a floating point literal, range-checked against T's width.
func Float[T float](p *T) Value {
	return newLeaf(p, func(raw string) (T, error) {
		f, err := strconv.ParseFloat(raw, bitsOf[T]())

		return T(f), err
	})
}

// NonZeroInt parses like [Int] and additionally rejects zero.
func NonZeroInt[T signed](p *T) Value {
	return newLeaf(p, func(raw string) (T, error) {
		n, err := parseInt[T](raw)
		if err != nil {
			return 0, err
		}
		if n == 0 {
			return 0, errZeroValue
		}

		return n, nil
	})
}

// NonZeroUint parses like [Uint] and additionally rejects zero.
func NonZeroUint[T unsigned](p *T) Value {
	return newLeaf(p, func(raw string) (T, error) {
		n, err := parseUint[T](raw)
		if err != nil {
			return 0, err
		}
		if n == 0 {
			return 0, errZeroValue
		}

		return n, nil
	})
}

// Duration parses with [time.ParseDuration] (e.g. "30s", "1h30m").
func Duration(p *time.Duration) Value {
	return newLeaf(p, time.ParseDuration)
}

// Addr parses an IPv4 or IPv6 address with [netip.ParseAddr].
func Addr(p *netip.Addr) Value {
	return newLeaf(p, netip.ParseAddr)
}

// AddrPort parses an "ip:port" pair with [netip.ParseAddrPort]
// (e.g. "127.0.0.1:9999", "[2001:db8::1]:8080").
func AddrPort(p *netip.AddrPort) Value {
	return newLeaf(p, netip.ParseAddrPort)
}

// Text delegates parsing to the value's own UnmarshalText method. This is
// the integration point for closed-set (enum-like) types and other types
// carrying their own textual syntax. Implementations should leave the
// receiver unmodified when they return an error.
func Text(v encoding.TextUnmarshaler) Value {
	return &leaf{
		typ: fmt.Sprintf("%T", v),
		apply: func(raw string) error {
			return v.UnmarshalText([]byte(raw))
		},
	}
}

// Func registers a user-supplied parse function for the field, the escape
// hatch for leaf kinds the package has no constructor for.
func Func[T any](p *T, parse func(string) (T, error)) Value {
	return newLeaf(p, parse)
}

// YAML deserializes the raw string as a YAML document into a value of type
// T. It covers container and compound fields: slices, arrays, maps and
// pointers (optional values, where "~" or "null" clears the field). YAML is
// a superset of plain scalars and of JSON, so "[1, 2, 3]" and
// "{a: 1, b: 2}" both work. Decoding happens into a scratch value; the
// field is only replaced when the whole document matches T's shape.
func YAML[T any](p *T) Value {
	return newLeaf(p, func(raw string) (T, error) {
		var v T
		if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
			var zero T
			return zero, err
		}

		return v, nil
	})
}

func parseInt[T signed](raw string) (T, error) {
	n, err := strconv.ParseInt(raw, 10, bitsOf[T]())

	return T(n), err
}

func parseUint[T unsigned](raw string) (T, error) {
	n, err := strconv.ParseUint(raw, 10, bitsOf[T]())

	return T(n), err
}
