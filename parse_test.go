// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package econf

import (
	"fmt"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// apply feeds a raw string into a leaf value, as the loader would on a
// successful environment lookup.
func apply(t *testing.T, v Value, raw string) error {
	t.Helper()
	lf, ok := v.(*leaf)
	require.True(t, ok, "value is not a leaf")

	return lf.apply(raw)
}

func TestBool(t *testing.T) {
	var b bool

	require.NoError(t, apply(t, Bool(&b), "true"))
	assert.True(t, b)

	require.NoError(t, apply(t, Bool(&b), "0"))
	assert.False(t, b)

	b = true
	require.Error(t, apply(t, Bool(&b), "yes"))
	assert.True(t, b, "failed parse must keep the current value")
}

func TestString(t *testing.T) {
	s := "initial"

	require.NoError(t, apply(t, String(&s), "Hello World"))
	assert.Equal(t, "Hello World", s)

	// Strings are stored verbatim, even when they look like YAML.
	require.NoError(t, apply(t, String(&s), "[1,2,3]"))
	assert.Equal(t, "[1,2,3]", s)
}

func TestRune(t *testing.T) {
	r := 'p'

	require.NoError(t, apply(t, Rune(&r), "D"))
	assert.Equal(t, 'D', r)

	require.NoError(t, apply(t, Rune(&r), "日"))
	assert.Equal(t, '日', r)

	for _, raw := range []string{"", "ab", "\xff"} {
		assert.Error(t, apply(t, Rune(&r), raw), "raw = %q", raw)
	}
	assert.Equal(t, '日', r)
}

func TestInt(t *testing.T) {
	var i8 int8
	require.NoError(t, apply(t, Int(&i8), "127"))
	assert.Equal(t, int8(127), i8)

	assert.Error(t, apply(t, Int(&i8), "128"), "out of range for int8")
	assert.Equal(t, int8(127), i8)

	var i int
	require.NoError(t, apply(t, Int(&i), "-32393"))
	assert.Equal(t, -32393, i)

	assert.Error(t, apply(t, Int(&i), "not a number"))
}

func TestUint(t *testing.T) {
	var u16 uint16
	require.NoError(t, apply(t, Uint(&u16), "65535"))
	assert.Equal(t, uint16(65535), u16)

	assert.Error(t, apply(t, Uint(&u16), "65536"), "out of range for uint16")
	assert.Error(t, apply(t, Uint(&u16), "-1"), "negative value for unsigned")
	assert.Equal(t, uint16(65535), u16)

	var u64 uint64
	require.NoError(t, apply(t, Uint(&u64), "1384279284"))
	assert.Equal(t, uint64(1384279284), u64)
}

func TestFloat(t *testing.T) {
	var f32 float32
	require.NoError(t, apply(t, Float(&f32), "32.3"))
	assert.InDelta(t, 32.3, f32, 1e-5)

	assert.Error(t, apply(t, Float(&f32), "1e40"), "overflows float32")

	var f64 float64
	require.NoError(t, apply(t, Float(&f64), "-99.9"))
	assert.InDelta(t, -99.9, f64, 1e-9)
}

func TestNonZero(t *testing.T) {
	i := 42
	require.NoError(t, apply(t, NonZeroInt(&i), "-5"))
	assert.Equal(t, -5, i)

	err := apply(t, NonZeroInt(&i), "0")
	require.ErrorIs(t, err, errZeroValue)
	assert.Equal(t, -5, i)

	var u uint8
	require.NoError(t, apply(t, NonZeroUint(&u), "39"))
	assert.Equal(t, uint8(39), u)
	require.ErrorIs(t, apply(t, NonZeroUint(&u), "0"), errZeroValue)
	assert.Equal(t, uint8(39), u)
}

func TestDuration(t *testing.T) {
	d := time.Second

	require.NoError(t, apply(t, Duration(&d), "1h30m"))
	assert.Equal(t, 90*time.Minute, d)

	assert.Error(t, apply(t, Duration(&d), "eternity"))
	assert.Equal(t, 90*time.Minute, d)
}

func TestAddr(t *testing.T) {
	var a netip.Addr

	require.NoError(t, apply(t, Addr(&a), "127.0.0.1"))
	assert.Equal(t, netip.MustParseAddr("127.0.0.1"), a)

	require.NoError(t, apply(t, Addr(&a), "2001:db8::1"))
	assert.Equal(t, netip.MustParseAddr("2001:db8::1"), a)

	assert.Error(t, apply(t, Addr(&a), "not-an-ip"))
}

func TestAddrPort(t *testing.T) {
	var ap netip.AddrPort

	require.NoError(t, apply(t, AddrPort(&ap), "127.0.0.1:9999"))
	assert.Equal(t, netip.MustParseAddrPort("127.0.0.1:9999"), ap)

	require.NoError(t, apply(t, AddrPort(&ap), "[2001:db8::1]:8080"))
	assert.Equal(t, netip.MustParseAddrPort("[2001:db8::1]:8080"), ap)

	assert.Error(t, apply(t, AddrPort(&ap), "127.0.0.1"), "missing port")
}

// authMode is a closed-set type exercising the Text integration point.
type authMode string

func (m *authMode) UnmarshalText(text []byte) error {
	switch s := string(text); s {
	case "api-key", "basic-auth", "bearer-token":
		*m = authMode(s)
		return nil
	default:
		return fmt.Errorf("unknown auth mode %q", s)
	}
}

func TestText(t *testing.T) {
	mode := authMode("api-key")

	require.NoError(t, apply(t, Text(&mode), "bearer-token"))
	assert.Equal(t, authMode("bearer-token"), mode)

	assert.Error(t, apply(t, Text(&mode), "oauth2"))
	assert.Equal(t, authMode("bearer-token"), mode)
}

func TestFunc(t *testing.T) {
	type port struct{ n int }

	p := port{n: 80}
	parse := func(raw string) (port, error) {
		var v port
		_, err := fmt.Sscanf(raw, "port=%d", &v.n)
		return v, err
	}

	require.NoError(t, apply(t, Func(&p, parse), "port=8080"))
	assert.Equal(t, 8080, p.n)

	assert.Error(t, apply(t, Func(&p, parse), "8080"))
	assert.Equal(t, 8080, p.n)
}

func TestYAML_Sequences(t *testing.T) {
	v := []int{9, 9}

	require.NoError(t, apply(t, YAML(&v), "[1, 2, 3]"))
	assert.Equal(t, []int{1, 2, 3}, v)

	require.NoError(t, apply(t, YAML(&v), "[]"))
	assert.Empty(t, v)

	assert.Error(t, apply(t, YAML(&v), "not a list"))
	assert.Error(t, apply(t, YAML(&v), "[a, b]"), "element type mismatch")
}

func TestYAML_Maps(t *testing.T) {
	m := map[string]uint32{"keep": 1}

	require.NoError(t, apply(t, YAML(&m), "{a: 1, b: 2}"))
	assert.Equal(t, map[string]uint32{"a": 1, "b": 2}, m)

	assert.Error(t, apply(t, YAML(&m), "[1, 2]"), "sequence into map")
	assert.Equal(t, map[string]uint32{"a": 1, "b": 2}, m, "failed parse must not mutate the target")
}

func TestYAML_Optional(t *testing.T) {
	s := "gomi"
	p := &s

	require.NoError(t, apply(t, YAML(&p), "Hage"))
	require.NotNil(t, p)
	assert.Equal(t, "Hage", *p)

	// YAML null clears the optional, mirroring "~" semantics.
	require.NoError(t, apply(t, YAML(&p), "~"))
	assert.Nil(t, p)
}

func TestYAML_FixedArray(t *testing.T) {
	pair := [2]int{1, 2}

	require.NoError(t, apply(t, YAML(&pair), "[9, 8]"))
	assert.Equal(t, [2]int{9, 8}, pair)
}
