// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package econf

import (
	"os"
	"slices"
	"strings"

	"github.com/rs/zerolog"
)

// Loader performs one environment overlay pass over a record tree and
// accumulates the diagnostics of that pass. A Loader holds no state shared
// with other Loaders, so independent configuration trees may be loaded
// concurrently, each with its own instance.
type Loader struct {
	log    zerolog.Logger
	lookup func(name string) (string, bool)

	// seen maps every derived key that a leaf field looked up to the
	// distinct dotted paths that produced it; seenKeys preserves first-seen
	// order so collision warnings come out deterministically.
	seen     map[string][]string
	seenKeys []string
	warnings []Warning
}

// Option adjusts how a [Loader] observes its environment and reports
// diagnostics.
type Option func(*Loader)

// WithLogger replaces the default stderr logger. Pass zerolog.Nop() to
// silence the loader entirely.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Loader) {
		l.log = log
	}
}

// WithLookup replaces os.LookupEnv as the key-value source, e.g. with a map
// lookup in tests or an alternative namespace when embedding.
func WithLookup(lookup func(name string) (string, bool)) Option {
	return func(l *Loader) {
		l.lookup = lookup
	}
}

// NewLoader constructs a Loader. Without options it reads the process
// environment and logs to stderr with timestamps.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		log:    zerolog.New(os.Stderr).With().Timestamp().Logger(),
		lookup: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load overrides fields of v from environment variables prefixed with
// prefix. It is best-effort: fields whose variable is absent or unparsable
// keep their current value, and the pass itself never fails. All anomalies
// are logged; use a [Loader] instance to inspect them afterwards.
func Load(v Loadable, prefix string, opts ...Option) {
	NewLoader(opts...).Load(v, prefix)
}

// Load runs one overlay pass. Calling Load again on the same Loader starts
// a fresh pass; warnings and collision state from the previous pass are
// discarded.
func (l *Loader) Load(v Loadable, prefix string) {
	l.seen = make(map[string][]string)
	l.seenKeys = nil
	l.warnings = nil

	l.resolve(v, prefix, nil)
	l.reportCollisions()
}

// Warnings returns the diagnostics of the most recent Load pass in the
// order they were produced: ParseFailure warnings in depth-first field
// order, followed by one KeyCollision warning per ambiguous key in
// first-seen key order.
func (l *Loader) Warnings() []Warning {
	return slices.Clone(l.warnings)
}

// resolve walks one record's fields in declaration order. Leaf fields look
// up their derived key and parse; nested records recurse with the path
// extended by their segment.
func (l *Loader) resolve(rec Loadable, prefix string, path []string) {
	for _, f := range rec.EnvFields() {
		if f.Skip {
			continue
		}

		segment := f.Name
		if f.Rename != "" {
			segment = f.Rename
		}
		// Full-slice append so sibling iterations cannot share backing
		// storage with this child path.
		childPath := append(path[:len(path):len(path)], segment)

		switch v := f.Value.(type) {
		case *leaf:
			l.resolveLeaf(v, prefix, childPath)
		case nested:
			l.resolve(v.rec, prefix, childPath)
		}
	}
}

// resolveLeaf performs the environment lookup and coercion for one leaf
// field and records its key for collision tracking.
func (l *Loader) resolveLeaf(v *leaf, prefix string, path []string) {
	key := Key(prefix, path...)
	l.track(key, strings.Join(path, "."))

	raw, ok := l.lookup(key)
	if !ok {
		l.log.Debug().Str("key", key).Msg("econf: not set")
		return
	}

	if err := v.apply(raw); err != nil {
		l.warnings = append(l.warnings, Warning{
			Kind: ParseFailure,
			Key:  key,
			Raw:  raw,
			Type: v.typ,
			Err:  err,
		})
		l.log.Warn().
			Str("key", key).
			Str("value", raw).
			Str("type", v.typ).
			Err(err).
			Msg("econf: cannot parse value, keeping current")

		return
	}

	l.log.Debug().Str("key", key).Str("value", raw).Msg("econf: override applied")
}

// track records that a leaf at the given dotted path looked up key.
// Repeated visits of the same path (same key) are not duplicates.
func (l *Loader) track(key, path string) {
	paths := l.seen[key]
	if slices.Contains(paths, path) {
		return
	}
	if len(paths) == 0 {
		l.seenKeys = append(l.seenKeys, key)
	}
	l.seen[key] = append(paths, path)
}

// reportCollisions emits one KeyCollision warning for every key that more
// than one distinct path derived during the pass. Resolution already
// happened for each path independently; the warning is purely diagnostic.
func (l *Loader) reportCollisions() {
	for _, key := range l.seenKeys {
		paths := l.seen[key]
		if len(paths) < 2 {
			continue
		}

		l.warnings = append(l.warnings, Warning{
			Kind:  KeyCollision,
			Key:   key,
			Paths: slices.Clone(paths),
		})
		l.log.Warn().
			Str("key", key).
			Strs("paths", paths).
			Msg("econf: key is ambiguous, value applied to all paths")
	}
}
