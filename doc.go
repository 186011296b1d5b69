// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package econf overlays environment variables onto an already-constructed
// configuration value.
//
// Each record type describes its fields through the [Loadable] interface,
// usually via a method generated by the econfgen tool (see cmd/econfgen).
// Given a prefix, [Load] derives one environment variable name per field
// (uppercase segments joined with underscores), looks it up, parses the raw
// string according to the field's type, and replaces the field's value on
// success. Nested record fields are resolved recursively with the path
// extended by their segment.
//
//	type Config struct {
//		Verbose bool
//		Workers uint64
//	}
//
//	func (c *Config) EnvFields() []econf.Field {
//		return []econf.Field{
//			{Name: "verbose", Value: econf.Bool(&c.Verbose)},
//			{Name: "workers", Value: econf.Uint(&c.Workers)},
//		}
//	}
//
//	cfg := Config{Verbose: true, Workers: 42}
//	econf.Load(&cfg, "APP") // APP_VERBOSE, APP_WORKERS
//
// Loading is best-effort and never fails: a variable that is absent or
// cannot be parsed leaves the field's current value in place. Anomalies
// (unparsable values, two field paths deriving the same variable name) are
// reported as structured warnings through a zerolog logger and are
// retrievable from a [Loader] instance.
package econf
