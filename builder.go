// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package econf

import (
	"fmt"

	"dario.cat/mergo"
)

// Builder assembles a configuration from explicit layers and an optional
// environment overlay. Layers are merged in the order they were added, a
// later layer overriding the non-zero fields of earlier ones; the
// environment overlay is applied last and therefore wins.
//
//	cfg := new(Config)
//	err := econf.NewBuilder[*Config]().
//		WithLayer(defaults()).
//		WithLayer(fromFlags()).
//		WithEnv("APP").
//		Build(cfg)
type Builder[T Loadable] struct {
	layers []T
	prefix string
	opts   []Option
}

// NewBuilder creates an empty Builder for the record type T (a pointer type
// implementing [Loadable]).
func NewBuilder[T Loadable]() *Builder[T] {
	return &Builder[T]{}
}

// WithLayer appends a configuration layer. Its non-zero fields override the
// same fields of all previously added layers.
func (b *Builder[T]) WithLayer(layer T) *Builder[T] {
	b.layers = append(b.layers, layer)
	return b
}

// WithEnv enables the environment overlay applied after all layers, using
// prefix and the given loader options.
func (b *Builder[T]) WithEnv(prefix string, opts ...Option) *Builder[T] {
	b.prefix = prefix
	b.opts = opts
	return b
}

// Build merges the layers into dst and then applies the environment
// overlay, if one was requested. dst should point at a zero value; fields
// it already carries are treated as the lowest-priority layer.
func (b *Builder[T]) Build(dst T) error {
	for _, layer := range b.layers {
		if err := mergo.Merge(dst, layer, mergo.WithOverride); err != nil {
			return fmt.Errorf("error merging config layers: %w", err)
		}
	}

	if b.prefix != "" {
		Load(dst, b.prefix, b.opts...)
	}

	return nil
}
