// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// econfgen generates econf.Loadable implementations for struct types.
//
// It is meant to be driven by go:generate next to the configuration types:
//
//	//go:generate econfgen --type Config,Server
//
// For each named type econfgen emits an EnvFields method describing the
// type's fields, honoring `econf:"skip"` and `econf:"rename=NAME"` tags.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/econf/internal/gen"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "econfgen: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		types  []string
		output string
	)

	rootCmd := &cobra.Command{
		Use:   "econfgen [directory]",
		Short: "Generate econf.Loadable implementations for struct types",
		Long: `econfgen scans a Go package directory and, for every requested struct
type, generates an EnvFields method so the type can be loaded from
environment variables with econf.Load.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			src, err := gen.Generate(gen.Config{Dir: dir, Types: types})
			if err != nil {
				return err
			}

			if output == "" {
				output = filepath.Join(dir, "econf_gen.go")
			}
			if err := os.WriteFile(output, src, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}

			return nil
		},
	}

	rootCmd.Flags().StringSliceVarP(&types, "type", "t", nil, "comma-separated struct type names to generate for")
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <directory>/econf_gen.go)")
	_ = rootCmd.MarkFlagRequired("type")

	return rootCmd
}
