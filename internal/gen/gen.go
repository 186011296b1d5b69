// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package gen generates econf.Loadable implementations for struct types.
//
// For every requested struct type the generator emits an EnvFields method
// listing one descriptor per field in declaration order. Field behavior is
// controlled with the `econf` struct tag:
//
//	econf:"skip"        exclude the field from loading
//	econf:"rename=X"    use X instead of the field name as the key segment
//	econf:"text"        parse via the field's UnmarshalText method
//	econf:"yaml"        parse the value as a YAML document
//	econf:"nested"      treat the field as a nested record
//
// Without a tag the constructor is chosen from the field's type: primitives
// map to their typed constructors, time.Duration, netip.Addr and
// netip.AddrPort to theirs, containers (slices, arrays, maps, pointers) to
// YAML, struct types declared in the same package to nested records, and
// any other named type to UnmarshalText.
package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"strings"
)

// econfImport is the import path written into generated files.
const econfImport = "github.com/MKhiriev/econf"

// Errors reported for inputs the generator cannot work with.
var (
	// ErrNoGoFiles means the target directory contains no buildable Go files.
	ErrNoGoFiles = errors.New("no Go files in directory")
	// ErrTypeNotFound means a requested type is not declared in the package.
	ErrTypeNotFound = errors.New("type not found")
	// ErrNotStruct means a requested type is declared but is not a struct.
	ErrNotStruct = errors.New("type is not a struct")
	// ErrEmbeddedField means a requested struct has an embedded field,
	// which has no field name to derive a key segment from.
	ErrEmbeddedField = errors.New("embedded fields are not supported")
)

// Config describes one generation run.
type Config struct {
	// Dir is the package directory to scan.
	Dir string
	// Types lists the struct type names to generate EnvFields methods for,
	// emitted in the given order.
	Types []string
}

// Generate produces the gofmt-formatted source of a file implementing
// econf.Loadable for every type in cfg.Types.
func Generate(cfg Config) ([]byte, error) {
	pkgName, structs, err := parseDir(cfg.Dir)
	if err != nil {
		return nil, err
	}

	// known marks which locally declared type names are structs; named
	// non-struct types fall back to the UnmarshalText path.
	known := make(map[string]bool, len(structs))
	for name, st := range structs {
		known[name] = st != nil
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by econfgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkgName)
	fmt.Fprintf(&buf, "import %q\n", econfImport)

	for _, typeName := range cfg.Types {
		st, ok := structs[typeName]
		if !ok {
			return nil, fmt.Errorf("%w: %s in %s", ErrTypeNotFound, typeName, cfg.Dir)
		}
		if st == nil {
			return nil, fmt.Errorf("%w: %s", ErrNotStruct, typeName)
		}
		if err := emitMethod(&buf, typeName, st, known); err != nil {
			return nil, fmt.Errorf("generating %s: %w", typeName, err)
		}
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w", err)
	}

	return src, nil
}

// parseDir parses the non-test Go files of dir and indexes its type
// declarations: struct types map to their *ast.StructType, any other named
// type maps to nil.
func parseDir(dir string) (string, map[string]*ast.StructType, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", nil, fmt.Errorf("reading directory: %w", err)
	}

	fset := token.NewFileSet()
	pkgName := ""
	structs := make(map[string]*ast.StructType)

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}

		file, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.SkipObjectResolution)
		if err != nil {
			return "", nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		if pkgName == "" {
			pkgName = file.Name.Name
		}
		if file.Name.Name != pkgName {
			continue // ignore a second package (e.g. main) sharing the directory
		}

		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				st, _ := ts.Type.(*ast.StructType)
				structs[ts.Name.Name] = st
			}
		}
	}

	if pkgName == "" {
		return "", nil, fmt.Errorf("%w: %s", ErrNoGoFiles, dir)
	}

	return pkgName, structs, nil
}

// emitMethod writes the EnvFields method for one struct type.
func emitMethod(buf *bytes.Buffer, typeName string, st *ast.StructType, known map[string]bool) error {
	recv := receiverName(typeName)

	fmt.Fprintf(buf, "\n// EnvFields implements econf.Loadable for %s.\n", typeName)
	fmt.Fprintf(buf, "func (%s *%s) EnvFields() []econf.Field {\n", recv, typeName)
	fmt.Fprintf(buf, "\treturn []econf.Field{\n")

	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			return fmt.Errorf("%w: %s", ErrEmbeddedField, typeName)
		}

		tag, err := parseTag(field)
		if err != nil {
			return err
		}

		for _, name := range field.Names {
			if err := emitDescriptor(buf, recv, name.Name, field.Type, tag, known); err != nil {
				return err
			}
		}
	}

	fmt.Fprintf(buf, "\t}\n}\n")

	return nil
}

// emitDescriptor writes one econf.Field literal.
func emitDescriptor(buf *bytes.Buffer, recv, name string, typ ast.Expr, tag tagInfo, known map[string]bool) error {
	if tag.skip {
		fmt.Fprintf(buf, "\t\t{Name: %q, Skip: true},\n", name)
		return nil
	}

	value, err := valueExpr(recv, name, typ, tag.kind, known)
	if err != nil {
		return fmt.Errorf("field %s: %w", name, err)
	}

	if tag.rename != "" {
		fmt.Fprintf(buf, "\t\t{Name: %q, Rename: %q, Value: %s},\n", name, tag.rename, value)
		return nil
	}
	fmt.Fprintf(buf, "\t\t{Name: %q, Value: %s},\n", name, value)

	return nil
}

// tagInfo is the parsed `econf` struct tag of one field.
type tagInfo struct {
	skip   bool
	rename string
	kind   string // "", "text", "yaml" or "nested"
}

func parseTag(field *ast.Field) (tagInfo, error) {
	var info tagInfo
	if field.Tag == nil {
		return info, nil
	}

	value, ok := reflect.StructTag(strings.Trim(field.Tag.Value, "`")).Lookup("econf")
	if !ok {
		return info, nil
	}

	for _, part := range strings.Split(value, ",") {
		switch {
		case part == "":
		case part == "skip":
			info.skip = true
		case part == "text", part == "yaml", part == "nested":
			info.kind = part
		case strings.HasPrefix(part, "rename="):
			info.rename = strings.TrimPrefix(part, "rename=")
		default:
			return info, fmt.Errorf("unknown econf tag directive %q", part)
		}
	}

	return info, nil
}

// leafCtors maps predeclared type names to their econf constructors.
var leafCtors = map[string]string{
	"bool":   "Bool",
	"string": "String",
	"rune":   "Rune",

	"int":   "Int",
	"int8":  "Int",
	"int16": "Int",
	"int32": "Int",
	"int64": "Int",

	"uint":    "Uint",
	"uint8":   "Uint",
	"uint16":  "Uint",
	"uint32":  "Uint",
	"uint64":  "Uint",
	"uintptr": "Uint",
	"byte":    "Uint",

	"float32": "Float",
	"float64": "Float",
}

// selectorCtors maps qualified type names with dedicated constructors.
var selectorCtors = map[string]string{
	"time.Duration":  "Duration",
	"netip.Addr":     "Addr",
	"netip.AddrPort": "AddrPort",
}

// valueExpr renders the econf.Value constructor call for a field of the
// given AST type, honoring a forced kind from the struct tag.
func valueExpr(recv, name string, typ ast.Expr, forced string, known map[string]bool) (string, error) {
	target := fmt.Sprintf("&%s.%s", recv, name)

	switch forced {
	case "text":
		return fmt.Sprintf("econf.Text(%s)", target), nil
	case "yaml":
		return fmt.Sprintf("econf.YAML(%s)", target), nil
	case "nested":
		return fmt.Sprintf("econf.Struct(%s)", target), nil
	}

	switch t := typ.(type) {
	case *ast.Ident:
		if ctor, ok := leafCtors[t.Name]; ok {
			return fmt.Sprintf("econf.%s(%s)", ctor, target), nil
		}
		if known[t.Name] {
			return fmt.Sprintf("econf.Struct(%s)", target), nil
		}
		// Named non-struct type: assume it carries its own textual syntax.
		return fmt.Sprintf("econf.Text(%s)", target), nil

	case *ast.SelectorExpr:
		if pkg, ok := t.X.(*ast.Ident); ok {
			if ctor, ok := selectorCtors[pkg.Name+"."+t.Sel.Name]; ok {
				return fmt.Sprintf("econf.%s(%s)", ctor, target), nil
			}
		}
		// Types from other packages are opaque here; YAML handles both
		// containers and exported struct shapes.
		return fmt.Sprintf("econf.YAML(%s)", target), nil

	case *ast.ArrayType, *ast.MapType, *ast.StarExpr:
		return fmt.Sprintf("econf.YAML(%s)", target), nil

	default:
		return "", fmt.Errorf("unsupported field type %T", typ)
	}
}

// receiverName picks a short receiver identifier from the type name.
func receiverName(typeName string) string {
	for _, r := range typeName {
		return strings.ToLower(string(r))
	}

	return "v"
}
