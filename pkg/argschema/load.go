// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argschema

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadTOML reads a document whose top level table is the root node.
// Unknown keys are an error.
func LoadTOML(r io.Reader) (*Schema, error) {
	var root Node
	md, err := toml.NewDecoder(r).Decode(&root)
	if err != nil {
		return nil, fmt.Errorf("argschema: failed to parse TOML: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("argschema: unknown TOML keys: %s", strings.Join(keys, ", "))
	}
	return New(&root)
}

// LoadYAML reads a document whose top level mapping is the root node.
// Unknown fields are an error.
func LoadYAML(r io.Reader) (*Schema, error) {
	var root Node
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errNoRoot
		}
		return nil, fmt.Errorf("argschema: failed to parse YAML: %w", err)
	}
	return New(&root)
}

// LoadFile loads the document at path, picking the format from the file
// extension: .toml, .yaml, .yml or .hcl.
func LoadFile(path string) (*Schema, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml", ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if ext == ".toml" {
			return LoadTOML(f)
		}
		return LoadYAML(f)
	case ".hcl":
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return LoadHCL(src, path)
	default:
		return nil, fmt.Errorf("argschema: unsupported schema format %q", ext)
	}
}
