// Copyright (c) 2025 SciGo HDF5 Library Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.

package memds

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/scigolib/ncinfo"
)

// Document is the YAML form of a dataset:
//
//	dimensions:
//	  - name: time
//	    length: 3
//	    unlimited: true
//	variables:
//	  - name: time
//	    type: int
//	    dimensions: [time]
//	    data: [10, 20, 30]
//	    attributes:
//	      - name: units
//	        type: char
//	        value: days since 2000-01-01
//	attributes:
//	  - name: version
//	    type: int
//	    value: 1
//
// Types use CDL names (byte, char, short, int, int64, float, double, ubyte,
// ushort, uint, uint64, string).
type Document struct {
	Dimensions []DimensionSpec `yaml:"dimensions"`
	Variables  []VariableSpec  `yaml:"variables"`
	Attributes []AttributeSpec `yaml:"attributes"`
}

// DimensionSpec describes one dimension.
type DimensionSpec struct {
	Name      string `yaml:"name"`
	Length    uint64 `yaml:"length"`
	Unlimited bool   `yaml:"unlimited"`
}

// VariableSpec describes one variable.
type VariableSpec struct {
	Name       string          `yaml:"name"`
	Type       string          `yaml:"type"`
	Dimensions []string        `yaml:"dimensions"`
	Data       yaml.Node       `yaml:"data"`
	Attributes []AttributeSpec `yaml:"attributes"`
}

// AttributeSpec describes one attribute. Value is a scalar or a sequence.
type AttributeSpec struct {
	Name  string    `yaml:"name"`
	Type  string    `yaml:"type"`
	Value yaml.Node `yaml:"value"`
}

var cdlTypes = map[string]ncinfo.NCType{
	"byte":   ncinfo.NCByte,
	"char":   ncinfo.NCChar,
	"short":  ncinfo.NCShort,
	"int":    ncinfo.NCInt,
	"int64":  ncinfo.NCInt64,
	"float":  ncinfo.NCFloat,
	"double": ncinfo.NCDouble,
	"ubyte":  ncinfo.NCUByte,
	"ushort": ncinfo.NCUShort,
	"uint":   ncinfo.NCUInt,
	"uint64": ncinfo.NCUInt64,
	"string": ncinfo.NCString,
}

// Open loads a dataset from a YAML file.
func Open(path string) (*Dataset, error) {
	//nolint:gosec // G304: User-provided path is intentional for a dataset inspector
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

// Load decodes a YAML document into a dataset.
func Load(r io.Reader) (*Dataset, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding dataset descriptor: %w", err)
	}
	return Build(doc)
}

// Build creates a dataset from a decoded document.
func Build(doc Document) (*Dataset, error) {
	d := New()

	for _, spec := range doc.Dimensions {
		if spec.Name == "" {
			return nil, fmt.Errorf("dimension without a name")
		}
		if d.dimensionID(spec.Name) >= 0 {
			return nil, fmt.Errorf("dimension %q declared twice", spec.Name)
		}
		id := d.AddDimension(spec.Name, spec.Length)
		if spec.Unlimited {
			if d.unlimited >= 0 {
				return nil, fmt.Errorf("dimension %q: only one unlimited dimension is allowed", spec.Name)
			}
			d.unlimited = id
		}
	}

	for _, spec := range doc.Variables {
		t, err := parseType(spec.Type)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", spec.Name, err)
		}
		data, _, err := decodeValues(&spec.Data, t)
		if err != nil {
			return nil, fmt.Errorf("variable %q: data: %w", spec.Name, err)
		}
		attrs, err := buildAttrs(spec.Attributes)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", spec.Name, err)
		}
		if _, err := d.VariableID(spec.Name); err == nil {
			return nil, fmt.Errorf("variable %q declared twice", spec.Name)
		}
		if _, err := d.AddVariable(Var{
			Name:  spec.Name,
			Type:  t,
			Dims:  spec.Dimensions,
			Data:  data,
			Attrs: attrs,
		}); err != nil {
			return nil, err
		}
	}

	globals, err := buildAttrs(doc.Attributes)
	if err != nil {
		return nil, fmt.Errorf("global %w", err)
	}
	for _, a := range globals {
		d.AddGlobal(a)
	}

	return d, nil
}

func buildAttrs(specs []AttributeSpec) ([]Attr, error) {
	attrs := make([]Attr, 0, len(specs))
	for _, spec := range specs {
		t, err := parseType(spec.Type)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", spec.Name, err)
		}
		values, count, err := decodeValues(&spec.Value, t)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", spec.Name, err)
		}
		attrs = append(attrs, Attr{Name: spec.Name, Type: t, Values: values, Count: count})
	}
	return attrs, nil
}

func parseType(name string) (ncinfo.NCType, error) {
	t, ok := cdlTypes[name]
	if !ok {
		return ncinfo.NCNat, fmt.Errorf("unknown type %q", name)
	}
	return t, nil
}

// decodeValues decodes node as values of type t. For types the renderer does
// not decode only the element count is kept.
func decodeValues(node *yaml.Node, t ncinfo.NCType) (ncinfo.Values, int, error) {
	tag := ncinfo.TagOf(t)
	if node.Kind == 0 {
		return ncinfo.Values{Tag: tag}, 0, nil
	}

	var err error
	v := ncinfo.Values{Tag: tag}
	switch tag {
	case ncinfo.Char:
		var s string
		err = node.Decode(&s)
		v.Text = []byte(s)
	case ncinfo.Byte:
		v.Bytes, err = decodeSeq[int8](node)
	case ncinfo.Short:
		v.Shorts, err = decodeSeq[int16](node)
	case ncinfo.Int:
		v.Ints, err = decodeSeq[int32](node)
	case ncinfo.Long:
		v.Longs, err = decodeSeq[int64](node)
	case ncinfo.Float:
		v.Floats, err = decodeSeq[float32](node)
	case ncinfo.Double:
		v.Doubles, err = decodeSeq[float64](node)
	default:
		if node.Kind == yaml.SequenceNode {
			return v, len(node.Content), nil
		}
		return v, 1, nil
	}
	if err != nil {
		return ncinfo.Values{}, 0, err
	}
	return v, v.Len(), nil
}

func decodeSeq[T any](node *yaml.Node) ([]T, error) {
	if node.Kind == yaml.ScalarNode {
		var v T
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return []T{v}, nil
	}
	var vs []T
	if err := node.Decode(&vs); err != nil {
		return nil, err
	}
	return vs, nil
}
