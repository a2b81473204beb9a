// Copyright (c) 2025 SciGo HDF5 Library Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.

// Package h5nc reads netCDF-4 files through the pure Go HDF5 reader.
//
// Only the root group is inspected. Dimension scales become dimensions,
// other datasets become variables, and the bookkeeping attributes the
// netCDF library adds are hidden. Element reads are limited to what
// hdf5.Dataset.ReadSlice converts (int32, int64, float32, float64) plus
// fixed-size strings for char variables.
package h5nc

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/scigolib/hdf5"

	"github.com/scigolib/ncinfo"
)

// Option configures Open.
type Option func(*options)

type options struct {
	log zerolog.Logger
}

// WithLogger sets the logger used while the catalog is built.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// Dataset is an open netCDF-4 file.
type Dataset struct {
	file *hdf5.File
	cat  *catalog
}

// Open opens a netCDF-4 file and builds its catalog.
//
// Example:
//
//	ds, err := h5nc.Open("ocean.nc")
//	if err != nil {
//	    return err
//	}
//	defer ds.Close()
func Open(filename string, opts ...Option) (*Dataset, error) {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	f, err := hdf5.Open(filename)
	if err != nil {
		return nil, err
	}
	o.log.Debug().
		Str("file", filename).
		Uint8("superblock", f.SuperblockVersion()).
		Msg("opened HDF5 container")

	return &Dataset{file: f, cat: buildCatalog(f.Root(), o.log)}, nil
}

// Close releases the underlying file.
func (d *Dataset) Close() error {
	return d.file.Close()
}

// Summary implements ncinfo.Dataset.
func (d *Dataset) Summary() (ncinfo.Summary, error) {
	if d.cat.globalErr != nil {
		return ncinfo.Summary{}, d.cat.globalErr
	}
	return ncinfo.Summary{
		NDims:        len(d.cat.dims),
		NVars:        len(d.cat.vars),
		NGlobalAttrs: len(d.cat.globals),
		UnlimitedDim: -1,
	}, nil
}

// Dimension implements ncinfo.Dataset.
func (d *Dataset) Dimension(id int) (ncinfo.Dimension, error) {
	if id < 0 || id >= len(d.cat.dims) {
		return ncinfo.Dimension{}, ncinfo.ErrBadDim
	}
	dim := d.cat.dims[id]
	if dim.err != nil {
		return ncinfo.Dimension{}, dim.err
	}
	return dim.Dimension, nil
}

// VariableID implements ncinfo.Dataset.
func (d *Dataset) VariableID(name string) (int, error) {
	for i, v := range d.cat.vars {
		if v.name == name {
			return i, nil
		}
	}
	return 0, ncinfo.ErrNotVar
}

// Variable implements ncinfo.Dataset.
func (d *Dataset) Variable(id int) (ncinfo.Variable, error) {
	v, err := d.variable(id)
	if err != nil {
		return ncinfo.Variable{}, err
	}
	return ncinfo.Variable{
		Name:   v.name,
		Type:   v.typ,
		DimIDs: append([]int(nil), v.dimIDs...),
		NAttrs: len(v.attrs),
	}, nil
}

func (d *Dataset) variable(id int) (variable, error) {
	if id < 0 || id >= len(d.cat.vars) {
		return variable{}, ncinfo.ErrNotVar
	}
	v := d.cat.vars[id]
	if v.err != nil {
		return variable{}, v.err
	}
	return v, nil
}

func (d *Dataset) attrs(varID int) ([]attribute, error) {
	if varID == ncinfo.Global {
		return d.cat.globals, nil
	}
	v, err := d.variable(varID)
	if err != nil {
		return nil, err
	}
	return v.attrs, nil
}

func (d *Dataset) attr(varID int, name string) (attribute, error) {
	attrs, err := d.attrs(varID)
	if err != nil {
		return attribute{}, err
	}
	for _, a := range attrs {
		if a.raw.name == name {
			return a, nil
		}
	}
	return attribute{}, ncinfo.ErrNotAtt
}

// AttributeName implements ncinfo.Dataset.
func (d *Dataset) AttributeName(varID, index int) (string, error) {
	attrs, err := d.attrs(varID)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(attrs) {
		return "", ncinfo.ErrNotAtt
	}
	return attrs[index].raw.name, nil
}

// Attribute implements ncinfo.Dataset.
func (d *Dataset) Attribute(varID int, name string) (ncinfo.Attribute, error) {
	a, err := d.attr(varID, name)
	if err != nil {
		return ncinfo.Attribute{}, err
	}
	return ncinfo.Attribute{Type: a.typ, Len: a.length}, nil
}

// ReadAttribute implements ncinfo.Dataset.
func (d *Dataset) ReadAttribute(varID int, name string, tag ncinfo.TypeTag, length int) (ncinfo.Values, error) {
	a, err := d.attr(varID, name)
	if err != nil {
		return ncinfo.Values{}, err
	}
	v, err := a.decode()
	if err != nil {
		return ncinfo.Values{}, err
	}
	if v, err = v.Convert(tag); err != nil {
		return ncinfo.Values{}, err
	}
	if length < v.Len() {
		v = v.Slice(0, length)
	}
	return v, nil
}

// ReadElement implements ncinfo.Dataset.
func (d *Dataset) ReadElement(varID int, index uint64, tag ncinfo.TypeTag) (ncinfo.Values, error) {
	v, err := d.variable(varID)
	if err != nil {
		return ncinfo.Values{}, err
	}

	native := ncinfo.TagOf(v.typ)
	if native == ncinfo.Unsupported {
		return ncinfo.Values{}, ncinfo.ErrBadType
	}

	shape := v.layout.shape
	switch {
	case v.layout.null:
		return ncinfo.Values{}, ncinfo.ErrInvalidCoords
	case len(shape) > 1:
		return ncinfo.Values{}, fmt.Errorf("variable %q has %d dimensions, want 1", v.name, len(shape))
	case len(shape) == 1 && index >= shape[0]:
		return ncinfo.Values{}, ncinfo.ErrInvalidCoords
	case len(shape) == 0 && index > 0:
		return ncinfo.Values{}, ncinfo.ErrInvalidCoords
	}

	var value ncinfo.Values
	if native == ncinfo.Char {
		value, err = readText(v.ds, index)
	} else {
		value, err = readNumber(v.ds, shape, index, native)
	}
	if err != nil {
		return ncinfo.Values{}, err
	}
	return value.Convert(tag)
}

func readText(ds *hdf5.Dataset, index uint64) (ncinfo.Values, error) {
	strs, err := ds.ReadStrings()
	if err != nil {
		return ncinfo.Values{}, err
	}
	if index >= uint64(len(strs)) {
		return ncinfo.Values{}, ncinfo.ErrInvalidCoords
	}
	return ncinfo.TextValues(strs[index]), nil
}

// readNumber reads one element as float64 and narrows it back to its
// stored type. int64 values beyond 2^53 lose precision.
func readNumber(ds *hdf5.Dataset, shape []uint64, index uint64, native ncinfo.TypeTag) (ncinfo.Values, error) {
	var x float64
	if len(shape) == 0 {
		all, err := ds.Read()
		if err != nil {
			return ncinfo.Values{}, err
		}
		if len(all) == 0 {
			return ncinfo.Values{}, ncinfo.ErrInvalidCoords
		}
		x = all[0]
	} else {
		raw, err := ds.ReadSlice([]uint64{index}, []uint64{1})
		if err != nil {
			return ncinfo.Values{}, err
		}
		vals, ok := raw.([]float64)
		if !ok || len(vals) != 1 {
			return ncinfo.Values{}, fmt.Errorf("unexpected element read result %T", raw)
		}
		x = vals[0]
	}

	switch native {
	case ncinfo.Byte:
		return ncinfo.ByteValues(int8(x)), nil
	case ncinfo.Short:
		return ncinfo.ShortValues(int16(x)), nil
	case ncinfo.Int:
		return ncinfo.IntValues(int32(x)), nil
	case ncinfo.Long:
		return ncinfo.LongValues(int64(x)), nil
	case ncinfo.Float:
		return ncinfo.FloatValues(float32(x)), nil
	default:
		return ncinfo.DoubleValues(x), nil
	}
}

var _ ncinfo.Dataset = (*Dataset)(nil)
