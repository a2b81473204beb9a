// Copyright (c) 2025 SciGo HDF5 Library Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.

package h5nc

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/scigolib/hdf5"

	"github.com/scigolib/ncinfo"
)

// Attributes written by the netCDF-4 library to map its data model onto HDF5.
const (
	attrClass       = "CLASS"
	attrName        = "NAME"
	attrDimID       = "_Netcdf4Dimid"
	attrCoordinates = "_Netcdf4Coordinates"

	dimensionScale  = "DIMENSION_SCALE"
	dimensionOnly   = "This is a netCDF dimension but not a netCDF variable"
	phonyDimPattern = "phony_dim_%d"
)

var hiddenAttributes = map[string]bool{
	attrClass:            true,
	attrName:             true,
	attrDimID:            true,
	attrCoordinates:      true,
	"REFERENCE_LIST":     true,
	"DIMENSION_LIST":     true,
	"_nc3_strict":        true,
	"_NCProperties":      true,
	"_IsNetcdf4":         true,
	"_SuperblockVersion": true,
}

// entry is one HDF5 dataset of the root group.
type entry struct {
	name    string
	ds      *hdf5.Dataset
	layout  layout
	typ     ncinfo.NCType
	attrs   []attribute
	scale   bool
	dimOnly bool
	dimID   int // -1 when not stored.
	coords  []int
	err     error
}

// dimension is a resolved netCDF dimension.
type dimension struct {
	ncinfo.Dimension
	err error
}

// variable is a resolved netCDF variable.
type variable struct {
	*entry
	dimIDs []int
}

// catalog is the netCDF view of a file's root group.
type catalog struct {
	dims      []dimension
	vars      []variable
	globals   []attribute
	globalErr error
}

func buildCatalog(root *hdf5.Group, log zerolog.Logger) *catalog {
	c := &catalog{}

	var entries []*entry
	for _, child := range root.Children() {
		ds, ok := child.(*hdf5.Dataset)
		if !ok {
			log.Debug().Str("object", child.Name()).Msg("skipping non-dataset object")
			continue
		}
		e := loadEntry(ds)
		if e.err != nil {
			log.Warn().Err(e.err).Str("dataset", e.name).Msg("dataset descriptor unreadable")
		}
		entries = append(entries, e)
	}

	raws, err := root.Attributes()
	if err != nil {
		c.globalErr = fmt.Errorf("reading root group attributes: %w", err)
	} else {
		for _, a := range raws {
			raw := rawAttribute{name: a.Name, data: a.Data}
			if a.Datatype != nil {
				raw.class = uint8(a.Datatype.Class)
				raw.size = a.Datatype.Size
				raw.bitField = a.Datatype.ClassBitField
			}
			if a.Dataspace != nil {
				raw.shape = a.Dataspace.Dimensions
				raw.null = a.Dataspace.Type == dataspaceNull
			}
			if !hiddenAttributes[raw.name] {
				c.globals = append(c.globals, newAttribute(raw))
			}
		}
	}

	c.resolveDimensions(entries)
	c.resolveVariables(entries)

	log.Debug().
		Int("dimensions", len(c.dims)).
		Int("variables", len(c.vars)).
		Int("globals", len(c.globals)).
		Msg("catalog built")
	return c
}

func loadEntry(ds *hdf5.Dataset) *entry {
	e := &entry{name: path.Base(ds.Name()), ds: ds, dimID: -1}

	info, err := ds.Info()
	if err != nil {
		e.err = fmt.Errorf("reading dataset header: %w", err)
		return e
	}
	if e.layout, err = parseInfo(info); err != nil {
		e.err = err
		return e
	}
	e.typ = e.layout.ncType()

	raws, err := ds.Attributes()
	if err != nil {
		e.err = fmt.Errorf("reading dataset attributes: %w", err)
		return e
	}
	for _, a := range raws {
		raw := rawAttribute{name: a.Name, data: a.Data}
		if a.Datatype != nil {
			raw.class = uint8(a.Datatype.Class)
			raw.size = a.Datatype.Size
			raw.bitField = a.Datatype.ClassBitField
		}
		if a.Dataspace != nil {
			raw.shape = a.Dataspace.Dimensions
			raw.null = a.Dataspace.Type == dataspaceNull
		}
		attr := newAttribute(raw)

		switch raw.name {
		case attrClass:
			e.scale = attr.text() == dimensionScale
		case attrName:
			e.dimOnly = strings.HasPrefix(attr.text(), dimensionOnly)
		case attrDimID:
			if ids := attr.ints(); len(ids) == 1 {
				e.dimID = ids[0]
			}
		case attrCoordinates:
			e.coords = attr.ints()
		}
		if !hiddenAttributes[raw.name] {
			e.attrs = append(e.attrs, attr)
		}
	}

	// A dimension scale that is not a coordinate variable has no user data.
	e.dimOnly = e.dimOnly && e.scale
	return e
}

// resolveDimensions orders the dimension scales by stored id, followed by
// scales without one in file order.
func (c *catalog) resolveDimensions(entries []*entry) {
	var scales []*entry
	for _, e := range entries {
		if e.err == nil && e.scale {
			scales = append(scales, e)
		}
	}
	sort.SliceStable(scales, func(i, j int) bool {
		a, b := scales[i].dimID, scales[j].dimID
		if a < 0 || b < 0 {
			return a >= 0 && b < 0
		}
		return a < b
	})

	for _, e := range scales {
		d := dimension{Dimension: ncinfo.Dimension{Name: e.name}}
		switch {
		case e.layout.null:
		case len(e.layout.shape) == 1:
			d.Len = e.layout.shape[0]
		default:
			d.err = fmt.Errorf("dimension scale %q is not one-dimensional", e.name)
		}
		c.dims = append(c.dims, d)
	}
}

func (c *catalog) resolveVariables(entries []*entry) {
	byDimID := make(map[int]int)
	byName := make(map[string]int)
	for i, d := range c.dims {
		byName[d.Name] = i
	}
	for _, e := range entries {
		if e.err == nil && e.scale && e.dimID >= 0 {
			byDimID[e.dimID] = byName[e.name]
		}
	}
	phony := make(map[uint64]int)

	for _, e := range entries {
		if e.dimOnly {
			continue
		}
		v := variable{entry: e}
		if e.err == nil {
			v.dimIDs = c.axes(e, byDimID, byName, phony)
		}
		c.vars = append(c.vars, v)
	}
}

// axes maps each axis of a variable to a dimension id. Stored coordinates
// win, then a scale's own dimension, then the first dimension of equal
// length. Unmatched axes share a phony dimension per length.
func (c *catalog) axes(e *entry, byDimID map[int]int, byName map[string]int, phony map[uint64]int) []int {
	shape := e.layout.shape
	if len(e.coords) == len(shape) {
		ids := make([]int, len(shape))
		ok := true
		for i, id := range e.coords {
			if ids[i], ok = byDimID[id]; !ok {
				break
			}
		}
		if ok {
			return ids
		}
	}

	ids := make([]int, len(shape))
	for i, n := range shape {
		if i == 0 && e.scale && len(shape) == 1 {
			ids[i] = byName[e.name]
			continue
		}
		ids[i] = -1
		for j, d := range c.dims {
			if d.err == nil && d.Len == n {
				ids[i] = j
				break
			}
		}
		if ids[i] >= 0 {
			continue
		}
		id, ok := phony[n]
		if !ok {
			id = len(c.dims)
			c.dims = append(c.dims, dimension{Dimension: ncinfo.Dimension{
				Name: fmt.Sprintf(phonyDimPattern, len(phony)),
				Len:  n,
			}})
			phony[n] = id
		}
		ids[i] = id
	}
	return ids
}
