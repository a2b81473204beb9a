// Package memds provides an in-memory ncinfo.Dataset.
//
// Datasets are built with the Add* methods or loaded from a YAML descriptor
// (see Load). Reads convert values the way the netCDF library does.
package memds

import (
	"fmt"

	"github.com/scigolib/ncinfo"
	"github.com/scigolib/ncinfo/internal/utils"
)

// Attr is a named attribute.
type Attr struct {
	Name   string
	Type   ncinfo.NCType // Zero means the type of Values.
	Values ncinfo.Values
	Count  int // Element count for types without decoded values.
}

func (a Attr) declared() ncinfo.NCType {
	if a.Type != ncinfo.NCNat {
		return a.Type
	}
	return a.Values.Tag.NCType()
}

func (a Attr) length() int {
	if ncinfo.TagOf(a.declared()) == ncinfo.Unsupported {
		return a.Count
	}
	return a.Values.Len()
}

// Var is a variable with its values in row-major order.
type Var struct {
	Name  string
	Type  ncinfo.NCType // Zero means the type of Data.
	Dims  []string
	Data  ncinfo.Values
	Attrs []Attr
}

type variable struct {
	Var
	typ    ncinfo.NCType
	dimIDs []int
}

// Dataset is an in-memory dataset. The zero value is not usable; call New.
type Dataset struct {
	dims      []ncinfo.Dimension
	vars      []*variable
	globals   []Attr
	unlimited int
}

// New returns an empty dataset.
func New() *Dataset {
	return &Dataset{unlimited: -1}
}

// AddDimension appends a dimension and returns its id.
func (d *Dataset) AddDimension(name string, length uint64) int {
	d.dims = append(d.dims, ncinfo.Dimension{Name: name, Len: length})
	return len(d.dims) - 1
}

// SetUnlimited marks the dimension with the given id as unlimited.
func (d *Dataset) SetUnlimited(id int) error {
	if id < 0 || id >= len(d.dims) {
		return ncinfo.ErrBadDim
	}
	d.unlimited = id
	return nil
}

// AddVariable appends a variable and returns its id. Its dimensions must
// already exist, and Data, when given, must fill them exactly.
func (d *Dataset) AddVariable(v Var) (int, error) {
	nv := &variable{Var: v, typ: v.Type}
	if nv.typ == ncinfo.NCNat {
		nv.typ = v.Data.Tag.NCType()
	}

	shape := make([]uint64, 0, len(v.Dims))
	for _, name := range v.Dims {
		id := d.dimensionID(name)
		if id < 0 {
			return 0, fmt.Errorf("variable %q: dimension %q: %w", v.Name, name, ncinfo.ErrBadDim)
		}
		nv.dimIDs = append(nv.dimIDs, id)
		shape = append(shape, d.dims[id].Len)
	}
	total, err := utils.ElementCount(shape)
	if err != nil {
		return 0, fmt.Errorf("variable %q: %w", v.Name, err)
	}

	if n := v.Data.Len(); n > 0 && uint64(n) != total {
		return 0, fmt.Errorf("variable %q: %d values for %d elements", v.Name, n, total)
	}
	if v.Data.Len() > 0 && ncinfo.TagOf(nv.typ) != v.Data.Tag {
		return 0, fmt.Errorf("variable %q: data does not match declared type: %w", v.Name, ncinfo.ErrBadType)
	}

	d.vars = append(d.vars, nv)
	return len(d.vars) - 1, nil
}

// AddGlobal appends a global attribute.
func (d *Dataset) AddGlobal(a Attr) {
	d.globals = append(d.globals, a)
}

// Close releases nothing; it exists so callers can treat every backend alike.
func (d *Dataset) Close() error {
	return nil
}

func (d *Dataset) dimensionID(name string) int {
	for i, dim := range d.dims {
		if dim.Name == name {
			return i
		}
	}
	return -1
}

func (d *Dataset) attrs(varID int) ([]Attr, error) {
	if varID == ncinfo.Global {
		return d.globals, nil
	}
	if varID < 0 || varID >= len(d.vars) {
		return nil, ncinfo.ErrNotVar
	}
	return d.vars[varID].Attrs, nil
}

func (d *Dataset) attr(varID int, name string) (Attr, error) {
	attrs, err := d.attrs(varID)
	if err != nil {
		return Attr{}, err
	}
	for _, a := range attrs {
		if a.Name == name {
			return a, nil
		}
	}
	return Attr{}, ncinfo.ErrNotAtt
}

// Summary implements ncinfo.Dataset.
func (d *Dataset) Summary() (ncinfo.Summary, error) {
	return ncinfo.Summary{
		NDims:        len(d.dims),
		NVars:        len(d.vars),
		NGlobalAttrs: len(d.globals),
		UnlimitedDim: d.unlimited,
	}, nil
}

// Dimension implements ncinfo.Dataset.
func (d *Dataset) Dimension(id int) (ncinfo.Dimension, error) {
	if id < 0 || id >= len(d.dims) {
		return ncinfo.Dimension{}, ncinfo.ErrBadDim
	}
	return d.dims[id], nil
}

// VariableID implements ncinfo.Dataset.
func (d *Dataset) VariableID(name string) (int, error) {
	for i, v := range d.vars {
		if v.Name == name {
			return i, nil
		}
	}
	return 0, ncinfo.ErrNotVar
}

// Variable implements ncinfo.Dataset.
func (d *Dataset) Variable(id int) (ncinfo.Variable, error) {
	if id < 0 || id >= len(d.vars) {
		return ncinfo.Variable{}, ncinfo.ErrNotVar
	}
	v := d.vars[id]
	return ncinfo.Variable{
		Name:   v.Name,
		Type:   v.typ,
		DimIDs: append([]int(nil), v.dimIDs...),
		NAttrs: len(v.Attrs),
	}, nil
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
	return attrs[index].Name, nil
}

// Attribute implements ncinfo.Dataset.
func (d *Dataset) Attribute(varID int, name string) (ncinfo.Attribute, error) {
	a, err := d.attr(varID, name)
	if err != nil {
		return ncinfo.Attribute{}, err
	}
	return ncinfo.Attribute{Type: a.declared(), Len: a.length()}, nil
}

// ReadAttribute implements ncinfo.Dataset.
func (d *Dataset) ReadAttribute(varID int, name string, tag ncinfo.TypeTag, length int) (ncinfo.Values, error) {
	a, err := d.attr(varID, name)
	if err != nil {
		return ncinfo.Values{}, err
	}
	if ncinfo.TagOf(a.declared()) == ncinfo.Unsupported {
		return ncinfo.Values{}, ncinfo.ErrBadType
	}

	v, err := a.Values.Convert(tag)
	if err != nil {
		return ncinfo.Values{}, err
	}
	if length < v.Len() {
		v = v.Slice(0, length)
	}
	return v, nil
}

// ReadElement implements ncinfo.Dataset. index addresses the values in
// row-major order.
func (d *Dataset) ReadElement(varID int, index uint64, tag ncinfo.TypeTag) (ncinfo.Values, error) {
	if varID < 0 || varID >= len(d.vars) {
		return ncinfo.Values{}, ncinfo.ErrNotVar
	}
	v := d.vars[varID]
	if ncinfo.TagOf(v.typ) == ncinfo.Unsupported {
		return ncinfo.Values{}, ncinfo.ErrBadType
	}
	if index >= uint64(v.Data.Len()) {
		return ncinfo.Values{}, ncinfo.ErrInvalidCoords
	}

	i := int(index)
	return v.Data.Slice(i, i+1).Convert(tag)
}
