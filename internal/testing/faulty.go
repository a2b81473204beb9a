// Package testing provides test utilities for ncinfo.
package testing

import (
	"github.com/scigolib/ncinfo"
)

// Call names a Dataset method.
type Call string

// Dataset methods that can be made to fail.
const (
	CallSummary       Call = "summary"
	CallDimension     Call = "dimension"
	CallVariableID    Call = "variable_id"
	CallVariable      Call = "variable"
	CallAttributeName Call = "attribute_name"
	CallAttribute     Call = "attribute"
	CallReadAttribute Call = "read_attribute"
	CallReadElement   Call = "read_element"
)

// Fault makes matching calls fail with Err. An empty Name and AnyID match any
// argument. Index is only compared for attribute-name lookups and element
// reads, where a negative value matches any index.
type Fault struct {
	Call  Call
	ID    int
	Name  string
	Index int64
	Err   error
}

// AnyID matches every entity id in a Fault.
const AnyID = -2

// FaultyDataset wraps a dataset and fails the calls matching its faults.
// Every call is recorded.
type FaultyDataset struct {
	ncinfo.Dataset
	Faults []Fault
	Calls  []Call
}

// NewFaultyDataset wraps ds.
func NewFaultyDataset(ds ncinfo.Dataset, faults ...Fault) *FaultyDataset {
	return &FaultyDataset{Dataset: ds, Faults: faults}
}

// Count returns how many times c was called.
func (f *FaultyDataset) Count(c Call) int {
	n := 0
	for _, got := range f.Calls {
		if got == c {
			n++
		}
	}
	return n
}

func (f *FaultyDataset) fault(c Call, id int, name string, index int64) error {
	f.Calls = append(f.Calls, c)
	for _, ft := range f.Faults {
		if ft.Call != c {
			continue
		}
		if ft.ID != AnyID && ft.ID != id {
			continue
		}
		if ft.Name != "" && ft.Name != name {
			continue
		}
		if ft.Index >= 0 && index >= 0 && ft.Index != index {
			continue
		}
		return ft.Err
	}
	return nil
}

// Summary implements ncinfo.Dataset.
func (f *FaultyDataset) Summary() (ncinfo.Summary, error) {
	if err := f.fault(CallSummary, AnyID, "", -1); err != nil {
		return ncinfo.Summary{}, err
	}
	return f.Dataset.Summary()
}

// Dimension implements ncinfo.Dataset.
func (f *FaultyDataset) Dimension(id int) (ncinfo.Dimension, error) {
	if err := f.fault(CallDimension, id, "", -1); err != nil {
		return ncinfo.Dimension{}, err
	}
	return f.Dataset.Dimension(id)
}

// VariableID implements ncinfo.Dataset.
func (f *FaultyDataset) VariableID(name string) (int, error) {
	if err := f.fault(CallVariableID, AnyID, name, -1); err != nil {
		return 0, err
	}
	return f.Dataset.VariableID(name)
}

// Variable implements ncinfo.Dataset.
func (f *FaultyDataset) Variable(id int) (ncinfo.Variable, error) {
	if err := f.fault(CallVariable, id, "", -1); err != nil {
		return ncinfo.Variable{}, err
	}
	return f.Dataset.Variable(id)
}

// AttributeName implements ncinfo.Dataset.
func (f *FaultyDataset) AttributeName(varID, index int) (string, error) {
	if err := f.fault(CallAttributeName, varID, "", int64(index)); err != nil {
		return "", err
	}
	return f.Dataset.AttributeName(varID, index)
}

// Attribute implements ncinfo.Dataset.
func (f *FaultyDataset) Attribute(varID int, name string) (ncinfo.Attribute, error) {
	if err := f.fault(CallAttribute, varID, name, -1); err != nil {
		return ncinfo.Attribute{}, err
	}
	return f.Dataset.Attribute(varID, name)
}

// ReadAttribute implements ncinfo.Dataset.
func (f *FaultyDataset) ReadAttribute(varID int, name string, tag ncinfo.TypeTag, length int) (ncinfo.Values, error) {
	if err := f.fault(CallReadAttribute, varID, name, -1); err != nil {
		return ncinfo.Values{}, err
	}
	return f.Dataset.ReadAttribute(varID, name, tag, length)
}

// ReadElement implements ncinfo.Dataset.
func (f *FaultyDataset) ReadElement(varID int, index uint64, tag ncinfo.TypeTag) (ncinfo.Values, error) {
	//nolint:gosec // G115: element indexes in tests fit in int64
	if err := f.fault(CallReadElement, varID, "", int64(index)); err != nil {
		return ncinfo.Values{}, err
	}
	return f.Dataset.ReadElement(varID, index, tag)
}
