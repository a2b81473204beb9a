package h5nc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/scigolib/ncinfo"
)

// infoPattern matches the summary line produced by hdf5.Dataset.Info.
var infoPattern = regexp.MustCompile(`^Dataset: (\w+) \(size=(\d+) bytes\), (scalar|null|unknown|\d+D array \[([^\]]*)\])`)

// layout is the element type and shape of a dataset.
type layout struct {
	class string
	size  uint32
	shape []uint64 // nil for scalar
	null  bool
}

// parseInfo reads a dataset layout from its Info line.
func parseInfo(info string) (layout, error) {
	m := infoPattern.FindStringSubmatch(info)
	if m == nil {
		return layout{}, fmt.Errorf("unrecognized dataset info %q", info)
	}

	size, err := strconv.ParseUint(m[2], 10, 32)
	if err != nil {
		return layout{}, fmt.Errorf("invalid element size in %q: %w", info, err)
	}
	l := layout{class: m[1], size: uint32(size)}

	switch m[3] {
	case "scalar":
	case "null":
		l.null = true
	case "unknown":
		return layout{}, fmt.Errorf("unknown dataspace in %q", info)
	default:
		fields := strings.FieldsFunc(m[4], func(r rune) bool { return !unicode.IsDigit(r) })
		l.shape = make([]uint64, len(fields))
		for i, f := range fields {
			if l.shape[i], err = strconv.ParseUint(f, 10, 64); err != nil {
				return layout{}, fmt.Errorf("invalid extent in %q: %w", info, err)
			}
		}
	}
	return l, nil
}

// ncType maps the dataset element type to a netCDF type. Info does not
// carry signedness, so integers are taken as signed.
func (l layout) ncType() ncinfo.NCType {
	switch l.class {
	case "integer":
		return ncTypeOf(classFixed, l.size, signedBit)
	case "float":
		return ncTypeOf(classFloat, l.size, 0)
	case "string":
		if l.size == 1 {
			return ncinfo.NCChar
		}
		return ncinfo.NCString
	}
	return ncinfo.NCNat
}
