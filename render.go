// Copyright (c) 2025 SciGo HDF5 Library Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.

package ncinfo

import (
	"bytes"
	"strconv"
	"strings"
)

// unsupportedMarker replaces values whose type the renderer cannot decode.
const unsupportedMarker = "data type not supported"

// valueSeparator joins the elements of a multi-valued attribute.
const valueSeparator = ", "

// renderAttribute writes the value of a named attribute followed by a line
// break. A failed fetch replaces the whole value with one error line.
func (r *reporter) renderAttribute(varID int, name string, tag TypeTag, length int) {
	r.out.print(r.attributeText(varID, name, tag, length))
	r.out.print("\n")
}

func (r *reporter) attributeText(varID int, name string, tag TypeTag, length int) string {
	// Long is only decoded for element reads.
	if tag == Unsupported || tag == Long {
		r.log.Debug().Int("var_id", varID).Str("attribute", name).Msg("attribute type not supported")
		return unsupportedMarker
	}

	v, err := r.ds.ReadAttribute(varID, name, tag, length)
	if err == nil && v.Tag != tag {
		err = ErrBadType
	}
	if err != nil {
		r.log.Warn().Err(err).Int("var_id", varID).Str("attribute", name).Msg("attribute read failed")
		return "error getting value for attribute: '" + name + "': " + Reason(err)
	}
	return formatValues(v)
}

// renderElement returns the text of a single element of a variable, or the
// inline error that replaces it.
func (r *reporter) renderElement(varID int, index uint64, tag TypeTag) string {
	if tag == Unsupported {
		return unsupportedMarker
	}

	v, err := r.ds.ReadElement(varID, index, tag)
	if err == nil && v.Tag != tag {
		err = ErrBadType
	}
	if err != nil {
		r.log.Warn().Err(err).Int("var_id", varID).Uint64("index", index).Msg("element read failed")
		return "error getting value for dimension variable with id " + strconv.Itoa(varID) + ": " + Reason(err)
	}
	return formatValues(v)
}

// formatValues renders decoded values as report text. Text is printed as one
// string cut at the first NUL; every other tag prints its elements in
// canonical decimal form joined by ", ".
func formatValues(v Values) string {
	switch v.Tag {
	case Byte:
		return join(len(v.Bytes), func(i int) string {
			return strconv.FormatInt(int64(v.Bytes[i]), 10)
		})
	case Char:
		text := v.Text
		if i := bytes.IndexByte(text, 0); i >= 0 {
			text = text[:i]
		}
		return string(text)
	case Short:
		return join(len(v.Shorts), func(i int) string {
			return strconv.FormatInt(int64(v.Shorts[i]), 10)
		})
	case Int:
		return join(len(v.Ints), func(i int) string {
			return strconv.FormatInt(int64(v.Ints[i]), 10)
		})
	case Long:
		return join(len(v.Longs), func(i int) string {
			return strconv.FormatInt(v.Longs[i], 10)
		})
	case Float:
		return join(len(v.Floats), func(i int) string {
			return strconv.FormatFloat(float64(v.Floats[i]), 'g', -1, 32)
		})
	case Double:
		return join(len(v.Doubles), func(i int) string {
			return strconv.FormatFloat(v.Doubles[i], 'g', -1, 64)
		})
	default:
		return unsupportedMarker
	}
}

func join(n int, format func(int) string) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(valueSeparator)
		}
		sb.WriteString(format(i))
	}
	return sb.String()
}
