package ncinfo

import "math"

// Values holds one or more decoded elements of a single TypeTag.
// Exactly the slice matching Tag is populated; the others stay nil.
type Values struct {
	Tag     TypeTag
	Bytes   []int8
	Text    []byte
	Shorts  []int16
	Ints    []int32
	Longs   []int64
	Floats  []float32
	Doubles []float64
}

// ByteValues returns Values tagged Byte.
func ByteValues(v ...int8) Values { return Values{Tag: Byte, Bytes: v} }

// TextValues returns Values tagged Char holding the raw text bytes.
func TextValues(s string) Values { return Values{Tag: Char, Text: []byte(s)} }

// ShortValues returns Values tagged Short.
func ShortValues(v ...int16) Values { return Values{Tag: Short, Shorts: v} }

// IntValues returns Values tagged Int.
func IntValues(v ...int32) Values { return Values{Tag: Int, Ints: v} }

// LongValues returns Values tagged Long.
func LongValues(v ...int64) Values { return Values{Tag: Long, Longs: v} }

// FloatValues returns Values tagged Float.
func FloatValues(v ...float32) Values { return Values{Tag: Float, Floats: v} }

// DoubleValues returns Values tagged Double.
func DoubleValues(v ...float64) Values { return Values{Tag: Double, Doubles: v} }

// Len returns the number of elements held.
func (v Values) Len() int {
	switch v.Tag {
	case Byte:
		return len(v.Bytes)
	case Char:
		return len(v.Text)
	case Short:
		return len(v.Shorts)
	case Int:
		return len(v.Ints)
	case Long:
		return len(v.Longs)
	case Float:
		return len(v.Floats)
	case Double:
		return len(v.Doubles)
	default:
		return 0
	}
}

// Slice returns the elements in [begin, end).
func (v Values) Slice(begin, end int) Values {
	out := Values{Tag: v.Tag}
	switch v.Tag {
	case Byte:
		out.Bytes = v.Bytes[begin:end]
	case Char:
		out.Text = v.Text[begin:end]
	case Short:
		out.Shorts = v.Shorts[begin:end]
	case Int:
		out.Ints = v.Ints[begin:end]
	case Long:
		out.Longs = v.Longs[begin:end]
	case Float:
		out.Floats = v.Floats[begin:end]
	case Double:
		out.Doubles = v.Doubles[begin:end]
	}
	return out
}

// Convert returns the values as elements of tag, the way netCDF converts on
// read: numeric types convert into each other, text never converts to or from
// numbers, and a value that does not fit the target fails with ErrRange.
func (v Values) Convert(tag TypeTag) (Values, error) {
	if v.Tag == tag {
		return v, nil
	}
	if v.Tag == Unsupported || tag == Unsupported {
		return Values{}, ErrBadType
	}
	if v.Tag == Char || tag == Char {
		return Values{}, ErrChar
	}

	n := v.Len()
	out := Values{Tag: tag}
	switch tag {
	case Byte:
		out.Bytes = make([]int8, n)
	case Short:
		out.Shorts = make([]int16, n)
	case Int:
		out.Ints = make([]int32, n)
	case Long:
		out.Longs = make([]int64, n)
	case Float:
		out.Floats = make([]float32, n)
	case Double:
		out.Doubles = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		iv, fv, integral := v.number(i)
		switch tag {
		case Byte:
			x, ok := fitInt(iv, fv, integral, math.MinInt8, math.MaxInt8)
			if !ok {
				return Values{}, ErrRange
			}
			out.Bytes[i] = int8(x)
		case Short:
			x, ok := fitInt(iv, fv, integral, math.MinInt16, math.MaxInt16)
			if !ok {
				return Values{}, ErrRange
			}
			out.Shorts[i] = int16(x)
		case Int:
			x, ok := fitInt(iv, fv, integral, math.MinInt32, math.MaxInt32)
			if !ok {
				return Values{}, ErrRange
			}
			out.Ints[i] = int32(x)
		case Long:
			x, ok := fitInt(iv, fv, integral, math.MinInt64, math.MaxInt64)
			if !ok {
				return Values{}, ErrRange
			}
			out.Longs[i] = x
		case Float:
			if integral {
				out.Floats[i] = float32(iv)
				continue
			}
			if !math.IsInf(fv, 0) && math.Abs(fv) > math.MaxFloat32 {
				return Values{}, ErrRange
			}
			out.Floats[i] = float32(fv)
		case Double:
			if integral {
				out.Doubles[i] = float64(iv)
			} else {
				out.Doubles[i] = fv
			}
		}
	}
	return out, nil
}

// number returns element i either as an integer or as a float.
func (v Values) number(i int) (iv int64, fv float64, integral bool) {
	switch v.Tag {
	case Byte:
		return int64(v.Bytes[i]), 0, true
	case Short:
		return int64(v.Shorts[i]), 0, true
	case Int:
		return int64(v.Ints[i]), 0, true
	case Long:
		return v.Longs[i], 0, true
	case Float:
		return 0, float64(v.Floats[i]), false
	default:
		return 0, v.Doubles[i], false
	}
}

// fitInt truncates a float toward zero and reports whether the result lies in
// [lo, hi].
func fitInt(iv int64, fv float64, integral bool, lo, hi int64) (int64, bool) {
	if integral {
		return iv, iv >= lo && iv <= hi
	}
	if math.IsNaN(fv) {
		return 0, false
	}
	t := math.Trunc(fv)
	if t < float64(lo) || t >= float64(hi)+1 {
		return 0, false
	}
	return int64(t), true
}
