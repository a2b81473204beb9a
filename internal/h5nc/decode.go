package h5nc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/scigolib/ncinfo"
	"github.com/scigolib/ncinfo/internal/utils"
)

// HDF5 datatype classes used by netCDF-4.
const (
	classFixed  = 0
	classFloat  = 1
	classString = 3
	classVarLen = 9
)

// HDF5 dataspace type of an attribute without data.
const dataspaceNull = 2

// Datatype class bit fields.
const (
	bigEndianBit = 0x01
	signedBit    = 0x08
	paddingMask  = 0x0F
	padSpacePad  = 2
	vlenString   = 1
)

// rawAttribute is an attribute as stored in the object header.
type rawAttribute struct {
	name     string
	class    uint8
	size     uint32
	bitField uint32
	shape    []uint64
	null     bool
	data     []byte
}

// attribute is a decoded attribute descriptor. Values are decoded on read.
type attribute struct {
	raw    rawAttribute
	typ    ncinfo.NCType
	length int
}

func newAttribute(raw rawAttribute) attribute {
	a := attribute{raw: raw, typ: ncTypeOf(raw.class, raw.size, raw.bitField)}

	count, err := raw.count()
	if err != nil {
		// Len is only informational; a bad shape fails again on read.
		return a
	}
	if a.typ == ncinfo.NCChar {
		count *= uint64(raw.size)
	}
	if count <= math.MaxInt32 {
		a.length = int(count)
	}
	return a
}

func (r rawAttribute) count() (uint64, error) {
	if r.null {
		return 0, nil
	}
	return utils.ElementCount(r.shape)
}

func (r rawAttribute) byteOrder() binary.ByteOrder {
	if r.bitField&bigEndianBit != 0 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// ncTypeOf maps an HDF5 datatype to the netCDF type it stores.
func ncTypeOf(class uint8, size, bitField uint32) ncinfo.NCType {
	switch class {
	case classFixed:
		signed := bitField&signedBit != 0
		switch size {
		case 1:
			return pick(signed, ncinfo.NCByte, ncinfo.NCUByte)
		case 2:
			return pick(signed, ncinfo.NCShort, ncinfo.NCUShort)
		case 4:
			return pick(signed, ncinfo.NCInt, ncinfo.NCUInt)
		case 8:
			return pick(signed, ncinfo.NCInt64, ncinfo.NCUInt64)
		}
	case classFloat:
		switch size {
		case 4:
			return ncinfo.NCFloat
		case 8:
			return ncinfo.NCDouble
		}
	case classString:
		if size > 0 {
			return ncinfo.NCChar
		}
	case classVarLen:
		if bitField&paddingMask == vlenString {
			return ncinfo.NCString
		}
	}
	return ncinfo.NCNat
}

func pick(signed bool, s, u ncinfo.NCType) ncinfo.NCType {
	if signed {
		return s
	}
	return u
}

// decode returns the attribute values in their stored type.
func (a attribute) decode() (ncinfo.Values, error) {
	tag := ncinfo.TagOf(a.typ)
	if tag == ncinfo.Unsupported {
		return ncinfo.Values{}, ncinfo.ErrBadType
	}

	count, err := a.raw.count()
	if err != nil {
		return ncinfo.Values{}, err
	}
	need, err := utils.AttributeBytes(count, a.raw.size)
	if err != nil {
		return ncinfo.Values{}, err
	}
	if len(a.raw.data) < need {
		return ncinfo.Values{}, fmt.Errorf("attribute data too short: %d of %d bytes", len(a.raw.data), need)
	}

	data := a.raw.data[:need]
	order := a.raw.byteOrder()
	n := int(count)
	v := ncinfo.Values{Tag: tag}

	switch tag {
	case ncinfo.Byte:
		v.Bytes = make([]int8, n)
		for i := range v.Bytes {
			v.Bytes[i] = int8(data[i]) //nolint:gosec // G115: two's complement reinterpretation
		}
	case ncinfo.Char:
		v.Text = append([]byte(nil), data...)
		if a.raw.bitField&paddingMask == padSpacePad {
			v.Text = bytes.TrimRight(v.Text, " ")
		}
	case ncinfo.Short:
		v.Shorts = make([]int16, n)
		for i := range v.Shorts {
			v.Shorts[i] = int16(order.Uint16(data[i*2:])) //nolint:gosec // G115: two's complement reinterpretation
		}
	case ncinfo.Int:
		v.Ints = make([]int32, n)
		for i := range v.Ints {
			v.Ints[i] = int32(order.Uint32(data[i*4:])) //nolint:gosec // G115: two's complement reinterpretation
		}
	case ncinfo.Long:
		v.Longs = make([]int64, n)
		for i := range v.Longs {
			v.Longs[i] = int64(order.Uint64(data[i*8:])) //nolint:gosec // G115: two's complement reinterpretation
		}
	case ncinfo.Float:
		v.Floats = make([]float32, n)
		for i := range v.Floats {
			v.Floats[i] = math.Float32frombits(order.Uint32(data[i*4:]))
		}
	case ncinfo.Double:
		v.Doubles = make([]float64, n)
		for i := range v.Doubles {
			v.Doubles[i] = math.Float64frombits(order.Uint64(data[i*8:]))
		}
	}
	return v, nil
}

// text returns a text attribute cut at its first NUL, or "" for other types.
func (a attribute) text() string {
	if a.typ != ncinfo.NCChar {
		return ""
	}
	v, err := a.decode()
	if err != nil {
		return ""
	}
	if i := bytes.IndexByte(v.Text, 0); i >= 0 {
		return string(v.Text[:i])
	}
	return string(v.Text)
}

// ints returns an integer attribute widened to int, or nil.
func (a attribute) ints() []int {
	v, err := a.decode()
	if err != nil {
		return nil
	}
	v, err = v.Convert(ncinfo.Long)
	if err != nil {
		return nil
	}
	out := make([]int, len(v.Longs))
	for i, x := range v.Longs {
		out[i] = int(x)
	}
	return out
}
