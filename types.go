package ncinfo

// NCType is the element type code a dataset declares for a variable or an
// attribute. Codes follow the netCDF numbering.
type NCType int

// netCDF element type codes.
const (
	NCNat    NCType = 0  // Not a type.
	NCByte   NCType = 1  // Signed 8-bit integer.
	NCChar   NCType = 2  // Text byte.
	NCShort  NCType = 3  // Signed 16-bit integer.
	NCInt    NCType = 4  // Signed 32-bit integer.
	NCFloat  NCType = 5  // IEEE 754 single precision.
	NCDouble NCType = 6  // IEEE 754 double precision.
	NCUByte  NCType = 7  // Unsigned 8-bit integer.
	NCUShort NCType = 8  // Unsigned 16-bit integer.
	NCUInt   NCType = 9  // Unsigned 32-bit integer.
	NCInt64  NCType = 10 // Signed 64-bit integer.
	NCUInt64 NCType = 11 // Unsigned 64-bit integer.
	NCString NCType = 12 // Variable-length string.
)

// TypeTag is the closed set of element types the renderer can decode.
type TypeTag uint8

// TypeTag values. Unsupported is a valid tag, not an error: values carrying it
// are reported with a marker instead of being decoded.
const (
	Unsupported TypeTag = iota
	Byte
	Char
	Short
	Int
	Long
	Float
	Double
)

// TagOf maps a declared element type code to its TypeTag.
// Every code outside the supported set maps to Unsupported.
func TagOf(t NCType) TypeTag {
	switch t {
	case NCByte:
		return Byte
	case NCChar:
		return Char
	case NCShort:
		return Short
	case NCInt:
		return Int
	case NCInt64:
		return Long
	case NCFloat:
		return Float
	case NCDouble:
		return Double
	default:
		return Unsupported
	}
}

// NCType returns the type code the tag was read from.
func (t TypeTag) NCType() NCType {
	switch t {
	case Byte:
		return NCByte
	case Char:
		return NCChar
	case Short:
		return NCShort
	case Int:
		return NCInt
	case Long:
		return NCInt64
	case Float:
		return NCFloat
	case Double:
		return NCDouble
	default:
		return NCNat
	}
}

// String returns the name printed in the "data type" line of a variable block.
func (t TypeTag) String() string {
	switch t {
	case Byte:
		return "NC_BYTE"
	case Char:
		return "NC_CHAR"
	case Short:
		return "NC_SHORT"
	case Int:
		return "NC_INT"
	case Long:
		return "NC_INT64"
	case Float:
		return "NC_FLOAT"
	case Double:
		return "NC_DOUBLE"
	default:
		return "UNKNOWN"
	}
}

// Size returns the element size in bytes, or 0 for Unsupported.
func (t TypeTag) Size() int {
	switch t {
	case Byte, Char:
		return 1
	case Short:
		return 2
	case Int, Float:
		return 4
	case Long, Double:
		return 8
	default:
		return 0
	}
}
