package ncinfo

// Global is the entity id that addresses dataset-level attributes.
const Global = -1

// Summary describes the top-level contents of a dataset.
type Summary struct {
	NDims        int
	NVars        int
	NGlobalAttrs int
	UnlimitedDim int // -1 when the dataset has no unlimited dimension.
}

// Dimension is a named axis.
type Dimension struct {
	Name string
	Len  uint64
}

// Variable describes a variable without its values.
type Variable struct {
	Name   string
	Type   NCType
	DimIDs []int // Outermost first.
	NAttrs int
}

// Attribute describes an attribute without its values.
// Len counts elements; for text it is the number of bytes.
type Attribute struct {
	Type NCType
	Len  int
}

// Dataset is the read-only collaborator that owns the on-disk format.
//
// Every method may fail; the error's message is what ends up in the report,
// so implementations return short human-readable reasons. Values are
// converted to the requested tag by the implementation.
type Dataset interface {
	// Summary returns the dimension, variable and global attribute counts.
	Summary() (Summary, error)

	// Dimension returns the dimension with the given id.
	Dimension(id int) (Dimension, error)

	// VariableID resolves a variable name to its id.
	VariableID(name string) (int, error)

	// Variable returns the descriptor of the variable with the given id.
	Variable(id int) (Variable, error)

	// AttributeName returns the name of the index-th attribute of varID,
	// which may be Global.
	AttributeName(varID, index int) (string, error)

	// Attribute returns the type and length of a named attribute.
	Attribute(varID int, name string) (Attribute, error)

	// ReadAttribute fetches length values of a named attribute as tag.
	ReadAttribute(varID int, name string, tag TypeTag, length int) (Values, error)

	// ReadElement fetches the index-th element of a one-dimensional variable as tag.
	ReadElement(varID int, index uint64, tag TypeTag) (Values, error)
}
