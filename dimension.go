package ncinfo

import "fmt"

// describeDimension writes one dimension line:
//
//	\t<name> (length=<len>, range=(<first>, <last>))
//
// The range comes from the coordinate variable, the variable named like the
// dimension. If it cannot be resolved the line is closed early and the reason
// follows on its own line. Zero-length dimensions have no range.
func (r *reporter) describeDimension(id int) {
	dim, err := r.ds.Dimension(id)
	if err != nil {
		r.log.Warn().Err(err).Int("dim_id", id).Msg("dimension inquiry failed")
		r.out.printf("error getting information for dimension with id %d: %s\n", id, Reason(err))
		return
	}

	r.log.Debug().Int("dim_id", id).Str("name", dim.Name).Uint64("len", dim.Len).Msg("describing dimension")
	r.out.printf("\t%s (length=%d", dim.Name, dim.Len)

	if dim.Len == 0 {
		r.out.print(")\n")
		return
	}

	first, last, err := r.dimensionRange(dim.Name, dim.Len)
	if err != nil {
		r.log.Warn().Err(err).Str("dimension", dim.Name).Msg("coordinate variable unavailable")
		r.out.printf(")\n%s\n", Reason(err))
		return
	}
	r.out.printf(", range=(%s, %s))\n", first, last)
}

// dimensionRange renders the first and last element of the coordinate
// variable of a dimension. length must be positive.
func (r *reporter) dimensionRange(name string, length uint64) (first, last string, err error) {
	varID, err := r.ds.VariableID(name)
	if err != nil {
		return "", "", fmt.Errorf("error getting id of dimension variable with name '%s': %w", name, err)
	}

	v, err := r.ds.Variable(varID)
	if err != nil {
		return "", "", fmt.Errorf("error getting data type of dimension variable with name '%s': %w", name, err)
	}

	tag := TagOf(v.Type)
	first = r.renderElement(varID, 0, tag)
	last = r.renderElement(varID, length-1, tag)
	return first, last, nil
}
