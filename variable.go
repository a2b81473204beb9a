package ncinfo

import (
	"fmt"
	"strings"
)

// describeVariable writes the block of one variable. A descriptor that cannot
// be read is returned as an error; every other failure is written inline.
func (r *reporter) describeVariable(id int) error {
	v, err := r.ds.Variable(id)
	if err != nil {
		r.log.Error().Err(err).Int("var_id", id).Msg("variable inquiry failed")
		r.out.printf("error getting information for variable with id %d: %s\n", id, Reason(err))
		return WrapError(KindInquiry, fmt.Sprintf("variable with id %d", id), err)
	}

	r.log.Debug().Int("var_id", id).Str("name", v.Name).Int("attrs", v.NAttrs).Msg("describing variable")

	r.out.printf("variable: %s (id %d)\n", v.Name, id)
	r.out.printf("\tdata type: %s\n", TagOf(v.Type))
	r.out.printf("\tdimensions: %s\n", r.dimensionNames(v.DimIDs))

	if v.NAttrs == 0 {
		r.out.print("no attributes\n")
		return nil
	}

	r.out.printf("\tattributes (%d)\n", v.NAttrs)
	for i := 0; i < v.NAttrs; i++ {
		name, err := r.ds.AttributeName(id, i)
		if err != nil {
			r.log.Warn().Err(err).Int("var_id", id).Int("index", i).Msg("attribute name lookup failed")
			r.out.printf("error getting name of attribute number %d of variable with id %d: %s\n", i, id, Reason(err))
			continue
		}

		att, err := r.ds.Attribute(id, name)
		if err != nil {
			r.log.Warn().Err(err).Int("var_id", id).Str("attribute", name).Msg("attribute inquiry failed")
			r.out.printf("error getting information about attribute with name '%s' for variable with id %d: %s\n", name, id, Reason(err))
			continue
		}

		r.out.printf("\t\t%s: ", name)
		r.renderAttribute(id, name, TagOf(att.Type), att.Len)
	}
	return nil
}

// dimensionNames lists the dimension names of a variable in declared order.
// A name that cannot be resolved is replaced by its error text.
func (r *reporter) dimensionNames(ids []int) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		dim, err := r.ds.Dimension(id)
		if err != nil {
			r.log.Warn().Err(err).Int("dim_id", id).Msg("dimension name lookup failed")
			names = append(names, fmt.Sprintf("error getting name of dimension with id %d: %s", id, Reason(err)))
			continue
		}
		names = append(names, dim.Name)
	}
	return strings.Join(names, " ")
}
