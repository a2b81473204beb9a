// Package ncinfo renders a plain-text structure report of a netCDF-style
// dataset: its dimensions with coordinate ranges, its variables with types,
// dimensions and attributes, and its global attributes.
//
// The package never reads files itself. Callers hand it a [Dataset], the
// read-only collaborator that owns the on-disk format, and [Report] walks it:
//
//	ds, err := h5nc.Open("ocean.nc")
//	if err != nil {
//	    return err
//	}
//	defer ds.Close()
//
//	if err := ncinfo.Report(os.Stdout, ds); err != nil {
//	    return err
//	}
//
// Lookups that fail for a single dimension or attribute are written into the
// report as inline error lines and the walk continues. A variable whose
// descriptor cannot be read stops the walk; everything written before it is
// still flushed.
package ncinfo
