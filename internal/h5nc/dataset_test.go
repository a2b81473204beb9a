// Copyright (c) 2025 SciGo HDF5 Library Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be found in the LICENSE file.

package h5nc

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/scigolib/hdf5"
	"github.com/stretchr/testify/require"

	"github.com/scigolib/ncinfo"
)

// writeOcean writes a small netCDF-4 style file holding one depth level
// coordinate variable that is also its own dimension scale. The writer keeps
// attributes reliably only on the last dataset it creates, so multi-variable
// layouts are covered by the catalog tests instead.
func writeOcean(t *testing.T) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "ocean.nc")

	fw, err := hdf5.CreateForWrite(filename, hdf5.CreateTruncate)
	require.NoError(t, err)

	levelDS, err := fw.CreateDataset("/level", hdf5.Int32, []uint64{3})
	require.NoError(t, err)
	require.NoError(t, levelDS.Write([]int32{10, 20, 30}))
	require.NoError(t, levelDS.WriteAttribute("CLASS", "DIMENSION_SCALE"))
	require.NoError(t, levelDS.WriteAttribute("units", "m"))

	require.NoError(t, fw.Close())
	return filename
}

func TestOpen(t *testing.T) {
	ds, err := Open(writeOcean(t))
	require.NoError(t, err)
	defer func() { _ = ds.Close() }()

	sum, err := ds.Summary()
	require.NoError(t, err)
	require.Equal(t, ncinfo.Summary{NDims: 1, NVars: 1, NGlobalAttrs: 0, UnlimitedDim: -1}, sum)

	dim, err := ds.Dimension(0)
	require.NoError(t, err)
	require.Equal(t, ncinfo.Dimension{Name: "level", Len: 3}, dim)

	id, err := ds.VariableID("level")
	require.NoError(t, err)
	require.Equal(t, 0, id)
	v, err := ds.Variable(id)
	require.NoError(t, err)
	require.Equal(t, ncinfo.NCInt, v.Type)
	require.Equal(t, []int{0}, v.DimIDs)
	require.Equal(t, 1, v.NAttrs)

	name, err := ds.AttributeName(id, 0)
	require.NoError(t, err)
	require.Equal(t, "units", name)

	att, err := ds.Attribute(id, "units")
	require.NoError(t, err)
	require.Equal(t, ncinfo.Attribute{Type: ncinfo.NCChar, Len: 2}, att)

	_, err = ds.Attribute(id, "CLASS")
	require.ErrorIs(t, err, ncinfo.ErrNotAtt)

	_, err = ds.VariableID("temp")
	require.ErrorIs(t, err, ncinfo.ErrNotVar)
}

func TestReadElement(t *testing.T) {
	ds, err := Open(writeOcean(t))
	require.NoError(t, err)
	defer func() { _ = ds.Close() }()

	levelID, err := ds.VariableID("level")
	require.NoError(t, err)

	v, err := ds.ReadElement(levelID, 2, ncinfo.Int)
	require.NoError(t, err)
	require.Equal(t, ncinfo.IntValues(30), v)

	v, err = ds.ReadElement(levelID, 0, ncinfo.Double)
	require.NoError(t, err)
	require.Equal(t, ncinfo.DoubleValues(10), v)

	_, err = ds.ReadElement(levelID, 3, ncinfo.Int)
	require.ErrorIs(t, err, ncinfo.ErrInvalidCoords)

	_, err = ds.ReadElement(levelID, 0, ncinfo.Char)
	require.ErrorIs(t, err, ncinfo.ErrChar)

	_, err = ds.ReadElement(7, 0, ncinfo.Int)
	require.ErrorIs(t, err, ncinfo.ErrNotVar)
}

func TestReport(t *testing.T) {
	ds, err := Open(writeOcean(t))
	require.NoError(t, err)
	defer func() { _ = ds.Close() }()

	var buf bytes.Buffer
	require.NoError(t, ncinfo.Report(&buf, ds))

	want := "dimensions\n" +
		"----------\n" +
		"\tlevel (length=3, range=(10, 30))\n" +
		"\n" +
		"variables\n" +
		"---------\n" +
		"variable: level (id 0)\n" +
		"\tdata type: NC_INT\n" +
		"\tdimensions: level\n" +
		"\tattributes (1)\n" +
		"\t\tunits: m\n"
	require.Equal(t, want, buf.String())
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.nc"))
	require.Error(t, err)
}
