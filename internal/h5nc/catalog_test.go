package h5nc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/ncinfo"
)

func scaleEntry(name string, n uint64, dimID int) *entry {
	return &entry{
		name:   name,
		layout: layout{class: "int32", size: 4, shape: []uint64{n}},
		typ:    ncinfo.NCInt,
		scale:  true,
		dimID:  dimID,
	}
}

func dataEntry(name string, shape ...uint64) *entry {
	return &entry{
		name:   name,
		layout: layout{class: "float32", size: 4, shape: shape},
		typ:    ncinfo.NCFloat,
		dimID:  -1,
	}
}

func resolve(entries ...*entry) *catalog {
	c := &catalog{}
	c.resolveDimensions(entries)
	c.resolveVariables(entries)
	return c
}

func dimNames(c *catalog) []string {
	names := make([]string, 0, len(c.dims))
	for _, d := range c.dims {
		names = append(names, d.Name)
	}
	return names
}

func TestResolve_CoordinateAndData(t *testing.T) {
	c := resolve(scaleEntry("level", 3, -1), dataEntry("temp", 3))

	require.Equal(t, []string{"level"}, dimNames(c))
	require.Len(t, c.vars, 2)
	require.Equal(t, "level", c.vars[0].name)
	require.Equal(t, []int{0}, c.vars[0].dimIDs)
	require.Equal(t, "temp", c.vars[1].name)
	require.Equal(t, []int{0}, c.vars[1].dimIDs)
}

func TestResolve_StoredDimIDs(t *testing.T) {
	lat := scaleEntry("lat", 2, 1)
	lon := scaleEntry("lon", 4, 0)
	sst := dataEntry("sst", 2, 4)
	sst.coords = []int{1, 0}

	c := resolve(lat, lon, sst)

	require.Equal(t, []string{"lon", "lat"}, dimNames(c))
	require.Equal(t, []int{1, 0}, c.vars[2].dimIDs)
}

func TestResolve_DimensionOnlyScale(t *testing.T) {
	nv := scaleEntry("nv", 2, -1)
	nv.dimOnly = true

	c := resolve(nv, dataEntry("bounds", 2))

	require.Equal(t, []string{"nv"}, dimNames(c))
	require.Len(t, c.vars, 1)
	require.Equal(t, "bounds", c.vars[0].name)
	require.Equal(t, []int{0}, c.vars[0].dimIDs)
}

func TestResolve_PhonyDimensions(t *testing.T) {
	c := resolve(scaleEntry("time", 3, -1), dataEntry("grid", 5, 7, 5), dataEntry("mask", 7))

	require.Equal(t, []string{"time", "phony_dim_0", "phony_dim_1"}, dimNames(c))
	require.Equal(t, uint64(5), c.dims[1].Len)
	require.Equal(t, uint64(7), c.dims[2].Len)
	require.Equal(t, []int{1, 2, 1}, c.vars[1].dimIDs)
	require.Equal(t, []int{2}, c.vars[2].dimIDs)
}

func TestResolve_BrokenEntries(t *testing.T) {
	broken := dataEntry("broken", 3)
	broken.err = errors.New("reading dataset header: EOF")
	square := scaleEntry("square", 0, -1)
	square.layout.shape = []uint64{2, 2}

	c := resolve(square, broken)

	require.Equal(t, []string{"square", "phony_dim_0"}, dimNames(c))
	require.Error(t, c.dims[0].err)
	require.Len(t, c.vars, 2)
	require.Equal(t, []int{1, 1}, c.vars[0].dimIDs)
	require.Nil(t, c.vars[1].dimIDs)
	require.Error(t, c.vars[1].err)
}
