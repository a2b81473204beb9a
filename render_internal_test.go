package ncinfo

import (
	"bufio"
	"bytes"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// valueStub answers value reads with fixed results.
type valueStub struct {
	Dataset
	values Values
	err    error
	reads  int
}

func (s *valueStub) ReadAttribute(int, string, TypeTag, int) (Values, error) {
	s.reads++
	return s.values, s.err
}

func (s *valueStub) ReadElement(int, uint64, TypeTag) (Values, error) {
	s.reads++
	return s.values, s.err
}

func newTestReporter(ds Dataset) (*reporter, *bytes.Buffer) {
	var buf bytes.Buffer
	return &reporter{
		ds:  ds,
		out: &sink{w: bufio.NewWriter(&buf)},
		log: zerolog.Nop(),
	}, &buf
}

func TestFormatValues_RoundTripIntegers(t *testing.T) {
	t.Run("byte", func(t *testing.T) {
		for i := math.MinInt8; i <= math.MaxInt8; i++ {
			got, err := strconv.ParseInt(formatValues(ByteValues(int8(i))), 10, 8)
			require.NoError(t, err)
			require.Equal(t, int64(i), got)
		}
	})

	t.Run("short", func(t *testing.T) {
		for i := math.MinInt16; i <= math.MaxInt16; i++ {
			got, err := strconv.ParseInt(formatValues(ShortValues(int16(i))), 10, 16)
			require.NoError(t, err)
			require.Equal(t, int64(i), got)
		}
	})

	t.Run("int", func(t *testing.T) {
		for _, v := range []int32{math.MinInt32, -65537, -1, 0, 1, 65536, math.MaxInt32} {
			got, err := strconv.ParseInt(formatValues(IntValues(v)), 10, 32)
			require.NoError(t, err)
			require.Equal(t, int64(v), got)
		}
	})

	t.Run("long", func(t *testing.T) {
		for _, v := range []int64{math.MinInt64, -(1 << 53) - 1, 0, 1 << 53, math.MaxInt64} {
			got, err := strconv.ParseInt(formatValues(LongValues(v)), 10, 64)
			require.NoError(t, err)
			require.Equal(t, v, got)
		}
	})
}

func TestFormatValues_RoundTripFloats(t *testing.T) {
	floats := []float32{
		-math.MaxFloat32, -1.5, -math.SmallestNonzeroFloat32, 0,
		math.SmallestNonzeroFloat32, 0.1, 273.15, 1e10, math.MaxFloat32,
		float32(math.Inf(1)), float32(math.Inf(-1)),
	}
	for _, v := range floats {
		got, err := strconv.ParseFloat(formatValues(FloatValues(v)), 32)
		require.NoError(t, err)
		require.Equal(t, v, float32(got))
	}

	doubles := []float64{
		-math.MaxFloat64, -1e-300, -math.SmallestNonzeroFloat64, 0,
		math.SmallestNonzeroFloat64, 0.1, 1.0 / 3, 6.02214076e23, math.MaxFloat64,
		math.Inf(1),
	}
	for _, v := range doubles {
		got, err := strconv.ParseFloat(formatValues(DoubleValues(v)), 64)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}

	require.Equal(t, "NaN", formatValues(DoubleValues(math.NaN())))
	require.Equal(t, "0.1", formatValues(FloatValues(0.1)))
	require.Equal(t, "1e+10", formatValues(DoubleValues(1e10)))
}

func TestFormatValues_Separators(t *testing.T) {
	tests := []struct {
		name   string
		values Values
		want   string
	}{
		{"empty", IntValues(), ""},
		{"single", IntValues(7), "7"},
		{"shorts", ShortValues(-1, 0, 1), "-1, 0, 1"},
		{"bytes", ByteValues(-128, 127), "-128, 127"},
		{"longs", LongValues(1, 2, 3, 4), "1, 2, 3, 4"},
		{"doubles", DoubleValues(0.5, 1000), "0.5, 1000"},
		{"floats", FloatValues(271.5, 272), "271.5, 272"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatValues(tt.values)
			require.Equal(t, tt.want, got)
			if n := tt.values.Len(); n > 0 {
				require.Equal(t, n-1, strings.Count(got, valueSeparator))
			}
		})
	}
}

func TestFormatValues_Text(t *testing.T) {
	require.Equal(t, "K", formatValues(TextValues("K")))
	require.Equal(t, "a, b", formatValues(TextValues("a, b")), "text is never split into elements")
	require.Equal(t, "days", formatValues(TextValues("days\x00\x00junk")))
	require.Equal(t, "", formatValues(TextValues("\x00abc")))
	require.Equal(t, unsupportedMarker, formatValues(Values{}))
}

func TestRenderAttribute(t *testing.T) {
	t.Run("value", func(t *testing.T) {
		stub := &valueStub{values: FloatValues(1.5, 2)}
		r, buf := newTestReporter(stub)
		r.renderAttribute(0, "valid_range", Float, 2)
		require.NoError(t, r.out.flush())
		require.Equal(t, "1.5, 2\n", buf.String())
	})

	t.Run("unsupported type is not fetched", func(t *testing.T) {
		stub := &valueStub{}
		r, buf := newTestReporter(stub)
		r.renderAttribute(0, "ids", Unsupported, 3)
		require.NoError(t, r.out.flush())
		require.Equal(t, "data type not supported\n", buf.String())
		require.Zero(t, stub.reads)
	})

	t.Run("int64 attribute is not fetched", func(t *testing.T) {
		stub := &valueStub{values: LongValues(5)}
		r, buf := newTestReporter(stub)
		r.renderAttribute(Global, "n", Long, 1)
		require.NoError(t, r.out.flush())
		require.Equal(t, "data type not supported\n", buf.String())
		require.Zero(t, stub.reads)
	})

	t.Run("multi-line reason is collapsed", func(t *testing.T) {
		stub := &valueStub{err: errors.New("yaml: unmarshal errors:\n  line 1: bad")}
		r, buf := newTestReporter(stub)
		r.renderAttribute(1, "units", Char, 1)
		require.NoError(t, r.out.flush())
		require.Equal(t, "error getting value for attribute: 'units': yaml: unmarshal errors: line 1: bad\n", buf.String())
	})

	t.Run("read failure is one line", func(t *testing.T) {
		stub := &valueStub{err: errors.New("NetCDF: HDF error")}
		r, buf := newTestReporter(stub)
		r.renderAttribute(2, "units", Char, 1)
		require.NoError(t, r.out.flush())
		require.Equal(t, "error getting value for attribute: 'units': NetCDF: HDF error\n", buf.String())
		require.Equal(t, 1, strings.Count(buf.String(), "\n"))
	})

	t.Run("mismatched tag", func(t *testing.T) {
		stub := &valueStub{values: IntValues(1)}
		r, buf := newTestReporter(stub)
		r.renderAttribute(Global, "version", Short, 1)
		require.NoError(t, r.out.flush())
		require.Equal(t, "error getting value for attribute: 'version': "+ErrBadType.Error()+"\n", buf.String())
	})
}

func TestRenderElement(t *testing.T) {
	stub := &valueStub{values: TextValues("x")}
	r, _ := newTestReporter(stub)
	require.Equal(t, "x", r.renderElement(1, 0, Char))

	stub.values, stub.err = Values{}, ErrInvalidCoords
	require.Equal(t,
		"error getting value for dimension variable with id 1: NetCDF: Index exceeds dimension bound",
		r.renderElement(1, 5, Int))

	require.Equal(t, unsupportedMarker, r.renderElement(1, 0, Unsupported))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestSink_StickyError(t *testing.T) {
	s := &sink{w: bufio.NewWriterSize(failingWriter{}, 16)}
	s.print(strings.Repeat("x", 64))
	require.Error(t, s.err)

	first := s.err
	s.printf("%d", 1)
	require.Same(t, first, s.err)
	require.EqualError(t, s.flush(), "disk full")
}
