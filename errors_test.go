package ncinfo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		context  string
		cause    error
		expected string
	}{
		{
			name:     "simple error",
			context:  "getting dataset description",
			cause:    errors.New("not a netCDF file"),
			expected: "getting dataset description: not a netCDF file",
		},
		{
			name:     "sentinel cause",
			context:  "variable with id 3",
			cause:    ErrNotVar,
			expected: "variable with id 3: NetCDF: Variable not found",
		},
		{
			name:     "empty context",
			context:  "",
			cause:    errors.New("some error"),
			expected: ": some error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &Error{Kind: KindInquiry, Context: tt.context, Cause: tt.cause}
			require.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestWrapError(t *testing.T) {
	require.Nil(t, WrapError(KindRead, "reading", nil))

	err := WrapError(KindAborted, "report aborted", ErrBadID)
	require.Error(t, err)

	var e *Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, KindAborted, e.Kind)
	require.Equal(t, "report aborted", e.Context)
	require.ErrorIs(t, err, ErrBadID)
}

func TestKindOf(t *testing.T) {
	inner := WrapError(KindInquiry, "variable with id 0", ErrNotVar)
	outer := WrapError(KindAborted, "report aborted", inner)

	require.Equal(t, KindAborted, KindOf(outer))
	require.Equal(t, KindInquiry, KindOf(inner))
	require.Equal(t, KindAborted, KindOf(fmt.Errorf("run: %w", outer)))
	require.Equal(t, ErrorKind(0), KindOf(errors.New("plain")))
	require.Equal(t, ErrorKind(0), KindOf(nil))

	require.True(t, IsAborted(outer))
	require.False(t, IsAborted(inner))
	require.ErrorIs(t, outer, ErrNotVar)
}

func TestReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"plain", ErrNotVar, "NetCDF: Variable not found"},
		{"multi-line", errors.New("yaml: unmarshal errors:\n  line 1: bad\n  line 2: worse"), "yaml: unmarshal errors: line 1: bad line 2: worse"},
		{"wrapped", WrapError(KindOpen, "ocean.nc", errors.New("bad\r\nsignature\t")), "ocean.nc: bad signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Reason(tt.err))
		})
	}
}

func TestErrorKind_String(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindOpen, "open"},
		{KindInquiry, "inquiry"},
		{KindLookup, "lookup"},
		{KindRead, "read"},
		{KindAborted, "aborted"},
		{KindOutput, "output"},
		{ErrorKind(99), "kind_99"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, tt.kind.String())
		})
	}
}
