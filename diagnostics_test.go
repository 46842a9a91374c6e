package dfkernel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpan_String(t *testing.T) {
	s := Span{CallIndex: 2}
	require.Equal(t, "call#2", s.String())

	s2 := Span{CallIndex: 3, Operator: "unique"}
	require.Equal(t, "call#3(unique)", s2.String())
}

func TestDiagnostic_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	d := Diagnostic{Span: Span{CallIndex: 1}, Message: "bad thing", Cause: cause}
	require.Contains(t, d.Error(), "bad thing")
	require.Contains(t, d.Error(), "root cause")
	require.ErrorIs(t, d, cause)
}

func TestDiagnostic_ErrorWithoutCause(t *testing.T) {
	d := Diagnostic{Span: Span{CallIndex: 0}, Message: "oops"}
	require.Equal(t, "call#0: oops", d.Error())
	require.Nil(t, d.Unwrap())
}

func TestDiagnostics_HasErrors(t *testing.T) {
	var ds Diagnostics
	require.False(t, ds.HasErrors())

	ds = append(ds, Diagnostic{Message: "x"})
	require.True(t, ds.HasErrors())
}

func TestDiagnostics_ErrorMessageCounts(t *testing.T) {
	var empty Diagnostics
	require.Equal(t, "dfkernel: no diagnostics", empty.Error())

	one := Diagnostics{{Message: "first"}}
	require.Equal(t, one[0].Error(), one.Error())

	many := Diagnostics{{Message: "first"}, {Message: "second"}}
	require.Contains(t, many.Error(), "2 construction diagnostics")
}
