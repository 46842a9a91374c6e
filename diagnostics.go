package dfkernel

import "fmt"

// Span identifies the graph-construction call site a Diagnostic refers to.
// Unlike a textual source span (the surface-syntax macro's concern, out of
// scope here per spec.md §1), this core only ever sees construction calls
// made directly against the Go API, so a Span is simply the ordinal of the
// AddSubgraph/AddHandoff/AddState call that produced it, which is enough for
// a host application to correlate a diagnostic back to its own call site.
type Span struct {
	// CallIndex is the 0-based ordinal of the GraphBuilder call that
	// produced this diagnostic, across all AddHandoff/AddState/AddSubgraph/
	// AddLoopBlock calls in construction order.
	CallIndex int
	// Operator, when non-empty, names the operator template involved.
	Operator string
}

func (s Span) String() string {
	if s.Operator != "" {
		return fmt.Sprintf("call#%d(%s)", s.CallIndex, s.Operator)
	}
	return fmt.Sprintf("call#%d", s.CallIndex)
}

// Diagnostic is a structured construction-time error (§7.1). Diagnostics are
// never returned as plain runtime errors; they are collected and attached to
// a Diagnostics value alongside a safe-to-run empty fallback graph so a host
// application can keep running downstream code even when a graph fails to
// compile.
type Diagnostic struct {
	Span    Span
	Message string
	Cause   error
}

func (d Diagnostic) Error() string {
	if d.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", d.Span, d.Message, d.Cause)
	}
	return fmt.Sprintf("%s: %s", d.Span, d.Message)
}

func (d Diagnostic) Unwrap() error {
	return d.Cause
}

// Diagnostics is an ordered collection of construction-time errors.
type Diagnostics []Diagnostic

func (ds Diagnostics) Error() string {
	switch len(ds) {
	case 0:
		return "dfkernel: no diagnostics"
	case 1:
		return ds[0].Error()
	default:
		return fmt.Sprintf("dfkernel: %d construction diagnostics, first: %s", len(ds), ds[0].Error())
	}
}

// HasErrors reports whether any diagnostic was recorded.
func (ds Diagnostics) HasErrors() bool {
	return len(ds) > 0
}
