package dfkernel

import (
	"log/slog"

	"github.com/joeycumines/logiface"
	logifaceslog "github.com/joeycumines/logiface-slog"
)

// Event is the concrete logiface event type this module logs through,
// backed by log/slog. eventloop's own go.mod names logiface as a direct
// dependency but its logging.go never imports it, instead rolling a
// bespoke Logger interface; this module wires the real thing.
type Event = logifaceslog.Event

// Logger is a structured, leveled logger for scheduler-wide diagnostics.
// The Scheduler logs each subgraph run (with its tick and stratum) and each
// tick boundary, at debug level; loop iterations, task-bridge refusals and
// recovered task panics are not logged.
type Logger = logiface.Logger[*Event]

// NewLogger constructs a Logger writing through the given slog.Handler. A
// nil handler yields a disabled logger (all calls are no-ops), matching
// logiface's own "nil writer disables logging" convention.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		return logiface.New[*Event]()
	}
	return logiface.New(logifaceslog.NewLogger(handler))
}
