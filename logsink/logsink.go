// Package logsink implements the structured log sink host interface
// consumed by the core decoders: one JSON object per line, carrying
// timestamp, level, message, and source-location fields, with an
// additional kind field on error records.
package logsink

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/riftbox/cratedigger/dberror"
)

// Level mirrors the severities the core decoders emit. There is no Fatal
// level: a corrupt input either produces an error from Open (the handle is
// never constructed) or a Warn/Error record during a non-fatal skip.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

// Record is a single structured log entry.
type Record struct {
	Level   Level
	Message string
	Source  string
	Kind    dberror.Kind // zero value (Unknown) when Level != Error
	HasKind bool
}

// Sink accepts severity-tagged records. Emit is synchronous and must not
// block on backpressure; implementations that need buffering own it
// internally.
type Sink interface {
	Log(rec Record)
}

// Zerolog is the default Sink, writing one JSON object per line via
// github.com/rs/zerolog, matching the {timestamp, level, message, source}
// contract this module's error-handling design requires.
type Zerolog struct {
	logger zerolog.Logger
}

// New builds a Zerolog sink writing to w. Pass os.Stderr for the default
// destination used by NewDefault.
func New(w io.Writer) *Zerolog {
	zerolog.TimeFieldFormat = time.RFC3339
	logger := zerolog.New(w).With().Timestamp().Logger()
	return &Zerolog{logger: logger}
}

// NewDefault returns a Zerolog sink writing to stderr.
func NewDefault() *Zerolog {
	return New(os.Stderr)
}

// Log implements Sink.
func (z *Zerolog) Log(rec Record) {
	var ev *zerolog.Event
	switch rec.Level {
	case Debug:
		ev = z.logger.Debug()
	case Warn:
		ev = z.logger.Warn()
	case Error:
		ev = z.logger.Error()
	default:
		ev = z.logger.Info()
	}
	if rec.Source != "" {
		ev = ev.Str("source", rec.Source)
	}
	if rec.HasKind {
		ev = ev.Str("kind", rec.Kind.String())
	}
	ev.Msg(rec.Message)
}

// Discard is a Sink that drops every record; useful in tests and for
// callers that genuinely want silence.
type Discard struct{}

// Log implements Sink.
func (Discard) Log(Record) {}

// Nop is a ready-to-use Discard sink.
var Nop Sink = Discard{}
