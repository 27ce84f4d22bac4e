package rekordbox

import (
	"github.com/riftbox/cratedigger/hostio"
	"github.com/riftbox/cratedigger/logsink"
)

// Options configures a DB or ExtDB open call.
type Options struct {
	fs  hostio.FS
	log logsink.Sink
}

// Option is a functional option for Open/OpenExt.
type Option func(*Options)

// WithFS overrides the filesystem used to read PDB and ANLZ files.
// Defaults to hostio.NewDefault(), which reads from the real OS
// filesystem; tests typically pass hostio.FromFS(fstest.MapFS{...}).
func WithFS(fs hostio.FS) Option {
	return func(o *Options) { o.fs = fs }
}

// WithLogger routes structured load/query diagnostics to the given sink
// instead of the default no-op sink.
func WithLogger(log logsink.Sink) Option {
	return func(o *Options) { o.log = log }
}

func newOptions(opts []Option) Options {
	o := Options{fs: hostio.NewDefault(), log: logsink.Nop}
	for _, apply := range opts {
		apply(&o)
	}
	return o
}
