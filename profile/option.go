package profile

import (
	"runtime"

	"github.com/ardnew/ckview/log"
)

// Option configures [Build], [NewBuilder], and [Profile.Synced].
type Option func(*options)

type options struct {
	reader    SourceReader
	stats     *SyncStats
	logger    log.Logger
	directory string
	jobs      int
}

// WithDirectory sets the directory recorded for every file with debug
// information added by a [Builder].
func WithDirectory(dir string) Option {
	return func(o *options) {
		o.directory = dir
	}
}

// WithReader sets the source of file contents used by [Profile.Synced].
// The default reads files from the local filesystem.
func WithReader(r SourceReader) Option {
	return func(o *options) {
		if r != nil {
			o.reader = r
		}
	}
}

// WithJobs limits the number of file sections synchronized at once.
// Values less than 1 select [runtime.GOMAXPROCS].
func WithJobs(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}

		o.jobs = n
	}
}

// WithStats directs [Profile.Synced] to store its counters in stats.
func WithStats(stats *SyncStats) Option {
	return func(o *options) {
		o.stats = stats
	}
}

// WithLogger sets the structured logger.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func makeOptions(opts ...Option) options {
	o := options{
		reader: FileReader{},
		jobs:   runtime.GOMAXPROCS(0),
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
