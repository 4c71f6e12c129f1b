// Package logger owns the process-wide zerolog instance. main calls Init
// once; everything else gets the logger through Get or as an injected
// dependency.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how the logger is initialised.
type Options struct {
	// Level names the minimum level (trace, debug, info, warn, error).
	// Unrecognised or empty values fall back to info.
	Level string
	// Pretty switches from JSON to coloured console output, for local
	// development only.
	Pretty bool
	// Output defaults to os.Stdout when nil.
	Output io.Writer
}

var (
	once     sync.Once
	instance zerolog.Logger
	ready    bool
)

// Init builds the singleton. Subsequent calls are no-ops and return the
// logger built by the first call.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		var out io.Writer = os.Stdout
		if opts.Output != nil {
			out = opts.Output
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		level, err := zerolog.ParseLevel(opts.Level)
		if err != nil || level == zerolog.NoLevel {
			level = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(level)

		instance = zerolog.New(out).Level(level).With().Timestamp().Caller().Logger()
		ready = true
	})
	return instance
}

// Get returns the singleton. It panics when called before Init, which is
// always a wiring bug in main.
func Get() zerolog.Logger {
	if !ready {
		panic("logger: Get called before Init")
	}
	return instance
}
