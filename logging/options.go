package logging

import (
	"io"
	"os"

	"github.com/go-kit/kit/log"
)

// Options stores the configuration of a Logger.  This module does not own any
// log files; callers wanting output somewhere other than stdout supply their
// own io.Writer.
type Options struct {
	// Output is the sink for log output.  If unset, a synchronized os.Stdout is used.
	Output io.Writer `json:"-"`

	// JSON is a flag indicating whether JSON logging output is used.  The default is false,
	// meaning that logfmt output is used.
	JSON bool `json:"json"`

	// Level is the error level to output: ERROR, INFO, WARN, or DEBUG.  Any unrecognized string,
	// including the empty string, is equivalent to passing ERROR.
	Level string `json:"level"`
}

func (o *Options) output() io.Writer {
	if o != nil && o.Output != nil {
		return o.Output
	}

	return log.NewSyncWriter(os.Stdout)
}

func (o *Options) loggerFactory() func(io.Writer) log.Logger {
	if o != nil && o.JSON {
		return log.NewJSONLogger
	}

	return log.NewLogfmtLogger
}

func (o *Options) level() string {
	if o != nil {
		return o.Level
	}

	return ""
}
