// Package poollog bridges logrus into the logging seam the pool core and
// its wrapper factories use for the swallowed-exception policy described
// in SPEC_FULL.md §4.8, the same bridging idiom the corpus this module is
// modeled on uses for its own logging.Logger type.
package poollog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the full structured-logging surface available to callers that
// want more than the pool package's minimal Warnf/Errorf subset.
type Logger = logrus.FieldLogger

// New returns a text-formatted logrus logger writing to w at level.
func New(w io.Writer, level logrus.Level) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// Default returns a logger writing to stderr at info level, suitable as a
// CLI default.
func Default() Logger {
	return New(os.Stderr, logrus.InfoLevel)
}
