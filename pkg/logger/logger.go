package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. Packages use it directly instead of
// threading a logger through every constructor.
var Log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}

// SetLevel adjusts the log level from its string form, falling back to
// info on an unknown value.
func SetLevel(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		Log.WithField("level", level).Warn("Unknown log level, using info")
		parsed = logrus.InfoLevel
	}
	Log.SetLevel(parsed)
}
