package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// formatter prefixes every message with the owning component.
type formatter struct {
	owner string
	lf    logrus.Formatter
}

// Format satisfies the logrus.Formatter interface.
func (f *formatter) Format(entry *logrus.Entry) ([]byte, error) {
	entry.Message = fmt.Sprintf("[%s] %s", f.owner, entry.Message)
	return f.lf.Format(entry)
}

// NewLogger returns a logger writing to stderr with colours when it is a terminal.
func NewLogger(owner string, level logrus.Level) *logrus.Logger {
	return NewLoggerTo(os.Stderr, owner, level)
}

// NewLoggerTo returns a logger writing to output.
func NewLoggerTo(output io.Writer, owner string, level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(output)
	logger.SetLevel(level)
	logger.SetFormatter(&formatter{
		owner: owner,
		lf: &logrus.TextFormatter{
			ForceColors:     IsTerminal(output),
			DisableColors:   !IsTerminal(output),
			FullTimestamp:   true,
			TimestampFormat: time.StampMilli,
		},
	})
	return logger
}

// IsTerminal reports whether output is an interactive terminal.
func IsTerminal(output io.Writer) bool {
	file, ok := output.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
