package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

// Supported values of --log-format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// New returns the logger for the given format.
func New(format string, out io.Writer, verbose bool) (shadowforensic.Logger, error) {
	switch format {
	case "", FormatText:
		return NewConsoleLoggerTo(out, verbose), nil
	case FormatJSON:
		return NewLogrusLogger(out, verbose, logrus.Fields{"app": "shadowforensic"}), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want %s or %s): %w",
			format, FormatText, FormatJSON, shadowforensic.ErrInvalidConfig)
	}
}

var (
	_ shadowforensic.Logger = (*ConsoleLogger)(nil)
	_ shadowforensic.Logger = (*LogrusLogger)(nil)
	_ shadowforensic.Logger = (*NullLogger)(nil)
)
