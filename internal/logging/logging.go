// Package logging builds the zerolog logger used by ofpactgen. Logs go to
// stderr because stdout carries generated code.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Options configures New.
type Options struct {
	Level     string
	NoColor   bool
	Timestamp bool
}

// New returns a console logger writing to w. Color is turned off when w is not
// a terminal.
func New(w io.Writer, opts Options) (zerolog.Logger, error) {
	lvl, ok := parseLevel(opts.Level)
	if !ok {
		return zerolog.Nop(), fmt.Errorf("logging: unknown level %q", opts.Level)
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    opts.NoColor || !isTerminal(w),
		TimeFormat: time.RFC3339,
	}
	if !opts.Timestamp {
		output.PartsExclude = []string{zerolog.TimestampFieldName}
	}

	ctx := zerolog.New(output).Level(lvl).With()
	if opts.Timestamp {
		ctx = ctx.Timestamp()
	}
	return ctx.Logger(), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "warn", "warning":
		return zerolog.WarnLevel, true
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.NoLevel, false
	}
}
