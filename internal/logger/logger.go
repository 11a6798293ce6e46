package logger

import (
	"io"

	"github.com/fatih/color" // Colored console output
)

// Colorized printf-style functions for each log level, built on fatih/color.
// They write to color.Output (stdout) unless redirected with SetOutput.

// Info logs informational messages in green.
var Info = color.New(color.FgGreen).PrintfFunc()

// Warn logs warning messages in bright magenta.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error logs error messages in red.
var Error = color.New(color.FgRed).PrintfFunc()

// Debug logs debug messages in cyan once Init(true) has been called.
// It is a no-op until then.
var Debug = func(format string, a ...any) {}

// debugEnabled remembers the Init setting so SetOutput can rebuild Debug.
var debugEnabled bool

// Init enables or disables debug logging.
// When enabled, Debug prints cyan-colored messages; otherwise it silently drops them.
func Init(enableDebug bool) {
	debugEnabled = enableDebug
	if enableDebug {
		Debug = printer(color.FgCyan, color.Output)
	} else {
		Debug = func(format string, a ...any) {}
	}
}

// SetOutput redirects every level to w. Tests use it to capture or silence output.
func SetOutput(w io.Writer) {
	Info = printer(color.FgGreen, w)
	Warn = printer(color.FgHiMagenta, w)
	Error = printer(color.FgRed, w)
	if debugEnabled {
		Debug = printer(color.FgCyan, w)
	}
}

// Reset restores stdout output.
func Reset() {
	SetOutput(color.Output)
}

func printer(attr color.Attribute, w io.Writer) func(format string, a ...any) {
	c := color.New(attr)
	return func(format string, a ...any) {
		_, _ = c.Fprintf(w, format, a...)
	}
}
