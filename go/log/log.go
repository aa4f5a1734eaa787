package log

import (
	"io"
	"os"

	hclog "github.com/hashicorp/go-hclog"
)

var L hclog.Logger

func init() {
	L = hclog.New(&hclog.LoggerOptions{Name: "sysemu"})
	L.SetLevel(hclog.Info)

	if str := os.Getenv("TRACE"); str != "" {
		L.SetLevel(hclog.Trace)
	}
}

// New returns a logger writing to w. Used by tests and the cli to capture trace output.
func New(w io.Writer, level hclog.Level) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "sysemu",
		Output: w,
		Level:  level,
	})
}

func EnableTrace() {
	L.SetLevel(hclog.Trace)
}
