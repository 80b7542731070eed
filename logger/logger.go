package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// New builds the structured logger used across the module. An unknown level
// falls back to info.
func New(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "memes",
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
}
