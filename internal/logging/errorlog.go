package logging

import (
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewErrorLog returns a logger that appends server faults to a local
// rotating file, alongside whatever goes to stdout.
func NewErrorLog(path string) *slog.Logger {
	if path == "" {
		path = "server_error.log"
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     30,
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelError})
	return slog.New(h)
}
