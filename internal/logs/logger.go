package logs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

type Logger = *slog.Logger

// Options selects the handlers of a logger.
type Options struct {
	// Level is shared by every handler and may be changed after New.
	Level *slog.LevelVar
	// Writer receives the text output; nil means os.Stderr.
	Writer io.Writer
	// File, when set, receives JSON records appended to the named file.
	File string
	// Journal adds a systemd journal handler.
	Journal bool
}

// ParseLevel accepts debug, info, warn and error, case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}

// New builds the logger and returns a function releasing the log file.
func New(opts Options) (Logger, func() error, error) {
	level := opts.Level
	if level == nil {
		level = new(slog.LevelVar)
	}
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}
	handlerOptions := &slog.HandlerOptions{
		Level: level,
	}

	// terminal
	terminalHandler := slog.NewTextHandler(writer, handlerOptions)
	handlers := []slog.Handler{terminalHandler}

	// json file
	closeFile := func() error { return nil }
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		handlers = append(handlers, slog.NewJSONHandler(f, handlerOptions))
		closeFile = f.Close
	}

	// systemd journal
	if opts.Journal {
		journalHandler, err := slogjournal.NewHandler(&slogjournal.Options{
			Level: level,
			ReplaceGroup: func(key string) string {
				return toJournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
			record.Add("error", err)
			_ = terminalHandler.Handle(context.Background(), record)
		} else {
			handlers = append(handlers, journalHandler)
		}
	}

	return slog.New(&Handler{
		Handler: slogmulti.Fanout(handlers...),
	}), closeFile, nil
}

func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	str = strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
	return str
}
