package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger. Production writes JSON to
// stdout; anything else gets the console writer. An unknown level falls
// back to info.
func Setup(level string, production bool) zerolog.Level {
	return setup(os.Stdout, level, production)
}

func setup(w io.Writer, level string, production bool) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	out := w
	if !production {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: true}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Str("service", "rentdesk-api").Logger()
	return lvl
}
