package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewLogger builds the process logger. format is "console" or "json".
func NewLogger(w io.Writer, format, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level: %s", level)
	}

	var out io.Writer
	switch format {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	case "json":
		out = w
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format: %s (valid: console, json)", format)
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

func loggerFromFlags(cmd *cobra.Command) (zerolog.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	return NewLogger(cmd.ErrOrStderr(), format, level)
}
