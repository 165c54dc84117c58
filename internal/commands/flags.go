package commands

import (
	"io"

	"github.com/rs/zerolog"

	"complaintdesk/internal/config"
)

// Flags holds global flag values and the state the Before hook builds from them.
type Flags struct {
	ConfigPath string
	EnvFile    string
	LogLevel   string
	LogFormat  string
	LogFile    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Logger is configured from Config.Log after flag overrides
	Logger    zerolog.Logger
	logCloser io.Closer
}

// Close releases the log file, if one was opened.
func (f *Flags) Close() error {
	if f.logCloser == nil {
		return nil
	}
	return f.logCloser.Close()
}
