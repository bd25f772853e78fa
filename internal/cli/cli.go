// Package cli holds the flags, setup and exit handling shared by the
// contacts and library binaries.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/smileynet/recordkeep/internal/config"
	"github.com/smileynet/recordkeep/internal/console"
	"github.com/smileynet/recordkeep/internal/logging"
)

// Globals holds flags shared by every command.
type Globals struct {
	Version  kong.VersionFlag `help:"Show version." short:"V"`
	Config   string           `help:"Read only this config file instead of the user and project layers." type:"path"`
	File     string           `help:"Data file (overrides config)." type:"path"`
	LogLevel string           `help:"Log level: debug, info, warn, error (overrides config)."`
	NoTUI    bool             `help:"Force plain text output even if stdout is a TTY." default:"false"`
}

// ErrSetup marks failures before any record operation ran.
var ErrSetup = errors.New("setup")

// DataFile selects the storage setting that --file overrides.
type DataFile func(*config.Storage) *string

// Data file selectors for each binary.
var (
	ContactsFile DataFile = func(s *config.Storage) *string { return &s.ContactsFile }
	LibraryFile  DataFile = func(s *config.Storage) *string { return &s.LibraryFile }
)

// Env is the resolved setup of one run.
type Env struct {
	Config *config.Config
	Logger *slog.Logger
	// Path is the data file after config, environment and flags.
	Path string
}

// Setup resolves config, applies the flags and starts the stderr logger.
// Every error it returns wraps ErrSetup.
func (g *Globals) Setup(file DataFile) (*Env, error) {
	cfg, err := config.Resolve(g.Config)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSetup, err)
	}

	if g.File != "" {
		*file(&cfg.Storage) = g.File
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.NoTUI {
		cfg.Display.Plain = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSetup, err)
	}

	logger, err := logging.Stderr(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSetup, err)
	}
	return &Env{Config: cfg, Logger: logger, Path: *file(&cfg.Storage)}, nil
}

// Exit codes.
const (
	ExitSuccess = 0
	ExitFailure = 1
	ExitSetup   = 2
)

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrSetup):
		return ExitSetup
	default:
		return ExitFailure
	}
}

// Report writes err to w and returns its exit code. Rejections were already
// shown to the user on stdout and are not repeated.
func Report(w io.Writer, err error) int {
	if err != nil && !errors.Is(err, console.ErrRejected) {
		_, _ = fmt.Fprintf(w, "error: %s\n", err)
	}
	return ExitCode(err)
}
