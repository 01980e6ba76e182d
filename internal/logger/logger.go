// Package logger configures the structured application logger. Records go to
// a JSON log file under the XDG state directory and, in verbose mode, to stderr.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wavythreads/wavythreads/internal/branding"
)

const logFileName = "app.log"

var (
	defaultLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))

	// logFile is the file opened by the last Init, if any.
	logFile *os.File
)

// Options controls where log records are written.
type Options struct {
	// ToFile enables the application log file.
	ToFile bool
	// Verbose mirrors records to Stderr at debug level.
	Verbose bool
	// Stderr defaults to os.Stderr.
	Stderr io.Writer
}

// LogFilePath determines the path for the application log file based on the XDG spec.
func LogFilePath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		stateDir = filepath.Join(homeDir, ".local", "state")
	}
	return filepath.Join(stateDir, branding.CLIName(), logFileName), nil
}

// Init replaces the default logger according to opts. A log file that cannot
// be opened is reported on stderr and skipped rather than failing the command.
func Init(opts Options) {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	_ = Close()

	var writers []io.Writer
	if opts.ToFile {
		if f, err := openLogFile(); err != nil {
			fmt.Fprintf(stderr, "Warning: file logging disabled: %v\n", err)
		} else {
			logFile = f
			writers = append(writers, f)
		}
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
		writers = append(writers, stderr)
	}

	var w io.Writer
	switch len(writers) {
	case 0:
		w = io.Discard
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}

	defaultLogger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

func openLogFile() (*os.File, error) {
	path, err := LogFilePath()
	if err != nil {
		return nil, err
	}
	// 0750: user rwx, group rx, others ---
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return f, nil
}

// Close closes the log file opened by Init and resets the logger to discard.
func Close() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	defaultLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	return err
}

// Get returns the current application logger. Before Init it discards records.
func Get() *slog.Logger {
	return defaultLogger
}

// Set replaces the application logger, mainly for tests.
func Set(l *slog.Logger) {
	defaultLogger = l
}
