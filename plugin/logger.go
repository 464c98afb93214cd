package plugin

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/neovim/go-client/nvim"
	"github.com/rs/zerolog"

	"github.com/nextdb/gateway/core"
)

var _ core.Logger = (*Logger)(nil)

// Logger writes leveled messages. Under neovim the messages go to a file in
// the cache directory, otherwise to stderr.
type Logger struct {
	vim *nvim.Nvim

	mu           sync.Mutex
	logger       zerolog.Logger
	file         *os.File
	triedFileSet bool
}

func NewLogger(vim *nvim.Nvim) *Logger {
	return &Logger{
		vim:          vim,
		logger:       newZerolog(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}),
		triedFileSet: vim == nil,
	}
}

func newZerolog(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// SetLevel sets the minimum level of messages that are written.
func (l *Logger) SetLevel(level zerolog.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = l.logger.Level(level)
}

func (l *Logger) setupFile() error {
	var dir string
	err := l.vim.Call("stdpath", &dir, "cache")
	if err != nil {
		return err
	}
	dir = filepath.Join(dir, "gateway")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	file, err := os.OpenFile(filepath.Join(dir, "gateway.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o666)
	if err != nil {
		return err
	}

	l.file = file
	l.logger = l.logger.Output(file)
	return nil
}

func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
}

func (l *Logger) event(level zerolog.Level) *zerolog.Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.triedFileSet {
		l.triedFileSet = true
		if err := l.setupFile(); err != nil {
			l.logger.Warn().Err(err).Msg("could not open log file")
		}
	}

	return l.logger.WithLevel(level)
}

func (l *Logger) Debugf(format string, args ...any) {
	l.event(zerolog.DebugLevel).Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...any) {
	l.event(zerolog.InfoLevel).Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...any) {
	l.event(zerolog.WarnLevel).Msg(fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...any) {
	l.event(zerolog.ErrorLevel).Msg(fmt.Sprintf(format, args...))
}
