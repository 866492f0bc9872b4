package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Log = Logger{}

// Logger writes json entries to a file. It stays silent until Start is given
// a path, so the editor's own stdout is never mixed with log output.
type Logger struct {
	isEnabled bool
	logger    *zap.Logger
	sugar     *zap.SugaredLogger
}

// Start opens the log file. An empty path falls back to SLED_LOG; if that is
// unset too, logging stays disabled.
func (this *Logger) Start(path string, verbose bool) error {
	if path == "" {
		logfilename, exists := os.LookupEnv("SLED_LOG")
		if !exists || logfilename == "" { this.isEnabled = false; return nil }
		path = logfilename
	}

	config := zap.NewProductionConfig()
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{path}
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	config.Sampling = nil
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := config.Build()
	if err != nil { return err }

	this.logger = logger
	this.sugar = logger.Sugar()
	this.isEnabled = true
	return nil
}

// Enabled reports whether entries are written anywhere.
func (this *Logger) Enabled() bool { return this.isEnabled }

func (this *Logger) Info(args ...string) {
	if !this.isEnabled { return }
	this.sugar.Info(strings.Join(args, " "))
}

func (this *Logger) Debug(args ...string) {
	if !this.isEnabled { return }
	this.sugar.Debug(strings.Join(args, " "))
}

func (this *Logger) Error(args ...string) {
	if !this.isEnabled { return }
	this.sugar.Error(strings.Join(args, " "))
}

// Infow logs a message with key/value pairs.
func (this *Logger) Infow(message string, keysAndValues ...interface{}) {
	if !this.isEnabled { return }
	this.sugar.Infow(message, keysAndValues...)
}

func (this *Logger) Stop() {
	if !this.isEnabled { return }
	_ = this.logger.Sync()
	this.isEnabled = false
}
