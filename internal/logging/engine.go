// internal/logging/engine.go
//
// Zap application of a declarative logging Config (Zap + Lumberjack).
//
// Context
// -------
// Apply() turns the structure Build() produced into a real logger: a
// console core on stderr (colorized levels when the console handler's
// formatter asks for them) plus, when a file handler is present, a JSON
// core behind a Lumberjack sink.  Rotation, compression, and retention
// are Lumberjack's problem; no external log-rotate job is required.
//
// Usage
// -----
//
//	cfg := logging.Build(wrapper.Settings, []string{"packrat"})
//	log, err := logging.Apply(cfg)
//	if err != nil { … }
//	log.Infow("store selected", "kind", desc.Kind)
//
// Notes
// -----
//   - Zap cores use ISO-8601 timestamps and lowercase levels, and the
//     logger is installed process-wide via zap.ReplaceGlobals.
//   - Oxford commas, two spaces after periods.

package logging

import (
	"fmt"
	"os"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zapLevel maps declarative level names onto Zap's scale.
func zapLevel(name string) (zapcore.Level, error) {
	switch name {
	case "DEBUG":
		return zap.DebugLevel, nil
	case "INFO":
		return zap.InfoLevel, nil
	case "WARNING":
		return zap.WarnLevel, nil
	case "ERROR":
		return zap.ErrorLevel, nil
	case "CRITICAL":
		return zap.FatalLevel, nil
	}
	return zap.InfoLevel, fmt.Errorf("unknown log level %q", name)
}

// Apply builds a *zap.SugaredLogger from cfg and installs it as the
// process-wide default.
func Apply(cfg Config) (*zap.SugaredLogger, error) {
	encCfg := zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.LowercaseLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	var cores []zapcore.Core
	for _, h := range cfg.Handlers {
		lvl, err := zapLevel(h.Level)
		if err != nil {
			return nil, err
		}

		if h.File == "" {
			consoleEnc := encCfg
			if colorized(cfg, h.Formatter) {
				consoleEnc.EncodeLevel = zapcore.LowercaseColorLevelEncoder
			}
			cores = append(cores, zapcore.NewCore(
				zapcore.NewConsoleEncoder(consoleEnc),
				zapcore.AddSync(os.Stderr),
				lvl,
			))
			continue
		}

		fileSink := &lumberjack.Logger{
			Filename:   h.File,
			MaxSize:    50, // MB
			MaxBackups: 7,  // keep last seven files
			MaxAge:     14, // days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encCfg),
			zapcore.AddSync(fileSink),
			lvl,
		))
	}

	z := zap.New(zapcore.NewTee(cores...)).Sugar()

	// Make this the global logger so zap.S() works everywhere after boot.
	zap.ReplaceGlobals(z.Desugar())

	return z, nil
}

// colorized reports whether the named formatter asks for colored levels.
func colorized(cfg Config, formatter string) bool {
	for _, f := range cfg.Formatters {
		if f.Name == formatter {
			return f.Colorize
		}
	}
	return false
}
