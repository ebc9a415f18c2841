// internal/logging/config.go
//
// Declarative logging configuration.
//
// Context
// -------
// Build() derives a purely descriptive logging layout—formatters,
// handlers, per-logger levels—from the settings tree.  The effective
// level comes from the logging section when one was configured, INFO
// otherwise, and the PACKRAT_LOG_LEVEL env var outranks both no matter
// whether the section exists.  A file handler only appears when the
// section names a file; the console handler always does.
//
// Nothing here touches a logging engine.  engine.go applies a Config to
// Zap; any other consumer is free to interpret the same structure.
//
// Notes
// -----
//   - Oxford commas, two spaces after periods.

package logging

import (
	"os"
	"strings"

	"github.com/yanizio/packrat/internal/config"
)

// EnvLogLevel overrides the effective level unconditionally when set.
const EnvLogLevel = "PACKRAT_LOG_LEVEL"

// DefaultLevel applies when neither the logging section nor the env var
// speaks.
const DefaultLevel = "INFO"

// Formatter names an output style.  Format uses brace placeholders
// interpreted by whichever engine applies the config.
type Formatter struct {
	Name     string
	Format   string
	Colorize bool
}

// Handler binds a formatter and level to a destination.  File is empty
// for the console handler.
type Handler struct {
	Name      string
	Formatter string
	Level     string
	File      string
}

// Logger configures one named logger.
type Logger struct {
	Level    string
	Handlers []string
}

// Config is the declarative logging layout handed to the engine.
type Config struct {
	Level      string
	Formatters []Formatter
	Handlers   []Handler
	Loggers    map[string]Logger
}

// Build derives the layout for loggerNames from the settings tree.
func Build(s *config.Settings, loggerNames []string) Config {
	level := DefaultLevel
	file := ""
	if s != nil && s.Logging != nil {
		if s.Logging.Level != "" {
			level = s.Logging.Level
		}
		file = s.Logging.File
	}
	if env := os.Getenv(EnvLogLevel); env != "" {
		level = env
	}
	level = strings.ToUpper(level)

	formatters := []Formatter{
		{Name: "colour", Format: "{level} [{name}] {message}", Colorize: true},
		{Name: "basic", Format: "{level} [{name}] {message}"},
		{Name: "timestamp", Format: "{time} {level} {name}  {message}"},
	}

	handlers := []Handler{
		{Name: "console", Formatter: "colour", Level: level},
	}
	handlerNames := []string{"console"}
	if file != "" {
		handlers = append(handlers, Handler{
			Name: "file", Formatter: "timestamp", Level: level, File: file,
		})
		handlerNames = append(handlerNames, "file")
	}

	loggers := make(map[string]Logger, len(loggerNames))
	for _, name := range loggerNames {
		loggers[name] = Logger{Level: level, Handlers: handlerNames}
	}

	return Config{
		Level:      level,
		Formatters: formatters,
		Handlers:   handlers,
		Loggers:    loggers,
	}
}
