package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/basilisk-fuzz/basilisk/logging/colors"
	"github.com/rs/zerolog"
)

// GlobalLogger describes a Logger that is disabled by default and is instantiated when the fuzzer is created. Each
// package should create its own sub-logger off of this one, so log output can be filtered by origin.
var GlobalLogger = NewLogger(zerolog.Disabled, false)

// Logger describes a custom logging object that can log events to any arbitrary channel and handles specialized
// formatting for console output.
type Logger struct {
	// level describes the log level of the logger
	level zerolog.Level

	// multiLogger describes a logger used to output logs to any arbitrary channel(s) in either structured or
	// unstructured format.
	multiLogger zerolog.Logger

	// consoleLogger describes a logger used to output unstructured, colorized output to console.
	consoleLogger zerolog.Logger

	// writers describes the io.Writer objects where multiLogger output is sent. This list can be appended to or
	// removed from.
	writers []io.Writer
}

// LogFormat describes what format to log in
type LogFormat string

const (
	// STRUCTURED describes that logging should be done in structured JSON format
	STRUCTURED LogFormat = "structured"
	// UNSTRUCTURED describes that logging should be done in an unstructured format
	UNSTRUCTURED LogFormat = "unstructured"
)

// StructuredLogInfo describes a key-value mapping that can be used to log structured data
type StructuredLogInfo map[string]any

// NewLogger will create a new Logger object with a specific log level. The Logger can output to console, if enabled,
// and to any number of arbitrary io.Writer channels.
func NewLogger(level zerolog.Level, consoleEnabled bool, writers ...io.Writer) *Logger {
	// Instantiate the two base loggers as disabled so that we do not get nil dereferences down the line
	baseMultiLogger := zerolog.New(os.Stdout).Level(zerolog.Disabled)
	baseConsoleLogger := zerolog.New(os.Stdout).Level(zerolog.Disabled)

	// If we are provided writers, enable the multi logger
	if len(writers) > 0 {
		baseMultiLogger = zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()
	}

	// If console logging is enabled, enable the console logger with our custom formatting
	if consoleEnabled {
		consoleWriter := setupDefaultFormatting(zerolog.ConsoleWriter{Out: os.Stdout}, level)
		baseConsoleLogger = zerolog.New(consoleWriter).Level(level)
	}

	return &Logger{
		level:         level,
		multiLogger:   baseMultiLogger,
		consoleLogger: baseConsoleLogger,
		writers:       writers,
	}
}

// NewSubLogger will create a new Logger with unique context in the form of a key-value pair. The expected use of this
// function is for each package to have its own unique logger so that logs are "grep-able" by origin.
func (l *Logger) NewSubLogger(key string, value string) *Logger {
	subMultiLogger := l.multiLogger.With().Str(key, value).Logger()
	subConsoleLogger := l.consoleLogger.With().Str(key, value).Logger()
	return &Logger{
		level:         l.level,
		multiLogger:   subMultiLogger,
		consoleLogger: subConsoleLogger,
		writers:       l.writers,
	}
}

// AddWriter will add a writer to the list of channels where multi-log output is sent. If the writer is already
// registered, this function is a no-op.
func (l *Logger) AddWriter(writer io.Writer, format LogFormat) {
	for _, w := range l.writers {
		if writer == w {
			return
		}
	}

	// For unstructured output, wrap the writer in a console writer with coloring disabled
	if format == UNSTRUCTURED {
		writer = zerolog.ConsoleWriter{Out: writer, NoColor: true}
	}

	l.writers = append(l.writers, writer)
	l.multiLogger = zerolog.New(zerolog.MultiLevelWriter(l.writers...)).Level(l.level).With().Timestamp().Logger()
}

// RemoveWriter removes a writer from the list of writers that the logger manages. If the writer does not exist, this
// function is a no-op.
func (l *Logger) RemoveWriter(writer io.Writer) {
	for i, w := range l.writers {
		if writer == w {
			l.writers = append(l.writers[:i], l.writers[i+1:]...)
			l.multiLogger = zerolog.New(zerolog.MultiLevelWriter(l.writers...)).Level(l.level).With().Timestamp().Logger()
			return
		}
	}
}

// Level will get the log level of the Logger
func (l *Logger) Level() zerolog.Level {
	return l.level
}

// SetLevel will update the log level of the Logger
func (l *Logger) SetLevel(level zerolog.Level) {
	l.level = level
	l.multiLogger = l.multiLogger.Level(level)
	l.consoleLogger = l.consoleLogger.Level(level)
}

// Trace is a wrapper function that will log a trace event
func (l *Logger) Trace(args ...any) {
	l.emit(l.consoleLogger.Trace(), l.multiLogger.Trace(), l.level <= zerolog.DebugLevel, args...)
}

// Debug is a wrapper function that will log a debug event
func (l *Logger) Debug(args ...any) {
	l.emit(l.consoleLogger.Debug(), l.multiLogger.Debug(), l.level <= zerolog.DebugLevel, args...)
}

// Info is a wrapper function that will log an info event
func (l *Logger) Info(args ...any) {
	l.emit(l.consoleLogger.Info(), l.multiLogger.Info(), l.level <= zerolog.DebugLevel, args...)
}

// Warn is a wrapper function that will log a warning event
func (l *Logger) Warn(args ...any) {
	l.emit(l.consoleLogger.Warn(), l.multiLogger.Warn(), l.level <= zerolog.DebugLevel, args...)
}

// Error is a wrapper function that will log an error event
func (l *Logger) Error(args ...any) {
	l.emit(l.consoleLogger.Error(), l.multiLogger.Error(), l.level <= zerolog.DebugLevel, args...)
}

// Panic is a wrapper function that will log a panic event
func (l *Logger) Panic(args ...any) {
	l.emit(l.consoleLogger.Panic(), l.multiLogger.Panic(), true, args...)
}

// emit builds the console and multi-log messages from the variadic argument list and sends the log events out to
// their respective channels. If includeStack is true, a stack trace is attached to any chained error.
func (l *Logger) emit(consoleLog *zerolog.Event, multiLog *zerolog.Event, includeStack bool, args ...any) {
	consoleMsg, multiMsg, err, info := buildMsgs(args...)

	// Chain the error, if one was provided. Err handles a nil error gracefully.
	consoleLog.Err(err)
	multiLog.Err(err)
	if includeStack {
		consoleLog.Stack()
		multiLog.Stack()
	}

	// Chain any structured log info
	if info != nil {
		consoleLog.Any("info", info)
		multiLog.Any("info", info)
	}

	// Sending the messages fires the events. The multi log send is deferred so that a panic-level console event
	// does not prevent the other channels from receiving the log.
	defer multiLog.Msg(multiMsg)
	consoleLog.Msg(consoleMsg)
}

// buildMsgs takes a variadic list of arguments of any type and builds two strings: a colorized one for console
// logging and a plain one for file/structured logging. A colors.ColorFunc argument switches the current color
// context for subsequent arguments. At most one error and one StructuredLogInfo may be provided; they are returned
// for chaining instead of being rendered into the message strings.
func buildMsgs(args ...any) (string, string, error, StructuredLogInfo) {
	if len(args) == 0 {
		return "", "", nil, nil
	}

	colorCtx := colors.Reset
	consoleOutput := make([]string, 0, len(args))
	fileOutput := make([]string, 0, len(args))
	var info StructuredLogInfo
	var err error

	for _, arg := range args {
		switch t := arg.(type) {
		case colors.ColorFunc:
			colorCtx = t
		case StructuredLogInfo:
			info = t
		case error:
			err = t
		default:
			consoleOutput = append(consoleOutput, colorCtx(t))
			fileOutput = append(fileOutput, fmt.Sprintf("%v", t))
		}
	}

	return strings.Join(consoleOutput, ""), strings.Join(fileOutput, ""), err, info
}

// setupDefaultFormatting updates the console writer's formatting to the basilisk standard.
func setupDefaultFormatting(writer zerolog.ConsoleWriter, level zerolog.Level) zerolog.ConsoleWriter {
	// Console output carries no timestamp
	writer.FormatTimestamp = func(i interface{}) string {
		return ""
	}

	// Define a custom format for each level
	writer.FormatLevel = func(i any) string {
		level, err := zerolog.ParseLevel(i.(string))
		if err != nil {
			panic(fmt.Sprintf("unable to parse the log level: %v", err))
		}

		switch level {
		case zerolog.TraceLevel:
			return colors.CyanBold(zerolog.LevelTraceValue)
		case zerolog.DebugLevel:
			return colors.BlueBold(zerolog.LevelDebugValue)
		case zerolog.InfoLevel:
			return colors.GreenBold(colors.LEFT_ARROW)
		case zerolog.WarnLevel:
			return colors.YellowBold(zerolog.LevelWarnValue)
		case zerolog.ErrorLevel:
			return colors.RedBold(zerolog.LevelErrorValue)
		case zerolog.FatalLevel:
			return colors.RedBold(zerolog.LevelFatalValue)
		case zerolog.PanicLevel:
			return colors.RedBold(zerolog.LevelPanicValue)
		default:
			return i.(string)
		}
	}

	// Above debug level, exclude the `module` key from console output to keep lines short
	if level > zerolog.DebugLevel {
		writer.FieldsExclude = []string{"module"}
	}

	return writer
}
