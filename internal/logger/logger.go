package logger

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

type LogLevel string

const (
	LevelInfo    LogLevel = "INFO"
	LevelSuccess LogLevel = "SUCCESS"
	LevelWarning LogLevel = "WARNING"
	LevelError   LogLevel = "ERROR"
	LevelDebug   LogLevel = "DEBUG"
)

var verbose bool

// SetVerbose enables debug output. Info, warnings and errors always print.
func SetVerbose(v bool) {
	verbose = v
}

var colorMap = map[LogLevel]func(a ...interface{}) string{
	LevelInfo:    color.New(color.FgBlue).SprintFunc(),
	LevelSuccess: color.New(color.FgGreen).SprintFunc(),
	LevelWarning: color.New(color.FgYellow).SprintFunc(),
	LevelError:   color.New(color.FgRed).SprintFunc(),
	LevelDebug:   color.New(color.FgCyan).SprintFunc(),
}

// Log lines go to stderr so the final answer on stdout stays clean for
// shell pipelines.
func logMessage(level LogLevel, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	colorFunc := colorMap[level]
	fmt.Fprintln(os.Stderr, colorFunc(fmt.Sprintf("[%s] ", level))+message)
}

func Infof(format string, args ...interface{}) {
	logMessage(LevelInfo, format, args...)
}

func Successf(format string, args ...interface{}) {
	logMessage(LevelSuccess, format, args...)
}

func Warnf(format string, args ...interface{}) {
	logMessage(LevelWarning, format, args...)
}

func Errorf(format string, args ...interface{}) {
	logMessage(LevelError, format, args...)
}

// Debugf only prints when verbose mode is on.
func Debugf(format string, args ...interface{}) {
	if !verbose {
		return
	}
	logMessage(LevelDebug, format, args...)
}
