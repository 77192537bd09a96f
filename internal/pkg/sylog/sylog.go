// Copyright (c) 2020, Sylabs Inc. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package sylog

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// MessageLevelEnv seeds the logger level of a process, it is read once at
// startup.
const MessageLevelEnv = "MRCHEM_RECIPE_MESSAGELEVEL"

type messageLevel int

const (
	lvlFatal    messageLevel = iota - 4 // Fatal    : -4
	lvlError                            // Error    : -3
	lvlWarn                             // Warn     : -2
	lvlLog                              // Log      : -1
	_                                   // SKIP     : 0
	lvlInfo                             // Info     : 1
	lvlVerbose                          // Verbose  : 2
	lvlVerbose2                         // Verbose2 : 3
	lvlVerbose3                         // Verbose3 : 4
	lvlDebug                            // Debug    : 5
)

func (l messageLevel) String() string {
	str, ok := messageLabels[l]
	if !ok {
		str = "????"
	}
	return str
}

var messageLabels = map[messageLevel]string{
	lvlFatal:    "FATAL",
	lvlError:    "ERROR",
	lvlWarn:     "WARNING",
	lvlLog:      "LOG",
	lvlInfo:     "INFO",
	lvlVerbose:  "VERBOSE",
	lvlVerbose2: "VERBOSE",
	lvlVerbose3: "VERBOSE",
	lvlDebug:    "DEBUG",
}

var messageColors = map[messageLevel]*color.Color{
	lvlFatal: newColor(color.FgRed),
	lvlError: newColor(color.FgRed),
	lvlWarn:  newColor(color.FgYellow),
	lvlInfo:  newColor(color.FgBlue),
}

var (
	loggerLevel  = lvlInfo
	colorEnabled = isTerminal(os.Stderr)
	logWriter    = (io.Writer)(os.Stderr)
)

// newColor returns a color that is always rendered, fatih/color decides
// from stdout while logs go to stderr, colorEnabled gates it instead.
func newColor(attr color.Attribute) *color.Color {
	c := color.New(attr)
	c.EnableColor()
	return c
}

// isTerminal reports whether f is a terminal not declared as dumb.
func isTerminal(f *os.File) bool {
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func init() {
	if l, err := strconv.Atoi(os.Getenv(MessageLevelEnv)); err == nil {
		loggerLevel = messageLevel(l)
	}
}

func prefix(level messageLevel) string {
	label := fmt.Sprintf("%-8s", level.String()+":")
	if c, ok := messageColors[level]; ok && colorEnabled {
		label = c.Sprint(label)
	}

	if loggerLevel < lvlDebug {
		return label + " "
	}

	pc, _, _, ok := runtime.Caller(3)
	details := runtime.FuncForPC(pc)

	var funcName string
	if !ok || details == nil {
		funcName = "????()"
	} else {
		funcNameSplit := strings.Split(details.Name(), ".")
		funcName = funcNameSplit[len(funcNameSplit)-1] + "()"
	}

	pidStr := fmt.Sprintf("[P=%d]", os.Getpid())

	return fmt.Sprintf("%s%-12s%-30s", label, pidStr, funcName)
}

func writef(level messageLevel, format string, a ...interface{}) {
	if loggerLevel < level {
		return
	}

	message := fmt.Sprintf(format, a...)
	message = strings.TrimSuffix(message, "\n")

	fmt.Fprintf(logWriter, "%s%s\n", prefix(level), message)
}

// Fatalf is equivalent to a call to Errorf followed by os.Exit(255). Code that
// may be imported by other projects should NOT use Fatalf.
func Fatalf(format string, a ...interface{}) {
	writef(lvlFatal, format, a...)
	os.Exit(255)
}

// Errorf writes an ERROR level message to the log but does not exit. This
// should be called when an error is being returned to the calling thread
func Errorf(format string, a ...interface{}) {
	writef(lvlError, format, a...)
}

// Warningf writes a WARNING level message to the log.
func Warningf(format string, a ...interface{}) {
	writef(lvlWarn, format, a...)
}

// Infof writes an INFO level message to the log. By default, INFO level messages
// will always be output (unless running in silent)
func Infof(format string, a ...interface{}) {
	writef(lvlInfo, format, a...)
}

// Verbosef writes a VERBOSE level message to the log.
func Verbosef(format string, a ...interface{}) {
	writef(lvlVerbose, format, a...)
}

// Debugf writes a DEBUG level message to the log.
func Debugf(format string, a ...interface{}) {
	writef(lvlDebug, format, a...)
}

// SetLevel explicitly sets the loggerLevel
func SetLevel(l int) {
	loggerLevel = messageLevel(l)
}

// GetLevel returns the current log level as integer
func GetLevel() int {
	return int(loggerLevel)
}

// DisableColor for the logger
func DisableColor() {
	colorEnabled = false
}

// SetWriter redirects log output, it returns the previous writer.
func SetWriter(w io.Writer) io.Writer {
	old := logWriter
	logWriter = w
	return old
}

// GetEnvVar returns a formatted environment variable string which
// can later be interpreted by init() in a child proc
func GetEnvVar() string {
	return fmt.Sprintf("%s=%d", MessageLevelEnv, loggerLevel)
}

// Writer returns an io.Writer to pass to an external packages logging utility.
// i.e when --quiet option is set, this function returns ioutil.Discard writer to ignore output
func Writer() io.Writer {
	if loggerLevel <= lvlLog {
		return ioutil.Discard
	}
	return logWriter
}
