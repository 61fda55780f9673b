// Copyright (c) 2026 The sagectl Authors.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

var traceEnabled bool

// levels maps SAGECTL_LOG values to Apex levels. Trace rides on Debug and
// is gated separately by traceEnabled.
var levels = map[string]log.Level{
	"trace": log.DebugLevel,
	"debug": log.DebugLevel,
	"info":  log.InfoLevel,
	"warn":  log.WarnLevel,
	"error": log.ErrorLevel,
	"fatal": log.FatalLevel,
}

// InitLogger sets up Apex with the compact handler and a log level taken
// from the SAGECTL_LOG env variable. Unset or unknown values mean error.
func InitLogger() {
	envLevel := strings.ToLower(os.Getenv("SAGECTL_LOG"))
	traceEnabled = envLevel == "trace"

	level, ok := levels[envLevel]
	if !ok {
		level = log.ErrorLevel
	}
	log.SetHandler(&compactHandler{})
	log.SetLevel(level)
}

// compactHandler writes one line per entry: timestamp, single-character
// level, message.
type compactHandler struct{}

var levelChars = map[log.Level]string{
	log.DebugLevel: "D",
	log.InfoLevel:  "I",
	log.WarnLevel:  "W",
	log.ErrorLevel: "E",
	log.FatalLevel: "F",
}

// HandleLog implements the log.Handler interface.
func (h *compactHandler) HandleLog(e *log.Entry) error {
	message := e.Message
	level, ok := levelChars[e.Level]
	if !ok {
		level = "?"
	}
	if rest, found := strings.CutPrefix(message, "TRACE: "); found {
		level = "T"
		message = rest
	}
	fmt.Fprintf(os.Stderr, "%s %s %s\n", time.Now().Format("2006-01-02 15:04:05"), level, message)
	return nil
}

// Tracef logs at Trace level (below Debug).
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug("TRACE: " + fmt.Sprintf(format, args...))
	}
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Infof logs at Info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	log.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs at Error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// WithError returns an entry with the error attached.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
