// Copyright © 2016 Abcum Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/sirupsen/logrus"
)

const (
	PanicLevel = logrus.PanicLevel
	FatalLevel = logrus.FatalLevel
	ErrorLevel = logrus.ErrorLevel
	WarnLevel  = logrus.WarnLevel
	InfoLevel  = logrus.InfoLevel
	DebugLevel = logrus.DebugLevel
	TraceLevel = logrus.TraceLevel
)

var log *Logger

// Logger wraps a logrus instance.
type Logger struct {
	*logrus.Logger
}

func init() {
	log = New()
}

// New returns a logger with the default text output.
func New() *Logger {
	return &Logger{
		Logger: &logrus.Logger{
			Out:       os.Stderr,
			Level:     logrus.WarnLevel,
			Hooks:     logrus.LevelHooks{},
			Formatter: &TextFormatter{},
		},
	}
}

// Instance returns the package logger.
func Instance() *logrus.Logger {
	return log.Logger
}

// SetLevel configures the minimum level from its name.
func SetLevel(v string) {
	switch v {
	case "trace":
		log.Logger.SetLevel(logrus.TraceLevel)
	case "debug":
		log.Logger.SetLevel(logrus.DebugLevel)
	case "info":
		log.Logger.SetLevel(logrus.InfoLevel)
	case "warn", "warning":
		log.Logger.SetLevel(logrus.WarnLevel)
	case "error":
		log.Logger.SetLevel(logrus.ErrorLevel)
	case "fatal":
		log.Logger.SetLevel(logrus.FatalLevel)
	case "panic":
		log.Logger.SetLevel(logrus.PanicLevel)
	}
}

// SetFormat configures the output format: text or json.
func SetFormat(v string) {
	switch v {
	case "json":
		log.Logger.SetFormatter(&JSONFormatter{})
	default:
		log.Logger.SetFormatter(&TextFormatter{})
	}
}

// SetOutput configures where log lines go: stdout, stderr, or none.
func SetOutput(v string) {
	switch v {
	case "stdout":
		log.Logger.SetOutput(os.Stdout)
	case "stderr":
		log.Logger.SetOutput(os.Stderr)
	case "none":
		log.Logger.SetOutput(ioutil.Discard)
	}
}

// Display always writes to stdout, regardless of level.
func Display(v ...interface{}) {
	fmt.Println(v...)
}

func Debug(v ...interface{}) { log.Debug(v...) }
func Info(v ...interface{})  { log.Info(v...) }
func Warn(v ...interface{})  { log.Warn(v...) }
func Error(v ...interface{}) { log.Error(v...) }
func Fatal(v ...interface{}) { log.Fatal(v...) }

func Debugf(format string, v ...interface{}) { log.Debugf(format, v...) }
func Infof(format string, v ...interface{})  { log.Infof(format, v...) }
func Warnf(format string, v ...interface{})  { log.Warnf(format, v...) }
func Errorf(format string, v ...interface{}) { log.Errorf(format, v...) }
func Fatalf(format string, v ...interface{}) { log.Fatalf(format, v...) }

// WithField adds a structured field to the entry.
func WithField(key string, value interface{}) *logrus.Entry {
	return log.WithField(key, value)
}

// WithFields adds structured fields to the entry.
func WithFields(fields map[string]interface{}) *logrus.Entry {
	return log.WithFields(logrus.Fields(fields))
}

// WithPrefix tags the entry with the subsystem it came from.
func WithPrefix(prefix string) *logrus.Entry {
	return log.WithField("prefix", prefix)
}
