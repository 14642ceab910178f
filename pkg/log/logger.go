/*
 Licensed to the Apache Software Foundation (ASF) under one
 or more contributor license agreements.  See the NOTICE file
 distributed with this work for additional information
 regarding copyright ownership.  The ASF licenses this file
 to you under the Apache License, Version 2.0 (the
 "License"); you may not use this file except in compliance
 with the License.  You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package log

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var once sync.Once
var logger *zap.Logger
var config *zap.Config
var aLevel *zap.AtomicLevel

// Logger returns the process wide logger. If the hosting service has
// installed a global zap logger via zap.ReplaceGlobals() that logger is
// reused, otherwise a console logger writing to stderr is created on
// first use.
func Logger() *zap.Logger {
	once.Do(func() {
		if logger = zap.L(); isNopLogger(logger) {
			config = createConfig()
			var err error
			logger, err = config.Build()
			// this should really not happen so just write to stdout and set a Nop logger
			if err != nil {
				fmt.Printf("Logging disabled, logger init failed with error: %v\n", err)
				logger = zap.NewNop()
			}
		}
	})
	return logger
}

// Named returns a child of the process logger scoped to the given
// component name. Components use this instead of carrying logger
// instances around.
func Named(name string) *zap.Logger {
	return Logger().Named(name)
}

func IsDebugEnabled() bool {
	if logger == nil {
		// when under development mode
		return true
	}
	return logger.Core().Enabled(zapcore.DebugLevel)
}

// A noop logger means no global logger has been installed by the hosting
// service, see zap.ReplaceGlobals(). In that case we own logger creation.
func isNopLogger(logger *zap.Logger) bool {
	return reflect.DeepEqual(zap.NewNop(), logger)
}

// Visible by tests
func InitAndSetLevel(level zapcore.Level) {
	if config == nil {
		Logger()
	}
	config.Level.SetLevel(level)
}

func GetAtomicLevel() *zap.AtomicLevel {
	return aLevel
}

// Create a log config to keep full control over the output:
// level DEBUG, console encoding, writes to stderr, development mode
// (DPanicLevel), stack traces at WarnLevel and above.
func createConfig() *zap.Config {
	atomicLevel := zap.NewAtomicLevelAt(zap.DebugLevel)
	aLevel = &atomicLevel

	return &zap.Config{
		Level:       atomicLevel,
		Development: true,
		Encoding:    "console",
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:    "message",
			LevelKey:      "level",
			TimeKey:       "time",
			NameKey:       "name",
			CallerKey:     "caller",
			StacktraceKey: "stacktrace",
			LineEnding:    zapcore.DefaultLineEnding,
			// only EncodeName is optional all others must be set
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
}
