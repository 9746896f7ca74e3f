// Copyright 2021 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logger

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var LogContainer logContainer

// Options select the level and the optional JSON log file.
type Options struct {
	Level string
	File  string
}

type logContainer struct {
	mu     sync.Mutex
	logger *zap.Logger
	// every file opened by Configure; loggers handed out earlier may
	// still write to them, so they stay open until Close
	files []*os.File
}

// Configure replaces the logger with one built from opts. Loggers already
// returned by GetLogger keep their old outputs.
func (l *logContainer) Configure(opts Options) error {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return fmt.Errorf("log level %q: %w", opts.Level, err)
		}
	}
	cores := []zapcore.Core{getConsoleCore(level)}
	var f *os.File
	if opts.File != "" {
		var err error
		f, err = os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("unable to open logfile: %w", err)
		}
		cores = append(cores, getJsonCore(zapcore.AddSync(f), level))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.logger != nil {
		l.logger.Sync()
	}
	l.logger = zap.New(zapcore.NewTee(cores...))
	if f != nil {
		l.files = append(l.files, f)
	}
	return nil
}

// GetLogger returns the pointer to the logger and creates one if none exists
func (l *logContainer) GetLogger() *zap.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.logger == nil {
		l.logger = zap.New(getConsoleCore(zapcore.InfoLevel))
	}
	return l.logger
}

// GetSimpleLogger returns the sugared version of GetLogger
func (l *logContainer) GetSimpleLogger() *zap.SugaredLogger {
	return l.GetLogger().Sugar()
}

// Close flushes the logger and closes every log file opened by Configure
func (l *logContainer) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.logger != nil {
		l.logger.Sync()
	}
	for _, f := range l.files {
		f.Close()
	}
	l.files = nil
}

// String mirrors zap.String
func (l *logContainer) String(key string, val string) zap.Field {
	return zap.String(key, val)
}

// Int mirrors zap.Int
func (l *logContainer) Int(key string, val int) zap.Field {
	return zap.Int(key, val)
}

// Uint32 mirrors zap.Uint32
func (l *logContainer) Uint32(key string, val uint32) zap.Field {
	return zap.Uint32(key, val)
}

func getConsoleEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func getJsonEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.EpochTimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(encoderConfig)
}

func getConsoleCore(level zapcore.Level) zapcore.Core {
	return zapcore.NewCore(getConsoleEncoder(), zapcore.Lock(os.Stderr), level)
}

func getJsonCore(w zapcore.WriteSyncer, level zapcore.Level) zapcore.Core {
	return zapcore.NewCore(getJsonEncoder(), w, level)
}
