// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the application logger, a zap sugared logger with a companion
// security event logger
type Logger struct {
	*zap.SugaredLogger

	security *SecurityLogger
}

func (l *Logger) Security() SecurityLoggerInterface {
	return l.security
}

// NewLogger creates a new default logger
// it will need to be closed with
// ```
// defer logger.Sync()
// ```
// to make sure all the buffered logs are written
func NewLogger(l string) *Logger {
	var lvl string

	switch strings.ToLower(l) {
	case "debug", "info", "warn", "error":
		lvl = strings.ToLower(l)
	default:
		lvl = "error"
	}

	level, err := zap.ParseAtomicLevel(lvl)
	if err != nil {
		panic(err)
	}

	c := zap.NewProductionConfig()
	c.Level = level
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	c.EncoderConfig.TimeKey = "@timestamp"

	z, err := c.Build()
	if err != nil {
		panic(err)
	}

	logger := new(Logger)
	logger.SugaredLogger = z.Sugar()
	logger.security = NewSecurityLogger(z)

	logger.Debugf("logger initialized with level %s", lvl)

	return logger
}
