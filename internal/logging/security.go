// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"fmt"

	"go.uber.org/zap"
)

const securityAppID = "tenant-session-service"

type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) event(level, event, description string) {
	fields := []zap.Field{
		zap.String("type", "security"),
		zap.String("appid", securityAppID),
		zap.String("event", event),
		zap.String("level", level),
	}

	switch level {
	case "WARN":
		s.l.Warn(description, fields...)
	case "CRITICAL":
		s.l.Error(description, fields...)
	default:
		s.l.Info(description, fields...)
	}
}

func (s *SecurityLogger) SystemStartup() {
	s.event("WARN", "sys_startup", "service started")
}

func (s *SecurityLogger) SystemShutdown() {
	s.event("WARN", "sys_shutdown", "service shutting down")
}

func (s *SecurityLogger) AuthnLoginSuccess(userID string) {
	s.event("INFO", fmt.Sprintf("authn_login_success:%s", userID), fmt.Sprintf("user %s login successfully", userID))
}

func (s *SecurityLogger) AuthnLoginFail(username string) {
	s.event("WARN", fmt.Sprintf("authn_login_fail:%s", username), fmt.Sprintf("user %s login failed", username))
}

func (s *SecurityLogger) AuthzFailure(userID, resource string) {
	s.event("CRITICAL", fmt.Sprintf("authz_fail:%s,%s", userID, resource), fmt.Sprintf("user %s attempted to access %s without entitlement", userID, resource))
}

func (s *SecurityLogger) SessionCreated(userID string) {
	s.event("INFO", fmt.Sprintf("session_created:%s", userID), fmt.Sprintf("user %s has started a new session", userID))
}

func (s *SecurityLogger) SessionExpired(userID, tenantID string) {
	s.event("INFO", fmt.Sprintf("session_expired:%s,%s", userID, tenantID), fmt.Sprintf("user %s session in tenant %s expired due to inactivity", userID, tenantID))
}

func (s *SecurityLogger) SessionDestroyed(userID string) {
	s.event("INFO", fmt.Sprintf("session_destroyed:%s", userID), fmt.Sprintf("user %s session destroyed", userID))
}

func NewSecurityLogger(l *zap.Logger) *SecurityLogger {
	return &SecurityLogger{l: l}
}
