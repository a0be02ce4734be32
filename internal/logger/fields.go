package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldServer is the structured log field key for the backend base URL.
	FieldServer = "server"
	// FieldSession is the structured log field key for the client session id.
	FieldSession = "session_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to the logger, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// SessionFields describes the backend and the client session.
// Empty values are skipped.
func SessionFields(server, sessionID string) []zap.Field {
	return StringFields(
		StringField{Key: FieldServer, Value: server},
		StringField{Key: FieldSession, Value: sessionID},
	)
}

// WithSession attaches the session fields to the logger.
func WithSession(logger *zap.Logger, server, sessionID string) *zap.Logger {
	return WithFields(logger, SessionFields(server, sessionID)...)
}
