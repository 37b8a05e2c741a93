// Package logger provides a context aware logger on top of glog. Every
// request gets an operation ID which is prefixed to all log lines emitted
// while serving it.
package logger

import (
	"context"
	"fmt"
	"net/http"

	"github.com/golang/glog"
	"github.com/rs/xid"
)

type contextKey string

const (
	// OperationIDKey is the context key under which the operation ID is stored.
	OperationIDKey contextKey = "opID"
	// ActionResultKey marks whether the handler action succeeded or failed.
	ActionResultKey contextKey = "actionResult"

	// ActionSuccess ...
	ActionSuccess = "success"
	// ActionFailed ...
	ActionFailed = "failed"

	// OperationIDHeader is echoed back to the caller for support purposes.
	OperationIDHeader = "X-Operation-ID"
)

// Logger is the minimal logging surface used by handlers and services.
type Logger interface {
	V(level int32) Logger
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Error(err error)
	Fatalf(format string, args ...interface{})
}

var _ Logger = &contextLogger{}

type contextLogger struct {
	context context.Context
	level   int32
}

// New returns a Logger bound to the given context. Log lines carry the
// operation ID when one is present.
func New(ctx context.Context) Logger {
	return &contextLogger{context: ctx}
}

func (l *contextLogger) prepareLogPrefix(format string) string {
	if opID, ok := l.context.Value(OperationIDKey).(string); ok && opID != "" {
		return fmt.Sprintf("[opid=%s] %s", opID, format)
	}
	return format
}

// V ...
func (l *contextLogger) V(level int32) Logger {
	return &contextLogger{
		context: l.context,
		level:   level,
	}
}

// Infof ...
func (l *contextLogger) Infof(format string, args ...interface{}) {
	prefixed := l.prepareLogPrefix(format)
	glog.V(glog.Level(l.level)).Infof(prefixed, args...)
}

// Warningf ...
func (l *contextLogger) Warningf(format string, args ...interface{}) {
	prefixed := l.prepareLogPrefix(format)
	glog.Warningf(prefixed, args...)
}

// Errorf ...
func (l *contextLogger) Errorf(format string, args ...interface{}) {
	prefixed := l.prepareLogPrefix(format)
	glog.Errorf(prefixed, args...)
}

// Error ...
func (l *contextLogger) Error(err error) {
	l.Errorf("%v", err)
}

// Fatalf ...
func (l *contextLogger) Fatalf(format string, args ...interface{}) {
	glog.Fatalf(l.prepareLogPrefix(format), args...)
}

// WithOperationID stores an operation ID in the context.
func WithOperationID(ctx context.Context, opID string) context.Context {
	return context.WithValue(ctx, OperationIDKey, opID)
}

// GetOperationID returns the operation ID stored in the context, if any.
func GetOperationID(ctx context.Context) string {
	opID, _ := ctx.Value(OperationIDKey).(string)
	return opID
}

// OperationIDMiddleware sets a fresh operation ID on every request and
// echoes it in the response headers.
func OperationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		opID := xid.New().String()
		ctx := WithOperationID(r.Context(), opID)
		w.Header().Set(OperationIDHeader, opID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
