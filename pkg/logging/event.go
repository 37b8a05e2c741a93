// Package logging holds the named events used to label API routes for
// request logging and metrics.
package logging

import (
	"fmt"
	"strings"
)

const logEventSeparator = "$$"

// LogEvent names one API operation. Its string form is stored as the mux
// route name and split back apart by the request logging middleware.
type LogEvent struct {
	Type        string
	Description string
}

// NewLogEvent ...
func NewLogEvent(eventType string, description ...string) LogEvent {
	res := LogEvent{
		Type: eventType,
	}

	if len(description) != 0 {
		res.Description = description[0]
	}

	return res
}

// NewLogEventFromString ...
func NewLogEventFromString(eventTypeAndDescription string) (logEvent LogEvent) {
	typeAndDesc := strings.Split(eventTypeAndDescription, logEventSeparator)
	sliceLen := len(typeAndDesc)

	if sliceLen > 0 {
		logEvent.Type = typeAndDesc[0]
	}

	if sliceLen > 1 {
		logEvent.Description = typeAndDesc[1]
	}

	return logEvent
}

// ToString ...
func (l LogEvent) ToString() string {
	if l.Description != "" {
		return fmt.Sprintf("%s%s%s", l.Type, logEventSeparator, l.Description)
	}

	return l.Type
}
