package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogEventRoundTrip(t *testing.T) {
	event := NewLogEvent("list-contacts", "list all contacts")
	assert.Equal(t, "list-contacts$$list all contacts", event.ToString())
	assert.Equal(t, event, NewLogEventFromString(event.ToString()))
}

func TestNewLogEvent_withoutDescription(t *testing.T) {
	event := NewLogEvent("get-contact")
	assert.Equal(t, "get-contact", event.ToString())
	assert.Empty(t, event.Description)
}

func TestNewLogEventFromString(t *testing.T) {
	event := NewLogEventFromString("delete-contact$$delete a contact")
	assert.Equal(t, "delete-contact", event.Type)
	assert.Equal(t, "delete a contact", event.Description)

	bare := NewLogEventFromString("delete-contact")
	assert.Equal(t, "delete-contact", bare.Type)
	assert.Empty(t, bare.Description)

	assert.Empty(t, NewLogEventFromString("").Type)
}
