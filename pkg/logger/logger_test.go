package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationIDRoundTrip(t *testing.T) {
	ctx := WithOperationID(context.Background(), "op-123")
	assert.Equal(t, "op-123", GetOperationID(ctx))
	assert.Empty(t, GetOperationID(context.Background()))
}

func TestOperationIDMiddleware(t *testing.T) {
	var seenOpID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenOpID = GetOperationID(r.Context())
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	OperationIDMiddleware(next).ServeHTTP(w, r)

	require.NotEmpty(t, seenOpID)
	assert.Equal(t, seenOpID, w.Header().Get(OperationIDHeader))
}

func TestPrepareLogPrefix(t *testing.T) {
	l := &contextLogger{context: WithOperationID(context.Background(), "op-123")}
	assert.Equal(t, "[opid=op-123] hello %s", l.prepareLogPrefix("hello %s"))

	bare := &contextLogger{context: context.Background()}
	assert.Equal(t, "hello", bare.prepareLogPrefix("hello"))
}
