package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionIsJSON(t *testing.T) {
	var buf bytes.Buffer
	New("production", &buf).Info("hello", "k", "v")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "v", entry["k"])
}

func TestNew_DevelopmentLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	New("development", &buf).Debug("verbose")
	assert.Contains(t, buf.String(), "verbose")
}

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New("production", &buf)

	h := middleware.RequestID(StructuredLogger(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Contains(t, buf.String(), `"msg":"Request completed"`)
	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"path":"/ping"`)
	assert.NotContains(t, buf.String(), `"req_id":""`)
}
