package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appMiddleware "github.com/Riyasinha-01/Voyage/app/middleware"
	"github.com/Riyasinha-01/Voyage/config"
	"github.com/Riyasinha-01/Voyage/internal/types"
)

func newChatRouter(backend BackendClient) http.Handler {
	h := NewHandler(newTestService(backend), discardLogger())
	r := chi.NewRouter()
	r.Use(appMiddleware.Authenticate(config.JWTConfig{}, discardLogger()))
	r.Post("/chat/message", h.SendMessage)
	r.Get("/chat/list", h.ListChats)
	r.Get("/chat/history/{chatID}", h.History)
	r.Delete("/chat/{chatID}", h.DeleteChat)
	r.Get("/session", h.Session)
	return r
}

func call(h http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandler_SendMessage(t *testing.T) {
	backend := new(MockBackendClient)
	backend.On("SendMessage", mock.Anything, "tok", "Plan Paris", "").Return("c9", parisReply, nil)

	rr := call(newChatRouter(backend), http.MethodPost, "/chat/message", `{"message":"Plan Paris"}`, "tok")

	require.Equal(t, http.StatusOK, rr.Code)
	var resp types.SendMessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "c9", resp.ChatID)
	assert.Equal(t, []string{"Paris"}, resp.Reply.Destinations)
}

func TestHandler_SendMessage_Validation(t *testing.T) {
	backend := new(MockBackendClient)
	r := newChatRouter(backend)

	rr := call(r, http.MethodPost, "/chat/message", `{"chat_id":"c1"}`, "tok")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = call(r, http.MethodPost, "/chat/message", `{"message":"hi"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHandler_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: ErrChatNotFound, status: http.StatusNotFound},
		{name: "unauthorized", err: ErrUnauthorized, status: http.StatusUnauthorized},
		{name: "backend error", err: &BackendError{Status: 500, Message: "boom"}, status: http.StatusBadGateway},
		{name: "offline", err: errors.New("connection refused"), status: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := new(MockBackendClient)
			backend.On("History", mock.Anything, "tok", "a").Return(nil, tt.err)

			rr := call(newChatRouter(backend), http.MethodGet, "/chat/history/a", "", "tok")
			assert.Equal(t, tt.status, rr.Code)
		})
	}
}

func TestHandler_Session(t *testing.T) {
	backend := new(MockBackendClient)
	backend.On("Profile", mock.Anything, "good").Return(&types.UserProfile{Email: "ana@example.com", Name: "Ana"}, nil)
	backend.On("Profile", mock.Anything, "stale").Return(nil, ErrUnauthorized)
	backend.On("Profile", mock.Anything, "offline").Return(nil, errors.New("dial tcp: connection refused"))
	r := newChatRouter(backend)

	rr := call(r, http.MethodGet, "/session", "", "good")
	require.Equal(t, http.StatusOK, rr.Code)
	var ok SessionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ok))
	assert.True(t, ok.Authenticated)
	assert.Equal(t, "Ana", ok.User.Name)

	rr = call(r, http.MethodGet, "/session", "", "stale")
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, true, body["clear_token"])

	rr = call(r, http.MethodGet, "/session", "", "offline")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.NotContains(t, rr.Body.String(), "clear_token")
}

func TestHandler_ListAndDelete(t *testing.T) {
	backend := new(MockBackendClient)
	backend.On("ListChats", mock.Anything, "tok").Return([]types.ChatSummary{{ChatID: "a"}}, nil)
	backend.On("DeleteChat", mock.Anything, "tok", "a").Return(nil)
	r := newChatRouter(backend)

	rr := call(r, http.MethodGet, "/chat/list", "", "tok")
	require.Equal(t, http.StatusOK, rr.Code)
	var chats []types.ChatSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &chats))
	require.Len(t, chats, 1)
	assert.Equal(t, UntitledTitle, chats[0].Title)

	rr = call(r, http.MethodDelete, "/chat/a", "", "tok")
	assert.Equal(t, http.StatusOK, rr.Code)
	backend.AssertExpectations(t)
}
