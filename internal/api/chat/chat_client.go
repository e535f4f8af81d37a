package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Riyasinha-01/Voyage/internal/types"
)

var (
	ErrUnauthorized = errors.New("session is not authorized")
	ErrChatNotFound = errors.New("chat not found")
)

// BackendError is a non-2xx answer from the chat backend.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("chat backend returned %d: %s", e.Status, e.Message)
}

// BackendClient is the remote chat backend as seen with a user's token.
type BackendClient interface {
	SendMessage(ctx context.Context, token, message, chatID string) (newChatID, reply string, err error)
	ListChats(ctx context.Context, token string) ([]types.ChatSummary, error)
	History(ctx context.Context, token, chatID string) (*types.ChatHistory, error)
	DeleteChat(ctx context.Context, token, chatID string) error
	Profile(ctx context.Context, token string) (*types.UserProfile, error)
}

var _ BackendClient = (*HTTPBackendClient)(nil)

type HTTPBackendClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewHTTPBackendClient(baseURL string, timeout time.Duration, logger *slog.Logger) *HTTPBackendClient {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &HTTPBackendClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type sendMessageBody struct {
	Message string `json:"message"`
	ChatID  string `json:"chat_id,omitempty"`
}

type sendMessageReply struct {
	ChatID string `json:"chat_id"`
	Reply  string `json:"reply"`
}

func (c *HTTPBackendClient) SendMessage(ctx context.Context, token, message, chatID string) (string, string, error) {
	var out sendMessageReply
	if err := c.do(ctx, "SendMessage", http.MethodPost, "/chat/message/", token, sendMessageBody{Message: message, ChatID: chatID}, &out); err != nil {
		return "", "", err
	}
	return out.ChatID, out.Reply, nil
}

func (c *HTTPBackendClient) ListChats(ctx context.Context, token string) ([]types.ChatSummary, error) {
	var out []types.ChatSummary
	if err := c.do(ctx, "ListChats", http.MethodGet, "/chat/list/", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPBackendClient) History(ctx context.Context, token, chatID string) (*types.ChatHistory, error) {
	var out types.ChatHistory
	if err := c.do(ctx, "History", http.MethodGet, "/chat/history/"+url.PathEscape(chatID)+"/", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPBackendClient) DeleteChat(ctx context.Context, token, chatID string) error {
	return c.do(ctx, "DeleteChat", http.MethodDelete, "/chat/delete/"+url.PathEscape(chatID)+"/", token, nil, nil)
}

func (c *HTTPBackendClient) Profile(ctx context.Context, token string) (*types.UserProfile, error) {
	var out types.UserProfile
	if err := c.do(ctx, "Profile", http.MethodGet, "/profile/", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPBackendClient) do(ctx context.Context, op, method, path, token string, in, out interface{}) error {
	ctx, span := otel.Tracer("ChatBackendClient").Start(ctx, op)
	defer span.End()
	span.SetAttributes(attribute.String("http.method", method), attribute.String("http.path", path))

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Backend unreachable")
		return fmt.Errorf("chat backend %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to read backend response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		span.SetStatus(codes.Error, "Unauthorized")
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		span.SetStatus(codes.Error, "Not found")
		return ErrChatNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		berr := &BackendError{Status: resp.StatusCode, Message: errorMessage(raw)}
		span.RecordError(berr)
		span.SetStatus(codes.Error, "Backend error")
		return berr
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			span.RecordError(err)
			return fmt.Errorf("failed to decode backend response: %w", err)
		}
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

// errorMessage pulls {"error": "..."} out of a backend error body.
func errorMessage(raw []byte) string {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != "" {
		return envelope.Error
	}
	msg := strings.TrimSpace(string(raw))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
