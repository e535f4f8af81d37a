package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Riyasinha-01/Voyage/app/observability/metrics"
	"github.com/Riyasinha-01/Voyage/internal/api/destinations"
	"github.com/Riyasinha-01/Voyage/internal/types"
)

type MockBackendClient struct {
	mock.Mock
}

var _ BackendClient = (*MockBackendClient)(nil)

func (m *MockBackendClient) SendMessage(ctx context.Context, token, message, chatID string) (string, string, error) {
	args := m.Called(ctx, token, message, chatID)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockBackendClient) ListChats(ctx context.Context, token string) ([]types.ChatSummary, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.ChatSummary), args.Error(1)
}

func (m *MockBackendClient) History(ctx context.Context, token, chatID string) (*types.ChatHistory, error) {
	args := m.Called(ctx, token, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ChatHistory), args.Error(1)
}

func (m *MockBackendClient) DeleteChat(ctx context.Context, token, chatID string) error {
	args := m.Called(ctx, token, chatID)
	return args.Error(0)
}

func (m *MockBackendClient) Profile(ctx context.Context, token string) (*types.UserProfile, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserProfile), args.Error(1)
}

const parisReply = "Day 1: Arrive in Paris\n- Visit the Louvre\n- Walk along the Seine\n\nDestination: Paris"

func newTestService(backend BackendClient) *ServiceImpl {
	return NewServiceImpl(backend, destinations.NewExtractor(), discardLogger(), nil)
}

func TestServiceImpl_SendMessage(t *testing.T) {
	backend := new(MockBackendClient)
	backend.On("SendMessage", mock.Anything, "tok", "Plan Paris", "").Return("c9", parisReply, nil)

	resp, err := newTestService(backend).SendMessage(context.Background(), "tok", types.SendMessageRequest{Message: "  Plan Paris "})

	require.NoError(t, err)
	assert.Equal(t, "c9", resp.ChatID)
	assert.Equal(t, types.RoleAssistant, resp.Reply.Role)
	assert.Equal(t, parisReply, resp.Reply.Content)
	require.Len(t, resp.Reply.Blocks, 3)
	assert.Equal(t, types.BlockDayHeading, resp.Reply.Blocks[0].Kind)
	assert.Equal(t, "Arrive in Paris", resp.Reply.Blocks[0].Rest)
	assert.Equal(t, []string{"Paris"}, resp.Reply.Destinations)
	backend.AssertExpectations(t)
}

func TestServiceImpl_SendMessage_Empty(t *testing.T) {
	backend := new(MockBackendClient)
	_, err := newTestService(backend).SendMessage(context.Background(), "tok", types.SendMessageRequest{Message: "   "})

	assert.ErrorIs(t, err, ErrEmptyMessage)
	backend.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestServiceImpl_SendMessage_BackendError(t *testing.T) {
	metrics.InitAppMetrics()
	backend := new(MockBackendClient)
	backend.On("SendMessage", mock.Anything, "tok", "hi", "c1").Return("", "", &BackendError{Status: 500, Message: "boom"})

	svc := NewServiceImpl(backend, destinations.NewExtractor(), discardLogger(), metrics.Get())
	_, err := svc.SendMessage(context.Background(), "tok", types.SendMessageRequest{Message: "hi", ChatID: "c1"})

	var backendErr *BackendError
	require.True(t, errors.As(err, &backendErr))
	assert.Equal(t, 500, backendErr.Status)
}

func TestServiceImpl_ListChats_UntitledTitle(t *testing.T) {
	backend := new(MockBackendClient)
	backend.On("ListChats", mock.Anything, "tok").Return([]types.ChatSummary{
		{ChatID: "a", Title: "Kyoto in spring"},
		{ChatID: "b", Title: "  "},
	}, nil)

	chats, err := newTestService(backend).ListChats(context.Background(), "tok")

	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, "Kyoto in spring", chats[0].Title)
	assert.Equal(t, UntitledTitle, chats[1].Title)
}

func TestServiceImpl_ListChats_Empty(t *testing.T) {
	backend := new(MockBackendClient)
	backend.On("ListChats", mock.Anything, "tok").Return(nil, nil)

	chats, err := newTestService(backend).ListChats(context.Background(), "tok")
	require.NoError(t, err)
	assert.NotNil(t, chats)
	assert.Empty(t, chats)
}

func TestServiceImpl_History_DecoratesAssistantOnly(t *testing.T) {
	backend := new(MockBackendClient)
	backend.On("History", mock.Anything, "tok", "a").Return(&types.ChatHistory{
		ChatID: "a",
		Messages: []types.ChatMessage{
			{Role: types.RoleUser, Content: "Trip to **Rome**?"},
			{Role: types.RoleAssistant, Content: "**Tokyo** is famous for its nightlife, and Kyoto for its temples."},
		},
	}, nil)

	history, err := newTestService(backend).History(context.Background(), "tok", "a")

	require.NoError(t, err)
	require.Len(t, history.Messages, 2)
	assert.Empty(t, history.Messages[0].Blocks)
	assert.Empty(t, history.Messages[0].Destinations)
	assert.Equal(t, []string{"Tokyo", "Kyoto"}, history.Messages[1].Destinations)
	require.Len(t, history.Messages[1].Blocks, 1)
	assert.Equal(t, types.BlockParagraph, history.Messages[1].Blocks[0].Kind)
}

func TestServiceImpl_History_NotFound(t *testing.T) {
	backend := new(MockBackendClient)
	backend.On("History", mock.Anything, "tok", "x").Return(nil, ErrChatNotFound)

	_, err := newTestService(backend).History(context.Background(), "tok", "x")
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func TestServiceImpl_DeleteAndSession(t *testing.T) {
	backend := new(MockBackendClient)
	backend.On("DeleteChat", mock.Anything, "tok", "a").Return(nil)
	backend.On("Profile", mock.Anything, "tok").Return(&types.UserProfile{Email: "ana@example.com"}, nil)
	backend.On("Profile", mock.Anything, "stale").Return(nil, ErrUnauthorized)

	svc := newTestService(backend)
	require.NoError(t, svc.DeleteChat(context.Background(), "tok", "a"))

	profile, err := svc.Session(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", profile.Email)

	_, err = svc.Session(context.Background(), "stale")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
