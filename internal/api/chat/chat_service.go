package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/Riyasinha-01/Voyage/app/observability/metrics"
	"github.com/Riyasinha-01/Voyage/internal/api/structurer"
	"github.com/Riyasinha-01/Voyage/internal/types"
)

const UntitledTitle = "Untitled Trip"

var ErrEmptyMessage = errors.New("message is required")

var _ Service = (*ServiceImpl)(nil)

// DestinationExtractor picks place names out of an assistant reply.
type DestinationExtractor interface {
	Extract(text string) []string
}

// Service proxies the chat backend and decorates assistant replies for
// display.
type Service interface {
	SendMessage(ctx context.Context, token string, req types.SendMessageRequest) (*types.SendMessageResponse, error)
	ListChats(ctx context.Context, token string) ([]types.ChatSummary, error)
	History(ctx context.Context, token, chatID string) (*types.RenderedHistory, error)
	DeleteChat(ctx context.Context, token, chatID string) error
	Session(ctx context.Context, token string) (*types.UserProfile, error)
}

type ServiceImpl struct {
	logger    *slog.Logger
	backend   BackendClient
	extractor DestinationExtractor
	metrics   *metrics.AppMetrics
}

// NewServiceImpl wires the service. m may be nil.
func NewServiceImpl(backend BackendClient, extractor DestinationExtractor, logger *slog.Logger, m *metrics.AppMetrics) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		backend:   backend,
		extractor: extractor,
		metrics:   m,
	}
}

func (s *ServiceImpl) SendMessage(ctx context.Context, token string, req types.SendMessageRequest) (*types.SendMessageResponse, error) {
	ctx, span := otel.Tracer("ChatService").Start(ctx, "SendMessage")
	defer span.End()

	message := strings.TrimSpace(req.Message)
	if message == "" {
		span.SetStatus(codes.Error, "Empty message")
		return nil, ErrEmptyMessage
	}
	span.SetAttributes(attribute.String("chat.id", req.ChatID), attribute.Int("message.length", len(message)))

	chatID, reply, err := s.backend.SendMessage(ctx, token, message, req.ChatID)
	if err != nil {
		s.recordFailure(ctx, "SendMessage", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Backend send failed")
		return nil, err
	}

	rendered := s.Decorate(types.ChatMessage{Role: types.RoleAssistant, Content: reply})
	span.SetAttributes(attribute.Int("reply.blocks", len(rendered.Blocks)))
	span.SetStatus(codes.Ok, "Message sent")
	return &types.SendMessageResponse{ChatID: chatID, Reply: rendered}, nil
}

func (s *ServiceImpl) ListChats(ctx context.Context, token string) ([]types.ChatSummary, error) {
	ctx, span := otel.Tracer("ChatService").Start(ctx, "ListChats")
	defer span.End()

	chats, err := s.backend.ListChats(ctx, token)
	if err != nil {
		s.recordFailure(ctx, "ListChats", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Backend list failed")
		return nil, err
	}

	if chats == nil {
		chats = []types.ChatSummary{}
	}
	for i := range chats {
		if strings.TrimSpace(chats[i].Title) == "" {
			chats[i].Title = UntitledTitle
		}
	}
	span.SetAttributes(attribute.Int("chats.count", len(chats)))
	span.SetStatus(codes.Ok, "Chats listed")
	return chats, nil
}

func (s *ServiceImpl) History(ctx context.Context, token, chatID string) (*types.RenderedHistory, error) {
	ctx, span := otel.Tracer("ChatService").Start(ctx, "History")
	defer span.End()
	span.SetAttributes(attribute.String("chat.id", chatID))

	history, err := s.backend.History(ctx, token, chatID)
	if err != nil {
		s.recordFailure(ctx, "History", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Backend history failed")
		return nil, err
	}

	out := &types.RenderedHistory{
		ChatID:   history.ChatID,
		Messages: make([]types.RenderedMessage, 0, len(history.Messages)),
	}
	if out.ChatID == "" {
		out.ChatID = chatID
	}
	for _, m := range history.Messages {
		out.Messages = append(out.Messages, s.Decorate(m))
	}
	span.SetStatus(codes.Ok, "History loaded")
	return out, nil
}

func (s *ServiceImpl) DeleteChat(ctx context.Context, token, chatID string) error {
	ctx, span := otel.Tracer("ChatService").Start(ctx, "DeleteChat")
	defer span.End()
	span.SetAttributes(attribute.String("chat.id", chatID))

	if err := s.backend.DeleteChat(ctx, token, chatID); err != nil {
		s.recordFailure(ctx, "DeleteChat", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Backend delete failed")
		return err
	}
	s.logger.InfoContext(ctx, "Chat deleted", slog.String("chat_id", chatID))
	span.SetStatus(codes.Ok, "Chat deleted")
	return nil
}

// Session checks the token against the backend profile endpoint.
func (s *ServiceImpl) Session(ctx context.Context, token string) (*types.UserProfile, error) {
	ctx, span := otel.Tracer("ChatService").Start(ctx, "Session")
	defer span.End()

	profile, err := s.backend.Profile(ctx, token)
	if err != nil {
		s.recordFailure(ctx, "Profile", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Session check failed")
		return nil, err
	}
	span.SetStatus(codes.Ok, "Session valid")
	return profile, nil
}

// Decorate attaches display blocks and destination candidates to assistant
// turns. The two are computed independently from the raw content.
func (s *ServiceImpl) Decorate(m types.ChatMessage) types.RenderedMessage {
	out := types.RenderedMessage{Role: m.Role, Content: m.Content}
	if m.Role != types.RoleAssistant {
		return out
	}
	out.Blocks = structurer.Structure(m.Content)
	if s.extractor != nil {
		out.Destinations = s.extractor.Extract(m.Content)
	}
	return out
}

func (s *ServiceImpl) recordFailure(ctx context.Context, op string, err error) {
	level := slog.LevelError
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrChatNotFound) {
		level = slog.LevelWarn
	}
	s.logger.Log(ctx, level, "Chat backend call failed", slog.String("operation", op), slog.Any("error", err))
	if s.metrics != nil {
		s.metrics.BackendErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
	}
}
