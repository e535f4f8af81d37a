package chat

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	appMiddleware "github.com/Riyasinha-01/Voyage/app/middleware"
	"github.com/Riyasinha-01/Voyage/internal/api"
	"github.com/Riyasinha-01/Voyage/internal/types"
)

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// SessionResponse reports whether the stored token is still usable.
type SessionResponse struct {
	Authenticated bool               `json:"authenticated"`
	User          *types.UserProfile `json:"user,omitempty"`
}

// SendMessage godoc
// @Summary      Send a chat message
// @Description  Forwards the message to the chat backend and returns the structured reply with destination candidates.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body types.SendMessageRequest true "Message"
// @Success      200 {object} types.SendMessageResponse
// @Failure      400 {object} api.Response
// @Failure      401 {object} api.Response
// @Failure      404 {object} api.Response
// @Failure      502 {object} api.Response
// @Router       /chat/message [post]
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ChatHandler").Start(r.Context(), "SendMessage")
	defer span.End()

	l := h.logger.With(slog.String("method", "SendMessage"))

	var req types.SendMessageRequest
	if err := api.DecodeAndValidate(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid message request", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	token, _ := appMiddleware.GetTokenFromContext(ctx)
	resp, err := h.service.SendMessage(ctx, token, req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		h.writeError(w, r, err)
		return
	}

	span.SetAttributes(attribute.String("chat.id", resp.ChatID))
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
	span.SetStatus(codes.Ok, "Message sent")
}

// ListChats godoc
// @Summary      List chat threads
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} types.ChatSummary
// @Failure      401 {object} api.Response
// @Router       /chat/list [get]
func (h *Handler) ListChats(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ChatHandler").Start(r.Context(), "ListChats")
	defer span.End()

	token, _ := appMiddleware.GetTokenFromContext(ctx)
	chats, err := h.service.ListChats(ctx, token)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		h.writeError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, chats)
	span.SetStatus(codes.Ok, "Chats listed")
}

// History godoc
// @Summary      Get a chat thread
// @Description  Returns every message of the thread; assistant messages carry display blocks and destinations.
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Param        chatID path string true "Chat ID"
// @Success      200 {object} types.RenderedHistory
// @Failure      401 {object} api.Response
// @Failure      404 {object} api.Response
// @Router       /chat/history/{chatID} [get]
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ChatHandler").Start(r.Context(), "History")
	defer span.End()

	chatID := chi.URLParam(r, "chatID")
	if chatID == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "chat id is required")
		return
	}

	token, _ := appMiddleware.GetTokenFromContext(ctx)
	history, err := h.service.History(ctx, token, chatID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		h.writeError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, history)
	span.SetStatus(codes.Ok, "History loaded")
}

// DeleteChat godoc
// @Summary      Delete a chat thread
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Param        chatID path string true "Chat ID"
// @Success      200 {object} api.Response
// @Failure      401 {object} api.Response
// @Failure      404 {object} api.Response
// @Router       /chat/{chatID} [delete]
func (h *Handler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ChatHandler").Start(r.Context(), "DeleteChat")
	defer span.End()

	chatID := chi.URLParam(r, "chatID")
	token, _ := appMiddleware.GetTokenFromContext(ctx)
	if err := h.service.DeleteChat(ctx, token, chatID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		h.writeError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, api.Response{Success: true, Message: "Chat deleted successfully"})
	span.SetStatus(codes.Ok, "Chat deleted")
}

// Session godoc
// @Summary      Check the session token
// @Description  A 401 carries clear_token=true: the stored token must be discarded. A 503 means the backend is offline and the token should be kept.
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} SessionResponse
// @Failure      401 {object} api.Response
// @Failure      503 {object} api.Response
// @Router       /session [get]
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ChatHandler").Start(r.Context(), "Session")
	defer span.End()

	token, _ := appMiddleware.GetTokenFromContext(ctx)
	profile, err := h.service.Session(ctx, token)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		h.writeError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, SessionResponse{Authenticated: true, User: profile})
	span.SetStatus(codes.Ok, "Session valid")
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var backendErr *BackendError
	switch {
	case errors.Is(err, ErrEmptyMessage):
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnauthorized):
		api.WriteJSONResponse(w, r, http.StatusUnauthorized, map[string]interface{}{
			"success":     false,
			"error":       "session expired or invalid",
			"clear_token": true,
			"request_id":  middleware.GetReqID(r.Context()),
		})
	case errors.Is(err, ErrChatNotFound):
		api.ErrorResponse(w, r, http.StatusNotFound, err.Error())
	case errors.As(err, &backendErr):
		api.ErrorResponse(w, r, http.StatusBadGateway, backendErr.Message)
	default:
		h.logger.ErrorContext(r.Context(), "Chat backend unavailable", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusServiceUnavailable, "chat backend unavailable")
	}
}
