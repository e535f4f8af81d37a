package planner

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Riyasinha-01/Voyage/internal/api"
)

type Handler struct {
	logger *slog.Logger
}

func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

type PromptResponse struct {
	Prompt string `json:"prompt"`
}

type SuggestionsResponse struct {
	Suggestions []string    `json:"suggestions"`
	Options     FormOptions `json:"options"`
}

// Prompt godoc
// @Summary      Build a trip planning prompt
// @Tags         planner
// @Accept       json
// @Produce      json
// @Param        body body TripRequest true "Trip preferences"
// @Success      200 {object} PromptResponse
// @Failure      400 {object} api.Response
// @Router       /planner/prompt [post]
func (h *Handler) Prompt(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlannerHandler").Start(r.Context(), "Prompt")
	defer span.End()

	l := h.logger.With(slog.String("method", "Prompt"))

	var req TripRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid planner request", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	prompt, err := BuildPrompt(req)
	if err != nil {
		l.WarnContext(ctx, "Trip request rejected", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Validation failed")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	span.SetAttributes(attribute.String("trip.destination", req.Destination), attribute.Int("trip.days", req.Days))
	api.WriteJSONResponse(w, r, http.StatusOK, PromptResponse{Prompt: prompt})
	span.SetStatus(codes.Ok, "Prompt built")
}

// Suggestions godoc
// @Summary      Starter prompts for an empty chat
// @Description  Also lists the accepted values of the trip planner fields.
// @Tags         planner
// @Produce      json
// @Success      200 {object} SuggestionsResponse
// @Router       /planner/suggestions [get]
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, SuggestionsResponse{Suggestions: SuggestionChips(), Options: Options()})
}
