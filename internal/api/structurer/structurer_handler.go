package structurer

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Riyasinha-01/Voyage/internal/api"
	"github.com/Riyasinha-01/Voyage/internal/types"
)

type Handler struct {
	logger *slog.Logger
}

func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// RenderResponse is the structured form of one assistant reply.
type RenderResponse struct {
	Blocks []types.ContentBlock `json:"blocks"`
	HTML   string               `json:"html"`
}

// Render godoc
// @Summary      Structure an assistant reply
// @Description  Splits a free-text reply into typed display blocks and a safe HTML rendering.
// @Tags         render
// @Accept       json
// @Produce      json
// @Param        body body api.TextRequest true "Assistant reply"
// @Success      200 {object} RenderResponse
// @Failure      400 {object} api.Response
// @Router       /render [post]
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("StructurerHandler").Start(r.Context(), "Render")
	defer span.End()

	l := h.logger.With(slog.String("method", "Render"))

	var req api.TextRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid render request", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	blocks := Structure(req.Text)
	span.SetAttributes(attribute.Int("blocks.count", len(blocks)))
	l.DebugContext(ctx, "Structured reply", slog.Int("blocks", len(blocks)))

	api.WriteJSONResponse(w, r, http.StatusOK, RenderResponse{
		Blocks: blocks,
		HTML:   RenderHTML(blocks),
	})
	span.SetStatus(codes.Ok, "Reply structured")
}
