package destinations

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Riyasinha-01/Voyage/app/observability/metrics"
	"github.com/Riyasinha-01/Voyage/internal/api"
	"github.com/Riyasinha-01/Voyage/internal/types"
)

type Handler struct {
	logger    *slog.Logger
	extractor *Extractor
	metrics   *metrics.AppMetrics
}

// NewHandler builds the extraction handler. m may be nil.
func NewHandler(logger *slog.Logger, extractor *Extractor, m *metrics.AppMetrics) *Handler {
	return &Handler{logger: logger, extractor: extractor, metrics: m}
}

type ExtractResponse struct {
	Destinations []string                     `json:"destinations"`
	Candidates   []types.DestinationCandidate `json:"candidates"`
}

// Extract godoc
// @Summary      Extract destination candidates
// @Description  Scores capitalized phrases in an assistant reply and returns the likeliest place names.
// @Tags         destinations
// @Accept       json
// @Produce      json
// @Param        body body api.TextRequest true "Assistant reply"
// @Success      200 {object} ExtractResponse
// @Failure      400 {object} api.Response
// @Router       /destinations/extract [post]
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("DestinationsHandler").Start(r.Context(), "Extract")
	defer span.End()

	l := h.logger.With(slog.String("method", "Extract"))

	var req api.TextRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid extract request", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	candidates := h.extractor.Candidates(req.Text)
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.Name)
	}

	span.SetAttributes(attribute.Int("candidates.count", len(candidates)))
	if h.metrics != nil {
		h.metrics.CandidatesExtractedTotal.Add(ctx, int64(len(candidates)))
	}
	l.DebugContext(ctx, "Extracted destinations", slog.Any("destinations", names))

	api.WriteJSONResponse(w, r, http.StatusOK, ExtractResponse{
		Destinations: names,
		Candidates:   candidates,
	})
	span.SetStatus(codes.Ok, "Destinations extracted")
}
