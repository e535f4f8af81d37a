package images

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Riyasinha-01/Voyage/internal/api"
	"github.com/Riyasinha-01/Voyage/internal/types"
)

type Handler struct {
	logger   *slog.Logger
	resolver Lookup
	store    *StripStore
}

func NewHandler(logger *slog.Logger, resolver Lookup, store *StripStore) *Handler {
	return &Handler{logger: logger, resolver: resolver, store: store}
}

// Images godoc
// @Summary      Resolve images for a destination
// @Description  Runs the image lookup cascade for one place name. Never fails; an empty list means status "error".
// @Tags         destinations
// @Produce      json
// @Param        name path string true "Destination name"
// @Success      200 {object} types.ResolvedDestination
// @Failure      400 {object} api.Response
// @Router       /destinations/{name}/images [get]
func (h *Handler) Images(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ImagesHandler").Start(r.Context(), "Images")
	defer span.End()

	l := h.logger.With(slog.String("method", "Images"))

	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || strings.TrimSpace(name) == "" {
		l.WarnContext(ctx, "Invalid destination name", slog.String("name", chi.URLParam(r, "name")))
		span.SetStatus(codes.Error, "Invalid destination name")
		api.ErrorResponse(w, r, http.StatusBadRequest, "destination name is required")
		return
	}
	span.SetAttributes(attribute.String("destination.name", name))

	urls := h.resolver.Resolve(ctx, name)
	status := types.StatusReady
	if len(urls) == 0 {
		status = types.StatusError
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.ResolvedDestination{
		Name:   name,
		Images: urls,
		Status: status,
	})
	span.SetStatus(codes.Ok, "Images resolved")
}

// CreateStrip godoc
// @Summary      Start an image strip
// @Description  Extracts destinations from a reply and starts resolving their images in the background.
// @Tags         strips
// @Accept       json
// @Produce      json
// @Param        body body api.TextRequest true "Assistant reply"
// @Success      201 {object} types.StripSnapshot
// @Failure      400 {object} api.Response
// @Router       /strips [post]
func (h *Handler) CreateStrip(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ImagesHandler").Start(r.Context(), "CreateStrip")
	defer span.End()

	l := h.logger.With(slog.String("method", "CreateStrip"))

	var req api.TextRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid strip request", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	strip, snap := h.store.Create(req.Text)
	span.SetAttributes(attribute.String("strip.id", strip.ID()), attribute.Int("cells.count", len(snap.Cells)))
	l.InfoContext(ctx, "Strip created", slog.String("strip_id", strip.ID()), slog.Int("cells", len(snap.Cells)))

	api.WriteJSONResponse(w, r, http.StatusCreated, snap)
	span.SetStatus(codes.Ok, "Strip created")
}

// GetStrip godoc
// @Summary      Get an image strip
// @Tags         strips
// @Produce      json
// @Param        stripID path string true "Strip ID"
// @Success      200 {object} types.StripSnapshot
// @Failure      404 {object} api.Response
// @Router       /strips/{stripID} [get]
func (h *Handler) GetStrip(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ImagesHandler").Start(r.Context(), "GetStrip")
	defer span.End()

	id := chi.URLParam(r, "stripID")
	span.SetAttributes(attribute.String("strip.id", id))

	strip, err := h.store.Get(id)
	if err != nil {
		h.writeError(w, r, err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	h.logger.DebugContext(ctx, "Strip fetched", slog.String("strip_id", id))
	api.WriteJSONResponse(w, r, http.StatusOK, strip.Snapshot())
	span.SetStatus(codes.Ok, "Strip fetched")
}

// ReplaceStrip godoc
// @Summary      Replace the reply behind a strip
// @Description  Re-extracts destinations. Cells for dropped names are torn down and their late results discarded.
// @Tags         strips
// @Accept       json
// @Produce      json
// @Param        stripID path string true "Strip ID"
// @Param        body body api.TextRequest true "New reply text"
// @Success      200 {object} types.StripSnapshot
// @Failure      400 {object} api.Response
// @Failure      404 {object} api.Response
// @Router       /strips/{stripID} [put]
func (h *Handler) ReplaceStrip(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ImagesHandler").Start(r.Context(), "ReplaceStrip")
	defer span.End()

	l := h.logger.With(slog.String("method", "ReplaceStrip"))
	id := chi.URLParam(r, "stripID")

	var req api.TextRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid strip request", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := h.store.Replace(id, req.Text)
	if err != nil {
		h.writeError(w, r, err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, snap)
	span.SetStatus(codes.Ok, "Strip replaced")
}

// DeleteStrip godoc
// @Summary      Tear down an image strip
// @Tags         strips
// @Param        stripID path string true "Strip ID"
// @Success      204
// @Failure      404 {object} api.Response
// @Router       /strips/{stripID} [delete]
func (h *Handler) DeleteStrip(w http.ResponseWriter, r *http.Request) {
	_, span := otel.Tracer("ImagesHandler").Start(r.Context(), "DeleteStrip")
	defer span.End()

	if err := h.store.Delete(chi.URLParam(r, "stripID")); err != nil {
		h.writeError(w, r, err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
	span.SetStatus(codes.Ok, "Strip deleted")
}

// CellEvent godoc
// @Summary      Post a display event for a cell
// @Description  image_error advances past a broken image; next, prev and select move through the images.
// @Tags         strips
// @Accept       json
// @Produce      json
// @Param        stripID path string true "Strip ID"
// @Param        name path string true "Destination name"
// @Param        body body types.CellEvent true "Event"
// @Success      200 {object} types.ResolvedDestination
// @Failure      400 {object} api.Response
// @Failure      404 {object} api.Response
// @Router       /strips/{stripID}/cells/{name}/events [post]
func (h *Handler) CellEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ImagesHandler").Start(r.Context(), "CellEvent")
	defer span.End()

	l := h.logger.With(slog.String("method", "CellEvent"))
	id := chi.URLParam(r, "stripID")
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "invalid destination name")
		return
	}

	var ev types.CellEvent
	if err := api.DecodeAndValidate(w, r, &ev); err != nil {
		l.WarnContext(ctx, "Invalid cell event", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := h.store.Apply(id, name, ev)
	if err != nil {
		h.writeError(w, r, err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetAttributes(attribute.String("cell.status", string(snap.Status)), attribute.Int("cell.current_index", snap.CurrentIndex))
	api.WriteJSONResponse(w, r, http.StatusOK, snap)
	span.SetStatus(codes.Ok, "Cell event applied")
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrStripNotFound), errors.Is(err, ErrCellNotFound):
		api.ErrorResponse(w, r, http.StatusNotFound, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Strip operation failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "internal server error")
	}
}
