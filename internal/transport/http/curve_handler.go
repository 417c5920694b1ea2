package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"rfrcli/internal/curve"
	apierrors "rfrcli/internal/errors"
	"rfrcli/internal/fetch"
	"rfrcli/internal/middleware"
	"rfrcli/internal/scrape"
	"rfrcli/internal/services"
)

// CurveHandler handles release and curve HTTP requests.
type CurveHandler struct {
	service  CurveServiceInterface
	logger   *slog.Logger
	validate *validator.Validate
}

// NewCurveHandler creates a new curve handler.
func NewCurveHandler(service CurveServiceInterface, logger *slog.Logger) *CurveHandler {
	return &CurveHandler{
		service:  service,
		logger:   logger.With(slog.String("handler", "curve")),
		validate: validator.New(),
	}
}

// Routes returns the curve routes.
func (h *CurveHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/releases", h.ListReleases)
	r.Get("/curves/{date}", h.GetCurve)

	return r
}

// curveParams are the caller-chosen query parameters of GET /curves/{date}.
type curveParams struct {
	Limit     int  `validate:"gte=30,lte=150"`
	Overwrite bool
}

// ListReleases handles GET /api/releases
func (h *CurveHandler) ListReleases(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	releases, err := h.service.ListReleases(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list releases",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.renderError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   releases,
		"count":  len(releases),
	})
}

// GetCurve handles GET /api/curves/{date}?limit=N&overwrite=bool
func (h *CurveHandler) GetCurve(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	dateKey := chi.URLParam(r, "date")

	params, apiErr := h.parseParams(r)
	if apiErr != nil {
		render.Render(w, r, apiErr)
		return
	}

	h.logger.InfoContext(r.Context(), "loading curve",
		slog.String("date", dateKey),
		slog.Int("limit", params.Limit),
		slog.Bool("overwrite", params.Overwrite),
		slog.String("request_id", reqID),
	)

	selection, err := h.service.GetCurve(r.Context(), dateKey, params.Limit, params.Overwrite)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to load curve",
			slog.String("date", dateKey),
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.renderError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   selection,
	})
}

func (h *CurveHandler) parseParams(r *http.Request) (*curveParams, *apierrors.APIError) {
	params := &curveParams{Limit: curve.MaxPoints}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apierrors.ErrValidation("limit", "limit must be an integer")
		}
		params.Limit = n
	}
	if raw := r.URL.Query().Get("overwrite"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, apierrors.ErrValidation("overwrite", "overwrite must be a boolean")
		}
		params.Overwrite = b
	}

	if err := h.validate.Struct(params); err != nil {
		return nil, apierrors.NewWithDetails(
			http.StatusUnprocessableEntity,
			"INVALID_LIMIT",
			"limit must be between 30 and 150",
			apierrors.ValidationError{Field: "limit", Message: err.Error()},
		)
	}
	return params, nil
}

// renderError maps pipeline errors onto API error responses.
func (h *CurveHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrReleaseNotFound), errors.Is(err, services.ErrNoReleasesFound):
		render.Render(w, r, apierrors.New(http.StatusNotFound, "RELEASE_NOT_FOUND", err.Error()))
	case errors.Is(err, services.ErrInvalidDateKey):
		render.Render(w, r, apierrors.ErrValidation("date", "date must be an 8-digit yyyymmdd key"))
	case errors.Is(err, curve.ErrPointLimit):
		render.Render(w, r, apierrors.New(http.StatusUnprocessableEntity, "INVALID_LIMIT", err.Error()))
	case errors.Is(err, scrape.ErrBadStatus), errors.Is(err, fetch.ErrDownload):
		render.Render(w, r, apierrors.New(http.StatusBadGateway, "UPSTREAM_FAILED", err.Error()))
	default:
		render.Render(w, r, apierrors.ErrInternalServer)
	}
}
