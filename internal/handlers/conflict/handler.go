package conflict

import (
	"net/http"

	"trainboard/infras/otel"
	"trainboard/internal/domains/conflict/model/dto"
	"trainboard/internal/domains/conflict/service"
	"trainboard/shared/constant"
	"trainboard/shared/validator"
	"trainboard/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Conflict
	otel    otel.Otel
}

func New(service service.Conflict, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/conflicts", func(routerGroup chi.Router) {
		routerGroup.Post("/detect", handler.DetectConflicts)
		routerGroup.Get("/{bookingID}/overlapping", handler.GetOverlapping)
		routerGroup.Post("/{bookingID}/resolve", handler.ResolveConflict)
	})
}

// DetectConflicts reports collisions for a proposed booking window.
// @Summary Detect booking conflicts
// @Description Check a trainer's window for existing bookings and blocked dates, with alternative-date suggestions when conflicted.
// @Tags Conflict
// @Accept json
// @Produce json
// @Param request body dto.DetectConflictRequest true "Trainer and window"
// @Success 200 {object} dto.ConflictReport "Conflict report"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/conflicts/detect [post]
// @Security BearerAuth
func (handler *Handler) DetectConflicts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DetectConflicts")
	defer scope.End()

	req := dto.DetectConflictRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Detect(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to detect conflicts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetOverlapping lists bookings competing with the given one.
// @Summary Get overlapping bookings
// @Description List approved bookings for the same trainer and date as the given booking, oldest first.
// @Tags Conflict
// @Accept json
// @Produce json
// @Param bookingID path string true "Booking ID"
// @Success 200 {object} dto.OverlappingBookingsResponse "Overlapping bookings"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/conflicts/{bookingID}/overlapping [get]
// @Security BearerAuth
func (handler *Handler) GetOverlapping(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOverlapping")
	defer scope.End()

	res, err := handler.service.Overlapping(ctx, chi.URLParam(r, "bookingID"))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get overlapping bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ResolveConflict applies an operator decision to a conflicted booking.
// @Summary Resolve a booking conflict
// @Description Apply a reschedule, override or cancel resolution to a conflicted booking.
// @Tags Conflict
// @Accept json
// @Produce json
// @Param bookingID path string true "Booking ID"
// @Param request body dto.ResolveConflictRequest true "Resolution"
// @Success 200 {object} dto.ResolveConflictResponse "Resolution outcome"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/conflicts/{bookingID}/resolve [post]
// @Security BearerAuth
func (handler *Handler) ResolveConflict(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResolveConflict")
	defer scope.End()

	req := dto.ResolveConflictRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Resolve(ctx, chi.URLParam(r, "bookingID"), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to resolve conflict")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Conflict resolved with " + req.Resolution)

	response.WithJSON(w, http.StatusOK, res)
}
