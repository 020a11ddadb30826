package calendar

import (
	"net/http"

	"trainboard/infras/otel"
	"trainboard/internal/domains/calendar/model"
	"trainboard/internal/domains/calendar/model/dto"
	"trainboard/internal/domains/calendar/service"
	"trainboard/shared/constant"
	"trainboard/shared/validator"
	"trainboard/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Calendar
	otel    otel.Otel
}

func New(service service.Calendar, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/trainers/{trainerID}", func(routerGroup chi.Router) {
		routerGroup.Get("/availability", handler.GetAvailability)
		routerGroup.Put("/availability", handler.SetAvailability)
		routerGroup.Put("/availability/range", handler.SetAvailabilityRange)
		routerGroup.Post("/availability/release", handler.ReleaseDay)
		routerGroup.Get("/blocked-dates", handler.GetBlockedDates)
		routerGroup.Post("/blocked-dates", handler.BlockDate)
		routerGroup.Delete("/blocked-dates/{date}", handler.UnblockDate)
		routerGroup.Get("/blocked-days", handler.GetBlockedDays)
		routerGroup.Put("/blocked-days", handler.ReplaceBlockedDays)
	})
}

// GetAvailability returns a trainer's calendar for a date range.
// @Summary Get trainer availability
// @Description Retrieve a trainer's day-by-day availability for the given inclusive date range.
// @Tags Calendar
// @Accept json
// @Produce json
// @Param trainerID path string true "Trainer ID"
// @Param start_date query string true "Range start (YYYY-MM-DD)"
// @Param end_date query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.GetAvailabilityResponse "Availability entries"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/trainers/{trainerID}/availability [get]
// @Security BearerAuth
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	trainerID := chi.URLParam(r, "trainerID")
	from := r.URL.Query().Get("start_date")
	to := r.URL.Query().Get("end_date")

	res, err := handler.service.GetRange(ctx, trainerID, from, to)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SetAvailability writes a single day's status.
// @Summary Set availability for one day
// @Description Create or overwrite a trainer's availability entry for one day.
// @Tags Calendar
// @Accept json
// @Produce json
// @Param trainerID path string true "Trainer ID"
// @Param request body dto.SetAvailabilityRequest true "Availability entry"
// @Success 200 {object} dto.AvailabilityResponse "Stored entry"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/trainers/{trainerID}/availability [put]
// @Security BearerAuth
func (handler *Handler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetAvailability")
	defer scope.End()

	req := dto.SetAvailabilityRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Set(ctx, chi.URLParam(r, "trainerID"), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SetAvailabilityRange writes one status across a date range.
// @Summary Set availability for a date range
// @Description Apply the same status to every day in the inclusive range. Existing entries are overwritten.
// @Tags Calendar
// @Accept json
// @Produce json
// @Param trainerID path string true "Trainer ID"
// @Param request body dto.SetAvailabilityRangeRequest true "Range and status"
// @Success 200 {object} response.Message "Availability updated"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/trainers/{trainerID}/availability/range [put]
// @Security BearerAuth
func (handler *Handler) SetAvailabilityRange(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetAvailabilityRange")
	defer scope.End()

	req := dto.SetAvailabilityRangeRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SetRange(ctx, chi.URLParam(r, "trainerID"), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set availability range")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Availability updated successfully")
}

// ReleaseDay frees a booked day back to available.
// @Summary Release a booked day
// @Description Return a BOOKED day to AVAILABLE. This is the only path that downgrades a booked day.
// @Tags Calendar
// @Accept json
// @Produce json
// @Param trainerID path string true "Trainer ID"
// @Param date query string true "Day to release (YYYY-MM-DD)"
// @Success 200 {object} response.Message "Day released"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/trainers/{trainerID}/availability/release [post]
// @Security BearerAuth
func (handler *Handler) ReleaseDay(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReleaseDay")
	defer scope.End()

	trainerID := chi.URLParam(r, "trainerID")
	date := r.URL.Query().Get(model.FieldDate)

	if err := handler.service.Release(ctx, trainerID, date); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to release day")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Day released successfully")
}

// GetBlockedDates lists a trainer's blocked dates.
// @Summary Get blocked dates
// @Description Retrieve all individually blocked dates for a trainer.
// @Tags Calendar
// @Accept json
// @Produce json
// @Param trainerID path string true "Trainer ID"
// @Success 200 {array} dto.BlockedDateResponse "Blocked dates"
// @Failure 500 {object} response.Error
// @Router /v1/trainers/{trainerID}/blocked-dates [get]
// @Security BearerAuth
func (handler *Handler) GetBlockedDates(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBlockedDates")
	defer scope.End()

	res, err := handler.service.ListBlockedDates(ctx, chi.URLParam(r, "trainerID"))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get blocked dates")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// BlockDate blocks a single date.
// @Summary Block a date
// @Description Mark a date as never bookable for a trainer. Blocking the same date twice is a no-op.
// @Tags Calendar
// @Accept json
// @Produce json
// @Param trainerID path string true "Trainer ID"
// @Param request body dto.BlockDateRequest true "Date and optional reason"
// @Success 201 {object} response.Message "Date blocked"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/trainers/{trainerID}/blocked-dates [post]
// @Security BearerAuth
func (handler *Handler) BlockDate(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BlockDate")
	defer scope.End()

	req := dto.BlockDateRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.BlockDate(ctx, chi.URLParam(r, "trainerID"), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to block date")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusCreated, "Date blocked successfully")
}

// UnblockDate removes a blocked date.
// @Summary Unblock a date
// @Description Remove a previously blocked date from a trainer's calendar.
// @Tags Calendar
// @Accept json
// @Produce json
// @Param trainerID path string true "Trainer ID"
// @Param date path string true "Blocked date (YYYY-MM-DD)"
// @Success 200 {object} response.Message "Date unblocked"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/trainers/{trainerID}/blocked-dates/{date} [delete]
// @Security BearerAuth
func (handler *Handler) UnblockDate(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UnblockDate")
	defer scope.End()

	trainerID := chi.URLParam(r, "trainerID")
	date := chi.URLParam(r, "date")

	if err := handler.service.UnblockDate(ctx, trainerID, date); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to unblock date")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Date unblocked successfully")
}

// GetBlockedDays lists a trainer's weekly blocked days.
// @Summary Get weekly blocked days
// @Description Retrieve the trainer's recurring weekly unavailability pattern.
// @Tags Calendar
// @Accept json
// @Produce json
// @Param trainerID path string true "Trainer ID"
// @Success 200 {array} dto.BlockedDayResponse "Blocked weekdays"
// @Failure 500 {object} response.Error
// @Router /v1/trainers/{trainerID}/blocked-days [get]
// @Security BearerAuth
func (handler *Handler) GetBlockedDays(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBlockedDays")
	defer scope.End()

	res, err := handler.service.ListBlockedDays(ctx, chi.URLParam(r, "trainerID"))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get blocked days")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ReplaceBlockedDays replaces the weekly pattern wholesale.
// @Summary Replace weekly blocked days
// @Description Replace the trainer's recurring weekly unavailability pattern with the supplied set.
// @Tags Calendar
// @Accept json
// @Produce json
// @Param trainerID path string true "Trainer ID"
// @Param request body dto.ReplaceBlockedDaysRequest true "Weekdays (0=Sunday..6=Saturday)"
// @Success 200 {object} response.Message "Pattern replaced"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/trainers/{trainerID}/blocked-days [put]
// @Security BearerAuth
func (handler *Handler) ReplaceBlockedDays(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReplaceBlockedDays")
	defer scope.End()

	req := dto.ReplaceBlockedDaysRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.ReplaceBlockedDays(ctx, chi.URLParam(r, "trainerID"), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to replace blocked days")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Blocked days replaced successfully")
}
