package event

import (
	"net/http"

	"trainboard/infras/otel"
	"trainboard/internal/domains/event/model"
	"trainboard/internal/domains/event/model/dto"
	"trainboard/internal/domains/event/service"
	"trainboard/shared/constant"
	gDto "trainboard/shared/dto"
	"trainboard/shared/validator"
	"trainboard/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Event
	otel    otel.Otel
}

func New(service service.Event, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/events", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateEvent)
		routerGroup.Get("/", handler.GetEvents)
		routerGroup.Get("/{id}", handler.GetEventByID)
		routerGroup.Post("/{id}/registrations", handler.RegisterParticipants)
		routerGroup.Post("/{id}/cancel", handler.CancelEvent)
		routerGroup.Post("/{id}/complete", handler.CompleteEvent)
		routerGroup.Delete("/registrations/{registrationID}", handler.CancelRegistration)
	})
}

// CreateEvent schedules an event directly from a course.
// @Summary Create an event
// @Description Schedule a capacity-bounded event for a course without going through a booking.
// @Tags Event
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Event details"
// @Success 201 {object} dto.EventResponse "Created event"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events [post]
// @Security BearerAuth
func (handler *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateEvent")
	defer scope.End()

	req := dto.CreateEventRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.CreateFromCourse(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create event")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Event created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetEvents lists events with optional filters.
// @Summary Get all events
// @Description Retrieve events with optional filtering and pagination.
// @Tags Event
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param course_id query string false "Filter by course ID"
// @Param trainer_id query string false "Filter by trainer ID"
// @Param status query string false "Filter by status (ACTIVE, COMPLETED, CANCELLED)"
// @Success 200 {object} dto.GetEventsResponse "List of events"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events [get]
// @Security BearerAuth
func (handler *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEvents")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for _, field := range []string{model.FieldCourseID, model.FieldTrainerID, model.FieldStatus} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get events")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetEventByID retrieves one event.
// @Summary Get an event by ID
// @Description Retrieve a single event by its ID.
// @Tags Event
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.EventResponse "Event"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetEventByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEventByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get event")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// RegisterParticipants adds a registration to an event.
// @Summary Register participants
// @Description Register participants for an event. Registrations beyond the remaining capacity are rejected.
// @Tags Event
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.RegistrationResponse "Created registration"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events/{id}/registrations [post]
// @Security BearerAuth
func (handler *Handler) RegisterParticipants(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RegisterParticipants")
	defer scope.End()

	req := dto.RegisterRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Register(ctx, chi.URLParam(r, "id"), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register participants")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// CancelEvent cancels an active event.
// @Summary Cancel an event
// @Description Cancel an active event.
// @Tags Event
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Message "Event cancelled"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelEvent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelEvent")
	defer scope.End()

	if err := handler.service.Cancel(ctx, chi.URLParam(r, "id")); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel event")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Event cancelled successfully")
}

// CompleteEvent marks an active event as completed.
// @Summary Complete an event
// @Description Mark an active event as completed.
// @Tags Event
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Message "Event completed"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events/{id}/complete [post]
// @Security BearerAuth
func (handler *Handler) CompleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CompleteEvent")
	defer scope.End()

	if err := handler.service.Complete(ctx, chi.URLParam(r, "id")); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to complete event")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Event completed successfully")
}

// CancelRegistration withdraws a registration.
// @Summary Cancel a registration
// @Description Cancel an event registration, freeing its slots.
// @Tags Event
// @Accept json
// @Produce json
// @Param registrationID path string true "Registration ID"
// @Success 200 {object} response.Message "Registration cancelled"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events/registrations/{registrationID} [delete]
// @Security BearerAuth
func (handler *Handler) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelRegistration")
	defer scope.End()

	if err := handler.service.CancelRegistration(ctx, chi.URLParam(r, "registrationID")); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel registration")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Registration cancelled successfully")
}
