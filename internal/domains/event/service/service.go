package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"trainboard/config"
	"trainboard/infras/otel"
	"trainboard/infras/postgres"
	activityModel "trainboard/internal/domains/activity/model"
	activityService "trainboard/internal/domains/activity/service"
	"trainboard/internal/domains/event/model"
	"trainboard/internal/domains/event/model/dto"
	"trainboard/internal/domains/event/repository"
	notificationModel "trainboard/internal/domains/notification/model"
	notificationService "trainboard/internal/domains/notification/service"
	"trainboard/shared"
	"trainboard/shared/cache"
	"trainboard/shared/constant"
	gDto "trainboard/shared/dto"
	"trainboard/shared/failure"
	gModel "trainboard/shared/model"
	"trainboard/shared/timezone"
)

const (
	cacheGetEvent     = "event:get"
	cacheGetAllEvents = "event:gets"
)

// MaterializeInput carries everything the materializer needs to turn a
// confirmed booking's calendar slots into an event.
type MaterializeInput struct {
	CourseID               string
	TrainerID              string
	ClientID               string
	Dates                  []time.Time
	TotalSlots             int
	RegisteredParticipants int
	CreatedBy              string
}

type Event interface {
	MaterializeTx(ctx context.Context, tx *sqlx.Tx, in MaterializeInput) (model.Event, error)
	CreateFromCourse(ctx context.Context, req dto.CreateEventRequest) (dto.EventResponse, error)
	Get(ctx context.Context, id string) (dto.EventResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetEventsResponse, error)
	Register(ctx context.Context, eventID string, req dto.RegisterRequest) (dto.RegistrationResponse, error)
	CancelRegistration(ctx context.Context, registrationID string) error
	Cancel(ctx context.Context, id string) error
	Complete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo             repository.Event
	registrationRepo repository.Registration
	db               *postgres.Connection
	cfg              *config.Config
	cache            cache.RedisCache
	notifier         notificationService.Notifier
	activity         activityService.Logger
	otel             otel.Otel
}

func New(repo repository.Event, registrationRepo repository.Registration, db *postgres.Connection, cfg *config.Config, cache cache.RedisCache, notifier notificationService.Notifier, activity activityService.Logger, otel otel.Otel) Event {
	return &serviceImpl{
		repo:             repo,
		registrationRepo: registrationRepo,
		db:               db,
		cfg:              cfg,
		cache:            cache,
		notifier:         notifier,
		activity:         activity,
		otel:             otel,
	}
}

// MaterializeTx creates the event plus its pre-approved registration inside
// the caller's transaction. The event date is the earliest supplied day, the
// end date the latest (absent for a single day). A second event for the same
// (course, date) is refused.
func (s *serviceImpl) MaterializeTx(ctx context.Context, tx *sqlx.Tx, in MaterializeInput) (event model.Event, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MaterializeTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	if len(in.Dates) == 0 {
		return event, failure.BadRequestFromString("at least one event date is required") //nolint:wrapcheck
	}

	if in.RegisteredParticipants > in.TotalSlots {
		return event, failure.BadRequestFromString("registered participants cannot exceed total slots") //nolint:wrapcheck
	}

	earliest, latest := boundDates(in.Dates)

	exist, err := s.repo.ExistForCourseDateTx(ctx, tx, in.CourseID, earliest)
	if err != nil {
		log.Error().Err(err).Msg("failed to check duplicate event")

		return event, fmt.Errorf("failed to check duplicate event: %w", err)
	}

	if exist {
		return event, failure.Conflict("an event already exists for this course and date") //nolint:wrapcheck
	}

	event = model.Event{
		ID:        uuid.NewString(),
		CourseID:  in.CourseID,
		TrainerID: in.TrainerID,
		EventDate: earliest,
		StartDate: earliest,
		MaxPacks:  in.TotalSlots,
		Status:    model.StatusActive,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  in.CreatedBy,
			ModifiedBy: in.CreatedBy,
		},
	}

	if !latest.Equal(earliest) {
		event.EndDate.Time = latest
		event.EndDate.Valid = true
	}

	if err = s.repo.InsertTx(ctx, tx, event); err != nil {
		log.Error().Err(err).Msg("failed to insert event")

		return event, fmt.Errorf("failed to insert event: %w", err)
	}

	if in.RegisteredParticipants > 0 {
		registration := model.Registration{
			ID:                   uuid.NewString(),
			EventID:              event.ID,
			ClientID:             in.ClientID,
			NumberOfParticipants: in.RegisteredParticipants,
			Status:               model.RegistrationApproved,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  in.CreatedBy,
				ModifiedBy: in.CreatedBy,
			},
		}

		if err = s.registrationRepo.InsertTx(ctx, tx, registration); err != nil {
			log.Error().Err(err).Msg("failed to insert initial registration")

			return event, fmt.Errorf("failed to insert initial registration: %w", err)
		}
	}

	s.invalidate(ctx)

	return event, nil
}

// CreateFromCourse is the explicit admin path that materializes an event
// without a booking.
func (s *serviceImpl) CreateFromCourse(ctx context.Context, req dto.CreateEventRequest) (res dto.EventResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateFromCourse")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	dates, err := req.ParseDates()
	if err != nil {
		return res, err
	}

	tx, err := s.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin transaction")

		return res, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	event, err := s.MaterializeTx(ctx, tx, MaterializeInput{
		CourseID:               req.CourseID,
		TrainerID:              req.TrainerID,
		ClientID:               req.ClientID,
		Dates:                  dates,
		TotalSlots:             req.TotalSlots,
		RegisteredParticipants: req.RegisteredParticipants,
		CreatedBy:              user,
	})
	if err != nil {
		return res, err
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit event creation")

		return res, fmt.Errorf("failed to commit event creation: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.notifier.Notify(c, req.ClientID, "Event created",
			fmt.Sprintf("An event for course %s was scheduled on %s", event.CourseID, event.EventDate.Format(constant.DayFormat)),
			notificationModel.TypeEventCreated, model.EntityName, event.ID)
		s.activity.LogActivity(c, user, activityModel.ActionEventCreated, model.EntityName, event.ID,
			"event created from course", map[string]any{"course_id": event.CourseID})
	}()

	res.FromModel(event)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.EventResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetEvent, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for event")

		return res, nil
	}

	event, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get event")

		return res, fmt.Errorf("failed to get event: %w", err)
	}

	if event.ID == constant.Empty {
		return res, failure.NotFound("event not found") //nolint:wrapcheck
	}

	res.FromModel(event)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save event to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetEventsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllEvents, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for events")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count events")

		return res, fmt.Errorf("failed to count events: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get events")

		return res, fmt.Errorf("failed to get events: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save events to cache")
		}
	}()

	return res, nil
}

// Register adds a registration while holding a row lock on the event, so the
// capacity ceiling cannot be overshot by concurrent registrations.
func (s *serviceImpl) Register(ctx context.Context, eventID string, req dto.RegisterRequest) (res dto.RegistrationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	tx, err := s.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin transaction")

		return res, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	event, found, err := s.repo.GetForUpdateTx(ctx, tx, eventID)
	if err != nil {
		log.Error().Err(err).Msg("failed to lock event")

		return res, fmt.Errorf("failed to lock event: %w", err)
	}

	if !found {
		return res, failure.NotFound("event not found") //nolint:wrapcheck
	}

	if event.Status != model.StatusActive {
		return res, failure.Conflict(fmt.Sprintf("event %s is not open for registration", event.ID)) //nolint:wrapcheck
	}

	taken, err := s.registrationRepo.SumParticipantsTx(ctx, tx, eventID)
	if err != nil {
		log.Error().Err(err).Msg("failed to sum registrations")

		return res, fmt.Errorf("failed to sum registrations: %w", err)
	}

	if taken+req.NumberOfParticipants > event.MaxPacks {
		return res, failure.Conflict(fmt.Sprintf("registration exceeds remaining capacity (%d of %d slots left)", event.MaxPacks-taken, event.MaxPacks)) //nolint:wrapcheck
	}

	registration := model.Registration{
		ID:                   uuid.NewString(),
		EventID:              eventID,
		ClientID:             req.ClientID,
		NumberOfParticipants: req.NumberOfParticipants,
		Status:               model.RegistrationRegistered,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if err = s.registrationRepo.InsertTx(ctx, tx, registration); err != nil {
		log.Error().Err(err).Msg("failed to insert registration")

		return res, fmt.Errorf("failed to insert registration: %w", err)
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit registration")

		return res, fmt.Errorf("failed to commit registration: %w", err)
	}

	s.invalidate(ctx)

	go func() {
		c := context.WithoutCancel(ctx)

		s.notifier.Notify(c, req.ClientID, "Registration received",
			fmt.Sprintf("Your registration for %d participant(s) was received", req.NumberOfParticipants),
			notificationModel.TypeEventRegistered, model.EntityName, eventID)
		s.activity.LogActivity(c, user, activityModel.ActionEventRegistration, model.EntityName, eventID,
			"registration added", map[string]any{"participants": req.NumberOfParticipants})
	}()

	res.FromModel(registration)

	return res, nil
}

func (s *serviceImpl) CancelRegistration(ctx context.Context, registrationID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CancelRegistration")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(registrationID, model.FieldID, model.RegistrationTableName)

	registration, err := s.registrationRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get registration")

		return fmt.Errorf("failed to get registration: %w", err)
	}

	if registration.ID == constant.Empty {
		return failure.NotFound("registration not found") //nolint:wrapcheck
	}

	update := map[string]any{
		model.FieldStatus:        model.RegistrationCancelled,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.registrationRepo.Update(ctx, update, filter); err != nil {
		log.Error().Err(err).Msg("failed to cancel registration")

		return fmt.Errorf("failed to cancel registration: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, model.StatusCancelled)
}

func (s *serviceImpl) Complete(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, model.StatusCompleted)
}

func (s *serviceImpl) setStatus(ctx context.Context, id string, status model.Status) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".setStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	event, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get event")

		return fmt.Errorf("failed to get event: %w", err)
	}

	if event.ID == constant.Empty {
		return failure.NotFound("event not found") //nolint:wrapcheck
	}

	if event.Status != model.StatusActive {
		return failure.Conflict(fmt.Sprintf("event %s is already %s", event.ID, event.Status)) //nolint:wrapcheck
	}

	update := map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, update, filter); err != nil {
		log.Error().Err(err).Msg("failed to update event status")

		return fmt.Errorf("failed to update event status: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetEvent)
		shared.InvalidateCaches(c, s.cache, cacheGetAllEvents)
	}()
}

func boundDates(dates []time.Time) (earliest, latest time.Time) {
	earliest, latest = dates[0], dates[0]

	for _, date := range dates[1:] {
		if date.Before(earliest) {
			earliest = date
		}

		if date.After(latest) {
			latest = date
		}
	}

	return earliest, latest
}
