package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"trainboard/config"
	"trainboard/infras/otel"
	"trainboard/infras/postgres"
	activityModel "trainboard/internal/domains/activity/model"
	activityService "trainboard/internal/domains/activity/service"
	"trainboard/internal/domains/booking/model"
	"trainboard/internal/domains/booking/model/dto"
	"trainboard/internal/domains/booking/repository"
	calendarModel "trainboard/internal/domains/calendar/model"
	calendarRepository "trainboard/internal/domains/calendar/repository"
	eventService "trainboard/internal/domains/event/service"
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
	cacheGetBooking     = "booking:get"
	cacheGetAllBookings = "booking:gets"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Approve(ctx context.Context, id string) (dto.BookingResponse, error)
	Deny(ctx context.Context, id string) (dto.BookingResponse, error)
	MarkTentative(ctx context.Context, id string) (dto.BookingResponse, error)
	Confirm(ctx context.Context, id string, req dto.ConfirmBookingRequest) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) (dto.BookingResponse, error)
	Complete(ctx context.Context, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	availability calendarRepository.Availability
	event        eventService.Event
	db           *postgres.Connection
	cfg          *config.Config
	cache        cache.RedisCache
	notifier     notificationService.Notifier
	activity     activityService.Logger
	otel         otel.Otel
}

func New(repo repository.Booking, availability calendarRepository.Availability, event eventService.Event, db *postgres.Connection, cfg *config.Config, cache cache.RedisCache, notifier notificationService.Notifier, activity activityService.Logger, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:         repo,
		availability: availability,
		event:        event,
		db:           db,
		cfg:          cfg,
		cache:        cache,
		notifier:     notifier,
		activity:     activity,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := req.ToModel(user)
	if err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to insert booking")

		return res, fmt.Errorf("failed to insert booking: %w", err)
	}

	s.invalidate(ctx)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.getByID(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBookings, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

// Approve moves a pending or tentative booking to APPROVED. For an in-house
// booking with a known trainer, every day of the requested range is marked
// TENTATIVE on the trainer's calendar, skipping days that are already BOOKED.
// The per-day upserts are idempotent, so a partial write can be repaired by
// marking the booking tentative and approving again.
func (s *serviceImpl) Approve(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.transition(ctx, id, model.StatusApproved, user, nil)
	if err != nil {
		return res, err
	}

	if booking.RequestType == model.TypeInhouse && booking.TrainerID != constant.Empty {
		for _, day := range shared.DateRange(booking.RequestedDate, booking.LastDate()) {
			hold := calendarModel.Availability{
				ID:        uuid.NewString(),
				TrainerID: booking.TrainerID,
				Date:      day,
				Status:    calendarModel.StatusTentative,
				Metadata: gModel.Metadata{
					CreatedAt:  timezone.Now(),
					ModifiedAt: timezone.Now(),
					CreatedBy:  user,
					ModifiedBy: user,
				},
			}

			if err = s.availability.UpsertUnlessBooked(ctx, hold); err != nil {
				log.Error().Err(err).Str("trainerID", booking.TrainerID).Time("date", day).Msg("failed to place tentative hold")

				return res, fmt.Errorf("failed to place tentative hold: %w", err)
			}
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.notifier.Notify(c, booking.ClientID, "Booking approved",
			fmt.Sprintf("Your booking request for %s was approved", booking.RequestedDate.Format(constant.DayFormat)),
			notificationModel.TypeBookingApproved, model.EntityName, booking.ID)
		s.activity.LogActivity(c, user, activityModel.ActionBookingApproved, model.EntityName, booking.ID,
			"booking approved", nil)
	}()

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Deny(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Deny")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.transition(ctx, id, model.StatusDenied, user, nil)
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.notifier.Notify(c, booking.ClientID, "Booking denied",
			fmt.Sprintf("Your booking request for %s was denied", booking.RequestedDate.Format(constant.DayFormat)),
			notificationModel.TypeBookingDenied, model.EntityName, booking.ID)
		s.activity.LogActivity(c, user, activityModel.ActionBookingDenied, model.EntityName, booking.ID,
			"booking denied", nil)
	}()

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) MarkTentative(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkTentative")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.transition(ctx, id, model.StatusTentative, user, nil)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

// Confirm finalizes an approved booking against concrete calendar days. The
// whole step runs in one transaction with the availability rows locked, so a
// day can only ever be consumed by one confirmation. Nothing is written when
// any validation fails.
func (s *serviceImpl) Confirm(ctx context.Context, id string, req dto.ConfirmBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	for _, availabilityID := range req.AvailabilityIDs {
		if availabilityID == constant.Empty {
			return res, failure.BadRequestFromString("availability_ids must not contain empty values") //nolint:wrapcheck
		}
	}

	if req.RegisteredParticipants > req.TotalSlots {
		return res, failure.BadRequestFromString("registered participants cannot exceed total slots") //nolint:wrapcheck
	}

	tx, err := s.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin transaction")

		return res, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	booking, err := s.repo.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to lock booking")

		return res, fmt.Errorf("failed to lock booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	if !booking.Status.CanTransition(model.StatusConfirmed) {
		return res, failure.Conflict(fmt.Sprintf("booking %s cannot move from %s to %s", booking.ID, booking.Status, model.StatusConfirmed)) //nolint:wrapcheck
	}

	days, err := s.availability.GetByIDsForUpdateTx(ctx, tx, req.AvailabilityIDs)
	if err != nil {
		log.Error().Err(err).Msg("failed to lock availability rows")

		return res, fmt.Errorf("failed to lock availability rows: %w", err)
	}

	if err = validateDays(booking, req.AvailabilityIDs, days); err != nil {
		return res, err
	}

	eventDates := make([]time.Time, len(days))
	for i, day := range days {
		eventDates[i] = day.Date
	}

	event, err := s.event.MaterializeTx(ctx, tx, eventService.MaterializeInput{
		CourseID:               booking.CourseID,
		TrainerID:              booking.TrainerID,
		ClientID:               booking.ClientID,
		Dates:                  eventDates,
		TotalSlots:             req.TotalSlots,
		RegisteredParticipants: req.RegisteredParticipants,
		CreatedBy:              user,
	})
	if err != nil {
		return res, err
	}

	if err = s.availability.SetStatusTx(ctx, tx, req.AvailabilityIDs, calendarModel.StatusBooked, user); err != nil {
		log.Error().Err(err).Msg("failed to mark availability booked")

		return res, fmt.Errorf("failed to mark availability booked: %w", err)
	}

	update := map[string]any{
		model.FieldStatus:                model.StatusConfirmed,
		model.FieldTrainerAvailabilityID: req.AvailabilityIDs[0],
		constant.FieldModifiedAt:         timezone.Now(),
		constant.FieldModifiedBy:         user,
	}

	if err = s.repo.UpdateTx(ctx, tx, update, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit confirmation")

		return res, fmt.Errorf("failed to commit confirmation: %w", err)
	}

	s.invalidate(ctx)

	booking.Status = model.StatusConfirmed
	booking.TrainerAvailabilityID = req.AvailabilityIDs[0]

	go func() {
		c := context.WithoutCancel(ctx)

		s.notifier.Notify(c, booking.ClientID, "Booking confirmed",
			fmt.Sprintf("Your booking was confirmed and event %s was scheduled", event.ID),
			notificationModel.TypeBookingConfirmed, model.EntityName, booking.ID)
		s.activity.LogActivity(c, user, activityModel.ActionBookingConfirmed, model.EntityName, booking.ID,
			"booking confirmed", map[string]any{"event_id": event.ID, "availability_ids": req.AvailabilityIDs})
	}()

	res.FromModel(booking)

	return res, nil
}

// Cancel ends the booking. Calendar days stay as they are, freeing a BOOKED
// day takes an explicit release by an operator.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.transition(ctx, id, model.StatusCancelled, user, nil)
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.notifier.Notify(c, booking.ClientID, "Booking cancelled",
			fmt.Sprintf("Your booking for %s was cancelled", booking.RequestedDate.Format(constant.DayFormat)),
			notificationModel.TypeBookingCancelled, model.EntityName, booking.ID)
		s.activity.LogActivity(c, user, activityModel.ActionBookingCancelled, model.EntityName, booking.ID,
			"booking cancelled", nil)
	}()

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Complete(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Complete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.transition(ctx, id, model.StatusCompleted, user, nil)
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.activity.LogActivity(c, user, activityModel.ActionBookingCompleted, model.EntityName, booking.ID,
			"booking completed", nil)
	}()

	res.FromModel(booking)

	return res, nil
}

// transition loads the booking, checks the lifecycle table and persists the
// new status. The returned model reflects the post-transition state.
func (s *serviceImpl) transition(ctx context.Context, id string, to model.Status, user string, extra map[string]any) (model.Booking, error) {
	booking, err := s.getByID(ctx, id)
	if err != nil {
		return booking, err
	}

	if !booking.Status.CanTransition(to) {
		return booking, failure.Conflict(fmt.Sprintf("booking %s cannot move from %s to %s", booking.ID, booking.Status, to)) //nolint:wrapcheck
	}

	update := map[string]any{
		model.FieldStatus:        to,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	for key, value := range extra {
		update[key] = value
	}

	if err = s.repo.Update(ctx, update, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return booking, fmt.Errorf("failed to update booking status: %w", err)
	}

	s.invalidate(ctx)

	booking.Status = to

	return booking, nil
}

func (s *serviceImpl) getByID(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	return booking, nil
}

// validateDays rejects a confirmation whose day set is incomplete, belongs to
// another trainer or contains unbookable days. Offending ids are named so the
// operator can fix the request.
func validateDays(booking model.Booking, requested []string, days []calendarModel.Availability) error {
	found := make(map[string]calendarModel.Availability, len(days))
	for _, day := range days {
		found[day.ID] = day
	}

	var missing, foreign, unbookable []string

	for _, availabilityID := range requested {
		day, ok := found[availabilityID]

		switch {
		case !ok:
			missing = append(missing, availabilityID)
		case booking.TrainerID != constant.Empty && day.TrainerID != booking.TrainerID:
			foreign = append(foreign, availabilityID)
		case !day.Status.Bookable():
			unbookable = append(unbookable, availabilityID)
		}
	}

	if len(missing) > 0 {
		return failure.NotFound(fmt.Sprintf("availability not found: %s", strings.Join(missing, ", "))) //nolint:wrapcheck
	}

	if len(foreign) > 0 {
		return failure.BadRequestFromString(fmt.Sprintf("availability belongs to another trainer: %s", strings.Join(foreign, ", "))) //nolint:wrapcheck
	}

	if len(unbookable) > 0 {
		return failure.Conflict(fmt.Sprintf("availability not bookable: %s", strings.Join(unbookable, ", "))) //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetBooking)
		shared.InvalidateCaches(c, s.cache, cacheGetAllBookings)
	}()
}
