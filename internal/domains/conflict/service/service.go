package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"trainboard/infras/otel"
	"trainboard/infras/postgres"
	activityModel "trainboard/internal/domains/activity/model"
	activityService "trainboard/internal/domains/activity/service"
	bookingModel "trainboard/internal/domains/booking/model"
	bookingDto "trainboard/internal/domains/booking/model/dto"
	bookingRepository "trainboard/internal/domains/booking/repository"
	calendarModel "trainboard/internal/domains/calendar/model"
	calendarDto "trainboard/internal/domains/calendar/model/dto"
	calendarRepository "trainboard/internal/domains/calendar/repository"
	"trainboard/internal/domains/conflict/model/dto"
	"trainboard/shared"
	"trainboard/shared/constant"
	"trainboard/shared/failure"
	gModel "trainboard/shared/model"
	"trainboard/shared/timezone"
)

// suggestionShiftDays is the single-shift heuristic: offer the same window
// one week later when it is completely clean, otherwise offer nothing. Not a
// scheduling search.
const suggestionShiftDays = 7

var conflictingStatuses = []bookingModel.Status{
	bookingModel.StatusApproved,
	bookingModel.StatusTentative,
	bookingModel.StatusConfirmed,
}

type Conflict interface {
	Detect(ctx context.Context, req dto.DetectConflictRequest) (dto.ConflictReport, error)
	Overlapping(ctx context.Context, bookingID string) (dto.OverlappingBookingsResponse, error)
	Resolve(ctx context.Context, bookingID string, req dto.ResolveConflictRequest) (dto.ResolveConflictResponse, error)
}

type serviceImpl struct {
	bookings    bookingRepository.Booking
	blockedDate calendarRepository.BlockedDate
	blockedDay  calendarRepository.BlockedDay
	db          *postgres.Connection
	activity    activityService.Logger
	otel        otel.Otel
}

func New(bookings bookingRepository.Booking, blockedDate calendarRepository.BlockedDate, blockedDay calendarRepository.BlockedDay, db *postgres.Connection, activity activityService.Logger, otel otel.Otel) Conflict {
	return &serviceImpl{
		bookings:    bookings,
		blockedDate: blockedDate,
		blockedDay:  blockedDay,
		db:          db,
		activity:    activity,
		otel:        otel,
	}
}

// Detect reports everything colliding with the requested window, plus the
// nearest clean window found by the week-shift heuristic. The weekly pattern
// is returned for context only and never flags a conflict by itself.
func (s *serviceImpl) Detect(ctx context.Context, req dto.DetectConflictRequest) (report dto.ConflictReport, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Detect")
	defer scope.End()
	defer scope.TraceIfError(err)

	from, to, err := parseWindow(req.StartDate, req.EndDate)
	if err != nil {
		return report, err
	}

	bookings, blocked, err := s.collisions(ctx, req.TrainerID, from, to)
	if err != nil {
		return report, err
	}

	weekly, err := s.blockedDay.GetByTrainer(ctx, req.TrainerID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get weekly pattern")

		return report, fmt.Errorf("failed to get weekly pattern: %w", err)
	}

	report.TrainerID = req.TrainerID
	report.StartDate = from.Format(constant.DayFormat)
	report.EndDate = to.Format(constant.DayFormat)
	report.HasConflict = len(bookings) > 0 || len(blocked) > 0

	report.ExistingBookings = make([]bookingDto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		report.ExistingBookings[i].FromModel(booking)
	}

	report.BlockedDates = make([]calendarDto.BlockedDateResponse, len(blocked))
	for i, date := range blocked {
		report.BlockedDates[i].FromModel(date)
	}

	report.WeeklyAvailability = make([]calendarDto.BlockedDayResponse, len(weekly))
	for i, day := range weekly {
		report.WeeklyAvailability[i].FromModel(day)
	}

	if report.HasConflict {
		report.SuggestedAlternatives, err = s.suggest(ctx, req.TrainerID, from, to)
		if err != nil {
			return report, err
		}
	}

	return report, nil
}

// Overlapping lists the approved bookings competing for the same trainer and
// date as the given booking, oldest first.
func (s *serviceImpl) Overlapping(ctx context.Context, bookingID string) (res dto.OverlappingBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Overlapping")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return res, err
	}

	overlapping, err := s.bookings.GetOverlapping(ctx, booking.TrainerID, booking.RequestedDate, booking.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get overlapping bookings")

		return res, fmt.Errorf("failed to get overlapping bookings: %w", err)
	}

	res.BookingID = booking.ID
	res.Bookings = make([]bookingDto.BookingResponse, len(overlapping))

	for i, other := range overlapping {
		res.Bookings[i].FromModel(other)
	}

	return res, nil
}

// Resolve applies an operator's decision to a conflicted booking. Reschedule
// moves the whole requested range to start at the new date. Override approves
// the booking in place and records the day as blocked for everyone else, both
// writes in one transaction. Cancel withdraws the booking.
func (s *serviceImpl) Resolve(ctx context.Context, bookingID string, req dto.ResolveConflictRequest) (res dto.ResolveConflictResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Resolve")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return res, err
	}

	if booking.Status.Terminal() {
		return res, failure.Conflict(fmt.Sprintf("booking %s is already %s", booking.ID, booking.Status)) //nolint:wrapcheck
	}

	// Resolutions ride the same lifecycle table as the booking service.
	target, err := resolutionTarget(req.Resolution)
	if err != nil {
		return res, err
	}

	if !booking.Status.CanTransition(target) {
		return res, failure.Conflict(fmt.Sprintf("booking %s cannot move from %s to %s", booking.ID, booking.Status, target)) //nolint:wrapcheck
	}

	switch req.Resolution {
	case dto.ResolutionReschedule:
		booking, err = s.reschedule(ctx, booking, req.NewDate, user)
	case dto.ResolutionOverride:
		booking, err = s.override(ctx, booking, req.Reason, user)
	case dto.ResolutionCancel:
		booking, err = s.cancel(ctx, booking, user)
	}

	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.activity.LogActivity(c, user, activityModel.ActionConflictResolved, bookingModel.EntityName, booking.ID,
			"booking conflict resolved", map[string]any{"resolution": req.Resolution})
	}()

	res.BookingID = booking.ID
	res.Resolution = req.Resolution
	res.Booking.FromModel(booking)

	return res, nil
}

func resolutionTarget(resolution string) (bookingModel.Status, error) {
	switch resolution {
	case dto.ResolutionReschedule:
		return bookingModel.StatusTentative, nil
	case dto.ResolutionOverride:
		return bookingModel.StatusApproved, nil
	case dto.ResolutionCancel:
		return bookingModel.StatusCancelled, nil
	default:
		return "", failure.BadRequestFromString("resolution must be one of reschedule, override, cancel") //nolint:wrapcheck
	}
}

func (s *serviceImpl) reschedule(ctx context.Context, booking bookingModel.Booking, rawDate, user string) (bookingModel.Booking, error) {
	if rawDate == constant.Empty {
		return booking, failure.BadRequestFromString("new_date is required for a reschedule resolution") //nolint:wrapcheck
	}

	newDate, err := time.Parse(constant.DayFormat, rawDate)
	if err != nil {
		return booking, failure.BadRequestFromString("new_date must be formatted as YYYY-MM-DD") //nolint:wrapcheck
	}

	newDate = shared.DateOnly(newDate)

	// The new date's calendar state is judged on the next approval, so the
	// booking drops back to TENTATIVE and the calendar stays untouched.
	update := map[string]any{
		bookingModel.FieldRequestedDate: newDate,
		bookingModel.FieldStatus:        bookingModel.StatusTentative,
		constant.FieldModifiedAt:        timezone.Now(),
		constant.FieldModifiedBy:        user,
	}

	// Multi-day requests keep their length, the whole range slides.
	if booking.EndDate.Valid {
		shifted := newDate.Add(booking.EndDate.Time.Sub(booking.RequestedDate))
		update[bookingModel.FieldEndDate] = shifted
		booking.EndDate.Time = shifted
	}

	if err = s.bookings.Update(ctx, update, shared.FilterByID(booking.ID, bookingModel.FieldID, bookingModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to reschedule booking")

		return booking, fmt.Errorf("failed to reschedule booking: %w", err)
	}

	booking.RequestedDate = newDate
	booking.Status = bookingModel.StatusTentative

	return booking, nil
}

func (s *serviceImpl) override(ctx context.Context, booking bookingModel.Booking, reason, user string) (bookingModel.Booking, error) {
	tx, err := s.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin transaction")

		return booking, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	if reason == constant.Empty {
		reason = "manual override"
	}

	// Only the original requested day is blocked, the one calendar write of
	// this resolution.
	blocked := calendarModel.BlockedDate{
		ID:          uuid.NewString(),
		TrainerID:   booking.TrainerID,
		BlockedDate: booking.RequestedDate,
		Reason:      reason,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if err = s.blockedDate.InsertIgnoreTx(ctx, tx, blocked); err != nil {
		log.Error().Err(err).Msg("failed to block overridden day")

		return booking, fmt.Errorf("failed to block overridden day: %w", err)
	}

	update := map[string]any{
		bookingModel.FieldStatus: bookingModel.StatusApproved,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.bookings.UpdateTx(ctx, tx, update, shared.FilterByID(booking.ID, bookingModel.FieldID, bookingModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to approve overridden booking")

		return booking, fmt.Errorf("failed to approve overridden booking: %w", err)
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit override")

		return booking, fmt.Errorf("failed to commit override: %w", err)
	}

	booking.Status = bookingModel.StatusApproved

	return booking, nil
}

func (s *serviceImpl) cancel(ctx context.Context, booking bookingModel.Booking, user string) (bookingModel.Booking, error) {
	update := map[string]any{
		bookingModel.FieldStatus: bookingModel.StatusCancelled,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.bookings.Update(ctx, update, shared.FilterByID(booking.ID, bookingModel.FieldID, bookingModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return booking, fmt.Errorf("failed to cancel booking: %w", err)
	}

	booking.Status = bookingModel.StatusCancelled

	return booking, nil
}

// suggest checks the window shifted forward by exactly one week and returns
// it as the single candidate when it has no bookings and no blocked dates.
// An empty slice means the shifted window is also taken.
func (s *serviceImpl) suggest(ctx context.Context, trainerID string, from, to time.Time) ([]string, error) {
	shiftedFrom := from.AddDate(0, 0, suggestionShiftDays)
	shiftedTo := shiftedFrom.Add(to.Sub(from))

	bookings, blocked, err := s.collisions(ctx, trainerID, shiftedFrom, shiftedTo)
	if err != nil {
		return nil, err
	}

	if len(bookings) == 0 && len(blocked) == 0 {
		return []string{shiftedFrom.Format(constant.DayFormat)}, nil
	}

	return []string{}, nil
}

func (s *serviceImpl) collisions(ctx context.Context, trainerID string, from, to time.Time) ([]bookingModel.Booking, []calendarModel.BlockedDate, error) {
	bookings, err := s.bookings.GetInRange(ctx, trainerID, from, to, conflictingStatuses)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings in range")

		return nil, nil, fmt.Errorf("failed to get bookings in range: %w", err)
	}

	blocked, err := s.blockedDate.GetRange(ctx, trainerID, from, to)
	if err != nil {
		log.Error().Err(err).Msg("failed to get blocked dates")

		return nil, nil, fmt.Errorf("failed to get blocked dates: %w", err)
	}

	return bookings, blocked, nil
}

func (s *serviceImpl) getBooking(ctx context.Context, id string) (bookingModel.Booking, error) {
	booking, err := s.bookings.Get(ctx, shared.FilterByID(id, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	return booking, nil
}

func parseWindow(rawStart, rawEnd string) (from, to time.Time, err error) {
	from, err = time.Parse(constant.DayFormat, rawStart)
	if err != nil {
		return from, to, failure.BadRequestFromString("start_date must be formatted as YYYY-MM-DD") //nolint:wrapcheck
	}

	from = shared.DateOnly(from)
	to = from

	if rawEnd != constant.Empty {
		to, err = time.Parse(constant.DayFormat, rawEnd)
		if err != nil {
			return from, to, failure.BadRequestFromString("end_date must be formatted as YYYY-MM-DD") //nolint:wrapcheck
		}

		to = shared.DateOnly(to)

		if to.Before(from) {
			return from, to, failure.BadRequestFromString("end_date must not precede start_date") //nolint:wrapcheck
		}
	}

	return from, to, nil
}
