package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"trainboard/config"
	"trainboard/infras/otel"
	"trainboard/internal/domains/calendar/model"
	"trainboard/internal/domains/calendar/model/dto"
	"trainboard/internal/domains/calendar/repository"
	"trainboard/shared"
	"trainboard/shared/cache"
	"trainboard/shared/constant"
	gDto "trainboard/shared/dto"
	"trainboard/shared/failure"
	gModel "trainboard/shared/model"
	"trainboard/shared/timezone"
)

const (
	cacheGetAvailability = "availability:range"
	cacheBlockedDates    = "availability:blocked"
)

type Calendar interface {
	Set(ctx context.Context, trainerID string, req dto.SetAvailabilityRequest) (dto.AvailabilityResponse, error)
	SetRange(ctx context.Context, trainerID string, req dto.SetAvailabilityRangeRequest) error
	GetRange(ctx context.Context, trainerID, from, to string) (dto.GetAvailabilityResponse, error)
	Release(ctx context.Context, trainerID, date string) error
	BlockDate(ctx context.Context, trainerID string, req dto.BlockDateRequest) error
	UnblockDate(ctx context.Context, trainerID, date string) error
	ListBlockedDates(ctx context.Context, trainerID string) ([]dto.BlockedDateResponse, error)
	ReplaceBlockedDays(ctx context.Context, trainerID string, req dto.ReplaceBlockedDaysRequest) error
	ListBlockedDays(ctx context.Context, trainerID string) ([]dto.BlockedDayResponse, error)
}

type serviceImpl struct {
	repo        repository.Availability
	blockedRepo repository.BlockedDate
	weeklyRepo  repository.BlockedDay
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Availability, blockedRepo repository.BlockedDate, weeklyRepo repository.BlockedDay, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Calendar {
	return &serviceImpl{
		repo:        repo,
		blockedRepo: blockedRepo,
		weeklyRepo:  weeklyRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Set(ctx context.Context, trainerID string, req dto.SetAvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Set")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	availability, err := req.ToModel(trainerID, user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse availability request")

		return res, err
	}

	if err = s.repo.Upsert(ctx, availability); err != nil {
		log.Error().Err(err).Msg("failed to upsert availability")

		return res, fmt.Errorf("failed to upsert availability: %w", err)
	}

	s.invalidate(ctx)

	res.FromModel(availability)

	return res, nil
}

// SetRange applies one status across an inclusive day range, one upsert per
// day. Each day is idempotent, a failure mid-range leaves a resumable state.
func (s *serviceImpl) SetRange(ctx context.Context, trainerID string, req dto.SetAvailabilityRangeRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetRange")
	defer scope.End()
	defer scope.TraceIfError(err)

	start, end, err := req.Dates()
	if err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	for _, day := range shared.DateRange(start, end) {
		availability := model.Availability{
			ID:        uuid.NewString(),
			TrainerID: trainerID,
			Date:      day,
			Status:    model.Status(req.Status),
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  user,
				ModifiedBy: user,
			},
		}

		if err = s.repo.Upsert(ctx, availability); err != nil {
			log.Error().Err(err).Str("date", day.Format(constant.DayFormat)).Msg("failed to upsert availability in range")

			return fmt.Errorf("failed to upsert availability for %s: %w", day.Format(constant.DayFormat), err)
		}
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) GetRange(ctx context.Context, trainerID, from, to string) (res dto.GetAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRange")
	defer scope.End()
	defer scope.TraceIfError(err)

	fromDate, toDate, err := parseRange(from, to)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheGetAvailability, trainerID, from, to)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for availability range")

		return res, nil
	}

	models, err := s.repo.GetRange(ctx, trainerID, fromDate, toDate)
	if err != nil {
		log.Error().Err(err).Msg("failed to get availability range")

		return res, fmt.Errorf("failed to get availability range: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save availability range to cache")
		}
	}()

	return res, nil
}

// Release is the one sanctioned path from BOOKED back to AVAILABLE. Booking
// actions never downgrade a BOOKED day on their own.
func (s *serviceImpl) Release(ctx context.Context, trainerID, date string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Release")
	defer scope.End()
	defer scope.TraceIfError(err)

	day, err := time.Parse(constant.DayFormat, date)
	if err != nil {
		return failure.BadRequestFromString("date must be formatted as YYYY-MM-DD") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	records, err := s.repo.GetRange(ctx, trainerID, shared.DateOnly(day), shared.DateOnly(day))
	if err != nil {
		log.Error().Err(err).Msg("failed to load availability for release")

		return fmt.Errorf("failed to load availability for release: %w", err)
	}

	if len(records) == 0 {
		return failure.NotFound("availability not found") //nolint:wrapcheck
	}

	record := records[0]
	record.Status = model.StatusAvailable
	record.ModifiedBy = user

	if err = s.repo.Upsert(ctx, record); err != nil {
		log.Error().Err(err).Msg("failed to release availability")

		return fmt.Errorf("failed to release availability: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) BlockDate(ctx context.Context, trainerID string, req dto.BlockDateRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BlockDate")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	blocked, err := req.ToModel(trainerID, user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse blocked date request")

		return err
	}

	if err = s.blockedRepo.InsertIgnore(ctx, blocked); err != nil {
		log.Error().Err(err).Msg("failed to block date")

		return fmt.Errorf("failed to block date: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) UnblockDate(ctx context.Context, trainerID, date string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UnblockDate")
	defer scope.End()
	defer scope.TraceIfError(err)

	day, err := time.Parse(constant.DayFormat, date)
	if err != nil {
		return failure.BadRequestFromString("date must be formatted as YYYY-MM-DD") //nolint:wrapcheck
	}

	filter := blockedDateFilter(trainerID, shared.DateOnly(day))

	exist, err := s.blockedRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check blocked date")

		return fmt.Errorf("failed to check blocked date: %w", err)
	}

	if !exist {
		return failure.NotFound("blocked date not found") //nolint:wrapcheck
	}

	if err = s.blockedRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to unblock date")

		return fmt.Errorf("failed to unblock date: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) ListBlockedDates(ctx context.Context, trainerID string) (res []dto.BlockedDateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListBlockedDates")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheBlockedDates, trainerID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for blocked dates")

		return res, nil
	}

	models, err := s.blockedRepo.GetAll(ctx, sortByBlockedDate(), blockedTrainerFilter(trainerID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get blocked dates")

		return res, fmt.Errorf("failed to get blocked dates: %w", err)
	}

	res = make([]dto.BlockedDateResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save blocked dates to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) ReplaceBlockedDays(ctx context.Context, trainerID string, req dto.ReplaceBlockedDaysRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReplaceBlockedDays")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	days := make([]model.BlockedDay, len(req.Days))
	for i, day := range req.Days {
		days[i] = model.BlockedDay{
			ID:        uuid.NewString(),
			TrainerID: trainerID,
			DayOfWeek: day,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  user,
				ModifiedBy: user,
			},
		}
	}

	if err = s.weeklyRepo.ReplaceAll(ctx, trainerID, days); err != nil {
		log.Error().Err(err).Msg("failed to replace blocked days")

		return fmt.Errorf("failed to replace blocked days: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) ListBlockedDays(ctx context.Context, trainerID string) (res []dto.BlockedDayResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListBlockedDays")
	defer scope.End()
	defer scope.TraceIfError(err)

	models, err := s.weeklyRepo.GetByTrainer(ctx, trainerID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get blocked days")

		return res, fmt.Errorf("failed to get blocked days: %w", err)
	}

	res = make([]dto.BlockedDayResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAvailability)
		shared.InvalidateCaches(c, s.cache, cacheBlockedDates)
	}()
}

func blockedTrainerFilter(trainerID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTrainerID,
				Operator: gDto.FilterOperatorEq,
				Value:    trainerID,
				Table:    model.BlockedDateTableName,
			},
		},
	}
}

func blockedDateFilter(trainerID string, day time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTrainerID,
				Operator: gDto.FilterOperatorEq,
				Value:    trainerID,
				Table:    model.BlockedDateTableName,
			},
			gDto.Filter{
				Field:    model.FieldBlockedDate,
				Operator: gDto.FilterOperatorEq,
				Value:    day,
				Table:    model.BlockedDateTableName,
			},
		},
	}
}

func sortByBlockedDate() gDto.QueryParams {
	return gDto.QueryParams{SortBy: model.FieldBlockedDate, SortDir: gDto.SortDirAsc}
}

func parseRange(from, to string) (fromDate, toDate time.Time, err error) {
	fromDate, err = time.Parse(constant.DayFormat, from)
	if err != nil {
		return fromDate, toDate, failure.BadRequestFromString("from must be formatted as YYYY-MM-DD") //nolint:wrapcheck
	}

	toDate, err = time.Parse(constant.DayFormat, to)
	if err != nil {
		return fromDate, toDate, failure.BadRequestFromString("to must be formatted as YYYY-MM-DD") //nolint:wrapcheck
	}

	if toDate.Before(fromDate) {
		return fromDate, toDate, failure.BadRequestFromString("to must not precede from") //nolint:wrapcheck
	}

	return shared.DateOnly(fromDate), shared.DateOnly(toDate), nil
}
