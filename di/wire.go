//go:build wireinject
// +build wireinject

package di

import (
	"trainboard/config"
	"trainboard/infras/jwt"
	"trainboard/infras/nats"
	"trainboard/infras/otel"
	"trainboard/infras/postgres"
	"trainboard/infras/redis"
	"trainboard/permissions"
	"trainboard/shared/cache"
	"trainboard/transport/http"
	"trainboard/transport/http/middleware"
	"trainboard/transport/http/router"

	"github.com/google/wire"

	activityRepository "trainboard/internal/domains/activity/repository"
	activityService "trainboard/internal/domains/activity/service"
	bookingRepository "trainboard/internal/domains/booking/repository"
	bookingService "trainboard/internal/domains/booking/service"
	calendarRepository "trainboard/internal/domains/calendar/repository"
	calendarService "trainboard/internal/domains/calendar/service"
	conflictService "trainboard/internal/domains/conflict/service"
	eventRepository "trainboard/internal/domains/event/repository"
	eventService "trainboard/internal/domains/event/service"
	notificationRepository "trainboard/internal/domains/notification/repository"
	notificationService "trainboard/internal/domains/notification/service"

	bookingHandler "trainboard/internal/handlers/booking"
	calendarHandler "trainboard/internal/handlers/calendar"
	conflictHandler "trainboard/internal/handlers/conflict"
	eventHandler "trainboard/internal/handlers/event"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	nats.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var observers = wire.NewSet(
	notificationRepository.New,
	notificationService.New,
	activityRepository.New,
	activityService.New,
)

var calendarDomain = wire.NewSet(
	calendarRepository.New,
	calendarRepository.NewBlockedDate,
	calendarRepository.NewBlockedDay,
	calendarService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var conflictDomain = wire.NewSet(
	conflictService.New,
)

var eventDomain = wire.NewSet(
	eventRepository.New,
	eventRepository.NewRegistration,
	eventService.New,
)

var domains = wire.NewSet(
	observers,
	calendarDomain,
	bookingDomain,
	conflictDomain,
	eventDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	calendarHandler.New,
	bookingHandler.New,
	conflictHandler.New,
	eventHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
