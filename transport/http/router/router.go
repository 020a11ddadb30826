package router

import (
	"trainboard/internal/handlers/booking"
	"trainboard/internal/handlers/calendar"
	"trainboard/internal/handlers/conflict"
	"trainboard/internal/handlers/event"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Calendar calendar.Handler
	Booking  booking.Handler
	Conflict conflict.Handler
	Event    event.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Calendar.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Conflict.Router(routerGroup)
		r.DomainHandlers.Event.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
