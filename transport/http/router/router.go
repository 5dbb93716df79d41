package router

import (
	"github.com/go-chi/chi/v5"

	"tourbook/internal/handlers/bookingrequest"
	"tourbook/internal/handlers/emailfailure"
	"tourbook/transport/http/middleware"
)

type DomainHandlers struct {
	BookingRequest bookingrequest.Handler
	EmailFailure   emailfailure.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
	AuthRole       middleware.AuthRole
}

// SetupRoutes mounts the admin API under /v1. Every route there needs an
// admin bearer token with a role allowed by the permission table.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.App.RateLimit(), r.AuthRole.Auth, r.AuthRole.RBAC)

		r.DomainHandlers.BookingRequest.Router(routerGroup)
		r.DomainHandlers.EmailFailure.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
		AuthRole:       authRole,
	}
}
