//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"tourbook/config"
	"tourbook/infras/gateway"
	"tourbook/infras/jwt"
	"tourbook/infras/kafka"
	"tourbook/infras/mailer"
	"tourbook/infras/otel"
	"tourbook/infras/postgres"
	"tourbook/infras/redis"
	"tourbook/permissions"
	"tourbook/shared/cache"
	"tourbook/transport/http"
	"tourbook/transport/http/middleware"
	"tourbook/transport/http/router"

	auditRepository "tourbook/internal/domains/audit/repository"
	auditService "tourbook/internal/domains/audit/service"
	bookingRequestRepository "tourbook/internal/domains/bookingrequest/repository"
	bookingRequestService "tourbook/internal/domains/bookingrequest/service"
	notificationRepository "tourbook/internal/domains/notification/repository"
	notificationService "tourbook/internal/domains/notification/service"
	paymentService "tourbook/internal/domains/payment/service"
	bookingRequestHandler "tourbook/internal/handlers/bookingrequest"
	emailFailureHandler "tourbook/internal/handlers/emailfailure"
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
	kafka.New,
	gateway.New,
	mailer.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var auditDomain = wire.NewSet(
	auditRepository.NewEvent,
	auditRepository.NewPaymentAttempt,
	auditService.New,
)

var paymentDomain = wire.NewSet(
	paymentService.New,
)

var notificationDomain = wire.NewSet(
	notificationRepository.New,
	notificationService.NewDispatcher,
	notificationService.NewEscalator,
	notificationService.NewEmailFailure,
)

var bookingRequestDomain = wire.NewSet(
	bookingRequestRepository.New,
	bookingRequestService.New,
)

var domains = wire.NewSet(
	auditDomain,
	paymentDomain,
	notificationDomain,
	bookingRequestDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingRequestHandler.New,
	emailFailureHandler.New,
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
