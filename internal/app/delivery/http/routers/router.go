package routers

import (
	"fmt"
	"schedule-ledger-service/internal/app/config"
	"schedule-ledger-service/internal/app/delivery/http/controllers"
	"schedule-ledger-service/internal/app/delivery/http/middlewares"
	"schedule-ledger-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	scheduleEntryController *controllers.ScheduleEntryController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{constvars.MethodGet, constvars.MethodPost, constvars.MethodPatch, constvars.MethodDelete, constvars.MethodOptions},
		AllowedHeaders:   []string{constvars.HeaderAccept, constvars.HeaderAuthorization, constvars.HeaderContentType, constvars.HeaderXCSRFToken, constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderLink, constvars.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.RateLimiter())
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.BodyLimit)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/schedule-entries", func(r chi.Router) {
				attachScheduleEntryRoutes(r, scheduleEntryController)
			})

			r.Route("/schedule-weeks", func(r chi.Router) {
				attachScheduleWeekRoutes(r, scheduleEntryController)
			})

			r.Route("/clients", func(r chi.Router) {
				attachClientRoutes(r, scheduleEntryController)
			})
		})
	})
}
