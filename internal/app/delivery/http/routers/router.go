package routers

import (
	"fmt"

	"roster-service/internal/app/config"
	"roster-service/internal/app/delivery/http/controllers"
	"roster-service/internal/app/delivery/http/middlewares"
	"roster-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	healthController *controllers.HealthController,
	planController *controllers.PlanController,
	coverageController *controllers.CoverageController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{constvars.MethodGet, constvars.MethodPost, constvars.MethodPut, constvars.MethodOptions},
		AllowedHeaders:   []string{constvars.HeaderAccept, constvars.HeaderAuthorization, constvars.HeaderContentType, constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderContentDisposition, constvars.HeaderXRequestID, constvars.HeaderRetryAfter},
		AllowCredentials: false,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.GlobalRateLimit())

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Get("/"+constvars.ResourceHealth, healthController.Check)

			r.Route("/"+constvars.ResourcePlans, func(r chi.Router) {
				attachPlanRoutes(r, middlewares, planController)
			})

			r.Route("/"+constvars.ResourceCoverages, func(r chi.Router) {
				attachCoverageRoutes(r, middlewares, coverageController)
			})
		})
	})
}
