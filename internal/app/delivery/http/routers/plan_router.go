package routers

import (
	"roster-service/internal/app/delivery/http/controllers"
	"roster-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPlanRoutes(router chi.Router, middlewares *middlewares.Middlewares, planController *controllers.PlanController) {
	router.Use(middlewares.UploadRateLimiter().Limit)

	router.Post("/expand", planController.Expand)
	router.With(middlewares.ExportQuota).Post("/export", planController.Export)
}
