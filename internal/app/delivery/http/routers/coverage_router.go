package routers

import (
	"roster-service/internal/app/delivery/http/controllers"
	"roster-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachCoverageRoutes(router chi.Router, middlewares *middlewares.Middlewares, coverageController *controllers.CoverageController) {
	router.Get("/", coverageController.FindAll)
	router.Get("/{code}", coverageController.FindByCode)
	router.With(middlewares.RequireAdmin).Put("/{code}", coverageController.Upsert)
}
