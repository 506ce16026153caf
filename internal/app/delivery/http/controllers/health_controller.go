package controllers

import (
	"net/http"

	"roster-service/internal/pkg/constvars"
	"roster-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type HealthController struct {
	Log *zap.Logger
}

func NewHealthController(logger *zap.Logger) *HealthController {
	return &HealthController{Log: logger}
}

func (ctrl *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, nil)
}
