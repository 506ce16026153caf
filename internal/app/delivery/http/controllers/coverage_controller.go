package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"roster-service/internal/app/config"
	"roster-service/internal/app/contracts"
	"roster-service/internal/pkg/constvars"
	"roster-service/internal/pkg/dto/requests"
	"roster-service/internal/pkg/exceptions"
	"roster-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type CoverageController struct {
	Log             *zap.Logger
	CoverageUsecase contracts.CoverageUsecase
	InternalConfig  *config.InternalConfig
}

func NewCoverageController(logger *zap.Logger, coverageUsecase contracts.CoverageUsecase, internalConfig *config.InternalConfig) *CoverageController {
	return &CoverageController{
		Log:             logger,
		CoverageUsecase: coverageUsecase,
		InternalConfig:  internalConfig,
	}
}

func (ctrl *CoverageController) FindAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	result, err := ctrl.CoverageUsecase.FindAll(ctx)
	if err != nil {
		ctrl.respondError(w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCoveragesSuccessMessage, result)
}

func (ctrl *CoverageController) FindByCode(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	code := chi.URLParam(r, constvars.URLParamShiftCode)
	result, err := ctrl.CoverageUsecase.FindByCode(ctx, code)
	if err != nil {
		ctrl.respondError(w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCoverageSuccessMessage, result)
}

func (ctrl *CoverageController) Upsert(w http.ResponseWriter, r *http.Request) {
	request := new(requests.UpsertShiftCoverage)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	code := chi.URLParam(r, constvars.URLParamShiftCode)
	result, err := ctrl.CoverageUsecase.Upsert(ctx, code, request)
	if err != nil {
		ctrl.respondError(w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpsertCoverageSuccessMessage, result)
}

func (ctrl *CoverageController) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	timeout := time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds) * time.Second
	return context.WithTimeout(r.Context(), timeout)
}

func (ctrl *CoverageController) respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(ctrl.Log, w, err)
}
