package controllers

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strings"
	"time"

	"roster-service/internal/app/config"
	"roster-service/internal/app/contracts"
	"roster-service/internal/pkg/constvars"
	"roster-service/internal/pkg/dto/requests"
	"roster-service/internal/pkg/dto/responses"
	"roster-service/internal/pkg/exceptions"
	"roster-service/internal/pkg/planfile"
	"roster-service/internal/pkg/roster"
	"roster-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var errMissingRequestID = errors.New("request id not found in context")

type PlanController struct {
	Log            *zap.Logger
	PlanUsecase    contracts.PlanUsecase
	InternalConfig *config.InternalConfig
}

func NewPlanController(logger *zap.Logger, planUsecase contracts.PlanUsecase, internalConfig *config.InternalConfig) *PlanController {
	return &PlanController{
		Log:            logger,
		PlanUsecase:    planUsecase,
		InternalConfig: internalConfig,
	}
}

// Expand answers with the expanded records as JSON, or as an xlsx/csv
// attachment when ?format asks for one.
func (ctrl *PlanController) Expand(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get(constvars.QueryParamFormat))
	if format == "" {
		format = planfile.FormatJSON
	}
	if format != planfile.FormatJSON && format != planfile.FormatXLSX && format != planfile.FormatCSV {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrUnsupportedFormat(format, planfile.FormatJSON, planfile.FormatXLSX, planfile.FormatCSV))
		return
	}

	ctx, cancel, err := ctrl.requestContext(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	defer cancel()

	records, err := ctrl.expand(ctx, w, r)
	if err != nil {
		ctrl.respondError(w, err)
		return
	}

	if format == planfile.FormatJSON {
		utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ExpandPlanSuccessMessage, responses.ExpandedPlan{
			Summary: roster.Summarize(records),
			Records: records,
		})
		return
	}

	document, err := ctrl.PlanUsecase.Render(ctx, records, format)
	if err != nil {
		ctrl.respondError(w, err)
		return
	}
	utils.BuildFileResponse(w, document.FileName, document.ContentType, document.Body)
}

// Export stores the expanded roster and answers with its download link.
func (ctrl *PlanController) Export(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get(constvars.QueryParamFormat))
	if format == "" {
		format = ctrl.InternalConfig.Export.DefaultFormat
	}
	if format != planfile.FormatXLSX && format != planfile.FormatCSV {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrUnsupportedFormat(format, planfile.FormatXLSX, planfile.FormatCSV))
		return
	}

	ctx, cancel, err := ctrl.requestContext(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	defer cancel()

	records, err := ctrl.expand(ctx, w, r)
	if err != nil {
		ctrl.respondError(w, err)
		return
	}

	result, err := ctrl.PlanUsecase.Export(ctx, records, format)
	if err != nil {
		ctrl.respondError(w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ExportPlanSuccessMessage, result)
}

func (ctrl *PlanController) requestContext(r *http.Request) (context.Context, context.CancelFunc, error) {
	if _, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); !ok {
		return nil, nil, exceptions.ErrMissingRequestID(errMissingRequestID)
	}
	timeout := time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds) * time.Second
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	return ctx, cancel, nil
}

// expand reads the plan from a multipart upload or a JSON body and expands
// it.
func (ctrl *PlanController) expand(ctx context.Context, w http.ResponseWriter, r *http.Request) ([]roster.Record, error) {
	bodyLimit := int64(ctrl.InternalConfig.App.RequestBodyLimitInMegabyte) << 20
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)

	var (
		rows []roster.PlanRow
		err  error
	)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get(constvars.HeaderContentType))
	if mediaType == constvars.MIMEMultipartForm {
		if err := r.ParseMultipartForm(bodyLimit); err != nil {
			return nil, bodyError(err, exceptions.ErrCannotParseMultipartForm)
		}
		file, header, err := r.FormFile(constvars.FormFieldPlanFile)
		if err != nil {
			return nil, exceptions.ErrCannotParseMultipartForm(err)
		}
		defer file.Close()

		rows, err = ctrl.PlanUsecase.Parse(ctx, header.Filename, file)
		if err != nil {
			return nil, err
		}
	} else {
		request := new(requests.ExpandPlan)
		if err := json.NewDecoder(r.Body).Decode(request); err != nil {
			return nil, bodyError(err, exceptions.ErrCannotParseJSON)
		}
		rows, err = ctrl.PlanUsecase.FromRequest(ctx, request)
		if err != nil {
			return nil, err
		}
	}

	return ctrl.PlanUsecase.Expand(ctx, rows)
}

func (ctrl *PlanController) respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(ctrl.Log, w, err)
}

// bodyError reports an oversized body as 413 and anything else through
// fallback.
func bodyError(err error, fallback func(error) *exceptions.CustomError) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return exceptions.ErrRequestTooLarge(err, maxBytesErr.Limit)
	}
	return fallback(err)
}
