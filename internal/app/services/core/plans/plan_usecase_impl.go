package plans

import (
	"context"
	"errors"
	"fmt"
	"io"
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

	"go.uber.org/zap"
)

var errNoPlanRows = errors.New("plan has no rows")

type planUsecase struct {
	CoverageUsecase contracts.CoverageUsecase
	Storage         contracts.Storage
	ExportNotifier  contracts.ExportNotifier
	InternalConfig  *config.InternalConfig
	Labels          roster.Labels
	Log             *zap.Logger
	Now             func() time.Time
}

// NewPlanUsecase wires plan expansion. storage and exportNotifier may be nil
// when their drivers are disabled.
func NewPlanUsecase(
	coverageUsecase contracts.CoverageUsecase,
	storage contracts.Storage,
	exportNotifier contracts.ExportNotifier,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PlanUsecase {
	return &planUsecase{
		CoverageUsecase: coverageUsecase,
		Storage:         storage,
		ExportNotifier:  exportNotifier,
		InternalConfig:  internalConfig,
		Labels:          roster.LabelsFor(internalConfig.Export.Locale),
		Log:             logger,
		Now:             time.Now,
	}
}

func (uc *planUsecase) Parse(ctx context.Context, fileName string, file io.Reader) ([]roster.PlanRow, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("planUsecase.Parse called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFileNameKey, fileName),
	)

	rawRows, err := planfile.ReadPlan(fileName, file)
	if err != nil {
		if errors.Is(err, planfile.ErrUnsupportedFormat) {
			return nil, exceptions.ErrUnsupportedPlanFile(err, fileName)
		}
		return nil, exceptions.ErrMalformedPlanFile(err, fileName)
	}
	if len(rawRows) == 0 {
		return nil, exceptions.ErrMalformedPlanFile(errNoPlanRows, fileName)
	}

	rows, err := RowsFromPlan(rawRows)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("planUsecase.Parse succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPlanRowCountKey, len(rows)),
	)
	return rows, nil
}

// FromRequest validates a JSON plan. Row numbers in errors are 1-based.
func (uc *planUsecase) FromRequest(ctx context.Context, request *requests.ExpandPlan) ([]roster.PlanRow, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	rows := make([]roster.PlanRow, 0, len(request.Rows))
	for i, each := range request.Rows {
		each.ShiftCode = strings.TrimSpace(each.ShiftCode)
		each.ContractType = strings.TrimSpace(each.ContractType)
		each.RestDay = strings.TrimSpace(each.RestDay)
		row, err := toPlanRow(each)
		if err != nil {
			return nil, exceptions.ErrMalformedPlanRow(err, i+1)
		}
		rows = append(rows, row)
	}

	uc.Log.Info("planUsecase.FromRequest succeeded",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.Int(constvars.LoggingPlanRowCountKey, len(rows)),
	)
	return rows, nil
}

func (uc *planUsecase) Expand(ctx context.Context, rows []roster.PlanRow) ([]roster.Record, error) {
	requestID := utils.GetRequestID(ctx)

	resolver, err := uc.CoverageUsecase.Resolver(ctx)
	if err != nil {
		uc.Log.Error("planUsecase.Expand error loading coverage table",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	records := roster.NewExpander(resolver, uc.Labels).Expand(rows)
	summary := roster.Summarize(records)

	uc.Log.Info("planUsecase.Expand succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPlanRowCountKey, len(rows)),
		zap.Int(constvars.LoggingAgentCountKey, summary.Agents),
		zap.Int(constvars.LoggingRecordCountKey, summary.Records),
	)
	return records, nil
}

func (uc *planUsecase) Render(ctx context.Context, records []roster.Record, format string) (*planfile.Document, error) {
	document, err := planfile.Write(records, uc.Labels, format, uc.Now())
	if err != nil {
		if errors.Is(err, planfile.ErrUnsupportedFormat) {
			return nil, exceptions.ErrUnsupportedFormat(format, planfile.FormatXLSX, planfile.FormatCSV)
		}
		return nil, exceptions.ErrRenderSchedule(err, format)
	}

	uc.Log.Info("planUsecase.Render succeeded",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingFileNameKey, document.FileName),
		zap.String(constvars.LoggingFormatKey, format),
	)
	return document, nil
}

// Export stores the rendered roster in object storage and announces it.
// A failed announcement is logged; the stored export is still returned.
func (uc *planUsecase) Export(ctx context.Context, records []roster.Record, format string) (*responses.PlanExport, error) {
	requestID := utils.GetRequestID(ctx)

	if uc.Storage == nil {
		return nil, exceptions.ErrExportStorageDisabled()
	}

	document, err := uc.Render(ctx, records, format)
	if err != nil {
		return nil, err
	}

	exportID := utils.GenerateExportID()
	bucketName := uc.InternalConfig.Export.BucketName
	objectName := fmt.Sprintf("%s%s/%s", constvars.ExportObjectPrefix, exportID, document.FileName)

	err = uc.Storage.UploadObject(ctx, bucketName, objectName, document.ContentType, document.Body)
	if err != nil {
		uc.Log.Error("planUsecase.Export error uploading roster",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketKey, bucketName),
			zap.Error(err),
		)
		return nil, err
	}

	expiry := time.Duration(uc.InternalConfig.Export.PresignedURLExpiryTimeInHour) * time.Hour
	url, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, bucketName, objectName, document.FileName, expiry)
	if err != nil {
		uc.Log.Error("planUsecase.Export error presigning roster URL",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketKey, bucketName),
			zap.Error(err),
		)
		return nil, err
	}

	summary := roster.Summarize(records)
	exportedAt := uc.Now().UTC()

	if uc.ExportNotifier != nil {
		event := &requests.ScheduleExportedEvent{
			Event:       constvars.EventScheduleExport,
			ExportID:    exportID,
			RequestID:   requestID,
			FileName:    document.FileName,
			Bucket:      bucketName,
			Format:      document.Format,
			RecordCount: summary.Records,
			AgentCount:  summary.Agents,
			ExportedAt:  exportedAt,
		}
		if err := uc.ExportNotifier.PublishScheduleExported(ctx, event); err != nil {
			uc.Log.Error("planUsecase.Export error publishing export event",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingQueueKey, uc.InternalConfig.Export.RabbitMQQueue),
				zap.Error(err),
			)
		}
	}

	utils.LogBusinessEvent(uc.Log, "schedule_exported", requestID,
		zap.String(constvars.LoggingFileNameKey, document.FileName),
		zap.String(constvars.LoggingBucketKey, bucketName),
		zap.Int(constvars.LoggingRecordCountKey, summary.Records),
	)

	return &responses.PlanExport{
		ExportID:    exportID,
		FileName:    document.FileName,
		Format:      document.Format,
		URL:         url,
		RecordCount: summary.Records,
		ExportedAt:  exportedAt,
	}, nil
}

func toPlanRow(request requests.PlanRow) (roster.PlanRow, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return roster.PlanRow{}, err
	}
	restDay, err := roster.ParseWeekday(request.RestDay)
	if err != nil {
		return roster.PlanRow{}, err
	}
	return roster.PlanRow{
		ShiftCode:    request.ShiftCode,
		ContractType: request.ContractType,
		RestDay:      restDay,
		Headcount:    request.Headcount,
		MealLabel:    request.MealLabel,
	}, nil
}

// RowsFromPlan validates the raw lines of a plan file. The error of the
// first bad line carries its line number.
func RowsFromPlan(rawRows []planfile.RawRow) ([]roster.PlanRow, error) {
	rows := make([]roster.PlanRow, 0, len(rawRows))
	for _, raw := range rawRows {
		headcount, err := utils.ParseHeadcount(raw.Headcount)
		if err != nil {
			return nil, exceptions.ErrMalformedPlanRow(err, raw.Line)
		}
		row, err := toPlanRow(requests.PlanRow{
			ShiftCode:    strings.TrimSpace(raw.ShiftCode),
			ContractType: strings.TrimSpace(raw.ContractType),
			RestDay:      strings.TrimSpace(raw.RestDay),
			Headcount:    headcount,
			MealLabel:    strings.TrimSpace(raw.MealLabel),
		})
		if err != nil {
			return nil, exceptions.ErrMalformedPlanRow(err, raw.Line)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
