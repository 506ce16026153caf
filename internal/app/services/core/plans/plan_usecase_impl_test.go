package plans

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"roster-service/internal/app/config"
	"roster-service/internal/pkg/constvars"
	"roster-service/internal/pkg/coverage"
	"roster-service/internal/pkg/dto/requests"
	"roster-service/internal/pkg/dto/responses"
	"roster-service/internal/pkg/exceptions"
	"roster-service/internal/pkg/planfile"
	"roster-service/internal/pkg/roster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockCoverageUsecase struct {
	mock.Mock
}

func (m *MockCoverageUsecase) Resolver(ctx context.Context) (*coverage.Resolver, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).(*coverage.Resolver)
	return result, args.Error(1)
}

func (m *MockCoverageUsecase) FindAll(ctx context.Context) ([]responses.ShiftCoverage, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).([]responses.ShiftCoverage)
	return result, args.Error(1)
}

func (m *MockCoverageUsecase) FindByCode(ctx context.Context, code string) (*responses.ShiftCoverage, error) {
	args := m.Called(ctx, code)
	result, _ := args.Get(0).(*responses.ShiftCoverage)
	return result, args.Error(1)
}

func (m *MockCoverageUsecase) Upsert(ctx context.Context, code string, request *requests.UpsertShiftCoverage) (*responses.ShiftCoverage, error) {
	args := m.Called(ctx, code, request)
	result, _ := args.Get(0).(*responses.ShiftCoverage)
	return result, args.Error(1)
}

func (m *MockCoverageUsecase) Refresh(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadObject(ctx context.Context, bucketName, objectName, contentType string, body []byte) error {
	return m.Called(ctx, bucketName, objectName, contentType, body).Error(0)
}

func (m *MockStorage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName, fileName string, expiryTime time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, fileName, expiryTime)
	return args.String(0), args.Error(1)
}

type MockExportNotifier struct {
	mock.Mock
}

func (m *MockExportNotifier) PublishScheduleExported(ctx context.Context, event *requests.ScheduleExportedEvent) error {
	return m.Called(ctx, event).Error(0)
}

var fixedNow = time.Date(2024, 3, 4, 10, 30, 0, 0, time.UTC)

func testConfig() *config.InternalConfig {
	return &config.InternalConfig{
		Export: config.AppExport{
			Locale:                       "en",
			BucketName:                   "rosters",
			PresignedURLExpiryTimeInHour: 24,
			RabbitMQQueue:                "roster.exports",
		},
	}
}

func testResolver() *coverage.Resolver {
	return coverage.NewResolver(coverage.MapTable{
		"M08": coverage.MaskOf(8, 9, 10, 11, 13, 14, 15),
		"E20": coverage.MaskOf(20, 21, 22, 23),
	})
}

func newUsecase(coverageUsecase *MockCoverageUsecase, storage *MockStorage, notifier *MockExportNotifier) *planUsecase {
	uc := &planUsecase{
		CoverageUsecase: coverageUsecase,
		InternalConfig:  testConfig(),
		Labels:          roster.LabelsFor("en"),
		Log:             zap.NewNop(),
		Now:             func() time.Time { return fixedNow },
	}
	if storage != nil {
		uc.Storage = storage
	}
	if notifier != nil {
		uc.ExportNotifier = notifier
	}
	return uc
}

func TestPlanUsecase_ParseCSV(t *testing.T) {
	uc := newUsecase(nil, nil, nil)
	plan := "Horario,Tipo de Contrato,Día de Descanso,Personal a Contratar,Refrigerio\n" +
		"M08,Full Time 48h,Domingo,2.0,13:00-14:00\n" +
		"E20,Part Time 24h,miercoles,1,\n"

	rows, err := uc.Parse(context.Background(), "plan.csv", strings.NewReader(plan))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, roster.PlanRow{
		ShiftCode:    "M08",
		ContractType: "Full Time 48h",
		RestDay:      roster.Sunday,
		Headcount:    2,
		MealLabel:    "13:00-14:00",
	}, rows[0])
	assert.Equal(t, roster.Wednesday, rows[1].RestDay)
}

func TestPlanUsecase_ParseRejectsMalformedRows(t *testing.T) {
	uc := newUsecase(nil, nil, nil)
	header := "Shift,Contract Type,Rest Day,Headcount\n"

	cases := map[string]string{
		"zero headcount":     "M08,Full Time,Sunday,0\n",
		"negative headcount": "M08,Full Time,Sunday,-1\n",
		"text headcount":     "M08,Full Time,Sunday,abc\n",
		"fraction headcount": "M08,Full Time,Sunday,1.5\n",
		"unknown rest day":   "M08,Full Time,Someday,1\n",
		"missing shift code": ",Full Time,Sunday,1\n",
	}
	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			plan := header + "M08,Full Time,Monday,1\n" + line
			_, err := uc.Parse(context.Background(), "plan.csv", strings.NewReader(plan))
			require.Error(t, err)

			var customErr *exceptions.CustomError
			require.ErrorAs(t, err, &customErr)
			assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
			assert.Contains(t, customErr.ClientMessage, "plan row 3")
		})
	}
}

func TestPlanUsecase_ParseFileErrors(t *testing.T) {
	uc := newUsecase(nil, nil, nil)

	_, err := uc.Parse(context.Background(), "plan.pdf", strings.NewReader("x"))
	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, constvars.StatusUnsupportedMedia, customErr.StatusCode)

	_, err = uc.Parse(context.Background(), "plan.csv", strings.NewReader("Shift,Headcount\nM08,1\n"))
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	assert.ErrorIs(t, err, planfile.ErrMissingColumn)

	_, err = uc.Parse(context.Background(), "plan.csv", strings.NewReader("Shift,Contract Type,Rest Day,Headcount\n"))
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
}

func TestPlanUsecase_FromRequest(t *testing.T) {
	uc := newUsecase(nil, nil, nil)

	rows, err := uc.FromRequest(context.Background(), &requests.ExpandPlan{Rows: []requests.PlanRow{
		{ShiftCode: "M08", ContractType: "Full Time", RestDay: "Sábado", Headcount: 1, MealLabel: "13:00-14:00"},
	}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, roster.Saturday, rows[0].RestDay)

	_, err = uc.FromRequest(context.Background(), &requests.ExpandPlan{})
	assert.Error(t, err)

	_, err = uc.FromRequest(context.Background(), &requests.ExpandPlan{Rows: []requests.PlanRow{
		{ShiftCode: "M08", ContractType: "Full Time", RestDay: "Sunday", Headcount: 1},
		{ShiftCode: "M08", ContractType: "Full Time", RestDay: "Sunday", Headcount: 0},
	}})
	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Contains(t, customErr.ClientMessage, "plan row 2")
}

func TestPlanUsecase_Expand(t *testing.T) {
	coverageUsecase := new(MockCoverageUsecase)
	coverageUsecase.On("Resolver", mock.Anything).Return(testResolver(), nil)
	uc := newUsecase(coverageUsecase, nil, nil)

	records, err := uc.Expand(context.Background(), []roster.PlanRow{
		{ShiftCode: "M08", ContractType: "Full Time", RestDay: roster.Sunday, Headcount: 1, MealLabel: "13:00-14:00"},
		{ShiftCode: "E20", ContractType: "Part Time", RestDay: roster.Monday, Headcount: 1},
	})
	require.NoError(t, err)
	require.Len(t, records, 14)

	assert.Equal(t, roster.Record{
		AgentID: "M08-1", ShiftCode: "M08", ContractType: "Full Time", Day: "Monday",
		Window: "08:00-16:00", Break: "12:00-13:00", Meal: "13:00-14:00",
	}, records[0])
	assert.Equal(t, "DSO", records[6].Window)
	assert.Equal(t, "DSO", records[7].Window)
	assert.Equal(t, "20:00-00:00", records[8].Window)
	assert.Equal(t, "-", records[8].Break)
}

func TestPlanUsecase_ExpandCoverageError(t *testing.T) {
	coverageUsecase := new(MockCoverageUsecase)
	coverageUsecase.On("Resolver", mock.Anything).Return(nil, errors.New("no table"))
	uc := newUsecase(coverageUsecase, nil, nil)

	_, err := uc.Expand(context.Background(), []roster.PlanRow{{ShiftCode: "M08", Headcount: 1}})
	assert.Error(t, err)
}

func TestPlanUsecase_Render(t *testing.T) {
	uc := newUsecase(nil, nil, nil)
	records := []roster.Record{{AgentID: "M08-1", ShiftCode: "M08", Day: "Monday", Window: "08:00-16:00", Break: "-", Meal: "-"}}

	document, err := uc.Render(context.Background(), records, "csv")
	require.NoError(t, err)
	assert.Equal(t, "plan_final_20240304_103000.csv", document.FileName)
	assert.Contains(t, string(document.Body), "M08-1,M08,,Monday,08:00-16:00,-,-")

	_, err = uc.Render(context.Background(), records, "pdf")
	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
}

func TestPlanUsecase_Export(t *testing.T) {
	storage := new(MockStorage)
	notifier := new(MockExportNotifier)
	uc := newUsecase(nil, storage, notifier)
	records := []roster.Record{
		{AgentID: "M08-1", Day: "Monday", Window: "08:00-16:00"},
		{AgentID: "M08-1", Day: "Sunday", Window: "DSO"},
	}

	objectName := mock.MatchedBy(func(name string) bool {
		return strings.HasPrefix(name, "exports/") && strings.HasSuffix(name, "/plan_final_20240304_103000.xlsx")
	})
	storage.On("UploadObject", mock.Anything, "rosters", objectName, planfile.MIMEXLSX, mock.Anything).Return(nil).Once()
	storage.On("GetObjectUrlWithExpiryTime", mock.Anything, "rosters", objectName, "plan_final_20240304_103000.xlsx", 24*time.Hour).
		Return("http://minio/rosters/exports/x", nil).Once()
	notifier.On("PublishScheduleExported", mock.Anything, mock.MatchedBy(func(event *requests.ScheduleExportedEvent) bool {
		return event.Event == constvars.EventScheduleExport && event.RecordCount == 2 && event.AgentCount == 1 && event.Bucket == "rosters"
	})).Return(nil).Once()

	export, err := uc.Export(context.Background(), records, "xlsx")
	require.NoError(t, err)
	assert.Equal(t, "plan_final_20240304_103000.xlsx", export.FileName)
	assert.Equal(t, "http://minio/rosters/exports/x", export.URL)
	assert.Equal(t, 2, export.RecordCount)
	assert.NotEmpty(t, export.ExportID)
	assert.Equal(t, fixedNow, export.ExportedAt)

	storage.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestPlanUsecase_ExportNotifierFailureIsNotFatal(t *testing.T) {
	storage := new(MockStorage)
	notifier := new(MockExportNotifier)
	uc := newUsecase(nil, storage, notifier)

	storage.On("UploadObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	storage.On("GetObjectUrlWithExpiryTime", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("http://minio/x", nil)
	notifier.On("PublishScheduleExported", mock.Anything, mock.Anything).Return(errors.New("channel closed"))

	export, err := uc.Export(context.Background(), nil, "csv")
	require.NoError(t, err)
	assert.Equal(t, "http://minio/x", export.URL)
}

func TestPlanUsecase_ExportErrors(t *testing.T) {
	uc := newUsecase(nil, nil, nil)
	_, err := uc.Export(context.Background(), nil, "xlsx")
	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, constvars.StatusServiceUnavailable, customErr.StatusCode)

	storage := new(MockStorage)
	storage.On("UploadObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(exceptions.ErrMinioCreateObject(errors.New("denied"), "rosters"))
	uc = newUsecase(nil, storage, nil)
	_, err = uc.Export(context.Background(), nil, "xlsx")
	assert.Error(t, err)
	storage.AssertNotCalled(t, "GetObjectUrlWithExpiryTime", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
