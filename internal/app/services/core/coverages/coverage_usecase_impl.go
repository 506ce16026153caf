package coverages

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"roster-service/internal/app/config"
	"roster-service/internal/app/contracts"
	"roster-service/internal/app/models"
	"roster-service/internal/pkg/constvars"
	"roster-service/internal/pkg/coverage"
	"roster-service/internal/pkg/dto/requests"
	"roster-service/internal/pkg/dto/responses"
	"roster-service/internal/pkg/exceptions"
	"roster-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var errShiftCodeRequired = errors.New("shift code is required")

// coverageSnapshot is an immutable view of the coverage table with its own
// memoised resolver.
type coverageSnapshot struct {
	table    coverage.MapTable
	codes    []string
	resolver *coverage.Resolver
}

func newCoverageSnapshot(table coverage.MapTable) *coverageSnapshot {
	codes := make([]string, 0, len(table))
	for code := range table {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return &coverageSnapshot{
		table:    table,
		codes:    codes,
		resolver: coverage.NewResolver(table),
	}
}

type coverageUsecase struct {
	CoverageRepository contracts.CoverageRepository
	RedisRepository    contracts.RedisRepository
	InternalConfig     *config.InternalConfig
	Log                *zap.Logger

	snapshot atomic.Pointer[coverageSnapshot]
	loadMu   sync.Mutex
}

// NewCoverageUsecase wires the coverage table. redisRepository may be nil,
// the table is then read from the repository on every reload.
func NewCoverageUsecase(
	coverageRepository contracts.CoverageRepository,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.CoverageUsecase {
	return &coverageUsecase{
		CoverageRepository: coverageRepository,
		RedisRepository:    redisRepository,
		InternalConfig:     internalConfig,
		Log:                logger,
	}
}

// Resolver returns the resolver of the current snapshot, loading the table
// the first time it is needed.
func (uc *coverageUsecase) Resolver(ctx context.Context) (*coverage.Resolver, error) {
	snapshot, err := uc.current(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.resolver, nil
}

func (uc *coverageUsecase) FindAll(ctx context.Context) ([]responses.ShiftCoverage, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("coverageUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	snapshot, err := uc.current(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]responses.ShiftCoverage, 0, len(snapshot.codes))
	for _, code := range snapshot.codes {
		response = append(response, models.ConvertIntoShiftCoverageResponse(
			code,
			snapshot.table[code],
			true,
			snapshot.resolver.Resolve(code),
		))
	}

	uc.Log.Info("coverageUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCoverageCountKey, len(response)),
	)
	return response, nil
}

// FindByCode resolves one shift code. Codes missing from the table resolve
// to no coverage and are reported as not configured.
func (uc *coverageUsecase) FindByCode(ctx context.Context, code string) (*responses.ShiftCoverage, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("coverageUsecase.FindByCode called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingShiftCodeKey, code),
	)

	snapshot, err := uc.current(ctx)
	if err != nil {
		return nil, err
	}

	mask, configured := snapshot.table.Lookup(code)
	response := models.ConvertIntoShiftCoverageResponse(code, mask, configured, snapshot.resolver.Resolve(code))
	return &response, nil
}

func (uc *coverageUsecase) Upsert(ctx context.Context, code string, request *requests.UpsertShiftCoverage) (*responses.ShiftCoverage, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("coverageUsecase.Upsert called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingShiftCodeKey, code),
	)

	code = strings.TrimSpace(code)
	if code == "" {
		return nil, exceptions.ErrInputValidation(errShiftCodeRequired)
	}
	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	mask, err := coverage.ParseMask(request.Hours)
	if err != nil {
		return nil, exceptions.ErrInvalidCoverageMask(err, code)
	}

	shiftCoverage := &models.ShiftCoverage{
		Code:      code,
		Hours:     mask.Ints(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := uc.CoverageRepository.Upsert(ctx, shiftCoverage); err != nil {
		uc.Log.Error("coverageUsecase.Upsert error writing coverage",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if uc.RedisRepository != nil {
		if err := uc.RedisRepository.Delete(ctx, constvars.RedisKeyCoverageTable); err != nil {
			uc.Log.Warn("coverageUsecase.Upsert error invalidating cached coverage table",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}

	snapshot, err := uc.reload(ctx)
	if err != nil {
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "coverage_upserted", requestID,
		zap.String(constvars.LoggingShiftCodeKey, code),
		zap.Int(constvars.LoggingCoverageCountKey, len(snapshot.codes)),
	)

	response := models.ConvertIntoShiftCoverageResponse(code, mask, true, snapshot.resolver.Resolve(code))
	return &response, nil
}

// Refresh rereads the repository so edits made outside the API are picked
// up. The current snapshot stays in place when the read fails.
func (uc *coverageUsecase) Refresh(ctx context.Context) error {
	snapshot, err := uc.reload(ctx)
	if err != nil {
		uc.Log.Error("coverageUsecase.Refresh error reloading coverage table",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("coverageUsecase.Refresh succeeded",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.Int(constvars.LoggingCoverageCountKey, len(snapshot.codes)),
	)
	return nil
}

func (uc *coverageUsecase) current(ctx context.Context) (*coverageSnapshot, error) {
	if snapshot := uc.snapshot.Load(); snapshot != nil {
		return snapshot, nil
	}

	uc.loadMu.Lock()
	defer uc.loadMu.Unlock()
	if snapshot := uc.snapshot.Load(); snapshot != nil {
		return snapshot, nil
	}

	shiftCoverages, err := uc.loadCached(ctx)
	if err != nil {
		return nil, err
	}
	return uc.install(ctx, shiftCoverages), nil
}

// reload reads the repository, replaces the current snapshot and refreshes
// the Redis copy.
func (uc *coverageUsecase) reload(ctx context.Context) (*coverageSnapshot, error) {
	uc.loadMu.Lock()
	defer uc.loadMu.Unlock()

	shiftCoverages, err := uc.CoverageRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	uc.cache(ctx, shiftCoverages)
	return uc.install(ctx, shiftCoverages), nil
}

// loadCached serves the table from Redis when present. Redis failures fall
// back to the repository.
func (uc *coverageUsecase) loadCached(ctx context.Context) ([]models.ShiftCoverage, error) {
	requestID := utils.GetRequestID(ctx)

	if uc.RedisRepository != nil {
		data, err := uc.RedisRepository.Get(ctx, constvars.RedisKeyCoverageTable)
		switch {
		case err != nil:
			uc.Log.Warn("coverageUsecase.loadCached error retrieving data from Redis",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		case data != "":
			var shiftCoverages []models.ShiftCoverage
			if err := json.Unmarshal([]byte(data), &shiftCoverages); err != nil {
				uc.Log.Warn("coverageUsecase.loadCached error parsing JSON from Redis",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.Error(err),
				)
				break
			}
			uc.Log.Info("coverageUsecase.loadCached data found in Redis",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Bool(constvars.LoggingCacheHitKey, true),
			)
			return shiftCoverages, nil
		}
	}

	uc.Log.Info("coverageUsecase.loadCached fetching coverage table from repository",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool(constvars.LoggingCacheHitKey, false),
	)
	shiftCoverages, err := uc.CoverageRepository.FindAll(ctx)
	if err != nil {
		uc.Log.Error("coverageUsecase.loadCached error fetching coverage table",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	uc.cache(ctx, shiftCoverages)
	return shiftCoverages, nil
}

func (uc *coverageUsecase) cache(ctx context.Context, shiftCoverages []models.ShiftCoverage) {
	if uc.RedisRepository == nil {
		return
	}
	expiry := time.Duration(uc.InternalConfig.Coverage.CacheExpiryTimeInHour) * time.Hour
	err := uc.RedisRepository.Set(ctx, constvars.RedisKeyCoverageTable, shiftCoverages, expiry)
	if err != nil {
		uc.Log.Warn("coverageUsecase.cache error caching coverage table in Redis",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
	}
}

func (uc *coverageUsecase) install(ctx context.Context, shiftCoverages []models.ShiftCoverage) *coverageSnapshot {
	table, invalid := models.CoverageTable(shiftCoverages)
	if len(invalid) > 0 {
		uc.Log.Warn("coverageUsecase.install skipped shift codes with invalid masks",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Strings(constvars.LoggingShiftCodeKey, invalid),
		)
	}

	snapshot := newCoverageSnapshot(table)
	uc.snapshot.Store(snapshot)
	return snapshot
}
