package services

import (
	"context"
	"math"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zatekoja/costestimator/internal/domain/entities"
	"github.com/zatekoja/costestimator/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/costestimator/pkg/errors"
)

// Estimate computes the display price range for req against catalog.
// It performs no I/O and returns the same result for the same inputs.
func Estimate(req entities.EstimateRequest, catalog *entities.Catalog) (*entities.EstimateResult, error) {
	if catalog == nil {
		return nil, apperrors.NewDataLoadError("price data is not loaded", nil)
	}

	zip := strings.TrimSpace(req.ZIP)
	if !entities.IsValidZIP(zip) {
		return nil, apperrors.NewInvalidZipError()
	}

	svc, ok := catalog.Service(req.ServiceCode)
	if !ok {
		return nil, apperrors.NewUnknownServiceError(req.ServiceCode)
	}

	region := entities.ResolveRegion(zip)
	factor := catalog.RegionFactor(region)
	multiplier := req.Insurance.Multiplier()

	return &entities.EstimateResult{
		ServiceCode:    svc.Code,
		ServiceName:    svc.Name,
		ZIP:            zip,
		Region:         region,
		RegionLabel:    region.Label(),
		Insurance:      req.Insurance,
		InsuranceLabel: req.Insurance.Label(),
		Low:            scale(svc.Base.Low, factor, multiplier),
		High:           scale(svc.Base.High, factor, multiplier),
		TipKey:         svc.EffectiveTipKey(),
	}, nil
}

// scale multiplies left to right and rounds half away from zero
func scale(base, factor, multiplier float64) int64 {
	return int64(math.Round(base * factor * multiplier))
}

// CatalogSource provides the catalog snapshot to read from
type CatalogSource interface {
	Current() (*entities.Catalog, error)
}

// EstimatorService serves quotes, service listings and tips from the current catalog
type EstimatorService struct {
	catalogs CatalogSource
	metrics  *observability.Metrics
}

// NewEstimatorService creates a new estimator service
func NewEstimatorService(catalogs CatalogSource, metrics *observability.Metrics) *EstimatorService {
	return &EstimatorService{
		catalogs: catalogs,
		metrics:  metrics,
	}
}

// Quote estimates req and attaches the tips for the selected service
func (s *EstimatorService) Quote(ctx context.Context, req entities.EstimateRequest) (*entities.Quote, error) {
	ctx, span := observability.StartSpan(ctx, "EstimatorService.Quote")
	defer span.End()

	logger := observability.LoggerFromContext(ctx)

	catalog, err := s.catalogs.Current()
	if err != nil {
		observability.RecordError(span, err)
		observability.RecordEstimateError(ctx, s.metrics, string(apperrors.ErrorTypeDataLoad))
		return nil, err
	}

	if req.Insurance != "" && !req.Insurance.IsKnown() {
		logger.Debug().Str("insurance", string(req.Insurance)).Msg("unknown insurance category, using multiplier 1.0")
	}

	result, err := Estimate(req, catalog)
	if err != nil {
		observability.RecordError(span, err)
		errorType := apperrors.ErrorTypeInternal
		if appErr, ok := apperrors.As(err); ok {
			errorType = appErr.Type
		}
		observability.RecordEstimateError(ctx, s.metrics, string(errorType))
		logger.Debug().Err(err).Str("service", req.ServiceCode).Msg("estimate rejected")
		return nil, err
	}

	observability.SetSpanAttributes(span,
		attribute.String("estimate.service", result.ServiceCode),
		attribute.String("estimate.region", string(result.Region)),
		attribute.Int64("estimate.low", result.Low),
		attribute.Int64("estimate.high", result.High),
	)
	observability.RecordEstimate(ctx, s.metrics, string(result.Region), string(result.Insurance))

	return &entities.Quote{
		EstimateResult: *result,
		Tips:           ResolveTips(result.TipKey, catalog.Tips()),
	}, nil
}

// ListServices returns all services in dataset order
func (s *EstimatorService) ListServices(ctx context.Context) ([]entities.ServiceRecord, error) {
	catalog, err := s.catalogs.Current()
	if err != nil {
		return nil, err
	}
	return catalog.Services(), nil
}

// GetService returns a single service by exact code
func (s *EstimatorService) GetService(ctx context.Context, code string) (*entities.ServiceRecord, error) {
	catalog, err := s.catalogs.Current()
	if err != nil {
		return nil, err
	}
	svc, ok := catalog.Service(code)
	if !ok {
		return nil, apperrors.NewUnknownServiceError(code)
	}
	return &svc, nil
}

// Tips returns the tips for key with the general fallback applied
func (s *EstimatorService) Tips(ctx context.Context, key string) ([]string, error) {
	catalog, err := s.catalogs.Current()
	if err != nil {
		return nil, err
	}
	return ResolveTips(key, catalog.Tips()), nil
}
