package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/costestimator/internal/application/services"
	"github.com/zatekoja/costestimator/internal/domain/entities"
	apperrors "github.com/zatekoja/costestimator/pkg/errors"
)

func newCatalog(t *testing.T, ds *entities.Dataset) *entities.Catalog {
	t.Helper()
	catalog, err := entities.NewCatalog(ds, "test")
	require.NoError(t, err)
	return catalog
}

func TestEstimate_InsuredMidwest(t *testing.T) {
	catalog := newCatalog(t, sampleDataset())

	result, err := services.Estimate(entities.EstimateRequest{
		ServiceCode: "mri",
		ZIP:         "48104",
		Insurance:   entities.InsuranceInsured,
	}, catalog)
	require.NoError(t, err)

	assert.Equal(t, int64(468), result.Low)
	assert.Equal(t, int64(1403), result.High)
	assert.Equal(t, entities.RegionMidwest, result.Region)
	assert.Equal(t, "Midwest", result.RegionLabel)
	assert.Equal(t, "Insured", result.InsuranceLabel)
	assert.Equal(t, "MRI (no contrast)", result.ServiceName)
	assert.Equal(t, "mri", result.TipKey)
}

func TestEstimate_RegionWithoutFactor(t *testing.T) {
	catalog := newCatalog(t, sampleDataset())

	result, err := services.Estimate(entities.EstimateRequest{
		ServiceCode: "xray",
		ZIP:         "77777",
		Insurance:   entities.InsuranceUninsured,
	}, catalog)
	require.NoError(t, err)

	assert.Equal(t, entities.RegionSouthwest, result.Region)
	assert.Equal(t, int64(90), result.Low)
	assert.Equal(t, int64(180), result.High)
	assert.Equal(t, entities.DefaultTipKey, result.TipKey)
}

func TestEstimate_RoundsHalfAwayFromZero(t *testing.T) {
	catalog := newCatalog(t, &entities.Dataset{
		Services:      []entities.ServiceRecord{{Code: "lab", Name: "Lab panel", Base: entities.PriceRange{Low: 1, High: 3}}},
		RegionFactors: map[string]float64{"west": 2.5},
	})

	result, err := services.Estimate(entities.EstimateRequest{
		ServiceCode: "lab",
		ZIP:         "90210",
		Insurance:   entities.InsuranceHighDeductible,
	}, catalog)
	require.NoError(t, err)

	assert.Equal(t, int64(3), result.Low)
	assert.Equal(t, int64(8), result.High)
}

func TestEstimate_ZIPValidation(t *testing.T) {
	catalog := newCatalog(t, sampleDataset())

	tests := []struct {
		zip    string
		valid  bool
		region entities.Region
	}{
		{"00000", true, entities.RegionNortheast},
		{"99999", true, entities.RegionWest},
		{" 48104 ", true, entities.RegionMidwest},
		{"1234A", false, ""},
		{"1234", false, ""},
		{"123456", false, ""},
		{"", false, ""},
		{"４８１０４", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.zip, func(t *testing.T) {
			result, err := services.Estimate(entities.EstimateRequest{
				ServiceCode: "mri",
				ZIP:         tt.zip,
				Insurance:   entities.InsuranceInsured,
			}, catalog)

			if !tt.valid {
				assert.Nil(t, result)
				require.Error(t, err)
				appErr, ok := apperrors.As(err)
				require.True(t, ok)
				assert.Equal(t, apperrors.ErrorTypeInvalidZip, appErr.Type)
				assert.Equal(t, "zip", appErr.Field)
				assert.Equal(t, "Please enter a valid 5-digit ZIP code.", appErr.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.region, result.Region)
		})
	}
}

func TestEstimate_ZIPCheckedBeforeService(t *testing.T) {
	catalog := newCatalog(t, sampleDataset())

	_, err := services.Estimate(entities.EstimateRequest{ServiceCode: "nope", ZIP: "12"}, catalog)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInvalidZip))
}

func TestEstimate_UnknownService(t *testing.T) {
	catalog := newCatalog(t, sampleDataset())

	result, err := services.Estimate(entities.EstimateRequest{ServiceCode: "MRI", ZIP: "48104"}, catalog)
	assert.Nil(t, result)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnknownService))
}

func TestEstimate_UnknownInsuranceDefaultsToOne(t *testing.T) {
	catalog := newCatalog(t, sampleDataset())

	result, err := services.Estimate(entities.EstimateRequest{
		ServiceCode: "xray",
		ZIP:         "30301",
		Insurance:   "medicare",
	}, catalog)
	require.NoError(t, err)

	assert.Equal(t, int64(100), result.Low)
	assert.Equal(t, int64(200), result.High)
	assert.Equal(t, "medicare", result.InsuranceLabel)
}

func TestEstimate_NilCatalog(t *testing.T) {
	_, err := services.Estimate(entities.EstimateRequest{ServiceCode: "mri", ZIP: "48104"}, nil)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDataLoad))
}

func TestEstimate_LowNeverExceedsHighAndIsIdempotent(t *testing.T) {
	catalog := newCatalog(t, sampleDataset())

	for digit := 0; digit <= 9; digit++ {
		for _, ins := range entities.InsuranceCategories() {
			for _, svc := range catalog.Services() {
				req := entities.EstimateRequest{
					ServiceCode: svc.Code,
					ZIP:         fmt.Sprintf("%d1234", digit),
					Insurance:   ins,
				}
				first, err := services.Estimate(req, catalog)
				require.NoError(t, err)
				second, err := services.Estimate(req, catalog)
				require.NoError(t, err)

				assert.LessOrEqual(t, first.Low, first.High)
				assert.Equal(t, first, second)
			}
		}
	}
}

func TestEstimatorService_Quote(t *testing.T) {
	provider := new(MockDatasetProvider)
	provider.On("Load", mock.Anything).Return(sampleDataset(), nil)

	store := services.NewCatalogStore(provider, nil)
	_, err := store.Load(context.Background())
	require.NoError(t, err)

	svc := services.NewEstimatorService(store, nil)

	quote, err := svc.Quote(context.Background(), entities.EstimateRequest{
		ServiceCode: "mri",
		ZIP:         "48104",
		Insurance:   entities.InsuranceInsured,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(468), quote.Low)
	assert.Equal(t, []string{"Ask whether contrast is needed."}, quote.Tips)

	quote, err = svc.Quote(context.Background(), entities.EstimateRequest{
		ServiceCode: "ct",
		ZIP:         "48104",
		Insurance:   entities.InsuranceInsured,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ask for the cash price."}, quote.Tips, "missing tip key falls back to general")
}

func TestEstimatorService_NotLoaded(t *testing.T) {
	provider := new(MockDatasetProvider)
	provider.On("Load", mock.Anything).Return(nil, errors.New("connection refused"))

	store := services.NewCatalogStore(provider, nil)
	_, err := store.Load(context.Background())
	require.Error(t, err)

	svc := services.NewEstimatorService(store, nil)

	_, err = svc.Quote(context.Background(), entities.EstimateRequest{ServiceCode: "mri", ZIP: "48104"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDataLoad))

	_, err = svc.ListServices(context.Background())
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDataLoad))

	_, err = svc.Tips(context.Background(), "general")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDataLoad))
}

func TestEstimatorService_Services(t *testing.T) {
	provider := new(MockDatasetProvider)
	provider.On("Load", mock.Anything).Return(sampleDataset(), nil)

	store := services.NewCatalogStore(provider, nil)
	_, err := store.Load(context.Background())
	require.NoError(t, err)

	svc := services.NewEstimatorService(store, nil)

	list, err := svc.ListServices(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"mri", "xray", "ct"}, []string{list[0].Code, list[1].Code, list[2].Code})

	record, err := svc.GetService(context.Background(), "xray")
	require.NoError(t, err)
	assert.Equal(t, "X-ray (2 views)", record.Name)

	_, err = svc.GetService(context.Background(), "pet")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnknownService))

	tips, err := svc.Tips(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ask for the cash price."}, tips)
}
