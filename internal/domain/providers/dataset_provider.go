package providers

import (
	"context"

	"github.com/zatekoja/costestimator/internal/domain/entities"
)

// DatasetProvider fetches the static price dataset.
// Implementations return a DATA_LOAD AppError on any failure.
type DatasetProvider interface {
	// Load fetches and decodes the dataset
	Load(ctx context.Context) (*entities.Dataset, error)

	// Describe returns a human-readable description of the source
	Describe() string
}

// InvalidatingDatasetProvider is implemented by providers that keep a copy of the dataset
// and can drop it so the next Load reads the underlying source.
type InvalidatingDatasetProvider interface {
	DatasetProvider
	Invalidate(ctx context.Context) error
}
