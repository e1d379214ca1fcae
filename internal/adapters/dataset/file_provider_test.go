package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/zatekoja/costestimator/pkg/errors"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileProvider_DetectsFormat(t *testing.T) {
	for name, doc := range map[string]string{
		"prices.json": jsonDataset,
		"prices.yaml": yamlDataset,
		"prices.toml": tomlDataset,
	} {
		t.Run(name, func(t *testing.T) {
			path := writeTempFile(t, name, doc)
			provider := NewFileProvider(path, "")

			ds, err := provider.Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, expectedDataset(), ds)
			assert.Equal(t, path, provider.Describe())
		})
	}
}

func TestFileProvider_ExplicitFormatOverridesExtension(t *testing.T) {
	path := writeTempFile(t, "prices.txt", yamlDataset)

	ds, err := NewFileProvider(path, FormatYAML).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.Services, 2)
}

func TestFileProvider_MissingFile(t *testing.T) {
	_, err := NewFileProvider(filepath.Join(t.TempDir(), "missing.json"), "").Load(context.Background())
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDataLoad))
}

func TestFileProvider_Malformed(t *testing.T) {
	path := writeTempFile(t, "prices.json", `{"services": 12}`)

	_, err := NewFileProvider(path, "").Load(context.Background())
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDataLoad))
}

func TestFileProvider_CancelledContext(t *testing.T) {
	path := writeTempFile(t, "prices.json", jsonDataset)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileProvider(path, "").Load(ctx)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDataLoad))
}
