package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/robalyx/stemdata/internal/setup/config"
	"github.com/robalyx/stemdata/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validStorage() config.Storage {
	return config.Storage{
		Endpoint:  "https://storage.example.com",
		Region:    "auto",
		AccessKey: "access",
		SecretKey: "secret",
		Bucket:    "releases",
		Prefix:    "/stemdata/",
		UseSSL:    true,
	}
}

func TestNewPublisherValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*config.Storage)
	}{
		{name: "missing endpoint", modify: func(c *config.Storage) { c.Endpoint = "" }},
		{name: "missing access key", modify: func(c *config.Storage) { c.AccessKey = " " }},
		{name: "missing secret key", modify: func(c *config.Storage) { c.SecretKey = "" }},
		{name: "missing bucket", modify: func(c *config.Storage) { c.Bucket = "" }},
		{name: "defaults", modify: func(c *config.Storage) { *c = config.Default().Storage }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validStorage()
			tt.modify(&cfg)

			_, err := storage.NewPublisher(&cfg, zap.NewNop())
			require.ErrorIs(t, err, storage.ErrStorageNotConfigured)
		})
	}
}

func TestPublisherObjectKey(t *testing.T) {
	t.Parallel()

	cfg := validStorage()
	publisher, err := storage.NewPublisher(&cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "stemdata/STEMDATA_20250101_000000.zip", publisher.ObjectKey("dist/STEMDATA_20250101_000000.zip"))

	cfg.Prefix = ""
	publisher, err = storage.NewPublisher(&cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "STEMDATA_20250101_000000.zip", publisher.ObjectKey("/tmp/dist/STEMDATA_20250101_000000.zip"))
}

func TestPublishMissingArchive(t *testing.T) {
	t.Parallel()

	cfg := validStorage()
	publisher, err := storage.NewPublisher(&cfg, zap.NewNop())
	require.NoError(t, err)

	_, err = publisher.Publish(context.Background(), filepath.Join(t.TempDir(), "missing.zip"))
	require.Error(t, err)
}
