package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "")
	t.Setenv("RATING_POLICY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, CatalogSourceEmbedded, cfg.Catalog.Source)
	assert.Equal(t, "stored", cfg.Catalog.RatingPolicy)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.RedisAddr())
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
}

func TestLoad_CatalogConfig(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "file")
	t.Setenv("CATALOG_PATH", "/data/catalog.json")
	t.Setenv("RATING_POLICY", "mean")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, CatalogSourceFile, cfg.Catalog.Source)
	assert.Equal(t, "/data/catalog.json", cfg.Catalog.Path)
	assert.Equal(t, "mean", cfg.Catalog.RatingPolicy)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("file source without path", func(t *testing.T) {
		t.Setenv("CATALOG_SOURCE", "file")
		t.Setenv("CATALOG_PATH", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown source", func(t *testing.T) {
		t.Setenv("CATALOG_SOURCE", "s3")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown rating policy", func(t *testing.T) {
		t.Setenv("CATALOG_SOURCE", "")
		t.Setenv("RATING_POLICY", "median")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoad_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("REDIS_ENABLED", "yes please")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.Redis.Enabled)
}

func TestDatabaseDSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Database: "d", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=d sslmode=disable", db.DatabaseDSN())
}

func TestLoad_AllowedOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}
