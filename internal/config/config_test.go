package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/crane")
	t.Setenv("JWT_ACCESS_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "filesystem", cfg.Storage.Type)
	assert.Equal(t, "storage/images", cfg.Storage.Dir)
	assert.Equal(t, "crane-images", cfg.Storage.MinioBucket)
	assert.Nil(t, cfg.Ingest.AllowedIPs)
}

func TestLoad_MissingDSN(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_ACCESS_SECRET", "secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN")
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/crane")
	t.Setenv("JWT_ACCESS_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_ACCESS_SECRET")
}

func TestLoad_MinioRequiresEndpoint(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/crane")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("STORAGE_TYPE", "minio")
	t.Setenv("MINIO_ENDPOINT", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MINIO_ENDPOINT")
}

func TestLoad_UnknownStorageType(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/crane")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("STORAGE_TYPE", "s3")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_TYPE")
}

func TestLoad_AllowedIPs(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/crane")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("ALLOWED_IPS", "10.0.0.1, 192.168.0.0/16 ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "192.168.0.0/16"}, cfg.Ingest.AllowedIPs)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList("   "))
	assert.Equal(t, []string{"a", "b"}, splitList("a,b"))
	assert.Equal(t, []string{"a"}, splitList(" a , , "))
}
