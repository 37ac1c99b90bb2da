package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigs(t *testing.T, public, private string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "public.yaml"), []byte(public), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "private.yaml"), []byte(private), 0o600))
	return dir
}

func TestMustLoad(t *testing.T) {
	dir := writeConfigs(t, `
pg:
  host: db
  port: 5432
  user: u
  password: p
  dbname: askboard
listen_addr: ":9090"
jwt_ttl: 12h
geo_timeout: 2s
max_image_bytes: 1024
`, "jwt_key: 'k'\n")

	cfg := MustLoad(dir)

	assert.Equal(t, "db", cfg.Public.Pg.Host)
	assert.Equal(t, ":9090", cfg.Public.ListenAddr)
	assert.Equal(t, 12*time.Hour, cfg.JwtTTL())
	assert.Equal(t, 2*time.Second, cfg.GeoTimeout())
	assert.Equal(t, int64(1024), cfg.Public.MaxImageBytes)
	assert.Equal(t, "k", cfg.JwtKey())
}

func TestMustLoad_Defaults(t *testing.T) {
	dir := writeConfigs(t, "pg:\n  host: db\n", "jwt_key: 'k'\n")

	cfg := MustLoad(dir)

	assert.Equal(t, ":8080", cfg.Public.ListenAddr)
	assert.Equal(t, "info", cfg.Public.LogLevel)
	assert.Equal(t, 24*time.Hour, cfg.JwtTTL())
	assert.Equal(t, "media", cfg.Public.MediaRootPath)
	assert.Equal(t, int64(5<<20), cfg.Public.MaxImageBytes)
	assert.Equal(t, 5*time.Second, cfg.GeoTimeout())
}

func TestMustLoad_MissingFile(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic for missing config folder, got none")
		}
	}()

	_ = MustLoad(t.TempDir())
}

func TestMustLoad_BadDuration(t *testing.T) {
	dir := writeConfigs(t, "jwt_ttl: soon\n", "jwt_key: 'k'\n")

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic for unparseable duration, got none")
		}
	}()

	_ = MustLoad(dir)
}
