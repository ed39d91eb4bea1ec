package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig drops a YAML document into a temp dir and returns its path.
func writeConfig(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
env: dev
storage_path: /tmp/courses.db
schema_path: config/schema.yaml
http_server:
  address: localhost:8082
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "/tmp/courses.db", cfg.StoragePath)
	assert.Equal(t, "config/schema.yaml", cfg.SchemaPath)
	assert.Equal(t, "localhost:8082", cfg.Addr) // promoted from HTTPServer
}

func TestLoad_SchemaPathOptional(t *testing.T) {
	path := writeConfig(t, `
env: prod
storage_path: /tmp/courses.db
http_server:
  address: localhost:8082
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.SchemaPath)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoad_MissingRequiredKey(t *testing.T) {
	// No storage_path — cleanenv's env-required must reject this.
	path := writeConfig(t, `
env: dev
http_server:
  address: localhost:8082
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_UnknownEnv(t *testing.T) {
	// Parses fine, but "production" is not one of dev/staging/prod —
	// the validate:"oneof" tag must reject it.
	path := writeConfig(t, `
env: production
storage_path: /tmp/courses.db
http_server:
  address: localhost:8082
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
