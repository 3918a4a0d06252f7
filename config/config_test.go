package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Port)
	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, DefaultCollections(), cfg.Collections)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Zero(t, cfg.BackendTimeout)
	require.NotNil(t, cfg.Location)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("API_BASE_URL", "http://localhost:4000/rest/")
	t.Setenv("BACKEND_SESSION_COOKIE", "la_sid")
	t.Setenv("BACKEND_TIMEOUT_SECONDS", "15")
	t.Setenv("SESSION_TTL_SECONDS", "600")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "http://localhost:4000/rest", cfg.APIBaseURL)
	assert.Equal(t, "la_sid", cfg.BackendCookie)
	assert.Equal(t, 15*time.Second, cfg.BackendTimeout)
	assert.Equal(t, 10*time.Minute, cfg.SessionTTL)
	assert.Equal(t, time.UTC, cfg.Location)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("ttl", func(t *testing.T) {
		t.Setenv("SESSION_TTL_SECONDS", "soon")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("timezone", func(t *testing.T) {
		t.Setenv("TIMEZONE", "Mars/Olympus")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoadCollectionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collections.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"werkzeuge: aaaaaaaaaaaaaaaaaaaaaaaa\nmitarbeiter: \"BBBBBBBBBBBBBBBBBBBBBBBB\"\n"), 0o600))
	t.Setenv("COLLECTIONS_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	def := DefaultCollections()
	assert.Equal(t, "aaaaaaaaaaaaaaaaaaaaaaaa", cfg.Collections.Werkzeuge)
	assert.Equal(t, "BBBBBBBBBBBBBBBBBBBBBBBB", cfg.Collections.Mitarbeiter)
	assert.Equal(t, def.Lagerorte, cfg.Collections.Lagerorte)
	assert.Equal(t, def.Werkzeugausgabe, cfg.Collections.Werkzeugausgabe)
}

func TestLoadCollectionsFileInvalidID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collections.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lagerorte: not-an-id\n"), 0o600))
	t.Setenv("COLLECTIONS_FILE", path)

	_, err := Load()
	assert.ErrorContains(t, err, "lagerorte")
}

func TestLoadCollectionsMissingFile(t *testing.T) {
	_, err := LoadCollections(filepath.Join(t.TempDir(), "nope.yaml"), DefaultCollections())
	assert.Error(t, err)
}
