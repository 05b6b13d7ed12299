package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seeuferweg-catalog/internal/domain"
)

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "data", cfg.Feeds.Dir)
	assert.Equal(t, 10*time.Second, cfg.Feeds.Timeout)
	assert.Equal(t, domain.WalenseeRegion, cfg.Region)
	assert.Equal(t, FavoritesBackendBolt, cfg.Favorites.Backend)
	assert.Equal(t, "seeuferweg_favorites", cfg.Favorites.StorageKey)
	assert.Equal(t, NotifyNone, cfg.Notify.Backend)
	assert.Equal(t, DefaultFeedSources(), cfg.Feeds.Sources)
}

func TestLoadFile_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte(
		"API_PORT=9090\nFAVORITES_BACKEND=memory\nKAFKA_BROKERS=k1:9092,k2:9092\nCATALOG_RELOAD_INTERVAL=300\n",
	), 0o600))

	cfg, err := LoadFile(envPath)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, FavoritesBackendMemory, cfg.Favorites.Backend)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 5*time.Minute, cfg.Worker.ReloadInterval)
}

func TestLoadFile_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("FAVORITES_BACKEND", "sqlite")

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "FAVORITES_BACKEND")
}

func TestLoadFile_KafkaRequiresBrokers(t *testing.T) {
	t.Setenv("NOTIFY_BACKEND", "kafka")

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "KAFKA_BROKERS")
}

func TestParseFeedManifest(t *testing.T) {
	manifest, err := ParseFeedManifest([]byte(`
base_url: https://feeds.example.ch/
feeds:
  - source: heidiland
    path: exports/heidiland.json
  - source: glarnerland
`))
	require.NoError(t, err)

	assert.Equal(t, "https://feeds.example.ch/", manifest.BaseURL)
	require.Len(t, manifest.Feeds, 2)
	assert.Equal(t, domain.SourceHeidiland, manifest.Feeds[0].Source)
	assert.Equal(t, "exports/heidiland.json", manifest.Feeds[0].Path)
	assert.Equal(t, "glarnerland.json", manifest.Feeds[1].Path)
}

func TestParseFeedManifest_Invalid(t *testing.T) {
	_, err := ParseFeedManifest([]byte("feeds:\n  - source: zurich\n"))
	assert.ErrorContains(t, err, "unknown source")

	_, err = ParseFeedManifest([]byte("feeds:\n  - source: heidiland\n  - source: heidiland\n"))
	assert.ErrorContains(t, err, "duplicate source")
}

func TestLoadFile_WithManifest(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "feeds.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte("base_url: https://feeds.example.ch\nfeeds:\n  - source: rapperswil\n"), 0o600))
	t.Setenv("FEEDS_MANIFEST", manifestPath)

	cfg, err := LoadFile(filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "https://feeds.example.ch", cfg.Feeds.BaseURL)
	assert.Equal(t, []FeedSource{{Source: domain.SourceRapperswil, Path: "rapperswil.json"}}, cfg.Feeds.Sources)
}
