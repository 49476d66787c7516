package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_DefaultsOnly verifies that defaults alone form a valid config.
func TestBuild_DefaultsOnly(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

// TestBuild_EmptyBuilderFailsValidation verifies that a zero config is rejected.
func TestBuild_EmptyBuilderFailsValidation(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
	assert.ErrorIs(t, err, ErrInvalidQRConfigs)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_FirstSourceWins verifies merge precedence: a field set by an
// earlier config is not overwritten by a later one.
func TestBuild_FirstSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Storage: Storage{DB: DB{DSN: "file:first.db"}}},
		&StructuredConfig{Storage: Storage{DB: DB{DSN: "file:second.db"}}, Shortener: Shortener{CodeLength: 8}},
	)

	cfg, err := b.withDefaults().build()
	require.NoError(t, err)
	assert.Equal(t, "file:first.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 8, cfg.Shortener.CodeLength)
	assert.Equal(t, DefaultMaxAttempts, cfg.Shortener.MaxAttempts)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	setEnvVars(t, map[string]string{"STORAGE_DB_DATABASE_URI": "file:env.db"})

	b := newConfigBuilder().withEnv()
	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "file:env.db", b.configs[0].Storage.DB.DSN)
}

func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	setEnvVars(t, map[string]string{"SERVER_REQUEST_TIMEOUT": "abc"})

	b := newConfigBuilder().withEnv()
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_SetsErrorOnBadFlag(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-unknown"})
	assert.Error(t, b.err)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})

	b.withJSON()
	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"qr": map[string]any{"inline_capacity": 700},
	})

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, 700, b.configs[1].QR.InlineCapacity)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/no/such/file.json"})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesFirstPath verifies that the env path beats the flag path.
func TestWithJSON_UsesFirstPath(t *testing.T) {
	first := writeTempJSONConfig(t, map[string]any{"shortener": map[string]any{"code_length": 11}})
	second := writeTempJSONConfig(t, map[string]any{"shortener": map[string]any{"code_length": 12}})

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: first}, &StructuredConfig{JSONFilePath: second})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, 11, b.configs[2].Shortener.CodeLength)
}

// ── loadStructuredConfig ──────────────────────────────────────────────────────

func TestLoadStructuredConfig_Precedence(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app":     map[string]any{"public_base_url": "https://json.example.com"},
		"storage": map[string]any{"timeout": "9s", "db": map[string]any{"dsn": "file:json.db"}},
	})
	setEnvVars(t, map[string]string{
		"CONFIG":                  path,
		"STORAGE_DB_DATABASE_URI": "file:env.db",
	})

	cfg, err := loadStructuredConfig([]string{"-d", "file:flag.db", "-base-url", "https://flag.example.com"})
	require.NoError(t, err)

	assert.Equal(t, "file:env.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "https://flag.example.com", cfg.App.PublicBaseURL)
	assert.Equal(t, 9*time.Second, cfg.Storage.Timeout)
	assert.Equal(t, DefaultCodeLength, cfg.Shortener.CodeLength)
}
