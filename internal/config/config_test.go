package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("PUBLIC_BASE_URL", "https://studio.example.com/")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "https://studio.example.com", cfg.PublicBaseURL)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.False(t, cfg.StrictTaskTransitions)
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_INT_BAD", "forty-two")

	assert.Equal(t, 42, getEnvInt("TEST_INT", 1))
	assert.Equal(t, 1, getEnvInt("TEST_INT_BAD", 1))
	assert.Equal(t, 7, getEnvInt("TEST_INT_MISSING", 7))
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("TEST_BOOL_ON", "yes")
	t.Setenv("TEST_BOOL_OFF", "0")
	t.Setenv("TEST_BOOL_BAD", "maybe")

	assert.True(t, getEnvBool("TEST_BOOL_ON", false))
	assert.False(t, getEnvBool("TEST_BOOL_OFF", true))
	assert.True(t, getEnvBool("TEST_BOOL_BAD", true))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_TTL", "90s")
	t.Setenv("TEST_TTL_BAD", "soon")

	assert.Equal(t, 90*time.Second, getEnvDuration("TEST_TTL", time.Minute))
	assert.Equal(t, time.Minute, getEnvDuration("TEST_TTL_BAD", time.Minute))
}
