package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnv(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/linkbio")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "9090")
	t.Setenv("ANALYTICS_RETENTION_DAYS", "90")
	t.Setenv("GOOGLE_CLIENT_ID", "")

	LoadEnv()

	assert.Equal(t, "9090", PORT)
	assert.Equal(t, "postgres://localhost/linkbio", DB_URL)
	assert.Equal(t, 90, ANALYTICS_RETENTION_DAYS)
	assert.False(t, GoogleEnabled())
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	assert.Equal(t, 7, getEnvInt("SOME_INT", 7))

	t.Setenv("SOME_INT", "-3")
	assert.Equal(t, 7, getEnvInt("SOME_INT", 7))

	t.Setenv("SOME_INT", "12")
	assert.Equal(t, 12, getEnvInt("SOME_INT", 7))

	assert.Equal(t, 7, getEnvInt("SOME_INT_UNSET", 7))
}
