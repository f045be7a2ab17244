package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017/forum", cfg.MongoURL)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, "forum-uploads", cfg.MinIOBucket)
}

func TestEnvAccessors(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("JWT_ACCESS_EXPIRY", "1h")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("JWT_REFRESH_EXPIRY", "not-a-duration")

	cfg := Load()

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, time.Hour, cfg.JWTAccessExpiry)
	assert.True(t, cfg.MinIOUseSSL)
	// Unparseable values fall back to the default.
	assert.Equal(t, 7*24*time.Hour, cfg.JWTRefreshExpiry)
}

func TestDatabaseFromURI(t *testing.T) {
	assert.Equal(t, "forum", databaseFromURI("mongodb://localhost:27017/forum"))
	assert.Equal(t, "forum_test", databaseFromURI("mongodb://user:pw@db:27017/forum_test"))
	// No database in the path falls back to the default name.
	assert.Equal(t, "forum", databaseFromURI("mongodb://localhost:27017"))
	assert.Equal(t, "forum", databaseFromURI("mongodb://localhost:27017/"))
}

func TestPublicReadPolicy(t *testing.T) {
	raw := publicReadPolicy("forum-uploads")

	var policy struct {
		Version   string `json:"Version"`
		Statement []struct {
			Effect   string   `json:"Effect"`
			Action   []string `json:"Action"`
			Resource []string `json:"Resource"`
		} `json:"Statement"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &policy))

	assert.Equal(t, "2012-10-17", policy.Version)
	require.Len(t, policy.Statement, 1)
	assert.Equal(t, "Allow", policy.Statement[0].Effect)
	assert.Equal(t, []string{"s3:GetObject"}, policy.Statement[0].Action)
	assert.Equal(t, []string{"arn:aws:s3:::forum-uploads/*"}, policy.Statement[0].Resource)
}
