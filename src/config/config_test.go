package config_test

import (
	"testing"
	"time"

	"advisor/src/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigTesting(t *testing.T) {
	cfg, err := config.LoadConfig("../../settings", "TESTING")
	require.NoError(t, err)

	assert.Equal(t, config.API, cfg.Service.Type)
	assert.Equal(t, "advisor_test", cfg.Databases.SQL.Database)
	assert.Equal(t, "testing-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "ap-south-1", cfg.Auth.AWSRegion)
	assert.Equal(t, 5*time.Minute, cfg.Auth.AccessLifetime)
	assert.Equal(t, time.Hour, cfg.Auth.RefreshLifetime)
	assert.Equal(t, 30, cfg.RequestLogs.RetentionDays)
	assert.Equal(t, uint64(2), cfg.ExternalClients.AMFI.MaxRetries)
	assert.Equal(t, 200*time.Millisecond, cfg.ExternalClients.AMFI.RetryBase)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("AUTH_JWTSECRET", "from-env")

	cfg, err := config.LoadConfig("../../settings", "TESTING")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := config.LoadConfig("../../settings", "DOES_NOT_EXIST")
	assert.Error(t, err)
}

func TestSQLConfigDSN(t *testing.T) {
	sql := config.SQLConfig{Host: "db", Port: "5432", Username: "u", Password: "p", Database: "d"}
	assert.Equal(t, "host=db user=u password=p dbname=d port=5432 sslmode=disable", sql.DSN())

	sql.ConnectionString = "postgres://x"
	assert.Equal(t, "postgres://x", sql.DSN())
}
