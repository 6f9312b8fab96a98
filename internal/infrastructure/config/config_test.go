package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return fromViper(defaultViper())
}

func TestDefaults(t *testing.T) {
	cfg := defaultConfig()

	assert.Equal(t, "taskboard-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 5000, cfg.App.Port)
	assert.Equal(t, 10, cfg.App.PortScanLimit)
	assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshTokenExpiration)
	assert.Equal(t, "refreshToken", cfg.Cookie.Name)
	assert.Equal(t, "lax", cfg.Cookie.SameSite)
	assert.Equal(t, "memory", cfg.Realtime.Directory)
	assert.Equal(t, "stub", cfg.Storage.Backend)
	assert.Less(t, cfg.Realtime.PingInterval, cfg.Realtime.PongTimeout)
	assert.Empty(t, cfg.HTTP.CORSAllowOrigins, "no wildcard CORS fallback")
}

func TestValidate_Defaults(t *testing.T) {
	require.NoError(t, defaultConfig().validate())
}

func TestValidate_PoolSettings(t *testing.T) {
	cfg := defaultConfig()
	cfg.Database.MaxIdleConns = cfg.Database.MaxOpenConns + 1
	assert.Error(t, cfg.validate())
}

func TestValidate_RealtimeDirectory(t *testing.T) {
	cfg := defaultConfig()
	cfg.Realtime.Directory = "etcd"
	assert.Error(t, cfg.validate())

	cfg = defaultConfig()
	cfg.Realtime.Directory = "redis"
	assert.Error(t, cfg.validate(), "redis directory requires redis.enabled")

	cfg.Redis.Enabled = true
	assert.NoError(t, cfg.validate())
}

func TestValidate_Production(t *testing.T) {
	cfg := defaultConfig()
	cfg.App.Env = "production"
	assert.Error(t, cfg.validate(), "missing jwt secret")

	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	cfg.JWT.RefreshSecret = "fedcba9876543210fedcba9876543210"
	cfg.Database.Password = "secret"
	cfg.Database.SSLMode = "require"
	cfg.Cookie.Secure = true
	cfg.Storage.Backend = "s3"
	cfg.Storage.Bucket = "attachments"
	assert.NoError(t, cfg.validate())

	cfg.HTTP.CORSAllowOrigins = []string{"*"}
	assert.Error(t, cfg.validate(), "wildcard CORS rejected in production")
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db.internal", Port: 5432,
		User: "app", Password: "p@ss/word",
		DBName: "taskboard", SSLMode: "require",
	}
	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss/word", "password must be escaped")
}
