package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]interface{}) *viper.Viper {
	v := viper.New()
	v.SetDefault("backend.timeout", "10s")
	v.SetDefault("session.store", SessionStoreRedis)
	v.SetDefault("session.ttl", "12h")
	v.SetDefault("login.rate_window", "1m")
	for key, value := range values {
		v.Set(key, value)
	}
	return v
}

func TestFromViperDefaults(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]interface{}{
		"backend.url": "https://api.gradepro.test/api/",
		"redis.url":   "redis://localhost:6379/0",
	}))
	require.NoError(t, err)
	require.Equal(t, "https://api.gradepro.test/api", cfg.BackendURL)
	require.Equal(t, 10*time.Second, cfg.BackendTimeout)
	require.Equal(t, 12*time.Hour, cfg.SessionTTL)
	require.Equal(t, SessionStoreRedis, cfg.SessionStore)
	require.Equal(t, 10, cfg.LoginRateLimit)
	require.False(t, cfg.UploadsEnabled())
}

func TestFromViperRequiresBackendURL(t *testing.T) {
	_, err := fromViper(newViper(map[string]interface{}{"redis.url": "redis://localhost:6379/0"}))
	require.Error(t, err)
}

func TestFromViperDatabaseStoreNeedsDSN(t *testing.T) {
	_, err := fromViper(newViper(map[string]interface{}{
		"backend.url":   "https://api.gradepro.test",
		"session.store": "Database",
	}))
	require.ErrorContains(t, err, "database url")

	cfg, err := fromViper(newViper(map[string]interface{}{
		"backend.url":   "https://api.gradepro.test",
		"session.store": "database",
		"database.url":  "postgres://localhost/gradepro",
	}))
	require.NoError(t, err)
	require.Equal(t, SessionStoreDatabase, cfg.SessionStore)
}

func TestFromViperRejectsUnknownStore(t *testing.T) {
	_, err := fromViper(newViper(map[string]interface{}{
		"backend.url":   "https://api.gradepro.test",
		"session.store": "memcached",
	}))
	require.ErrorContains(t, err, "unknown session store")
}

func TestFromViperRejectsBadDuration(t *testing.T) {
	_, err := fromViper(newViper(map[string]interface{}{
		"backend.url": "https://api.gradepro.test",
		"redis.url":   "redis://localhost:6379/0",
		"session.ttl": "forever",
	}))
	require.ErrorContains(t, err, "session.ttl")
}

func TestHTTPAddress(t *testing.T) {
	require.Equal(t, ":8080", Config{AppPort: "8080"}.HTTPAddress())
	require.Equal(t, ":9000", Config{AppPort: ":9000"}.HTTPAddress())
}
