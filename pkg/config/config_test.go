package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, 5, cfg.Auth.MaxFailedAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Auth.LockoutWindow)
	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL)
	assert.False(t, cfg.Cache.Enabled)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Auth.SingleSession)
	assert.True(t, cfg.Reports.Enabled)
}

func TestOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("AUTH_MAX_FAILED_ATTEMPTS", 0)
	v.Set("AUTH_LOCKOUT_WINDOW", "not-a-duration")
	v.Set("ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	v.Set("JWT_EXPIRATION", "2h")

	cfg := fromViper(v)
	assert.Equal(t, 5, cfg.Auth.MaxFailedAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Auth.LockoutWindow)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiration)
}

func TestProductionRejectsDevelopmentSecrets(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("ENV", EnvProduction)

	assert.ErrorIs(t, fromViper(v).validate(), ErrInsecureDefault)

	v.Set("JWT_SECRET", "4f9c1e0b7a")
	err := fromViper(v).validate()
	assert.ErrorIs(t, err, ErrInsecureDefault)
	assert.Contains(t, err.Error(), "BOOTSTRAP_ADMIN_PASSWORD")

	v.Set("BOOTSTRAP_ADMIN_PASSWORD", "k3ep-0ut")
	assert.NoError(t, fromViper(v).validate())

	dev := viper.New()
	setDefaults(dev)
	assert.NoError(t, fromViper(dev).validate())
}
