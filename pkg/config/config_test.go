package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.App.Storage)
	assert.Equal(t, "COT", cfg.Documents.QuotePrefix)
	assert.Equal(t, "FV", cfg.Documents.BillingPrefix)
	assert.Equal(t, int32(25), cfg.DB.MaxConns)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("STORAGE", "Memory")
	t.Setenv("BILLING_PREFIX", "FAC")
	t.Setenv("DB_MAX_CONNS", "5")
	t.Setenv("MIGRATIONS_AUTO", "true")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.App.Storage)
	assert.Equal(t, "FAC", cfg.Documents.BillingPrefix)
	assert.Equal(t, int32(5), cfg.DB.MaxConns)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_Invalida(t *testing.T) {
	t.Setenv("STORAGE", "redis")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("STORAGE", "memory")
	t.Setenv("QUOTE_PREFIX", "FV")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoad_AdminIncompleto(t *testing.T) {
	t.Setenv("STORAGE", "memory")
	t.Setenv("ADMIN_EMAIL", "admin@tienda.co")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("ADMIN_PASSWORD", "clave-segura")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "admin@tienda.co", cfg.Admin.Email)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "retail", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/retail?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
