package postgres

import (
	"testing"

	"github.com/jhoicas/retail-backoffice/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithIPv4Host(t *testing.T) {
	assert.Equal(t, "postgres://u:p@127.0.0.1:5432/db?sslmode=disable",
		withIPv4Host("postgres://u:p@127.0.0.1/db?sslmode=disable"))
	// IPv6 literal: no hay IPv4, se deja igual
	assert.Equal(t, "postgres://u@[::1]:5432/db", withIPv4Host("postgres://u@[::1]:5432/db"))
	// formato clave=valor: no es URL con host
	assert.Equal(t, "host=localhost dbname=db", withIPv4Host("host=localhost dbname=db"))
}

func TestParsePoolConfig(t *testing.T) {
	cfg := config.DBConfig{DatabaseURL: "postgres://u:p@127.0.0.1:5433/retail?sslmode=disable", MaxConns: 1}

	pc, err := parsePoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, int32(1), pc.MaxConns)
	assert.Equal(t, int32(1), pc.MinConns, "MinConns no supera MaxConns")
	assert.Equal(t, "127.0.0.1", pc.ConnConfig.Host)
	assert.Equal(t, uint16(5433), pc.ConnConfig.Port)
	assert.Equal(t, "retail", pc.ConnConfig.Database)
	assert.NotNil(t, pc.AfterConnect)
}
