package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPoolConfig(t *testing.T) {
	cfg, err := buildPoolConfig("postgres://u:p@127.0.0.1:5432/inventario?sslmode=disable", 8, "inventario-movimientos")
	require.NoError(t, err)

	assert.EqualValues(t, 8, cfg.MaxConns)
	assert.EqualValues(t, 2, cfg.MinConns)
	assert.Equal(t, "inventario-movimientos", cfg.ConnConfig.RuntimeParams["application_name"])
	assert.NotNil(t, cfg.AfterConnect)
}

func TestBuildPoolConfig_MaxConnsPorDefecto(t *testing.T) {
	cfg, err := buildPoolConfig("postgres://u:p@127.0.0.1:5432/inventario", 0, "")
	require.NoError(t, err)
	assert.EqualValues(t, 25, cfg.MaxConns)
	_, ok := cfg.ConnConfig.RuntimeParams["application_name"]
	assert.False(t, ok)
}

func TestBuildPoolConfig_DSNInvalido(t *testing.T) {
	_, err := buildPoolConfig("postgres://u:p@127.0.0.1:notaport/x", 1, "")
	assert.Error(t, err)
}

func TestDatabaseURLWithIPv4_IPLiteralSinCambios(t *testing.T) {
	in := "postgres://u:p@127.0.0.1:6543/db?sslmode=require"
	assert.Equal(t, in, databaseURLWithIPv4(in))
}
