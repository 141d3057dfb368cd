package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "IDR", cfg.Stock.DefaultCurrency)
	assert.Equal(t, "pcs", cfg.Stock.DefaultUnit)
	assert.False(t, cfg.Stock.AllowNegative)
	assert.Equal(t, 500, cfg.Stock.CardMaxLimit)
	assert.Equal(t, 15*time.Second, cfg.Stock.TxTimeout())
	assert.False(t, cfg.DB.AutoMigrate)
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("STOCK_ALLOW_NEGATIVE", "true")
	t.Setenv("STOCK_DEFAULT_CURRENCY", "usd")
	t.Setenv("STOCK_CARD_MAX_LIMIT", "50")
	t.Setenv("DB_AUTO_MIGRATE", "1")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Stock.AllowNegative)
	assert.Equal(t, "USD", cfg.Stock.DefaultCurrency)
	assert.Equal(t, 50, cfg.Stock.CardMaxLimit)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

func TestLoad_MonedaInvalida(t *testing.T) {
	t.Setenv("STOCK_DEFAULT_CURRENCY", "RUPIAH")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STOCK_DEFAULT_CURRENCY")
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "stok", Password: "p@ss:w/rd", DBName: "stok", SSLMode: "disable"}
	assert.Equal(t, "postgres://stok:p%40ss%3Aw%2Frd@db:5432/stok?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
