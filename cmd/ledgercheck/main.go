// Comando ledgercheck: reproduce el ledger completo contra los saldos en caché.
// Sale con código 1 si algún par no cuadra. No corrige nada.
//
// Uso: go run ./cmd/ledgercheck
package main

import (
	"context"
	"errors"
	"os"

	"github.com/jhoicas/stok-api/internal/application/inventory"
	"github.com/jhoicas/stok-api/internal/domain"
	"github.com/jhoicas/stok-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stok-api/pkg/config"
	"github.com/jhoicas/stok-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "ledgercheck"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	uc := inventory.NewBalanceUseCase(postgres.NewTxRunner(pool, 0), log.Zerolog())
	report, err := uc.VerifyLedger(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrIntegrityFault) && report != nil {
			for _, d := range report.Drifts {
				log.Error().
					Int64("variant_id", d.VariantID).
					Int64("location_id", d.LocationID).
					Int64("ledger_qty", d.LedgerQty).
					Int64("cached_qty", d.CachedQty).
					Msg("par con diferencia")
			}
		} else {
			log.Error().Err(err).Msg("verificación de ledger")
		}
		pool.Close()
		os.Exit(1)
	}
	log.Info().Int("checked", report.CheckedPairs).Msg("ledger y saldos cuadran")
}
