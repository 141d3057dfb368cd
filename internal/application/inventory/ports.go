package inventory

import (
	"context"

	"github.com/jhoicas/stok-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Movements repository.MovementRepository
	Balances  repository.BalanceRepository
	Catalog   repository.CatalogRepository
	Locations repository.LocationRepository
	Opname    repository.OpnameRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario: si fn devuelve error no queda nada escrito.
type TxRunner interface {
	// Run abre una transacción de escritura (READ COMMITTED + bloqueos de fila).
	Run(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
	// RunReadOnly abre una transacción de solo lectura con snapshot consistente (REPEATABLE READ).
	RunReadOnly(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}
