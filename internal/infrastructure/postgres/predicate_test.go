package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPredicates_SinCondiciones(t *testing.T) {
	var p predicates
	assert.Equal(t, "", p.where())
	assert.Empty(t, p.args)
}

func TestPredicates_OmiteValoresCero(t *testing.T) {
	var p predicates
	p.add("variant_id = ?", int64(0))
	p.add("location_id = ?", int64(3))
	p.add("reason_code = ?", "")
	p.add("direction = ?", "OUT")

	assert.Equal(t, " WHERE location_id = $1 AND direction = $2", p.where())
	assert.Equal(t, []any{int64(3), "OUT"}, p.args)
}

func TestPredicates_PaginaContinuaNumeracion(t *testing.T) {
	var p predicates
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p.addAlways("created_at >= ?", from)
	p.raw("quantity > 0")
	page := p.page(50, 10)

	assert.Equal(t, " WHERE created_at >= $1 AND quantity > 0", p.where())
	assert.Equal(t, " LIMIT $2 OFFSET $3", page)
	assert.Equal(t, []any{from, 50, 10}, p.args)
}

func TestPredicates_PaginaSinLimite(t *testing.T) {
	var p predicates
	assert.Equal(t, "", p.page(0, 0))
	assert.Equal(t, " OFFSET $1", p.page(0, 5))
}

func TestPredicates_ValorMaliciosoQuedaComoParametro(t *testing.T) {
	var p predicates
	p.add("ref_code = ?", "x'; DROP TABLE stock_movements; --")
	assert.Equal(t, " WHERE ref_code = $1", p.where())
	assert.Len(t, p.args, 1)
}
