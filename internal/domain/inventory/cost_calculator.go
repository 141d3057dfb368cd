package inventory

import "github.com/shopspring/decimal"

// CostScale decimales con los que se persiste el costo promedio (NUMERIC(18,4)).
const CostScale = 4

// CostCalculator implementa el costo promedio móvil (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
//
// Sin costo de entrada (nil o <= 0) el promedio no cambia. Si la entrada deja el stock en
// cero o negativo el promedio tampoco cambia. Con stock previo negativo y resultado positivo,
// el stock previo se trata como cero y el nuevo costo es el de la entrada.
func CostCalculator(stockActual int64, costoActual decimal.Decimal, cantEntrada int64, costoEntrada *decimal.Decimal) decimal.Decimal {
	if costoEntrada == nil || !costoEntrada.GreaterThan(decimal.Zero) || cantEntrada <= 0 {
		return costoActual
	}
	if stockActual+cantEntrada <= 0 {
		return costoActual
	}
	if stockActual < 0 {
		stockActual = 0
	}
	sum := decimal.NewFromInt(stockActual + cantEntrada)
	num := decimal.NewFromInt(stockActual).Mul(costoActual).
		Add(decimal.NewFromInt(cantEntrada).Mul(*costoEntrada))
	return num.Div(sum).Round(CostScale)
}
