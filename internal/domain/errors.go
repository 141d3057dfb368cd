package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidArgument   = errors.New("argumento inválido")
	ErrInvalidReasonCode = errors.New("código de motivo inválido para la dirección")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidState      = errors.New("estado inválido para la operación")
	ErrIntegrityFault    = errors.New("el ledger no cuadra con el saldo en caché")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
)

// InsufficientStockError detalla una salida que excede el saldo disponible.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	VariantID  int64
	LocationID int64
	Available  int64
	Required   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente (variante %d, ubicación %d): disponible %d, requerido %d",
		e.VariantID, e.LocationID, e.Available, e.Required)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// IntegrityFaultError indica que el saldo reproducido desde el ledger difiere del saldo en caché.
// Nunca se corrige automáticamente; solo se reporta.
type IntegrityFaultError struct {
	VariantID  int64
	LocationID int64
	LedgerQty  int64
	CachedQty  int64
}

func (e *IntegrityFaultError) Error() string {
	return fmt.Sprintf("integridad: variante %d, ubicación %d: ledger %d, caché %d",
		e.VariantID, e.LocationID, e.LedgerQty, e.CachedQty)
}

func (e *IntegrityFaultError) Unwrap() error { return ErrIntegrityFault }

// Invalid envuelve ErrInvalidArgument con el detalle del campo.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
