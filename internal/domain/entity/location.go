package entity

import "time"

// Location representa un lugar de almacenamiento (gudang, toko, etc.).
// Solo una ubicación puede tener IsDefault; lo garantiza el catálogo, no el ledger.
type Location struct {
	ID        int64
	Name      string
	IsDefault bool
	CreatedAt time.Time
}
