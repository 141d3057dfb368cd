package entity

import "time"

// Product representa un artículo de confección del catálogo (sin color ni talla).
type Product struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Color representa un color del catálogo. Hex es el valor para la interfaz (#RRGGBB).
type Color struct {
	ID        int64
	Name      string
	Hex       string
	CreatedAt time.Time
}

// Size representa una talla del catálogo. SortOrder ordena las tallas en las vistas.
type Size struct {
	ID        int64
	Name      string
	SortOrder int
	CreatedAt time.Time
}

// ProductColor es la relación producto-color, paso intermedio hacia la variante.
type ProductColor struct {
	ID        int64
	ProductID int64
	ColorID   int64
}

// Variant es la unidad de stock: producto × color × talla.
type Variant struct {
	ID             int64
	ProductColorID int64
	ProductID      int64
	ColorID        int64
	SizeID         int64
	CreatedAt      time.Time
}
