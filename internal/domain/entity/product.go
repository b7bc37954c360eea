package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// Quantity se modifica únicamente a través del ledger (ApplyTransaction);
// nunca por asignación directa ni por el CRUD administrativo.
type Product struct {
	ID         string
	Name       string
	CategoryID *string         // opcional
	Quantity   int             // invariante: siempre >= 0
	MinStock   int             // umbral de reposición, >= 0
	Price      decimal.Decimal // precio de venta unitario
	Cost       decimal.Decimal // costo unitario de adquisición (cero = desconocido)
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
