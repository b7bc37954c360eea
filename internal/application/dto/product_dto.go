package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta administrativa de un producto.
// La cantidad inicial es 0: el stock solo evoluciona vía transacciones.
type CreateProductRequest struct {
	Name       string          `json:"name" validate:"required,min=1,max=200"`
	CategoryID string          `json:"category_id"`
	MinStock   int             `json:"min_stock" validate:"gte=0"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
}

// UpdateProductRequest edición administrativa. No incluye cantidad:
// esa la gobierna el ledger.
type UpdateProductRequest struct {
	Name       string           `json:"name" validate:"required,min=1,max=200"`
	CategoryID string           `json:"category_id"`
	MinStock   *int             `json:"min_stock" validate:"omitempty,gte=0"`
	Price      *decimal.Decimal `json:"price"`
	Cost       *decimal.Decimal `json:"cost"`
}

// ProductResponse representación de un producto.
type ProductResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	CategoryID string          `json:"category_id,omitempty"`
	Quantity   int             `json:"quantity"`
	MinStock   int             `json:"min_stock"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CategoryRequest alta/edición de una categoría.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description"`
}
