package dto

import "time"

// CreateTransactionRequest alta de un movimiento de stock vía el ledger.
type CreateTransactionRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=ENTRADA SAIDA"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Notes     string `json:"notes"`
}

// CreateTransactionResponse estado resultante del movimiento aplicado.
type CreateTransactionResponse struct {
	TransactionID string `json:"transaction_id"`
	NewQuantity   int    `json:"new_quantity"`
	StockLevel    string `json:"stock_level"`
}

// TransactionResponse representación de un movimiento.
type TransactionResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
