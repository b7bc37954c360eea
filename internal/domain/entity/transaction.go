package entity

import "time"

// Tipos de movimiento de stock.
const (
	TransactionTypeEntrada = "ENTRADA" // entrada de mercancía
	TransactionTypeSaida   = "SAIDA"   // salida de mercancía
)

// IsValidTransactionType verifica que el tipo pertenezca al conjunto cerrado.
func IsValidTransactionType(t string) bool {
	return t == TransactionTypeEntrada || t == TransactionTypeSaida
}

// Transaction representa un movimiento de stock aplicado por el ledger.
// Las transacciones son append-only: una vez persistidas nunca se
// actualizan ni se borran.
type Transaction struct {
	ID        string
	ProductID string
	UserID    string // quién registró el movimiento
	Type      string // ENTRADA | SAIDA
	Quantity  int    // invariante: estrictamente > 0
	Notes     string
	CreatedAt time.Time
}
