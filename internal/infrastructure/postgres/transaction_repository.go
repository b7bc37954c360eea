package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/estoquepro/estoque-api/internal/domain/entity"
	"github.com/estoquepro/estoque-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const transactionColumns = `id, product_id, user_id, type, quantity, notes, created_at`

// TransactionRepo implementación del puerto TransactionRepository sobre PostgreSQL.
// Append-only: el adaptador no expone Update ni Delete.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador de movimientos. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create registra un movimiento en el ledger.
func (r *TransactionRepo) Create(ctx context.Context, transaction *entity.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		transaction.ID, transaction.ProductID, transaction.UserID,
		transaction.Type, transaction.Quantity, transaction.Notes, transaction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Devuelve (nil, nil) si no existe.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	var t entity.Transaction
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.ProductID, &t.UserID, &t.Type, &t.Quantity, &t.Notes, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}

// ListAll lista todos los movimientos, más recientes primero.
func (r *TransactionRepo) ListAll(ctx context.Context) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY created_at DESC`
	return r.list(ctx, query)
}

// ListByProduct lista los movimientos de un producto, más recientes primero.
func (r *TransactionRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE product_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, productID)
}

// ListByDateRange lista movimientos dentro de una ventana temporal (inclusiva).
func (r *TransactionRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE created_at BETWEEN $1 AND $2 ORDER BY created_at DESC`
	return r.list(ctx, query, from, to)
}

func (r *TransactionRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(&t.ID, &t.ProductID, &t.UserID, &t.Type, &t.Quantity, &t.Notes, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
