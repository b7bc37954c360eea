package repository

import (
	"context"
	"time"

	"github.com/estoquepro/estoque-api/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia para Transaction.
// Las transacciones son append-only: no hay Update ni Delete.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	ListAll(ctx context.Context) ([]*entity.Transaction, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Transaction, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Transaction, error)
}
