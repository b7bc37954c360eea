package usecase

import (
	"context"
	"time"

	"github.com/estoquepro/estoque-api/internal/domain"
	"github.com/estoquepro/estoque-api/internal/domain/entity"
	"github.com/estoquepro/estoque-api/internal/domain/repository"
)

// TransactionUseCase consultas de solo lectura sobre el historial de
// movimientos. Las escrituras pasan exclusivamente por el ledger.
type TransactionUseCase struct {
	transactionRepo repository.TransactionRepository
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(transactionRepo repository.TransactionRepository) *TransactionUseCase {
	return &TransactionUseCase{transactionRepo: transactionRepo}
}

// GetByID obtiene un movimiento.
func (uc *TransactionUseCase) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	trx, err := uc.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trx == nil {
		return nil, domain.ErrNotFound
	}
	return trx, nil
}

// List lista movimientos; con productID filtra por producto.
func (uc *TransactionUseCase) List(ctx context.Context, productID string) ([]*entity.Transaction, error) {
	if productID != "" {
		return uc.transactionRepo.ListByProduct(ctx, productID)
	}
	return uc.transactionRepo.ListAll(ctx)
}

// ListByDateRange lista movimientos dentro de una ventana temporal inclusiva.
func (uc *TransactionUseCase) ListByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Transaction, error) {
	return uc.transactionRepo.ListByDateRange(ctx, from, to)
}
