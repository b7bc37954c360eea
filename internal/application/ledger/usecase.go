// Package ledger implementa el libro de movimientos de stock: la única
// operación del sistema que muta la cantidad de un producto.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/estoquepro/estoque-api/internal/domain"
	"github.com/estoquepro/estoque-api/internal/domain/entity"
	"github.com/estoquepro/estoque-api/internal/domain/repository"
	"github.com/estoquepro/estoque-api/internal/domain/stock"
	"github.com/estoquepro/estoque-api/pkg/logger"
)

// UseCase aplica movimientos ENTRADA/SAIDA de forma transaccional.
// La serialización por producto la garantiza el TxRunner: el repositorio
// bloquea la fila del producto durante read-check-write-append, de modo que
// dos SAIDA concurrentes nunca validan suficiencia contra una cantidad
// obsoleta. Movimientos sobre productos distintos proceden en paralelo.
type UseCase struct {
	txRunner TxRunner
	notifier AlertNotifier
	log      *logger.Logger
}

// NewUseCase construye el ledger.
func NewUseCase(txRunner TxRunner, notifier AlertNotifier, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, notifier: notifier, log: log}
}

// ApplyTransactionInput entrada para aplicar un movimiento de stock.
type ApplyTransactionInput struct {
	ProductID string
	UserID    string
	Type      string // ENTRADA | SAIDA
	Quantity  int    // estrictamente > 0
	Notes     string
}

// ApplyTransactionResult estado resultante de un movimiento aplicado.
type ApplyTransactionResult struct {
	TransactionID string
	NewQuantity   int
	Check         stock.CheckResult
}

// ApplyTransaction valida, actualiza la cantidad del producto y registra el
// movimiento como unidad atómica. Para SAIDA con stock insuficiente falla
// con InsufficientStockError sin escribir nada.
//
// Tras la confirmación clasifica el nuevo nivel de stock; si es CRITICAL o
// LOW despacha la alerta al notifier. La notificación es fire-and-forget:
// un fallo se registra en el log pero nunca se propaga al caller ni
// revierte la transacción.
func (uc *UseCase) ApplyTransaction(ctx context.Context, input ApplyTransactionInput) (*ApplyTransactionResult, error) {
	// Validación previa a cualquier acceso al store.
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if input.ProductID == "" || !entity.IsValidTransactionType(input.Type) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var result ApplyTransactionResult
	var snapshot entity.Product

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		transactionRepo repository.TransactionRepository,
	) error {
		// Bloquea la fila del producto hasta el commit.
		product, err := productRepo.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		newQuantity := product.Quantity + input.Quantity
		if input.Type == entity.TransactionTypeSaida {
			if product.Quantity < input.Quantity {
				return &domain.InsufficientStockError{
					ProductID: product.ID,
					Available: product.Quantity,
					Requested: input.Quantity,
				}
			}
			newQuantity = product.Quantity - input.Quantity
		}

		if err := productRepo.UpdateQuantity(ctx, product.ID, newQuantity); err != nil {
			return err
		}

		trx := &entity.Transaction{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			UserID:    input.UserID,
			Type:      input.Type,
			Quantity:  input.Quantity,
			Notes:     input.Notes,
			CreatedAt: now,
		}
		if err := transactionRepo.Create(ctx, trx); err != nil {
			return err
		}

		snapshot = *product
		snapshot.Quantity = newQuantity
		snapshot.UpdatedAt = now
		result.TransactionID = trx.ID
		result.NewQuantity = newQuantity
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Check = stock.Classify(snapshot.Quantity, snapshot.MinStock)
	if result.Check.Level == stock.LevelCritical || result.Check.Level == stock.LevelLow {
		uc.log.Debug().
			Str("product_id", snapshot.ID).
			Str("level", string(result.Check.Level)).
			Int("quantity", snapshot.Quantity).
			Msg("despachando alerta de stock")
		uc.notifier.Notify(result.Check, snapshot)
	}

	return &result, nil
}
