package ledger

import (
	"context"

	"github.com/estoquepro/estoque-api/internal/domain/entity"
	"github.com/estoquepro/estoque-api/internal/domain/repository"
	"github.com/estoquepro/estoque-api/internal/domain/stock"
)

// TxRunner ejecuta una función dentro de una transacción del store, pasando
// repositorios atados a esa transacción. Garantiza que la actualización de
// cantidad y el registro del movimiento sean una unidad atómica: si algo
// falla, ninguno de los dos escritos queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		transactionRepo repository.TransactionRepository,
	) error) error
}

// AlertNotifier recibe alertas de stock tras un movimiento confirmado.
// Best-effort: la implementación despacha de forma asíncrona y sus fallos
// nunca afectan la transacción ya confirmada.
type AlertNotifier interface {
	Notify(check stock.CheckResult, product entity.Product)
}
