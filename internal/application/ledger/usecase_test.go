package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estoquepro/estoque-api/internal/application/ledger"
	"github.com/estoquepro/estoque-api/internal/domain"
	"github.com/estoquepro/estoque-api/internal/domain/entity"
	"github.com/estoquepro/estoque-api/internal/domain/repository"
	"github.com/estoquepro/estoque-api/internal/domain/stock"
	"github.com/estoquepro/estoque-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria: TxRunner con staging para reproducir la atomicidad del
// store real (ambos escritos visibles, o ninguno) y exclusión mutua durante
// read-check-write-append.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	txs      []*entity.Transaction
}

func newMemStore(products ...*entity.Product) *memStore {
	s := &memStore{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		s.products[p.ID] = &cp
	}
	return s
}

type memTxRunner struct {
	store *memStore
	// failTransactionInsert simula un fallo del store al insertar el
	// movimiento, después de haber actualizado la cantidad en staging.
	failTransactionInsert bool
}

func (r *memTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	transactionRepo repository.TransactionRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	staged := make(map[string]*entity.Product, len(r.store.products))
	for id, p := range r.store.products {
		cp := *p
		staged[id] = &cp
	}
	var stagedTxs []*entity.Transaction

	pRepo := &memProductRepo{products: staged}
	tRepo := &memTransactionRepo{txs: &stagedTxs, fail: r.failTransactionInsert}

	if err := fn(pRepo, tRepo); err != nil {
		return err
	}
	r.store.products = staged
	r.store.txs = append(r.store.txs, stagedTxs...)
	return nil
}

type memProductRepo struct {
	products map[string]*entity.Product
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *memProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) ListLowStock(_ context.Context) ([]*entity.Product, error) {
	return nil, nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *memProductRepo) UpdateQuantity(_ context.Context, id string, quantity int) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	delete(r.products, id)
	return nil
}

type memTransactionRepo struct {
	txs  *[]*entity.Transaction
	fail bool
}

var errStoreDown = errors.New("store no disponible")

func (r *memTransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	if r.fail {
		return errStoreDown
	}
	*r.txs = append(*r.txs, t)
	return nil
}

func (r *memTransactionRepo) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	for _, t := range *r.txs {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (r *memTransactionRepo) ListAll(_ context.Context) ([]*entity.Transaction, error) {
	return *r.txs, nil
}

func (r *memTransactionRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, t := range *r.txs {
		if t.ProductID == productID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTransactionRepo) ListByDateRange(_ context.Context, from, to time.Time) ([]*entity.Transaction, error) {
	return nil, nil
}

type spyNotifier struct {
	mu    sync.Mutex
	calls []stock.CheckResult
}

func (n *spyNotifier) Notify(check stock.CheckResult, _ entity.Product) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, check)
}

func (n *spyNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func newLedger(store *memStore, notifier ledger.AlertNotifier) *ledger.UseCase {
	return ledger.NewUseCase(&memTxRunner{store: store}, notifier, testLogger())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyTransaction_Entrada(t *testing.T) {
	store := newMemStore(&entity.Product{ID: "p1", Name: "Café", Quantity: 5, MinStock: 2})
	notifier := &spyNotifier{}
	uc := newLedger(store, notifier)

	result, err := uc.ApplyTransaction(context.Background(), ledger.ApplyTransactionInput{
		ProductID: "p1", UserID: "u1", Type: entity.TransactionTypeEntrada, Quantity: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, 15, result.NewQuantity)
	assert.NotEmpty(t, result.TransactionID)
	assert.Equal(t, stock.LevelNormal, result.Check.Level)
	assert.Equal(t, 15, store.products["p1"].Quantity)
	require.Len(t, store.txs, 1)
	assert.Equal(t, entity.TransactionTypeEntrada, store.txs[0].Type)
	assert.Equal(t, 0, notifier.count(), "nivel NORMAL no notifica")
}

func TestApplyTransaction_Saida(t *testing.T) {
	store := newMemStore(&entity.Product{ID: "p1", Quantity: 10, MinStock: 2})
	uc := newLedger(store, &spyNotifier{})

	result, err := uc.ApplyTransaction(context.Background(), ledger.ApplyTransactionInput{
		ProductID: "p1", UserID: "u1", Type: entity.TransactionTypeSaida, Quantity: 4,
	})

	require.NoError(t, err)
	assert.Equal(t, 6, result.NewQuantity)
	assert.Equal(t, 6, store.products["p1"].Quantity)
}

func TestApplyTransaction_Validaciones(t *testing.T) {
	store := newMemStore(&entity.Product{ID: "p1", Quantity: 10})
	uc := newLedger(store, &spyNotifier{})
	ctx := context.Background()

	t.Run("cantidad cero se rechaza antes de tocar el store", func(t *testing.T) {
		_, err := uc.ApplyTransaction(ctx, ledger.ApplyTransactionInput{
			ProductID: "p1", UserID: "u1", Type: entity.TransactionTypeEntrada, Quantity: 0,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})

	t.Run("cantidad negativa se rechaza", func(t *testing.T) {
		_, err := uc.ApplyTransaction(ctx, ledger.ApplyTransactionInput{
			ProductID: "p1", UserID: "u1", Type: entity.TransactionTypeSaida, Quantity: -3,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})

	t.Run("tipo desconocido se rechaza", func(t *testing.T) {
		_, err := uc.ApplyTransaction(ctx, ledger.ApplyTransactionInput{
			ProductID: "p1", UserID: "u1", Type: "AJUSTE", Quantity: 1,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("producto inexistente", func(t *testing.T) {
		_, err := uc.ApplyTransaction(ctx, ledger.ApplyTransactionInput{
			ProductID: "nope", UserID: "u1", Type: entity.TransactionTypeEntrada, Quantity: 1,
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.Equal(t, 10, store.products["p1"].Quantity, "ninguna validación fallida debe mutar estado")
	assert.Empty(t, store.txs)
}

func TestApplyTransaction_StockInsuficiente(t *testing.T) {
	store := newMemStore(&entity.Product{ID: "p1", Quantity: 3, MinStock: 1})
	uc := newLedger(store, &spyNotifier{})

	_, err := uc.ApplyTransaction(context.Background(), ledger.ApplyTransactionInput{
		ProductID: "p1", UserID: "u1", Type: entity.TransactionTypeSaida, Quantity: 5,
	})

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var insufficientErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, 3, insufficientErr.Available, "el error informa la cantidad disponible")
	assert.Equal(t, 5, insufficientErr.Requested)

	assert.Equal(t, 3, store.products["p1"].Quantity, "el rechazo no muta la cantidad")
	assert.Empty(t, store.txs, "el rechazo no registra movimiento")
}

func TestApplyTransaction_Atomicidad(t *testing.T) {
	// Si el insert del movimiento falla, la cantidad tampoco debe quedar
	// actualizada: aplicación parcial es un bug de corrección.
	store := newMemStore(&entity.Product{ID: "p1", Quantity: 10})
	runner := &memTxRunner{store: store, failTransactionInsert: true}
	uc := ledger.NewUseCase(runner, &spyNotifier{}, testLogger())

	_, err := uc.ApplyTransaction(context.Background(), ledger.ApplyTransactionInput{
		ProductID: "p1", UserID: "u1", Type: entity.TransactionTypeEntrada, Quantity: 5,
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInsufficientStock, "el fallo de store se propaga tal cual")
	assert.Equal(t, 10, store.products["p1"].Quantity)
	assert.Empty(t, store.txs)
}

func TestApplyTransaction_NotificaCriticalYLow(t *testing.T) {
	t.Run("cruce a CRITICAL notifica", func(t *testing.T) {
		store := newMemStore(&entity.Product{ID: "p1", Quantity: 20, MinStock: 10})
		notifier := &spyNotifier{}
		uc := newLedger(store, notifier)

		_, err := uc.ApplyTransaction(context.Background(), ledger.ApplyTransactionInput{
			ProductID: "p1", UserID: "u1", Type: entity.TransactionTypeSaida, Quantity: 12,
		})
		require.NoError(t, err)
		require.Equal(t, 1, notifier.count())
		assert.Equal(t, stock.LevelCritical, notifier.calls[0].Level)
	})

	t.Run("cruce a LOW notifica", func(t *testing.T) {
		store := newMemStore(&entity.Product{ID: "p1", Quantity: 20, MinStock: 10})
		notifier := &spyNotifier{}
		uc := newLedger(store, notifier)

		_, err := uc.ApplyTransaction(context.Background(), ledger.ApplyTransactionInput{
			ProductID: "p1", UserID: "u1", Type: entity.TransactionTypeSaida, Quantity: 9,
		})
		require.NoError(t, err)
		require.Equal(t, 1, notifier.count())
		assert.Equal(t, stock.LevelLow, notifier.calls[0].Level)
	})

	t.Run("WARNING no notifica", func(t *testing.T) {
		store := newMemStore(&entity.Product{ID: "p1", Quantity: 20, MinStock: 10})
		notifier := &spyNotifier{}
		uc := newLedger(store, notifier)

		_, err := uc.ApplyTransaction(context.Background(), ledger.ApplyTransactionInput{
			ProductID: "p1", UserID: "u1", Type: entity.TransactionTypeSaida, Quantity: 6,
		})
		require.NoError(t, err)
		assert.Equal(t, 0, notifier.count())
	})
}

// TestApplyTransaction_SaidasConcurrentes es el test de propiedad de la
// carrera check-then-act: N salidas concurrentes de 1 unidad contra un
// producto con stock M < N. Deben aceptarse exactamente M, el resto debe
// fallar por stock insuficiente, y la cantidad nunca queda negativa.
func TestApplyTransaction_SaidasConcurrentes(t *testing.T) {
	const initial = 10
	const attempts = 25

	store := newMemStore(&entity.Product{ID: "p1", Quantity: initial, MinStock: 0})
	uc := newLedger(store, &spyNotifier{})

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.ApplyTransaction(context.Background(), ledger.ApplyTransactionInput{
				ProductID: "p1", UserID: "u1", Type: entity.TransactionTypeSaida, Quantity: 1,
			})
			errs[i] = err
		}(i)
	}
	wg.Wait()

	accepted := 0
	for _, err := range errs {
		if err == nil {
			accepted++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	assert.Equal(t, initial, accepted, "se aceptan exactamente tantas salidas como stock había")
	assert.Equal(t, 0, store.products["p1"].Quantity)
	assert.GreaterOrEqual(t, store.products["p1"].Quantity, 0, "la cantidad nunca es negativa")

	// Propiedad de replay: las transacciones aceptadas reproducen la cantidad final.
	total := initial
	for _, trx := range store.txs {
		if trx.Type == entity.TransactionTypeSaida {
			total -= trx.Quantity
		} else {
			total += trx.Quantity
		}
		assert.GreaterOrEqual(t, total, 0, "ningún prefijo del historial deja el total negativo")
	}
	assert.Equal(t, store.products["p1"].Quantity, total)
}

// TestApplyTransaction_SecuenciaValida verifica el invariante de delta con
// signo sobre una secuencia mixta de movimientos.
func TestApplyTransaction_SecuenciaValida(t *testing.T) {
	store := newMemStore(&entity.Product{ID: "p1", Quantity: 0, MinStock: 0})
	uc := newLedger(store, &spyNotifier{})
	ctx := context.Background()

	steps := []struct {
		tipo string
		qty  int
		want int
	}{
		{entity.TransactionTypeEntrada, 10, 10},
		{entity.TransactionTypeSaida, 3, 7},
		{entity.TransactionTypeEntrada, 5, 12},
		{entity.TransactionTypeSaida, 12, 0},
	}
	for _, s := range steps {
		result, err := uc.ApplyTransaction(ctx, ledger.ApplyTransactionInput{
			ProductID: "p1", UserID: "u1", Type: s.tipo, Quantity: s.qty,
		})
		require.NoError(t, err)
		assert.Equal(t, s.want, result.NewQuantity)
	}
	require.Len(t, store.txs, len(steps))
}
