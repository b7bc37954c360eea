package reports

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/estoquepro/estoque-api/internal/domain"
	"github.com/estoquepro/estoque-api/internal/domain/analysis"
	"github.com/estoquepro/estoque-api/internal/domain/entity"
	"github.com/estoquepro/estoque-api/internal/domain/repository"
)

const recentTransactionsLimit = 10 // movimientos en el widget del dashboard

// UseCase arma los reportes leyendo snapshots de los stores. Todas las
// operaciones son read-only; pueden ejecutarse concurrentemente con
// movimientos del ledger en curso (los reportes son consultivos, no
// requieren un snapshot consistente punto-en-el-tiempo).
type UseCase struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
}

// NewUseCase construye el agregador de reportes.
func NewUseCase(productRepo repository.ProductRepository, transactionRepo repository.TransactionRepository) *UseCase {
	return &UseCase{productRepo: productRepo, transactionRepo: transactionRepo}
}

// StockAlerts genera el reporte de alertas de stock de todo el inventario.
func (uc *UseCase) StockAlerts(ctx context.Context) (*StockAlertReport, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	report := BuildStockAlertReport(products)
	return &report, nil
}

// Turnover genera el reporte completo de giro (resumen, por producto,
// encallados con el mínimo por defecto de 30 días).
func (uc *UseCase) Turnover(ctx context.Context) (*TurnoverReport, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	transactions, err := uc.transactionRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	stagnant := analysis.FindStagnant(products, transactions, 30, time.Now())
	report := BuildTurnoverReport(products, transactions, stagnant)
	return &report, nil
}

// ProductTurnover analiza el giro de un producto; con período calcula además
// días analizados y venta diaria promedio.
func (uc *UseCase) ProductTurnover(ctx context.Context, productID string, start, end *time.Time) (*analysis.TurnoverResult, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	transactions, err := uc.transactionRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	var result analysis.TurnoverResult
	if start != nil && end != nil {
		result = analysis.AnalyzeTurnoverByPeriod(product, transactions, *start, *end)
	} else {
		result = analysis.AnalyzeTurnover(product, transactions)
	}
	return &result, nil
}

// Stagnant lista los productos con al menos minDays días sin salidas.
func (uc *UseCase) Stagnant(ctx context.Context, minDays int) ([]analysis.StagnantProduct, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	transactions, err := uc.transactionRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return analysis.FindStagnant(products, transactions, minDays, time.Now()), nil
}

// FinancialStats agrega las señales financieras de todo el inventario.
func (uc *UseCase) FinancialStats(ctx context.Context) (*analysis.FinancialStats, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	stats := analysis.CalculateFinancialStats(products)
	return &stats, nil
}

// Probability estima la probabilidad de venta. Con productID vacío analiza
// todos los productos.
func (uc *UseCase) Probability(ctx context.Context, productID string) ([]analysis.ProbabilityAnalysis, error) {
	transactions, err := uc.transactionRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()

	if productID != "" {
		product, err := uc.productRepo.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		return []analysis.ProbabilityAnalysis{analysis.EstimateSellProbability(product, transactions, now)}, nil
	}

	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]analysis.ProbabilityAnalysis, 0, len(products))
	for _, p := range products {
		results = append(results, analysis.EstimateSellProbability(p, transactions, now))
	}
	return results, nil
}

// MovementsByPeriod resume los movimientos dentro de un rango de fechas.
func (uc *UseCase) MovementsByPeriod(ctx context.Context, start, end time.Time) (*MovementsReport, error) {
	transactions, err := uc.transactionRepo.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	report := BuildMovementsReport(transactions, products)
	return &report, nil
}

// TopProducts ranking de productos por cantidad de movimientos.
func (uc *UseCase) TopProducts(ctx context.Context, limit int) ([]ProductActivity, error) {
	transactions, err := uc.transactionRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return BuildTopProducts(transactions, products, limit), nil
}

// Dashboard arma el resumen general; con withAlerts incluye los conteos de
// alertas de stock.
func (uc *UseCase) Dashboard(ctx context.Context, withAlerts bool) (*DashboardStats, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	transactions, err := uc.transactionRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	totalValue := decimal.Zero
	lowStock := 0
	for _, p := range products {
		totalValue = totalValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
		if p.Quantity <= p.MinStock {
			lowStock++
		}
	}

	recent := make([]*entity.Transaction, len(transactions))
	copy(recent, transactions)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentTransactionsLimit {
		recent = recent[:recentTransactionsLimit]
	}

	stats := &DashboardStats{
		TotalProducts:      len(products),
		LowStockCount:      lowStock,
		TotalValue:         totalValue,
		RecentTransactions: recent,
	}
	if withAlerts {
		report := BuildStockAlertReport(products)
		stats.StockAlerts = &StockAlertCounts{
			Critical: report.Critical,
			Low:      report.Low,
			Warning:  report.Warning,
			Total:    report.Total,
		}
	}
	return stats, nil
}
