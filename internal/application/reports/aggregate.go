// Package reports compone el clasificador de stock y los analizadores de
// giro y financieros en resúmenes para consumo externo. Capa fina: solo
// cuenta, filtra y ordena según los criterios de cada componente.
package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/estoquepro/estoque-api/internal/domain/analysis"
	"github.com/estoquepro/estoque-api/internal/domain/entity"
	"github.com/estoquepro/estoque-api/internal/domain/stock"
)

// AlertedProduct producto con su clasificación de stock.
type AlertedProduct struct {
	Product *entity.Product  `json:"product"`
	Check   stock.CheckResult `json:"stockCheck"`
}

// StockAlertReport resumen de alertas de stock.
// Invariante: Critical + Low + Warning + Normal == Total, y Alerts contiene
// exactamente los Critical + Low + Warning productos no normales, ordenados
// CRITICAL, luego LOW, luego WARNING.
type StockAlertReport struct {
	Critical int              `json:"critical"`
	Low      int              `json:"low"`
	Warning  int              `json:"warning"`
	Normal   int              `json:"normal"`
	Total    int              `json:"total"`
	Alerts   []AlertedProduct `json:"alerts"`
}

// BuildStockAlertReport clasifica cada producto y arma el resumen de alertas.
func BuildStockAlertReport(products []*entity.Product) StockAlertReport {
	report := StockAlertReport{Total: len(products), Alerts: make([]AlertedProduct, 0)}

	for _, p := range products {
		check := stock.Classify(p.Quantity, p.MinStock)
		switch check.Level {
		case stock.LevelCritical:
			report.Critical++
		case stock.LevelLow:
			report.Low++
		case stock.LevelWarning:
			report.Warning++
		case stock.LevelNormal:
			report.Normal++
			continue
		}
		report.Alerts = append(report.Alerts, AlertedProduct{Product: p, Check: check})
	}

	sort.SliceStable(report.Alerts, func(i, j int) bool {
		return stock.MoreSevere(report.Alerts[i].Check.Level, report.Alerts[j].Check.Level)
	})
	return report
}

// TurnoverSummary conteos por clase de giro.
type TurnoverSummary struct {
	TotalProducts int `json:"totalProducts"`
	Encalhados    int `json:"encalhados"`
	BaixoGiro     int `json:"baixoGiro"`
	GiroMedio     int `json:"giroMedio"`
	AltoGiro      int `json:"altoGiro"`
}

// TurnoverReport reporte completo de giro: resumen, análisis por producto
// ordenado por tasa descendente y lista de encallados.
type TurnoverReport struct {
	Summary  TurnoverSummary            `json:"summary"`
	Products []analysis.TurnoverResult  `json:"products"`
	Stagnant []analysis.StagnantProduct `json:"stagnant"`
}

// BuildTurnoverReport arma el reporte de giro sobre un snapshot.
func BuildTurnoverReport(products []*entity.Product, transactions []*entity.Transaction, stagnant []analysis.StagnantProduct) TurnoverReport {
	results := analysis.AnalyzeAllTurnover(products, transactions)

	summary := TurnoverSummary{TotalProducts: len(products)}
	for _, r := range results {
		switch r.Status {
		case analysis.StatusEncalhado:
			summary.Encalhados++
		case analysis.StatusBaixoGiro:
			summary.BaixoGiro++
		case analysis.StatusGiroMedio:
			summary.GiroMedio++
		case analysis.StatusAltoGiro:
			summary.AltoGiro++
		}
	}

	return TurnoverReport{Summary: summary, Products: results, Stagnant: stagnant}
}

// ProductMovements totales de movimientos de un producto en un período.
type ProductMovements struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Entradas    int    `json:"entradas"`
	Saidas      int    `json:"saidas"`
}

// MovementsReport resumen de movimientos en un rango de fechas.
type MovementsReport struct {
	TotalEntradas int                   `json:"totalEntradas"`
	TotalSaidas   int                   `json:"totalSaidas"`
	ByProduct     []ProductMovements    `json:"byProduct"`
	Transactions  []*entity.Transaction `json:"transactions"`
}

// BuildMovementsReport agrega entradas y salidas totales y por producto.
// Los nombres se resuelven contra el snapshot de productos; un producto ya
// eliminado aparece como "Desconocido".
func BuildMovementsReport(transactions []*entity.Transaction, products []*entity.Product) MovementsReport {
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	byProduct := make(map[string]*ProductMovements)
	order := make([]string, 0)
	report := MovementsReport{Transactions: transactions, ByProduct: make([]ProductMovements, 0)}

	for _, t := range transactions {
		pm, ok := byProduct[t.ProductID]
		if !ok {
			name := names[t.ProductID]
			if name == "" {
				name = "Desconocido"
			}
			pm = &ProductMovements{ProductID: t.ProductID, ProductName: name}
			byProduct[t.ProductID] = pm
			order = append(order, t.ProductID)
		}
		if t.Type == entity.TransactionTypeEntrada {
			report.TotalEntradas += t.Quantity
			pm.Entradas += t.Quantity
		} else {
			report.TotalSaidas += t.Quantity
			pm.Saidas += t.Quantity
		}
	}

	for _, id := range order {
		report.ByProduct = append(report.ByProduct, *byProduct[id])
	}
	return report
}

// ProductActivity ranking de productos por cantidad de movimientos.
type ProductActivity struct {
	ProductID      string `json:"productId"`
	ProductName    string `json:"productName"`
	TotalMovements int    `json:"totalMovements"`
	TotalQuantity  int    `json:"totalQuantity"`
}

// BuildTopProducts ordena los productos por número de movimientos
// descendente y trunca a limit.
func BuildTopProducts(transactions []*entity.Transaction, products []*entity.Product, limit int) []ProductActivity {
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	byProduct := make(map[string]*ProductActivity)
	order := make([]string, 0)
	for _, t := range transactions {
		pa, ok := byProduct[t.ProductID]
		if !ok {
			name := names[t.ProductID]
			if name == "" {
				name = "Desconocido"
			}
			pa = &ProductActivity{ProductID: t.ProductID, ProductName: name}
			byProduct[t.ProductID] = pa
			order = append(order, t.ProductID)
		}
		pa.TotalMovements++
		pa.TotalQuantity += t.Quantity
	}

	ranking := make([]ProductActivity, 0, len(order))
	for _, id := range order {
		ranking = append(ranking, *byProduct[id])
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].TotalMovements > ranking[j].TotalMovements
	})
	if limit > 0 && len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking
}

// StockAlertCounts conteos de alertas para el dashboard.
type StockAlertCounts struct {
	Critical int `json:"critical"`
	Low      int `json:"low"`
	Warning  int `json:"warning"`
	Total    int `json:"total"`
}

// DashboardStats resumen general para la pantalla principal.
type DashboardStats struct {
	TotalProducts      int                   `json:"totalProducts"`
	LowStockCount      int                   `json:"lowStockCount"`
	TotalValue         decimal.Decimal       `json:"totalValue"`
	RecentTransactions []*entity.Transaction `json:"recentTransactions"`
	StockAlerts        *StockAlertCounts     `json:"stockAlerts,omitempty"`
}
