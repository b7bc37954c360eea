package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/estoquepro/estoque-api/internal/domain/entity"
)

// RiskLevel riesgo de no-venta de un producto (conjunto cerrado).
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

const topValueItemsLimit = 5 // productos en el ranking por ROI

// ItemROI retorno porcentual de un producto: (precio - costo) / costo * 100.
type ItemROI struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	ROI       decimal.Decimal `json:"roi"`
}

// FinancialStats agregado financiero del inventario completo.
type FinancialStats struct {
	TotalInvestment       decimal.Decimal `json:"totalInvestment"`
	TotalPotentialRevenue decimal.Decimal `json:"totalPotentialRevenue"`
	TotalPotentialProfit  decimal.Decimal `json:"totalPotentialProfit"`
	AverageROI            decimal.Decimal `json:"averageROI"`
	TopValueItems         []ItemROI       `json:"topValueItems"`
}

// CalculateFinancialStats agrega inversión, ingreso y ganancia potenciales
// sobre todos los productos, con el ROI promedio ponderado por inversión y
// el top 5 de productos por ROI unitario. Con inventario vacío o costos en
// cero devuelve ceros, nunca error.
func CalculateFinancialStats(products []*entity.Product) FinancialStats {
	hundred := decimal.NewFromInt(100)

	totalInvestment := decimal.Zero
	totalRevenue := decimal.Zero
	items := make([]ItemROI, 0, len(products))

	for _, p := range products {
		qty := decimal.NewFromInt(int64(p.Quantity))
		totalInvestment = totalInvestment.Add(p.Cost.Mul(qty))
		totalRevenue = totalRevenue.Add(p.Price.Mul(qty))

		roi := decimal.Zero
		if p.Cost.GreaterThan(decimal.Zero) {
			roi = p.Price.Sub(p.Cost).Div(p.Cost).Mul(hundred)
		}
		items = append(items, ItemROI{ProductID: p.ID, Name: p.Name, ROI: roi})
	}

	totalProfit := totalRevenue.Sub(totalInvestment)
	averageROI := decimal.Zero
	if totalInvestment.GreaterThan(decimal.Zero) {
		averageROI = totalProfit.Div(totalInvestment).Mul(hundred)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ROI.GreaterThan(items[j].ROI)
	})
	if len(items) > topValueItemsLimit {
		items = items[:topValueItemsLimit]
	}

	return FinancialStats{
		TotalInvestment:       totalInvestment,
		TotalPotentialRevenue: totalRevenue,
		TotalPotentialProfit:  totalProfit,
		AverageROI:            averageROI,
		TopValueItems:         items,
	}
}

// ProbabilityAnalysis estimación heurística de venta de un producto.
type ProbabilityAnalysis struct {
	ProductID            string    `json:"productId"`
	ProductName          string    `json:"productName"`
	SellProbability      float64   `json:"sellProbability"` // 0 a 1
	ExpectedTurnoverDays int       `json:"expectedTurnoverDays"`
	RiskLevel            RiskLevel `json:"riskLevel"`
}

const (
	probabilityWindowDays = 30 // ventana de ventas recientes
	defaultTurnoverDays   = 90 // estimación sin historial de ventas
)

// EstimateSellProbability estima la probabilidad de venta a partir de las
// salidas de los últimos 30 días. Determinista dado el mismo snapshot de
// transacciones y la misma referencia now.
//
// Un producto sin ninguna SAIDA en toda su historia recibe la estimación
// fija de baja confianza (0.1, 90 días, riesgo HIGH).
func EstimateSellProbability(product *entity.Product, transactions []*entity.Transaction, now time.Time) ProbabilityAnalysis {
	hasSales := false
	recentQtySold := 0
	windowStart := now.AddDate(0, 0, -probabilityWindowDays)

	for _, t := range transactions {
		if t.ProductID != product.ID || t.Type != entity.TransactionTypeSaida {
			continue
		}
		hasSales = true
		if !t.CreatedAt.Before(windowStart) {
			recentQtySold += t.Quantity
		}
	}

	if !hasSales {
		return ProbabilityAnalysis{
			ProductID:            product.ID,
			ProductName:          product.Name,
			SellProbability:      0.1,
			ExpectedTurnoverDays: defaultTurnoverDays,
			RiskLevel:            RiskHigh,
		}
	}

	probability := math.Min(float64(recentQtySold)/10, 0.95)

	avgDailySales := float64(recentQtySold) / probabilityWindowDays
	expectedDays := defaultTurnoverDays
	if avgDailySales > 0 {
		expectedDays = int(math.Round(float64(product.Quantity) / avgDailySales))
	}

	risk := RiskMedium
	switch {
	case probability > 0.7:
		risk = RiskLow
	case probability < 0.3:
		risk = RiskHigh
	}

	return ProbabilityAnalysis{
		ProductID:            product.ID,
		ProductName:          product.Name,
		SellProbability:      probability,
		ExpectedTurnoverDays: expectedDays,
		RiskLevel:            risk,
	}
}
