package analysis_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estoquepro/estoque-api/internal/domain/analysis"
	"github.com/estoquepro/estoque-api/internal/domain/entity"
)

func TestCalculateFinancialStats(t *testing.T) {
	products := []*entity.Product{
		{ID: "p1", Name: "Martillo", Cost: decimal.NewFromInt(50), Price: decimal.NewFromInt(100), Quantity: 10},
		{ID: "p2", Name: "Taladro", Cost: decimal.NewFromInt(150), Price: decimal.NewFromInt(200), Quantity: 5},
	}

	stats := analysis.CalculateFinancialStats(products)

	assert.True(t, stats.TotalInvestment.Equal(decimal.NewFromInt(1250)), "inversión: 50*10 + 150*5")
	assert.True(t, stats.TotalPotentialRevenue.Equal(decimal.NewFromInt(2000)), "ingreso: 100*10 + 200*5")
	assert.True(t, stats.TotalPotentialProfit.Equal(decimal.NewFromInt(750)))
	assert.True(t, stats.AverageROI.Equal(decimal.NewFromInt(60)), "ROI promedio: 750/1250*100")

	require.Len(t, stats.TopValueItems, 2)
	assert.Equal(t, "p1", stats.TopValueItems[0].ProductID, "ROI 100% ordena antes que 33.3%")
	assert.True(t, stats.TopValueItems[0].ROI.Equal(decimal.NewFromInt(100)))
}

func TestCalculateFinancialStats_Degenerados(t *testing.T) {
	t.Run("inventario vacío devuelve ceros", func(t *testing.T) {
		stats := analysis.CalculateFinancialStats(nil)
		assert.True(t, stats.TotalInvestment.IsZero())
		assert.True(t, stats.AverageROI.IsZero())
		assert.Empty(t, stats.TopValueItems)
	})

	t.Run("costo cero no divide por cero", func(t *testing.T) {
		products := []*entity.Product{
			{ID: "p1", Name: "Regalo", Cost: decimal.Zero, Price: decimal.NewFromInt(10), Quantity: 3},
		}
		stats := analysis.CalculateFinancialStats(products)
		assert.True(t, stats.AverageROI.IsZero(), "sin inversión el ROI promedio es 0")
		require.Len(t, stats.TopValueItems, 1)
		assert.True(t, stats.TopValueItems[0].ROI.IsZero(), "sin costo el ROI unitario es 0")
	})

	t.Run("ranking se trunca a 5 productos", func(t *testing.T) {
		products := make([]*entity.Product, 0, 8)
		for i := 0; i < 8; i++ {
			products = append(products, &entity.Product{
				ID:       string(rune('a' + i)),
				Cost:     decimal.NewFromInt(10),
				Price:    decimal.NewFromInt(int64(10 + i)),
				Quantity: 1,
			})
		}
		stats := analysis.CalculateFinancialStats(products)
		require.Len(t, stats.TopValueItems, 5)
		assert.Equal(t, "h", stats.TopValueItems[0].ProductID, "mayor ROI primero")
	})
}

func TestEstimateSellProbability(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("sin ninguna SAIDA devuelve la estimación fija de baja confianza", func(t *testing.T) {
		p := &entity.Product{ID: "p1", Name: "Nuevo", Quantity: 10}
		txs := []*entity.Transaction{
			{ProductID: "p1", Type: entity.TransactionTypeEntrada, Quantity: 10, CreatedAt: now},
		}
		result := analysis.EstimateSellProbability(p, txs, now)
		assert.Equal(t, 0.1, result.SellProbability)
		assert.Equal(t, 90, result.ExpectedTurnoverDays)
		assert.Equal(t, analysis.RiskHigh, result.RiskLevel)
	})

	t.Run("una SAIDA de 5 hoy da probabilidad 0.5 y riesgo MEDIUM", func(t *testing.T) {
		p := &entity.Product{ID: "p1", Name: "Activo", Quantity: 10}
		txs := []*entity.Transaction{
			{ProductID: "p1", Type: entity.TransactionTypeSaida, Quantity: 5, CreatedAt: now},
		}
		result := analysis.EstimateSellProbability(p, txs, now)
		assert.Equal(t, 0.5, result.SellProbability)
		assert.Equal(t, analysis.RiskMedium, result.RiskLevel)
		// venta diaria 5/30; 10 unidades tardan round(60) días
		assert.Equal(t, 60, result.ExpectedTurnoverDays)
	})

	t.Run("la probabilidad se acota en 0.95", func(t *testing.T) {
		p := &entity.Product{ID: "p1", Quantity: 100}
		txs := []*entity.Transaction{
			{ProductID: "p1", Type: entity.TransactionTypeSaida, Quantity: 50, CreatedAt: now},
		}
		result := analysis.EstimateSellProbability(p, txs, now)
		assert.Equal(t, 0.95, result.SellProbability)
		assert.Equal(t, analysis.RiskLow, result.RiskLevel)
	})

	t.Run("ventas antiguas fuera de la ventana de 30 días no cuentan", func(t *testing.T) {
		p := &entity.Product{ID: "p1", Quantity: 10}
		txs := []*entity.Transaction{
			{ProductID: "p1", Type: entity.TransactionTypeSaida, Quantity: 8, CreatedAt: now.AddDate(0, 0, -40)},
		}
		result := analysis.EstimateSellProbability(p, txs, now)
		assert.Equal(t, 0.0, result.SellProbability, "tuvo ventas pero ninguna reciente")
		assert.Equal(t, analysis.RiskHigh, result.RiskLevel)
		assert.Equal(t, 90, result.ExpectedTurnoverDays)
	})

	t.Run("determinista con el mismo snapshot y el mismo now", func(t *testing.T) {
		p := &entity.Product{ID: "p1", Quantity: 7}
		txs := []*entity.Transaction{
			{ProductID: "p1", Type: entity.TransactionTypeSaida, Quantity: 3, CreatedAt: now.AddDate(0, 0, -5)},
		}
		a := analysis.EstimateSellProbability(p, txs, now)
		b := analysis.EstimateSellProbability(p, txs, now)
		assert.Equal(t, a, b)
	})
}
