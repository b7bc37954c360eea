// Package analysis contiene los servicios de dominio de analítica:
// giro de inventario, detección de productos encallados y señales
// financieras. Todas las funciones son puras sobre el snapshot recibido;
// pueden invocarse concurrentemente sin coordinación.
package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/estoquepro/estoque-api/internal/domain/entity"
)

// TurnoverStatus clasificación del giro de un producto (conjunto cerrado).
type TurnoverStatus string

const (
	StatusEncalhado TurnoverStatus = "ENCALHADO"  // sin salidas
	StatusBaixoGiro TurnoverStatus = "BAIXO_GIRO" // tasa < 30%
	StatusGiroMedio TurnoverStatus = "GIRO_MEDIO" // tasa < 70%
	StatusAltoGiro  TurnoverStatus = "ALTO_GIRO"  // tasa >= 70%
)

// TurnoverResult resultado del análisis de giro de un producto.
// DaysAnalyzed y AverageDailySales solo se calculan en el análisis por período.
type TurnoverResult struct {
	ProductID          string         `json:"productId"`
	ProductName        string         `json:"productName"`
	TotalEntradas      int            `json:"totalEntradas"`
	TotalSaidas        int            `json:"totalSaidas"`
	TurnoverRate       float64        `json:"turnoverRate"`
	TurnoverPercentage int            `json:"turnoverPercentage"`
	Status             TurnoverStatus `json:"status"`
	StatusMessage      string         `json:"statusMessage"`
	DaysAnalyzed       int            `json:"daysAnalyzed,omitempty"`
	AverageDailySales  float64        `json:"averageDailySales,omitempty"`
}

// TurnoverRate calcula la tasa de giro: (salidas / entradas) * 100.
// No está acotada por arriba: un producto con pocas entradas y muchas
// salidas puede superar el 100%. Con cero entradas la tasa es 0.
func TurnoverRate(entradas, saidas int) float64 {
	if entradas == 0 {
		return 0
	}
	return float64(saidas) / float64(entradas) * 100
}

// turnoverStatus determina la clasificación de giro a partir de la tasa.
func turnoverStatus(rate float64) (TurnoverStatus, string) {
	switch {
	case rate == 0:
		return StatusEncalhado, "ENCALLADO: producto sin salidas, considere promoción o descontinuar"
	case rate < 30:
		return StatusBaixoGiro, "BAJO GIRO: producto con pocas ventas, revisar estrategia"
	case rate < 70:
		return StatusGiroMedio, "GIRO MEDIO: producto con ventas moderadas"
	default:
		return StatusAltoGiro, "ALTO GIRO: producto con excelente salida, mantener stock"
	}
}

// sumByType suma cantidades de entradas y salidas de un producto.
// Si from/to no son cero, filtra por ventana de fechas (inclusiva en ambos extremos).
func sumByType(productID string, transactions []*entity.Transaction, from, to time.Time) (entradas, saidas int) {
	bounded := !from.IsZero() || !to.IsZero()
	for _, t := range transactions {
		if t.ProductID != productID {
			continue
		}
		if bounded && (t.CreatedAt.Before(from) || t.CreatedAt.After(to)) {
			continue
		}
		switch t.Type {
		case entity.TransactionTypeEntrada:
			entradas += t.Quantity
		case entity.TransactionTypeSaida:
			saidas += t.Quantity
		}
	}
	return entradas, saidas
}

// AnalyzeTurnover analiza el giro histórico completo de un producto.
func AnalyzeTurnover(product *entity.Product, transactions []*entity.Transaction) TurnoverResult {
	entradas, saidas := sumByType(product.ID, transactions, time.Time{}, time.Time{})
	rate := TurnoverRate(entradas, saidas)
	status, message := turnoverStatus(rate)
	return TurnoverResult{
		ProductID:          product.ID,
		ProductName:        product.Name,
		TotalEntradas:      entradas,
		TotalSaidas:        saidas,
		TurnoverRate:       rate,
		TurnoverPercentage: int(math.Round(rate)),
		Status:             status,
		StatusMessage:      message,
	}
}

// AnalyzeTurnoverByPeriod analiza el giro dentro de una ventana de fechas
// (inclusiva) y calcula además los días analizados y la venta diaria promedio.
func AnalyzeTurnoverByPeriod(product *entity.Product, transactions []*entity.Transaction, start, end time.Time) TurnoverResult {
	entradas, saidas := sumByType(product.ID, transactions, start, end)
	rate := TurnoverRate(entradas, saidas)
	status, message := turnoverStatus(rate)

	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	avgDaily := 0.0
	if days > 0 {
		avgDaily = math.Round(float64(saidas)/float64(days)*100) / 100
	}

	return TurnoverResult{
		ProductID:          product.ID,
		ProductName:        product.Name,
		TotalEntradas:      entradas,
		TotalSaidas:        saidas,
		TurnoverRate:       rate,
		TurnoverPercentage: int(math.Round(rate)),
		Status:             status,
		StatusMessage:      message,
		DaysAnalyzed:       days,
		AverageDailySales:  avgDaily,
	}
}

// AnalyzeAllTurnover analiza todos los productos y los ordena por tasa de
// giro descendente.
func AnalyzeAllTurnover(products []*entity.Product, transactions []*entity.Transaction) []TurnoverResult {
	results := make([]TurnoverResult, 0, len(products))
	for _, p := range products {
		results = append(results, AnalyzeTurnover(p, transactions))
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TurnoverRate > results[j].TurnoverRate
	})
	return results
}

// StagnantProduct producto sin salidas recientes.
// NeverSold indica que el producto nunca tuvo una SAIDA; en ese caso
// DaysSinceLastSale no es significativo y el producto ordena primero.
type StagnantProduct struct {
	Product           *entity.Product `json:"product"`
	DaysSinceLastSale int             `json:"daysSinceLastSale"`
	NeverSold         bool            `json:"neverSold"`
}

// FindStagnant identifica productos con al menos minDays días enteros sin
// salidas, ordenados del más encallado al menos (los que nunca vendieron
// encabezan la lista).
func FindStagnant(products []*entity.Product, transactions []*entity.Transaction, minDays int, now time.Time) []StagnantProduct {
	stagnant := make([]StagnantProduct, 0)
	for _, p := range products {
		var lastSale time.Time
		for _, t := range transactions {
			if t.ProductID != p.ID || t.Type != entity.TransactionTypeSaida {
				continue
			}
			if t.CreatedAt.After(lastSale) {
				lastSale = t.CreatedAt
			}
		}
		if lastSale.IsZero() {
			stagnant = append(stagnant, StagnantProduct{Product: p, NeverSold: true})
			continue
		}
		days := int(math.Floor(now.Sub(lastSale).Hours() / 24))
		if days >= minDays {
			stagnant = append(stagnant, StagnantProduct{Product: p, DaysSinceLastSale: days})
		}
	}
	sort.SliceStable(stagnant, func(i, j int) bool {
		a, b := stagnant[i], stagnant[j]
		if a.NeverSold != b.NeverSold {
			return a.NeverSold
		}
		return a.DaysSinceLastSale > b.DaysSinceLastSale
	})
	return stagnant
}
