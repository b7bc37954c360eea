package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/estoquepro/estoque-api/internal/domain/stock"
)

func TestClassify_Niveles(t *testing.T) {
	cases := []struct {
		name     string
		quantity int
		minStock int
		want     stock.Level
	}{
		{"por debajo del mínimo es CRITICAL", 5, 10, stock.LevelCritical},
		{"igual al mínimo es CRITICAL", 10, 10, stock.LevelCritical},
		{"hasta 120% es LOW", 11, 10, stock.LevelLow},
		{"límite 120% es LOW", 12, 10, stock.LevelLow},
		{"hasta 150% es WARNING", 13, 10, stock.LevelWarning},
		{"límite 150% es WARNING", 15, 10, stock.LevelWarning},
		{"más de 150% es NORMAL", 16, 10, stock.LevelNormal},
		{"cero sobre cero es CRITICAL", 0, 0, stock.LevelCritical},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := stock.Classify(tc.quantity, tc.minStock)
			assert.Equal(t, tc.want, result.Level)
		})
	}
}

func TestClassify_Porcentaje(t *testing.T) {
	result := stock.Classify(5, 10)
	assert.Equal(t, 50, result.Percentage)

	// Con minStock == 0 el porcentaje queda fijo en 100 y el nivel es LOW
	// para cualquier cantidad positiva (comportamiento heredado, se conserva).
	result = stock.Classify(1, 0)
	assert.Equal(t, 100, result.Percentage)
	assert.Equal(t, stock.LevelLow, result.Level)

	result = stock.Classify(100000, 0)
	assert.Equal(t, 100, result.Percentage)
	assert.Equal(t, stock.LevelLow, result.Level, "sin mínimo configurado nunca escala a WARNING/NORMAL")
}

func TestClassify_EsPura(t *testing.T) {
	a := stock.Classify(13, 10)
	b := stock.Classify(13, 10)
	assert.Equal(t, a, b, "mismas entradas deben producir el mismo resultado")
}

func TestMoreSevere_Orden(t *testing.T) {
	assert.True(t, stock.MoreSevere(stock.LevelCritical, stock.LevelLow))
	assert.True(t, stock.MoreSevere(stock.LevelLow, stock.LevelWarning))
	assert.True(t, stock.MoreSevere(stock.LevelWarning, stock.LevelNormal))
	assert.False(t, stock.MoreSevere(stock.LevelNormal, stock.LevelCritical))
}
