// Package stock clasifica el nivel de inventario de un producto respecto a
// su umbral de reposición (servicio de dominio, sin efectos).
package stock

import "math"

// Level nivel de criticidad del stock (conjunto cerrado).
type Level string

const (
	LevelCritical Level = "CRITICAL" // en o por debajo del mínimo
	LevelLow      Level = "LOW"      // hasta 20% por encima del mínimo
	LevelWarning  Level = "WARNING"  // hasta 50% por encima del mínimo
	LevelNormal   Level = "NORMAL"   // más de 50% por encima del mínimo
)

// CheckResult resultado de la clasificación de stock de un producto.
type CheckResult struct {
	Level      Level  `json:"level"`
	Quantity   int    `json:"quantity"`
	MinStock   int    `json:"minStock"`
	Percentage int    `json:"percentage"`
	Message    string `json:"message"`
}

// Classify calcula el nivel de stock. Función pura y total: no falla con
// entradas degeneradas.
//
// La regla quantity <= minStock domina sobre las ramas por porcentaje.
// Con minStock == 0 el porcentaje queda fijo en 100, por lo que cualquier
// cantidad positiva clasifica como LOW sin importar cuán grande sea;
// comportamiento heredado del diseño de umbrales original, se conserva
// a propósito porque corregirlo cambiaría el comportamiento de alertas.
func Classify(quantity, minStock int) CheckResult {
	percentage := 100.0
	if minStock > 0 {
		percentage = float64(quantity) / float64(minStock) * 100
	}

	var level Level
	var message string
	switch {
	case quantity <= minStock:
		level = LevelCritical
		message = "CRÍTICO: stock en o por debajo del mínimo"
	case percentage <= 120:
		level = LevelLow
		message = "BAJO: stock próximo al mínimo"
	case percentage <= 150:
		level = LevelWarning
		message = "ATENCIÓN: considere reponer el stock"
	default:
		level = LevelNormal
		message = "NORMAL: stock adecuado"
	}

	return CheckResult{
		Level:      level,
		Quantity:   quantity,
		MinStock:   minStock,
		Percentage: int(math.Round(percentage)),
		Message:    message,
	}
}

// severityOrder orden de criticidad para reportes: CRITICAL antes que LOW,
// LOW antes que WARNING.
var severityOrder = map[Level]int{
	LevelCritical: 0,
	LevelLow:      1,
	LevelWarning:  2,
	LevelNormal:   3,
}

// MoreSevere reporta si a es estrictamente más crítico que b.
func MoreSevere(a, b Level) bool {
	return severityOrder[a] < severityOrder[b]
}
