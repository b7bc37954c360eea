package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/estoquepro/estoque-api/internal/application/dto"
	"github.com/estoquepro/estoque-api/internal/application/reports"
	"github.com/estoquepro/estoque-api/internal/domain"
)

// FinancialHandler expone las señales financieras del inventario.
type FinancialHandler struct {
	uc *reports.UseCase
}

// NewFinancialHandler construye el handler financiero.
func NewFinancialHandler(uc *reports.UseCase) *FinancialHandler {
	return &FinancialHandler{uc: uc}
}

// Stats godoc
// @Summary      Estadísticas financieras del inventario
// @Tags         financial
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  analysis.FinancialStats
// @Router       /api/financial/stats [get]
func (h *FinancialHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.FinancialStats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Probability godoc
// @Summary      Probabilidad de venta (todos o un producto)
// @Tags         financial
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Analizar solo este producto"
// @Success      200  {array}  analysis.ProbabilityAnalysis
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/financial/probability [get]
func (h *FinancialHandler) Probability(c *fiber.Ctx) error {
	out, err := h.uc.Probability(c.Context(), c.Query("product_id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
