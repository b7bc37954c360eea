package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/estoquepro/estoque-api/internal/application/dto"
	"github.com/estoquepro/estoque-api/internal/application/reports"
)

// DashboardHandler expone el resumen general para la pantalla principal.
type DashboardHandler struct {
	uc *reports.UseCase
}

// NewDashboardHandler construye el handler de dashboard.
func NewDashboardHandler(uc *reports.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats godoc
// @Summary      Resumen general del inventario
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        with_alerts  query  bool  false  "Incluir conteos de alertas de stock"
// @Success      200  {object}  reports.DashboardStats
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context(), c.QueryBool("with_alerts", false))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
