package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/estoquepro/estoque-api/internal/application/dto"
	"github.com/estoquepro/estoque-api/internal/application/reports"
	"github.com/estoquepro/estoque-api/internal/domain"
)

const defaultStagnantDays = 30

// ReportHandler expone los reportes de inventario (solo lectura).
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// parseDate acepta fechas RFC3339 o YYYY-MM-DD.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// StockAlerts godoc
// @Summary      Alertas de stock de todo el inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  reports.StockAlertReport
// @Router       /api/reports/stock-alerts [get]
func (h *ReportHandler) StockAlerts(c *fiber.Ctx) error {
	out, err := h.uc.StockAlerts(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Turnover godoc
// @Summary      Reporte de giro de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  reports.TurnoverReport
// @Router       /api/reports/turnover [get]
func (h *ReportHandler) Turnover(c *fiber.Ctx) error {
	out, err := h.uc.Turnover(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ProductTurnover godoc
// @Summary      Giro de un producto (opcionalmente por período)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del producto"
// @Param        start  query  string  false  "Inicio del período (YYYY-MM-DD)"
// @Param        end    query  string  false  "Fin del período (YYYY-MM-DD)"
// @Success      200  {object}  analysis.TurnoverResult
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/turnover/{id} [get]
func (h *ReportHandler) ProductTurnover(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}

	var start, end *time.Time
	if s := c.Query("start"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "start inválido, use YYYY-MM-DD"})
		}
		start = &t
	}
	if s := c.Query("end"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "end inválido, use YYYY-MM-DD"})
		}
		end = &t
	}
	if (start == nil) != (end == nil) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PERIOD", Message: "start y end deben indicarse juntos"})
	}

	out, err := h.uc.ProductTurnover(c.Context(), id, start, end)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Stagnant godoc
// @Summary      Productos encallados (sin salidas hace N días)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        min_days  query  int  false  "Mínimo de días sin salidas"  default(30)
// @Success      200  {array}  analysis.StagnantProduct
// @Router       /api/reports/stagnant [get]
func (h *ReportHandler) Stagnant(c *fiber.Ctx) error {
	minDays := c.QueryInt("min_days", defaultStagnantDays)
	if minDays < 0 {
		minDays = defaultStagnantDays
	}
	out, err := h.uc.Stagnant(c.Context(), minDays)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Movimientos por período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  true  "Inicio (YYYY-MM-DD)"
// @Param        end    query  string  true  "Fin (YYYY-MM-DD)"
// @Success      200  {object}  reports.MovementsReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movements [get]
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	start, err := parseDate(c.Query("start"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "start inválido, use YYYY-MM-DD"})
	}
	end, err := parseDate(c.Query("end"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "end inválido, use YYYY-MM-DD"})
	}
	if end.Before(start) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PERIOD", Message: "end no puede ser anterior a start"})
	}
	out, err := h.uc.MovementsByPeriod(c.Context(), start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// TopProducts godoc
// @Summary      Productos con más movimientos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de productos"  default(10)
// @Success      200  {array}  reports.ProductActivity
// @Router       /api/reports/top-products [get]
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}
	out, err := h.uc.TopProducts(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
