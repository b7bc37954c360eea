package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/estoquepro/estoque-api/internal/application/dto"
	"github.com/estoquepro/estoque-api/internal/application/ledger"
	"github.com/estoquepro/estoque-api/internal/application/usecase"
	"github.com/estoquepro/estoque-api/internal/domain"
	"github.com/estoquepro/estoque-api/internal/domain/entity"
	"github.com/estoquepro/estoque-api/pkg/validator"
)

// TransactionHandler maneja los movimientos de stock: alta vía el ledger y
// consultas del historial.
type TransactionHandler struct {
	ledger *ledger.UseCase
	uc     *usecase.TransactionUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(ledgerUC *ledger.UseCase, uc *usecase.TransactionUseCase) *TransactionHandler {
	return &TransactionHandler{ledger: ledgerUC, uc: uc}
}

func toTransactionResponse(t *entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:        t.ID,
		ProductID: t.ProductID,
		UserID:    t.UserID,
		Type:      t.Type,
		Quantity:  t.Quantity,
		Notes:     t.Notes,
		CreatedAt: t.CreatedAt,
	}
}

// Create godoc
// @Summary      Registrar movimiento de stock (ENTRADA o SAIDA)
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "Movimiento"
// @Success      201   {object}  dto.CreateTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if fieldErrors := validator.ValidateStruct(in); fieldErrors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"code": "VALIDATION", "errors": fieldErrors})
	}

	result, err := h.ledger.ApplyTransaction(c.Context(), ledger.ApplyTransactionInput{
		ProductID: in.ProductID,
		UserID:    GetUserID(c),
		Type:      in.Type,
		Quantity:  in.Quantity,
		Notes:     in.Notes,
	})
	if err != nil {
		var insufficientErr *domain.InsufficientStockError
		switch {
		case errors.As(err, &insufficientErr):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"code":      "INSUFFICIENT_STOCK",
				"message":   insufficientErr.Error(),
				"available": insufficientErr.Available,
				"requested": insufficientErr.Requested,
			})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "movimiento inválido"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateTransactionResponse{
		TransactionID: result.TransactionID,
		NewQuantity:   result.NewQuantity,
		StockLevel:    string(result.Check.Level),
	})
}

// List godoc
// @Summary      Listar movimientos
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        from        query  string  false  "Inicio de la ventana (YYYY-MM-DD)"
// @Param        to          query  string  false  "Fin de la ventana (YYYY-MM-DD)"
// @Success      200  {array}  dto.TransactionResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var (
		transactions []*entity.Transaction
		err          error
	)
	if fromStr, toStr := c.Query("from"), c.Query("to"); fromStr != "" || toStr != "" {
		from, perr := parseDate(fromStr)
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "from inválido, use YYYY-MM-DD"})
		}
		to, perr := parseDate(toStr)
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "to inválido, use YYYY-MM-DD"})
		}
		transactions, err = h.uc.ListByDateRange(c.Context(), from, to)
	} else {
		transactions, err = h.uc.List(c.Context(), c.Query("product_id"))
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	list := make([]dto.TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		list = append(list, toTransactionResponse(t))
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	trx, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toTransactionResponse(trx))
}
