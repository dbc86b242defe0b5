package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-backoffice/internal/application/dto"
	"github.com/tu-usuario/retail-backoffice/internal/application/stock"
)

// StockHandler maneja las peticiones HTTP de movimientos de inventario (protegido).
type StockHandler struct {
	uc *stock.MovementUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.MovementUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// CreateMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  Aplica un lote de cambios de stock (IN u OUT) como unidad atómica:
//
//	si una entrada no tiene stock suficiente, ninguna se aplica.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "type, description, entries"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) CreateMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	mov, err := h.uc.CreateMovement(c.Context(), in, userID)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(mov)
}

// GetMovement godoc
// @Summary      Consultar movimiento
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Movement ID"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/movements/{id} [get]
func (h *StockHandler) GetMovement(c *fiber.Ctx) error {
	mov, err := h.uc.GetMovement(c.Context(), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(mov)
}

// ListMovements godoc
// @Summary      Listar movimientos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Fecha inicial (RFC3339)"
// @Param        to      query  string  false  "Fecha final (RFC3339)"
// @Param        limit   query  int     false  "Límite"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "invalid query"})
	}
	page.DefaultPage()
	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from must be RFC3339"})
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to must be RFC3339"})
		}
		to = &t
	}
	list, err := h.uc.ListMovements(c.Context(), from, to, page.Limit, page.Offset)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "movements": list})
}

// DeleteMovement godoc
// @Summary      Eliminar movimiento
// @Description  Elimina el registro del movimiento. El stock de los productos
//
//	afectados no se revierte.
//
// @Tags         stock
// @Security     Bearer
// @Param        id  path  string  true  "Movement ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/movements/{id} [delete]
func (h *StockHandler) DeleteMovement(c *fiber.Ctx) error {
	if err := h.uc.DeleteMovement(c.Context(), c.Params("id")); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
