package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-backoffice/internal/application/dto"
	"github.com/tu-usuario/retail-backoffice/internal/application/orders"
)

// OrderHandler maneja las peticiones HTTP de órdenes (protegido).
type OrderHandler struct {
	svc *orders.Service
}

// NewOrderHandler construye el handler.
func NewOrderHandler(svc *orders.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// Create godoc
// @Summary      Crear orden
// @Description  Crea una orden del tipo indicado (SALE, QUOTE, INSTALLMENT).
//
//	INSTALLMENT exige cliente, nace sin pagar y puede consumir saldo a favor.
//
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "type, customer_id, items, subtotal, discount, use_balance"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      501   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	sellerID := GetUserID(c)
	if sellerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	order, err := h.svc.CreateOrder(c.Context(), in, sellerID)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// GetByID godoc
// @Summary      Consultar orden
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.svc.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(order)
}

// Update godoc
// @Summary      Actualizar orden
// @Description  Reemplaza ítems y montos de la orden. El tipo no cambia y no se
//
//	reaplica la lógica de saldo.
//
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Order ID"
// @Param        body  body  dto.UpdateOrderRequest  true  "items, subtotal, discount, status"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      501   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	order, err := h.svc.UpdateOrder(c.Context(), c.Params("id"), in)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(order)
}

// Delete godoc
// @Summary      Eliminar orden
// @Description  Elimina la orden con sus ítems y pagos. No restituye saldo consumido.
// @Tags         orders
// @Security     Bearer
// @Param        id  path  string  true  "Order ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      501  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.DeleteOrder(c.Context(), c.Params("id")); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
