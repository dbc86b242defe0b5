package dto

import "github.com/shopspring/decimal"

// OrderItemRequest línea de orden en el request.
type OrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// PaymentRequest pago en el request. Las órdenes a crédito deben llegar sin pagos.
type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Change decimal.Decimal `json:"change"`
	Method string          `json:"method"`
}

// CreateOrderRequest body para POST /api/orders. Type decide la estrategia
// (SALE, QUOTE, INSTALLMENT). UseBalance solo aplica a INSTALLMENT.
type CreateOrderRequest struct {
	Type       string             `json:"type"`
	CustomerID string             `json:"customer_id,omitempty"`
	Items      []OrderItemRequest `json:"items"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
	Discount   decimal.Decimal    `json:"discount"` // porcentaje 0..100
	Payments   []PaymentRequest   `json:"payments,omitempty"`
	UseBalance bool               `json:"use_balance,omitempty"`
}

// UpdateOrderRequest body para PUT /api/orders/:id. Reemplazo completo de
// ítems y montos; el tipo de la orden no cambia.
type UpdateOrderRequest struct {
	CustomerID string             `json:"customer_id,omitempty"`
	Items      []OrderItemRequest `json:"items"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
	Discount   decimal.Decimal    `json:"discount"`
	Status     string             `json:"status,omitempty"`
}

// PaymentResponse pago en respuestas.
type PaymentResponse struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Change decimal.Decimal `json:"change"`
	Method string          `json:"method"`
}

// OrderItemResponse línea de orden en respuestas.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// OrderResponse orden completa en respuestas.
type OrderResponse struct {
	ID         string              `json:"id"`
	Type       string              `json:"type"`
	Status     string              `json:"status"`
	Items      []OrderItemResponse `json:"items"`
	Subtotal   decimal.Decimal     `json:"subtotal"`
	Discount   decimal.Decimal     `json:"discount"`
	Total      decimal.Decimal     `json:"total"`
	Paid       bool                `json:"paid"`
	Payments   []PaymentResponse   `json:"payments,omitempty"`
	CustomerID string              `json:"customer_id,omitempty"`
	SellerID   string              `json:"seller_id"`
	CreatedAt  string              `json:"created_at"`
}
