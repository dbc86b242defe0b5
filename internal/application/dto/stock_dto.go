package dto

import "github.com/shopspring/decimal"

// MovementEntryRequest entrada de un movimiento: producto y cantidad (> 0).
type MovementEntryRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateMovementRequest body para POST /api/stock/movements.
// Type: IN o OUT; aplica a todas las entradas del lote.
type CreateMovementRequest struct {
	Type        string                 `json:"type"`
	Description string                 `json:"description,omitempty"`
	Entries     []MovementEntryRequest `json:"entries"`
}

// MovementEntryResponse entrada en respuestas.
type MovementEntryResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// MovementResponse movimiento con sus entradas.
type MovementResponse struct {
	ID          string                  `json:"id"`
	Type        string                  `json:"type"`
	Description string                  `json:"description,omitempty"`
	Entries     []MovementEntryResponse `json:"entries"`
	CreatedAt   string                  `json:"created_at"`
	CreatedBy   string                  `json:"created_by"`
}
