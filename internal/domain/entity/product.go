package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
// Stock solo lo muta el motor de movimientos de inventario, nunca los callers.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo de compra
	Stock       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
