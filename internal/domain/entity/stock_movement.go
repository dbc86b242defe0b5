package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direcciones de movimiento de inventario.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// StockMovement representa un lote de cambios de stock aplicado como unidad
// atómica: o se aplican todas las entradas o ninguna. Inmutable una vez creado;
// eliminarlo no revierte el efecto sobre el stock.
type StockMovement struct {
	ID          string
	Type        string // IN, OUT
	Description string
	Entries     []StockMovementEntry
	CreatedAt   time.Time
	CreatedBy   string // UserID
}

// StockMovementEntry entrada de un movimiento: producto y cantidad (siempre > 0;
// la dirección la da el movimiento).
type StockMovementEntry struct {
	ID         string
	MovementID string
	ProductID  string
	Quantity   decimal.Decimal
}
