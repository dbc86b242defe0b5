package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de orden. El tipo se fija en la creación y nunca cambia.
const (
	OrderTypeSale        = "SALE"        // venta de contado
	OrderTypeQuote       = "QUOTE"       // cotización (no vinculante)
	OrderTypeInstallment = "INSTALLMENT" // venta a crédito (pago diferido)
)

// Estados de una orden.
const (
	OrderStatusOpen      = "OPEN"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

// Order representa la cabecera de una orden con sus ítems y pagos.
// Invariantes: sum(Items.Total) == Subtotal (igualdad exacta),
// Total == Subtotal - Subtotal*Discount/100, Discount en [0,100].
// Los ítems y pagos pertenecen exclusivamente a la orden (se eliminan con ella).
type Order struct {
	ID         string
	Type       string // SALE, QUOTE, INSTALLMENT
	Status     string // OPEN, COMPLETED, CANCELLED
	Items      []OrderItem
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal // porcentaje 0..100
	Total      decimal.Decimal
	Paid       bool
	Payments   []Payment
	CustomerID string // vacío si la venta es sin cliente registrado
	SellerID   string // usuario que crea la orden
	CreatedAt  time.Time
}

// OrderItem línea de una orden. Invariante: Total == Quantity * UnitPrice (exacto).
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// Métodos de pago.
const (
	PaymentMethodCash = "CASH"
)

// Payment pago aplicado a una orden. Para consumo de saldo del cliente se
// registra un pago CASH sintético con Change en cero.
type Payment struct {
	ID        string
	OrderID   string
	Amount    decimal.Decimal
	Change    decimal.Decimal
	Method    string
	CreatedAt time.Time
}
