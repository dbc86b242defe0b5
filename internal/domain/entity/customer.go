package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente del negocio.
// Balance es saldo a favor (con signo; puede quedar negativo, no se aplica piso).
// Solo lo mutan el consumo de saldo en órdenes a crédito y los ajustes explícitos.
type Customer struct {
	ID        string
	Name      string
	TaxID     string // NIT o Cédula
	Email     string
	Phone     string
	Address   string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
