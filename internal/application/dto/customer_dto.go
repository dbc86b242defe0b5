package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id.
// No incluye Balance: el saldo se ajusta solo vía SetBalance.
type UpdateCustomerRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// SetBalanceRequest body para PUT /api/customers/:id/balance.
type SetBalanceRequest struct {
	Balance decimal.Decimal `json:"balance"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	TaxID   string          `json:"tax_id"`
	Email   string          `json:"email,omitempty"`
	Phone   string          `json:"phone,omitempty"`
	Address string          `json:"address,omitempty"`
	Balance decimal.Decimal `json:"balance"`
}
