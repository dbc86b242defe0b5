// Package orders contiene las reglas de validación de órdenes: funciones puras y
// sin estado, invocadas siempre antes de cualquier escritura.
package orders

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-backoffice/internal/domain"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
)

var cien = decimal.NewFromInt(100)

// ValidateItems valida las líneas de una orden: lista no vacía y por cada ítem
// cantidad > 0, precio unitario > 0, total > 0 y Total == Quantity*UnitPrice
// (redondeado a 2 decimales).
func ValidateItems(items []entity.OrderItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: order must have at least one item", domain.ErrInvalidOrder)
	}
	for i, item := range items {
		if !item.Quantity.GreaterThan(decimal.Zero) {
			return fmt.Errorf("%w: item %d: quantity must be positive", domain.ErrInvalidOrder, i)
		}
		if !item.UnitPrice.GreaterThan(decimal.Zero) {
			return fmt.Errorf("%w: item %d: unit price must be positive", domain.ErrInvalidOrder, i)
		}
		if !item.Total.GreaterThan(decimal.Zero) {
			return fmt.Errorf("%w: item %d: total must be positive", domain.ErrInvalidOrder, i)
		}
		expected := item.UnitPrice.Mul(item.Quantity).Round(2)
		if !item.Total.Equal(expected) {
			return fmt.Errorf("%w: item %d: total %s does not match quantity*unitPrice %s",
				domain.ErrInvalidOrder, i, item.Total, expected)
		}
	}
	return nil
}

// ValidateOrderTotals valida los montos de la cabecera contra sus ítems:
// sum(Items.Total) == Subtotal (igualdad exacta), Discount >= 0, Discount <= 100,
// y descuento aplicado <= subtotal (redundante con Discount <= 100; se verifica
// de forma independiente).
func ValidateOrderTotals(order *entity.Order) error {
	var sum decimal.Decimal
	for _, item := range order.Items {
		sum = sum.Add(item.Total)
	}
	if !sum.Equal(order.Subtotal) {
		return fmt.Errorf("%w: items total %s does not match subtotal %s",
			domain.ErrInvalidOrder, sum, order.Subtotal)
	}
	if order.Discount.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: discount cannot be negative", domain.ErrInvalidOrder)
	}
	if order.Discount.GreaterThan(cien) {
		return fmt.Errorf("%w: discount cannot exceed 100%%", domain.ErrInvalidOrder)
	}
	discounted := order.Subtotal.Mul(order.Discount).Div(cien)
	if discounted.GreaterThan(order.Subtotal) {
		return fmt.Errorf("%w: discount amount %s exceeds subtotal %s",
			domain.ErrInvalidOrder, discounted, order.Subtotal)
	}
	return nil
}

// ComputeTotal calcula el total de la orden: Subtotal - Subtotal*Discount/100,
// redondeado a 2 decimales.
func ComputeTotal(subtotal, discount decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(subtotal.Mul(discount).Div(cien)).Round(2)
}
