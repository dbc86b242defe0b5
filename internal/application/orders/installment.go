package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-backoffice/internal/application/dto"
	"github.com/tu-usuario/retail-backoffice/internal/domain"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	domorders "github.com/tu-usuario/retail-backoffice/internal/domain/orders"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
)

// InstallmentStrategy crea órdenes a crédito: cliente obligatorio, la orden nace
// sin pagar y opcionalmente consume saldo a favor del cliente.
type InstallmentStrategy struct {
	txRunner     TxRunner
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
}

// NewInstallmentStrategy construye la estrategia.
func NewInstallmentStrategy(txRunner TxRunner, orderRepo repository.OrderRepository, customerRepo repository.CustomerRepository) *InstallmentStrategy {
	return &InstallmentStrategy{txRunner: txRunner, orderRepo: orderRepo, customerRepo: customerRepo}
}

// Create valida y persiste una orden a crédito.
// Si UseBalance y el cliente tiene saldo positivo, aplica min(saldo, total) como
// pago CASH sintético (vueltas en cero) y descuenta ese monto del saldo DESPUÉS
// de confirmar la escritura de la orden. La orden y el saldo son dos escrituras
// separadas: si falla la segunda, la orden ya quedó persistida y el error se
// propaga al caller (ver DESIGN.md).
func (st *InstallmentStrategy) Create(ctx context.Context, in dto.CreateOrderRequest, sellerID string) (*entity.Order, error) {
	if in.CustomerID == "" {
		return nil, fmt.Errorf("%w: installment order requires a customer", domain.ErrInvalidOrder)
	}
	if len(in.Payments) > 0 {
		return nil, fmt.Errorf("%w: installment orders start unpaid, payments are not allowed", domain.ErrInvalidOrder)
	}

	customer, err := st.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: customer %s", domain.ErrNotFound, in.CustomerID)
	}

	now := time.Now()
	order := buildOrder(in, sellerID, now)

	if err := domorders.ValidateItems(order.Items); err != nil {
		return nil, err
	}
	if err := domorders.ValidateOrderTotals(order); err != nil {
		return nil, err
	}

	// Consumo de saldo: nunca más que el total de la orden.
	applied := decimal.Zero
	if in.UseBalance && customer.Balance.GreaterThan(decimal.Zero) {
		applied = decimal.Min(customer.Balance, order.Total)
		order.Payments = append(order.Payments, entity.Payment{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			Amount:    applied,
			Change:    decimal.Zero,
			Method:    entity.PaymentMethodCash,
			CreatedAt: now,
		})
	}

	// Cabecera, ítems y pago sintético en una sola transacción.
	err = st.txRunner.RunOrder(ctx, func(orderRepo repository.OrderRepository) error {
		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}

	// Descuento de saldo fuera de la transacción de la orden. Si esta escritura
	// falla, la orden queda persistida y el saldo sin tocar.
	if applied.GreaterThan(decimal.Zero) {
		if _, err := st.customerRepo.UpdateBalance(customer.ID, customer.Balance.Sub(applied)); err != nil {
			return nil, fmt.Errorf("order %s persisted but balance deduction failed: %w", order.ID, err)
		}
	}
	return order, nil
}

// Update revalida existencia, construye el reemplazo completo y delega en el
// store. No reaplica la lógica de saldo.
func (st *InstallmentStrategy) Update(ctx context.Context, orderID string, in dto.UpdateOrderRequest) (*entity.Order, error) {
	existing, err := st.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: order %s", domain.ErrNotFound, orderID)
	}

	order := &entity.Order{
		ID:         existing.ID,
		Type:       existing.Type, // el tipo nunca cambia
		Status:     existing.Status,
		Subtotal:   in.Subtotal,
		Discount:   in.Discount,
		Total:      domorders.ComputeTotal(in.Subtotal, in.Discount),
		Paid:       existing.Paid,
		Payments:   existing.Payments,
		CustomerID: existing.CustomerID,
		SellerID:   existing.SellerID,
		CreatedAt:  existing.CreatedAt,
	}
	if in.CustomerID != "" {
		order.CustomerID = in.CustomerID
	}
	if in.Status != "" {
		order.Status = in.Status
	}
	order.Items = buildItems(order.ID, in.Items)

	if err := domorders.ValidateItems(order.Items); err != nil {
		return nil, err
	}
	if err := domorders.ValidateOrderTotals(order); err != nil {
		return nil, err
	}

	err = st.txRunner.RunOrder(ctx, func(orderRepo repository.OrderRepository) error {
		return orderRepo.Update(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Delete revalida existencia y elimina la orden con sus ítems y pagos.
// No restituye el saldo consumido en la creación.
func (st *InstallmentStrategy) Delete(ctx context.Context, orderID string) error {
	existing, err := st.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: order %s", domain.ErrNotFound, orderID)
	}
	return st.txRunner.RunOrder(ctx, func(orderRepo repository.OrderRepository) error {
		return orderRepo.Delete(orderID)
	})
}

// buildOrder arma la entidad desde el request. El total se calcula en el
// servidor a partir de subtotal y descuento.
func buildOrder(in dto.CreateOrderRequest, sellerID string, now time.Time) *entity.Order {
	order := &entity.Order{
		ID:         uuid.New().String(),
		Type:       in.Type,
		Status:     entity.OrderStatusOpen,
		Subtotal:   in.Subtotal,
		Discount:   in.Discount,
		Total:      domorders.ComputeTotal(in.Subtotal, in.Discount),
		Paid:       false,
		CustomerID: in.CustomerID,
		SellerID:   sellerID,
		CreatedAt:  now,
	}
	order.Items = buildItems(order.ID, in.Items)
	return order
}

func buildItems(orderID string, in []dto.OrderItemRequest) []entity.OrderItem {
	items := make([]entity.OrderItem, 0, len(in))
	for _, it := range in {
		items = append(items, entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.Total,
		})
	}
	return items
}
