package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tu-usuario/retail-backoffice/internal/application/dto"
	"github.com/tu-usuario/retail-backoffice/internal/domain"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
)

// Strategy define el contrato común de las estrategias por tipo de orden.
// Cada tipo (SALE, QUOTE, INSTALLMENT) tiene una implementación; el tipo de una
// orden nunca cambia después de creada, así que update/delete se enrutan por el
// tipo persistido.
type Strategy interface {
	Create(ctx context.Context, in dto.CreateOrderRequest, sellerID string) (*entity.Order, error)
	Update(ctx context.Context, orderID string, in dto.UpdateOrderRequest) (*entity.Order, error)
	Delete(ctx context.Context, orderID string) error
}

// Service enruta las peticiones de órdenes a la estrategia de su tipo.
// Conjunto cerrado de estrategias, fijado en la construcción.
type Service struct {
	strategies map[string]Strategy
	orderRepo  repository.OrderRepository
}

// NewService construye el dispatcher con las tres estrategias. SALE y QUOTE
// aún no están soportadas: fallan con ErrNotImplemented de forma explícita.
func NewService(txRunner TxRunner, orderRepo repository.OrderRepository, customerRepo repository.CustomerRepository) *Service {
	return &Service{
		orderRepo: orderRepo,
		strategies: map[string]Strategy{
			entity.OrderTypeSale:        notImplementedStrategy{kind: entity.OrderTypeSale},
			entity.OrderTypeQuote:       notImplementedStrategy{kind: entity.OrderTypeQuote},
			entity.OrderTypeInstallment: NewInstallmentStrategy(txRunner, orderRepo, customerRepo),
		},
	}
}

// CreateOrder valida el tipo y delega la creación en la estrategia correspondiente.
func (s *Service) CreateOrder(ctx context.Context, in dto.CreateOrderRequest, sellerID string) (*dto.OrderResponse, error) {
	if sellerID == "" {
		return nil, domain.ErrInvalidInput
	}
	strategy, ok := s.strategies[in.Type]
	if !ok {
		return nil, fmt.Errorf("%w: unknown order type %q", domain.ErrInvalidOrder, in.Type)
	}
	order, err := strategy.Create(ctx, in, sellerID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// UpdateOrder busca la orden y delega en la estrategia de su tipo persistido.
func (s *Service) UpdateOrder(ctx context.Context, orderID string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	existing, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	strategy, ok := s.strategies[existing.Type]
	if !ok {
		return nil, fmt.Errorf("%w: unknown order type %q", domain.ErrInvalidOrder, existing.Type)
	}
	order, err := strategy.Update(ctx, orderID, in)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// DeleteOrder busca la orden y delega en la estrategia de su tipo persistido.
func (s *Service) DeleteOrder(ctx context.Context, orderID string) error {
	existing, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	strategy, ok := s.strategies[existing.Type]
	if !ok {
		return fmt.Errorf("%w: unknown order type %q", domain.ErrInvalidOrder, existing.Type)
	}
	return strategy.Delete(ctx, orderID)
}

// GetOrder lectura simple (sin estrategia).
func (s *Service) GetOrder(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// notImplementedStrategy cubre los tipos contractualmente definidos pero aún no
// soportados. Falla siempre con ErrNotImplemented, nunca hace no-op silencioso.
type notImplementedStrategy struct {
	kind string
}

func (s notImplementedStrategy) Create(context.Context, dto.CreateOrderRequest, string) (*entity.Order, error) {
	return nil, s.err()
}

func (s notImplementedStrategy) Update(context.Context, string, dto.UpdateOrderRequest) (*entity.Order, error) {
	return nil, s.err()
}

func (s notImplementedStrategy) Delete(context.Context, string) error {
	return s.err()
}

func (s notImplementedStrategy) err() error {
	return fmt.Errorf("%w: %s orders are not supported yet", domain.ErrNotImplemented, strings.ToLower(s.kind))
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Total:     it.Total,
		})
	}
	var payments []dto.PaymentResponse
	for _, p := range o.Payments {
		payments = append(payments, dto.PaymentResponse{
			ID:     p.ID,
			Amount: p.Amount,
			Change: p.Change,
			Method: p.Method,
		})
	}
	return &dto.OrderResponse{
		ID:         o.ID,
		Type:       o.Type,
		Status:     o.Status,
		Items:      items,
		Subtotal:   o.Subtotal,
		Discount:   o.Discount,
		Total:      o.Total,
		Paid:       o.Paid,
		Payments:   payments,
		CustomerID: o.CustomerID,
		SellerID:   o.SellerID,
		CreatedAt:  o.CreatedAt.Format(time.RFC3339),
	}
}
