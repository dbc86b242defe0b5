package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-backoffice/internal/application/dto"
	"github.com/tu-usuario/retail-backoffice/internal/domain"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
)

// MovementUseCase aplica lotes de cambios de stock de forma transaccional,
// con bloqueo de fila (SELECT FOR UPDATE) sobre cada producto tocado y
// Commit/Rollback: dos lotes concurrentes sobre el mismo producto no pueden
// pasar ambos la verificación de suficiencia contra una lectura obsoleta.
type MovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.StockMovementRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(txRunner TxRunner, movRepo repository.StockMovementRepository) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, movRepo: movRepo}
}

// CreateMovement valida el lote y lo aplica como unidad atómica.
// Las entradas se verifican en el orden recibido: la primera insuficiente (o el
// primer producto inexistente) aborta el lote completo y determina el mensaje
// de error; ningún stock queda modificado ni se crea el registro de movimiento.
func (uc *MovementUseCase) CreateMovement(ctx context.Context, in dto.CreateMovementRequest, userID string) (*dto.MovementResponse, error) {
	if in.Type != entity.MovementTypeIN && in.Type != entity.MovementTypeOUT {
		return nil, fmt.Errorf("%w: movement type must be IN or OUT", domain.ErrInvalidInput)
	}
	if len(in.Entries) == 0 {
		return nil, fmt.Errorf("%w: movement must have at least one entry", domain.ErrInvalidInput)
	}
	for i, e := range in.Entries {
		if e.ProductID == "" {
			return nil, fmt.Errorf("%w: entry %d: product_id is required", domain.ErrInvalidInput, i)
		}
		if !e.Quantity.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: entry %d: quantity must be positive", domain.ErrInvalidInput, i)
		}
	}

	now := time.Now()
	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		Type:        in.Type,
		Description: in.Description,
		CreatedAt:   now,
		CreatedBy:   userID,
	}
	for _, e := range in.Entries {
		mov.Entries = append(mov.Entries, entity.StockMovementEntry{
			ID:         uuid.New().String(),
			MovementID: mov.ID,
			ProductID:  e.ProductID,
			Quantity:   e.Quantity,
		})
	}

	// Inicia transacción; Commit si todo ok, Rollback si algo falla.
	err := uc.txRunner.RunStock(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		for _, e := range mov.Entries {
			// Bloquea la fila del producto (SELECT FOR UPDATE).
			product, err := productRepo.GetForUpdate(e.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: product %s", domain.ErrNotFound, e.ProductID)
			}
			newQty := product.Stock.Add(e.Quantity)
			if mov.Type == entity.MovementTypeOUT {
				if e.Quantity.GreaterThan(product.Stock) {
					return fmt.Errorf("%w for item '%s'", domain.ErrInsufficientStock, product.Name)
				}
				newQty = product.Stock.Sub(e.Quantity)
			}
			if err := productRepo.UpdateStock(product.ID, newQty); err != nil {
				return err
			}
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

// GetMovement lectura de un movimiento con sus entradas.
func (uc *MovementUseCase) GetMovement(ctx context.Context, id string) (*dto.MovementResponse, error) {
	mov, err := uc.movRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	return toMovementResponse(mov), nil
}

// ListMovements lista movimientos con paginación y rango de fechas opcional.
func (uc *MovementUseCase) ListMovements(ctx context.Context, from, to *time.Time, limit, offset int) ([]*dto.MovementResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.movRepo.List(from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

// DeleteMovement elimina el registro del movimiento. No revierte el efecto
// sobre el stock de los productos (comportamiento documentado).
func (uc *MovementUseCase) DeleteMovement(ctx context.Context, id string) error {
	mov, err := uc.movRepo.GetByID(id)
	if err != nil {
		return err
	}
	if mov == nil {
		return domain.ErrNotFound
	}
	return uc.movRepo.Delete(id)
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	entries := make([]dto.MovementEntryResponse, 0, len(m.Entries))
	for _, e := range m.Entries {
		entries = append(entries, dto.MovementEntryResponse{
			ID:        e.ID,
			ProductID: e.ProductID,
			Quantity:  e.Quantity,
		})
	}
	return &dto.MovementResponse{
		ID:          m.ID,
		Type:        m.Type,
		Description: m.Description,
		Entries:     entries,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
		CreatedBy:   m.CreatedBy,
	}
}
