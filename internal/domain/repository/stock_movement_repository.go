package repository

import (
	"time"

	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos
// de inventario y sus entradas.
type StockMovementRepository interface {
	// Create persiste cabecera y entradas del movimiento.
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	List(from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	// Delete elimina el registro. No revierte el efecto sobre el stock.
	Delete(id string) error
}
