package repository

import "github.com/tu-usuario/retail-backoffice/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order con sus ítems y pagos.
// Create y Update escriben cabecera, ítems y pagos; deben ejecutarse dentro de
// una transacción (ver TxRunner en application/orders).
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	// Update reemplaza la orden completa: actualiza cabecera y reescribe ítems.
	Update(order *entity.Order) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.Order, error)
}
