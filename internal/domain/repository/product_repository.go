package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate y UpdateStock se usan dentro de transacciones del motor de
// inventario; Stock nunca se escribe por fuera de ese motor.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	UpdateStock(id string, quantity decimal.Decimal) error
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
