package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// UpdateBalance escribe exactamente el valor recibido (sin piso ni techo);
// la aritmética es responsabilidad del caller.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByTaxID(taxID string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	UpdateBalance(id string, balance decimal.Decimal) (*entity.Customer, error)
	Delete(id string) error
}
