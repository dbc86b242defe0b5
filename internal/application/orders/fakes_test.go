package orders_test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los tests de estrategias de órdenes
// ──────────────────────────────────────────────────────────────────────────────

// fakeOrderRepo almacena órdenes en un map, sin transacción real.
type fakeOrderRepo struct {
	orders map[string]*entity.Order
	// createErr fuerza el fallo de Create para probar rutas de error.
	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.Order)}
}

func (r *fakeOrderRepo) Create(order *entity.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	return r.orders[id], nil
}

func (r *fakeOrderRepo) Update(order *entity.Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) Delete(id string) error {
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) List(limit, offset int) ([]*entity.Order, error) {
	out := make([]*entity.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}

// fakeCustomerRepo almacena clientes en un map.
type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
	// balanceErr fuerza el fallo de UpdateBalance para probar la brecha
	// orden-persistida / saldo-sin-descontar.
	balanceErr error
}

func newFakeCustomerRepo(customers ...*entity.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{customers: make(map[string]*entity.Customer)}
	for _, c := range customers {
		r.customers[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}

func (r *fakeCustomerRepo) GetByTaxID(taxID string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.TaxID == taxID {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(c *entity.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) UpdateBalance(id string, balance decimal.Decimal) (*entity.Customer, error) {
	if r.balanceErr != nil {
		return nil, r.balanceErr
	}
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	c.Balance = balance
	return c, nil
}

func (r *fakeCustomerRepo) Delete(id string) error {
	delete(r.customers, id)
	return nil
}

// fakeOrderTxRunner invoca el callback con el repo tal cual; la atomicidad real
// la da Postgres, aquí solo se verifica el enrutamiento.
type fakeOrderTxRunner struct {
	orderRepo repository.OrderRepository
}

func (r *fakeOrderTxRunner) RunOrder(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error {
	return fn(r.orderRepo)
}
