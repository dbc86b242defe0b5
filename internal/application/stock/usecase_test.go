package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-backoffice/internal/application/dto"
	"github.com/tu-usuario/retail-backoffice/internal/application/stock"
	"github.com/tu-usuario/retail-backoffice/internal/domain"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
)

const testUserID = "00000000-0000-0000-0000-00000000000a"

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica de Commit/Rollback
// ──────────────────────────────────────────────────────────────────────────────

// fakeStore es el estado "en disco": productos y movimientos confirmados.
type fakeStore struct {
	products  map[string]*entity.Product
	movements map[string]*entity.StockMovement
}

func newFakeStore(products ...*entity.Product) *fakeStore {
	s := &fakeStore{
		products:  make(map[string]*entity.Product),
		movements: make(map[string]*entity.StockMovement),
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

// snapshot copia el estado para poder descartarlo en el rollback.
func (s *fakeStore) snapshot() *fakeStore {
	cp := newFakeStore()
	for id, p := range s.products {
		clone := *p
		cp.products[id] = &clone
	}
	for id, m := range s.movements {
		clone := *m
		cp.movements[id] = &clone
	}
	return cp
}

type fakeProductRepo struct{ store *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error { r.store.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.store.products[id], nil
}
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.store.products[id], nil
}
func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.store.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) UpdateStock(id string, quantity decimal.Decimal) error {
	r.store.products[id].Stock = quantity
	return nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.store.products[p.ID] = p; return nil }
func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		out = append(out, p)
	}
	return out, nil
}
func (r *fakeProductRepo) Delete(id string) error { delete(r.store.products, id); return nil }

type fakeMovementRepo struct{ store *fakeStore }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.store.movements[m.ID] = m
	return nil
}
func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	return r.store.movements[id], nil
}
func (r *fakeMovementRepo) List(from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	out := make([]*entity.StockMovement, 0, len(r.store.movements))
	for _, m := range r.store.movements {
		out = append(out, m)
	}
	return out, nil
}
func (r *fakeMovementRepo) Delete(id string) error { delete(r.store.movements, id); return nil }

// fakeTxRunner emula la transacción: el callback trabaja sobre una copia y solo
// si termina sin error la copia reemplaza al estado confirmado.
type fakeTxRunner struct{ store *fakeStore }

func (r *fakeTxRunner) RunStock(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	staging := r.store.snapshot()
	err := fn(&fakeMovementRepo{store: staging}, &fakeProductRepo{store: staging})
	if err != nil {
		return err // rollback: la copia se descarta
	}
	r.store.products = staging.products // commit
	r.store.movements = staging.movements
	return nil
}

func product(id, name, stock string) *entity.Product {
	return &entity.Product{ID: id, SKU: "SKU-" + id, Name: name, Stock: dec(stock)}
}

func newUseCase(store *fakeStore) *stock.MovementUseCase {
	return stock.NewMovementUseCase(&fakeTxRunner{store: store}, &fakeMovementRepo{store: store})
}

// ──────────────────────────────────────────────────────────────────────────────
// Lotes IN / OUT
// ──────────────────────────────────────────────────────────────────────────────

// Lote IN sobre dos productos: ambos stocks suben y queda un único movimiento
// con sus dos entradas.
func TestCreateMovement_LoteIN(t *testing.T) {
	store := newFakeStore(
		product("prod-a", "Producto A", "100"),
		product("prod-b", "Producto B", "25"),
	)
	uc := newUseCase(store)

	resp, err := uc.CreateMovement(context.Background(), dto.CreateMovementRequest{
		Type:        entity.MovementTypeIN,
		Description: "reposición semanal",
		Entries: []dto.MovementEntryRequest{
			{ProductID: "prod-a", Quantity: dec("50")},
			{ProductID: "prod-b", Quantity: dec("15")},
		},
	}, testUserID)
	require.NoError(t, err)

	assert.True(t, store.products["prod-a"].Stock.Equal(dec("150")))
	assert.True(t, store.products["prod-b"].Stock.Equal(dec("40")))

	require.Len(t, store.movements, 1)
	assert.Equal(t, entity.MovementTypeIN, resp.Type)
	assert.Len(t, resp.Entries, 2)
	assert.Equal(t, testUserID, resp.CreatedBy)
}

func TestCreateMovement_LoteOUT(t *testing.T) {
	store := newFakeStore(product("prod-a", "Producto A", "100"))
	uc := newUseCase(store)

	_, err := uc.CreateMovement(context.Background(), dto.CreateMovementRequest{
		Type:    entity.MovementTypeOUT,
		Entries: []dto.MovementEntryRequest{{ProductID: "prod-a", Quantity: dec("30")}},
	}, testUserID)
	require.NoError(t, err)
	assert.True(t, store.products["prod-a"].Stock.Equal(dec("70")))
}

// Salida OUT exacta al stock disponible: permitida, deja el stock en cero.
func TestCreateMovement_OUTExacto(t *testing.T) {
	store := newFakeStore(product("prod-a", "Producto A", "30"))
	uc := newUseCase(store)

	_, err := uc.CreateMovement(context.Background(), dto.CreateMovementRequest{
		Type:    entity.MovementTypeOUT,
		Entries: []dto.MovementEntryRequest{{ProductID: "prod-a", Quantity: dec("30")}},
	}, testUserID)
	require.NoError(t, err)
	assert.True(t, store.products["prod-a"].Stock.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Todo-o-nada
// ──────────────────────────────────────────────────────────────────────────────

// Una entrada insuficiente aborta el lote COMPLETO: ni siquiera las entradas
// previas (suficientes) dejan rastro, y no se crea el movimiento.
func TestCreateMovement_OUTInsuficiente_RevierteElLote(t *testing.T) {
	store := newFakeStore(
		product("prod-a", "Producto A", "100"),
		product("prod-b", "Producto B", "5"),
	)
	uc := newUseCase(store)

	_, err := uc.CreateMovement(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeOUT,
		Entries: []dto.MovementEntryRequest{
			{ProductID: "prod-a", Quantity: dec("10")}, // suficiente
			{ProductID: "prod-b", Quantity: dec("8")},  // insuficiente
		},
	}, testUserID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, "insufficient stock for item 'Producto B'", err.Error())

	// Nada cambió: ni el stock de A (entrada suficiente) ni el de B.
	assert.True(t, store.products["prod-a"].Stock.Equal(dec("100")))
	assert.True(t, store.products["prod-b"].Stock.Equal(dec("5")))
	assert.Empty(t, store.movements, "no debe quedar registro del movimiento")
}

// Con varias entradas insuficientes, el error nombra la PRIMERA en el orden
// del request.
func TestCreateMovement_PrimeraInsuficienteDeterminaElError(t *testing.T) {
	store := newFakeStore(
		product("prod-a", "Producto A", "1"),
		product("prod-b", "Producto B", "1"),
	)
	uc := newUseCase(store)

	_, err := uc.CreateMovement(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeOUT,
		Entries: []dto.MovementEntryRequest{
			{ProductID: "prod-b", Quantity: dec("10")},
			{ProductID: "prod-a", Quantity: dec("10")},
		},
	}, testUserID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'Producto B'")
}

// Producto inexistente en el lote: todo-o-nada también aplica.
func TestCreateMovement_ProductoInexistente_RevierteElLote(t *testing.T) {
	store := newFakeStore(product("prod-a", "Producto A", "100"))
	uc := newUseCase(store)

	_, err := uc.CreateMovement(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeIN,
		Entries: []dto.MovementEntryRequest{
			{ProductID: "prod-a", Quantity: dec("10")},
			{ProductID: "no-existe", Quantity: dec("5")},
		},
	}, testUserID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, store.products["prod-a"].Stock.Equal(dec("100")))
	assert.Empty(t, store.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación del request
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateMovement_TipoInvalido(t *testing.T) {
	uc := newUseCase(newFakeStore())
	_, err := uc.CreateMovement(context.Background(), dto.CreateMovementRequest{
		Type:    "TRANSFER",
		Entries: []dto.MovementEntryRequest{{ProductID: "prod-a", Quantity: dec("1")}},
	}, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateMovement_SinEntradas(t *testing.T) {
	uc := newUseCase(newFakeStore())
	_, err := uc.CreateMovement(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeIN,
	}, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateMovement_CantidadNoPositiva(t *testing.T) {
	uc := newUseCase(newFakeStore(product("prod-a", "Producto A", "10")))
	for _, qty := range []string{"0", "-5"} {
		_, err := uc.CreateMovement(context.Background(), dto.CreateMovementRequest{
			Type:    entity.MovementTypeIN,
			Entries: []dto.MovementEntryRequest{{ProductID: "prod-a", Quantity: dec(qty)}},
		}, testUserID)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantity = %s", qty)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Lectura y borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestGetMovement_Inexistente(t *testing.T) {
	uc := newUseCase(newFakeStore())
	_, err := uc.GetMovement(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Borrar un movimiento elimina el registro pero NO revierte el stock.
func TestDeleteMovement_NoRevierteStock(t *testing.T) {
	store := newFakeStore(product("prod-a", "Producto A", "100"))
	uc := newUseCase(store)

	resp, err := uc.CreateMovement(context.Background(), dto.CreateMovementRequest{
		Type:    entity.MovementTypeOUT,
		Entries: []dto.MovementEntryRequest{{ProductID: "prod-a", Quantity: dec("40")}},
	}, testUserID)
	require.NoError(t, err)
	require.True(t, store.products["prod-a"].Stock.Equal(dec("60")))

	require.NoError(t, uc.DeleteMovement(context.Background(), resp.ID))
	assert.Empty(t, store.movements)
	assert.True(t, store.products["prod-a"].Stock.Equal(dec("60")),
		"el stock conserva el efecto del movimiento borrado")
}

func TestDeleteMovement_Inexistente(t *testing.T) {
	uc := newUseCase(newFakeStore())
	err := uc.DeleteMovement(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
