package orders_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-backoffice/internal/application/dto"
	"github.com/tu-usuario/retail-backoffice/internal/application/orders"
	"github.com/tu-usuario/retail-backoffice/internal/domain"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
)

const (
	testSellerID   = "00000000-0000-0000-0000-00000000000a"
	testCustomerID = "00000000-0000-0000-0000-00000000000b"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// installmentRequest arma un request a crédito válido: 1 ítem de 100.00.
func installmentRequest() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		Type:       entity.OrderTypeInstallment,
		CustomerID: testCustomerID,
		Items: []dto.OrderItemRequest{
			{ProductID: "prod-1", Quantity: dec("2"), UnitPrice: dec("50.00"), Total: dec("100.00")},
		},
		Subtotal: dec("100.00"),
		Discount: decimal.Zero,
	}
}

func newService(orderRepo *fakeOrderRepo, customerRepo *fakeCustomerRepo) *orders.Service {
	return orders.NewService(&fakeOrderTxRunner{orderRepo: orderRepo}, orderRepo, customerRepo)
}

func customerWithBalance(balance string) *entity.Customer {
	return &entity.Customer{ID: testCustomerID, Name: "Cliente Test", Balance: dec(balance)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación de órdenes a crédito
// ──────────────────────────────────────────────────────────────────────────────

func TestInstallment_CreacionBasica(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	svc := newService(orderRepo, newFakeCustomerRepo(customerWithBalance("0")))

	resp, err := svc.CreateOrder(context.Background(), installmentRequest(), testSellerID)
	require.NoError(t, err)

	// La orden nace abierta, sin pagar y sin pagos.
	assert.Equal(t, entity.OrderTypeInstallment, resp.Type)
	assert.Equal(t, entity.OrderStatusOpen, resp.Status)
	assert.False(t, resp.Paid)
	assert.Empty(t, resp.Payments)
	assert.True(t, resp.Total.Equal(dec("100.00")), "total = %s", resp.Total)
	assert.Equal(t, testSellerID, resp.SellerID)

	// Y quedó persistida.
	stored, _ := orderRepo.GetByID(resp.ID)
	require.NotNil(t, stored)
	assert.Len(t, stored.Items, 1)
}

func TestInstallment_SinCliente_Retorna_ErrInvalidOrder(t *testing.T) {
	svc := newService(newFakeOrderRepo(), newFakeCustomerRepo())

	in := installmentRequest()
	in.CustomerID = ""
	_, err := svc.CreateOrder(context.Background(), in, testSellerID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidOrder)
	assert.Contains(t, err.Error(), "requires a customer")
}

func TestInstallment_ClienteInexistente_Retorna_ErrNotFound(t *testing.T) {
	svc := newService(newFakeOrderRepo(), newFakeCustomerRepo()) // sin clientes

	_, err := svc.CreateOrder(context.Background(), installmentRequest(), testSellerID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Las órdenes a crédito nacen sin pagar: pagos entrantes se rechazan, no se ignoran.
func TestInstallment_ConPagos_Retorna_ErrInvalidOrder(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	svc := newService(orderRepo, newFakeCustomerRepo(customerWithBalance("0")))

	in := installmentRequest()
	in.Payments = []dto.PaymentRequest{{Amount: dec("100.00"), Method: entity.PaymentMethodCash}}
	_, err := svc.CreateOrder(context.Background(), in, testSellerID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidOrder)
	assert.Empty(t, orderRepo.orders, "no debe persistirse nada")
}

func TestInstallment_ItemsInvalidos_NoPersisteNada(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	svc := newService(orderRepo, newFakeCustomerRepo(customerWithBalance("0")))

	in := installmentRequest()
	in.Items[0].Total = dec("99.00") // no coincide con qty*unitPrice
	_, err := svc.CreateOrder(context.Background(), in, testSellerID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidOrder)
	assert.Empty(t, orderRepo.orders)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consumo de saldo a favor
// ──────────────────────────────────────────────────────────────────────────────

// Saldo menor al total: se aplica todo el saldo, la orden sigue sin pagar.
func TestInstallment_SaldoParcial(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	customerRepo := newFakeCustomerRepo(customerWithBalance("80.00"))
	svc := newService(orderRepo, customerRepo)

	in := installmentRequest() // total 100.00
	in.UseBalance = true
	resp, err := svc.CreateOrder(context.Background(), in, testSellerID)
	require.NoError(t, err)

	// Pago sintético CASH por 80.00, sin vueltas.
	require.Len(t, resp.Payments, 1)
	p := resp.Payments[0]
	assert.True(t, p.Amount.Equal(dec("80.00")), "amount = %s", p.Amount)
	assert.True(t, p.Change.IsZero(), "change = %s", p.Change)
	assert.Equal(t, entity.PaymentMethodCash, p.Method)

	// El total no cambia y la orden sigue sin pagar (el pago es abono parcial).
	assert.True(t, resp.Total.Equal(dec("100.00")))
	assert.False(t, resp.Paid)

	// El saldo quedó en cero.
	c, _ := customerRepo.GetByID(testCustomerID)
	assert.True(t, c.Balance.IsZero(), "balance = %s", c.Balance)
}

// Saldo mayor al total: se aplica solo el total, el resto del saldo se conserva.
func TestInstallment_SaldoMayorAlTotal(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	customerRepo := newFakeCustomerRepo(customerWithBalance("150.00"))
	svc := newService(orderRepo, customerRepo)

	in := installmentRequest() // total 100.00
	in.UseBalance = true
	resp, err := svc.CreateOrder(context.Background(), in, testSellerID)
	require.NoError(t, err)

	require.Len(t, resp.Payments, 1)
	assert.True(t, resp.Payments[0].Amount.Equal(dec("100.00")))

	c, _ := customerRepo.GetByID(testCustomerID)
	assert.True(t, c.Balance.Equal(dec("50.00")), "balance = %s", c.Balance)
}

// Sin UseBalance el saldo no se toca aunque exista.
func TestInstallment_SinUseBalance_NoTocaSaldo(t *testing.T) {
	customerRepo := newFakeCustomerRepo(customerWithBalance("80.00"))
	svc := newService(newFakeOrderRepo(), customerRepo)

	resp, err := svc.CreateOrder(context.Background(), installmentRequest(), testSellerID)
	require.NoError(t, err)
	assert.Empty(t, resp.Payments)

	c, _ := customerRepo.GetByID(testCustomerID)
	assert.True(t, c.Balance.Equal(dec("80.00")))
}

// UseBalance con saldo cero: no se genera pago sintético.
func TestInstallment_UseBalanceConSaldoCero(t *testing.T) {
	customerRepo := newFakeCustomerRepo(customerWithBalance("0"))
	svc := newService(newFakeOrderRepo(), customerRepo)

	in := installmentRequest()
	in.UseBalance = true
	resp, err := svc.CreateOrder(context.Background(), in, testSellerID)
	require.NoError(t, err)
	assert.Empty(t, resp.Payments)
}

// Si la escritura de la orden falla, el saldo no debe descontarse.
func TestInstallment_FalloDeOrden_NoDescuentaSaldo(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	orderRepo.createErr = errors.New("db down")
	customerRepo := newFakeCustomerRepo(customerWithBalance("80.00"))
	svc := newService(orderRepo, customerRepo)

	in := installmentRequest()
	in.UseBalance = true
	_, err := svc.CreateOrder(context.Background(), in, testSellerID)
	require.Error(t, err)

	c, _ := customerRepo.GetByID(testCustomerID)
	assert.True(t, c.Balance.Equal(dec("80.00")), "el saldo no debe tocarse si la orden no se escribió")
}

// Si el descuento de saldo falla, la orden ya quedó persistida y el error lo
// dice explícitamente (escrituras separadas; ver DESIGN.md).
func TestInstallment_FalloDeSaldo_OrdenQuedaPersistida(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	customerRepo := newFakeCustomerRepo(customerWithBalance("80.00"))
	customerRepo.balanceErr = errors.New("db down")
	svc := newService(orderRepo, customerRepo)

	in := installmentRequest()
	in.UseBalance = true
	_, err := svc.CreateOrder(context.Background(), in, testSellerID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persisted but balance deduction failed")
	assert.Len(t, orderRepo.orders, 1, "la orden debe quedar persistida")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestInstallment_Update_ReemplazaItemsYMontos(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	customerRepo := newFakeCustomerRepo(customerWithBalance("0"))
	svc := newService(orderRepo, customerRepo)

	created, err := svc.CreateOrder(context.Background(), installmentRequest(), testSellerID)
	require.NoError(t, err)

	upd := dto.UpdateOrderRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: "prod-2", Quantity: dec("1"), UnitPrice: dec("40.00"), Total: dec("40.00")},
		},
		Subtotal: dec("40.00"),
		Discount: dec("10"),
	}
	resp, err := svc.UpdateOrder(context.Background(), created.ID, upd)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderTypeInstallment, resp.Type, "el tipo nunca cambia")
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "prod-2", resp.Items[0].ProductID)
	assert.True(t, resp.Total.Equal(dec("36.00")), "total = %s", resp.Total)
	assert.Equal(t, testSellerID, resp.SellerID, "el vendedor original se conserva")
}

func TestInstallment_Update_OrdenInexistente(t *testing.T) {
	svc := newService(newFakeOrderRepo(), newFakeCustomerRepo())
	_, err := svc.UpdateOrder(context.Background(), "no-existe", dto.UpdateOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Delete elimina la orden pero NO restituye el saldo consumido al crearla.
func TestInstallment_Delete_NoRestituyeSaldo(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	customerRepo := newFakeCustomerRepo(customerWithBalance("80.00"))
	svc := newService(orderRepo, customerRepo)

	in := installmentRequest()
	in.UseBalance = true
	created, err := svc.CreateOrder(context.Background(), in, testSellerID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOrder(context.Background(), created.ID))
	assert.Empty(t, orderRepo.orders)

	c, _ := customerRepo.GetByID(testCustomerID)
	assert.True(t, c.Balance.IsZero(), "el saldo consumido no se restituye")
}

func TestInstallment_Delete_OrdenInexistente(t *testing.T) {
	svc := newService(newFakeOrderRepo(), newFakeCustomerRepo())
	err := svc.DeleteOrder(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
