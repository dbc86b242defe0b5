package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/retail-backoffice/internal/domain/entity"
	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
// Create y Update escriben varias filas (cabecera, ítems, pagos); para que sean
// atómicos deben ejecutarse con un Querier de transacción (ver TxRunner).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste cabecera, ítems y pagos de la orden.
func (r *OrderRepo) Create(order *entity.Order) error {
	ctx := context.Background()
	query := `
		INSERT INTO orders (id, type, status, subtotal, discount, total, paid, customer_id, seller_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.Type, order.Status, order.Subtotal, order.Discount, order.Total,
		order.Paid, order.CustomerID, order.SellerID, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	if err := r.insertItems(ctx, order.ID, order.Items); err != nil {
		return err
	}
	for _, p := range order.Payments {
		if err := r.insertPayment(ctx, &p); err != nil {
			return err
		}
	}
	return nil
}

// GetByID obtiene la orden con sus ítems y pagos.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	ctx := context.Background()
	query := `
		SELECT id, type, status, subtotal, discount, total, paid, COALESCE(customer_id, ''), seller_id, created_at
		FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Type, &o.Status, &o.Subtotal, &o.Discount, &o.Total,
		&o.Paid, &o.CustomerID, &o.SellerID, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if o.Items, err = r.loadItems(ctx, id); err != nil {
		return nil, err
	}
	if o.Payments, err = r.loadPayments(ctx, id); err != nil {
		return nil, err
	}
	return &o, nil
}

// Update reemplaza la orden: actualiza cabecera y reescribe los ítems.
// Los pagos existentes no se tocan (la actualización no reaplica lógica de pago).
func (r *OrderRepo) Update(order *entity.Order) error {
	ctx := context.Background()
	query := `
		UPDATE orders
		SET status = $2, subtotal = $3, discount = $4, total = $5, paid = $6, customer_id = NULLIF($7, '')
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.Status, order.Subtotal, order.Discount, order.Total,
		order.Paid, order.CustomerID,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, order.ID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return r.insertItems(ctx, order.ID, order.Items)
}

// Delete elimina la orden con sus ítems y pagos (propiedad exclusiva).
func (r *OrderRepo) Delete(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM order_payments WHERE order_id = $1`, id); err != nil {
		return fmt.Errorf("delete order payments: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// List lista órdenes (solo cabeceras) con paginación.
func (r *OrderRepo) List(limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT id, type, status, subtotal, discount, total, paid, COALESCE(customer_id, ''), seller_id, created_at
		FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.Type, &o.Status, &o.Subtotal, &o.Discount, &o.Total, &o.Paid, &o.CustomerID, &o.SellerID, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

func (r *OrderRepo) insertItems(ctx context.Context, orderID string, items []entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, total)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, it := range items {
		if _, err := r.q.Exec(ctx, query, it.ID, orderID, it.ProductID, it.Quantity, it.UnitPrice, it.Total); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

func (r *OrderRepo) insertPayment(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO order_payments (id, order_id, amount, change, method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, p.ID, p.OrderID, p.Amount, p.Change, p.Method, p.CreatedAt); err != nil {
		return fmt.Errorf("insert order payment: %w", err)
	}
	return nil
}

func (r *OrderRepo) loadItems(ctx context.Context, orderID string) ([]entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, unit_price, total
		FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()
	var items []entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Total); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *OrderRepo) loadPayments(ctx context.Context, orderID string) ([]entity.Payment, error) {
	query := `
		SELECT id, order_id, amount, change, method, created_at
		FROM order_payments WHERE order_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order payments: %w", err)
	}
	defer rows.Close()
	var payments []entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.Amount, &p.Change, &p.Method, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
