package orders

import (
	"context"

	"github.com/tu-usuario/retail-backoffice/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de órdenes atado a esa tx. Garantiza que cabecera, ítems y pagos
// se escriban como una unidad.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error
}
