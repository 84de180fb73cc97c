package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/sticker-orders/internal/domain/entity"
	"github.com/tu-usuario/sticker-orders/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, user_id, items, status, notes, sales_reviewer_id, review_comment, reviewed_by, reviewed_at, created_at, updated_at`

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
// Las líneas de la orden se guardan como JSONB en la columna items.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para órdenes. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste una nueva orden.
func (r *OrderRepo) Create(order *entity.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("serializar items: %w", err)
	}
	query := `
		INSERT INTO orders (id, user_id, items, status, notes, sales_reviewer_id, review_comment, reviewed_by, reviewed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(context.Background(), query,
		order.ID, order.UserID, items, string(order.Status), order.Notes,
		order.SalesReviewerID, order.ReviewComment, order.ReviewedBy, order.ReviewedAt,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID. Devuelve (nil, nil) si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	row := r.q.QueryRow(context.Background(), `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// ListByUser lista las órdenes de un usuario, más recientes primero.
func (r *OrderRepo) ListByUser(userID string) ([]*entity.Order, error) {
	return r.list(`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

// ListAll lista todas las órdenes (cola de revisión), más recientes primero.
func (r *OrderRepo) ListAll() ([]*entity.Order, error) {
	return r.list(`SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`)
}

// ListCustomInStatuses lista órdenes con al menos una línea personalizada en
// alguno de los estados dados, más recientes primero.
func (r *OrderRepo) ListCustomInStatuses(statuses []entity.OrderStatus) ([]*entity.Order, error) {
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE status = ANY($1) AND jsonb_path_exists(items, '$[*].custom')
		ORDER BY created_at DESC`
	return r.list(query, values)
}

// SetReview fija el estado reviewed_by_sales junto con los campos de revisión,
// sin precondición de estado. Devuelve false si la orden no existe.
func (r *OrderRepo) SetReview(id string, patch repository.ReviewPatch) (bool, error) {
	query := `
		UPDATE orders
		SET status = $2, sales_reviewer_id = $3, review_comment = $4, reviewed_by = $5, reviewed_at = $6, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		id, string(entity.StatusReviewedBySales),
		patch.SalesReviewerID, patch.ReviewComment, patch.ReviewedBy, patch.ReviewedAt,
	)
	if err != nil {
		return false, fmt.Errorf("update review: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Transition avanza el estado con un único UPDATE condicional (compare-and-set):
// solo escribe si el estado actual sigue siendo from. Devuelve false si no
// coincidió; en ese caso no se mutó nada.
func (r *OrderRepo) Transition(id string, from, to entity.OrderStatus) (bool, error) {
	query := `UPDATE orders SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`
	tag, err := r.q.Exec(context.Background(), query, id, string(from), string(to))
	if err != nil {
		return false, fmt.Errorf("transition order: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *OrderRepo) list(query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, order)
	}
	return list, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var items []byte
	var status string
	if err := row.Scan(&o.ID, &o.UserID, &items, &status, &o.Notes,
		&o.SalesReviewerID, &o.ReviewComment, &o.ReviewedBy, &o.ReviewedAt,
		&o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("deserializar items: %w", err)
	}
	return &o, nil
}
