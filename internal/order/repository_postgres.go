package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(ctx context.Context, receipt *Receipt) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	receipt.ID = uuid.New().String()
	receipt.CreatedAt = time.Now().UTC()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, total, created_at)
		VALUES ($1, $2, $3)
	`, receipt.ID, receipt.Total, receipt.CreatedAt)
	if err != nil {
		return err
	}

	for _, item := range receipt.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_id, menu_name, unit_price, quantity)
			VALUES ($1, $2, $3, $4)
		`, receipt.ID, item.Name, item.UnitPrice, item.Quantity)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PostgresRepository) List(ctx context.Context) ([]Receipt, error) {
	rows, err := r.db.Query(ctx, `
		SELECT o.id, o.total, o.created_at,
		       COALESCE(i.menu_name, ''), COALESCE(i.unit_price, 0), COALESCE(i.quantity, 0)
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		ORDER BY o.created_at DESC, o.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		out  []Receipt
		last *Receipt
	)
	for rows.Next() {
		var (
			id, menuName     string
			total, unitPrice float64
			createdAt        time.Time
			quantity         int
		)
		if err := rows.Scan(&id, &total, &createdAt, &menuName, &unitPrice, &quantity); err != nil {
			return nil, err
		}

		if last == nil || last.ID != id {
			out = append(out, Receipt{ID: id, Total: total, CreatedAt: createdAt})
			last = &out[len(out)-1]
		}
		if menuName != "" {
			last.Items = append(last.Items, ReceiptItem{
				Name:      menuName,
				UnitPrice: unitPrice,
				Quantity:  quantity,
			})
		}
	}
	return out, rows.Err()
}
