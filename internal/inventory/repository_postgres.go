package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// execer covers both the pool and an open transaction.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (r *PostgresRepository) List(ctx context.Context) ([]Ingredient, error) {
	rows, err := r.db.Query(ctx, `
		SELECT name, unit, quantity, min_quantity, unit_price
		FROM ingredients
		WHERE active = TRUE
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Ingredient
	for rows.Next() {
		var ing Ingredient
		if err := rows.Scan(&ing.Name, &ing.Unit, &ing.Quantity, &ing.MinQuantity, &ing.UnitPrice); err != nil {
			return nil, err
		}
		out = append(out, ing)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Upsert(ctx context.Context, ing Ingredient) error {
	return upsertRow(ctx, r.db, ing)
}

func (r *PostgresRepository) SetQuantity(ctx context.Context, name string, quantity float64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE ingredients
		SET quantity = $1, updated_at = now()
		WHERE name = $2
	`, quantity, NormalizeName(name))
	return err
}

func (r *PostgresRepository) Delete(ctx context.Context, name string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE ingredients
		SET active = FALSE, updated_at = now()
		WHERE name = $1
	`, NormalizeName(name))
	return err
}

// SaveAll writes the whole batch inside one transaction so a failed
// import commit leaves the table untouched.
func (r *PostgresRepository) SaveAll(ctx context.Context, batch []Ingredient) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, ing := range batch {
		if err := upsertRow(ctx, tx, ing); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func upsertRow(ctx context.Context, db execer, ing Ingredient) error {
	_, err := db.Exec(ctx, `
		INSERT INTO ingredients (id, name, unit, quantity, min_quantity, unit_price, active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		ON CONFLICT (name) DO UPDATE
		SET unit = EXCLUDED.unit,
		    quantity = EXCLUDED.quantity,
		    min_quantity = EXCLUDED.min_quantity,
		    unit_price = EXCLUDED.unit_price,
		    active = TRUE,
		    updated_at = now()
	`, uuid.New().String(), NormalizeName(ing.Name), NormalizeUnit(ing.Unit),
		ing.Quantity, ing.MinQuantity, ing.UnitPrice)
	return err
}
