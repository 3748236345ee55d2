package menu

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"comanda/internal/inventory"
)

var ErrNotFound = errors.New("menu not found")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]Recipe, error) {
	rows, err := r.db.Query(ctx, `
		SELECT m.id, m.name, m.price, COALESCE(m.icon_url, ''),
		       COALESCE(i.ingredient_name, ''), COALESCE(i.unit, ''), COALESCE(i.quantity, 0)
		FROM menus m
		LEFT JOIN menu_ingredients i ON i.menu_id = m.id
		ORDER BY m.name, i.position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		out  []Recipe
		last *Recipe
	)
	for rows.Next() {
		var (
			id, name, iconURL, ingName, unit string
			price, quantity                  float64
		)
		if err := rows.Scan(&id, &name, &price, &iconURL, &ingName, &unit, &quantity); err != nil {
			return nil, err
		}

		if last == nil || last.ID != id {
			out = append(out, Recipe{ID: id, Name: name, Price: price, IconURL: iconURL, Quantity: 1})
			last = &out[len(out)-1]
		}
		if ingName != "" {
			last.Ingredients = append(last.Ingredients, inventory.Ingredient{
				Name:     ingName,
				Unit:     unit,
				Quantity: quantity,
			})
		}
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*Recipe, error) {
	recipe := Recipe{Quantity: 1}

	err := r.db.QueryRow(ctx, `
		SELECT id, name, price, COALESCE(icon_url, '')
		FROM menus
		WHERE lower(name) = lower($1)
	`, name).Scan(&recipe.ID, &recipe.Name, &recipe.Price, &recipe.IconURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT ingredient_name, unit, quantity
		FROM menu_ingredients
		WHERE menu_id = $1
		ORDER BY position
	`, recipe.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ing inventory.Ingredient
		if err := rows.Scan(&ing.Name, &ing.Unit, &ing.Quantity); err != nil {
			return nil, err
		}
		recipe.Ingredients = append(recipe.Ingredients, ing)
	}
	return &recipe, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, recipe *Recipe) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	recipe.ID = uuid.New().String()
	_, err = tx.Exec(ctx, `
		INSERT INTO menus (id, name, price, icon_url)
		VALUES ($1, $2, $3, NULLIF($4, ''))
	`, recipe.ID, recipe.Name, recipe.Price, recipe.IconURL)
	if err != nil {
		return err
	}

	for pos, ing := range recipe.Ingredients {
		_, err = tx.Exec(ctx, `
			INSERT INTO menu_ingredients (menu_id, position, ingredient_name, unit, quantity)
			VALUES ($1, $2, $3, $4, $5)
		`, recipe.ID, pos, ing.Name, ing.Unit, ing.Quantity)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PostgresRepository) Delete(ctx context.Context, name string) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM menus
		WHERE lower(name) = lower($1)
	`, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetIconURL(ctx context.Context, name string, url string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE menus
		SET icon_url = $1
		WHERE lower(name) = lower($2)
	`, url, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
