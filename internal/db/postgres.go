package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// INGREDIENTS (the ledger rows)
	// -------------------------------
	ingredientsSQL := `
		CREATE TABLE IF NOT EXISTS ingredients (
			id UUID PRIMARY KEY,
			name VARCHAR(255) UNIQUE NOT NULL,
			unit VARCHAR(50) NOT NULL DEFAULT 'unid',
			quantity DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (quantity >= 0),
			min_quantity DOUBLE PRECISION NOT NULL DEFAULT 0,
			unit_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, ingredientsSQL); err != nil {
		return err
	}

	// -------------------------------
	// MENUS + BILL OF MATERIALS
	// -------------------------------
	menusSQL := `
		CREATE TABLE IF NOT EXISTS menus (
			id UUID PRIMARY KEY,
			name VARCHAR(255) UNIQUE NOT NULL,
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			icon_url VARCHAR(500) NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, menusSQL); err != nil {
		return err
	}

	menuIngredientsSQL := `
		CREATE TABLE IF NOT EXISTS menu_ingredients (
			menu_id UUID NOT NULL REFERENCES menus(id) ON DELETE CASCADE,
			position INT NOT NULL,
			ingredient_name VARCHAR(255) NOT NULL,
			unit VARCHAR(50) NOT NULL DEFAULT 'unid',
			quantity DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (menu_id, position)
		)
	`
	if _, err := db.Exec(ctx, menuIngredientsSQL); err != nil {
		return err
	}

	// -------------------------------
	// ORDER HISTORY
	// -------------------------------
	ordersSQL := `
		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			total DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, ordersSQL); err != nil {
		return err
	}

	orderItemsSQL := `
		CREATE TABLE IF NOT EXISTS order_items (
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			menu_name VARCHAR(255) NOT NULL,
			unit_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			quantity INT NOT NULL DEFAULT 1
		)
	`
	if _, err := db.Exec(ctx, orderItemsSQL); err != nil {
		return err
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
