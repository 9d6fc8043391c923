package postgres

import (
	"context"
	"database/sql"
)

// schema is applied at startup and by cmd/seed. Statements are idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username VARCHAR(50) UNIQUE NOT NULL,
		email VARCHAR(100) UNIQUE,
		hashed_password VARCHAR(100) NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) UNIQUE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS materials (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) UNIQUE NOT NULL,
		type VARCHAR(20) NOT NULL DEFAULT 'regular',
		unit VARCHAR(10) NOT NULL DEFAULT 'kg',
		processing_ratio DOUBLE PRECISION NOT NULL DEFAULT 1.0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS blend_components (
		id SERIAL PRIMARY KEY,
		blend_id INTEGER NOT NULL REFERENCES materials(id) ON DELETE CASCADE,
		component_id INTEGER NOT NULL REFERENCES materials(id) ON DELETE CASCADE,
		ratio DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_blend_components_blend_id ON blend_components(blend_id)`,
	`CREATE TABLE IF NOT EXISTS material_purchases (
		id SERIAL PRIMARY KEY,
		material_id INTEGER NOT NULL REFERENCES materials(id) ON DELETE CASCADE,
		material_name VARCHAR(100) NOT NULL,
		quantity_kg DOUBLE PRECISION NOT NULL,
		price_per_kg DOUBLE PRECISION NOT NULL,
		total_price DOUBLE PRECISION NOT NULL,
		purchase_date TIMESTAMPTZ NOT NULL,
		supplier VARCHAR(100),
		note VARCHAR(500),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_material_purchases_material_date
		ON material_purchases(material_id, purchase_date)`,
	`CREATE TABLE IF NOT EXISTS inventory (
		id SERIAL PRIMARY KEY,
		material_id INTEGER UNIQUE NOT NULL REFERENCES materials(id) ON DELETE CASCADE,
		quantity DOUBLE PRECISION NOT NULL DEFAULT 0,
		safety_stock DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id SERIAL PRIMARY KEY,
		customer_name VARCHAR(100) NOT NULL REFERENCES customers(name) ON DELETE CASCADE,
		material_id INTEGER NOT NULL REFERENCES materials(id),
		material_name VARCHAR(100) NOT NULL,
		quantity DOUBLE PRECISION NOT NULL,
		price_per_kg DOUBLE PRECISION NOT NULL,
		total_price DOUBLE PRECISION NOT NULL,
		order_date TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_order_date ON orders(order_date)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_customer_name ON orders(customer_name)`,
	`CREATE TABLE IF NOT EXISTS order_requirements (
		id SERIAL PRIMARY KEY,
		order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		material_id INTEGER NOT NULL REFERENCES materials(id) ON DELETE CASCADE,
		quantity DOUBLE PRECISION NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_order_requirements_order_id ON order_requirements(order_id)`,
}

// EnsureSchema creates all tables required by the API.
func (db *DB) EnsureSchema(ctx context.Context) error {
	return ApplySchema(ctx, db.DB.DB)
}

// ApplySchema runs the DDL against a plain sql.DB, for CLI tools that connect
// by URL instead of through the pool wrapper.
func ApplySchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
