package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Initialize opens the SQLite database and configures the connection pool
func Initialize(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Migrate creates the schema if it does not exist
func Migrate(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'farmer',
			phone TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price TEXT NOT NULL,
			quantity INTEGER NOT NULL DEFAULT 0,
			category TEXT NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			created_by TEXT NOT NULL REFERENCES users(id),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			product_id TEXT NOT NULL REFERENCES products(id),
			buyer_id TEXT NOT NULL REFERENCES users(id),
			quantity INTEGER NOT NULL,
			total_price TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			sc_status TEXT NOT NULL DEFAULT 'PROCESSING',
			sc_updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			sc_driver TEXT NOT NULL DEFAULT '',
			sc_vehicle TEXT NOT NULL DEFAULT '',
			sc_delivery_notes TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS inventory_items (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT 'OTHER',
			quantity INTEGER NOT NULL DEFAULT 0,
			unit TEXT NOT NULL DEFAULT '',
			acquired_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			expiry_date DATETIME,
			created_by TEXT NOT NULL REFERENCES users(id),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS post_comments (
			id TEXT PRIMARY KEY,
			post_id TEXT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			user_id TEXT NOT NULL REFERENCES users(id),
			text TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS post_likes (
			post_id TEXT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			user_id TEXT NOT NULL REFERENCES users(id),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (post_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS programs (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL,
			eligibility TEXT NOT NULL DEFAULT '',
			start_date DATETIME,
			end_date DATETIME,
			created_by TEXT NOT NULL REFERENCES users(id),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS program_applicants (
			program_id TEXT NOT NULL REFERENCES programs(id) ON DELETE CASCADE,
			farmer_id TEXT NOT NULL REFERENCES users(id),
			status TEXT NOT NULL DEFAULT 'APPLIED',
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (program_id, farmer_id)
		)`,
		`CREATE TABLE IF NOT EXISTS sensor_readings (
			id TEXT PRIMARY KEY,
			soil_moisture REAL NOT NULL,
			temperature REAL NOT NULL,
			humidity REAL NOT NULL,
			latitude REAL NOT NULL DEFAULT 0,
			longitude REAL NOT NULL DEFAULT 0,
			created_by TEXT NOT NULL REFERENCES users(id),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS geo_data (
			id TEXT PRIMARY KEY,
			farmer_id TEXT NOT NULL REFERENCES users(id),
			farm_name TEXT NOT NULL,
			latitude REAL NOT NULL DEFAULT 0,
			longitude REAL NOT NULL DEFAULT 0,
			soil_type TEXT NOT NULL,
			water_source TEXT NOT NULL,
			produce TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT 'GENERAL',
			is_read INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_created_by ON products(created_by)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_buyer ON orders(buyer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_product ON orders(product_id)`,
		`CREATE INDEX IF NOT EXISTS idx_inventory_owner ON inventory_items(created_by)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_post ON post_comments(post_id)`,
		`CREATE INDEX IF NOT EXISTS idx_readings_owner ON sensor_readings(created_by)`,
		`CREATE INDEX IF NOT EXISTS idx_geodata_farmer ON geo_data(farmer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
