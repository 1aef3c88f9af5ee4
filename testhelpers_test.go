package shop_test

import (
	"context"
	"database/sql"
	"testing"

	shop "github.com/garageworks/shop-manager"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

var testSchema = []string{
	`CREATE TABLE auth_users (
		id TEXT NOT NULL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE users (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES auth_users(id) ON DELETE CASCADE,
		email TEXT NOT NULL,
		full_name TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('admin', 'mechanic')),
		phone TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE customers (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		phone TEXT NOT NULL,
		address TEXT,
		notes TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE vehicles (
		id TEXT NOT NULL PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		make TEXT NOT NULL,
		model TEXT NOT NULL,
		year INTEGER NOT NULL,
		license_plate TEXT,
		vin TEXT,
		color TEXT,
		notes TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE inventory (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		sku TEXT NOT NULL UNIQUE,
		description TEXT,
		stock_quantity INTEGER DEFAULT 0,
		min_stock_level INTEGER DEFAULT 10,
		unit_price DECIMAL(10,2) DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE work_orders (
		id TEXT NOT NULL PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES customers(id),
		vehicle_id TEXT NOT NULL REFERENCES vehicles(id),
		assigned_to TEXT REFERENCES users(id),
		title TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		priority TEXT DEFAULT 'medium',
		estimated_hours DECIMAL(4,2) DEFAULT 0,
		actual_hours DECIMAL(4,2) DEFAULT 0,
		labor_rate DECIMAL(6,2) DEFAULT 75.00,
		estimated_completion TIMESTAMP,
		completed_at TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE work_order_items (
		id TEXT NOT NULL PRIMARY KEY,
		work_order_id TEXT REFERENCES work_orders(id) ON DELETE CASCADE,
		inventory_id TEXT REFERENCES inventory(id),
		quantity INTEGER NOT NULL DEFAULT 1,
		unit_price DECIMAL(10,2) NOT NULL,
		total_price DECIMAL(10,2) GENERATED ALWAYS AS (quantity * unit_price) STORED,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE appointments (
		id TEXT NOT NULL PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES customers(id),
		vehicle_id TEXT NOT NULL REFERENCES vehicles(id),
		assigned_to TEXT REFERENCES users(id),
		title TEXT NOT NULL,
		description TEXT,
		appointment_date TIMESTAMP NOT NULL,
		duration_minutes INTEGER DEFAULT 60,
		status TEXT DEFAULT 'scheduled',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE invoices (
		id TEXT NOT NULL PRIMARY KEY,
		work_order_id TEXT NOT NULL REFERENCES work_orders(id),
		customer_id TEXT NOT NULL REFERENCES customers(id),
		invoice_number TEXT NOT NULL UNIQUE,
		subtotal DECIMAL(10,2) DEFAULT 0,
		tax_rate DECIMAL(4,2) DEFAULT 8.25,
		tax_amount DECIMAL(10,2) DEFAULT 0,
		total_amount DECIMAL(10,2) DEFAULT 0,
		status TEXT DEFAULT 'draft',
		issued_date TIMESTAMP,
		due_date TIMESTAMP,
		paid_date TIMESTAMP,
		notes TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`,
}

func setupTestRepo(t *testing.T) shop.RepositoryManager {
	t.Helper()

	repo, _ := setupTestRepoDB(t)
	return repo
}

func setupTestRepoDB(t *testing.T) (shop.RepositoryManager, *bun.DB) {
	t.Helper()

	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	bunDB := bun.NewDB(db, sqlitedialect.New())

	_, err = bunDB.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	for _, ddl := range testSchema {
		_, err = bunDB.Exec(ddl)
		require.NoError(t, err)
	}

	t.Cleanup(func() {
		_ = bunDB.Close()
		_ = db.Close()
	})

	return shop.NewRepositoryManager(bunDB), bunDB
}

func createTestCustomer(t *testing.T, repo shop.RepositoryManager, name string) *shop.Customer {
	t.Helper()

	record, err := repo.Customers().Create(context.Background(), &shop.Customer{
		Name:  name,
		Phone: "(555) 111-2222",
	})
	require.NoError(t, err)
	return record
}

func createTestVehicle(t *testing.T, repo shop.RepositoryManager, customer *shop.Customer) *shop.Vehicle {
	t.Helper()

	record, err := repo.Vehicles().Create(context.Background(), &shop.Vehicle{
		CustomerID: customer.ID,
		Make:       "Toyota",
		Model:      "Camry",
		Year:       2020,
	})
	require.NoError(t, err)
	return record
}

func registerTestUser(t *testing.T, repo shop.RepositoryManager, email, password, role string) {
	t.Helper()

	handler := shop.NewRegisterUserHandler(repo)
	err := handler.Execute(context.Background(), shop.RegisterUserMessage{
		Email:    email,
		Password: password,
		FullName: "Test User",
		Role:     role,
	})
	require.NoError(t, err)
}
