package services

import (
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"agrilink-backend/database"
	"agrilink-backend/internal/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Initialize(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *sql.DB, email string, role models.UserRole) *models.User {
	t.Helper()
	user, err := NewUserService(db).Register(&models.UserRegistration{
		Name:     "Test User",
		Email:    email,
		Password: "secret123",
		Role:     string(role),
	})
	require.NoError(t, err)
	return user
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func createTestProduct(t *testing.T, db *sql.DB, ownerID, name, price string, quantity int) *models.Product {
	t.Helper()
	p, err := decimal.NewFromString(price)
	require.NoError(t, err)
	product, err := NewProductService(db).Create(ownerID, &models.ProductCreation{
		Name:        name,
		Description: "test product",
		Price:       p,
		Quantity:    quantity,
		Category:    "produce",
	})
	require.NoError(t, err)
	return product
}
