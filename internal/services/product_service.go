package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"agrilink-backend/internal/apperr"
	"agrilink-backend/internal/models"
	"agrilink-backend/internal/utils"
)

// ProductService manages marketplace product listings
type ProductService struct {
	db *sql.DB
}

func NewProductService(db *sql.DB) *ProductService {
	return &ProductService{db: db}
}

// Create lists a new product owned by the caller
func (s *ProductService) Create(creatorID string, req *models.ProductCreation) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperr.InvalidInput(err.Error())
	}
	if req.Price.LessThanOrEqual(decimal.Zero) {
		return nil, apperr.InvalidInput("price must be greater than zero")
	}
	if req.Quantity < 0 {
		return nil, apperr.InvalidInput("quantity cannot be negative")
	}

	now := time.Now().UTC()
	product := &models.Product{
		ID:          uuid.New().String(),
		Name:        utils.SanitizeString(req.Name),
		Description: utils.SanitizeString(req.Description),
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    utils.SanitizeString(req.Category),
		Image:       req.Image,
		CreatedBy:   creatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := s.db.Exec(`
		INSERT INTO products (id, name, description, price, quantity, category, image, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID, product.Name, product.Description, product.Price.String(),
		product.Quantity, product.Category, product.Image, product.CreatedBy,
		product.CreatedAt, product.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// GetByID fetches a single product with its creator
func (s *ProductService) GetByID(id string) (*models.Product, error) {
	row := s.db.QueryRow(`
		SELECT p.id, p.name, p.description, p.price, p.quantity, p.category, p.image,
		       p.created_by, p.created_at, p.updated_at, u.name, u.email
		FROM products p
		JOIN users u ON u.id = p.created_by
		WHERE p.id = ?`, id)

	return scanProductWithCreator(row)
}

// List returns all product listings, optionally filtered by category
func (s *ProductService) List(category string) ([]models.Product, error) {
	query := `
		SELECT p.id, p.name, p.description, p.price, p.quantity, p.category, p.image,
		       p.created_by, p.created_at, p.updated_at, u.name, u.email
		FROM products p
		JOIN users u ON u.id = p.created_by`
	args := []interface{}{}
	if category != "" {
		query += " WHERE p.category = ?"
		args = append(args, category)
	}
	query += " ORDER BY p.created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProductRowWithCreator(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// ListByOwner returns the caller's own listings
func (s *ProductService) ListByOwner(ownerID string) ([]models.Product, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.name, p.description, p.price, p.quantity, p.category, p.image,
		       p.created_by, p.created_at, p.updated_at, u.name, u.email
		FROM products p
		JOIN users u ON u.id = p.created_by
		WHERE p.created_by = ?
		ORDER BY p.created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProductRowWithCreator(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// Update applies the provided fields to a product
func (s *ProductService) Update(id string, req *models.ProductUpdate) (*models.Product, error) {
	setClauses := []string{}
	args := []interface{}{}

	if req.Name != nil {
		setClauses = append(setClauses, "name = ?")
		args = append(args, utils.SanitizeString(*req.Name))
	}
	if req.Description != nil {
		setClauses = append(setClauses, "description = ?")
		args = append(args, utils.SanitizeString(*req.Description))
	}
	if req.Price != nil {
		if req.Price.LessThanOrEqual(decimal.Zero) {
			return nil, apperr.InvalidInput("price must be greater than zero")
		}
		setClauses = append(setClauses, "price = ?")
		args = append(args, req.Price.String())
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, apperr.InvalidInput("quantity cannot be negative")
		}
		setClauses = append(setClauses, "quantity = ?")
		args = append(args, *req.Quantity)
	}
	if req.Category != nil {
		setClauses = append(setClauses, "category = ?")
		args = append(args, utils.SanitizeString(*req.Category))
	}
	if req.Image != nil {
		setClauses = append(setClauses, "image = ?")
		args = append(args, *req.Image)
	}

	if len(setClauses) == 0 {
		return s.GetByID(id)
	}

	setClauses = append(setClauses, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	result, err := s.db.Exec(
		"UPDATE products SET "+strings.Join(setClauses, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, apperr.NotFound("product not found")
	}

	return s.GetByID(id)
}

// Delete removes a product listing. Products with orders on record stay,
// since order rows reference them.
func (s *ProductService) Delete(id string) error {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(1) FROM orders WHERE product_id = ?", id).Scan(&n); err != nil {
		return fmt.Errorf("failed to check product orders: %w", err)
	}
	if n > 0 {
		return apperr.Conflict("product has orders on record and cannot be removed")
	}

	result, err := s.db.Exec("DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperr.NotFound("product not found")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProductWithCreator(row *sql.Row) (*models.Product, error) {
	p, err := scanProductRowWithCreator(row)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("product not found")
	}
	return p, err
}

func scanProductRowWithCreator(row rowScanner) (*models.Product, error) {
	var p models.Product
	var price string
	var creatorName, creatorEmail string
	err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &p.Quantity,
		&p.Category, &p.Image, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
		&creatorName, &creatorEmail)
	if err == sql.ErrNoRows {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	p.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("invalid stored price: %w", err)
	}
	p.Creator = &models.User{ID: p.CreatedBy, Name: creatorName, Email: creatorEmail}
	return &p, nil
}
