package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"agrilink-backend/internal/apperr"
	"agrilink-backend/internal/models"
	"agrilink-backend/internal/utils"
)

// OrderService manages orders and the product stock they reserve.
// Stock moves atomically with order state: placing an order decrements the
// product quantity in the same transaction, cancelling restores it.
type OrderService struct {
	db *sql.DB
}

func NewOrderService(db *sql.DB) *OrderService {
	return &OrderService{db: db}
}

// Create places an order. The total price is fixed at the product's current
// price times the quantity, and stock is decremented with a conditional
// update so concurrent orders can never oversell.
func (s *OrderService) Create(buyerID string, req *models.OrderCreation) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperr.InvalidInput(err.Error())
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var priceStr string
	var available int
	err = tx.QueryRow("SELECT price, quantity FROM products WHERE id = ?", req.ProductID).
		Scan(&priceStr, &available)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	// Conditional decrement; zero rows affected means another order got
	// there first or stock was already short.
	result, err := tx.Exec(
		"UPDATE products SET quantity = quantity - ?, updated_at = ? WHERE id = ? AND quantity >= ?",
		req.Quantity, time.Now().UTC(), req.ProductID, req.Quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve stock: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, apperr.InsufficientStock(
			fmt.Sprintf("insufficient stock: %d available", available))
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("invalid stored price: %w", err)
	}

	now := time.Now().UTC()
	order := &models.Order{
		ID:         uuid.New().String(),
		ProductID:  req.ProductID,
		BuyerID:    buyerID,
		Quantity:   req.Quantity,
		TotalPrice: price.Mul(decimal.NewFromInt(int64(req.Quantity))),
		Status:     models.OrderStatusPending,
		SupplyChain: models.SupplyChain{
			Status:    models.SupplyChainStatusProcessing,
			UpdatedAt: now,
		},
		CreatedAt: now,
	}

	_, err = tx.Exec(`
		INSERT INTO orders (id, product_id, buyer_id, quantity, total_price, status,
			sc_status, sc_updated_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.ProductID, order.BuyerID, order.Quantity,
		order.TotalPrice.String(), order.Status,
		order.SupplyChain.Status, order.SupplyChain.UpdatedAt, order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}
	return order, nil
}

// GetByID fetches an order with its product and buyer
func (s *OrderService) GetByID(id string) (*models.Order, error) {
	row := s.db.QueryRow(orderSelect+" WHERE o.id = ?", id)
	order, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("order not found")
	}
	return order, err
}

// ListForBuyer returns the caller's own orders
func (s *OrderService) ListForBuyer(buyerID string) ([]models.Order, error) {
	return s.list(orderSelect+" WHERE o.buyer_id = ? ORDER BY o.created_at DESC", buyerID)
}

// ListAll returns every order
func (s *OrderService) ListAll() ([]models.Order, error) {
	return s.list(orderSelect + " ORDER BY o.created_at DESC")
}

func (s *OrderService) list(query string, args ...interface{}) ([]models.Order, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

// Cancel voids a pending order: the reserved stock is returned to the
// product and the order record is removed.
func (s *OrderService) Cancel(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var productID string
	var quantity int
	var status models.OrderStatus
	err = tx.QueryRow("SELECT product_id, quantity, status FROM orders WHERE id = ?", id).
		Scan(&productID, &quantity, &status)
	if err == sql.ErrNoRows {
		return apperr.NotFound("order not found")
	}
	if err != nil {
		return fmt.Errorf("failed to fetch order: %w", err)
	}

	if status != models.OrderStatusPending {
		return apperr.InvalidTransition("only pending orders can be cancelled")
	}

	_, err = tx.Exec(
		"UPDATE products SET quantity = quantity + ?, updated_at = ? WHERE id = ?",
		quantity, time.Now().UTC(), productID)
	if err != nil {
		return fmt.Errorf("failed to restore stock: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM orders WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	return tx.Commit()
}

// UpdateStatus sets the order status. Any valid status may be assigned;
// cancellation goes through Cancel so stock is restored.
func (s *OrderService) UpdateStatus(id string, status models.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, apperr.InvalidInput(fmt.Sprintf("invalid order status: %s", status))
	}

	result, err := s.db.Exec("UPDATE orders SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, apperr.NotFound("order not found")
	}

	return s.GetByID(id)
}

const orderSelect = `
	SELECT o.id, o.product_id, o.buyer_id, o.quantity, o.total_price, o.status,
	       o.sc_status, o.sc_updated_at, o.sc_driver, o.sc_vehicle, o.sc_delivery_notes,
	       o.created_at,
	       p.name, p.price, p.created_by,
	       u.name, u.email
	FROM orders o
	JOIN products p ON p.id = o.product_id
	JOIN users u ON u.id = o.buyer_id`

func scanOrder(row rowScanner) (*models.Order, error) {
	var o models.Order
	var totalPrice, productPrice string
	var productName, productOwner string
	var buyerName, buyerEmail string

	err := row.Scan(&o.ID, &o.ProductID, &o.BuyerID, &o.Quantity, &totalPrice, &o.Status,
		&o.SupplyChain.Status, &o.SupplyChain.UpdatedAt, &o.SupplyChain.Driver,
		&o.SupplyChain.Vehicle, &o.SupplyChain.DeliveryNotes, &o.CreatedAt,
		&productName, &productPrice, &productOwner,
		&buyerName, &buyerEmail)
	if err == sql.ErrNoRows {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	o.TotalPrice, err = decimal.NewFromString(totalPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid stored total price: %w", err)
	}
	price, err := decimal.NewFromString(productPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid stored price: %w", err)
	}

	o.Product = &models.Product{
		ID:        o.ProductID,
		Name:      productName,
		Price:     price,
		CreatedBy: productOwner,
	}
	o.Buyer = &models.User{ID: o.BuyerID, Name: buyerName, Email: buyerEmail}
	return &o, nil
}
