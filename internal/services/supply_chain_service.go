package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"agrilink-backend/internal/apperr"
	"agrilink-backend/internal/models"
)

// SupplyChainService tracks delivery progress embedded in orders
type SupplyChainService struct {
	db *sql.DB
}

func NewSupplyChainService(db *sql.DB) *SupplyChainService {
	return &SupplyChainService{db: db}
}

// Get returns the delivery record for an order, including the parties
// entitled to see it (the buyer and the product's farmer).
func (s *SupplyChainService) Get(orderID string) (*models.SupplyChainView, error) {
	var view models.SupplyChainView
	err := s.db.QueryRow(`
		SELECT o.id, o.buyer_id, p.created_by,
		       o.sc_status, o.sc_updated_at, o.sc_driver, o.sc_vehicle, o.sc_delivery_notes
		FROM orders o
		JOIN products p ON p.id = o.product_id
		WHERE o.id = ?`, orderID).
		Scan(&view.OrderID, &view.BuyerID, &view.FarmerID,
			&view.SupplyChain.Status, &view.SupplyChain.UpdatedAt,
			&view.SupplyChain.Driver, &view.SupplyChain.Vehicle,
			&view.SupplyChain.DeliveryNotes)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch supply chain record: %w", err)
	}
	return &view, nil
}

// Update applies a partial update to the delivery record. Any provided
// status must be a known stage; stages may be set in any sequence. The
// record's timestamp is refreshed on every update.
func (s *SupplyChainService) Update(orderID string, req *models.SupplyChainUpdate) (*models.SupplyChainView, error) {
	setClauses := []string{}
	args := []interface{}{}

	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, apperr.InvalidInput(fmt.Sprintf("invalid supply chain status: %s", *req.Status))
		}
		setClauses = append(setClauses, "sc_status = ?")
		args = append(args, *req.Status)
	}
	if req.Driver != nil {
		setClauses = append(setClauses, "sc_driver = ?")
		args = append(args, *req.Driver)
	}
	if req.Vehicle != nil {
		setClauses = append(setClauses, "sc_vehicle = ?")
		args = append(args, *req.Vehicle)
	}
	if req.DeliveryNotes != nil {
		setClauses = append(setClauses, "sc_delivery_notes = ?")
		args = append(args, *req.DeliveryNotes)
	}

	setClauses = append(setClauses, "sc_updated_at = ?")
	args = append(args, time.Now().UTC(), orderID)

	result, err := s.db.Exec(
		"UPDATE orders SET "+strings.Join(setClauses, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update supply chain record: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, apperr.NotFound("order not found")
	}

	return s.Get(orderID)
}
