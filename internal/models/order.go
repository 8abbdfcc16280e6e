package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents order status
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks membership in the order status enum. No transition graph is
// enforced between statuses; the admin path accepts any valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// SupplyChainStatus represents the logistics status embedded in an order
type SupplyChainStatus string

const (
	SupplyChainStatusProcessing SupplyChainStatus = "PROCESSING"
	SupplyChainStatusDispatched SupplyChainStatus = "DISPATCHED"
	SupplyChainStatusInTransit  SupplyChainStatus = "IN_TRANSIT"
	SupplyChainStatusDelivered  SupplyChainStatus = "DELIVERED"
)

func (s SupplyChainStatus) IsValid() bool {
	switch s {
	case SupplyChainStatusProcessing, SupplyChainStatusDispatched,
		SupplyChainStatusInTransit, SupplyChainStatusDelivered:
		return true
	}
	return false
}

// SupplyChain is the logistics sub-record of an order. It shares the order's
// lifecycle and is the only part of the order mutated after creation apart
// from the status field.
type SupplyChain struct {
	Status        SupplyChainStatus `json:"status" db:"sc_status"`
	UpdatedAt     time.Time         `json:"updatedAt" db:"sc_updated_at"`
	Driver        string            `json:"driver,omitempty" db:"sc_driver"`
	Vehicle       string            `json:"vehicle,omitempty" db:"sc_vehicle"`
	DeliveryNotes string            `json:"deliveryNotes,omitempty" db:"sc_delivery_notes"`
}

// Order represents a marketplace order
type Order struct {
	ID          string          `json:"id" db:"id"`
	ProductID   string          `json:"productId" db:"product_id"`
	BuyerID     string          `json:"buyerId" db:"buyer_id"`
	Quantity    int             `json:"quantity" db:"quantity"`
	TotalPrice  decimal.Decimal `json:"totalPrice" db:"total_price"`
	Status      OrderStatus     `json:"status" db:"status"`
	SupplyChain SupplyChain     `json:"supplyChain"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`

	// Joined data (populated when needed)
	Product *Product `json:"product,omitempty"`
	Buyer   *User    `json:"buyer,omitempty"`
}

// OrderCreation represents data for placing a new order
type OrderCreation struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// OrderStatusUpdate represents an admin order status change
type OrderStatusUpdate struct {
	Status OrderStatus `json:"status" validate:"required"`
}

// SupplyChainUpdate represents a partial logistics update. Provided fields
// overwrite the stored ones independently.
type SupplyChainUpdate struct {
	Status        *SupplyChainStatus `json:"status,omitempty"`
	Driver        *string            `json:"driver,omitempty"`
	Vehicle       *string            `json:"vehicle,omitempty"`
	DeliveryNotes *string            `json:"deliveryNotes,omitempty"`
}

// SupplyChainView is the supply-chain record together with the parties
// allowed to see or edit it.
type SupplyChainView struct {
	OrderID     string      `json:"orderId"`
	BuyerID     string      `json:"-"`
	FarmerID    string      `json:"-"`
	SupplyChain SupplyChain `json:"supplyChain"`
}
