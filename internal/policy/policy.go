package policy

import (
	"agrilink-backend/internal/apperr"
	"agrilink-backend/internal/models"
)

// Actor is the authenticated (or anonymous) caller of an operation.
// An empty ID means the request carried no valid credentials.
type Actor struct {
	ID   string
	Role models.UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.UserRoleAdmin
}

// Action identifies an operation subject to an access rule
type Action string

const (
	ActionProductCreate     Action = "product:create"
	ActionSensorCreate      Action = "sensor:create"
	ActionResourceMutate    Action = "resource:mutate"
	ActionOrderView         Action = "order:view"
	ActionOrderCancel       Action = "order:cancel"
	ActionOrderSetStatus    Action = "order:set-status"
	ActionSupplyChainView   Action = "supplychain:view"
	ActionSupplyChainUpdate Action = "supplychain:update"
	ActionProgramManage     Action = "program:manage"
	ActionProgramApply      Action = "program:apply"
	ActionNotificationSend  Action = "notification:send"
	ActionGeoDataListAll    Action = "geodata:list-all"
	ActionUserList          Action = "user:list"
	ActionUserView          Action = "user:view"
)

// Resource carries the ownership facts an access decision depends on.
// Fields irrelevant to the action are left zero.
type Resource struct {
	OwnerID string
	BuyerID string
	State   string
}

// Decide applies the access rule for the action and returns nil when the
// actor is allowed. Denials are apperr values the HTTP layer maps directly:
// missing identity yields 401, an identified but unqualified actor 403.
func Decide(actor Actor, action Action, res Resource) error {
	if actor.ID == "" {
		return apperr.Unauthenticated("authentication required")
	}

	switch action {
	case ActionProductCreate, ActionSensorCreate:
		if actor.Role != models.UserRoleFarmer && !actor.IsAdmin() {
			return apperr.Forbidden("only farmers can perform this action")
		}
		return nil

	case ActionResourceMutate:
		return ownerOrAdmin(actor, res.OwnerID)

	case ActionOrderView:
		// The buyer or an admin. The farmer follows fulfillment through
		// the supply-chain record, not the order itself.
		if actor.IsAdmin() || actor.ID == res.BuyerID {
			return nil
		}
		return apperr.Forbidden("you do not have access to this order")

	case ActionOrderCancel:
		if actor.IsAdmin() || actor.ID == res.BuyerID {
			return nil
		}
		return apperr.Forbidden("only the buyer can cancel this order")

	case ActionOrderSetStatus, ActionProgramManage, ActionNotificationSend,
		ActionGeoDataListAll, ActionUserList:
		if !actor.IsAdmin() {
			return apperr.Forbidden("admin access required")
		}
		return nil

	case ActionSupplyChainView:
		if actor.IsAdmin() || actor.ID == res.BuyerID || actor.ID == res.OwnerID {
			return nil
		}
		return apperr.Forbidden("you do not have access to this order")

	case ActionSupplyChainUpdate:
		// The farmer fulfilling the order, or an admin.
		if actor.IsAdmin() || actor.ID == res.OwnerID {
			return nil
		}
		return apperr.Forbidden("only the seller can update delivery progress")

	case ActionProgramApply:
		if actor.Role != models.UserRoleFarmer {
			return apperr.Forbidden("only farmers can apply to programs")
		}
		return nil

	case ActionUserView:
		return ownerOrAdmin(actor, res.OwnerID)
	}

	return apperr.Forbidden("action not permitted")
}

// OwnerOrAdmin is the common mutation guard: the record's owner or an admin.
func OwnerOrAdmin(actor Actor, ownerID string) error {
	if actor.ID == "" {
		return apperr.Unauthenticated("authentication required")
	}
	return ownerOrAdmin(actor, ownerID)
}

func ownerOrAdmin(actor Actor, ownerID string) error {
	if actor.IsAdmin() || actor.ID == ownerID {
		return nil
	}
	return apperr.Forbidden("you do not own this resource")
}
