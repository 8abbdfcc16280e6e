package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"agrilink-backend/internal/apperr"
	"agrilink-backend/internal/models"
)

var (
	anonymous = Actor{}
	admin     = Actor{ID: "admin-1", Role: models.UserRoleAdmin}
	farmer    = Actor{ID: "farmer-1", Role: models.UserRoleFarmer}
	buyer     = Actor{ID: "buyer-1", Role: models.UserRoleFarmer}
	stranger  = Actor{ID: "stranger-1", Role: models.UserRoleFarmer}
)

func kind(err error) apperr.Kind {
	return apperr.KindOf(err)
}

func TestAnonymousIsUnauthenticated(t *testing.T) {
	err := Decide(anonymous, ActionProductCreate, Resource{})
	assert.Equal(t, apperr.KindUnauthenticated, kind(err))

	err = Decide(anonymous, ActionOrderView, Resource{BuyerID: "buyer-1"})
	assert.Equal(t, apperr.KindUnauthenticated, kind(err))
}

func TestOwnerOrAdminGuard(t *testing.T) {
	res := Resource{OwnerID: farmer.ID}

	assert.NoError(t, Decide(farmer, ActionResourceMutate, res))
	assert.NoError(t, Decide(admin, ActionResourceMutate, res))
	assert.Equal(t, apperr.KindForbidden, kind(Decide(stranger, ActionResourceMutate, res)))
}

func TestOrderVisibility(t *testing.T) {
	res := Resource{BuyerID: buyer.ID, OwnerID: farmer.ID}

	assert.NoError(t, Decide(buyer, ActionOrderView, res))
	assert.NoError(t, Decide(admin, ActionOrderView, res))
	// The selling farmer tracks fulfillment via the supply-chain view only.
	assert.Equal(t, apperr.KindForbidden, kind(Decide(farmer, ActionOrderView, res)))
	assert.Equal(t, apperr.KindForbidden, kind(Decide(stranger, ActionOrderView, res)))
}

func TestOrderCancelOnlyBuyerOrAdmin(t *testing.T) {
	res := Resource{BuyerID: buyer.ID, OwnerID: farmer.ID}

	assert.NoError(t, Decide(buyer, ActionOrderCancel, res))
	assert.NoError(t, Decide(admin, ActionOrderCancel, res))
	// The farmer sees the order but cannot cancel it.
	assert.Equal(t, apperr.KindForbidden, kind(Decide(farmer, ActionOrderCancel, res)))
}

func TestSupplyChainUpdateOnlyFarmerOrAdmin(t *testing.T) {
	res := Resource{BuyerID: buyer.ID, OwnerID: farmer.ID}

	assert.NoError(t, Decide(farmer, ActionSupplyChainUpdate, res))
	assert.NoError(t, Decide(admin, ActionSupplyChainUpdate, res))
	// The buyer may watch progress but not write it.
	assert.NoError(t, Decide(buyer, ActionSupplyChainView, res))
	assert.Equal(t, apperr.KindForbidden, kind(Decide(buyer, ActionSupplyChainUpdate, res)))
}

func TestAdminOnlyActions(t *testing.T) {
	for _, action := range []Action{
		ActionOrderSetStatus,
		ActionProgramManage,
		ActionNotificationSend,
		ActionGeoDataListAll,
		ActionUserList,
	} {
		assert.NoError(t, Decide(admin, action, Resource{}), string(action))
		assert.Equal(t, apperr.KindForbidden, kind(Decide(farmer, action, Resource{})), string(action))
	}
}

func TestProgramApplyFarmersOnly(t *testing.T) {
	assert.NoError(t, Decide(farmer, ActionProgramApply, Resource{}))
	assert.Equal(t, apperr.KindForbidden, kind(Decide(admin, ActionProgramApply, Resource{})))
}

func TestProductCreateRoles(t *testing.T) {
	assert.NoError(t, Decide(farmer, ActionProductCreate, Resource{}))
	assert.NoError(t, Decide(admin, ActionProductCreate, Resource{}))

	unknown := Actor{ID: "x", Role: "tech"}
	assert.Equal(t, apperr.KindForbidden, kind(Decide(unknown, ActionProductCreate, Resource{})))
}
