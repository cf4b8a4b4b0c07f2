package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainErrors "github.com/polkiloo/webstudio/internal/domain/errors"
	"github.com/polkiloo/webstudio/internal/domain/model"
)

func TestCheckRuleTable(t *testing.T) {
	owner := model.Actor{UserID: "u1", Role: model.RoleCustomer}
	other := model.Actor{UserID: "u2", Role: model.RoleCustomer}
	admin := model.Actor{UserID: "a1", Role: model.RoleAdmin}

	cases := []struct {
		action Action
		owner  bool
		other  bool
		admin  bool
	}{
		{ActionCreateOrder, true, false, false},
		{ActionReadOrder, true, false, true},
		{ActionListOrders, true, false, true},
		{ActionEditOrderDetails, true, false, false},
		{ActionAttachPayment, true, false, false},
		{ActionTransition, false, false, true},
		{ActionSetDelivery, false, false, true},
		{ActionReadNotifications, true, false, false},
		{ActionMarkRead, true, false, false},
		{ActionAnnounce, false, false, true},
	}

	for _, tc := range cases {
		t.Run(string(tc.action), func(t *testing.T) {
			ownerID := "u1"
			if tc.action == ActionCreateOrder {
				assert.NoError(t, Check(tc.action, owner, owner.UserID))
				assert.ErrorIs(t, Check(tc.action, admin, admin.UserID), domainErrors.ErrForbidden)
				return
			}
			check := func(actor model.Actor, allowed bool) {
				err := Check(tc.action, actor, ownerID)
				if allowed {
					assert.NoError(t, err, "actor %s", actor.UserID)
				} else {
					assert.ErrorIs(t, err, domainErrors.ErrForbidden, "actor %s", actor.UserID)
				}
			}
			check(owner, tc.owner)
			check(other, tc.other)
			check(admin, tc.admin)
		})
	}
}

func TestCheckAdminOwnNotifications(t *testing.T) {
	admin := model.Actor{UserID: "a1", Role: model.RoleAdmin}
	assert.NoError(t, Check(ActionReadNotifications, admin, "a1"))
	assert.NoError(t, Check(ActionMarkRead, admin, "a1"))
	assert.ErrorIs(t, Check(ActionReadNotifications, admin, "u1"), domainErrors.ErrForbidden)
}

func TestCheckCustomerNeverTransitions(t *testing.T) {
	customer := model.Actor{UserID: "u1", Role: model.RoleCustomer}
	for _, owner := range []string{"u1", "u2"} {
		assert.ErrorIs(t, Check(ActionTransition, customer, owner), domainErrors.ErrForbidden)
	}
}

func TestCheckRejectsAnonymousAndUnknown(t *testing.T) {
	assert.ErrorIs(t, Check(ActionReadOrder, model.Actor{Role: model.RoleAdmin}, "u1"), domainErrors.ErrForbidden)
	assert.ErrorIs(t, Check(ActionReadOrder, model.Actor{UserID: "u1", Role: "root"}, "u1"), domainErrors.ErrForbidden)
	assert.ErrorIs(t, Check(Action("delete_order"), model.Actor{UserID: "a1", Role: model.RoleAdmin}, "u1"), domainErrors.ErrForbidden)
}
