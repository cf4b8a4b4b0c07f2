// Package policy decides which actor may perform which order and notification operation.
package policy

import (
	"fmt"

	domainErrors "github.com/polkiloo/webstudio/internal/domain/errors"
	"github.com/polkiloo/webstudio/internal/domain/model"
)

// Action is an operation guarded by the access policy.
type Action string

const (
	ActionCreateOrder       Action = "create_order"
	ActionReadOrder         Action = "read_order"
	ActionListOrders        Action = "list_orders"
	ActionEditOrderDetails  Action = "edit_order_details"
	ActionAttachPayment     Action = "attach_payment_evidence"
	ActionTransition        Action = "transition_status"
	ActionSetDelivery       Action = "set_delivery_metadata"
	ActionReadNotifications Action = "read_notifications"
	ActionMarkRead          Action = "mark_notification_read"
	ActionAnnounce          Action = "announce"
)

type rule struct {
	owner bool
	admin bool
}

// rules maps each action to who may perform it. "owner" means a customer acting on
// a resource they own; for notifications the owner is the target user.
var rules = map[Action]rule{
	ActionCreateOrder:       {owner: true},
	ActionReadOrder:         {owner: true, admin: true},
	ActionListOrders:        {owner: true, admin: true},
	ActionEditOrderDetails:  {owner: true},
	ActionAttachPayment:     {owner: true},
	ActionTransition:        {admin: true},
	ActionSetDelivery:       {admin: true},
	ActionReadNotifications: {owner: true},
	ActionMarkRead:          {owner: true},
	ActionAnnounce:          {admin: true},
}

// Check returns ErrForbidden unless actor may perform action on a resource owned by ownerID.
// For ActionCreateOrder the owner is the actor placing the order.
func Check(action Action, actor model.Actor, ownerID string) error {
	r, ok := rules[action]
	if !ok || actor.UserID == "" || !actor.Role.Valid() {
		return forbidden(action)
	}
	if r.admin && actor.IsAdmin() {
		return nil
	}
	if r.owner && actor.UserID == ownerID {
		if action == ActionReadNotifications || action == ActionMarkRead || actor.IsCustomer() {
			return nil
		}
	}
	return forbidden(action)
}

func forbidden(action Action) error {
	return fmt.Errorf("%s: %w", action, domainErrors.ErrForbidden)
}
