package usecase

import (
	"fmt"

	"github.com/polkiloo/webstudio/internal/domain/model"
)

type statusTemplate struct {
	title    string
	message  string
	category model.NotificationCategory
}

var statusTemplates = map[model.OrderStatus]statusTemplate{
	model.OrderStatusConfirmed: {
		title:    "Order confirmed!",
		message:  "Your %s website order has been confirmed and will be processed soon.",
		category: model.NotificationSuccess,
	},
	model.OrderStatusInProgress: {
		title:    "Your order is in progress",
		message:  "Your %s website is being built. Our team will keep you posted on the progress.",
		category: model.NotificationInfo,
	},
	model.OrderStatusCompleted: {
		title:    "Your website is ready",
		message:  "Your %s website order is complete! Check the project details to access the website and source code.",
		category: model.NotificationSuccess,
	},
}

var defaultStatusTemplate = statusTemplate{
	title:    "Order status updated",
	message:  "The status of your %s website order has been updated.",
	category: model.NotificationInfo,
}

// statusNotification renders the notification sent to the owner after order reached its current status.
func statusNotification(order *model.Order) model.NotificationDraft {
	tpl, ok := statusTemplates[order.Status]
	if !ok {
		tpl = defaultStatusTemplate
	}
	orderID := order.ID
	return model.NotificationDraft{
		UserID:   order.OwnerID,
		Title:    tpl.title,
		Message:  fmt.Sprintf(tpl.message, order.WebsiteType),
		Category: tpl.category,
		OrderID:  &orderID,
	}
}

// deliveryNotification renders the optional notice sent when delivery metadata changes.
func deliveryNotification(order *model.Order) model.NotificationDraft {
	orderID := order.ID
	return model.NotificationDraft{
		UserID:   order.OwnerID,
		Title:    "Project details updated",
		Message:  fmt.Sprintf("New delivery details are available for your %s website.", order.WebsiteType),
		Category: model.NotificationInfo,
		OrderID:  &orderID,
	}
}
