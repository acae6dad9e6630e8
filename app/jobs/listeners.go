package jobs

import (
	"encoding/json"
	"fmt"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/event"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/notification"
	"github.com/shashiranjanraj/storefront/pkg/queue"
	"github.com/shashiranjanraj/storefront/pkg/ws"
	"gorm.io/gorm"
)

// ReconciliationAlert pages the on-call channel when a charge has no
// matching order row.
type ReconciliationAlert struct {
	Incident *models.PaymentIncident
}

func (a *ReconciliationAlert) Via() []string { return []string{"slack"} }

func (a *ReconciliationAlert) ToSlack() notification.SlackData {
	return notification.SlackData{
		Text: "Checkout inconsistency: charge confirmed with no persisted order",
		Attachments: []notification.SlackAttachment{{
			Color: "danger",
			Title: fmt.Sprintf("charge %s — user %d — amount %d", a.Incident.ChargeID, a.Incident.UserID, a.Incident.Amount),
			Text:  a.Incident.Detail,
		}},
	}
}

// RegisterListeners subscribes the storefront's event listeners. orderHub
// may be nil (worker process without the HTTP layer).
func RegisterListeners(db *gorm.DB, orderHub *ws.Hub) {
	users := repositories.NewUserRepository(db)

	event.Listen("order.created", func(payload interface{}) {
		order, ok := payload.(models.Order)
		if !ok {
			return
		}

		user, err := users.FindByID(order.UserID)
		if err != nil {
			logger.Error("order.created: load buyer failed", "order_id", order.ID, "error", err)
		} else if err := queue.Dispatch(OrderConfirmationEmail{
			Email:   user.Email,
			Name:    user.Name,
			OrderID: order.ID,
			Total:   order.Total,
		}); err != nil {
			logger.Error("order.created: dispatch confirmation failed", "order_id", order.ID, "error", err)
		}

		if orderHub != nil {
			if raw, err := json.Marshal(map[string]interface{}{
				"event": "order.created",
				"order": order,
			}); err == nil {
				orderHub.Broadcast <- raw
			}
		}
	})

	event.Listen("checkout.inconsistent", func(payload interface{}) {
		incident, ok := payload.(*models.PaymentIncident)
		if !ok {
			return
		}
		notification.SendAsync("", &ReconciliationAlert{Incident: incident})
	})
}
