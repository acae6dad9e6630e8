package routes

import (
	"time"

	apperr "github.com/shashiranjanraj/storefront/app/errors"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/schedule"
)

// RegisterSchedules sets up recurring maintenance. The scheduler itself is
// started by boot() in-process, or by `storefront schedule:run` standalone.
func RegisterSchedules() {
	// Expired reset tokens are already unusable (lookups are bounded by
	// ResetExpiry); this keeps dead digests from accumulating.
	schedule.Hourly().Name("auth.purge-reset-tokens").WithoutOverlapping().Run(func() {
		if database.DB == nil {
			return
		}
		res := database.DB.Model(&models.User{}).
			Where("reset_expiry IS NOT NULL AND reset_expiry < ?", time.Now()).
			Updates(map[string]interface{}{"reset_token_hash": "", "reset_expiry": nil})
		if res.Error != nil {
			logger.Error("reset token purge failed", "error", res.Error)
		} else if res.RowsAffected > 0 {
			logger.Info("purged expired reset tokens", "count", res.RowsAffected)
		}
	})

	// Payment incidents record charges with no order row. If a later manual
	// replay created the order, close the incident automatically.
	schedule.Every(10).Minutes().Name("checkout.reconcile-incidents").WithoutOverlapping().Run(func() {
		if database.DB == nil {
			return
		}
		incidents := repositories.NewIncidentRepository(database.DB)
		orders := repositories.NewOrderRepository(database.DB)

		open, err := incidents.Unresolved()
		if err != nil {
			logger.Error("incident sweep failed", "error", err)
			return
		}
		for _, incident := range open {
			order, err := orders.FindByCharge(incident.ChargeID)
			if apperr.KindOf(err) == apperr.NotFound {
				continue
			}
			if err != nil {
				logger.Error("incident sweep lookup failed", "charge_id", incident.ChargeID, "error", err)
				continue
			}
			if err := incidents.Resolve(incident.ID, time.Now()); err != nil {
				logger.Error("incident resolve failed", "charge_id", incident.ChargeID, "error", err)
				continue
			}
			logger.Info("payment incident resolved", "charge_id", incident.ChargeID, "order_id", order.ID)
		}
	})
}
