package services

import (
	"context"
	"fmt"
	"time"

	apperr "github.com/shashiranjanraj/storefront/app/errors"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/payment"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/collection"
	"github.com/shashiranjanraj/storefront/pkg/event"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"gorm.io/gorm"
)

// checkoutLockTTL bounds how long a crashed checkout can block its user.
const checkoutLockTTL = 30 * time.Second

// CheckoutService turns a cart into an order: compute the trusted total,
// charge the gateway exactly once, then persist the order and clear the
// charged cart lines in a single transaction. The charge is the one
// irreversible step, so it sits after the total is known and before any
// write that depends on the charge id.
type CheckoutService struct {
	carts     *repositories.CartRepository
	orders    *repositories.OrderRepository
	incidents *repositories.IncidentRepository
	gateway   payment.Gateway
	currency  string
}

func NewCheckoutService(db *gorm.DB, gateway payment.Gateway) *CheckoutService {
	return &CheckoutService{
		carts:     repositories.NewCartRepository(db),
		orders:    repositories.NewOrderRepository(db),
		incidents: repositories.NewIncidentRepository(db),
		gateway:   gateway,
		currency:  config.PaymentCurrency(),
	}
}

// CartTotal sums price × quantity across cart lines in minor currency
// units. Integer arithmetic only — currency never touches a float.
func CartTotal(lines []models.CartItem) int64 {
	var total int64
	for _, line := range lines {
		total += line.Item.Price * int64(line.Quantity)
	}
	return total
}

// Checkout runs the full flow for the authenticated user in ctx.
// paymentToken is the opaque client-side tokenisation result, never a card
// number. On PaymentFailed nothing was written and the client may retry
// with a fresh call; the charge itself is attempted at most once here.
func (s *CheckoutService) Checkout(ctx context.Context, paymentToken string) (models.Order, error) {
	userID, ok := middleware.UserID(ctx)
	if !ok || userID == 0 {
		return models.Order{}, apperr.New(apperr.Unauthenticated, "You must be signed in to check out")
	}

	// One checkout per user at a time. Without this, two concurrent
	// checkouts could both read the same cart and double-charge it.
	lock, err := cache.TryLock(fmt.Sprintf("storefront:checkout:%d", userID), checkoutLockTTL)
	if err == cache.ErrLockHeld {
		return models.Order{}, apperr.New(apperr.ValidationFailed, "A checkout is already in progress")
	}
	if err != nil {
		return models.Order{}, apperr.Wrap(apperr.StoreUnavailable, "could not acquire checkout lock", err)
	}
	defer lock.Unlock()

	lines, err := s.carts.LinesForUser(userID)
	if err != nil {
		return models.Order{}, err
	}
	if len(lines) == 0 {
		// Policy decision: reject rather than submit a zero-amount charge.
		return models.Order{}, apperr.New(apperr.ValidationFailed, "Your cart is empty")
	}

	total := CartTotal(lines)

	charge, err := s.gateway.CreateCharge(ctx, payment.ChargeRequest{
		Amount:      total,
		Currency:    s.currency,
		Token:       paymentToken,
		Description: fmt.Sprintf("storefront order for user %d", userID),
	})
	if err != nil {
		metrics.CheckoutCharges.WithLabelValues("failed").Inc()
		if apperr.KindOf(err) != 0 {
			return models.Order{}, err
		}
		return models.Order{}, apperr.Wrap(apperr.PaymentFailed, "payment failed", err)
	}
	metrics.CheckoutCharges.WithLabelValues("succeeded").Inc()

	// The order records what the gateway confirmed, not what we computed,
	// so any mismatch is visible in the data rather than papered over.
	order := models.Order{
		UserID: userID,
		Total:  charge.Amount,
		Charge: charge.ID,
		Items:  collection.Map(lines, models.SnapshotOf),
	}
	lineIDs := collection.Map(lines, func(l models.CartItem) uint { return l.ID })

	if err := s.orders.CreateAndClearCart(&order, lineIDs); err != nil {
		return models.Order{}, s.reportInconsistency(ctx, userID, charge, err)
	}

	event.Fire("order.created", order)
	return order, nil
}

// Orders lists the caller's order history, newest first.
func (s *CheckoutService) Orders(ctx context.Context, page, limit int) ([]models.Order, orm.Pagination, error) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return nil, orm.Pagination{}, apperr.New(apperr.Unauthenticated, "You must be signed in")
	}
	return s.orders.ForUser(userID, page, limit)
}

// Order fetches one order. Visible to its buyer and to ADMIN.
func (s *CheckoutService) Order(ctx context.Context, id uint) (models.Order, error) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return models.Order{}, apperr.New(apperr.Unauthenticated, "You must be signed in")
	}

	order, err := s.orders.FindByID(id)
	if err != nil {
		return models.Order{}, err
	}
	if order.UserID != userID && !granted(ctx, models.PermAdmin) {
		return models.Order{}, apperr.New(apperr.Forbidden, "You can't see this order")
	}
	return order, nil
}

// reportInconsistency handles the one failure mode that must never be
// silent: money moved but no order row exists. The charge id is written to
// the incident table, the error log, and the inconsistency counter before
// the caller sees a masked error.
func (s *CheckoutService) reportInconsistency(ctx context.Context, userID uint, charge payment.Charge, cause error) error {
	metrics.CheckoutInconsistencies.Inc()

	log := logger.WithCtx(ctx)
	log.Error("checkout inconsistency: charge succeeded but order write failed",
		"user_id", userID,
		"charge_id", charge.ID,
		"amount", charge.Amount,
		"cause", cause,
	)

	incident := &models.PaymentIncident{
		UserID:   userID,
		ChargeID: charge.ID,
		Amount:   charge.Amount,
		Detail:   cause.Error(),
	}
	if err := s.incidents.Record(incident); err != nil {
		// The ERROR log line above still carries the charge id.
		log.Error("failed to record payment incident", "charge_id", charge.ID, "error", err)
	}

	event.FireAsync("checkout.inconsistent", incident)

	return apperr.Wrap(apperr.Inconsistent,
		fmt.Sprintf("order persistence failed after charge %s", charge.ID), cause)
}
