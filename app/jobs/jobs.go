// Package jobs defines the background jobs and event listeners the
// storefront dispatches: account emails, order confirmations and
// reconciliation alerts. Handlers run in the queue worker process.
package jobs

import (
	"fmt"

	"github.com/shashiranjanraj/storefront/pkg/mail"
	"github.com/shashiranjanraj/storefront/pkg/queue"
)

// PasswordResetEmail delivers the reset link. The raw token only ever
// exists inside ResetURL; it is not logged.
type PasswordResetEmail struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	ResetURL string `json:"reset_url"`
}

func (j PasswordResetEmail) Handle() error {
	return mail.To(j.Email).
		Subject("Your password reset link").
		Body(fmt.Sprintf(
			`<p>Hi %s,</p>
<p>Someone (hopefully you) requested a password reset. The link below is valid for one hour and can be used once:</p>
<p><a href="%s">Reset your password</a></p>`,
			j.Name, j.ResetURL)).
		Send()
}

// OrderConfirmationEmail thanks the buyer after a successful checkout.
type OrderConfirmationEmail struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	OrderID uint   `json:"order_id"`
	Total   int64  `json:"total"`
}

func (j OrderConfirmationEmail) Handle() error {
	return mail.To(j.Email).
		Subject(fmt.Sprintf("Order #%d confirmed", j.OrderID)).
		Body(fmt.Sprintf(
			`<p>Hi %s,</p>
<p>Thanks for your order! We charged %d.%02d and your order number is <strong>#%d</strong>.</p>`,
			j.Name, j.Total/100, j.Total%100, j.OrderID)).
		Send()
}

// RegisterAll makes every job type known to the queue so worker processes
// can deserialise envelopes. Call once at boot.
func RegisterAll() {
	queue.Register("jobs.PasswordResetEmail", func() queue.Job { return &PasswordResetEmail{} })
	queue.Register("jobs.OrderConfirmationEmail", func() queue.Job { return &OrderConfirmationEmail{} })
}

// QueueMailer is the production services.Mailer: it enqueues the email
// instead of blocking the request on SMTP.
type QueueMailer struct{}

func (QueueMailer) SendPasswordReset(email, name, resetURL string) error {
	return queue.Dispatch(PasswordResetEmail{Email: email, Name: name, ResetURL: resetURL})
}
