package payments

import "context"

// Gateway abstracts the card-payment provider so services and tests do not
// depend on the Stripe SDK directly.
type Gateway interface {
	// CreateIntent registers a pending charge for the given amount (in the
	// smallest currency unit, e.g. cents) and returns the client secret the
	// frontend needs to confirm the payment.
	CreateIntent(ctx context.Context, amountCents int64) (string, error)
}
