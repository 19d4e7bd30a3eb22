package payments

import (
	"context"
	"errors"
	"log"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// stripeGateway implements the Gateway interface on top of the Stripe API.
type stripeGateway struct {
	api      *client.API
	currency string
}

// NewStripeGateway creates a payment gateway backed by Stripe. Amounts are
// charged in USD.
func NewStripeGateway(secretKey string) (Gateway, error) {
	if secretKey == "" {
		return nil, errors.New("stripe secret key is required")
	}

	api := &client.API{}
	api.Init(secretKey, nil)

	return &stripeGateway{
		api:      api,
		currency: string(stripe.CurrencyUSD),
	}, nil
}

// CreateIntent creates a Stripe PaymentIntent and returns its client secret.
func (g *stripeGateway) CreateIntent(ctx context.Context, amountCents int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(g.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		log.Printf("ERROR: Failed to create payment intent for amount %d: %v", amountCents, err)
		return "", err
	}
	if intent.ClientSecret == "" {
		return "", errors.New("payment intent has no client secret")
	}

	return intent.ClientSecret, nil
}
