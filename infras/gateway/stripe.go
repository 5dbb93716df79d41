package gateway

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"

	"tourbook/config"
)

const (
	ProviderStripe = "stripe"

	headerIdempotentReplayed = "Idempotent-Replayed"

	errorCodeRateLimit           = "rate_limit"
	errorCodeIdempotencyKeyInUse = "idempotency_key_in_use"
)

type stripeGateway struct {
	client *paymentintent.Client
}

// New returns the configured payment provider.
func New(cfg *config.Config) Gateway {
	if cfg.Payment.Provider != "" && cfg.Payment.Provider != ProviderStripe {
		log.Fatal().Str("provider", cfg.Payment.Provider).Msg("Unsupported payment provider")
	}

	return NewStripe(cfg.Payment.Stripe.SecretKey, cfg.Payment.Stripe.BaseURL)
}

// NewStripe builds a Stripe PaymentIntents client. SDK level retries are off,
// every retry goes through the caller's policy so it is logged and counted.
func NewStripe(secretKey, baseURL string) Gateway {
	backendConfig := &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
	}

	if baseURL != "" {
		backendConfig.URL = stripe.String(baseURL)
	}

	return &stripeGateway{
		client: &paymentintent.Client{
			B:   stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig),
			Key: secretKey,
		},
	}
}

func (g *stripeGateway) Name() string {
	return ProviderStripe
}

// Charge creates and confirms an off-session PaymentIntent.
func (g *stripeGateway) Charge(ctx context.Context, req ChargeRequest) (Charge, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.Amount),
		Currency:      stripe.String(strings.ToLower(req.Currency)),
		PaymentMethod: stripe.String(req.PaymentMethodID),
		Confirm:       stripe.Bool(true),
		OffSession:    stripe.Bool(true),
	}

	if req.CustomerID != "" {
		params.Customer = stripe.String(req.CustomerID)
	}

	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}

	for key, value := range req.Metadata {
		params.AddMetadata(key, value)
	}

	params.SetIdempotencyKey(req.IdempotencyKey)
	params.Context = ctx

	intent, err := g.client.New(params)
	if err != nil {
		return Charge{}, stripeError(ctx, err)
	}

	charge := Charge{
		ID:       intent.ID,
		Status:   string(intent.Status),
		Replayed: intent.LastResponse != nil && intent.LastResponse.Header.Get(headerIdempotentReplayed) == "true",
	}

	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded:
		return charge, nil
	case stripe.PaymentIntentStatusRequiresAction:
		return charge, &Error{Kind: KindRequiresAction, Code: string(intent.Status), Message: "payment requires customer authentication"}
	case stripe.PaymentIntentStatusRequiresPaymentMethod:
		return charge, &Error{Kind: KindCardDeclined, Code: string(intent.Status), Message: "payment method was refused"}
	default:
		return charge, &Error{Kind: KindTransient, Code: string(intent.Status), Message: "payment not settled: " + string(intent.Status)}
	}
}

func stripeError(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{Kind: KindTransient, Message: "request to payment provider timed out", Err: err}
	}

	var serr *stripe.Error
	if !errors.As(err, &serr) {
		return &Error{Kind: KindTransient, Message: err.Error(), Err: err}
	}

	gerr := &Error{
		Code:       string(serr.Code),
		Message:    serr.Msg,
		StatusCode: serr.HTTPStatusCode,
		Err:        err,
	}

	switch {
	case serr.HTTPStatusCode == http.StatusTooManyRequests,
		serr.Code == errorCodeRateLimit,
		serr.Code == errorCodeIdempotencyKeyInUse,
		serr.HTTPStatusCode == http.StatusConflict:
		gerr.Kind = KindTransient
	case serr.Type == stripe.ErrorTypeCard && serr.Code == stripe.ErrorCodeAuthenticationRequired:
		gerr.Kind = KindRequiresAction
	case serr.Type == stripe.ErrorTypeCard:
		gerr.Kind = KindCardDeclined
		if serr.DeclineCode != "" {
			gerr.Code = string(serr.DeclineCode)
		}
	case serr.Type == stripe.ErrorTypeIdempotency:
		gerr.Kind = KindConflict
	case serr.Type == stripe.ErrorTypeInvalidRequest:
		gerr.Kind = KindInvalidRequest
	default:
		gerr.Kind = KindTransient
	}

	return gerr
}
