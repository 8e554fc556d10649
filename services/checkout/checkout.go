package checkout

import (
	"context"
	"errors"
	"fmt"

	"voltpath/services/onboarding"
	"voltpath/utils"

	"github.com/stripe/stripe-go/v76"
	stripeSession "github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

// ErrNoStagedSelection means the checkout page was reached without a
// completed onboarding hand-off.
var ErrNoStagedSelection = errors.New("no staged checkout selection for this session")

// Service turns the staged plan selection into a hosted checkout session.
type Service interface {
	// CreateSession consumes the staged plan/price for the given onboarding
	// session and returns the hosted checkout URL.
	CreateSession(ctx context.Context, onboardingSessionID string) (string, error)
}

// DefaultCheckoutService is the production implementation, backed by Stripe.
type DefaultCheckoutService struct {
	Staging    onboarding.StagingStore
	SuccessURL string
	CancelURL  string
}

// CreateSession reads the staged checkout identifiers, creates a Stripe
// Checkout Session in subscription mode and consumes the staged keys.
func (s *DefaultCheckoutService) CreateSession(ctx context.Context, onboardingSessionID string) (string, error) {
	planID, err := s.Staging.Get(onboardingSessionID, onboarding.StageCheckoutPlan)
	if err != nil {
		return "", fmt.Errorf("failed to read staged plan: %w", err)
	}
	priceID, err := s.Staging.Get(onboardingSessionID, onboarding.StageCheckoutPrice)
	if err != nil {
		return "", fmt.Errorf("failed to read staged price: %w", err)
	}
	if planID == "" || priceID == "" {
		return "", ErrNoStagedSelection
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(s.SuccessURL),
		CancelURL:         stripe.String(s.CancelURL),
		ClientReferenceID: stripe.String(onboardingSessionID),
	}
	params.AddMetadata("planId", planID)

	offerCode, err := s.Staging.Get(onboardingSessionID, onboarding.StageOfferCode)
	if err != nil {
		utils.GetLogger().Warn("CreateSession: failed to read staged offer code", zap.Error(err))
	}
	if offerCode != "" {
		params.AllowPromotionCodes = stripe.Bool(true)
		params.AddMetadata("offerCode", offerCode)
	}

	checkoutSession, err := stripeSession.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	// The staged keys are consumed by a successful hand-off.
	if err := s.Staging.Remove(onboardingSessionID,
		onboarding.StageCheckoutPlan, onboarding.StageCheckoutPrice, onboarding.StageOfferCode); err != nil {
		utils.GetLogger().Warn("CreateSession: failed to remove consumed staging keys",
			zap.String("sessionID", onboardingSessionID), zap.Error(err))
	}

	return checkoutSession.URL, nil
}
