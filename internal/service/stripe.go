package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v81"
	billingportalsession "github.com/stripe/stripe-go/v81/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v81/checkout/session"
	stripecustomer "github.com/stripe/stripe-go/v81/customer"
	stripesub "github.com/stripe/stripe-go/v81/subscription"
	"github.com/stripe/stripe-go/v81/webhook"
	"github.com/yourusername/qrfolio-api/internal/config"
	"github.com/yourusername/qrfolio-api/internal/model"
	"github.com/yourusername/qrfolio-api/internal/repository"
)

// StripeService sells exactly one thing: the premium plan, billed monthly or
// yearly. Checkout and portal sessions are created here and the webhook
// handlers keep the local subscription mirror in sync.
type StripeService struct {
	cfg      *config.Config
	custRepo *repository.StripeCustomerRepo
	subRepo  *repository.SubscriptionRepo
	userRepo *repository.UserRepo
}

func NewStripeService(
	cfg *config.Config,
	custRepo *repository.StripeCustomerRepo,
	subRepo *repository.SubscriptionRepo,
	userRepo *repository.UserRepo,
) *StripeService {
	stripe.Key = cfg.StripeSecretKey
	return &StripeService{
		cfg:      cfg,
		custRepo: custRepo,
		subRepo:  subRepo,
		userRepo: userRepo,
	}
}

// GetOrCreateCustomer returns the user's Stripe customer mapping, creating
// the customer on first checkout.
func (s *StripeService) GetOrCreateCustomer(ctx context.Context, userID uuid.UUID) (*model.StripeCustomer, error) {
	existing, err := s.custRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("looking up stripe customer: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil {
		return nil, fmt.Errorf("finding user for stripe customer: %w", err)
	}

	params := &stripe.CustomerParams{
		Email: stripe.String(user.Email),
		Name:  stripe.String(user.Name),
	}
	params.AddMetadata("qrfolio_user_id", userID.String())

	cust, err := stripecustomer.New(params)
	if err != nil {
		return nil, fmt.Errorf("creating stripe customer: %w", err)
	}

	sc, err := s.custRepo.Upsert(ctx, userID, cust.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("saving stripe customer: %w", err)
	}

	log.Info().Str("userId", userID.String()).Str("stripeId", cust.ID).Msg("Stripe customer created")
	return sc, nil
}

// priceForInterval maps a billing interval onto the configured premium
// price ID.
func (s *StripeService) priceForInterval(interval string) (string, error) {
	var priceID string
	switch interval {
	case "month":
		priceID = s.cfg.StripePricePremiumMo
	case "year":
		priceID = s.cfg.StripePricePremiumAn
	default:
		return "", fmt.Errorf("unknown billing interval: %s", interval)
	}
	if priceID == "" {
		return "", fmt.Errorf("stripe price not configured for premium/%s", interval)
	}
	return priceID, nil
}

// CreateCheckoutSession starts a premium checkout for the user and returns
// the hosted page URL.
func (s *StripeService) CreateCheckoutSession(ctx context.Context, userID uuid.UUID, interval string) (string, error) {
	priceID, err := s.priceForInterval(interval)
	if err != nil {
		return "", err
	}

	sc, err := s.GetOrCreateCustomer(ctx, userID)
	if err != nil {
		return "", err
	}

	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(sc.StripeCustomerID),
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.cfg.FrontendURL + "?checkout=success"),
		CancelURL:  stripe.String(s.cfg.FrontendURL + "?checkout=cancel"),
	}
	params.AddMetadata("qrfolio_user_id", userID.String())
	params.AddMetadata("interval", interval)

	sess, err := checkoutsession.New(params)
	if err != nil {
		return "", fmt.Errorf("creating checkout session: %w", err)
	}

	log.Info().
		Str("userId", userID.String()).
		Str("interval", interval).
		Msg("Checkout session created")

	return sess.URL, nil
}

// CreatePortalSession returns a Stripe Billing Portal URL where the user can
// switch interval or cancel.
func (s *StripeService) CreatePortalSession(ctx context.Context, userID uuid.UUID) (string, error) {
	sc, err := s.custRepo.FindByUserID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("looking up stripe customer: %w", err)
	}
	if sc == nil {
		return "", fmt.Errorf("no stripe customer found for user")
	}

	sess, err := billingportalsession.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(sc.StripeCustomerID),
		ReturnURL: stripe.String(s.cfg.FrontendURL),
	})
	if err != nil {
		return "", fmt.Errorf("creating portal session: %w", err)
	}

	return sess.URL, nil
}

// VerifyWebhook checks the Stripe signature and parses the event. In
// development, a failed signature falls back to parsing the raw payload so
// the flow can be exercised without the CLI forwarding secret.
func (s *StripeService) VerifyWebhook(body io.Reader, signature string) (*stripe.Event, error) {
	payload, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("reading webhook body: %w", err)
	}

	event, err := webhook.ConstructEvent(payload, signature, s.cfg.StripeWebhookSecret)
	if err != nil {
		if s.cfg.Env == "development" {
			log.Warn().Err(err).Msg("Webhook signature failed; parsing raw payload in dev mode")
			var fallback stripe.Event
			if jsonErr := json.Unmarshal(payload, &fallback); jsonErr != nil {
				return nil, fmt.Errorf("verifying webhook signature: %w (raw parse also failed: %v)", err, jsonErr)
			}
			return &fallback, nil
		}
		return nil, fmt.Errorf("verifying webhook signature: %w", err)
	}

	return &event, nil
}

// HandleWebhookEvent dispatches a verified Stripe event.
func (s *StripeService) HandleWebhookEvent(ctx context.Context, event *stripe.Event) error {
	log.Info().
		Str("type", string(event.Type)).
		Str("id", event.ID).
		Msg("Processing Stripe webhook")

	switch event.Type {
	case "checkout.session.completed":
		return s.handleCheckoutCompleted(ctx, event)
	case "customer.subscription.created", "customer.subscription.updated":
		return s.handleSubscriptionUpsert(ctx, event)
	case "customer.subscription.deleted":
		return s.handleSubscriptionDeleted(ctx, event)
	case "invoice.payment_failed":
		return s.handlePaymentFailed(ctx, event)
	default:
		log.Debug().Str("type", string(event.Type)).Msg("Ignoring unhandled webhook type")
		return nil
	}
}

// syncSubscription writes the state of a Stripe subscription into the local
// mirror for whichever user owns the Stripe customer. Unknown customers are
// logged and skipped rather than failing the webhook, since Stripe retries
// hard errors.
func (s *StripeService) syncSubscription(ctx context.Context, stripeCustomerID string, sub *stripe.Subscription) error {
	custRecord, err := s.custRepo.FindByStripeID(ctx, stripeCustomerID)
	if err != nil {
		return fmt.Errorf("looking up customer: %w", err)
	}
	if custRecord == nil {
		log.Warn().Str("stripeCustomer", stripeCustomerID).Msg("Subscription event for unknown customer")
		return nil
	}

	priceID := sub.Items.Data[0].Price.ID
	plan := s.planFromPriceID(priceID)

	var periodEnd *time.Time
	if sub.CurrentPeriodEnd != 0 {
		t := time.Unix(sub.CurrentPeriodEnd, 0)
		periodEnd = &t
	}

	_, err = s.subRepo.Upsert(ctx, &model.Subscription{
		UserID:            custRecord.UserID,
		StripeSubID:       sub.ID,
		StripePriceID:     priceID,
		Plan:              plan,
		Status:            string(sub.Status),
		CurrentPeriodEnd:  periodEnd,
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
	})
	if err != nil {
		return fmt.Errorf("upserting subscription: %w", err)
	}

	log.Info().
		Str("userId", custRecord.UserID.String()).
		Str("plan", plan).
		Str("status", string(sub.Status)).
		Msg("Subscription synced")

	return nil
}

func (s *StripeService) handleCheckoutCompleted(ctx context.Context, event *stripe.Event) error {
	var session struct {
		Customer     string `json:"customer"`
		Subscription string `json:"subscription"`
		Mode         string `json:"mode"`
	}
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return fmt.Errorf("unmarshaling checkout session: %w", err)
	}

	if session.Mode != "subscription" || session.Subscription == "" {
		log.Debug().Str("mode", session.Mode).Msg("Ignoring non-subscription checkout")
		return nil
	}

	// The checkout event only carries IDs; fetch the full subscription.
	sub, err := stripesub.Get(session.Subscription, nil)
	if err != nil {
		return fmt.Errorf("fetching subscription from Stripe: %w", err)
	}

	return s.syncSubscription(ctx, session.Customer, sub)
}

func (s *StripeService) handleSubscriptionUpsert(ctx context.Context, event *stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("unmarshaling subscription event: %w", err)
	}
	return s.syncSubscription(ctx, sub.Customer.ID, &sub)
}

func (s *StripeService) handleSubscriptionDeleted(ctx context.Context, event *stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("unmarshaling subscription deleted event: %w", err)
	}

	if err := s.subRepo.UpdateStatus(ctx, sub.ID, model.SubStatusCanceled, false); err != nil {
		return fmt.Errorf("canceling subscription: %w", err)
	}

	log.Info().Str("stripeSubId", sub.ID).Msg("Subscription canceled via webhook")
	return nil
}

func (s *StripeService) handlePaymentFailed(ctx context.Context, event *stripe.Event) error {
	var invoice struct {
		Subscription string `json:"subscription"`
	}
	if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
		return fmt.Errorf("unmarshaling invoice event: %w", err)
	}

	if invoice.Subscription == "" {
		return nil // one-time payment, not relevant
	}

	if err := s.subRepo.UpdateStatus(ctx, invoice.Subscription, model.SubStatusPastDue, false); err != nil {
		return fmt.Errorf("marking subscription past due: %w", err)
	}

	log.Warn().Str("stripeSubId", invoice.Subscription).Msg("Payment failed; subscription marked past_due")
	return nil
}

// planFromPriceID maps a Stripe price back to a plan name. Both premium
// prices resolve to premium; anything else is treated as free.
func (s *StripeService) planFromPriceID(priceID string) string {
	switch priceID {
	case s.cfg.StripePricePremiumMo, s.cfg.StripePricePremiumAn:
		return model.PlanPremium
	default:
		return model.PlanFree
	}
}
