package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lucsky/cuid"
	"go.uber.org/zap"

	"github.com/trinetrasoft/cloud-kitchen/app/models"
	"github.com/trinetrasoft/cloud-kitchen/app/repositories"
	"github.com/trinetrasoft/cloud-kitchen/app/services/payment"
)

const subscriptionPeriod = 30 * 24 * time.Hour

type SubscribeResult struct {
	Subscription *models.Subscription    `json:"subscription"`
	Plan         models.SubscriptionPlan `json:"plan"`
	Payment      *payment.Intent         `json:"payment"`
}

type SubscriptionService struct {
	subRepo  repositories.SubscriptionRepository
	provider payment.Provider
	now      func() time.Time
}

func NewSubscriptionService(subRepo repositories.SubscriptionRepository, provider payment.Provider) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo, provider: provider, now: time.Now}
}

func (s *SubscriptionService) Plans() []models.SubscriptionPlan {
	return models.SubscriptionPlans
}

// Active returns nil when the user has no active subscription.
func (s *SubscriptionService) Active(ctx context.Context, userID string) (*models.Subscription, error) {
	sub, err := s.subRepo.FindActiveByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	return sub, nil
}

func (s *SubscriptionService) Subscribe(ctx context.Context, user *models.User, tier models.SubscriptionTier) (*SubscribeResult, error) {
	plan, ok := models.PlanFor(tier)
	if !ok {
		return nil, ErrInvalidTier
	}

	existing, err := s.Active(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadySubscribed
	}

	awaiting, err := s.subRepo.FindAwaitingPaymentByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	if awaiting != nil {
		return nil, fmt.Errorf("%w: %s subscription is awaiting payment", ErrAlreadySubscribed, awaiting.Tier)
	}

	reference := SubscriptionReferencePrefix + strings.ToUpper(cuid.Slug())
	intent, err := s.provider.CreatePayment(ctx, payment.Request{
		Reference:   reference,
		Amount:      plan.Price,
		Description: "Trinetra " + plan.Name + " subscription",
		Customer: payment.Customer{
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
			Phone:     user.Phone,
		},
	})
	if err != nil {
		zap.S().Errorf("SubscriptionService.Subscribe: payment initiation failed for %s: %v", reference, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentUnavailable, err)
	}

	start := s.now()
	sub := &models.Subscription{
		UserID:                 user.ID,
		Tier:                   plan.Tier,
		Status:                 models.SubscriptionPaused,
		ExternalSubscriptionID: intent.IntentID,
		CurrentPeriodStart:     start,
		CurrentPeriodEnd:       start.Add(subscriptionPeriod),
	}
	paymentStatus := models.PaymentStatusPending
	if intent.Settled {
		sub.Status = models.SubscriptionActive
		paymentStatus = models.PaymentStatusPaid
	}

	record := &models.Payment{
		Reference: reference,
		Purpose:   models.PaymentForSubscription,
		UserID:    user.ID,
		Provider:  s.provider.Name(),
		IntentID:  intent.IntentID,
		Amount:    plan.Price,
		Status:    paymentStatus,
	}
	if err := s.subRepo.CreateWithPayment(ctx, sub, record); err != nil {
		zap.S().Errorf("SubscriptionService.Subscribe: failed to store %s for user %s: %v", reference, user.ID, err)
		return nil, err
	}

	zap.S().Infof("SubscriptionService.Subscribe: user %s subscribed to %s (%s)", user.ID, plan.Tier, sub.Status)
	return &SubscribeResult{Subscription: sub, Plan: plan, Payment: intent}, nil
}
