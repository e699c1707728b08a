package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/trinetrasoft/cloud-kitchen/app/models"
	"github.com/trinetrasoft/cloud-kitchen/app/repositories"
	"github.com/trinetrasoft/cloud-kitchen/app/services/events"
	"github.com/trinetrasoft/cloud-kitchen/app/services/payment"
)

const SubscriptionReferencePrefix = "SUB-"

// NotificationOutcome reports what a payment notification changed.
type NotificationOutcome struct {
	Reference     string                `json:"reference"`
	Purpose       models.PaymentPurpose `json:"purpose"`
	PaymentStatus models.PaymentStatus  `json:"paymentStatus"`
	Updated       bool                  `json:"updated"`
}

type PaymentService struct {
	provider    payment.Provider
	orderRepo   repositories.OrderRepository
	paymentRepo repositories.PaymentRepository
	subRepo     repositories.SubscriptionRepository
	publisher   events.Publisher
	now         func() time.Time
}

func NewPaymentService(
	provider payment.Provider,
	orderRepo repositories.OrderRepository,
	paymentRepo repositories.PaymentRepository,
	subRepo repositories.SubscriptionRepository,
	publisher events.Publisher,
) *PaymentService {
	if publisher == nil {
		publisher = events.LogPublisher{}
	}
	return &PaymentService{
		provider:    provider,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		subRepo:     subRepo,
		publisher:   publisher,
		now:         time.Now,
	}
}

// HandleNotification re-reads the payment status from the provider and
// applies it. The notification body is never trusted. Replayed
// notifications leave already-settled records alone.
func (s *PaymentService) HandleNotification(ctx context.Context, reference string) (*NotificationOutcome, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, ErrPaymentNotFound
	}

	result, err := s.provider.CheckStatus(ctx, reference)
	if err != nil {
		zap.S().Errorf("PaymentService.HandleNotification: status check failed for %s: %v", reference, err)
		return nil, fmt.Errorf("failed to verify payment %s: %w", reference, err)
	}

	record, err := s.paymentRepo.FindByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment record: %w", err)
	}

	if strings.HasPrefix(reference, SubscriptionReferencePrefix) {
		return s.applySubscription(ctx, reference, record, result)
	}
	return s.applyOrder(ctx, reference, record, result)
}

func (s *PaymentService) syncRecord(ctx context.Context, record *models.Payment, result *payment.Result) {
	if record == nil || record.Status == result.Status {
		return
	}
	if err := s.paymentRepo.UpdateStatus(ctx, record.ID, result.Status, result.Method); err != nil {
		zap.S().Errorf("PaymentService.syncRecord: failed to update payment %s: %v", record.Reference, err)
	}
}

func (s *PaymentService) applyOrder(ctx context.Context, reference string, record *models.Payment, result *payment.Result) (*NotificationOutcome, error) {
	var (
		order *models.Order
		err   error
	)
	if record != nil && record.OrderID != nil {
		order, err = s.orderRepo.FindByID(ctx, *record.OrderID)
	} else {
		order, err = s.orderRepo.FindByNumber(ctx, reference)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		zap.S().Warnf("PaymentService.applyOrder: no order for reference %s", reference)
		return nil, ErrOrderNotFound
	}

	outcome := &NotificationOutcome{Reference: reference, Purpose: models.PaymentForOrder, PaymentStatus: result.Status}
	settled := order.PaymentStatus == models.PaymentStatusPaid || order.PaymentStatus == models.PaymentStatusRefunded
	if settled && result.Status != models.PaymentStatusRefunded && order.PaymentStatus != result.Status {
		zap.S().Infof("PaymentService.applyOrder: order %s already %s, ignoring %s", order.OrderNumber, order.PaymentStatus, result.Status)
		outcome.PaymentStatus = order.PaymentStatus
		return outcome, nil
	}

	s.syncRecord(ctx, record, result)
	if order.PaymentStatus == result.Status {
		return outcome, nil
	}

	status := order.Status
	switch result.Status {
	case models.PaymentStatusPaid:
		if status == models.OrderStatusPending {
			status = models.OrderStatusConfirmed
		}
	case models.PaymentStatusFailed, models.PaymentStatusRefunded:
		status = models.OrderStatusCanceled
	case models.PaymentStatusPending:
		return outcome, nil
	}

	if err := s.orderRepo.UpdatePaymentStatusAndOrderStatus(ctx, order.ID, result.Status, status); err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", order.OrderNumber, err)
	}
	order.PaymentStatus = result.Status
	order.Status = status
	outcome.Updated = true

	if err := s.publisher.Publish(ctx, events.NewOrderEvent(events.OrderPaymentSynced, order)); err != nil {
		zap.S().Warnf("PaymentService.applyOrder: failed to publish event for %s: %v", order.OrderNumber, err)
	}
	zap.S().Infof("PaymentService.applyOrder: order %s is now %s/%s", order.OrderNumber, status, result.Status)
	return outcome, nil
}

func (s *PaymentService) applySubscription(ctx context.Context, reference string, record *models.Payment, result *payment.Result) (*NotificationOutcome, error) {
	if record == nil || record.SubID == nil {
		zap.S().Warnf("PaymentService.applySubscription: no payment record for %s", reference)
		return nil, ErrPaymentNotFound
	}
	sub, err := s.subRepo.FindByID(ctx, *record.SubID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	if sub == nil {
		return nil, ErrPaymentNotFound
	}

	outcome := &NotificationOutcome{Reference: reference, Purpose: models.PaymentForSubscription, PaymentStatus: result.Status}
	s.syncRecord(ctx, record, result)

	var status models.SubscriptionStatus
	switch result.Status {
	case models.PaymentStatusPaid:
		status = models.SubscriptionActive
	case models.PaymentStatusFailed, models.PaymentStatusRefunded:
		status = models.SubscriptionCanceled
	default:
		return outcome, nil
	}
	if sub.Status == status {
		return outcome, nil
	}

	if err := s.subRepo.UpdateStatus(ctx, sub.ID, status); err != nil {
		return nil, fmt.Errorf("failed to update subscription %s: %w", sub.ID, err)
	}
	outcome.Updated = true
	zap.S().Infof("PaymentService.applySubscription: subscription %s is now %s", sub.ID, status)
	return outcome, nil
}
