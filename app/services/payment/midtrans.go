package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
	"go.uber.org/zap"

	"github.com/trinetrasoft/cloud-kitchen/app/models"
)

const MidtransProviderName = "midtrans"

type MidtransConfig struct {
	ServerKey  string
	ClientKey  string
	Production bool
	FinishURL  string
}

type MidtransProvider struct {
	snap      snap.Client
	core      coreapi.Client
	finishURL string
}

func NewMidtransProvider(cfg MidtransConfig) *MidtransProvider {
	env := midtrans.Sandbox
	if cfg.Production {
		env = midtrans.Production
	}

	p := &MidtransProvider{finishURL: cfg.FinishURL}
	p.snap.New(cfg.ServerKey, env)
	p.core.New(cfg.ServerKey, env)
	midtrans.ClientKey = cfg.ClientKey
	return p
}

func (p *MidtransProvider) Name() string {
	return MidtransProviderName
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func (p *MidtransProvider) CreatePayment(ctx context.Context, req Request) (*Intent, error) {
	gross := MinorUnits(req.Amount)

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.Reference,
			GrossAmt: gross,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:    req.Reference,
			Name:  truncate(req.Description, 50),
			Price: gross,
			Qty:   1,
		}},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.Customer.FirstName,
			LName: req.Customer.LastName,
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}
	if p.finishURL != "" {
		snapReq.Callbacks = &snap.Callbacks{Finish: p.finishURL + "?reference=" + req.Reference}
	}

	resp, midtransErr := p.snap.CreateTransaction(snapReq)
	if midtransErr != nil {
		zap.S().Errorf("MidtransProvider.CreatePayment: CreateTransaction failed for %s: %v", req.Reference, midtransErr)
		return nil, fmt.Errorf("failed to initiate Midtrans transaction: %w", midtransErr)
	}
	if resp == nil || resp.Token == "" || resp.RedirectURL == "" {
		return nil, errors.New("midtrans transaction initiated but returned invalid response (missing redirect URL or token)")
	}

	return &Intent{
		Reference:   req.Reference,
		IntentID:    resp.Token,
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
	}, nil
}

// CheckStatus asks Midtrans for the authoritative transaction state rather
// than trusting the notification body.
func (p *MidtransProvider) CheckStatus(ctx context.Context, reference string) (*Result, error) {
	status, midtransErr := p.core.CheckTransaction(reference)
	if midtransErr != nil {
		return nil, fmt.Errorf("failed to verify transaction with Midtrans: %w", midtransErr)
	}
	if status == nil {
		return nil, errors.New("invalid transaction status from Midtrans (nil response)")
	}
	if status.StatusCode == "404" {
		return nil, ErrUnknownReference
	}
	if len(status.StatusCode) > 0 && status.StatusCode[0] == '5' {
		return nil, fmt.Errorf("midtrans API server error: %s", status.StatusCode)
	}

	return &Result{
		Reference: reference,
		Status:    mapMidtransStatus(status.TransactionStatus, status.FraudStatus),
		Method:    status.PaymentType,
	}, nil
}

func mapMidtransStatus(transactionStatus, fraudStatus string) models.PaymentStatus {
	switch transactionStatus {
	case "capture", "settlement":
		if fraudStatus == "" || fraudStatus == "accept" {
			return models.PaymentStatusPaid
		}
		return models.PaymentStatusFailed
	case "deny", "expire", "cancel", "failure":
		return models.PaymentStatusFailed
	case "refund", "partial_refund":
		return models.PaymentStatusRefunded
	default:
		return models.PaymentStatusPending
	}
}
