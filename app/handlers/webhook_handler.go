package handlers

import (
	"net/http"

	"github.com/unrolled/render"
	"go.uber.org/zap"

	"github.com/trinetrasoft/cloud-kitchen/app/helpers"
	"github.com/trinetrasoft/cloud-kitchen/app/services"
)

type WebhookHandler struct {
	render     *render.Render
	paymentSvc *services.PaymentService
}

func NewWebhookHandler(r *render.Render, paymentSvc *services.PaymentService) *WebhookHandler {
	return &WebhookHandler{render: r, paymentSvc: paymentSvc}
}

// PaymentNotification carries only the reference; the status is always
// re-read from the provider. order_id is the gateway's name for it.
type PaymentNotification struct {
	Reference string `json:"reference"`
	OrderID   string `json:"order_id"`
}

func (n PaymentNotification) reference() string {
	if n.Reference != "" {
		return n.Reference
	}
	return n.OrderID
}

func (h *WebhookHandler) PaymentNotification(w http.ResponseWriter, r *http.Request) {
	var payload PaymentNotification
	if err := helpers.DecodeJSON(r, &payload); err != nil {
		writeError(h.render, w, r, err)
		return
	}

	outcome, err := h.paymentSvc.HandleNotification(r.Context(), payload.reference())
	if err != nil {
		zap.S().Warnf("WebhookHandler.PaymentNotification: %s: %v", payload.reference(), err)
		writeError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, outcome)
}
