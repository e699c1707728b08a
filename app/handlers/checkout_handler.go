package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"

	"github.com/trinetrasoft/cloud-kitchen/app/cart"
	"github.com/trinetrasoft/cloud-kitchen/app/helpers"
	"github.com/trinetrasoft/cloud-kitchen/app/models"
	"github.com/trinetrasoft/cloud-kitchen/app/services"
	"github.com/trinetrasoft/cloud-kitchen/app/utils/sessions"
)

type CheckoutHandler struct {
	render      *render.Render
	checkoutSvc *services.CheckoutService
	sessions    *sessions.SessionStore
	validator   *validator.Validate
}

func NewCheckoutHandler(r *render.Render, checkoutSvc *services.CheckoutService, store *sessions.SessionStore, v *validator.Validate) *CheckoutHandler {
	return &CheckoutHandler{render: r, checkoutSvc: checkoutSvc, sessions: store, validator: v}
}

type CheckoutRequest struct {
	DeliveryAddress     *models.DeliveryAddress `json:"deliveryAddress"`
	SpecialInstructions string                  `json:"specialInstructions" validate:"max=1000"`
}

type checkoutResponse struct {
	*services.PlaceOrderResult
	ClientSecret string          `json:"clientSecret,omitempty"`
	Formatted    formattedTotals `json:"formatted"`
}

func newCheckoutResponse(result *services.PlaceOrderResult) checkoutResponse {
	resp := checkoutResponse{PlaceOrderResult: result, Formatted: formatBreakdown(result.Breakdown)}
	if result.Payment != nil {
		resp.ClientSecret = result.Payment.Token
	}
	return resp
}

// Checkout places an order for the session cart. The cart is cleared only
// when the order was created.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if r.ContentLength != 0 {
		if !decodeAndValidate(h.render, h.validator, w, r, &req) {
			return
		}
	}

	user := helpers.UserFromContext(r.Context())
	c := cart.New(h.sessions.Cart(w, r))

	result, err := h.checkoutSvc.CheckoutCart(r.Context(), user, c, req.DeliveryAddress, req.SpecialInstructions)
	if err != nil {
		writeError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, newCheckoutResponse(result))
}

// CreateOrder places an order for lines held by the client.
func (h *CheckoutHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req services.PlaceOrderRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		writeError(h.render, w, r, err)
		return
	}
	if len(req.Items) == 0 {
		writeError(h.render, w, r, services.ErrEmptyCart)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		writeValidationError(h.render, w, err)
		return
	}

	result, err := h.checkoutSvc.PlaceOrder(r.Context(), helpers.UserFromContext(r.Context()), req)
	if err != nil {
		writeError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, newCheckoutResponse(result))
}
