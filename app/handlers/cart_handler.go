package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"

	"github.com/trinetrasoft/cloud-kitchen/app/cart"
	"github.com/trinetrasoft/cloud-kitchen/app/helpers"
	"github.com/trinetrasoft/cloud-kitchen/app/services"
	"github.com/trinetrasoft/cloud-kitchen/app/utils/calc"
	"github.com/trinetrasoft/cloud-kitchen/app/utils/format"
	"github.com/trinetrasoft/cloud-kitchen/app/utils/sessions"
)

type CartHandler struct {
	render    *render.Render
	cartSvc   *services.CartService
	sessions  *sessions.SessionStore
	validator *validator.Validate
}

func NewCartHandler(r *render.Render, cartSvc *services.CartService, store *sessions.SessionStore, v *validator.Validate) *CartHandler {
	return &CartHandler{render: r, cartSvc: cartSvc, sessions: store, validator: v}
}

type AddToCartRequest struct {
	MenuItemID          string `json:"menuItemId" validate:"required"`
	Quantity            int    `json:"quantity" validate:"required,gt=0"`
	SpecialInstructions string `json:"specialInstructions" validate:"max=500"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type UpdateInstructionsRequest struct {
	SpecialInstructions string `json:"specialInstructions" validate:"max=500"`
}

// formattedTotals is the breakdown rendered for display.
type formattedTotals struct {
	Subtotal    string `json:"subtotal"`
	PlatformFee string `json:"platformFee"`
	DeliveryFee string `json:"deliveryFee"`
	Tax         string `json:"tax"`
	Discount    string `json:"discount,omitempty"`
	Total       string `json:"total"`
}

func formatBreakdown(b calc.Breakdown) formattedTotals {
	out := formattedTotals{
		Subtotal:    format.USD(b.Subtotal),
		PlatformFee: format.USD(b.PlatformFee),
		DeliveryFee: format.DeliveryFee(b.DeliveryFee),
		Tax:         format.USD(b.TaxAmount),
		Total:       format.USD(b.FinalAmount),
	}
	if b.DiscountAmount.GreaterThan(decimal.Zero) {
		out.Discount = "-" + format.USD(b.DiscountAmount)
	}
	return out
}

type cartResponse struct {
	*services.CartSummary
	Formatted formattedTotals `json:"formatted"`
}

func (h *CartHandler) load(w http.ResponseWriter, r *http.Request) *cart.Cart {
	return cart.New(h.sessions.Cart(w, r))
}

func (h *CartHandler) respond(w http.ResponseWriter, r *http.Request, c *cart.Cart, status int) {
	summary, err := h.cartSvc.Summary(r.Context(), helpers.GetUserIDFromContext(r.Context()), c)
	if err != nil {
		writeError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, status, cartResponse{CartSummary: summary, Formatted: formatBreakdown(summary.Breakdown)})
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.load(w, r), http.StatusOK)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if !decodeAndValidate(h.render, h.validator, w, r, &req) {
		return
	}

	c := h.load(w, r)
	if err := h.cartSvc.AddMenuItem(r.Context(), c, req.MenuItemID, req.Quantity, req.SpecialInstructions); err != nil {
		writeError(h.render, w, r, err)
		return
	}
	h.respond(w, r, c, http.StatusCreated)
}

// UpdateItem sets a line's quantity; zero or less removes the line.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateCartItemRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		writeError(h.render, w, r, err)
		return
	}

	c := h.load(w, r)
	c.UpdateQuantity(mux.Vars(r)["lineId"], req.Quantity)
	h.respond(w, r, c, http.StatusOK)
}

func (h *CartHandler) UpdateInstructions(w http.ResponseWriter, r *http.Request) {
	var req UpdateInstructionsRequest
	if !decodeAndValidate(h.render, h.validator, w, r, &req) {
		return
	}

	c := h.load(w, r)
	c.UpdateSpecialInstructions(mux.Vars(r)["lineId"], req.SpecialInstructions)
	h.respond(w, r, c, http.StatusOK)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c := h.load(w, r)
	c.RemoveItem(mux.Vars(r)["lineId"])
	h.respond(w, r, c, http.StatusOK)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	c := h.load(w, r)
	c.Clear()
	h.respond(w, r, c, http.StatusOK)
}
