package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/trinetrasoft/cloud-kitchen/app/helpers"
	"github.com/trinetrasoft/cloud-kitchen/app/models"
	"github.com/trinetrasoft/cloud-kitchen/app/services"
)

// DashboardHandler serves kitchen owners.
type DashboardHandler struct {
	render     *render.Render
	orderSvc   *services.OrderService
	kitchenSvc *services.KitchenService
	validator  *validator.Validate
}

func NewDashboardHandler(r *render.Render, orderSvc *services.OrderService, kitchenSvc *services.KitchenService, v *validator.Validate) *DashboardHandler {
	return &DashboardHandler{render: r, orderSvc: orderSvc, kitchenSvc: kitchenSvc, validator: v}
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

type AvailabilityRequest struct {
	IsAvailable bool `json:"isAvailable"`
}

func (h *DashboardHandler) MyKitchens(w http.ResponseWriter, r *http.Request) {
	kitchens, err := h.kitchenSvc.OwnedKitchens(r.Context(), helpers.GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(h.render, w, r, err)
		return
	}
	if kitchens == nil {
		kitchens = []models.Kitchen{}
	}
	_ = h.render.JSON(w, http.StatusOK, kitchens)
}

func (h *DashboardHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	status := models.OrderStatus(r.URL.Query().Get("status"))
	orders, err := h.orderSvc.ListForKitchenOwner(r.Context(), helpers.GetUserIDFromContext(r.Context()), status)
	if err != nil {
		writeError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, orders)
}

func (h *DashboardHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateOrderStatusRequest
	if !decodeAndValidate(h.render, h.validator, w, r, &req) {
		return
	}

	order, err := h.orderSvc.UpdateStatusAsOwner(r.Context(), helpers.GetUserIDFromContext(r.Context()), mux.Vars(r)["id"], req.Status)
	if err != nil {
		writeError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, order)
}

func (h *DashboardHandler) RejectOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderSvc.Reject(r.Context(), helpers.GetUserIDFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, order)
}

func (h *DashboardHandler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req services.MenuItemInput
	if !decodeAndValidate(h.render, h.validator, w, r, &req) {
		return
	}

	item, err := h.kitchenSvc.CreateMenuItem(r.Context(), helpers.GetUserIDFromContext(r.Context()), mux.Vars(r)["kitchenId"], req)
	if err != nil {
		writeError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, item)
}

func (h *DashboardHandler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req services.MenuItemInput
	if !decodeAndValidate(h.render, h.validator, w, r, &req) {
		return
	}

	item, err := h.kitchenSvc.UpdateMenuItem(r.Context(), helpers.GetUserIDFromContext(r.Context()), mux.Vars(r)["id"], req)
	if err != nil {
		writeError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, item)
}

func (h *DashboardHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	var req AvailabilityRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		writeError(h.render, w, r, err)
		return
	}

	item, err := h.kitchenSvc.SetMenuItemAvailability(r.Context(), helpers.GetUserIDFromContext(r.Context()), mux.Vars(r)["id"], req.IsAvailable)
	if err != nil {
		writeError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, item)
}
