package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/trinetrasoft/cloud-kitchen/app/helpers"
	"github.com/trinetrasoft/cloud-kitchen/app/services"
)

type OrderHandler struct {
	render   *render.Render
	orderSvc *services.OrderService
}

func NewOrderHandler(r *render.Render, orderSvc *services.OrderService) *OrderHandler {
	return &OrderHandler{render: r, orderSvc: orderSvc}
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderSvc.ListForUser(r.Context(), helpers.GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderSvc.Get(r.Context(), helpers.GetUserIDFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, order)
}
