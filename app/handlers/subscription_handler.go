package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"

	"github.com/trinetrasoft/cloud-kitchen/app/helpers"
	"github.com/trinetrasoft/cloud-kitchen/app/models"
	"github.com/trinetrasoft/cloud-kitchen/app/services"
)

type SubscriptionHandler struct {
	render    *render.Render
	subSvc    *services.SubscriptionService
	validator *validator.Validate
}

func NewSubscriptionHandler(r *render.Render, subSvc *services.SubscriptionService, v *validator.Validate) *SubscriptionHandler {
	return &SubscriptionHandler{render: r, subSvc: subSvc, validator: v}
}

type SubscribeRequest struct {
	Tier models.SubscriptionTier `json:"tier" validate:"required"`
}

type subscriptionResponse struct {
	Subscription *models.Subscription      `json:"subscription"`
	Plans        []models.SubscriptionPlan `json:"plans"`
}

func (h *SubscriptionHandler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	sub, err := h.subSvc.Active(r.Context(), helpers.GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, subscriptionResponse{Subscription: sub, Plans: h.subSvc.Plans()})
}

func (h *SubscriptionHandler) Plans(w http.ResponseWriter, r *http.Request) {
	_ = h.render.JSON(w, http.StatusOK, h.subSvc.Plans())
}

func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if !decodeAndValidate(h.render, h.validator, w, r, &req) {
		return
	}

	result, err := h.subSvc.Subscribe(r.Context(), helpers.UserFromContext(r.Context()), req.Tier)
	if err != nil {
		writeError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, result)
}
