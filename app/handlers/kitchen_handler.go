package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/trinetrasoft/cloud-kitchen/app/services"
)

type KitchenHandler struct {
	render     *render.Render
	kitchenSvc *services.KitchenService
}

func NewKitchenHandler(r *render.Render, kitchenSvc *services.KitchenService) *KitchenHandler {
	return &KitchenHandler{render: r, kitchenSvc: kitchenSvc}
}

func (h *KitchenHandler) ListKitchens(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kitchens, err := h.kitchenSvc.ListKitchens(r.Context(), services.KitchenFilter{
		Cuisine: q.Get("cuisine"),
		Region:  q.Get("region"),
		Q:       q.Get("q"),
	})
	if err != nil {
		writeError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, kitchens)
}

func (h *KitchenHandler) GetKitchen(w http.ResponseWriter, r *http.Request) {
	kitchen, err := h.kitchenSvc.GetKitchen(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, kitchen)
}

func (h *KitchenHandler) ListMenu(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.kitchenSvc.ListMenu(r.Context(), services.MenuQuery{
		KitchenID:  q.Get("kitchenId"),
		Category:   q.Get("category"),
		DietaryTag: q.Get("dietary"),
		Q:          q.Get("q"),
	})
	if err != nil {
		writeError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, items)
}

func (h *KitchenHandler) Search(w http.ResponseWriter, r *http.Request) {
	result, err := h.kitchenSvc.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(h.render, w, r, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, result)
}
