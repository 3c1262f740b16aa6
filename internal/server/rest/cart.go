package rest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) listCart(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	items, err := h.cart.List(r.Context(), user.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	out := make([]cartItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toCartItem(it))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	var req cartAddRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.invalid(w, err.Error())
		return
	}
	if req.ProductID == nil {
		h.invalid(w, "product_id is required")
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	item, err := h.cart.Add(r.Context(), user.ID, *req.ProductID, quantity, req.SelectedColor)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartItem(item))
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	productID, ok := h.pathID(w, r, "product_id")
	if !ok {
		return
	}

	if err := h.cart.Remove(r.Context(), user.ID, productID); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Item removed"})
}

// pathID parses an integer URL parameter, answering 422 when it is not one.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		h.invalid(w, name+" must be an integer")
		return 0, false
	}
	return id, true
}
