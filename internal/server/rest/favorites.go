package rest

import "net/http"

func (h *Handler) listFavorites(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	items, err := h.favorites.List(r.Context(), user.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	out := make([]favoriteResponse, 0, len(items))
	for _, f := range items {
		out = append(out, toFavorite(f))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) addFavorite(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	var req favoriteAddRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.invalid(w, err.Error())
		return
	}
	if req.ProductID == nil {
		h.invalid(w, "product_id is required")
		return
	}

	fav, err := h.favorites.Add(r.Context(), user.ID, *req.ProductID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toFavorite(fav))
}

func (h *Handler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	productID, ok := h.pathID(w, r, "product_id")
	if !ok {
		return
	}

	if err := h.favorites.Remove(r.Context(), user.ID, productID); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Favorite removed"})
}
