package httpserver

import (
	"net/http"

	"estate_hub/internal/domain"
)

func (h *Handlers) addWishlist(w http.ResponseWriter, r *http.Request) {
	var e domain.WishlistEntry
	if err := decodeJSON(r, &e); err != nil {
		writeError(w, r, err, "")
		return
	}
	res, created, err := h.Wishlist.Add(r.Context(), e)
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	if !created {
		writeJSON(w, http.StatusOK, message{Message: "already in wishlist"})
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handlers) listWishlist(w http.ResponseWriter, r *http.Request) {
	email, err := pathParam(r, "key")
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	out, err := h.Wishlist.ListByUser(r.Context(), email)
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) removeWishlist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "key")
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	res, err := h.Wishlist.Remove(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "wishlist entry not found")
		return
	}
	writeJSON(w, http.StatusOK, res)
}
