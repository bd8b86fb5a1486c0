package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"estate_hub/internal/domain"
)

// listReviews honours latest first, then email, then returns everything.
// An empty latest counts as absent.
func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	latest := 0
	if q.Get("latest") != "" {
		n, err := strconv.Atoi(q.Get("latest"))
		if err != nil || n <= 0 {
			writeError(w, r, fmt.Errorf("%w: latest must be a positive integer", domain.ErrBadRequest), "")
			return
		}
		latest = n
	}
	out, err := h.Reviews.List(r.Context(), latest, q.Get("email"))
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	var rv domain.Review
	if err := decodeJSON(r, &rv); err != nil {
		writeError(w, r, err, "")
		return
	}
	res, err := h.Reviews.Create(r.Context(), rv)
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handlers) listPropertyReviews(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathParam(r, "id")
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	out, err := h.Reviews.ListByProperty(r.Context(), propertyID)
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	writeCacheable(w, r, out)
}

func (h *Handlers) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	res, err := h.Reviews.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, res)
}
