package httpserver

import (
	"net/http"

	"estate_hub/internal/domain"
)

// offerRequest takes propertyId as the client's string; the service turns
// it into an id.
type offerRequest struct {
	domain.Offer
	PropertyID string `json:"propertyId"`
}

func (h *Handlers) createOffer(w http.ResponseWriter, r *http.Request) {
	var req offerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, "")
		return
	}
	res, err := h.Offers.Create(r.Context(), req.Offer, req.PropertyID)
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handlers) listOffers(w http.ResponseWriter, r *http.Request) {
	out, err := h.Offers.List(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) listAgentOffers(w http.ResponseWriter, r *http.Request) {
	agent, err := pathParam(r, "agent")
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	out, err := h.Offers.ListByAgent(r.Context(), agent)
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) updateOfferStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err, "")
		return
	}
	out, err := h.Offers.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		writeError(w, r, err, "offer not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "offer " + body.Status, "result": out})
}

func (h *Handlers) listSold(w http.ResponseWriter, r *http.Request) {
	out, err := h.Offers.Sold(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, out)
}
