package httpserver

import (
	"net/http"

	"estate_hub/internal/domain"
)

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.PropertyFilter{
		AgentEmail:         q.Get("agentEmail"),
		VerificationStatus: q.Get("verificationStatus"),
	}
	out, err := h.Properties.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) createProperty(w http.ResponseWriter, r *http.Request) {
	var p domain.Property
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, r, err, "")
		return
	}
	res, err := h.Properties.Create(r.Context(), p)
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	p, err := h.Properties.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "property not found")
		return
	}
	writeCacheable(w, r, p)
}

func (h *Handlers) updateProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	var patch domain.PropertyPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, err, "")
		return
	}
	res, err := h.Properties.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, err, "property not found or no changes made")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) deleteProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	res, err := h.Properties.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) verifyProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	res, err := h.Properties.Verify(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, message{Message: "property verified", Result: res})
}

func (h *Handlers) rejectProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	res, err := h.Properties.Reject(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, message{Message: "property rejected", Result: res})
}
