package httpserver

import (
	"net/http"

	"estate_hub/internal/domain"
)

// roleResponse omits role for users that never got one.
type roleResponse struct {
	Role string `json:"role,omitempty"`
}

func (h *Handlers) registerUser(w http.ResponseWriter, r *http.Request) {
	var u domain.User
	if err := decodeJSON(r, &u); err != nil {
		writeError(w, r, err, "")
		return
	}
	res, created, err := h.Users.Register(r.Context(), u)
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	if !created {
		writeJSON(w, http.StatusOK, map[string]any{"message": "user already exists", "insertedId": nil})
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	out, err := h.Users.List(r.Context())
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) userRole(w http.ResponseWriter, r *http.Request) {
	email, err := pathParam(r, "email")
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	role, err := h.Users.Role(r.Context(), email)
	if err != nil {
		writeError(w, r, err, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, roleResponse{Role: role})
}

func (h *Handlers) setUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	var body struct {
		Role string `json:"role"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err, "")
		return
	}
	res, err := h.Users.SetRole(r.Context(), id, body.Role)
	if err != nil {
		writeError(w, r, err, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) flagFraud(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	out, err := h.Users.FlagFraud(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "user marked as fraud", "user": out.User, "properties": out.Properties})
}

func (h *Handlers) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	out, err := h.Users.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":      "user deleted",
		"acknowledged": out.Store.Acknowledged,
		"deletedCount": out.Store.DeletedCount,
		"identity":     out.Identity,
	})
}
