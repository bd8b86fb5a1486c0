package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate_hub/internal/app"
	"estate_hub/internal/domain"
)

const maxBody = 1 << 20

type Handlers struct {
	Users      *app.UserService
	Properties *app.PropertyService
	Wishlist   *app.WishlistService
	Reviews    *app.ReviewService
	Offers     *app.OfferService
}

type problem struct {
	Type   string   `json:"type"`
	Title  string   `json:"title"`
	Status int      `json:"status"`
	Detail string   `json:"detail,omitempty"`
	Fields []string `json:"fields,omitempty"`
}

// message wraps a raw store result with a human readable line.
type message struct {
	Message string `json:"message"`
	Result  any    `json:"result,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Real estate server is running"))
	})
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Post("/users", h.registerUser)
	s.mux.Get("/users", h.listUsers)
	s.mux.Get("/users/role/{email}", h.userRole)
	s.mux.Patch("/users/{id}/role", h.setUserRole)
	s.mux.Patch("/users/{id}/fraud", h.flagFraud)
	s.mux.Delete("/users/{id}", h.deleteUser)

	s.mux.Get("/properties", h.listProperties)
	s.mux.Post("/properties", h.createProperty)
	s.mux.Get("/properties/{id}", h.getProperty)
	s.mux.Patch("/properties/{id}", h.updateProperty)
	s.mux.Delete("/properties/{id}", h.deleteProperty)
	s.mux.Patch("/properties/{id}/verify", h.verifyProperty)
	s.mux.Patch("/properties/{id}/reject", h.rejectProperty)

	// GET takes an email, DELETE an entry id; chi needs one param name per segment.
	s.mux.Post("/wishlist", h.addWishlist)
	s.mux.Get("/wishlist/{key}", h.listWishlist)
	s.mux.Delete("/wishlist/{key}", h.removeWishlist)

	s.mux.Get("/reviews", h.listReviews)
	s.mux.Post("/reviews", h.createReview)
	s.mux.Get("/reviews/{id}", h.listPropertyReviews)
	s.mux.Delete("/reviews/{id}", h.deleteReview)

	s.mux.Post("/offers", h.createOffer)
	s.mux.Get("/offers", h.listOffers)
	s.mux.Get("/offers/agent/{agent}", h.listAgentOffers)
	s.mux.Patch("/offers/status/{id}", h.updateOfferStatus)
	s.mux.Get("/sold-properties", h.listSold)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeProblemWith(w, problem{Type: "about:blank", Title: title, Status: status, Detail: detail})
}

func writeProblemWith(w http.ResponseWriter, p problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// writeError maps service errors onto problem responses. notFound is the
// detail used for a 404.
func writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeProblemWith(w, problem{Type: "about:blank", Title: "Validation Failed", Status: http.StatusBadRequest, Detail: ve.Error(), Fields: ve.Fields})
	case errors.Is(err, domain.ErrInvalidID):
		writeProblem(w, http.StatusBadRequest, "Invalid ID", err.Error())
	case errors.Is(err, domain.ErrInvalidStatus):
		writeProblem(w, http.StatusBadRequest, "Invalid Status", err.Error())
	case errors.Is(err, domain.ErrBadRequest):
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", notFound)
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}

// decodeJSON reads one JSON document from the body into dst.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(dst)
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: empty body", domain.ErrBadRequest)
	}
	if err != nil {
		return fmt.Errorf("%w: malformed JSON: %v", domain.ErrBadRequest, err)
	}
	return nil
}

// pathParam returns the decoded path parameter. chi matches on the raw
// path when the client escaped it, so "ann%40x.com" arrives still encoded.
func pathParam(r *http.Request, name string) (string, error) {
	v, err := url.PathUnescape(chi.URLParam(r, name))
	if err != nil {
		return "", fmt.Errorf("%w: malformed path parameter %s", domain.ErrBadRequest, name)
	}
	return v, nil
}

func pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	v, err := pathParam(r, name)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return app.ParseID(v)
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCacheable serves v with a weak ETag and answers 304 when the client
// already holds the same version.
func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "response encoding failed")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}
