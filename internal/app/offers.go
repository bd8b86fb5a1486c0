package app

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate_hub/internal/domain"
)

type OfferService struct {
	offers     domain.OfferRepository
	properties domain.PropertyRepository
}

func NewOfferService(o domain.OfferRepository, p domain.PropertyRepository) *OfferService {
	return &OfferService{offers: o, properties: p}
}

// StatusChange reports the writes made by UpdateStatus. Siblings is only
// set when an acceptance rejected the other offers on the property.
type StatusChange struct {
	Offer    domain.UpdateResult  `json:"offer"`
	Siblings *domain.UpdateResult `json:"siblings,omitempty"`
}

// Create stores the offer as pending unless a status was given. propertyID
// is the client's string form and must be a valid id when present.
func (s *OfferService) Create(ctx context.Context, o domain.Offer, propertyID string) (domain.InsertResult, error) {
	if propertyID != "" {
		pid, err := ParseID(propertyID)
		if err != nil {
			return domain.InsertResult{}, err
		}
		o.PropertyID = pid
	}
	if o.Status == "" {
		o.Status = domain.OfferPending
	}
	o.ID = primitive.NilObjectID
	return s.offers.Insert(ctx, &o)
}

// List returns the buyer's offers, or every offer when buyerEmail is empty.
func (s *OfferService) List(ctx context.Context, buyerEmail string) ([]domain.Offer, error) {
	return s.offers.List(ctx, domain.OfferFilter{BuyerEmail: buyerEmail})
}

// ListByAgent resolves agent by shape: an email selects offers on the
// properties that agent lists, an id selects offers carrying that agentId.
func (s *OfferService) ListByAgent(ctx context.Context, agent string) ([]domain.Offer, error) {
	if strings.Contains(agent, "@") {
		props, err := s.properties.List(ctx, domain.PropertyFilter{AgentEmail: agent})
		if err != nil {
			return nil, err
		}
		ids := make([]primitive.ObjectID, 0, len(props))
		for _, p := range props {
			ids = append(ids, p.ID)
		}
		return s.offers.List(ctx, domain.OfferFilter{PropertyIDs: ids})
	}
	if _, err := ParseID(agent); err != nil {
		return nil, fmt.Errorf("%w: agent must be an email or an id", domain.ErrBadRequest)
	}
	return s.offers.List(ctx, domain.OfferFilter{AgentID: agent})
}

// UpdateStatus accepts or rejects one offer. Accepting commits the offer
// first and then rejects every other offer on the same property; the two
// writes are not atomic.
func (s *OfferService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (StatusChange, error) {
	var out StatusChange
	switch status {
	case domain.OfferAccepted:
		offer, err := s.offers.FindByID(ctx, id)
		if err != nil {
			return out, err
		}
		if out.Offer, err = s.offers.SetStatus(ctx, id, domain.OfferAccepted); err != nil {
			return out, err
		}
		if offer.PropertyID.IsZero() {
			// no property to cascade over
			return out, nil
		}
		sib, err := s.offers.SetStatusWhere(ctx, domain.OfferFilter{
			PropertyID: offer.PropertyID,
			ExcludeID:  id,
		}, domain.OfferRejected)
		if err != nil {
			return out, fmt.Errorf("offer %s accepted, siblings not rejected: %w", id.Hex(), err)
		}
		out.Siblings = &sib
		return out, nil

	case domain.OfferRejected:
		res, err := s.offers.SetStatus(ctx, id, domain.OfferRejected)
		out.Offer = res
		return out, err

	default:
		return out, fmt.Errorf("%w: %q (want %s or %s)", domain.ErrInvalidStatus, status, domain.OfferAccepted, domain.OfferRejected)
	}
}

// Sold lists the agent's offers that ended in a purchase.
func (s *OfferService) Sold(ctx context.Context, agentEmail string) ([]domain.Offer, error) {
	if agentEmail == "" {
		return nil, &domain.ValidationError{Fields: []string{"email"}}
	}
	return s.offers.List(ctx, domain.OfferFilter{AgentEmail: agentEmail, Status: domain.OfferBought})
}
