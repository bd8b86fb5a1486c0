package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
	VerificationFraud    = "fraud"
)

type Property struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title              string             `bson:"title" json:"title" validate:"required"`
	Location           string             `bson:"location" json:"location" validate:"required"`
	Image              string             `bson:"image" json:"image" validate:"required"`
	Description        string             `bson:"description,omitempty" json:"description,omitempty"`
	AgentName          string             `bson:"agentName" json:"agentName" validate:"required"`
	AgentEmail         string             `bson:"agentEmail" json:"agentEmail" validate:"required"`
	AgentID            string             `bson:"agentId,omitempty" json:"agentId,omitempty"`
	PriceMin           *float64           `bson:"priceMin" json:"priceMin" validate:"required"`
	PriceMax           *float64           `bson:"priceMax" json:"priceMax" validate:"required"`
	VerificationStatus string             `bson:"verificationStatus" json:"verificationStatus"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
}

// PropertyPatch lists the client-editable fields; nil means "leave as is".
type PropertyPatch struct {
	Title       *string  `json:"title"`
	Location    *string  `json:"location"`
	Image       *string  `json:"image"`
	Description *string  `json:"description"`
	AgentName   *string  `json:"agentName"`
	AgentEmail  *string  `json:"agentEmail"`
	PriceMin    *float64 `json:"priceMin"`
	PriceMax    *float64 `json:"priceMax"`
}

// Fields returns the provided values keyed by their stored field names.
func (p PropertyPatch) Fields() map[string]any {
	out := map[string]any{}
	if p.Title != nil {
		out["title"] = *p.Title
	}
	if p.Location != nil {
		out["location"] = *p.Location
	}
	if p.Image != nil {
		out["image"] = *p.Image
	}
	if p.Description != nil {
		out["description"] = *p.Description
	}
	if p.AgentName != nil {
		out["agentName"] = *p.AgentName
	}
	if p.AgentEmail != nil {
		out["agentEmail"] = *p.AgentEmail
	}
	if p.PriceMin != nil {
		out["priceMin"] = *p.PriceMin
	}
	if p.PriceMax != nil {
		out["priceMax"] = *p.PriceMax
	}
	return out
}

type PropertyFilter struct {
	AgentEmail         string
	AgentID            string
	VerificationStatus string
}

// Apply merges the patch into dst and reports whether any value changed.
func (p PropertyPatch) Apply(dst *Property) bool {
	changed := false
	str := func(dst *string, v *string) {
		if v != nil && *dst != *v {
			*dst = *v
			changed = true
		}
	}
	num := func(dst **float64, v *float64) {
		if v != nil && (*dst == nil || **dst != *v) {
			n := *v
			*dst = &n
			changed = true
		}
	}
	str(&dst.Title, p.Title)
	str(&dst.Location, p.Location)
	str(&dst.Image, p.Image)
	str(&dst.Description, p.Description)
	str(&dst.AgentName, p.AgentName)
	str(&dst.AgentEmail, p.AgentEmail)
	num(&dst.PriceMin, p.PriceMin)
	num(&dst.PriceMax, p.PriceMax)
	return changed
}
