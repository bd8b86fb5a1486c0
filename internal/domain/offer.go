package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OfferPending  = "pending"
	OfferAccepted = "accepted"
	OfferRejected = "rejected"
	OfferBought   = "bought"
)

type Offer struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	PropertyID       primitive.ObjectID `bson:"propertyId,omitempty" json:"propertyId,omitempty"`
	PropertyTitle    string             `bson:"propertyTitle,omitempty" json:"propertyTitle,omitempty"`
	PropertyLocation string             `bson:"propertyLocation,omitempty" json:"propertyLocation,omitempty"`
	PropertyImage    string             `bson:"propertyImage,omitempty" json:"propertyImage,omitempty"`
	AgentName        string             `bson:"agentName,omitempty" json:"agentName,omitempty"`
	AgentEmail       string             `bson:"agentEmail,omitempty" json:"agentEmail,omitempty"`
	AgentID          string             `bson:"agentId,omitempty" json:"agentId,omitempty"`
	BuyerEmail       string             `bson:"buyerEmail,omitempty" json:"buyerEmail,omitempty"`
	BuyerName        string             `bson:"buyerName,omitempty" json:"buyerName,omitempty"`
	OfferAmount      *float64           `bson:"offerAmount,omitempty" json:"offerAmount,omitempty"`
	BuyingDate       string             `bson:"buyingDate,omitempty" json:"buyingDate,omitempty"`
	Status           string             `bson:"status" json:"status"`
}

// OfferFilter matches offers on every non-zero field.
type OfferFilter struct {
	BuyerEmail  string
	AgentEmail  string
	AgentID     string
	Status      string
	PropertyID  primitive.ObjectID
	PropertyIDs []primitive.ObjectID // nil means "any"; empty matches nothing
	ExcludeID   primitive.ObjectID
}
