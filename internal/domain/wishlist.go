package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WishlistEntry links a user to a property. Older entries carry the user
// under "email"; new ones are written with "userEmail".
type WishlistEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	PropertyID string             `bson:"propertyId" json:"propertyId"`
	UserEmail  string             `bson:"userEmail,omitempty" json:"userEmail,omitempty"`
	Email      string             `bson:"email,omitempty" json:"email,omitempty"`
	Title      string             `bson:"title,omitempty" json:"title,omitempty"`
	Location   string             `bson:"location,omitempty" json:"location,omitempty"`
	Image      string             `bson:"image,omitempty" json:"image,omitempty"`
	AgentName  string             `bson:"agentName,omitempty" json:"agentName,omitempty"`
	PriceMin   *float64           `bson:"priceMin,omitempty" json:"priceMin,omitempty"`
	PriceMax   *float64           `bson:"priceMax,omitempty" json:"priceMax,omitempty"`
	AddedAt    time.Time          `bson:"addedAt" json:"addedAt"`
}

// Owner returns the user identifier, preferring userEmail.
func (w WishlistEntry) Owner() string {
	if w.UserEmail != "" {
		return w.UserEmail
	}
	return w.Email
}
