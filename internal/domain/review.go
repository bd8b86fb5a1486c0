package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	PropertyID    string             `bson:"propertyId" json:"propertyId"`
	PropertyTitle string             `bson:"propertyTitle,omitempty" json:"propertyTitle,omitempty"`
	UserEmail     string             `bson:"userEmail" json:"userEmail"`
	UserName      string             `bson:"userName,omitempty" json:"userName,omitempty"`
	UserImage     string             `bson:"userImage,omitempty" json:"userImage,omitempty"`
	AgentName     string             `bson:"agentName,omitempty" json:"agentName,omitempty"`
	Rating        *float64           `bson:"rating,omitempty" json:"rating,omitempty"`
	Comment       string             `bson:"comment,omitempty" json:"comment,omitempty"`
	Time          time.Time          `bson:"time" json:"time"` // set by the server on create
}

// ReviewFilter selects reviews. Latest > 0 ignores the other fields and
// returns the newest Latest reviews across all properties.
type ReviewFilter struct {
	PropertyID string
	UserEmail  string
	Latest     int
}
