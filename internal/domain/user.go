package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAgent = "agent"
	RoleAdmin = "admin"

	UserStatusFraud = "fraud"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email     string             `bson:"email" json:"email" validate:"required"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Role      string             `bson:"role,omitempty" json:"role,omitempty"`
	Status    string             `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// UserDeletion is the outcome of removing a user: the store delete always
// decides the response, the identity outcome is informational.
type UserDeletion struct {
	Store    DeleteResult
	Identity IdentityOutcome
}

type IdentityOutcome struct {
	Attempted bool   `json:"attempted"`
	Deleted   bool   `json:"deleted"`
	Error     string `json:"error,omitempty"`
}

// FraudFlag carries both writes of the fraud cascade.
type FraudFlag struct {
	User       UpdateResult `json:"user"`
	Properties UpdateResult `json:"properties"`
}
