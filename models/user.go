package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User holds the structure for the user collection in mongo
type User struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details UserDetails        `json:"user" bson:"user"`
	Version int32              `json:"__v" bson:"__v"`
}

// UserDetails holds the structure for the inner user structure as defined in
// the user collection in mongo
type UserDetails struct {
	Email          string          `json:"email" bson:"email"`
	Name           string          `json:"name" bson:"name"`
	Username       string          `json:"username" bson:"username"`
	Password       string          `json:"password" bson:"password"`
	Role           Role            `json:"role" bson:"role"`
	AdminLanguage  *string         `json:"adminLanguage,omitempty" bson:"adminLanguage,omitempty"`
	ModeratedScope *ModeratedScope `json:"moderatedScope,omitempty" bson:"moderatedScope,omitempty"`
	CreatedAt      interface{}     `json:"createdAt" bson:"createdAt"`
	UpdatedAt      interface{}     `json:"updatedAt" bson:"updatedAt"`
}

// Actor resolves the user document into the flat capability record the
// authorization table evaluates
func (u User) Actor() Actor {
	return Actor{
		ID:             u.ID.Hex(),
		Role:           u.Details.Role,
		AdminLanguage:  u.Details.AdminLanguage,
		ModeratedScope: u.Details.ModeratedScope,
	}
}
