package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role represents the moderation capability level of a user
type Role string

// Predefined Role values
const (
	RoleUser        Role = "USER"
	RoleModerator   Role = "MODERATOR"
	RoleAdmin       Role = "ADMIN"
	RoleGlobalAdmin Role = "GLOBAL_ADMIN"
)

// ValidRoles returns all valid Role values
func ValidRoles() []Role {
	return []Role{
		RoleUser,
		RoleModerator,
		RoleAdmin,
		RoleGlobalAdmin,
	}
}

// IsValid checks if the Role value is one of the predefined constants
func (r Role) IsValid() bool {
	for _, validRole := range ValidRoles() {
		if r == validRole {
			return true
		}
	}
	return false
}

// String returns the string representation of the Role
func (r Role) String() string {
	return string(r)
}

// ModeratedScope is the (bias, language) pair that bounds a moderator's
// authority. The scope has its own identity separate from the moderator's
// user id; audit fields record the scope id.
type ModeratedScope struct {
	ID       primitive.ObjectID `json:"id" bson:"_id"`
	BiasID   int64              `json:"biasId" bson:"biasId"`
	Language string             `json:"language" bson:"language"`
}

// Actor is the resolved identity a request acts as. A user holds at most one
// non-USER capability context: AdminLanguage is set only for ADMIN,
// ModeratedScope only for moderators.
type Actor struct {
	ID             string          `json:"id"`
	Role           Role            `json:"role"`
	AdminLanguage  *string         `json:"adminLanguage,omitempty"`
	ModeratedScope *ModeratedScope `json:"moderatedScope,omitempty"`
}
