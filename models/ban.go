package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ban holds the structure for the bans collection in mongo. A ban scopes a
// user out of a single bias; a user may hold bans across several biases at
// once and multiple bans for the same (user, bias) may coexist. Enforcement
// asks "is any unexpired ban present", so bans are never mutated.
type Ban struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserEmail string             `json:"userEmail" bson:"userEmail"`
	BiasID    int64              `json:"biasId" bson:"biasId"`
	BannedBy  string             `json:"bannedBy" bson:"bannedBy"`
	Reason    string             `json:"reason" bson:"reason"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	// ExpiresAt absent means the ban is permanent
	ExpiresAt *time.Time `json:"expiresAt,omitempty" bson:"expiresAt,omitempty"`
}

// Active reports whether the ban is in force at the given instant
func (b Ban) Active(now time.Time) bool {
	return b.ExpiresAt == nil || b.ExpiresAt.After(now)
}

// BanStatus is the enforcement-check response
type BanStatus struct {
	Banned     bool  `json:"banned"`
	ActiveBans []Ban `json:"activeBans"`
}
