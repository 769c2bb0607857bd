package models

// EntityKind represents the closed set of reportable content kinds
type EntityKind string

// Predefined EntityKind values
const (
	EntityKindThread   EntityKind = "THREAD"
	EntityKindComment  EntityKind = "COMMENT"
	EntityKindRevision EntityKind = "REVISION"
	EntityKindBlob     EntityKind = "BLOB"
)

// ValidEntityKinds returns all valid EntityKind values
func ValidEntityKinds() []EntityKind {
	return []EntityKind{
		EntityKindThread,
		EntityKindComment,
		EntityKindRevision,
		EntityKindBlob,
	}
}

// IsValid checks if the EntityKind value is one of the predefined constants
func (k EntityKind) IsValid() bool {
	for _, validKind := range ValidEntityKinds() {
		if k == validKind {
			return true
		}
	}
	return false
}

// String returns the string representation of the EntityKind
func (k EntityKind) String() string {
	return string(k)
}

// TargetContext is the minimal entity context needed for an authorization
// decision. Language is nil for blobs, which are bias-scoped only.
type TargetContext struct {
	BiasID   int64   `json:"biasId"`
	Language *string `json:"language,omitempty"`
}

// Thread holds the structure for the threads collection in mongo
type Thread struct {
	ID               int64   `json:"_id" bson:"_id"`
	BiasID           int64   `json:"biasId" bson:"biasId"`
	Language         string  `json:"language" bson:"language"`
	ViolatesLaw      bool    `json:"violatesLaw" bson:"violatesLaw"`
	ViolatesLawSetBy *string `json:"violatesLawSetBy,omitempty" bson:"violatesLawSetBy,omitempty"`
}

// Comment holds the structure for the comments collection in mongo. Bias and
// language come from the owning thread.
type Comment struct {
	ID               int64   `json:"_id" bson:"_id"`
	ThreadID         int64   `json:"threadId" bson:"threadId"`
	ViolatesLaw      bool    `json:"violatesLaw" bson:"violatesLaw"`
	ViolatesLawSetBy *string `json:"violatesLawSetBy,omitempty" bson:"violatesLawSetBy,omitempty"`
}

// Revision holds the structure for the revisions collection in mongo.
// Language comes from the owning article.
type Revision struct {
	ID               int64   `json:"_id" bson:"_id"`
	BiasID           int64   `json:"biasId" bson:"biasId"`
	ArticleID        int64   `json:"articleId" bson:"articleId"`
	ViolatesLaw      bool    `json:"violatesLaw" bson:"violatesLaw"`
	ViolatesLawSetBy *string `json:"violatesLawSetBy,omitempty" bson:"violatesLawSetBy,omitempty"`
}

// Article holds the structure for the articles collection in mongo
type Article struct {
	ID       int64  `json:"_id" bson:"_id"`
	Language string `json:"language" bson:"language"`
}

// Blob holds the structure for the blobs collection in mongo. Blobs carry no
// language; their scoping is bias-only.
type Blob struct {
	ID               int64   `json:"_id" bson:"_id"`
	BiasID           int64   `json:"biasId" bson:"biasId"`
	ViolatesLaw      bool    `json:"violatesLaw" bson:"violatesLaw"`
	ViolatesLawSetBy *string `json:"violatesLawSetBy,omitempty" bson:"violatesLawSetBy,omitempty"`
}
