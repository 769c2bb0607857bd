package databases

// go generate: mockery --name EntityDatabase

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/polyview/moderation-api/models"
)

const (
	threadsName   = "threads"
	commentsName  = "comments"
	revisionsName = "revisions"
	articlesName  = "articles"
	blobsName     = "blobs"
)

// ErrEntityNotFound is returned when a target entity id does not exist.
// Callers must treat it as a hard authorization failure (deny, not allow).
var ErrEntityNotFound = errors.New("entity not found")

// EntityDatabase resolves reportable content entities into the minimal
// context needed for authorization and owns the violates-law flag writes
type EntityDatabase interface {
	ResolveTargetContext(ctx context.Context, kind models.EntityKind, id int64) (*models.TargetContext, error)
	SetViolatesLaw(ctx context.Context, kind models.EntityKind, id int64, isViolation bool, setBy *string) error
	ViolatesLaw(ctx context.Context, kind models.EntityKind, id int64) (bool, error)
}

type entityDatabase struct {
	db DatabaseHelper
}

// NewEntityDatabase initializes a new instance of entity database with the provided db connection
func NewEntityDatabase(db DatabaseHelper) EntityDatabase {
	return &entityDatabase{
		db: db,
	}
}

func collectionFor(kind models.EntityKind) (string, error) {
	switch kind {
	case models.EntityKindThread:
		return threadsName, nil
	case models.EntityKindComment:
		return commentsName, nil
	case models.EntityKindRevision:
		return revisionsName, nil
	case models.EntityKindBlob:
		return blobsName, nil
	default:
		return "", fmt.Errorf("unknown entity kind %q", kind)
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrEntityNotFound
	}
	return err
}

// ResolveTargetContext loads the owning bias and language for the given
// entity. Comments resolve through their thread, revisions through their
// article; blobs carry no language.
func (e *entityDatabase) ResolveTargetContext(ctx context.Context, kind models.EntityKind, id int64) (*models.TargetContext, error) {
	switch kind {
	case models.EntityKindThread:
		thread := &models.Thread{}
		if err := e.db.Collection(threadsName).FindOne(ctx, bson.M{"_id": id}).Decode(&thread); err != nil {
			return nil, mapNotFound(err)
		}
		return &models.TargetContext{BiasID: thread.BiasID, Language: &thread.Language}, nil

	case models.EntityKindComment:
		comment := &models.Comment{}
		if err := e.db.Collection(commentsName).FindOne(ctx, bson.M{"_id": id}).Decode(&comment); err != nil {
			return nil, mapNotFound(err)
		}
		thread := &models.Thread{}
		if err := e.db.Collection(threadsName).FindOne(ctx, bson.M{"_id": comment.ThreadID}).Decode(&thread); err != nil {
			return nil, mapNotFound(err)
		}
		return &models.TargetContext{BiasID: thread.BiasID, Language: &thread.Language}, nil

	case models.EntityKindRevision:
		revision := &models.Revision{}
		if err := e.db.Collection(revisionsName).FindOne(ctx, bson.M{"_id": id}).Decode(&revision); err != nil {
			return nil, mapNotFound(err)
		}
		article := &models.Article{}
		if err := e.db.Collection(articlesName).FindOne(ctx, bson.M{"_id": revision.ArticleID}).Decode(&article); err != nil {
			return nil, mapNotFound(err)
		}
		return &models.TargetContext{BiasID: revision.BiasID, Language: &article.Language}, nil

	case models.EntityKindBlob:
		blob := &models.Blob{}
		if err := e.db.Collection(blobsName).FindOne(ctx, bson.M{"_id": id}).Decode(&blob); err != nil {
			return nil, mapNotFound(err)
		}
		return &models.TargetContext{BiasID: blob.BiasID}, nil

	default:
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}
}

// SetViolatesLaw overwrites the violates-law flag on the entity. When setBy
// is non-nil the audit field is re-stamped to it; a nil setBy leaves the
// audit field untouched (actors without a moderated scope act outside a
// single moderated-bias identity).
func (e *entityDatabase) SetViolatesLaw(ctx context.Context, kind models.EntityKind, id int64, isViolation bool, setBy *string) error {
	name, err := collectionFor(kind)
	if err != nil {
		return err
	}

	set := bson.M{"violatesLaw": isViolation}
	if setBy != nil {
		set["violatesLawSetBy"] = *setBy
	}

	res, err := e.db.Collection(name).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrEntityNotFound
	}
	return nil
}

// ViolatesLaw reads the current flag value for the entity
func (e *entityDatabase) ViolatesLaw(ctx context.Context, kind models.EntityKind, id int64) (bool, error) {
	name, err := collectionFor(kind)
	if err != nil {
		return false, err
	}

	var doc struct {
		ViolatesLaw bool `bson:"violatesLaw"`
	}
	if err := e.db.Collection(name).FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return false, mapNotFound(err)
	}
	return doc.ViolatesLaw, nil
}
