package databases

// go generate: mockery --name ReportDatabase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/polyview/moderation-api/models"
)

const reportsName = "reports"

// ErrDuplicateReport is returned when the (reporter, target) pair already has
// a report; the unique index makes this race-free at write time
var ErrDuplicateReport = errors.New("duplicate report")

// ErrReportNotFound is returned when a report id does not exist
var ErrReportNotFound = errors.New("report not found")

// ReportDatabase contains the methods to use with the report database
type ReportDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Report, error)
	Find(ctx context.Context, filter interface{}) ([]models.Report, error)
	FindPage(ctx context.Context, filter interface{}, page, limit int) ([]models.Report, error)
	Count(ctx context.Context, filter interface{}) (int64, error)
	InsertOne(ctx context.Context, report models.Report) (*models.Report, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ReportStatus) error
	EnsureIndexes(ctx context.Context) error
}

type reportDatabase struct {
	db DatabaseHelper
}

// NewReportDatabase initializes a new instance of report database with the provided db connection
func NewReportDatabase(db DatabaseHelper) ReportDatabase {
	return &reportDatabase{
		db: db,
	}
}

func (c *reportDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Report, error) {
	report := &models.Report{}
	err := c.db.Collection(reportsName).FindOne(ctx, filter).Decode(&report)
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (c *reportDatabase) Find(ctx context.Context, filter interface{}) ([]models.Report, error) {
	cursor, err := c.db.Collection(reportsName).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var reports []models.Report
	if err := cursor.Decode(&reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// FindPage returns one page of reports ordered by creation time, newest first
func (c *reportDatabase) FindPage(ctx context.Context, filter interface{}, page, limit int) ([]models.Report, error) {
	opts := newMongoPaginate(limit, page).getPaginatedOpts()
	opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := c.db.Collection(reportsName).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var reports []models.Report
	if err := cursor.Decode(&reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (c *reportDatabase) Count(ctx context.Context, filter interface{}) (int64, error) {
	return c.db.Collection(reportsName).CountDocuments(ctx, filter)
}

// InsertOne creates the report; a duplicate-key error from the unique
// (reportedBy, target) index maps to ErrDuplicateReport
func (c *reportDatabase) InsertOne(ctx context.Context, report models.Report) (*models.Report, error) {
	_, err := c.db.Collection(reportsName).InsertOne(ctx, report)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateReport
		}
		return nil, err
	}
	return &report, nil
}

// UpdateStatus overwrites the report status. Terminal states may be
// overwritten again; there is no transition back to PENDING at the API layer.
func (c *reportDatabase) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ReportStatus) error {
	res, err := c.db.Collection(reportsName).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrReportNotFound
	}
	return nil
}

// EnsureIndexes creates the unique compound index that enforces one report
// per (reporter, target kind, target id) at write time
func (c *reportDatabase) EnsureIndexes(ctx context.Context) error {
	return c.db.Collection(reportsName).CreateIndexes(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "reportedBy", Value: 1},
				{Key: "target.kind", Value: 1},
				{Key: "target.id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	})
}
