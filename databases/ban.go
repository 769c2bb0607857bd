package databases

// go generate: mockery --name BanDatabase

import (
	"context"

	"github.com/polyview/moderation-api/models"
)

const bansName = "bans"

// BanDatabase contains the methods to use with the ban database. Bans are
// insert-only; enforcement is a read of unexpired bans.
type BanDatabase interface {
	InsertOne(ctx context.Context, ban models.Ban) (*models.Ban, error)
	Find(ctx context.Context, filter interface{}) ([]models.Ban, error)
}

type banDatabase struct {
	db DatabaseHelper
}

// NewBanDatabase initializes a new instance of ban database with the provided db connection
func NewBanDatabase(db DatabaseHelper) BanDatabase {
	return &banDatabase{
		db: db,
	}
}

func (c *banDatabase) InsertOne(ctx context.Context, ban models.Ban) (*models.Ban, error) {
	_, err := c.db.Collection(bansName).InsertOne(ctx, ban)
	if err != nil {
		return nil, err
	}
	return &ban, nil
}

func (c *banDatabase) Find(ctx context.Context, filter interface{}) ([]models.Ban, error) {
	cursor, err := c.db.Collection(bansName).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var bans []models.Ban
	if err := cursor.Decode(&bans); err != nil {
		return nil, err
	}
	return bans, nil
}
