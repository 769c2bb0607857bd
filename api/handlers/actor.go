package handlers

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/polyview/moderation-api/api"
	"github.com/polyview/moderation-api/databases"
	"github.com/polyview/moderation-api/models"
)

var errUnauthenticated = errors.New("unauthenticated")

// loadActor resolves the authenticated session into the flat actor record the
// authorization table evaluates. A session without a matching user is treated
// as unauthenticated, never as an anonymous allow.
func loadActor(r *http.Request, udb databases.UserDatabase) (models.Actor, error) {
	email, ok := api.SessionEmailFromContext(r.Context())
	if !ok {
		return models.Actor{}, errUnauthenticated
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := udb.FindOne(ctx, bson.M{"user.email": email})
	if err != nil {
		if errors.Is(err, databases.ErrUserNotFound) {
			return models.Actor{}, errUnauthenticated
		}
		return models.Actor{}, err
	}
	return user.Actor(), nil
}
