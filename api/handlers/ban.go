package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"github.com/polyview/moderation-api/api/authorization"
	"github.com/polyview/moderation-api/config"
	"github.com/polyview/moderation-api/databases"
	"github.com/polyview/moderation-api/models"
)

// Ban handles ban-related requests
type Ban struct {
	BDB databases.BanDatabase
	UDB databases.UserDatabase
}

// BanUserRequest is the ban creation body. DurationHours of zero or absent
// means the ban is permanent.
type BanUserRequest struct {
	UserID        string `json:"userId"`
	BiasID        int64  `json:"biasId"`
	Reason        string `json:"reason"`
	DurationHours int64  `json:"durationHours"`
}

// BanUserHandler creates a bias-scoped ban for a user. Bans are authorized
// by bias alone: the target context carries no language, so moderators are
// checked on bias match and admins on having a language assignment at all.
// Existing bans for the same (user, bias) are not deduplicated.
func (b Ban) BanUserHandler(w http.ResponseWriter, r *http.Request) {
	var req BanUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	actor, err := loadActor(r, b.UDB)
	if err != nil {
		config.ErrorStatus("unauthenticated", http.StatusUnauthorized, w, err)
		return
	}

	uID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	targetUser, err := b.UDB.FindOne(r.Context(), bson.M{"_id": uID})
	if err != nil {
		if errors.Is(err, databases.ErrUserNotFound) {
			config.ErrorStatusCode("user not found", "USER_NOT_FOUND", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to get user by ID", http.StatusInternalServerError, w, err)
		return
	}
	if targetUser.Details.Email == "" {
		config.ErrorStatusCode("target user email not found", "USER_NOT_FOUND", http.StatusNotFound, w, nil)
		return
	}

	if d := authorization.Authorize(actor, models.TargetContext{BiasID: req.BiasID}); !d.Allowed {
		config.ErrorStatusCode("you can only ban users within your assigned scope", string(d.Reason), http.StatusForbidden, w, nil)
		return
	}

	createdAt := time.Now()
	var expiresAt *time.Time
	if req.DurationHours > 0 {
		t := createdAt.Add(time.Duration(req.DurationHours) * time.Hour)
		expiresAt = &t
	}

	ban := models.Ban{
		ID:        primitive.NewObjectID(),
		UserEmail: targetUser.Details.Email,
		BiasID:    req.BiasID,
		BannedBy:  actor.ID,
		Reason:    req.Reason,
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}

	created, err := b.BDB.InsertOne(r.Context(), ban)
	if err != nil {
		config.ErrorStatus("failed to create ban", http.StatusInternalServerError, w, err)
		return
	}

	// notify the banned user; a delivery failure never fails the ban
	go sendBanNoticeEmail(targetUser.Details.Email, targetUser.Details.Name, *created)

	broadcastRefresh("bans")

	respBody, err := json.Marshal(map[string]interface{}{
		"message": "user banned successfully",
		"ban":     created,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(respBody)
}

// ActiveBansHandler answers the enforcement question for collaborators: does
// the user hold any unexpired ban within the bias right now
func (b Ban) ActiveBansHandler(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	biasID, err := strconv.ParseInt(r.URL.Query().Get("biasId"), 10, 64)
	if err != nil {
		config.ErrorStatus("biasId query parameter is required", http.StatusBadRequest, w, err)
		return
	}

	now := time.Now()
	bans, err := b.BDB.Find(r.Context(), bson.M{
		"userEmail": email,
		"biasId":    biasID,
		"$or": []bson.M{
			{"expiresAt": bson.M{"$exists": false}},
			{"expiresAt": bson.M{"$gt": now}},
		},
	})
	if err != nil {
		config.ErrorStatus("failed to get bans", http.StatusInternalServerError, w, err)
		return
	}
	if len(bans) == 0 {
		bans = []models.Ban{}
	}

	respBody, err := json.Marshal(models.BanStatus{
		Banned:     len(bans) > 0,
		ActiveBans: bans,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(respBody)
}
