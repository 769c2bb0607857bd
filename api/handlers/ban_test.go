package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/polyview/moderation-api/api/handlers"
	"github.com/polyview/moderation-api/databases/mocks"
	"github.com/polyview/moderation-api/models"
)

func TestBan_BanUserHandler_InvalidObjectID(t *testing.T) {
	handler := handlers.Ban{
		BDB: &mocks.BanDatabase{},
		UDB: &mocks.UserDatabase{},
	}

	mockUserDB := handler.UDB.(*mocks.UserDatabase)
	mockUserDB.On("FindOne", mock.Anything, bson.M{"user.email": "root@example.com"}).Return(globalAdminUser(), nil)

	req := sessionRequest(t, "POST", "/api/v1/ban", handlers.BanUserRequest{
		UserID: "invalid-id",
		BiasID: 1,
		Reason: "spamming",
	}, "root@example.com")
	w := httptest.NewRecorder()

	handler.BanUserHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "failed to get objectID from Hex")
}

func TestBan_BanUserHandler_OutOfScopeForbidden(t *testing.T) {
	mockUserDB := &mocks.UserDatabase{}
	mockBanDB := &mocks.BanDatabase{}

	modUser := moderatorUser(3, "en")
	target := plainUser()

	mockUserDB.On("FindOne", mock.Anything, bson.M{"user.email": "mod@example.com"}).Return(modUser, nil)
	mockUserDB.On("FindOne", mock.Anything, bson.M{"_id": target.ID}).Return(target, nil)

	handler := handlers.Ban{BDB: mockBanDB, UDB: mockUserDB}

	req := sessionRequest(t, "POST", "/api/v1/ban", handlers.BanUserRequest{
		UserID: target.ID.Hex(),
		BiasID: 9,
		Reason: "vandalism",
	}, "mod@example.com")
	w := httptest.NewRecorder()

	handler.BanUserHandler(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "BIAS_MISMATCH")
	mockBanDB.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestBan_BanUserHandler_ModeratorInScopeTemporary(t *testing.T) {
	mockUserDB := &mocks.UserDatabase{}
	mockBanDB := &mocks.BanDatabase{}

	modUser := moderatorUser(3, "en")
	target := plainUser()

	mockUserDB.On("FindOne", mock.Anything, bson.M{"user.email": "mod@example.com"}).Return(modUser, nil)
	mockUserDB.On("FindOne", mock.Anything, bson.M{"_id": target.ID}).Return(target, nil)

	mockBanDB.On("InsertOne", mock.Anything, mock.MatchedBy(func(ban models.Ban) bool {
		if ban.UserEmail != target.Details.Email || ban.BiasID != int64(3) {
			return false
		}
		if ban.ExpiresAt == nil {
			return false
		}
		return ban.ExpiresAt.Sub(ban.CreatedAt) == 48*time.Hour
	})).Return(&models.Ban{ID: primitive.NewObjectID(), UserEmail: target.Details.Email}, nil)

	handler := handlers.Ban{BDB: mockBanDB, UDB: mockUserDB}

	req := sessionRequest(t, "POST", "/api/v1/ban", handlers.BanUserRequest{
		UserID:        target.ID.Hex(),
		BiasID:        3,
		Reason:        "repeated vandalism",
		DurationHours: 48,
	}, "mod@example.com")
	w := httptest.NewRecorder()

	handler.BanUserHandler(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "user banned successfully")
	mockBanDB.AssertExpectations(t)
}

func TestBan_BanUserHandler_PermanentWhenNoDuration(t *testing.T) {
	mockUserDB := &mocks.UserDatabase{}
	mockBanDB := &mocks.BanDatabase{}

	target := plainUser()

	mockUserDB.On("FindOne", mock.Anything, bson.M{"user.email": "root@example.com"}).Return(globalAdminUser(), nil)
	mockUserDB.On("FindOne", mock.Anything, bson.M{"_id": target.ID}).Return(target, nil)

	mockBanDB.On("InsertOne", mock.Anything, mock.MatchedBy(func(ban models.Ban) bool {
		return ban.ExpiresAt == nil
	})).Return(&models.Ban{ID: primitive.NewObjectID()}, nil)

	handler := handlers.Ban{BDB: mockBanDB, UDB: mockUserDB}

	req := sessionRequest(t, "POST", "/api/v1/ban", handlers.BanUserRequest{
		UserID: target.ID.Hex(),
		BiasID: 1,
		Reason: "ban evasion",
	}, "root@example.com")
	w := httptest.NewRecorder()

	handler.BanUserHandler(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockBanDB.AssertExpectations(t)
}

func TestBan_ActiveBansHandler_MissingBiasID(t *testing.T) {
	handler := handlers.Ban{
		BDB: &mocks.BanDatabase{},
		UDB: &mocks.UserDatabase{},
	}

	req := sessionRequest(t, "GET", "/api/v1/bans/user@example.com/active", nil, "mod@example.com")
	req = mux.SetURLVars(req, map[string]string{"email": "user@example.com"})
	w := httptest.NewRecorder()

	handler.ActiveBansHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "biasId query parameter is required")
}

func TestBan_ActiveBansHandler_NoActiveBans(t *testing.T) {
	mockBanDB := &mocks.BanDatabase{}
	mockBanDB.On("Find", mock.Anything, mock.Anything).Return([]models.Ban{}, nil)

	handler := handlers.Ban{BDB: mockBanDB, UDB: &mocks.UserDatabase{}}

	req := sessionRequest(t, "GET", "/api/v1/bans/user@example.com/active?biasId=3", nil, "mod@example.com")
	req = mux.SetURLVars(req, map[string]string{"email": "user@example.com"})
	w := httptest.NewRecorder()

	handler.ActiveBansHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"banned":false`)
}

func TestBan_ActiveBansHandler_ActiveBanFound(t *testing.T) {
	mockBanDB := &mocks.BanDatabase{}

	expires := time.Now().Add(24 * time.Hour)
	mockBanDB.On("Find", mock.Anything, mock.MatchedBy(func(filter interface{}) bool {
		f, ok := filter.(bson.M)
		return ok && f["userEmail"] == "user@example.com" && f["biasId"] == int64(3)
	})).Return([]models.Ban{{
		ID:        primitive.NewObjectID(),
		UserEmail: "user@example.com",
		BiasID:    3,
		Reason:    "vandalism",
		CreatedAt: time.Now(),
		ExpiresAt: &expires,
	}}, nil)

	handler := handlers.Ban{BDB: mockBanDB, UDB: &mocks.UserDatabase{}}

	req := sessionRequest(t, "GET", "/api/v1/bans/user@example.com/active?biasId=3", nil, "mod@example.com")
	req = mux.SetURLVars(req, map[string]string{"email": "user@example.com"})
	w := httptest.NewRecorder()

	handler.ActiveBansHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"banned":true`)
	mockBanDB.AssertExpectations(t)
}
