package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/polyview/moderation-api/api"
	"github.com/polyview/moderation-api/api/handlers"
	"github.com/polyview/moderation-api/databases"
	"github.com/polyview/moderation-api/databases/mocks"
	"github.com/polyview/moderation-api/models"
)

func sessionRequest(t *testing.T, method, url string, body interface{}, email string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	assert.NoError(t, err)
	return req.WithContext(api.ContextWithSessionEmail(req.Context(), email))
}

func globalAdminUser() *models.User {
	return &models.User{
		ID: primitive.NewObjectID(),
		Details: models.UserDetails{
			Email: "root@example.com",
			Role:  models.RoleGlobalAdmin,
		},
	}
}

func moderatorUser(biasID int64, language string) *models.User {
	return &models.User{
		ID: primitive.NewObjectID(),
		Details: models.UserDetails{
			Email: "mod@example.com",
			Role:  models.RoleUser,
			ModeratedScope: &models.ModeratedScope{
				ID:       primitive.NewObjectID(),
				BiasID:   biasID,
				Language: language,
			},
		},
	}
}

func plainUser() *models.User {
	return &models.User{
		ID: primitive.NewObjectID(),
		Details: models.UserDetails{
			Email: "user@example.com",
			Role:  models.RoleUser,
		},
	}
}

func TestReport_SubmitReportHandler_InvalidReason(t *testing.T) {
	tests := []struct {
		name   string
		reason string
	}{
		{"empty", ""},
		{"over limit", strings.Repeat("a", 2001)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := handlers.Report{
				RDB: &mocks.ReportDatabase{},
				EDB: &mocks.EntityDatabase{},
				UDB: &mocks.UserDatabase{},
			}

			req := sessionRequest(t, "POST", "/api/v1/report", handlers.SubmitReportRequest{
				Reason: tt.reason,
				Type:   "THREAD",
				ID:     1,
			}, "user@example.com")
			w := httptest.NewRecorder()

			handler.SubmitReportHandler(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "INVALID_REASON")
		})
	}
}

func TestReport_SubmitReportHandler_InvalidType(t *testing.T) {
	handler := handlers.Report{
		RDB: &mocks.ReportDatabase{},
		EDB: &mocks.EntityDatabase{},
		UDB: &mocks.UserDatabase{},
	}

	req := sessionRequest(t, "POST", "/api/v1/report", handlers.SubmitReportRequest{
		Reason: "spam",
		Type:   "PODCAST",
		ID:     1,
	}, "user@example.com")
	w := httptest.NewRecorder()

	handler.SubmitReportHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ENTITY_TYPE")
}

func TestReport_SubmitReportHandler_EntityNotFound(t *testing.T) {
	mockUserDB := &mocks.UserDatabase{}
	mockEntityDB := &mocks.EntityDatabase{}

	user := plainUser()
	mockUserDB.On("FindOne", mock.Anything, bson.M{"user.email": "user@example.com"}).Return(user, nil)
	mockEntityDB.On("ResolveTargetContext", mock.Anything, models.EntityKindThread, int64(42)).
		Return(nil, databases.ErrEntityNotFound)

	handler := handlers.Report{
		RDB: &mocks.ReportDatabase{},
		EDB: mockEntityDB,
		UDB: mockUserDB,
	}

	req := sessionRequest(t, "POST", "/api/v1/report", handlers.SubmitReportRequest{
		Reason: "spam",
		Type:   "thread",
		ID:     42,
	}, "user@example.com")
	w := httptest.NewRecorder()

	handler.SubmitReportHandler(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ENTITY_NOT_FOUND")
}

func TestReport_SubmitReportHandler_Duplicate(t *testing.T) {
	mockUserDB := &mocks.UserDatabase{}
	mockEntityDB := &mocks.EntityDatabase{}
	mockReportDB := &mocks.ReportDatabase{}

	user := plainUser()
	lang := "en"
	mockUserDB.On("FindOne", mock.Anything, bson.M{"user.email": "user@example.com"}).Return(user, nil)
	mockEntityDB.On("ResolveTargetContext", mock.Anything, models.EntityKindComment, int64(7)).
		Return(&models.TargetContext{BiasID: 3, Language: &lang}, nil)
	mockReportDB.On("FindOne", mock.Anything, bson.M{
		"reportedBy":  user.ID.Hex(),
		"target.kind": models.EntityKindComment,
		"target.id":   int64(7),
	}).Return(&models.Report{ID: primitive.NewObjectID()}, nil)

	handler := handlers.Report{RDB: mockReportDB, EDB: mockEntityDB, UDB: mockUserDB}

	req := sessionRequest(t, "POST", "/api/v1/report", handlers.SubmitReportRequest{
		Reason: "harassment",
		Type:   "COMMENT",
		ID:     7,
	}, "user@example.com")
	w := httptest.NewRecorder()

	handler.SubmitReportHandler(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "DUPLICATE_REPORT")
	mockReportDB.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestReport_SubmitReportHandler_Created(t *testing.T) {
	mockUserDB := &mocks.UserDatabase{}
	mockEntityDB := &mocks.EntityDatabase{}
	mockReportDB := &mocks.ReportDatabase{}

	user := plainUser()
	lang := "de"
	mockUserDB.On("FindOne", mock.Anything, bson.M{"user.email": "user@example.com"}).Return(user, nil)
	mockEntityDB.On("ResolveTargetContext", mock.Anything, models.EntityKindRevision, int64(99)).
		Return(&models.TargetContext{BiasID: 5, Language: &lang}, nil)
	mockReportDB.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)
	mockReportDB.On("InsertOne", mock.Anything, mock.MatchedBy(func(rep models.Report) bool {
		return rep.Status == models.ReportStatusPending &&
			rep.Target.Kind == models.EntityKindRevision &&
			rep.Target.ID == int64(99) &&
			rep.TargetBiasID == int64(5) &&
			rep.TargetLanguage != nil && *rep.TargetLanguage == "de" &&
			rep.ReportedBy == user.ID.Hex()
	})).Return(&models.Report{ID: primitive.NewObjectID(), Status: models.ReportStatusPending}, nil)

	handler := handlers.Report{RDB: mockReportDB, EDB: mockEntityDB, UDB: mockUserDB}

	req := sessionRequest(t, "POST", "/api/v1/report", handlers.SubmitReportRequest{
		Reason: "illegal content",
		Type:   "REVISION",
		ID:     99,
	}, "user@example.com")
	w := httptest.NewRecorder()

	handler.SubmitReportHandler(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "report submitted successfully")
	mockReportDB.AssertExpectations(t)
}

func TestReport_SubmitReportHandler_MultibyteReasonWithinLimit(t *testing.T) {
	mockUserDB := &mocks.UserDatabase{}
	mockEntityDB := &mocks.EntityDatabase{}
	mockReportDB := &mocks.ReportDatabase{}

	user := plainUser()
	lang := "de"
	mockUserDB.On("FindOne", mock.Anything, mock.Anything).Return(user, nil)
	mockEntityDB.On("ResolveTargetContext", mock.Anything, models.EntityKindThread, int64(7)).
		Return(&models.TargetContext{BiasID: 5, Language: &lang}, nil)
	mockReportDB.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)
	mockReportDB.On("InsertOne", mock.Anything, mock.Anything).
		Return(&models.Report{ID: primitive.NewObjectID(), Status: models.ReportStatusPending}, nil)

	handler := handlers.Report{RDB: mockReportDB, EDB: mockEntityDB, UDB: mockUserDB}

	// 2000 characters but well over 2000 bytes; the limit counts characters
	req := sessionRequest(t, "POST", "/api/v1/report", handlers.SubmitReportRequest{
		Reason: strings.Repeat("ü", 2000),
		Type:   "THREAD",
		ID:     7,
	}, "user@example.com")
	w := httptest.NewRecorder()

	handler.SubmitReportHandler(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockReportDB.AssertExpectations(t)
}

func TestReport_SubmitReportHandler_DuplicateRace(t *testing.T) {
	mockUserDB := &mocks.UserDatabase{}
	mockEntityDB := &mocks.EntityDatabase{}
	mockReportDB := &mocks.ReportDatabase{}

	user := plainUser()
	mockUserDB.On("FindOne", mock.Anything, mock.Anything).Return(user, nil)
	mockEntityDB.On("ResolveTargetContext", mock.Anything, models.EntityKindBlob, int64(11)).
		Return(&models.TargetContext{BiasID: 2}, nil)
	mockReportDB.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)
	mockReportDB.On("InsertOne", mock.Anything, mock.Anything).Return(nil, databases.ErrDuplicateReport)

	handler := handlers.Report{RDB: mockReportDB, EDB: mockEntityDB, UDB: mockUserDB}

	req := sessionRequest(t, "POST", "/api/v1/report", handlers.SubmitReportRequest{
		Reason: "copyright",
		Type:   "BLOB",
		ID:     11,
	}, "user@example.com")
	w := httptest.NewRecorder()

	handler.SubmitReportHandler(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "DUPLICATE_REPORT")
}

func TestReport_ListReportsHandler_PlainUserForbidden(t *testing.T) {
	mockUserDB := &mocks.UserDatabase{}
	mockUserDB.On("FindOne", mock.Anything, mock.Anything).Return(plainUser(), nil)

	handler := handlers.Report{
		RDB: &mocks.ReportDatabase{},
		EDB: &mocks.EntityDatabase{},
		UDB: mockUserDB,
	}

	req := sessionRequest(t, "GET", "/api/v1/reports", nil, "user@example.com")
	w := httptest.NewRecorder()

	handler.ListReportsHandler(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "INSUFFICIENT_ROLE")
}

func TestReport_ListReportsHandler_AdminWithoutLanguageForbidden(t *testing.T) {
	admin := &models.User{
		ID: primitive.NewObjectID(),
		Details: models.UserDetails{
			Email: "admin@example.com",
			Role:  models.RoleAdmin,
		},
	}
	mockUserDB := &mocks.UserDatabase{}
	mockUserDB.On("FindOne", mock.Anything, mock.Anything).Return(admin, nil)

	handler := handlers.Report{
		RDB: &mocks.ReportDatabase{},
		EDB: &mocks.EntityDatabase{},
		UDB: mockUserDB,
	}

	req := sessionRequest(t, "GET", "/api/v1/reports", nil, "admin@example.com")
	w := httptest.NewRecorder()

	handler.ListReportsHandler(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "NO_ASSIGNED_LANGUAGE")
}

func TestReport_ListReportsHandler_DefaultsToPending(t *testing.T) {
	mockUserDB := &mocks.UserDatabase{}
	mockReportDB := &mocks.ReportDatabase{}

	mockUserDB.On("FindOne", mock.Anything, mock.Anything).Return(globalAdminUser(), nil)
	mockReportDB.On("FindPage", mock.Anything, bson.M{"status": models.ReportStatusPending}, 0, 20).
		Return([]models.Report{{ID: primitive.NewObjectID()}}, nil)
	mockReportDB.On("Count", mock.Anything, bson.M{"status": models.ReportStatusPending}).
		Return(int64(1), nil)

	handler := handlers.Report{RDB: mockReportDB, EDB: &mocks.EntityDatabase{}, UDB: mockUserDB}

	req := sessionRequest(t, "GET", "/api/v1/reports", nil, "root@example.com")
	w := httptest.NewRecorder()

	handler.ListReportsHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got models.ReportList
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.Total)
	assert.Equal(t, int64(1), got.PageCount)
	assert.Len(t, got.Reports, 1)
}

func TestReport_ListReportsHandler_PageSizeParam(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"pageSize", "?page=2&pageSize=5"},
		{"limit alias", "?page=2&limit=5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserDB := &mocks.UserDatabase{}
			mockReportDB := &mocks.ReportDatabase{}

			mockUserDB.On("FindOne", mock.Anything, mock.Anything).Return(globalAdminUser(), nil)
			mockReportDB.On("FindPage", mock.Anything, bson.M{"status": models.ReportStatusPending}, 2, 5).
				Return([]models.Report{}, nil)
			mockReportDB.On("Count", mock.Anything, bson.M{"status": models.ReportStatusPending}).
				Return(int64(11), nil)

			handler := handlers.Report{RDB: mockReportDB, EDB: &mocks.EntityDatabase{}, UDB: mockUserDB}

			req := sessionRequest(t, "GET", "/api/v1/reports"+tt.query, nil, "root@example.com")
			w := httptest.NewRecorder()

			handler.ListReportsHandler(w, req)

			assert.Equal(t, http.StatusOK, w.Code)

			var got models.ReportList
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, int64(3), got.PageCount)
			mockReportDB.AssertExpectations(t)
		})
	}
}

func TestReport_ListReportsHandler_InvalidStatus(t *testing.T) {
	mockUserDB := &mocks.UserDatabase{}
	mockUserDB.On("FindOne", mock.Anything, mock.Anything).Return(globalAdminUser(), nil)

	handler := handlers.Report{
		RDB: &mocks.ReportDatabase{},
		EDB: &mocks.EntityDatabase{},
		UDB: mockUserDB,
	}

	req := sessionRequest(t, "GET", "/api/v1/reports?status=OPEN", nil, "root@example.com")
	w := httptest.NewRecorder()

	handler.ListReportsHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReport_ListReportsHandler_ModeratorScopedFilter(t *testing.T) {
	mockUserDB := &mocks.UserDatabase{}
	mockReportDB := &mocks.ReportDatabase{}

	modUser := moderatorUser(3, "en")
	mockUserDB.On("FindOne", mock.Anything, mock.Anything).Return(modUser, nil)

	mockReportDB.On("FindPage", mock.Anything, mock.MatchedBy(func(filter interface{}) bool {
		f, ok := filter.(bson.M)
		return ok && f["targetBiasId"] == int64(3) && f["status"] == models.ReportStatusPending
	}), 0, 20).Return([]models.Report{}, nil)
	mockReportDB.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)

	handler := handlers.Report{RDB: mockReportDB, EDB: &mocks.EntityDatabase{}, UDB: mockUserDB}

	req := sessionRequest(t, "GET", "/api/v1/reports", nil, "mod@example.com")
	w := httptest.NewRecorder()

	handler.ListReportsHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"reports":[]`)
	mockReportDB.AssertExpectations(t)
}

func TestReport_ResolveReportHandler_InvalidObjectID(t *testing.T) {
	handler := handlers.Report{
		RDB: &mocks.ReportDatabase{},
		EDB: &mocks.EntityDatabase{},
		UDB: &mocks.UserDatabase{},
	}

	req := sessionRequest(t, "PUT", "/api/v1/report/invalid-id/status", handlers.ResolveReportRequest{
		NewStatus: models.ReportStatusResolved,
	}, "root@example.com")
	req = mux.SetURLVars(req, map[string]string{"report_id": "invalid-id"})
	w := httptest.NewRecorder()

	handler.ResolveReportHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "failed to get objectID from Hex")
}

func TestReport_ResolveReportHandler_NonTerminalStatus(t *testing.T) {
	handler := handlers.Report{
		RDB: &mocks.ReportDatabase{},
		EDB: &mocks.EntityDatabase{},
		UDB: &mocks.UserDatabase{},
	}

	reportID := primitive.NewObjectID().Hex()
	req := sessionRequest(t, "PUT", "/api/v1/report/"+reportID+"/status", handlers.ResolveReportRequest{
		NewStatus: models.ReportStatusPending,
	}, "root@example.com")
	req = mux.SetURLVars(req, map[string]string{"report_id": reportID})
	w := httptest.NewRecorder()

	handler.ResolveReportHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "newStatus must be RESOLVED or DISMISSED")
}

func TestReport_ResolveReportHandler_OutOfScopeDismissSucceeds(t *testing.T) {
	mockUserDB := &mocks.UserDatabase{}
	mockEntityDB := &mocks.EntityDatabase{}
	mockReportDB := &mocks.ReportDatabase{}

	// moderator scoped to bias 3, report targets a bias 9 thread; dismissal
	// never touches the target so no scope check applies
	modUser := moderatorUser(3, "en")
	mockUserDB.On("FindOne", mock.Anything, mock.Anything).Return(modUser, nil)

	rID := primitive.NewObjectID()
	mockReportDB.On("FindOne", mock.Anything, bson.M{"_id": rID}).Return(&models.Report{
		ID:     rID,
		Status: models.ReportStatusPending,
		Target: models.ReportTarget{Kind: models.EntityKindThread, ID: 8},
	}, nil)
	mockReportDB.On("UpdateStatus", mock.Anything, rID, models.ReportStatusDismissed).Return(nil)

	handler := handlers.Report{RDB: mockReportDB, EDB: mockEntityDB, UDB: mockUserDB}

	req := sessionRequest(t, "PUT", "/api/v1/report/"+rID.Hex()+"/status", handlers.ResolveReportRequest{
		NewStatus: models.ReportStatusDismissed,
	}, "mod@example.com")
	req = mux.SetURLVars(req, map[string]string{"report_id": rID.Hex()})
	w := httptest.NewRecorder()

	handler.ResolveReportHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockReportDB.AssertExpectations(t)
	mockEntityDB.AssertNotCalled(t, "SetViolatesLaw", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReport_ResolveReportHandler_OutOfScopeResolveSurfacesCascade(t *testing.T) {
	mockUserDB := &mocks.UserDatabase{}
	mockEntityDB := &mocks.EntityDatabase{}
	mockReportDB := &mocks.ReportDatabase{}

	// the status write lands first; the cascade's own scope check then fails
	// and the partial application is surfaced for retry
	modUser := moderatorUser(3, "en")
	mockUserDB.On("FindOne", mock.Anything, mock.Anything).Return(modUser, nil)

	rID := primitive.NewObjectID()
	lang := "en"
	mockReportDB.On("FindOne", mock.Anything, bson.M{"_id": rID}).Return(&models.Report{
		ID:     rID,
		Status: models.ReportStatusPending,
		Target: models.ReportTarget{Kind: models.EntityKindThread, ID: 8},
	}, nil)
	mockReportDB.On("UpdateStatus", mock.Anything, rID, models.ReportStatusResolved).Return(nil)
	mockEntityDB.On("ResolveTargetContext", mock.Anything, models.EntityKindThread, int64(8)).
		Return(&models.TargetContext{BiasID: 9, Language: &lang}, nil)

	handler := handlers.Report{RDB: mockReportDB, EDB: mockEntityDB, UDB: mockUserDB}

	req := sessionRequest(t, "PUT", "/api/v1/report/"+rID.Hex()+"/status", handlers.ResolveReportRequest{
		NewStatus: models.ReportStatusResolved,
	}, "mod@example.com")
	req = mux.SetURLVars(req, map[string]string{"report_id": rID.Hex()})
	w := httptest.NewRecorder()

	handler.ResolveReportHandler(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "CASCADE_INCOMPLETE")
	mockReportDB.AssertExpectations(t)
	mockEntityDB.AssertNotCalled(t, "SetViolatesLaw", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReport_ResolveReportHandler_ResolvedCascadesFlag(t *testing.T) {
	mockUserDB := &mocks.UserDatabase{}
	mockEntityDB := &mocks.EntityDatabase{}
	mockReportDB := &mocks.ReportDatabase{}

	modUser := moderatorUser(3, "en")
	mockUserDB.On("FindOne", mock.Anything, mock.Anything).Return(modUser, nil)

	rID := primitive.NewObjectID()
	lang := "en"
	mockReportDB.On("FindOne", mock.Anything, bson.M{"_id": rID}).Return(&models.Report{
		ID:     rID,
		Status: models.ReportStatusPending,
		Target: models.ReportTarget{Kind: models.EntityKindComment, ID: 12},
	}, nil)
	mockEntityDB.On("ResolveTargetContext", mock.Anything, models.EntityKindComment, int64(12)).
		Return(&models.TargetContext{BiasID: 3, Language: &lang}, nil)
	mockReportDB.On("UpdateStatus", mock.Anything, rID, models.ReportStatusResolved).Return(nil)

	scopeID := modUser.Details.ModeratedScope.ID.Hex()
	mockEntityDB.On("SetViolatesLaw", mock.Anything, models.EntityKindComment, int64(12), true, mock.MatchedBy(func(setBy *string) bool {
		return setBy != nil && *setBy == scopeID
	})).Return(nil)

	handler := handlers.Report{RDB: mockReportDB, EDB: mockEntityDB, UDB: mockUserDB}

	req := sessionRequest(t, "PUT", "/api/v1/report/"+rID.Hex()+"/status", handlers.ResolveReportRequest{
		NewStatus: models.ReportStatusResolved,
	}, "mod@example.com")
	req = mux.SetURLVars(req, map[string]string{"report_id": rID.Hex()})
	w := httptest.NewRecorder()

	handler.ResolveReportHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockEntityDB.AssertExpectations(t)
	mockReportDB.AssertExpectations(t)
}

func TestReport_ResolveReportHandler_DismissedSkipsCascade(t *testing.T) {
	mockUserDB := &mocks.UserDatabase{}
	mockEntityDB := &mocks.EntityDatabase{}
	mockReportDB := &mocks.ReportDatabase{}

	mockUserDB.On("FindOne", mock.Anything, mock.Anything).Return(globalAdminUser(), nil)

	rID := primitive.NewObjectID()
	mockReportDB.On("FindOne", mock.Anything, bson.M{"_id": rID}).Return(&models.Report{
		ID:     rID,
		Status: models.ReportStatusPending,
		Target: models.ReportTarget{Kind: models.EntityKindBlob, ID: 4},
	}, nil)
	mockReportDB.On("UpdateStatus", mock.Anything, rID, models.ReportStatusDismissed).Return(nil)

	handler := handlers.Report{RDB: mockReportDB, EDB: mockEntityDB, UDB: mockUserDB}

	req := sessionRequest(t, "PUT", "/api/v1/report/"+rID.Hex()+"/status", handlers.ResolveReportRequest{
		NewStatus: models.ReportStatusDismissed,
	}, "root@example.com")
	req = mux.SetURLVars(req, map[string]string{"report_id": rID.Hex()})
	w := httptest.NewRecorder()

	handler.ResolveReportHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockEntityDB.AssertNotCalled(t, "SetViolatesLaw", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReport_ResolveReportHandler_CascadeFailureSurfaced(t *testing.T) {
	mockUserDB := &mocks.UserDatabase{}
	mockEntityDB := &mocks.EntityDatabase{}
	mockReportDB := &mocks.ReportDatabase{}

	mockUserDB.On("FindOne", mock.Anything, mock.Anything).Return(globalAdminUser(), nil)

	rID := primitive.NewObjectID()
	mockReportDB.On("FindOne", mock.Anything, bson.M{"_id": rID}).Return(&models.Report{
		ID:     rID,
		Status: models.ReportStatusPending,
		Target: models.ReportTarget{Kind: models.EntityKindThread, ID: 6},
	}, nil)
	mockEntityDB.On("ResolveTargetContext", mock.Anything, models.EntityKindThread, int64(6)).
		Return(&models.TargetContext{BiasID: 2}, nil)
	mockReportDB.On("UpdateStatus", mock.Anything, rID, models.ReportStatusResolved).Return(nil)
	mockEntityDB.On("SetViolatesLaw", mock.Anything, models.EntityKindThread, int64(6), true, mock.Anything).
		Return(mongo.ErrClientDisconnected)

	handler := handlers.Report{RDB: mockReportDB, EDB: mockEntityDB, UDB: mockUserDB}

	req := sessionRequest(t, "PUT", "/api/v1/report/"+rID.Hex()+"/status", handlers.ResolveReportRequest{
		NewStatus: models.ReportStatusResolved,
	}, "root@example.com")
	req = mux.SetURLVars(req, map[string]string{"report_id": rID.Hex()})
	w := httptest.NewRecorder()

	handler.ResolveReportHandler(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "CASCADE_INCOMPLETE")
}
