package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/polyview/moderation-api/api/authorization"
	"github.com/polyview/moderation-api/config"
	"github.com/polyview/moderation-api/databases"
	"github.com/polyview/moderation-api/models"
)

const (
	maxReasonLength = 2000
	defaultPageSize = 20
)

// Report handles report-related requests
type Report struct {
	RDB databases.ReportDatabase
	EDB databases.EntityDatabase
	UDB databases.UserDatabase
}

// SubmitReportRequest is the report submission body
type SubmitReportRequest struct {
	Reason string `json:"reason"`
	Type   string `json:"type"`
	ID     int64  `json:"id"`
}

// ResolveReportRequest is the status-transition body
type ResolveReportRequest struct {
	NewStatus models.ReportStatus `json:"newStatus"`
}

func getPage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 0 {
		return 0
	}
	return page
}

func getLimit(r *http.Request) int {
	raw := r.URL.Query().Get("pageSize")
	if raw == "" {
		raw = r.URL.Query().Get("limit")
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		zap.S().Debugf("page size not set, using default of %v", defaultPageSize)
		return defaultPageSize
	}
	return limit
}

// SubmitReportHandler creates a new PENDING report. Any authenticated user
// may report any existing target; no scope check applies at submission.
func (re Report) SubmitReportHandler(w http.ResponseWriter, r *http.Request) {
	var req SubmitReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if reasonLen := utf8.RuneCountInString(req.Reason); reasonLen == 0 || reasonLen > maxReasonLength {
		config.ErrorStatusCode("reason must be between 1 and 2000 characters", "INVALID_REASON", http.StatusBadRequest, w, nil)
		return
	}

	kind := models.EntityKind(strings.ToUpper(req.Type))
	if !kind.IsValid() {
		config.ErrorStatusCode("invalid report type", "INVALID_ENTITY_TYPE", http.StatusBadRequest, w, nil)
		return
	}

	actor, err := loadActor(r, re.UDB)
	if err != nil {
		config.ErrorStatus("unauthenticated", http.StatusUnauthorized, w, err)
		return
	}

	target, err := re.EDB.ResolveTargetContext(r.Context(), kind, req.ID)
	if err != nil {
		if errors.Is(err, databases.ErrEntityNotFound) {
			config.ErrorStatusCode("entity not found", "ENTITY_NOT_FOUND", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to resolve report target", http.StatusInternalServerError, w, err)
		return
	}

	// Check for an existing report to prevent spam. The unique index is the
	// real guarantee; this pre-check just gives the common case a clean 409
	// without an insert attempt.
	dupFilter := bson.M{
		"reportedBy":  actor.ID,
		"target.kind": kind,
		"target.id":   req.ID,
	}
	if _, err := re.RDB.FindOne(r.Context(), dupFilter); err == nil {
		config.ErrorStatusCode("you have already reported this item", "DUPLICATE_REPORT", http.StatusConflict, w, nil)
		return
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		config.ErrorStatus("failed to check for existing report", http.StatusInternalServerError, w, err)
		return
	}

	report := models.Report{
		ID:             primitive.NewObjectID(),
		Reason:         req.Reason,
		ReportedBy:     actor.ID,
		Status:         models.ReportStatusPending,
		CreatedAt:      primitive.NewDateTimeFromTime(time.Now()),
		Target:         models.ReportTarget{Kind: kind, ID: req.ID},
		TargetBiasID:   target.BiasID,
		TargetLanguage: target.Language,
	}

	created, err := re.RDB.InsertOne(r.Context(), report)
	if err != nil {
		if errors.Is(err, databases.ErrDuplicateReport) {
			// lost the race with a concurrent submission; same outcome as the
			// pre-check
			config.ErrorStatusCode("you have already reported this item", "DUPLICATE_REPORT", http.StatusConflict, w, nil)
			return
		}
		config.ErrorStatus("failed to create report", http.StatusInternalServerError, w, err)
		return
	}

	broadcastRefresh("reports")

	b, err := json.Marshal(map[string]interface{}{
		"message": "report submitted successfully",
		"report":  created,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// ListReportsHandler returns one page of reports visible to the actor's
// scope, newest first
func (re Report) ListReportsHandler(w http.ResponseWriter, r *http.Request) {
	actor, err := loadActor(r, re.UDB)
	if err != nil {
		config.ErrorStatus("unauthenticated", http.StatusUnauthorized, w, err)
		return
	}

	if !authorization.HasModerationCapability(actor) {
		config.ErrorStatusCode("insufficient permissions", "INSUFFICIENT_ROLE", http.StatusForbidden, w, nil)
		return
	}

	filter, err := authorization.ReportListFilter(actor)
	if err != nil {
		if errors.Is(err, authorization.ErrNoAssignedLanguage) {
			config.ErrorStatusCode("admin has no assigned language", "NO_ASSIGNED_LANGUAGE", http.StatusForbidden, w, nil)
			return
		}
		config.ErrorStatusCode("insufficient permissions", "INSUFFICIENT_ROLE", http.StatusForbidden, w, err)
		return
	}

	status := models.ReportStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = models.ReportStatusPending
	}
	if status != "ALL" {
		if !status.IsValid() {
			config.ErrorStatus("invalid status filter", http.StatusBadRequest, w, nil)
			return
		}
		filter["status"] = status
	}

	page := getPage(r)
	limit := getLimit(r)

	reports, err := re.RDB.FindPage(r.Context(), filter, page, limit)
	if err != nil {
		config.ErrorStatus("failed to list reports", http.StatusInternalServerError, w, err)
		return
	}
	if len(reports) == 0 {
		reports = []models.Report{}
	}

	total, err := re.RDB.Count(r.Context(), filter)
	if err != nil {
		config.ErrorStatus("failed to count reports", http.StatusInternalServerError, w, err)
		return
	}

	pageCount := (total + int64(limit) - 1) / int64(limit)

	b, err := json.Marshal(models.ReportList{
		Reports:   reports,
		Total:     total,
		PageCount: pageCount,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ResolveReportHandler moves a report to a terminal status. Role possession
// is the only gate here; scope authorization happens inside the cascade, the
// same check the standalone flag toggle runs. Resolving as RESOLVED cascades
// into marking the target entity as violating the law under the resolving
// actor's identity. The status write and the cascade are two store writes,
// not one transaction: a cascade failure leaves the report RESOLVED with an
// unflagged target and is surfaced distinctly so the caller can retry the
// toggle alone.
func (re Report) ResolveReportHandler(w http.ResponseWriter, r *http.Request) {
	reportID := mux.Vars(r)["report_id"]

	rID, err := primitive.ObjectIDFromHex(reportID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var req ResolveReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if !req.NewStatus.IsTerminal() {
		config.ErrorStatus("newStatus must be RESOLVED or DISMISSED", http.StatusBadRequest, w, nil)
		return
	}

	actor, err := loadActor(r, re.UDB)
	if err != nil {
		config.ErrorStatus("unauthenticated", http.StatusUnauthorized, w, err)
		return
	}
	if !authorization.HasModerationCapability(actor) {
		config.ErrorStatusCode("insufficient permissions", "INSUFFICIENT_ROLE", http.StatusForbidden, w, nil)
		return
	}

	report, err := re.RDB.FindOne(r.Context(), bson.M{"_id": rID})
	if err != nil {
		config.ErrorStatus("failed to get report by ID", http.StatusNotFound, w, err)
		return
	}

	if err := re.RDB.UpdateStatus(r.Context(), rID, req.NewStatus); err != nil {
		if errors.Is(err, databases.ErrReportNotFound) {
			config.ErrorStatus("failed to get report by ID", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to update report status", http.StatusInternalServerError, w, err)
		return
	}

	if req.NewStatus == models.ReportStatusResolved {
		if err := applyViolationFlag(r.Context(), re.EDB, actor, report.Target.Kind, report.Target.ID, true); err != nil {
			zap.S().Errorw("report resolved but violation flag not applied",
				"reportId", reportID,
				"targetKind", report.Target.Kind,
				"targetId", report.Target.ID,
				"error", err)
			config.ErrorStatusCode("report resolved but violation flag not applied; retry the flag toggle", "CASCADE_INCOMPLETE", http.StatusInternalServerError, w, err)
			return
		}
	}

	broadcastRefresh("reports")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "report status updated"}`))
}
