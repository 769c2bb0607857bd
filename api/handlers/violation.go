package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/polyview/moderation-api/api/authorization"
	"github.com/polyview/moderation-api/config"
	"github.com/polyview/moderation-api/databases"
	"github.com/polyview/moderation-api/models"
)

// Violation exported for testing purposes
type Violation struct {
	EDB databases.EntityDatabase
	UDB databases.UserDatabase
}

// SetViolationRequest is the flag-toggle request body
type SetViolationRequest struct {
	EntityID    int64  `json:"entityId"`
	EntityType  string `json:"entityType"`
	IsViolation bool   `json:"isViolation"`
}

// applyViolationFlag resolves the target, authorizes the actor against its
// full (bias, language) context and overwrites the violates-law flag. The
// audit field records the actor's moderated-scope id; actors without a scope
// leave it untouched. Also invoked by the resolve-report cascade.
func applyViolationFlag(ctx context.Context, edb databases.EntityDatabase, actor models.Actor, kind models.EntityKind, id int64, isViolation bool) error {
	target, err := edb.ResolveTargetContext(ctx, kind, id)
	if err != nil {
		return err
	}

	if d := authorization.Authorize(actor, *target); !d.Allowed {
		return d.Err()
	}

	var setBy *string
	if actor.ModeratedScope != nil {
		scopeID := actor.ModeratedScope.ID.Hex()
		setBy = &scopeID
	}

	return edb.SetViolatesLaw(ctx, kind, id, isViolation, setBy)
}

// SetViolationHandler toggles the violates-law flag on a content entity. The
// operation is idempotent: repeating it with the same value re-stamps the
// audit field and nothing else.
func (v Violation) SetViolationHandler(w http.ResponseWriter, r *http.Request) {
	var req SetViolationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	kind := models.EntityKind(strings.ToUpper(req.EntityType))
	if !kind.IsValid() {
		config.ErrorStatusCode("invalid entity type", "INVALID_ENTITY_TYPE", http.StatusBadRequest, w, nil)
		return
	}

	actor, err := loadActor(r, v.UDB)
	if err != nil {
		config.ErrorStatus("unauthenticated", http.StatusUnauthorized, w, err)
		return
	}

	if err := applyViolationFlag(r.Context(), v.EDB, actor, kind, req.EntityID, req.IsViolation); err != nil {
		writeViolationError(w, err)
		return
	}

	broadcastRefresh("violations")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "violation flag updated"}`))
}

// writeViolationError maps flag-toggle failures onto the error taxonomy,
// keeping authorization and not-found outcomes distinct for the console
func writeViolationError(w http.ResponseWriter, err error) {
	var denyErr *authorization.DenyError
	switch {
	case errors.Is(err, databases.ErrEntityNotFound):
		config.ErrorStatusCode("entity not found", "ENTITY_NOT_FOUND", http.StatusNotFound, w, err)
	case errors.As(err, &denyErr):
		config.ErrorStatusCode("forbidden", string(denyErr.Reason), http.StatusForbidden, w, err)
	default:
		config.ErrorStatus("failed to update violation flag", http.StatusInternalServerError, w, err)
	}
}
