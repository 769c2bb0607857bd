// Package authorization evaluates the moderation access-scope decision table.
// It is a pure function over the flat actor capability record and the
// target's (bias, language) context; it never touches the request or the
// store, which keeps it unit-testable in isolation.
package authorization

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/polyview/moderation-api/models"
)

// DenyReason identifies why an authorization decision denied access
type DenyReason string

// Predefined DenyReason values
const (
	DenyInsufficientRole   DenyReason = "INSUFFICIENT_ROLE"
	DenyNoAssignedLanguage DenyReason = "NO_ASSIGNED_LANGUAGE"
	DenyLanguageMismatch   DenyReason = "LANGUAGE_MISMATCH"
	DenyBiasMismatch       DenyReason = "BIAS_MISMATCH"
)

// ErrForbidden is matched (via errors.Is) by every denied decision converted
// to an error
var ErrForbidden = errors.New("forbidden")

// ErrInsufficientRole is returned by ReportListFilter when the actor holds no
// moderation capability at all
var ErrInsufficientRole = errors.New("insufficient role")

// ErrNoAssignedLanguage is returned by ReportListFilter for an ADMIN with no
// assigned language
var ErrNoAssignedLanguage = errors.New("admin has no assigned language")

// DenyError carries the deny reason across package boundaries so handlers can
// surface the precise failure class
type DenyError struct {
	Reason DenyReason
}

func (e *DenyError) Error() string {
	return fmt.Sprintf("forbidden: %s", e.Reason)
}

// Is lets errors.Is(err, ErrForbidden) match any deny
func (e *DenyError) Is(target error) bool {
	return target == ErrForbidden
}

// Decision is the outcome of evaluating the scope table
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason DenyReason) Decision {
	return Decision{Reason: reason}
}

// Err converts a denied decision into a *DenyError; nil when allowed
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &DenyError{Reason: d.Reason}
}

// Authorize runs the scope decision table, first match wins:
//
//  1. GLOBAL_ADMIN is allowed unconditionally.
//  2. ADMIN is allowed iff an admin language is assigned and the target's
//     language is absent or equal to it. A language-less target (blob) is
//     always reachable by a language admin; blobs are bias-scoped only.
//  3. An actor with a moderated scope is allowed iff the target's bias
//     matches the scope's bias and the target's language is absent or equal
//     to the scope's language.
//  4. Everyone else is denied.
func Authorize(actor models.Actor, target models.TargetContext) Decision {
	if actor.Role == models.RoleGlobalAdmin {
		return allow()
	}

	if actor.Role == models.RoleAdmin {
		if actor.AdminLanguage == nil {
			return deny(DenyNoAssignedLanguage)
		}
		if target.Language == nil || *target.Language == *actor.AdminLanguage {
			return allow()
		}
		return deny(DenyLanguageMismatch)
	}

	if actor.ModeratedScope != nil {
		if target.BiasID != actor.ModeratedScope.BiasID {
			return deny(DenyBiasMismatch)
		}
		if target.Language != nil && *target.Language != actor.ModeratedScope.Language {
			return deny(DenyLanguageMismatch)
		}
		return allow()
	}

	return deny(DenyInsufficientRole)
}

// HasModerationCapability reports whether the actor may list or resolve
// reports at all
func HasModerationCapability(actor models.Actor) bool {
	return actor.Role != models.RoleUser || actor.ModeratedScope != nil
}

// ReportListFilter produces the mongo filter equivalent to the per-target
// authorization rule for report listing. Global admins see everything, admins
// see reports whose target language matches their assignment or whose target
// is language-less, and moderators see reports within their bias whose target
// language (if present) matches their scope.
func ReportListFilter(actor models.Actor) (bson.M, error) {
	switch {
	case actor.Role == models.RoleGlobalAdmin:
		return bson.M{}, nil

	case actor.Role == models.RoleAdmin:
		if actor.AdminLanguage == nil {
			return nil, ErrNoAssignedLanguage
		}
		return bson.M{
			"$or": []bson.M{
				{"targetLanguage": *actor.AdminLanguage},
				{"targetLanguage": bson.M{"$exists": false}},
			},
		}, nil

	case actor.ModeratedScope != nil:
		return bson.M{
			"targetBiasId": actor.ModeratedScope.BiasID,
			"$or": []bson.M{
				{"targetLanguage": actor.ModeratedScope.Language},
				{"targetLanguage": bson.M{"$exists": false}},
			},
		}, nil

	default:
		return nil, ErrInsufficientRole
	}
}
