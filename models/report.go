package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ReportStatus represents the lifecycle state of a report
type ReportStatus string

// Predefined ReportStatus values
const (
	ReportStatusPending   ReportStatus = "PENDING"
	ReportStatusResolved  ReportStatus = "RESOLVED"
	ReportStatusDismissed ReportStatus = "DISMISSED"
)

// ValidReportStatuses returns all valid ReportStatus values
func ValidReportStatuses() []ReportStatus {
	return []ReportStatus{
		ReportStatusPending,
		ReportStatusResolved,
		ReportStatusDismissed,
	}
}

// IsValid checks if the ReportStatus value is one of the predefined constants
func (s ReportStatus) IsValid() bool {
	for _, validStatus := range ValidReportStatuses() {
		if s == validStatus {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status is a final state
func (s ReportStatus) IsTerminal() bool {
	return s == ReportStatusResolved || s == ReportStatusDismissed
}

// String returns the string representation of the ReportStatus
func (s ReportStatus) String() string {
	return string(s)
}

// ReportTarget pins a report to exactly one content entity. Kind is a closed
// enum, so a report with no populated target is unrepresentable.
type ReportTarget struct {
	Kind EntityKind `json:"kind" bson:"kind"`
	ID   int64      `json:"id" bson:"id"`
}

// Report represents a user-submitted flag against a content entity.
// TargetBiasID and TargetLanguage are copied from the target at submission
// time so that scope filtering stays a single-collection query.
type Report struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Reason         string             `json:"reason" bson:"reason"`
	ReportedBy     string             `json:"reportedBy" bson:"reportedBy"`
	Status         ReportStatus       `json:"status" bson:"status"`
	CreatedAt      primitive.DateTime `json:"createdAt" bson:"createdAt"`
	Target         ReportTarget       `json:"target" bson:"target"`
	TargetBiasID   int64              `json:"targetBiasId" bson:"targetBiasId"`
	TargetLanguage *string            `json:"targetLanguage,omitempty" bson:"targetLanguage,omitempty"`
}

// ReportList is the paginated listing response
type ReportList struct {
	Reports   []Report `json:"reports"`
	Total     int64    `json:"total"`
	PageCount int64    `json:"pageCount"`
}
