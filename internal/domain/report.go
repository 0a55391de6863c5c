package domain

import "time"

type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "PENDING"
	ReportStatusResolved ReportStatus = "RESOLVED"
)

type Report struct {
	ID             int32        `json:"id"`
	LeagueID       int32        `json:"league_id"`
	ReporterID     int32        `json:"reporter_id"`
	ReportedUserID int32        `json:"reported_user_id"`
	Reason         string       `json:"reason"`
	Description    string       `json:"description"`
	Evidence       string       `json:"evidence,omitempty"`
	Status         ReportStatus `json:"status"`
	CreatedOn      time.Time    `json:"created_on"`
}

type ModerationActionKind string

const (
	ModerationActionDismissed        ModerationActionKind = "DISMISSED"
	ModerationActionWarned           ModerationActionKind = "WARNED"
	ModerationActionSuspended        ModerationActionKind = "SUSPENDED"
	ModerationActionRemoved          ModerationActionKind = "REMOVED"
	ModerationActionSuspensionLifted ModerationActionKind = "SUSPENSION_LIFTED"
)

// ModerationAction is an append-only audit record. ReportID is nil for
// standalone actions such as lifting a suspension outside a report flow.
type ModerationAction struct {
	ID             int32                `json:"id"`
	ReportID       *int32               `json:"report_id,omitempty"`
	LeagueID       int32                `json:"league_id"`
	ModeratorID    int32                `json:"moderator_id"`
	TargetUserID   int32                `json:"target_user_id"`
	Action         ModerationActionKind `json:"action"`
	Reason         string               `json:"reason"`
	SuspendedUntil *time.Time           `json:"suspended_until,omitempty"`
	AcknowledgedOn *time.Time           `json:"acknowledged_on,omitempty"`
	CreatedOn      time.Time            `json:"created_on"`
}
