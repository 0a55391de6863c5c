package domain

import "time"

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "PENDING"
	InvitationStatusAccepted InvitationStatus = "ACCEPTED"
	InvitationStatusDeclined InvitationStatus = "DECLINED"
	InvitationStatusExpired  InvitationStatus = "EXPIRED"
)

// Invitation is either a direct invitation (InviteeUserID set, no Token) or a
// shareable link invitation (Token set, no fixed invitee). Direct invitations
// move pending -> accepted/declined/expired exactly once; link invitations
// stay pending and are consumed up to MaxUses or ExpiresOn.
type Invitation struct {
	ID            int32            `json:"id"`
	LeagueID      int32            `json:"league_id"`
	InviteeUserID *int32           `json:"invitee_user_id,omitempty"`
	Token         *string          `json:"token,omitempty"`
	Role          LeagueRole       `json:"role"`
	Status        InvitationStatus `json:"status"`
	CreatedBy     int32            `json:"created_by"`
	ExpiresOn     *time.Time       `json:"expires_on,omitempty"`
	MaxUses       *int32           `json:"max_uses,omitempty"`
	UseCount      int32            `json:"use_count"`
	CreatedOn     time.Time        `json:"created_on"`
}

func (i *Invitation) IsLink() bool {
	return i.Token != nil
}

func (i *Invitation) IsExpired(now time.Time) bool {
	return i.ExpiresOn != nil && i.ExpiresOn.Before(now)
}

// InviteLinkDetails is the read-only preview of a link computed at query time.
type InviteLinkDetails struct {
	LeagueID   int32      `json:"league_id"`
	LeagueName string     `json:"league_name"`
	Role       LeagueRole `json:"role"`
	ExpiresOn  *time.Time `json:"expires_on,omitempty"`
	MaxUses    *int32     `json:"max_uses,omitempty"`
	UseCount   int32      `json:"use_count"`
	IsValid    bool       `json:"is_valid"`
	Reason     string     `json:"reason,omitempty"`
}
