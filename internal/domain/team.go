package domain

import "time"

type TeamRole string

const (
	TeamRoleMember  TeamRole = "MEMBER"
	TeamRoleManager TeamRole = "MANAGER"
)

type Team struct {
	ID          int32     `json:"id"`
	LeagueID    int32     `json:"league_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsArchived  bool      `json:"is_archived"`
	CreatedBy   int32     `json:"created_by"`
	CreatedOn   time.Time `json:"created_on"`
}

// TeamMember references exactly one of a real user or a placeholder member.
type TeamMember struct {
	ID                  int32      `json:"id"`
	TeamID              int32      `json:"team_id"`
	UserID              *int32     `json:"user_id,omitempty"`
	PlaceholderMemberID *int32     `json:"placeholder_member_id,omitempty"`
	Role                TeamRole   `json:"role"`
	JoinedOn            time.Time  `json:"joined_on"`
	LeftOn              *time.Time `json:"left_on,omitempty"`
}
