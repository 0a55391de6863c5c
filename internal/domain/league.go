package domain

import "time"

type LeagueVisibility string

const (
	LeagueVisibilityPublic  LeagueVisibility = "PUBLIC"
	LeagueVisibilityPrivate LeagueVisibility = "PRIVATE"
)

type League struct {
	ID          int32            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Visibility  LeagueVisibility `json:"visibility"`
	IsArchived  bool             `json:"is_archived"`
	CreatedBy   int32            `json:"created_by"`
	CreatedOn   time.Time        `json:"created_on"`
	MemberCount int32            `json:"member_count"`
}
