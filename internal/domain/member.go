package domain

import "time"

type LeagueRole string

const (
	LeagueRoleMember    LeagueRole = "MEMBER"
	LeagueRoleManager   LeagueRole = "MANAGER"
	LeagueRoleExecutive LeagueRole = "EXECUTIVE"
)

type LeagueMember struct {
	UserID         int32      `json:"user_id"`
	LeagueID       int32      `json:"league_id"`
	Role           LeagueRole `json:"role"`
	JoinedOn       time.Time  `json:"joined_on"`
	SuspendedUntil *time.Time `json:"suspended_until,omitempty"`
}

// IsSuspended reports whether the member is suspended as of now.
// Suspensions expire lazily; an elapsed suspended_until counts as not suspended.
func (m *LeagueMember) IsSuspended(now time.Time) bool {
	return m.SuspendedUntil != nil && m.SuspendedUntil.After(now)
}

// PlaceholderMember stands in for a person without an account. The linked
// user reference is weak: it never implies membership or ownership.
type PlaceholderMember struct {
	ID           int32      `json:"id"`
	LeagueID     int32      `json:"league_id"`
	DisplayName  string     `json:"display_name"`
	LinkedUserID *int32     `json:"linked_user_id,omitempty"`
	RetiredOn    *time.Time `json:"retired_on,omitempty"`
	CreatedOn    time.Time  `json:"created_on"`
}
