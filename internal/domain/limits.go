package domain

type LimitType string

const (
	LimitTypeLeaguesPerUser     LimitType = "LEAGUES_PER_USER"
	LimitTypeMembersPerLeague   LimitType = "MEMBERS_PER_LEAGUE"
	LimitTypeGameTypesPerLeague LimitType = "GAME_TYPES_PER_LEAGUE"
)

// LimitOverride raises or removes the default ceiling for one scope.
// Exactly one of UserID/LeagueID is set; a nil LimitValue means unlimited.
type LimitOverride struct {
	ID         int32     `json:"id"`
	LimitType  LimitType `json:"limit_type"`
	UserID     *int32    `json:"user_id,omitempty"`
	LeagueID   *int32    `json:"league_id,omitempty"`
	LimitValue *int32    `json:"limit_value"`
}

// LimitInfo describes current usage against the effective maximum.
// A nil Max means unlimited.
type LimitInfo struct {
	Current     int32  `json:"current"`
	Max         *int32 `json:"max"`
	IsAtLimit   bool   `json:"is_at_limit"`
	IsNearLimit bool   `json:"is_near_limit"`
}

// LimitCheck is the result of a quota gate at a mutation point.
type LimitCheck struct {
	Allowed bool      `json:"allowed"`
	Info    LimitInfo `json:"info"`
	Message string    `json:"message,omitempty"`
}
