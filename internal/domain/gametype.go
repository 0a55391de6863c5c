package domain

import (
	"encoding/json"
	"time"
)

type GameCategory string

const (
	GameCategoryHeadToHead GameCategory = "HEAD_TO_HEAD"
	GameCategoryFreeForAll GameCategory = "FREE_FOR_ALL"
	GameCategoryHighScore  GameCategory = "HIGH_SCORE"
)

type ScoringType string

const (
	ScoringTypePoints ScoringType = "POINTS"
	ScoringTypeWins   ScoringType = "WINS"
	ScoringTypeTime   ScoringType = "TIME"
)

type ScoreOrder string

const (
	ScoreOrderHigherWins ScoreOrder = "HIGHER_WINS"
	ScoreOrderLowerWins  ScoreOrder = "LOWER_WINS"
)

// GameTypeConfig is the category-specific configuration, stored serialized
// and validated against the category's rules at write time.
type GameTypeConfig struct {
	ScoringType     ScoringType `json:"scoring_type"`
	ScoreOrder      ScoreOrder  `json:"score_order"`
	MinParticipants int32       `json:"min_participants"`
	MaxParticipants int32       `json:"max_participants"`
	Rules           string      `json:"rules,omitempty"`
}

type GameType struct {
	ID         int32           `json:"id"`
	LeagueID   int32           `json:"league_id"`
	Name       string          `json:"name"`
	Category   GameCategory    `json:"category"`
	Config     json.RawMessage `json:"config"`
	IsArchived bool            `json:"is_archived"`
	CreatedBy  int32           `json:"created_by"`
	CreatedOn  time.Time       `json:"created_on"`
}
