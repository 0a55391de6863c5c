package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"leaguehq-backend/internal/domain"
	"leaguehq-backend/internal/permissions"
	"leaguehq-backend/internal/repository"
)

type gameTypeService struct {
	gameTypeRepo repository.GameTypeRepository
	memberRepo   repository.MemberRepository
	overrideRepo repository.LimitOverrideRepository
}

func NewGameTypeService(gameTypeRepo repository.GameTypeRepository, memberRepo repository.MemberRepository, overrideRepo repository.LimitOverrideRepository) GameTypeService {
	return &gameTypeService{
		gameTypeRepo: gameTypeRepo,
		memberRepo:   memberRepo,
		overrideRepo: overrideRepo,
	}
}

// validateGameTypeConfig checks the category-specific rules:
// head-to-head is always exactly two participants, free-for-all needs at
// least three, high-score accepts any participant count of one or more.
func validateGameTypeConfig(category domain.GameCategory, cfg domain.GameTypeConfig) map[string]string {
	fieldErrors := map[string]string{}

	switch cfg.ScoringType {
	case domain.ScoringTypePoints, domain.ScoringTypeWins, domain.ScoringTypeTime:
	default:
		fieldErrors["config.scoring_type"] = "must be POINTS, WINS or TIME"
	}
	switch cfg.ScoreOrder {
	case domain.ScoreOrderHigherWins, domain.ScoreOrderLowerWins:
	default:
		fieldErrors["config.score_order"] = "must be HIGHER_WINS or LOWER_WINS"
	}
	if cfg.MaxParticipants < cfg.MinParticipants {
		fieldErrors["config.max_participants"] = "must not be below min_participants"
	}

	switch category {
	case domain.GameCategoryHeadToHead:
		if cfg.MinParticipants != 2 || cfg.MaxParticipants != 2 {
			fieldErrors["config.min_participants"] = "head-to-head games have exactly 2 participants"
		}
	case domain.GameCategoryFreeForAll:
		if cfg.MinParticipants < 3 {
			fieldErrors["config.min_participants"] = "free-for-all games need at least 3 participants"
		}
	case domain.GameCategoryHighScore:
		if cfg.MinParticipants < 1 {
			fieldErrors["config.min_participants"] = "must be at least 1"
		}
	}
	return fieldErrors
}

func (s *gameTypeService) requireLeagueAction(ctx context.Context, requesterID, leagueID int32) error {
	requester, err := s.memberRepo.Get(ctx, requesterID, leagueID)
	if errors.Is(err, repository.ErrNotFound) {
		return Permissionf("you are not a member of this league")
	}
	if err != nil {
		return err
	}
	if !permissions.Can(requester.Role, permissions.ActionCreateGameTypes) {
		return Permissionf("you do not have permission to manage game types")
	}
	return nil
}

func (s *gameTypeService) CreateGameType(ctx context.Context, requesterID, leagueID int32, name string, category domain.GameCategory, config domain.GameTypeConfig) (*domain.GameType, error) {
	fieldErrors := map[string]string{}
	if strings.TrimSpace(name) == "" {
		fieldErrors["name"] = "name is required"
	}
	switch category {
	case domain.GameCategoryHeadToHead, domain.GameCategoryFreeForAll, domain.GameCategoryHighScore:
		for k, v := range validateGameTypeConfig(category, config) {
			fieldErrors[k] = v
		}
	default:
		fieldErrors["category"] = "must be HEAD_TO_HEAD, FREE_FOR_ALL or HIGH_SCORE"
	}
	if len(fieldErrors) > 0 {
		return nil, Invalid(fieldErrors)
	}

	if err := s.requireLeagueAction(ctx, requesterID, leagueID); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if _, err := s.gameTypeRepo.GetByName(ctx, leagueID, name); err == nil {
		return nil, Conflictf("a game type with that name already exists in this league")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	info, err := gameTypesPerLeagueInfo(ctx, s.gameTypeRepo, s.overrideRepo, leagueID)
	if err != nil {
		return nil, err
	}
	if info.IsAtLimit {
		return nil, LimitExceeded(info, leagueGameTypeLimitMessage(info))
	}

	raw, err := json.Marshal(config)
	if err != nil {
		return nil, err
	}
	gt := &domain.GameType{
		LeagueID:  leagueID,
		Name:      name,
		Category:  category,
		Config:    raw,
		CreatedBy: requesterID,
	}
	if err := s.gameTypeRepo.Create(ctx, gt); err != nil {
		return nil, err
	}
	return gt, nil
}

func (s *gameTypeService) GetGameType(ctx context.Context, requesterID, gameTypeID int32) (*domain.GameType, error) {
	gt, err := s.gameTypeRepo.GetByID(ctx, gameTypeID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NotFoundf("game type not found")
	}
	if err != nil {
		return nil, err
	}
	if _, err := s.memberRepo.Get(ctx, requesterID, gt.LeagueID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, Permissionf("you are not a member of this league")
		}
		return nil, err
	}
	return gt, nil
}

func (s *gameTypeService) ListGameTypes(ctx context.Context, requesterID, leagueID int32, includeArchived bool) ([]domain.GameType, error) {
	if _, err := s.memberRepo.Get(ctx, requesterID, leagueID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, Permissionf("you are not a member of this league")
		}
		return nil, err
	}
	return s.gameTypeRepo.ListByLeague(ctx, leagueID, includeArchived)
}

func (s *gameTypeService) UpdateGameType(ctx context.Context, requesterID, gameTypeID int32, name string, category domain.GameCategory, config domain.GameTypeConfig) (*domain.GameType, error) {
	gt, err := s.gameTypeRepo.GetByID(ctx, gameTypeID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NotFoundf("game type not found")
	}
	if err != nil {
		return nil, err
	}

	// The category is fixed at creation; changing it would invalidate any
	// recorded results for this game type.
	if category != "" && category != gt.Category {
		return nil, Conflictf("the category of a game type cannot be changed")
	}

	fieldErrors := map[string]string{}
	if strings.TrimSpace(name) == "" {
		fieldErrors["name"] = "name is required"
	}
	for k, v := range validateGameTypeConfig(gt.Category, config) {
		fieldErrors[k] = v
	}
	if len(fieldErrors) > 0 {
		return nil, Invalid(fieldErrors)
	}

	if err := s.requireLeagueAction(ctx, requesterID, gt.LeagueID); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if existing, err := s.gameTypeRepo.GetByName(ctx, gt.LeagueID, name); err == nil && existing.ID != gt.ID {
		return nil, Conflictf("a game type with that name already exists in this league")
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	raw, err := json.Marshal(config)
	if err != nil {
		return nil, err
	}
	gt.Name = name
	gt.Config = raw
	if err := s.gameTypeRepo.Update(ctx, gt); err != nil {
		return nil, err
	}
	return gt, nil
}

func (s *gameTypeService) setArchived(ctx context.Context, requesterID, gameTypeID int32, archived bool) error {
	gt, err := s.gameTypeRepo.GetByID(ctx, gameTypeID)
	if errors.Is(err, repository.ErrNotFound) {
		return NotFoundf("game type not found")
	}
	if err != nil {
		return err
	}
	if err := s.requireLeagueAction(ctx, requesterID, gt.LeagueID); err != nil {
		return err
	}
	if gt.IsArchived == archived {
		if archived {
			return Conflictf("game type is already archived")
		}
		return Conflictf("game type is not archived")
	}
	gt.IsArchived = archived
	return s.gameTypeRepo.Update(ctx, gt)
}

func (s *gameTypeService) ArchiveGameType(ctx context.Context, requesterID, gameTypeID int32) error {
	return s.setArchived(ctx, requesterID, gameTypeID, true)
}

func (s *gameTypeService) UnarchiveGameType(ctx context.Context, requesterID, gameTypeID int32) error {
	return s.setArchived(ctx, requesterID, gameTypeID, false)
}

func (s *gameTypeService) DeleteGameType(ctx context.Context, requesterID, gameTypeID int32) error {
	gt, err := s.gameTypeRepo.GetByID(ctx, gameTypeID)
	if errors.Is(err, repository.ErrNotFound) {
		return NotFoundf("game type not found")
	}
	if err != nil {
		return err
	}
	if err := s.requireLeagueAction(ctx, requesterID, gt.LeagueID); err != nil {
		return err
	}
	return s.gameTypeRepo.Delete(ctx, gameTypeID)
}
