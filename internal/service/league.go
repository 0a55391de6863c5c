package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"leaguehq-backend/internal/domain"
	"leaguehq-backend/internal/permissions"
	"leaguehq-backend/internal/repository"
)

type leagueService struct {
	tx         repository.Transactor
	leagueRepo repository.LeagueRepository
	memberRepo repository.MemberRepository
}

func NewLeagueService(tx repository.Transactor, leagueRepo repository.LeagueRepository, memberRepo repository.MemberRepository) LeagueService {
	return &leagueService{
		tx:         tx,
		leagueRepo: leagueRepo,
		memberRepo: memberRepo,
	}
}

func validateLeagueInput(name string, visibility domain.LeagueVisibility) map[string]string {
	fieldErrors := map[string]string{}
	if strings.TrimSpace(name) == "" {
		fieldErrors["name"] = "name is required"
	} else if len(name) > 100 {
		fieldErrors["name"] = "name must be at most 100 characters"
	}
	switch visibility {
	case domain.LeagueVisibilityPublic, domain.LeagueVisibilityPrivate:
	default:
		fieldErrors["visibility"] = "must be PUBLIC or PRIVATE"
	}
	return fieldErrors
}

// CreateLeague creates the league and enrolls the creator as executive in one
// transaction. The creator's league count is checked against their quota first.
func (s *leagueService) CreateLeague(ctx context.Context, userID int32, name, description string, visibility domain.LeagueVisibility) (*domain.League, error) {
	if fieldErrors := validateLeagueInput(name, visibility); len(fieldErrors) > 0 {
		return nil, Invalid(fieldErrors)
	}

	league := &domain.League{
		Name:        strings.TrimSpace(name),
		Description: description,
		Visibility:  visibility,
		CreatedBy:   userID,
	}
	err := s.tx.WithinTx(ctx, func(r *repository.Registry) error {
		info, err := leaguesPerUserInfo(ctx, r.Members, r.Overrides, userID)
		if err != nil {
			return err
		}
		if info.IsAtLimit {
			return LimitExceeded(info, userLeagueLimitMessage(info))
		}
		if err := r.Leagues.Create(ctx, league); err != nil {
			return err
		}
		return r.Members.Add(ctx, &domain.LeagueMember{
			UserID:   userID,
			LeagueID: league.ID,
			Role:     domain.LeagueRoleExecutive,
			JoinedOn: time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}
	league.MemberCount = 1
	return league, nil
}

// GetLeague returns the league and, when the caller belongs to it, their
// membership. Private leagues are invisible to non-members.
func (s *leagueService) GetLeague(ctx context.Context, userID, leagueID int32) (*domain.League, *domain.LeagueMember, error) {
	league, err := s.leagueRepo.GetByID(ctx, leagueID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, NotFoundf("league not found")
	}
	if err != nil {
		return nil, nil, err
	}

	member, err := s.memberRepo.Get(ctx, userID, leagueID)
	if errors.Is(err, repository.ErrNotFound) {
		if league.Visibility != domain.LeagueVisibilityPublic {
			return nil, nil, NotFoundf("league not found")
		}
		return league, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return league, member, nil
}

func (s *leagueService) ListMyLeagues(ctx context.Context, userID int32) ([]domain.League, error) {
	return s.leagueRepo.ListByUser(ctx, userID)
}

func (s *leagueService) ListPublicLeagues(ctx context.Context) ([]domain.League, error) {
	return s.leagueRepo.ListPublic(ctx)
}

func (s *leagueService) requireAction(ctx context.Context, userID, leagueID int32, action permissions.Action) (*domain.League, error) {
	league, err := s.leagueRepo.GetByID(ctx, leagueID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NotFoundf("league not found")
	}
	if err != nil {
		return nil, err
	}
	member, err := s.memberRepo.Get(ctx, userID, leagueID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, Permissionf("you are not a member of this league")
	}
	if err != nil {
		return nil, err
	}
	if !permissions.Can(member.Role, action) {
		return nil, Permissionf("you do not have permission for this operation")
	}
	return league, nil
}

func (s *leagueService) UpdateLeague(ctx context.Context, userID, leagueID int32, name, description string, visibility domain.LeagueVisibility) (*domain.League, error) {
	if fieldErrors := validateLeagueInput(name, visibility); len(fieldErrors) > 0 {
		return nil, Invalid(fieldErrors)
	}
	league, err := s.requireAction(ctx, userID, leagueID, permissions.ActionEditLeague)
	if err != nil {
		return nil, err
	}

	league.Name = strings.TrimSpace(name)
	league.Description = description
	league.Visibility = visibility
	if err := s.leagueRepo.Update(ctx, league); err != nil {
		return nil, err
	}
	return league, nil
}

func (s *leagueService) ArchiveLeague(ctx context.Context, userID, leagueID int32) error {
	league, err := s.requireAction(ctx, userID, leagueID, permissions.ActionEditLeague)
	if err != nil {
		return err
	}
	if league.IsArchived {
		return Conflictf("league is already archived")
	}
	league.IsArchived = true
	return s.leagueRepo.Update(ctx, league)
}

func (s *leagueService) UnarchiveLeague(ctx context.Context, userID, leagueID int32) error {
	league, err := s.requireAction(ctx, userID, leagueID, permissions.ActionEditLeague)
	if err != nil {
		return err
	}
	if !league.IsArchived {
		return Conflictf("league is not archived")
	}
	league.IsArchived = false
	return s.leagueRepo.Update(ctx, league)
}

func (s *leagueService) DeleteLeague(ctx context.Context, userID, leagueID int32) error {
	if _, err := s.requireAction(ctx, userID, leagueID, permissions.ActionDeleteLeague); err != nil {
		return err
	}
	return s.leagueRepo.Delete(ctx, leagueID)
}
