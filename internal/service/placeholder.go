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

type placeholderService struct {
	placeholderRepo repository.PlaceholderMemberRepository
	memberRepo      repository.MemberRepository
}

func NewPlaceholderService(placeholderRepo repository.PlaceholderMemberRepository, memberRepo repository.MemberRepository) PlaceholderService {
	return &placeholderService{
		placeholderRepo: placeholderRepo,
		memberRepo:      memberRepo,
	}
}

func (s *placeholderService) requireManager(ctx context.Context, requesterID, leagueID int32) error {
	requester, err := s.memberRepo.Get(ctx, requesterID, leagueID)
	if errors.Is(err, repository.ErrNotFound) {
		return Permissionf("you are not a member of this league")
	}
	if err != nil {
		return err
	}
	if !permissions.Can(requester.Role, permissions.ActionCreatePlaceholders) {
		return Permissionf("you do not have permission to manage placeholder members")
	}
	return nil
}

func (s *placeholderService) CreatePlaceholder(ctx context.Context, requesterID, leagueID int32, displayName string) (*domain.PlaceholderMember, error) {
	if strings.TrimSpace(displayName) == "" {
		return nil, Invalid(map[string]string{"display_name": "display name is required"})
	}
	if err := s.requireManager(ctx, requesterID, leagueID); err != nil {
		return nil, err
	}

	pm := &domain.PlaceholderMember{
		LeagueID:    leagueID,
		DisplayName: strings.TrimSpace(displayName),
	}
	if err := s.placeholderRepo.Create(ctx, pm); err != nil {
		return nil, err
	}
	return pm, nil
}

func (s *placeholderService) getForUpdate(ctx context.Context, requesterID, placeholderID int32) (*domain.PlaceholderMember, error) {
	pm, err := s.placeholderRepo.GetByID(ctx, placeholderID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NotFoundf("placeholder member not found")
	}
	if err != nil {
		return nil, err
	}
	if err := s.requireManager(ctx, requesterID, pm.LeagueID); err != nil {
		return nil, err
	}
	return pm, nil
}

func (s *placeholderService) RenamePlaceholder(ctx context.Context, requesterID, placeholderID int32, displayName string) (*domain.PlaceholderMember, error) {
	if strings.TrimSpace(displayName) == "" {
		return nil, Invalid(map[string]string{"display_name": "display name is required"})
	}
	pm, err := s.getForUpdate(ctx, requesterID, placeholderID)
	if err != nil {
		return nil, err
	}
	pm.DisplayName = strings.TrimSpace(displayName)
	if err := s.placeholderRepo.Update(ctx, pm); err != nil {
		return nil, err
	}
	return pm, nil
}

func (s *placeholderService) RetirePlaceholder(ctx context.Context, requesterID, placeholderID int32) error {
	pm, err := s.getForUpdate(ctx, requesterID, placeholderID)
	if err != nil {
		return err
	}
	if pm.RetiredOn != nil {
		return Conflictf("placeholder member is already retired")
	}
	now := time.Now()
	pm.RetiredOn = &now
	return s.placeholderRepo.Update(ctx, pm)
}

func (s *placeholderService) RestorePlaceholder(ctx context.Context, requesterID, placeholderID int32) error {
	pm, err := s.getForUpdate(ctx, requesterID, placeholderID)
	if err != nil {
		return err
	}
	if pm.RetiredOn == nil {
		return Conflictf("placeholder member is not retired")
	}
	pm.RetiredOn = nil
	return s.placeholderRepo.Update(ctx, pm)
}

// LinkPlaceholder records which account a placeholder corresponds to. The
// link is informational; it grants the user nothing and implies no membership.
func (s *placeholderService) LinkPlaceholder(ctx context.Context, requesterID, placeholderID, userID int32) (*domain.PlaceholderMember, error) {
	pm, err := s.getForUpdate(ctx, requesterID, placeholderID)
	if err != nil {
		return nil, err
	}
	if _, err := s.memberRepo.Get(ctx, userID, pm.LeagueID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, Conflictf("user is not a member of this league")
		}
		return nil, err
	}
	pm.LinkedUserID = &userID
	if err := s.placeholderRepo.Update(ctx, pm); err != nil {
		return nil, err
	}
	return pm, nil
}

func (s *placeholderService) UnlinkPlaceholder(ctx context.Context, requesterID, placeholderID int32) (*domain.PlaceholderMember, error) {
	pm, err := s.getForUpdate(ctx, requesterID, placeholderID)
	if err != nil {
		return nil, err
	}
	if pm.LinkedUserID == nil {
		return nil, Conflictf("placeholder member is not linked to a user")
	}
	pm.LinkedUserID = nil
	if err := s.placeholderRepo.Update(ctx, pm); err != nil {
		return nil, err
	}
	return pm, nil
}

func (s *placeholderService) ListPlaceholders(ctx context.Context, requesterID, leagueID int32, includeRetired bool) ([]domain.PlaceholderMember, error) {
	if _, err := s.memberRepo.Get(ctx, requesterID, leagueID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, Permissionf("you are not a member of this league")
		}
		return nil, err
	}
	return s.placeholderRepo.ListByLeague(ctx, leagueID, includeRetired)
}
