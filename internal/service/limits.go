package service

import (
	"context"
	"errors"
	"fmt"

	"leaguehq-backend/internal/domain"
	"leaguehq-backend/internal/permissions"
	"leaguehq-backend/internal/repository"
)

// Default ceilings applied when no override exists for the scope.
const (
	DefaultMaxLeaguesPerUser     int32 = 3
	DefaultMaxMembersPerLeague   int32 = 20
	DefaultMaxGameTypesPerLeague int32 = 20

	// nearLimitThreshold marks usage within this many slots of the max.
	nearLimitThreshold int32 = 1
)

func buildLimitInfo(current int32, max *int32) domain.LimitInfo {
	info := domain.LimitInfo{Current: current, Max: max}
	if max != nil {
		info.IsAtLimit = current >= *max
		info.IsNearLimit = !info.IsAtLimit && current >= *max-nearLimitThreshold
	}
	return info
}

// effectiveUserLimit resolves the ceiling for a per-user limit type:
// an override row wins over the default, and a nil override value means
// unlimited.
func effectiveUserLimit(ctx context.Context, overrides repository.LimitOverrideRepository, userID int32, limitType domain.LimitType, def int32) (*int32, error) {
	o, err := overrides.GetForUser(ctx, userID, limitType)
	if errors.Is(err, repository.ErrNotFound) {
		return &def, nil
	}
	if err != nil {
		return nil, err
	}
	return o.LimitValue, nil
}

func effectiveLeagueLimit(ctx context.Context, overrides repository.LimitOverrideRepository, leagueID int32, limitType domain.LimitType, def int32) (*int32, error) {
	o, err := overrides.GetForLeague(ctx, leagueID, limitType)
	if errors.Is(err, repository.ErrNotFound) {
		return &def, nil
	}
	if err != nil {
		return nil, err
	}
	return o.LimitValue, nil
}

// The info helpers take repositories explicitly so join paths can run them
// against transaction-bound repositories.

func leaguesPerUserInfo(ctx context.Context, members repository.MemberRepository, overrides repository.LimitOverrideRepository, userID int32) (domain.LimitInfo, error) {
	max, err := effectiveUserLimit(ctx, overrides, userID, domain.LimitTypeLeaguesPerUser, DefaultMaxLeaguesPerUser)
	if err != nil {
		return domain.LimitInfo{}, err
	}
	current, err := members.CountLeaguesByUser(ctx, userID)
	if err != nil {
		return domain.LimitInfo{}, err
	}
	return buildLimitInfo(current, max), nil
}

func membersPerLeagueInfo(ctx context.Context, members repository.MemberRepository, overrides repository.LimitOverrideRepository, leagueID int32) (domain.LimitInfo, error) {
	max, err := effectiveLeagueLimit(ctx, overrides, leagueID, domain.LimitTypeMembersPerLeague, DefaultMaxMembersPerLeague)
	if err != nil {
		return domain.LimitInfo{}, err
	}
	current, err := members.CountByLeague(ctx, leagueID)
	if err != nil {
		return domain.LimitInfo{}, err
	}
	return buildLimitInfo(current, max), nil
}

func gameTypesPerLeagueInfo(ctx context.Context, gameTypes repository.GameTypeRepository, overrides repository.LimitOverrideRepository, leagueID int32) (domain.LimitInfo, error) {
	max, err := effectiveLeagueLimit(ctx, overrides, leagueID, domain.LimitTypeGameTypesPerLeague, DefaultMaxGameTypesPerLeague)
	if err != nil {
		return domain.LimitInfo{}, err
	}
	current, err := gameTypes.CountByLeague(ctx, leagueID)
	if err != nil {
		return domain.LimitInfo{}, err
	}
	return buildLimitInfo(current, max), nil
}

func checkFromInfo(info domain.LimitInfo, message func(domain.LimitInfo) string) domain.LimitCheck {
	check := domain.LimitCheck{Allowed: !info.IsAtLimit, Info: info}
	if info.IsAtLimit {
		check.Message = message(info)
	}
	return check
}

func userLeagueLimitMessage(info domain.LimitInfo) string {
	return fmt.Sprintf("you have reached the maximum of %d leagues", *info.Max)
}

func leagueMemberLimitMessage(info domain.LimitInfo) string {
	return fmt.Sprintf("this league has reached its maximum of %d members", *info.Max)
}

func leagueGameTypeLimitMessage(info domain.LimitInfo) string {
	return fmt.Sprintf("this league has reached its maximum of %d game types", *info.Max)
}

type limitService struct {
	memberRepo   repository.MemberRepository
	gameTypeRepo repository.GameTypeRepository
	overrideRepo repository.LimitOverrideRepository
}

func NewLimitService(memberRepo repository.MemberRepository, gameTypeRepo repository.GameTypeRepository, overrideRepo repository.LimitOverrideRepository) LimitService {
	return &limitService{
		memberRepo:   memberRepo,
		gameTypeRepo: gameTypeRepo,
		overrideRepo: overrideRepo,
	}
}

func (s *limitService) UserLeagueLimit(ctx context.Context, userID int32) (domain.LimitInfo, error) {
	return leaguesPerUserInfo(ctx, s.memberRepo, s.overrideRepo, userID)
}

func (s *limitService) LeagueMemberLimit(ctx context.Context, leagueID int32) (domain.LimitInfo, error) {
	return membersPerLeagueInfo(ctx, s.memberRepo, s.overrideRepo, leagueID)
}

func (s *limitService) LeagueGameTypeLimit(ctx context.Context, leagueID int32) (domain.LimitInfo, error) {
	return gameTypesPerLeagueInfo(ctx, s.gameTypeRepo, s.overrideRepo, leagueID)
}

func (s *limitService) CanUserJoinAnotherLeague(ctx context.Context, userID int32) (domain.LimitCheck, error) {
	info, err := leaguesPerUserInfo(ctx, s.memberRepo, s.overrideRepo, userID)
	if err != nil {
		return domain.LimitCheck{}, err
	}
	return checkFromInfo(info, userLeagueLimitMessage), nil
}

func (s *limitService) CanLeagueAddMember(ctx context.Context, leagueID int32) (domain.LimitCheck, error) {
	info, err := membersPerLeagueInfo(ctx, s.memberRepo, s.overrideRepo, leagueID)
	if err != nil {
		return domain.LimitCheck{}, err
	}
	return checkFromInfo(info, leagueMemberLimitMessage), nil
}

func (s *limitService) CanLeagueAddGameType(ctx context.Context, leagueID int32) (domain.LimitCheck, error) {
	info, err := gameTypesPerLeagueInfo(ctx, s.gameTypeRepo, s.overrideRepo, leagueID)
	if err != nil {
		return domain.LimitCheck{}, err
	}
	return checkFromInfo(info, leagueGameTypeLimitMessage), nil
}

func (s *limitService) SetLeagueOverride(ctx context.Context, requesterID, leagueID int32, limitType domain.LimitType, value *int32) (*domain.LimitOverride, error) {
	if limitType != domain.LimitTypeMembersPerLeague && limitType != domain.LimitTypeGameTypesPerLeague {
		return nil, Invalid(map[string]string{"limit_type": "not a league-scoped limit"})
	}
	if value != nil && *value < 0 {
		return nil, Invalid(map[string]string{"limit_value": "must not be negative"})
	}
	requester, err := s.memberRepo.Get(ctx, requesterID, leagueID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, Permissionf("you are not a member of this league")
	}
	if err != nil {
		return nil, err
	}
	if !permissions.Can(requester.Role, permissions.ActionManageLimits) {
		return nil, Permissionf("only executives can change league limits")
	}

	o := &domain.LimitOverride{LimitType: limitType, LeagueID: &leagueID, LimitValue: value}
	if err := s.overrideRepo.Upsert(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *limitService) SetUserOverride(ctx context.Context, userID int32, limitType domain.LimitType, value *int32) (*domain.LimitOverride, error) {
	if limitType != domain.LimitTypeLeaguesPerUser {
		return nil, Invalid(map[string]string{"limit_type": "not a user-scoped limit"})
	}
	if value != nil && *value < 0 {
		return nil, Invalid(map[string]string{"limit_value": "must not be negative"})
	}
	o := &domain.LimitOverride{LimitType: limitType, UserID: &userID, LimitValue: value}
	if err := s.overrideRepo.Upsert(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}
