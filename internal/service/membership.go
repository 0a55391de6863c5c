package service

import (
	"context"
	"errors"
	"time"

	"leaguehq-backend/internal/domain"
	"leaguehq-backend/internal/permissions"
	"leaguehq-backend/internal/repository"
)

// joinLeague is the single join path shared by self-join, invitation
// acceptance and link redemption. It runs against the registry it is given,
// so callers can place it inside a transaction. On success it also converges
// any pending direct invitation for the same (league, user) pair to accepted.
func joinLeague(ctx context.Context, r *repository.Registry, userID, leagueID int32, role domain.LeagueRole) (*domain.LeagueMember, error) {
	if _, err := r.Members.Get(ctx, userID, leagueID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	userInfo, err := leaguesPerUserInfo(ctx, r.Members, r.Overrides, userID)
	if err != nil {
		return nil, err
	}
	if userInfo.IsAtLimit {
		return nil, LimitExceeded(userInfo, userLeagueLimitMessage(userInfo))
	}

	leagueInfo, err := membersPerLeagueInfo(ctx, r.Members, r.Overrides, leagueID)
	if err != nil {
		return nil, err
	}
	if leagueInfo.IsAtLimit {
		return nil, LimitExceeded(leagueInfo, leagueMemberLimitMessage(leagueInfo))
	}

	member := &domain.LeagueMember{
		UserID:   userID,
		LeagueID: leagueID,
		Role:     role,
		JoinedOn: time.Now(),
	}
	if err := r.Members.Add(ctx, member); err != nil {
		return nil, err
	}

	if inv, err := r.Invitations.GetPendingDirect(ctx, leagueID, userID); err == nil {
		inv.Status = domain.InvitationStatusAccepted
		if err := r.Invitations.Update(ctx, inv); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	return member, nil
}

type membershipService struct {
	tx         repository.Transactor
	leagueRepo repository.LeagueRepository
	memberRepo repository.MemberRepository
}

func NewMembershipService(tx repository.Transactor, leagueRepo repository.LeagueRepository, memberRepo repository.MemberRepository) MembershipService {
	return &membershipService{
		tx:         tx,
		leagueRepo: leagueRepo,
		memberRepo: memberRepo,
	}
}

func (s *membershipService) JoinLeague(ctx context.Context, userID, leagueID int32) (*domain.LeagueMember, error) {
	league, err := s.leagueRepo.GetByID(ctx, leagueID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NotFoundf("league not found")
	}
	if err != nil {
		return nil, err
	}
	if league.IsArchived {
		return nil, Conflictf("this league is archived")
	}
	if league.Visibility != domain.LeagueVisibilityPublic {
		return nil, Permissionf("this league is private; ask for an invitation")
	}

	var member *domain.LeagueMember
	err = s.tx.WithinTx(ctx, func(r *repository.Registry) error {
		member, err = joinLeague(ctx, r, userID, leagueID, domain.LeagueRoleMember)
		return err
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (s *membershipService) LeaveLeague(ctx context.Context, userID, leagueID int32) error {
	member, err := s.memberRepo.Get(ctx, userID, leagueID)
	if errors.Is(err, repository.ErrNotFound) {
		return Permissionf("you are not a member of this league")
	}
	if err != nil {
		return err
	}

	if member.Role == domain.LeagueRoleExecutive {
		count, err := s.memberRepo.CountByLeagueAndRole(ctx, leagueID, domain.LeagueRoleExecutive)
		if err != nil {
			return err
		}
		if count <= 1 {
			return Conflictf("the sole executive cannot leave; promote another member first")
		}
	}

	return s.memberRepo.Remove(ctx, userID, leagueID)
}

func (s *membershipService) RemoveMember(ctx context.Context, requesterID, leagueID, targetUserID int32) error {
	if requesterID == targetUserID {
		return Conflictf("use leave to remove yourself")
	}

	requester, err := s.memberRepo.Get(ctx, requesterID, leagueID)
	if errors.Is(err, repository.ErrNotFound) {
		return Permissionf("you are not a member of this league")
	}
	if err != nil {
		return err
	}
	if !permissions.Can(requester.Role, permissions.ActionRemoveMembers) {
		return Permissionf("you do not have permission to remove members")
	}

	target, err := s.memberRepo.Get(ctx, targetUserID, leagueID)
	if errors.Is(err, repository.ErrNotFound) {
		return NotFoundf("user is not a member of this league")
	}
	if err != nil {
		return err
	}
	if !permissions.CanActOn(requester.Role, target.Role) {
		return Permissionf("you cannot remove a member of equal or higher role")
	}

	return s.memberRepo.Remove(ctx, targetUserID, leagueID)
}

func (s *membershipService) UpdateMemberRole(ctx context.Context, requesterID, leagueID, targetUserID int32, newRole domain.LeagueRole) (*domain.LeagueMember, error) {
	switch newRole {
	case domain.LeagueRoleMember, domain.LeagueRoleManager, domain.LeagueRoleExecutive:
	default:
		return nil, Invalid(map[string]string{"role": "unknown role"})
	}
	if requesterID == targetUserID {
		return nil, Conflictf("you cannot change your own role")
	}

	requester, err := s.memberRepo.Get(ctx, requesterID, leagueID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, Permissionf("you are not a member of this league")
	}
	if err != nil {
		return nil, err
	}
	if !permissions.Can(requester.Role, permissions.ActionManageRoles) {
		return nil, Permissionf("you do not have permission to manage roles")
	}

	target, err := s.memberRepo.Get(ctx, targetUserID, leagueID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NotFoundf("user is not a member of this league")
	}
	if err != nil {
		return nil, err
	}
	if !permissions.CanActOn(requester.Role, target.Role) {
		return nil, Permissionf("you cannot change the role of a member of equal or higher role")
	}
	if !permissions.IsAssignable(requester.Role, newRole) {
		return nil, Permissionf("you cannot assign a role above your own")
	}
	if target.Role == newRole {
		return nil, Conflictf("member already holds that role")
	}

	if target.Role == domain.LeagueRoleExecutive {
		count, err := s.memberRepo.CountByLeagueAndRole(ctx, leagueID, domain.LeagueRoleExecutive)
		if err != nil {
			return nil, err
		}
		if count <= 1 {
			return nil, Conflictf("the sole executive cannot be demoted; promote another member first")
		}
	}

	target.Role = newRole
	if err := s.memberRepo.Update(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

func (s *membershipService) ListMembers(ctx context.Context, requesterID, leagueID int32) ([]domain.LeagueMember, error) {
	if _, err := s.memberRepo.Get(ctx, requesterID, leagueID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, Permissionf("you are not a member of this league")
		}
		return nil, err
	}
	return s.memberRepo.ListByLeague(ctx, leagueID)
}
