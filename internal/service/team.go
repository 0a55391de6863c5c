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

type teamService struct {
	tx              repository.Transactor
	teamRepo        repository.TeamRepository
	memberRepo      repository.MemberRepository
	placeholderRepo repository.PlaceholderMemberRepository
}

func NewTeamService(tx repository.Transactor, teamRepo repository.TeamRepository, memberRepo repository.MemberRepository, placeholderRepo repository.PlaceholderMemberRepository) TeamService {
	return &teamService{
		tx:              tx,
		teamRepo:        teamRepo,
		memberRepo:      memberRepo,
		placeholderRepo: placeholderRepo,
	}
}

// CreateTeam requires league-level permission; every other team mutation is
// gated by team-scoped roles only. The creator is enrolled as team manager in
// the same transaction as the team row.
func (s *teamService) CreateTeam(ctx context.Context, requesterID, leagueID int32, name, description string) (*domain.Team, error) {
	if strings.TrimSpace(name) == "" {
		return nil, Invalid(map[string]string{"name": "name is required"})
	}

	requester, err := s.memberRepo.Get(ctx, requesterID, leagueID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, Permissionf("you are not a member of this league")
	}
	if err != nil {
		return nil, err
	}
	if !permissions.Can(requester.Role, permissions.ActionCreateTeams) {
		return nil, Permissionf("you do not have permission to create teams")
	}

	team := &domain.Team{
		LeagueID:    leagueID,
		Name:        strings.TrimSpace(name),
		Description: description,
		CreatedBy:   requesterID,
	}
	err = s.tx.WithinTx(ctx, func(r *repository.Registry) error {
		if err := r.Teams.Create(ctx, team); err != nil {
			return err
		}
		return r.Teams.AddMember(ctx, &domain.TeamMember{
			TeamID: team.ID,
			UserID: &requesterID,
			Role:   domain.TeamRoleManager,
		})
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

// requireTeamAction checks league membership plus the team-scoped role for
// the action. League role grants no team privileges.
func (s *teamService) requireTeamAction(ctx context.Context, requesterID, teamID int32, action permissions.TeamAction) (*domain.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NotFoundf("team not found")
	}
	if err != nil {
		return nil, err
	}
	if _, err := s.memberRepo.Get(ctx, requesterID, team.LeagueID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, Permissionf("you are not a member of this league")
		}
		return nil, err
	}
	tm, err := s.teamRepo.GetMemberByUser(ctx, teamID, requesterID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, Permissionf("you are not a member of this team")
	}
	if err != nil {
		return nil, err
	}
	if !permissions.CanTeamAct(tm.Role, action) {
		return nil, Permissionf("you do not have permission for this team operation")
	}
	return team, nil
}

func (s *teamService) GetTeam(ctx context.Context, requesterID, teamID int32) (*domain.Team, []domain.TeamMember, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, NotFoundf("team not found")
	}
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.memberRepo.Get(ctx, requesterID, team.LeagueID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, Permissionf("you are not a member of this league")
		}
		return nil, nil, err
	}
	members, err := s.teamRepo.ListMembers(ctx, teamID)
	if err != nil {
		return nil, nil, err
	}
	return team, members, nil
}

func (s *teamService) ListTeams(ctx context.Context, requesterID, leagueID int32) ([]domain.Team, error) {
	if _, err := s.memberRepo.Get(ctx, requesterID, leagueID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, Permissionf("you are not a member of this league")
		}
		return nil, err
	}
	return s.teamRepo.ListByLeague(ctx, leagueID)
}

func (s *teamService) UpdateTeam(ctx context.Context, requesterID, teamID int32, name, description string) (*domain.Team, error) {
	if strings.TrimSpace(name) == "" {
		return nil, Invalid(map[string]string{"name": "name is required"})
	}
	team, err := s.requireTeamAction(ctx, requesterID, teamID, permissions.TeamActionEditTeam)
	if err != nil {
		return nil, err
	}
	team.Name = strings.TrimSpace(name)
	team.Description = description
	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *teamService) ArchiveTeam(ctx context.Context, requesterID, teamID int32) error {
	team, err := s.requireTeamAction(ctx, requesterID, teamID, permissions.TeamActionEditTeam)
	if err != nil {
		return err
	}
	if team.IsArchived {
		return Conflictf("team is already archived")
	}
	team.IsArchived = true
	return s.teamRepo.Update(ctx, team)
}

func (s *teamService) UnarchiveTeam(ctx context.Context, requesterID, teamID int32) error {
	team, err := s.requireTeamAction(ctx, requesterID, teamID, permissions.TeamActionEditTeam)
	if err != nil {
		return err
	}
	if !team.IsArchived {
		return Conflictf("team is not archived")
	}
	team.IsArchived = false
	return s.teamRepo.Update(ctx, team)
}

func (s *teamService) DeleteTeam(ctx context.Context, requesterID, teamID int32) error {
	if _, err := s.requireTeamAction(ctx, requesterID, teamID, permissions.TeamActionDeleteTeam); err != nil {
		return err
	}
	return s.teamRepo.Delete(ctx, teamID)
}

func (s *teamService) AddTeamMember(ctx context.Context, requesterID, teamID int32, userID, placeholderID *int32, role domain.TeamRole) (*domain.TeamMember, error) {
	fieldErrors := map[string]string{}
	if (userID == nil) == (placeholderID == nil) {
		fieldErrors["member"] = "exactly one of user_id or placeholder_member_id is required"
	}
	switch role {
	case domain.TeamRoleMember, domain.TeamRoleManager:
	default:
		fieldErrors["role"] = "unknown team role"
	}
	if len(fieldErrors) > 0 {
		return nil, Invalid(fieldErrors)
	}

	team, err := s.requireTeamAction(ctx, requesterID, teamID, permissions.TeamActionManageMembers)
	if err != nil {
		return nil, err
	}

	if userID != nil {
		if _, err := s.memberRepo.Get(ctx, *userID, team.LeagueID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, Conflictf("user is not a member of this league")
			}
			return nil, err
		}
		if _, err := s.teamRepo.GetMemberByUser(ctx, teamID, *userID); err == nil {
			return nil, Conflictf("user is already a member of this team")
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	} else {
		pm, err := s.placeholderRepo.GetByID(ctx, *placeholderID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFoundf("placeholder member not found")
		}
		if err != nil {
			return nil, err
		}
		if pm.LeagueID != team.LeagueID {
			return nil, Conflictf("placeholder belongs to a different league")
		}
		if pm.RetiredOn != nil {
			return nil, Conflictf("placeholder member is retired")
		}
		if _, err := s.teamRepo.GetMemberByPlaceholder(ctx, teamID, *placeholderID); err == nil {
			return nil, Conflictf("placeholder is already a member of this team")
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	tm := &domain.TeamMember{
		TeamID:              teamID,
		UserID:              userID,
		PlaceholderMemberID: placeholderID,
		Role:                role,
	}
	if err := s.teamRepo.AddMember(ctx, tm); err != nil {
		return nil, err
	}
	return tm, nil
}

// RemoveTeamMember marks the membership as left rather than deleting the row,
// preserving past rosters.
func (s *teamService) RemoveTeamMember(ctx context.Context, requesterID, teamMemberID int32) error {
	tm, err := s.teamRepo.GetMember(ctx, teamMemberID)
	if errors.Is(err, repository.ErrNotFound) {
		return NotFoundf("team member not found")
	}
	if err != nil {
		return err
	}
	if tm.LeftOn != nil {
		return Conflictf("team member has already left")
	}
	if _, err := s.requireTeamAction(ctx, requesterID, tm.TeamID, permissions.TeamActionManageMembers); err != nil {
		return err
	}

	now := time.Now()
	tm.LeftOn = &now
	return s.teamRepo.UpdateMember(ctx, tm)
}

// LeaveTeam is self-service; it requires team membership but no manager role.
func (s *teamService) LeaveTeam(ctx context.Context, userID, teamID int32) error {
	tm, err := s.teamRepo.GetMemberByUser(ctx, teamID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return Permissionf("you are not a member of this team")
	}
	if err != nil {
		return err
	}

	now := time.Now()
	tm.LeftOn = &now
	return s.teamRepo.UpdateMember(ctx, tm)
}
