package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"leaguehq-backend/internal/domain"
	"leaguehq-backend/internal/permissions"
	"leaguehq-backend/internal/repository"
)

const defaultLinkExpiryDays = 7

type invitationService struct {
	tx         repository.Transactor
	leagueRepo repository.LeagueRepository
	memberRepo repository.MemberRepository
	inviteRepo repository.InvitationRepository
	userRepo   repository.UserRepository
	overrides  repository.LimitOverrideRepository
	emailSvc   EmailService
	logger     *slog.Logger
}

func NewInvitationService(
	tx repository.Transactor,
	leagueRepo repository.LeagueRepository,
	memberRepo repository.MemberRepository,
	inviteRepo repository.InvitationRepository,
	userRepo repository.UserRepository,
	overrides repository.LimitOverrideRepository,
	emailSvc EmailService,
	logger *slog.Logger,
) InvitationService {
	return &invitationService{
		tx:         tx,
		leagueRepo: leagueRepo,
		memberRepo: memberRepo,
		inviteRepo: inviteRepo,
		userRepo:   userRepo,
		overrides:  overrides,
		emailSvc:   emailSvc,
		logger:     logger,
	}
}

// requireInviter verifies the requester can issue invitations for the league
// at the requested role. Inviters can never offer a role above their own.
func (s *invitationService) requireInviter(ctx context.Context, requesterID, leagueID int32, role domain.LeagueRole) (*domain.League, *domain.LeagueMember, error) {
	league, err := s.leagueRepo.GetByID(ctx, leagueID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, NotFoundf("league not found")
	}
	if err != nil {
		return nil, nil, err
	}
	if league.IsArchived {
		return nil, nil, Conflictf("this league is archived")
	}

	requester, err := s.memberRepo.Get(ctx, requesterID, leagueID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, Permissionf("you are not a member of this league")
	}
	if err != nil {
		return nil, nil, err
	}
	if !permissions.Can(requester.Role, permissions.ActionInviteMembers) {
		return nil, nil, Permissionf("you do not have permission to invite members")
	}
	if !permissions.IsAssignable(requester.Role, role) {
		return nil, nil, Permissionf("you cannot invite at a role above your own")
	}
	return league, requester, nil
}

func (s *invitationService) InviteUser(ctx context.Context, requesterID, leagueID int32, inviteeEmail string, role domain.LeagueRole) (*domain.Invitation, error) {
	fieldErrors := map[string]string{}
	if strings.TrimSpace(inviteeEmail) == "" {
		fieldErrors["email"] = "email is required"
	}
	switch role {
	case domain.LeagueRoleMember, domain.LeagueRoleManager, domain.LeagueRoleExecutive:
	default:
		fieldErrors["role"] = "unknown role"
	}
	if len(fieldErrors) > 0 {
		return nil, Invalid(fieldErrors)
	}

	league, _, err := s.requireInviter(ctx, requesterID, leagueID, role)
	if err != nil {
		return nil, err
	}

	invitee, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(inviteeEmail))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NotFoundf("no account exists for that email")
	}
	if err != nil {
		return nil, err
	}

	if _, err := s.memberRepo.Get(ctx, invitee.ID, leagueID); err == nil {
		return nil, Conflictf("user is already a member of this league")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if existing, err := s.inviteRepo.GetPendingDirect(ctx, leagueID, invitee.ID); err == nil {
		// Lazily expire a stale pending invitation so a fresh one can be sent.
		if !existing.IsExpired(time.Now()) {
			return nil, Conflictf("user already has a pending invitation to this league")
		}
		existing.Status = domain.InvitationStatusExpired
		if err := s.inviteRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	memberInfo, err := membersPerLeagueInfo(ctx, s.memberRepo, s.overrides, leagueID)
	if err != nil {
		return nil, err
	}
	if memberInfo.IsAtLimit {
		return nil, LimitExceeded(memberInfo, leagueMemberLimitMessage(memberInfo))
	}

	expiresOn := time.Now().AddDate(0, 0, defaultLinkExpiryDays)
	inv := &domain.Invitation{
		LeagueID:      leagueID,
		InviteeUserID: &invitee.ID,
		Role:          role,
		Status:        domain.InvitationStatusPending,
		CreatedBy:     requesterID,
		ExpiresOn:     &expiresOn,
	}
	if err := s.inviteRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	if s.emailSvc != nil {
		inviter, err := s.userRepo.GetByID(ctx, requesterID)
		inviterName := ""
		if err == nil {
			inviterName = inviter.Name
		}
		if err := s.emailSvc.SendInvitationNotice(ctx, invitee.Email, invitee.Name, league.Name, inviterName); err != nil {
			s.logger.WarnContext(ctx, "invitation email failed", "invitation_id", inv.ID, "error", err)
		}
	}

	return inv, nil
}

func (s *invitationService) GenerateInviteLink(ctx context.Context, requesterID, leagueID int32, role domain.LeagueRole, expiresInDays, maxUses *int32) (*domain.Invitation, error) {
	fieldErrors := map[string]string{}
	switch role {
	case domain.LeagueRoleMember, domain.LeagueRoleManager, domain.LeagueRoleExecutive:
	default:
		fieldErrors["role"] = "unknown role"
	}
	if expiresInDays != nil && *expiresInDays <= 0 {
		fieldErrors["expires_in_days"] = "must be positive"
	}
	if maxUses != nil && *maxUses <= 0 {
		fieldErrors["max_uses"] = "must be positive"
	}
	if len(fieldErrors) > 0 {
		return nil, Invalid(fieldErrors)
	}

	if _, _, err := s.requireInviter(ctx, requesterID, leagueID, role); err != nil {
		return nil, err
	}

	days := int32(defaultLinkExpiryDays)
	if expiresInDays != nil {
		days = *expiresInDays
	}
	expiresOn := time.Now().AddDate(0, 0, int(days))
	token := uuid.NewString()

	inv := &domain.Invitation{
		LeagueID:  leagueID,
		Token:     &token,
		Role:      role,
		Status:    domain.InvitationStatusPending,
		CreatedBy: requesterID,
		ExpiresOn: &expiresOn,
		MaxUses:   maxUses,
	}
	if err := s.inviteRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// GetInviteLinkDetails is the unauthenticated preview shown before joining.
// Validity is computed at read time; nothing is mutated.
func (s *invitationService) GetInviteLinkDetails(ctx context.Context, token string) (*domain.InviteLinkDetails, error) {
	inv, err := s.inviteRepo.GetByToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NotFoundf("invite link not found")
	}
	if err != nil {
		return nil, err
	}

	league, err := s.leagueRepo.GetByID(ctx, inv.LeagueID)
	if err != nil {
		return nil, err
	}

	details := &domain.InviteLinkDetails{
		LeagueID:   league.ID,
		LeagueName: league.Name,
		Role:       inv.Role,
		ExpiresOn:  inv.ExpiresOn,
		MaxUses:    inv.MaxUses,
		UseCount:   inv.UseCount,
		IsValid:    true,
	}
	switch {
	case league.IsArchived:
		details.IsValid = false
		details.Reason = "league is archived"
	case inv.IsExpired(time.Now()):
		details.IsValid = false
		details.Reason = "link has expired"
	case inv.MaxUses != nil && inv.UseCount >= *inv.MaxUses:
		details.IsValid = false
		details.Reason = "link has reached its maximum uses"
	}
	return details, nil
}

// AcceptInvitation joins the invitee to the league and marks the invitation
// accepted atomically. If the invitee is already a member, the invitation
// still converges to accepted and the call succeeds.
func (s *invitationService) AcceptInvitation(ctx context.Context, userID, invitationID int32) error {
	inv, err := s.inviteRepo.GetByID(ctx, invitationID)
	if errors.Is(err, repository.ErrNotFound) {
		return NotFoundf("invitation not found")
	}
	if err != nil {
		return err
	}
	if inv.InviteeUserID == nil || *inv.InviteeUserID != userID {
		return Permissionf("this invitation is not addressed to you")
	}
	if inv.Status != domain.InvitationStatusPending {
		return Conflictf("invitation is no longer pending")
	}
	if inv.IsExpired(time.Now()) {
		inv.Status = domain.InvitationStatusExpired
		if err := s.inviteRepo.Update(ctx, inv); err != nil {
			return err
		}
		return Conflictf("invitation has expired")
	}

	return s.tx.WithinTx(ctx, func(r *repository.Registry) error {
		_, err := joinLeague(ctx, r, userID, inv.LeagueID, inv.Role)
		if err != nil && !errors.Is(err, ErrAlreadyMember) {
			return err
		}
		inv.Status = domain.InvitationStatusAccepted
		return r.Invitations.Update(ctx, inv)
	})
}

func (s *invitationService) DeclineInvitation(ctx context.Context, userID, invitationID int32) error {
	inv, err := s.inviteRepo.GetByID(ctx, invitationID)
	if errors.Is(err, repository.ErrNotFound) {
		return NotFoundf("invitation not found")
	}
	if err != nil {
		return err
	}
	if inv.InviteeUserID == nil || *inv.InviteeUserID != userID {
		return Permissionf("this invitation is not addressed to you")
	}
	if inv.Status != domain.InvitationStatusPending {
		return Conflictf("invitation is no longer pending")
	}

	inv.Status = domain.InvitationStatusDeclined
	return s.inviteRepo.Update(ctx, inv)
}

// JoinViaInviteLink redeems a link token. The use count is consumed only when
// the join itself succeeds.
func (s *invitationService) JoinViaInviteLink(ctx context.Context, userID int32, token string) (*domain.LeagueMember, error) {
	inv, err := s.inviteRepo.GetByToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NotFoundf("invite link not found")
	}
	if err != nil {
		return nil, err
	}
	if inv.Status != domain.InvitationStatusPending {
		return nil, Conflictf("invite link is no longer active")
	}
	if inv.IsExpired(time.Now()) {
		return nil, Conflictf("invite link has expired")
	}
	if inv.MaxUses != nil && inv.UseCount >= *inv.MaxUses {
		return nil, Conflictf("invite link has reached its maximum uses")
	}

	league, err := s.leagueRepo.GetByID(ctx, inv.LeagueID)
	if err != nil {
		return nil, err
	}
	if league.IsArchived {
		return nil, Conflictf("this league is archived")
	}

	var member *domain.LeagueMember
	err = s.tx.WithinTx(ctx, func(r *repository.Registry) error {
		member, err = joinLeague(ctx, r, userID, inv.LeagueID, inv.Role)
		if err != nil {
			return err
		}
		inv.UseCount++
		return r.Invitations.Update(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// CancelInvitation hard-deletes a pending invitation or link so no trace of
// the offer remains visible to the invitee.
func (s *invitationService) CancelInvitation(ctx context.Context, requesterID, invitationID int32) error {
	inv, err := s.inviteRepo.GetByID(ctx, invitationID)
	if errors.Is(err, repository.ErrNotFound) {
		return NotFoundf("invitation not found")
	}
	if err != nil {
		return err
	}

	requester, err := s.memberRepo.Get(ctx, requesterID, inv.LeagueID)
	if errors.Is(err, repository.ErrNotFound) {
		return Permissionf("you are not a member of this league")
	}
	if err != nil {
		return err
	}
	if !permissions.Can(requester.Role, permissions.ActionInviteMembers) {
		return Permissionf("you do not have permission to manage invitations")
	}
	if inv.Status != domain.InvitationStatusPending {
		return Conflictf("only pending invitations can be cancelled")
	}

	return s.inviteRepo.Delete(ctx, inv.ID)
}

// ListMyInvitations returns pending direct invitations addressed to the user.
// Stale rows are surfaced as expired without being persisted; the next write
// touching them settles the status.
func (s *invitationService) ListMyInvitations(ctx context.Context, userID int32) ([]domain.Invitation, error) {
	invs, err := s.inviteRepo.ListPendingForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	active := invs[:0]
	for _, inv := range invs {
		if inv.IsExpired(now) {
			continue
		}
		active = append(active, inv)
	}
	return active, nil
}

func (s *invitationService) ListLeagueInvitations(ctx context.Context, requesterID, leagueID int32) ([]domain.Invitation, error) {
	requester, err := s.memberRepo.Get(ctx, requesterID, leagueID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, Permissionf("you are not a member of this league")
	}
	if err != nil {
		return nil, err
	}
	if !permissions.Can(requester.Role, permissions.ActionInviteMembers) {
		return nil, Permissionf("you do not have permission to view invitations")
	}
	return s.inviteRepo.ListByLeague(ctx, leagueID)
}
