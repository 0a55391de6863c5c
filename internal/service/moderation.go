package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"leaguehq-backend/internal/domain"
	"leaguehq-backend/internal/permissions"
	"leaguehq-backend/internal/repository"
)

type moderationService struct {
	tx         repository.Transactor
	memberRepo repository.MemberRepository
	reportRepo repository.ReportRepository
	actionRepo repository.ModerationActionRepository
	userRepo   repository.UserRepository
	leagueRepo repository.LeagueRepository
	emailSvc   EmailService
	logger     *slog.Logger
}

func NewModerationService(
	tx repository.Transactor,
	memberRepo repository.MemberRepository,
	reportRepo repository.ReportRepository,
	actionRepo repository.ModerationActionRepository,
	userRepo repository.UserRepository,
	leagueRepo repository.LeagueRepository,
	emailSvc EmailService,
	logger *slog.Logger,
) ModerationService {
	return &moderationService{
		tx:         tx,
		memberRepo: memberRepo,
		reportRepo: reportRepo,
		actionRepo: actionRepo,
		userRepo:   userRepo,
		leagueRepo: leagueRepo,
		emailSvc:   emailSvc,
		logger:     logger,
	}
}

func (s *moderationService) CreateReport(ctx context.Context, reporterID, leagueID, reportedUserID int32, reason, description, evidence string) (*domain.Report, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, Invalid(map[string]string{"reason": "reason is required"})
	}
	if reporterID == reportedUserID {
		return nil, Conflictf("you cannot report yourself")
	}

	reporter, err := s.memberRepo.Get(ctx, reporterID, leagueID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, Permissionf("you are not a member of this league")
	}
	if err != nil {
		return nil, err
	}
	if !permissions.Can(reporter.Role, permissions.ActionReportMember) {
		return nil, Permissionf("you do not have permission to file reports")
	}
	if reporter.IsSuspended(time.Now()) {
		return nil, Permissionf("suspended members cannot file reports")
	}

	if _, err := s.memberRepo.Get(ctx, reportedUserID, leagueID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFoundf("reported user is not a member of this league")
		}
		return nil, err
	}

	if _, err := s.reportRepo.GetPending(ctx, leagueID, reporterID, reportedUserID); err == nil {
		return nil, Conflictf("you already have a pending report against this member")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	report := &domain.Report{
		LeagueID:       leagueID,
		ReporterID:     reporterID,
		ReportedUserID: reportedUserID,
		Reason:         strings.TrimSpace(reason),
		Description:    description,
		Evidence:       evidence,
		Status:         domain.ReportStatusPending,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *moderationService) ListReports(ctx context.Context, requesterID, leagueID int32, status domain.ReportStatus) ([]domain.Report, error) {
	requester, err := s.memberRepo.Get(ctx, requesterID, leagueID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, Permissionf("you are not a member of this league")
	}
	if err != nil {
		return nil, err
	}
	if !permissions.Can(requester.Role, permissions.ActionModerateMembers) {
		return nil, Permissionf("you do not have permission to view reports")
	}
	return s.reportRepo.ListByLeague(ctx, leagueID, status)
}

// TakeAction resolves a pending report and applies the consequence. The audit
// record, the report transition and the membership side effect commit
// together or not at all.
func (s *moderationService) TakeAction(ctx context.Context, moderatorID, reportID int32, kind domain.ModerationActionKind, reason string, suspensionDays int32) (*domain.ModerationAction, error) {
	fieldErrors := map[string]string{}
	switch kind {
	case domain.ModerationActionDismissed, domain.ModerationActionWarned,
		domain.ModerationActionSuspended, domain.ModerationActionRemoved:
	default:
		fieldErrors["action"] = "unknown moderation action"
	}
	if strings.TrimSpace(reason) == "" {
		fieldErrors["reason"] = "reason is required"
	}
	if kind == domain.ModerationActionSuspended && suspensionDays <= 0 {
		fieldErrors["suspension_days"] = "must be positive"
	}
	if len(fieldErrors) > 0 {
		return nil, Invalid(fieldErrors)
	}

	report, err := s.reportRepo.GetByID(ctx, reportID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NotFoundf("report not found")
	}
	if err != nil {
		return nil, err
	}
	if report.Status != domain.ReportStatusPending {
		return nil, Conflictf("report has already been resolved")
	}

	moderator, err := s.memberRepo.Get(ctx, moderatorID, report.LeagueID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, Permissionf("you are not a member of this league")
	}
	if err != nil {
		return nil, err
	}
	if !permissions.Can(moderator.Role, permissions.ActionModerateMembers) {
		return nil, Permissionf("you do not have permission to moderate members")
	}
	if moderatorID == report.ReporterID {
		return nil, Conflictf("you cannot act on a report you filed")
	}

	target, err := s.memberRepo.Get(ctx, report.ReportedUserID, report.LeagueID)
	targetIsMember := err == nil
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if kind != domain.ModerationActionDismissed {
		if !targetIsMember {
			return nil, Conflictf("reported user is no longer a member; the report can only be dismissed")
		}
		if !permissions.CanActOn(moderator.Role, target.Role) {
			return nil, Permissionf("you cannot discipline a member of equal or higher role")
		}
	}

	action := &domain.ModerationAction{
		ReportID:     &report.ID,
		LeagueID:     report.LeagueID,
		ModeratorID:  moderatorID,
		TargetUserID: report.ReportedUserID,
		Action:       kind,
		Reason:       strings.TrimSpace(reason),
	}
	if kind == domain.ModerationActionSuspended {
		until := time.Now().AddDate(0, 0, int(suspensionDays))
		action.SuspendedUntil = &until
	}

	err = s.tx.WithinTx(ctx, func(r *repository.Registry) error {
		if err := r.Actions.Create(ctx, action); err != nil {
			return err
		}
		report.Status = domain.ReportStatusResolved
		if err := r.Reports.Update(ctx, report); err != nil {
			return err
		}
		switch kind {
		case domain.ModerationActionSuspended:
			target.SuspendedUntil = action.SuspendedUntil
			return r.Members.Update(ctx, target)
		case domain.ModerationActionRemoved:
			return r.Members.Remove(ctx, report.ReportedUserID, report.LeagueID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if kind != domain.ModerationActionDismissed {
		s.notifyTarget(ctx, action)
	}
	return action, nil
}

func (s *moderationService) LiftSuspension(ctx context.Context, moderatorID, leagueID, targetUserID int32, reason string) (*domain.ModerationAction, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, Invalid(map[string]string{"reason": "reason is required"})
	}

	moderator, err := s.memberRepo.Get(ctx, moderatorID, leagueID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, Permissionf("you are not a member of this league")
	}
	if err != nil {
		return nil, err
	}
	if !permissions.Can(moderator.Role, permissions.ActionModerateMembers) {
		return nil, Permissionf("you do not have permission to moderate members")
	}

	target, err := s.memberRepo.Get(ctx, targetUserID, leagueID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NotFoundf("user is not a member of this league")
	}
	if err != nil {
		return nil, err
	}
	if !target.IsSuspended(time.Now()) {
		return nil, Conflictf("member is not currently suspended")
	}
	if !permissions.CanActOn(moderator.Role, target.Role) {
		return nil, Permissionf("you cannot act on a member of equal or higher role")
	}

	action := &domain.ModerationAction{
		LeagueID:     leagueID,
		ModeratorID:  moderatorID,
		TargetUserID: targetUserID,
		Action:       domain.ModerationActionSuspensionLifted,
		Reason:       strings.TrimSpace(reason),
	}
	err = s.tx.WithinTx(ctx, func(r *repository.Registry) error {
		if err := r.Actions.Create(ctx, action); err != nil {
			return err
		}
		target.SuspendedUntil = nil
		return r.Members.Update(ctx, target)
	})
	if err != nil {
		return nil, err
	}
	return action, nil
}

// ListActionsForUser returns the disciplinary history; members can see their
// own, moderators can see anyone's.
func (s *moderationService) ListActionsForUser(ctx context.Context, requesterID, leagueID, userID int32) ([]domain.ModerationAction, error) {
	requester, err := s.memberRepo.Get(ctx, requesterID, leagueID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, Permissionf("you are not a member of this league")
	}
	if err != nil {
		return nil, err
	}
	if requesterID != userID && !permissions.Can(requester.Role, permissions.ActionModerateMembers) {
		return nil, Permissionf("you can only view your own moderation history")
	}
	return s.actionRepo.ListForUser(ctx, leagueID, userID)
}

func (s *moderationService) AcknowledgeAction(ctx context.Context, userID, actionID int32) error {
	action, err := s.actionRepo.GetByID(ctx, actionID)
	if errors.Is(err, repository.ErrNotFound) {
		return NotFoundf("moderation action not found")
	}
	if err != nil {
		return err
	}
	if action.TargetUserID != userID {
		return Permissionf("you can only acknowledge actions taken against you")
	}
	if action.AcknowledgedOn != nil {
		return Conflictf("action has already been acknowledged")
	}
	return s.actionRepo.Acknowledge(ctx, actionID, time.Now())
}

func (s *moderationService) notifyTarget(ctx context.Context, action *domain.ModerationAction) {
	if s.emailSvc == nil {
		return
	}
	target, err := s.userRepo.GetByID(ctx, action.TargetUserID)
	if err != nil {
		return
	}
	league, err := s.leagueRepo.GetByID(ctx, action.LeagueID)
	if err != nil {
		return
	}
	if err := s.emailSvc.SendModerationNotice(ctx, target.Email, target.Name, league.Name, action.Action, action.Reason, action.SuspendedUntil); err != nil {
		s.logger.WarnContext(ctx, "moderation email failed", "action_id", action.ID, "error", err)
	}
}
