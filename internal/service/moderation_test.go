package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"leaguehq-backend/internal/domain"
	"leaguehq-backend/internal/logger"
	"leaguehq-backend/internal/repository"
	"leaguehq-backend/internal/service"
)

type moderationFixture struct {
	memberRepo *MockMemberRepo
	reportRepo *MockReportRepo
	actionRepo *MockActionRepo
	userRepo   *MockUserRepo
	leagueRepo *MockLeagueRepo
	emailSvc   *MockEmailService
	svc        service.ModerationService
}

func newModerationFixture() *moderationFixture {
	f := &moderationFixture{
		memberRepo: new(MockMemberRepo),
		reportRepo: new(MockReportRepo),
		actionRepo: new(MockActionRepo),
		userRepo:   new(MockUserRepo),
		leagueRepo: new(MockLeagueRepo),
		emailSvc:   new(MockEmailService),
	}
	tx := &stubTransactor{reg: repository.Registry{
		Members: f.memberRepo,
		Reports: f.reportRepo,
		Actions: f.actionRepo,
		Users:   f.userRepo,
		Leagues: f.leagueRepo,
	}}
	f.svc = service.NewModerationService(
		tx, f.memberRepo, f.reportRepo, f.actionRepo, f.userRepo, f.leagueRepo,
		f.emailSvc, logger.Get(),
	)
	return f
}

func pendingReport() *domain.Report {
	return &domain.Report{
		ID:             50,
		LeagueID:       10,
		ReporterID:     1,
		ReportedUserID: 2,
		Reason:         "unsportsmanlike conduct",
		Status:         domain.ReportStatusPending,
	}
}

func TestCreateReport(t *testing.T) {
	ctx := context.Background()

	t.Run("a member reports another member", func(t *testing.T) {
		f := newModerationFixture()
		f.memberRepo.On("Get", ctx, int32(1), int32(10)).Return(member(1, 10, domain.LeagueRoleMember), nil)
		f.memberRepo.On("Get", ctx, int32(2), int32(10)).Return(member(2, 10, domain.LeagueRoleMember), nil)
		f.reportRepo.On("GetPending", ctx, int32(10), int32(1), int32(2)).Return(nil, repository.ErrNotFound)
		f.reportRepo.On("Create", ctx, mock.AnythingOfType("*domain.Report")).Return(nil)

		report, err := f.svc.CreateReport(ctx, 1, 10, 2, "harassment", "details", "")
		assert.NoError(t, err)
		assert.Equal(t, domain.ReportStatusPending, report.Status)
	})

	t.Run("reporting yourself is a conflict", func(t *testing.T) {
		f := newModerationFixture()
		_, err := f.svc.CreateReport(ctx, 1, 10, 1, "harassment", "", "")
		assert.Equal(t, service.KindConflict, errKind(t, err))
	})

	t.Run("a suspended member cannot report", func(t *testing.T) {
		f := newModerationFixture()
		suspended := member(1, 10, domain.LeagueRoleMember)
		until := time.Now().Add(48 * time.Hour)
		suspended.SuspendedUntil = &until
		f.memberRepo.On("Get", ctx, int32(1), int32(10)).Return(suspended, nil)

		_, err := f.svc.CreateReport(ctx, 1, 10, 2, "harassment", "", "")
		assert.Equal(t, service.KindPermission, errKind(t, err))
	})

	t.Run("a lapsed suspension no longer blocks reporting", func(t *testing.T) {
		f := newModerationFixture()
		lapsed := member(1, 10, domain.LeagueRoleMember)
		until := time.Now().Add(-time.Hour)
		lapsed.SuspendedUntil = &until
		f.memberRepo.On("Get", ctx, int32(1), int32(10)).Return(lapsed, nil)
		f.memberRepo.On("Get", ctx, int32(2), int32(10)).Return(member(2, 10, domain.LeagueRoleMember), nil)
		f.reportRepo.On("GetPending", ctx, int32(10), int32(1), int32(2)).Return(nil, repository.ErrNotFound)
		f.reportRepo.On("Create", ctx, mock.AnythingOfType("*domain.Report")).Return(nil)

		_, err := f.svc.CreateReport(ctx, 1, 10, 2, "harassment", "", "")
		assert.NoError(t, err)
	})

	t.Run("a duplicate pending report is a conflict", func(t *testing.T) {
		f := newModerationFixture()
		f.memberRepo.On("Get", ctx, int32(1), int32(10)).Return(member(1, 10, domain.LeagueRoleMember), nil)
		f.memberRepo.On("Get", ctx, int32(2), int32(10)).Return(member(2, 10, domain.LeagueRoleMember), nil)
		f.reportRepo.On("GetPending", ctx, int32(10), int32(1), int32(2)).Return(pendingReport(), nil)

		_, err := f.svc.CreateReport(ctx, 1, 10, 2, "harassment", "", "")
		assert.Equal(t, service.KindConflict, errKind(t, err))
	})

	t.Run("the reported user must be a member", func(t *testing.T) {
		f := newModerationFixture()
		f.memberRepo.On("Get", ctx, int32(1), int32(10)).Return(member(1, 10, domain.LeagueRoleMember), nil)
		f.memberRepo.On("Get", ctx, int32(9), int32(10)).Return(nil, repository.ErrNotFound)

		_, err := f.svc.CreateReport(ctx, 1, 10, 9, "harassment", "", "")
		assert.Equal(t, service.KindNotFound, errKind(t, err))
	})
}

func TestTakeAction(t *testing.T) {
	ctx := context.Background()

	t.Run("suspending resolves the report and sets the suspension", func(t *testing.T) {
		f := newModerationFixture()
		report := pendingReport()
		target := member(2, 10, domain.LeagueRoleMember)
		f.reportRepo.On("GetByID", ctx, int32(50)).Return(report, nil)
		f.memberRepo.On("Get", ctx, int32(3), int32(10)).Return(member(3, 10, domain.LeagueRoleManager), nil)
		f.memberRepo.On("Get", ctx, int32(2), int32(10)).Return(target, nil)
		f.actionRepo.On("Create", ctx, mock.AnythingOfType("*domain.ModerationAction")).Return(nil)
		f.reportRepo.On("Update", ctx, mock.MatchedBy(func(r *domain.Report) bool {
			return r.ID == 50 && r.Status == domain.ReportStatusResolved
		})).Return(nil)
		f.memberRepo.On("Update", ctx, mock.MatchedBy(func(m *domain.LeagueMember) bool {
			return m.UserID == 2 && m.SuspendedUntil != nil
		})).Return(nil)
		f.userRepo.On("GetByID", ctx, int32(2)).Return(&domain.User{ID: 2, Email: "casey@example.com", Name: "Casey"}, nil)
		f.leagueRepo.On("GetByID", ctx, int32(10)).Return(&domain.League{ID: 10, Name: "Tuesday Pool"}, nil)
		f.emailSvc.On("SendModerationNotice", ctx, "casey@example.com", "Casey", "Tuesday Pool",
			domain.ModerationActionSuspended, mock.Anything, mock.Anything).Return(nil)

		action, err := f.svc.TakeAction(ctx, 3, 50, domain.ModerationActionSuspended, "repeated harassment", 7)
		assert.NoError(t, err)
		assert.NotNil(t, action.SuspendedUntil)
		assert.True(t, target.IsSuspended(time.Now()))
		f.emailSvc.AssertExpectations(t)
	})

	t.Run("a failed action record leaves the report untouched", func(t *testing.T) {
		f := newModerationFixture()
		report := pendingReport()
		f.reportRepo.On("GetByID", ctx, int32(50)).Return(report, nil)
		f.memberRepo.On("Get", ctx, int32(3), int32(10)).Return(member(3, 10, domain.LeagueRoleManager), nil)
		f.memberRepo.On("Get", ctx, int32(2), int32(10)).Return(member(2, 10, domain.LeagueRoleMember), nil)
		f.actionRepo.On("Create", ctx, mock.AnythingOfType("*domain.ModerationAction")).Return(assert.AnError)

		_, err := f.svc.TakeAction(ctx, 3, 50, domain.ModerationActionWarned, "language", 0)
		assert.Error(t, err)
		f.reportRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
		f.emailSvc.AssertNotCalled(t, "SendModerationNotice", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("removal takes the member out of the league", func(t *testing.T) {
		f := newModerationFixture()
		report := pendingReport()
		f.reportRepo.On("GetByID", ctx, int32(50)).Return(report, nil)
		f.memberRepo.On("Get", ctx, int32(3), int32(10)).Return(member(3, 10, domain.LeagueRoleExecutive), nil)
		f.memberRepo.On("Get", ctx, int32(2), int32(10)).Return(member(2, 10, domain.LeagueRoleMember), nil)
		f.actionRepo.On("Create", ctx, mock.AnythingOfType("*domain.ModerationAction")).Return(nil)
		f.reportRepo.On("Update", ctx, mock.AnythingOfType("*domain.Report")).Return(nil)
		f.memberRepo.On("Remove", ctx, int32(2), int32(10)).Return(nil)
		f.userRepo.On("GetByID", ctx, int32(2)).Return(&domain.User{ID: 2, Email: "casey@example.com", Name: "Casey"}, nil)
		f.leagueRepo.On("GetByID", ctx, int32(10)).Return(&domain.League{ID: 10, Name: "Tuesday Pool"}, nil)
		f.emailSvc.On("SendModerationNotice", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		_, err := f.svc.TakeAction(ctx, 3, 50, domain.ModerationActionRemoved, "repeated offenses", 0)
		assert.NoError(t, err)
		f.memberRepo.AssertCalled(t, "Remove", ctx, int32(2), int32(10))
	})

	t.Run("the reporter cannot moderate their own report", func(t *testing.T) {
		f := newModerationFixture()
		f.reportRepo.On("GetByID", ctx, int32(50)).Return(pendingReport(), nil)
		f.memberRepo.On("Get", ctx, int32(1), int32(10)).Return(member(1, 10, domain.LeagueRoleManager), nil)

		_, err := f.svc.TakeAction(ctx, 1, 50, domain.ModerationActionWarned, "language", 0)
		assert.Equal(t, service.KindConflict, errKind(t, err))
	})

	t.Run("a manager cannot discipline a manager", func(t *testing.T) {
		f := newModerationFixture()
		report := pendingReport()
		f.reportRepo.On("GetByID", ctx, int32(50)).Return(report, nil)
		f.memberRepo.On("Get", ctx, int32(3), int32(10)).Return(member(3, 10, domain.LeagueRoleManager), nil)
		f.memberRepo.On("Get", ctx, int32(2), int32(10)).Return(member(2, 10, domain.LeagueRoleManager), nil)

		_, err := f.svc.TakeAction(ctx, 3, 50, domain.ModerationActionWarned, "language", 0)
		assert.Equal(t, service.KindPermission, errKind(t, err))
	})

	t.Run("a departed target can only be dismissed", func(t *testing.T) {
		f := newModerationFixture()
		report := pendingReport()
		f.reportRepo.On("GetByID", ctx, int32(50)).Return(report, nil)
		f.memberRepo.On("Get", ctx, int32(3), int32(10)).Return(member(3, 10, domain.LeagueRoleManager), nil)
		f.memberRepo.On("Get", ctx, int32(2), int32(10)).Return(nil, repository.ErrNotFound)

		_, err := f.svc.TakeAction(ctx, 3, 50, domain.ModerationActionWarned, "language", 0)
		assert.Equal(t, service.KindConflict, errKind(t, err))
	})

	t.Run("dismissing a departed target's report succeeds", func(t *testing.T) {
		f := newModerationFixture()
		report := pendingReport()
		f.reportRepo.On("GetByID", ctx, int32(50)).Return(report, nil)
		f.memberRepo.On("Get", ctx, int32(3), int32(10)).Return(member(3, 10, domain.LeagueRoleManager), nil)
		f.memberRepo.On("Get", ctx, int32(2), int32(10)).Return(nil, repository.ErrNotFound)
		f.actionRepo.On("Create", ctx, mock.AnythingOfType("*domain.ModerationAction")).Return(nil)
		f.reportRepo.On("Update", ctx, mock.AnythingOfType("*domain.Report")).Return(nil)

		_, err := f.svc.TakeAction(ctx, 3, 50, domain.ModerationActionDismissed, "no longer relevant", 0)
		assert.NoError(t, err)
		f.emailSvc.AssertNotCalled(t, "SendModerationNotice", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("a resolved report cannot be acted on again", func(t *testing.T) {
		f := newModerationFixture()
		report := pendingReport()
		report.Status = domain.ReportStatusResolved
		f.reportRepo.On("GetByID", ctx, int32(50)).Return(report, nil)

		_, err := f.svc.TakeAction(ctx, 3, 50, domain.ModerationActionWarned, "language", 0)
		assert.Equal(t, service.KindConflict, errKind(t, err))
	})

	t.Run("suspension days must be positive", func(t *testing.T) {
		f := newModerationFixture()
		_, err := f.svc.TakeAction(ctx, 3, 50, domain.ModerationActionSuspended, "language", 0)
		assert.Equal(t, service.KindValidation, errKind(t, err))
	})
}

func TestLiftSuspension(t *testing.T) {
	ctx := context.Background()

	t.Run("lifting clears the suspension and records an action", func(t *testing.T) {
		f := newModerationFixture()
		target := member(2, 10, domain.LeagueRoleMember)
		until := time.Now().Add(48 * time.Hour)
		target.SuspendedUntil = &until
		f.memberRepo.On("Get", ctx, int32(3), int32(10)).Return(member(3, 10, domain.LeagueRoleManager), nil)
		f.memberRepo.On("Get", ctx, int32(2), int32(10)).Return(target, nil)
		f.actionRepo.On("Create", ctx, mock.MatchedBy(func(a *domain.ModerationAction) bool {
			return a.Action == domain.ModerationActionSuspensionLifted
		})).Return(nil)
		f.memberRepo.On("Update", ctx, mock.MatchedBy(func(m *domain.LeagueMember) bool {
			return m.UserID == 2 && m.SuspendedUntil == nil
		})).Return(nil)

		action, err := f.svc.LiftSuspension(ctx, 3, 10, 2, "appeal accepted")
		assert.NoError(t, err)
		assert.Equal(t, domain.ModerationActionSuspensionLifted, action.Action)
	})

	t.Run("lifting a member who is not suspended is a conflict", func(t *testing.T) {
		f := newModerationFixture()
		f.memberRepo.On("Get", ctx, int32(3), int32(10)).Return(member(3, 10, domain.LeagueRoleManager), nil)
		f.memberRepo.On("Get", ctx, int32(2), int32(10)).Return(member(2, 10, domain.LeagueRoleMember), nil)

		_, err := f.svc.LiftSuspension(ctx, 3, 10, 2, "appeal accepted")
		assert.Equal(t, service.KindConflict, errKind(t, err))
	})
}

func TestAcknowledgeAction(t *testing.T) {
	ctx := context.Background()

	t.Run("the target acknowledges a warning", func(t *testing.T) {
		f := newModerationFixture()
		action := &domain.ModerationAction{ID: 90, LeagueID: 10, TargetUserID: 2, Action: domain.ModerationActionWarned}
		f.actionRepo.On("GetByID", ctx, int32(90)).Return(action, nil)
		f.actionRepo.On("Acknowledge", ctx, int32(90), mock.AnythingOfType("time.Time")).Return(nil)

		assert.NoError(t, f.svc.AcknowledgeAction(ctx, 2, 90))
	})

	t.Run("only the target can acknowledge", func(t *testing.T) {
		f := newModerationFixture()
		action := &domain.ModerationAction{ID: 90, LeagueID: 10, TargetUserID: 2}
		f.actionRepo.On("GetByID", ctx, int32(90)).Return(action, nil)

		err := f.svc.AcknowledgeAction(ctx, 5, 90)
		assert.Equal(t, service.KindPermission, errKind(t, err))
	})

	t.Run("acknowledging twice is a conflict", func(t *testing.T) {
		f := newModerationFixture()
		acked := time.Now().Add(-time.Hour)
		action := &domain.ModerationAction{ID: 90, LeagueID: 10, TargetUserID: 2, AcknowledgedOn: &acked}
		f.actionRepo.On("GetByID", ctx, int32(90)).Return(action, nil)

		err := f.svc.AcknowledgeAction(ctx, 2, 90)
		assert.Equal(t, service.KindConflict, errKind(t, err))
	})
}
