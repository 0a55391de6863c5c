package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"leaguehq-backend/internal/domain"
	"leaguehq-backend/internal/repository"
)

// stubTransactor runs the unit of work against a registry of mocks with no
// real transaction semantics; rollback behavior is asserted by checking which
// mocks were (not) called after a failure.
type stubTransactor struct {
	reg repository.Registry
}

func (s *stubTransactor) WithinTx(ctx context.Context, fn func(r *repository.Registry) error) error {
	return fn(&s.reg)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockLeagueRepo
type MockLeagueRepo struct {
	mock.Mock
}

func (m *MockLeagueRepo) Create(ctx context.Context, league *domain.League) error {
	args := m.Called(ctx, league)
	return args.Error(0)
}
func (m *MockLeagueRepo) GetByID(ctx context.Context, id int32) (*domain.League, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.League), args.Error(1)
}
func (m *MockLeagueRepo) Update(ctx context.Context, league *domain.League) error {
	args := m.Called(ctx, league)
	return args.Error(0)
}
func (m *MockLeagueRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockLeagueRepo) ListByUser(ctx context.Context, userID int32) ([]domain.League, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.League), args.Error(1)
}
func (m *MockLeagueRepo) ListPublic(ctx context.Context) ([]domain.League, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.League), args.Error(1)
}

// MockMemberRepo
type MockMemberRepo struct {
	mock.Mock
}

func (m *MockMemberRepo) Add(ctx context.Context, member *domain.LeagueMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockMemberRepo) Get(ctx context.Context, userID, leagueID int32) (*domain.LeagueMember, error) {
	args := m.Called(ctx, userID, leagueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeagueMember), args.Error(1)
}
func (m *MockMemberRepo) Update(ctx context.Context, member *domain.LeagueMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockMemberRepo) Remove(ctx context.Context, userID, leagueID int32) error {
	args := m.Called(ctx, userID, leagueID)
	return args.Error(0)
}
func (m *MockMemberRepo) ListByLeague(ctx context.Context, leagueID int32) ([]domain.LeagueMember, error) {
	args := m.Called(ctx, leagueID)
	return args.Get(0).([]domain.LeagueMember), args.Error(1)
}
func (m *MockMemberRepo) CountByLeague(ctx context.Context, leagueID int32) (int32, error) {
	args := m.Called(ctx, leagueID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockMemberRepo) CountByLeagueAndRole(ctx context.Context, leagueID int32, role domain.LeagueRole) (int32, error) {
	args := m.Called(ctx, leagueID, role)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockMemberRepo) CountLeaguesByUser(ctx context.Context, userID int32) (int32, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int32), args.Error(1)
}

// MockInvitationRepo
type MockInvitationRepo struct {
	mock.Mock
}

func (m *MockInvitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}
func (m *MockInvitationRepo) GetByID(ctx context.Context, id int32) (*domain.Invitation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}
func (m *MockInvitationRepo) GetByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}
func (m *MockInvitationRepo) GetPendingDirect(ctx context.Context, leagueID, inviteeUserID int32) (*domain.Invitation, error) {
	args := m.Called(ctx, leagueID, inviteeUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}
func (m *MockInvitationRepo) ListPendingForUser(ctx context.Context, userID int32) ([]domain.Invitation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Invitation), args.Error(1)
}
func (m *MockInvitationRepo) ListByLeague(ctx context.Context, leagueID int32) ([]domain.Invitation, error) {
	args := m.Called(ctx, leagueID)
	return args.Get(0).([]domain.Invitation), args.Error(1)
}
func (m *MockInvitationRepo) Update(ctx context.Context, inv *domain.Invitation) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}
func (m *MockInvitationRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockInvitationRepo) DeleteResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockPlaceholderRepo
type MockPlaceholderRepo struct {
	mock.Mock
}

func (m *MockPlaceholderRepo) Create(ctx context.Context, pm *domain.PlaceholderMember) error {
	args := m.Called(ctx, pm)
	return args.Error(0)
}
func (m *MockPlaceholderRepo) GetByID(ctx context.Context, id int32) (*domain.PlaceholderMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlaceholderMember), args.Error(1)
}
func (m *MockPlaceholderRepo) Update(ctx context.Context, pm *domain.PlaceholderMember) error {
	args := m.Called(ctx, pm)
	return args.Error(0)
}
func (m *MockPlaceholderRepo) ListByLeague(ctx context.Context, leagueID int32, includeRetired bool) ([]domain.PlaceholderMember, error) {
	args := m.Called(ctx, leagueID, includeRetired)
	return args.Get(0).([]domain.PlaceholderMember), args.Error(1)
}

// MockTeamRepo
type MockTeamRepo struct {
	mock.Mock
}

func (m *MockTeamRepo) Create(ctx context.Context, team *domain.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}
func (m *MockTeamRepo) GetByID(ctx context.Context, id int32) (*domain.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}
func (m *MockTeamRepo) Update(ctx context.Context, team *domain.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}
func (m *MockTeamRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockTeamRepo) ListByLeague(ctx context.Context, leagueID int32) ([]domain.Team, error) {
	args := m.Called(ctx, leagueID)
	return args.Get(0).([]domain.Team), args.Error(1)
}
func (m *MockTeamRepo) AddMember(ctx context.Context, tm *domain.TeamMember) error {
	args := m.Called(ctx, tm)
	return args.Error(0)
}
func (m *MockTeamRepo) GetMember(ctx context.Context, id int32) (*domain.TeamMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamMember), args.Error(1)
}
func (m *MockTeamRepo) GetMemberByUser(ctx context.Context, teamID, userID int32) (*domain.TeamMember, error) {
	args := m.Called(ctx, teamID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamMember), args.Error(1)
}
func (m *MockTeamRepo) GetMemberByPlaceholder(ctx context.Context, teamID, placeholderID int32) (*domain.TeamMember, error) {
	args := m.Called(ctx, teamID, placeholderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamMember), args.Error(1)
}
func (m *MockTeamRepo) UpdateMember(ctx context.Context, tm *domain.TeamMember) error {
	args := m.Called(ctx, tm)
	return args.Error(0)
}
func (m *MockTeamRepo) ListMembers(ctx context.Context, teamID int32) ([]domain.TeamMember, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).([]domain.TeamMember), args.Error(1)
}

// MockReportRepo
type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) Create(ctx context.Context, report *domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}
func (m *MockReportRepo) GetByID(ctx context.Context, id int32) (*domain.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}
func (m *MockReportRepo) GetPending(ctx context.Context, leagueID, reporterID, reportedUserID int32) (*domain.Report, error) {
	args := m.Called(ctx, leagueID, reporterID, reportedUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}
func (m *MockReportRepo) Update(ctx context.Context, report *domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}
func (m *MockReportRepo) ListByLeague(ctx context.Context, leagueID int32, status domain.ReportStatus) ([]domain.Report, error) {
	args := m.Called(ctx, leagueID, status)
	return args.Get(0).([]domain.Report), args.Error(1)
}

// MockActionRepo
type MockActionRepo struct {
	mock.Mock
}

func (m *MockActionRepo) Create(ctx context.Context, action *domain.ModerationAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}
func (m *MockActionRepo) GetByID(ctx context.Context, id int32) (*domain.ModerationAction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModerationAction), args.Error(1)
}
func (m *MockActionRepo) ListByLeague(ctx context.Context, leagueID int32) ([]domain.ModerationAction, error) {
	args := m.Called(ctx, leagueID)
	return args.Get(0).([]domain.ModerationAction), args.Error(1)
}
func (m *MockActionRepo) ListForUser(ctx context.Context, leagueID, userID int32) ([]domain.ModerationAction, error) {
	args := m.Called(ctx, leagueID, userID)
	return args.Get(0).([]domain.ModerationAction), args.Error(1)
}
func (m *MockActionRepo) Acknowledge(ctx context.Context, id int32, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockGameTypeRepo
type MockGameTypeRepo struct {
	mock.Mock
}

func (m *MockGameTypeRepo) Create(ctx context.Context, gt *domain.GameType) error {
	args := m.Called(ctx, gt)
	return args.Error(0)
}
func (m *MockGameTypeRepo) GetByID(ctx context.Context, id int32) (*domain.GameType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GameType), args.Error(1)
}
func (m *MockGameTypeRepo) GetByName(ctx context.Context, leagueID int32, name string) (*domain.GameType, error) {
	args := m.Called(ctx, leagueID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GameType), args.Error(1)
}
func (m *MockGameTypeRepo) Update(ctx context.Context, gt *domain.GameType) error {
	args := m.Called(ctx, gt)
	return args.Error(0)
}
func (m *MockGameTypeRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockGameTypeRepo) ListByLeague(ctx context.Context, leagueID int32, includeArchived bool) ([]domain.GameType, error) {
	args := m.Called(ctx, leagueID, includeArchived)
	return args.Get(0).([]domain.GameType), args.Error(1)
}
func (m *MockGameTypeRepo) CountByLeague(ctx context.Context, leagueID int32) (int32, error) {
	args := m.Called(ctx, leagueID)
	return args.Get(0).(int32), args.Error(1)
}

// MockOverrideRepo
type MockOverrideRepo struct {
	mock.Mock
}

func (m *MockOverrideRepo) GetForUser(ctx context.Context, userID int32, limitType domain.LimitType) (*domain.LimitOverride, error) {
	args := m.Called(ctx, userID, limitType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LimitOverride), args.Error(1)
}
func (m *MockOverrideRepo) GetForLeague(ctx context.Context, leagueID int32, limitType domain.LimitType) (*domain.LimitOverride, error) {
	args := m.Called(ctx, leagueID, limitType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LimitOverride), args.Error(1)
}
func (m *MockOverrideRepo) Upsert(ctx context.Context, o *domain.LimitOverride) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOverrideRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendInvitationNotice(ctx context.Context, toEmail, toName, leagueName, inviterName string) error {
	args := m.Called(ctx, toEmail, toName, leagueName, inviterName)
	return args.Error(0)
}
func (m *MockEmailService) SendModerationNotice(ctx context.Context, toEmail, toName, leagueName string, action domain.ModerationActionKind, reason string, until *time.Time) error {
	args := m.Called(ctx, toEmail, toName, leagueName, action, reason, until)
	return args.Error(0)
}
