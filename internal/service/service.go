package service

import (
	"context"
	"time"

	"leaguehq-backend/internal/domain"
)

// AuthService handles signup, login and token refresh.
type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*domain.User, string, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, string, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int32, name, avatarURL string) (*domain.User, error)
}

type LeagueService interface {
	CreateLeague(ctx context.Context, userID int32, name, description string, visibility domain.LeagueVisibility) (*domain.League, error)
	GetLeague(ctx context.Context, userID, leagueID int32) (*domain.League, *domain.LeagueMember, error)
	ListMyLeagues(ctx context.Context, userID int32) ([]domain.League, error)
	ListPublicLeagues(ctx context.Context) ([]domain.League, error)
	UpdateLeague(ctx context.Context, userID, leagueID int32, name, description string, visibility domain.LeagueVisibility) (*domain.League, error)
	ArchiveLeague(ctx context.Context, userID, leagueID int32) error
	UnarchiveLeague(ctx context.Context, userID, leagueID int32) error
	DeleteLeague(ctx context.Context, userID, leagueID int32) error
}

type MembershipService interface {
	// JoinLeague is the public self-join path; it only works for public,
	// unarchived leagues and always grants the base member role.
	JoinLeague(ctx context.Context, userID, leagueID int32) (*domain.LeagueMember, error)
	LeaveLeague(ctx context.Context, userID, leagueID int32) error
	RemoveMember(ctx context.Context, requesterID, leagueID, targetUserID int32) error
	UpdateMemberRole(ctx context.Context, requesterID, leagueID, targetUserID int32, newRole domain.LeagueRole) (*domain.LeagueMember, error)
	ListMembers(ctx context.Context, requesterID, leagueID int32) ([]domain.LeagueMember, error)
}

type InvitationService interface {
	InviteUser(ctx context.Context, requesterID, leagueID int32, inviteeEmail string, role domain.LeagueRole) (*domain.Invitation, error)
	GenerateInviteLink(ctx context.Context, requesterID, leagueID int32, role domain.LeagueRole, expiresInDays, maxUses *int32) (*domain.Invitation, error)
	GetInviteLinkDetails(ctx context.Context, token string) (*domain.InviteLinkDetails, error)
	AcceptInvitation(ctx context.Context, userID, invitationID int32) error
	DeclineInvitation(ctx context.Context, userID, invitationID int32) error
	JoinViaInviteLink(ctx context.Context, userID int32, token string) (*domain.LeagueMember, error)
	CancelInvitation(ctx context.Context, requesterID, invitationID int32) error
	ListMyInvitations(ctx context.Context, userID int32) ([]domain.Invitation, error)
	ListLeagueInvitations(ctx context.Context, requesterID, leagueID int32) ([]domain.Invitation, error)
}

type PlaceholderService interface {
	CreatePlaceholder(ctx context.Context, requesterID, leagueID int32, displayName string) (*domain.PlaceholderMember, error)
	RenamePlaceholder(ctx context.Context, requesterID, placeholderID int32, displayName string) (*domain.PlaceholderMember, error)
	RetirePlaceholder(ctx context.Context, requesterID, placeholderID int32) error
	RestorePlaceholder(ctx context.Context, requesterID, placeholderID int32) error
	LinkPlaceholder(ctx context.Context, requesterID, placeholderID, userID int32) (*domain.PlaceholderMember, error)
	UnlinkPlaceholder(ctx context.Context, requesterID, placeholderID int32) (*domain.PlaceholderMember, error)
	ListPlaceholders(ctx context.Context, requesterID, leagueID int32, includeRetired bool) ([]domain.PlaceholderMember, error)
}

type TeamService interface {
	CreateTeam(ctx context.Context, requesterID, leagueID int32, name, description string) (*domain.Team, error)
	GetTeam(ctx context.Context, requesterID, teamID int32) (*domain.Team, []domain.TeamMember, error)
	ListTeams(ctx context.Context, requesterID, leagueID int32) ([]domain.Team, error)
	UpdateTeam(ctx context.Context, requesterID, teamID int32, name, description string) (*domain.Team, error)
	ArchiveTeam(ctx context.Context, requesterID, teamID int32) error
	UnarchiveTeam(ctx context.Context, requesterID, teamID int32) error
	DeleteTeam(ctx context.Context, requesterID, teamID int32) error

	// AddTeamMember adds either a real user or a placeholder; exactly one of
	// userID/placeholderID must be set.
	AddTeamMember(ctx context.Context, requesterID, teamID int32, userID, placeholderID *int32, role domain.TeamRole) (*domain.TeamMember, error)
	RemoveTeamMember(ctx context.Context, requesterID, teamMemberID int32) error
	LeaveTeam(ctx context.Context, userID, teamID int32) error
}

type ModerationService interface {
	CreateReport(ctx context.Context, reporterID, leagueID, reportedUserID int32, reason, description, evidence string) (*domain.Report, error)
	ListReports(ctx context.Context, requesterID, leagueID int32, status domain.ReportStatus) ([]domain.Report, error)
	// TakeAction resolves a pending report and applies the chosen consequence
	// in one atomic unit. suspensionDays is only read for SUSPENDED.
	TakeAction(ctx context.Context, moderatorID, reportID int32, action domain.ModerationActionKind, reason string, suspensionDays int32) (*domain.ModerationAction, error)
	LiftSuspension(ctx context.Context, moderatorID, leagueID, targetUserID int32, reason string) (*domain.ModerationAction, error)
	ListActionsForUser(ctx context.Context, requesterID, leagueID, userID int32) ([]domain.ModerationAction, error)
	AcknowledgeAction(ctx context.Context, userID, actionID int32) error
}

type GameTypeService interface {
	CreateGameType(ctx context.Context, requesterID, leagueID int32, name string, category domain.GameCategory, config domain.GameTypeConfig) (*domain.GameType, error)
	GetGameType(ctx context.Context, requesterID, gameTypeID int32) (*domain.GameType, error)
	ListGameTypes(ctx context.Context, requesterID, leagueID int32, includeArchived bool) ([]domain.GameType, error)
	// UpdateGameType rejects any category change; category is immutable.
	UpdateGameType(ctx context.Context, requesterID, gameTypeID int32, name string, category domain.GameCategory, config domain.GameTypeConfig) (*domain.GameType, error)
	ArchiveGameType(ctx context.Context, requesterID, gameTypeID int32) error
	UnarchiveGameType(ctx context.Context, requesterID, gameTypeID int32) error
	DeleteGameType(ctx context.Context, requesterID, gameTypeID int32) error
}

type LimitService interface {
	UserLeagueLimit(ctx context.Context, userID int32) (domain.LimitInfo, error)
	LeagueMemberLimit(ctx context.Context, leagueID int32) (domain.LimitInfo, error)
	LeagueGameTypeLimit(ctx context.Context, leagueID int32) (domain.LimitInfo, error)
	CanUserJoinAnotherLeague(ctx context.Context, userID int32) (domain.LimitCheck, error)
	CanLeagueAddMember(ctx context.Context, leagueID int32) (domain.LimitCheck, error)
	CanLeagueAddGameType(ctx context.Context, leagueID int32) (domain.LimitCheck, error)
	// SetLeagueOverride requires the requester to be an executive of the
	// league. A nil value removes the ceiling entirely.
	SetLeagueOverride(ctx context.Context, requesterID, leagueID int32, limitType domain.LimitType, value *int32) (*domain.LimitOverride, error)
	// SetUserOverride is operator tooling and carries no in-league
	// permission check; it is not exposed on the public API surface.
	SetUserOverride(ctx context.Context, userID int32, limitType domain.LimitType, value *int32) (*domain.LimitOverride, error)
}

// EmailService sends notification emails. Callers treat sends as best-effort
// and never fail an operation on email errors.
type EmailService interface {
	SendInvitationNotice(ctx context.Context, toEmail, toName, leagueName, inviterName string) error
	SendModerationNotice(ctx context.Context, toEmail, toName, leagueName string, action domain.ModerationActionKind, reason string, until *time.Time) error
}
