package repository

import (
	"context"
	"errors"
	"time"

	"leaguehq-backend/internal/domain"
)

// ErrNotFound is returned by lookups when the entity does not exist.
// Postgres implementations map sql.ErrNoRows to this.
var ErrNotFound = errors.New("not found")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type LeagueRepository interface {
	Create(ctx context.Context, league *domain.League) error
	GetByID(ctx context.Context, id int32) (*domain.League, error)
	Update(ctx context.Context, league *domain.League) error
	Delete(ctx context.Context, id int32) error
	ListByUser(ctx context.Context, userID int32) ([]domain.League, error)
	ListPublic(ctx context.Context) ([]domain.League, error)
}

type MemberRepository interface {
	Add(ctx context.Context, member *domain.LeagueMember) error
	Get(ctx context.Context, userID, leagueID int32) (*domain.LeagueMember, error)
	Update(ctx context.Context, member *domain.LeagueMember) error
	Remove(ctx context.Context, userID, leagueID int32) error
	ListByLeague(ctx context.Context, leagueID int32) ([]domain.LeagueMember, error)
	CountByLeague(ctx context.Context, leagueID int32) (int32, error)
	CountByLeagueAndRole(ctx context.Context, leagueID int32, role domain.LeagueRole) (int32, error)
	CountLeaguesByUser(ctx context.Context, userID int32) (int32, error)
}

type InvitationRepository interface {
	Create(ctx context.Context, inv *domain.Invitation) error
	GetByID(ctx context.Context, id int32) (*domain.Invitation, error)
	GetByToken(ctx context.Context, token string) (*domain.Invitation, error)
	// GetPendingDirect returns the pending direct invitation for the
	// (league, invitee) pair, or ErrNotFound.
	GetPendingDirect(ctx context.Context, leagueID, inviteeUserID int32) (*domain.Invitation, error)
	ListPendingForUser(ctx context.Context, userID int32) ([]domain.Invitation, error)
	ListByLeague(ctx context.Context, leagueID int32) ([]domain.Invitation, error)
	Update(ctx context.Context, inv *domain.Invitation) error
	Delete(ctx context.Context, id int32) error
	// DeleteResolvedBefore hard-deletes declined/expired invitations and
	// exhausted or expired links older than the cutoff. Used by cleanup jobs.
	DeleteResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type PlaceholderMemberRepository interface {
	Create(ctx context.Context, pm *domain.PlaceholderMember) error
	GetByID(ctx context.Context, id int32) (*domain.PlaceholderMember, error)
	Update(ctx context.Context, pm *domain.PlaceholderMember) error
	ListByLeague(ctx context.Context, leagueID int32, includeRetired bool) ([]domain.PlaceholderMember, error)
}

type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	GetByID(ctx context.Context, id int32) (*domain.Team, error)
	Update(ctx context.Context, team *domain.Team) error
	Delete(ctx context.Context, id int32) error
	ListByLeague(ctx context.Context, leagueID int32) ([]domain.Team, error)

	AddMember(ctx context.Context, tm *domain.TeamMember) error
	GetMember(ctx context.Context, id int32) (*domain.TeamMember, error)
	// GetMemberByUser / GetMemberByPlaceholder return the active (not left)
	// membership, or ErrNotFound.
	GetMemberByUser(ctx context.Context, teamID, userID int32) (*domain.TeamMember, error)
	GetMemberByPlaceholder(ctx context.Context, teamID, placeholderID int32) (*domain.TeamMember, error)
	UpdateMember(ctx context.Context, tm *domain.TeamMember) error
	ListMembers(ctx context.Context, teamID int32) ([]domain.TeamMember, error)
}

type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id int32) (*domain.Report, error)
	// GetPending returns the pending report for the (reporter, reported,
	// league) triple, or ErrNotFound.
	GetPending(ctx context.Context, leagueID, reporterID, reportedUserID int32) (*domain.Report, error)
	Update(ctx context.Context, report *domain.Report) error
	ListByLeague(ctx context.Context, leagueID int32, status domain.ReportStatus) ([]domain.Report, error)
}

type ModerationActionRepository interface {
	Create(ctx context.Context, action *domain.ModerationAction) error
	GetByID(ctx context.Context, id int32) (*domain.ModerationAction, error)
	ListByLeague(ctx context.Context, leagueID int32) ([]domain.ModerationAction, error)
	ListForUser(ctx context.Context, leagueID, userID int32) ([]domain.ModerationAction, error)
	// Acknowledge stamps acknowledged_on; actions are otherwise immutable.
	Acknowledge(ctx context.Context, id int32, at time.Time) error
}

type GameTypeRepository interface {
	Create(ctx context.Context, gt *domain.GameType) error
	GetByID(ctx context.Context, id int32) (*domain.GameType, error)
	// GetByName matches the name case-insensitively within the league,
	// or returns ErrNotFound.
	GetByName(ctx context.Context, leagueID int32, name string) (*domain.GameType, error)
	Update(ctx context.Context, gt *domain.GameType) error
	Delete(ctx context.Context, id int32) error
	ListByLeague(ctx context.Context, leagueID int32, includeArchived bool) ([]domain.GameType, error)
	CountByLeague(ctx context.Context, leagueID int32) (int32, error)
}

type LimitOverrideRepository interface {
	// GetForUser / GetForLeague return ErrNotFound when no override exists.
	GetForUser(ctx context.Context, userID int32, limitType domain.LimitType) (*domain.LimitOverride, error)
	GetForLeague(ctx context.Context, leagueID int32, limitType domain.LimitType) (*domain.LimitOverride, error)
	Upsert(ctx context.Context, o *domain.LimitOverride) error
	Delete(ctx context.Context, id int32) error
}

// Registry bundles every repository over one database handle. Inside a
// transaction, all repositories in the registry share the same *sql.Tx.
type Registry struct {
	Users        UserRepository
	Leagues      LeagueRepository
	Members      MemberRepository
	Invitations  InvitationRepository
	Placeholders PlaceholderMemberRepository
	Teams        TeamRepository
	Reports      ReportRepository
	Actions      ModerationActionRepository
	GameTypes    GameTypeRepository
	Overrides    LimitOverrideRepository
}

// Transactor runs fn inside a single all-or-nothing unit of work: if fn
// returns an error the transaction rolls back and no writes survive.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(r *Registry) error) error
}
