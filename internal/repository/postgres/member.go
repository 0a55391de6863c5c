package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"leaguehq-backend/internal/domain"
	"leaguehq-backend/internal/repository"
)

type memberRepository struct {
	db DBTX
}

func NewMemberRepository(db DBTX) repository.MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Add(ctx context.Context, m *domain.LeagueMember) error {
	query := `INSERT INTO league_members (user_id, league_id, role, joined_on, suspended_until)
	          VALUES ($1, $2, $3, $4, $5)`
	if m.JoinedOn.IsZero() {
		m.JoinedOn = time.Now()
	}
	_, err := r.db.ExecContext(ctx, query, m.UserID, m.LeagueID, m.Role, m.JoinedOn, m.SuspendedUntil)
	return err
}

func (r *memberRepository) Get(ctx context.Context, userID, leagueID int32) (*domain.LeagueMember, error) {
	m := &domain.LeagueMember{}
	var suspendedUntil sql.NullTime
	query := `SELECT user_id, league_id, role, joined_on, suspended_until FROM league_members WHERE user_id = $1 AND league_id = $2`
	err := r.db.QueryRowContext(ctx, query, userID, leagueID).Scan(&m.UserID, &m.LeagueID, &m.Role, &m.JoinedOn, &suspendedUntil)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if suspendedUntil.Valid {
		m.SuspendedUntil = &suspendedUntil.Time
	}
	return m, nil
}

func (r *memberRepository) Update(ctx context.Context, m *domain.LeagueMember) error {
	query := `UPDATE league_members SET role=$1, suspended_until=$2 WHERE user_id=$3 AND league_id=$4`
	_, err := r.db.ExecContext(ctx, query, m.Role, m.SuspendedUntil, m.UserID, m.LeagueID)
	return err
}

func (r *memberRepository) Remove(ctx context.Context, userID, leagueID int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM league_members WHERE user_id = $1 AND league_id = $2`, userID, leagueID)
	return err
}

func (r *memberRepository) ListByLeague(ctx context.Context, leagueID int32) ([]domain.LeagueMember, error) {
	query := `SELECT user_id, league_id, role, joined_on, suspended_until FROM league_members WHERE league_id = $1 ORDER BY joined_on`
	rows, err := r.db.QueryContext(ctx, query, leagueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.LeagueMember
	for rows.Next() {
		var m domain.LeagueMember
		var suspendedUntil sql.NullTime
		if err := rows.Scan(&m.UserID, &m.LeagueID, &m.Role, &m.JoinedOn, &suspendedUntil); err != nil {
			return nil, err
		}
		if suspendedUntil.Valid {
			m.SuspendedUntil = &suspendedUntil.Time
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *memberRepository) CountByLeague(ctx context.Context, leagueID int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM league_members WHERE league_id = $1`, leagueID).Scan(&count)
	return count, err
}

func (r *memberRepository) CountByLeagueAndRole(ctx context.Context, leagueID int32, role domain.LeagueRole) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM league_members WHERE league_id = $1 AND role = $2`, leagueID, role).Scan(&count)
	return count, err
}

func (r *memberRepository) CountLeaguesByUser(ctx context.Context, userID int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM league_members WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}
