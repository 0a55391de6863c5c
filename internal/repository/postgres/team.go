package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"leaguehq-backend/internal/domain"
	"leaguehq-backend/internal/repository"
)

type teamRepository struct {
	db DBTX
}

func NewTeamRepository(db DBTX) repository.TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, t *domain.Team) error {
	query := `INSERT INTO teams (league_id, name, description, is_archived, created_by, created_on)
	          VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, t.LeagueID, t.Name, t.Description, t.IsArchived, t.CreatedBy).Scan(&t.ID, &t.CreatedOn)
}

func (r *teamRepository) GetByID(ctx context.Context, id int32) (*domain.Team, error) {
	t := &domain.Team{}
	query := `SELECT id, league_id, name, COALESCE(description, ''), is_archived, created_by, created_on FROM teams WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.LeagueID, &t.Name, &t.Description, &t.IsArchived, &t.CreatedBy, &t.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *teamRepository) Update(ctx context.Context, t *domain.Team) error {
	query := `UPDATE teams SET name=$1, description=$2, is_archived=$3 WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query, t.Name, t.Description, t.IsArchived, t.ID)
	return err
}

func (r *teamRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	return err
}

func (r *teamRepository) ListByLeague(ctx context.Context, leagueID int32) ([]domain.Team, error) {
	query := `SELECT id, league_id, name, COALESCE(description, ''), is_archived, created_by, created_on FROM teams WHERE league_id = $1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, leagueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		var t domain.Team
		if err := rows.Scan(&t.ID, &t.LeagueID, &t.Name, &t.Description, &t.IsArchived, &t.CreatedBy, &t.CreatedOn); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func scanTeamMember(row interface{ Scan(...any) error }, tm *domain.TeamMember) error {
	var userID, placeholderID sql.NullInt32
	var leftOn sql.NullTime
	err := row.Scan(&tm.ID, &tm.TeamID, &userID, &placeholderID, &tm.Role, &tm.JoinedOn, &leftOn)
	if err != nil {
		return err
	}
	if userID.Valid {
		tm.UserID = &userID.Int32
	}
	if placeholderID.Valid {
		tm.PlaceholderMemberID = &placeholderID.Int32
	}
	if leftOn.Valid {
		tm.LeftOn = &leftOn.Time
	}
	return nil
}

func (r *teamRepository) AddMember(ctx context.Context, tm *domain.TeamMember) error {
	query := `INSERT INTO team_members (team_id, user_id, placeholder_member_id, role, joined_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if tm.JoinedOn.IsZero() {
		tm.JoinedOn = time.Now()
	}
	return r.db.QueryRowContext(ctx, query, tm.TeamID, tm.UserID, tm.PlaceholderMemberID, tm.Role, tm.JoinedOn).Scan(&tm.ID)
}

func (r *teamRepository) GetMemberByUser(ctx context.Context, teamID, userID int32) (*domain.TeamMember, error) {
	tm := &domain.TeamMember{}
	query := `SELECT id, team_id, user_id, placeholder_member_id, role, joined_on, left_on
	          FROM team_members WHERE team_id = $1 AND user_id = $2 AND left_on IS NULL`
	err := scanTeamMember(r.db.QueryRowContext(ctx, query, teamID, userID), tm)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return tm, nil
}

func (r *teamRepository) GetMemberByPlaceholder(ctx context.Context, teamID, placeholderID int32) (*domain.TeamMember, error) {
	tm := &domain.TeamMember{}
	query := `SELECT id, team_id, user_id, placeholder_member_id, role, joined_on, left_on
	          FROM team_members WHERE team_id = $1 AND placeholder_member_id = $2 AND left_on IS NULL`
	err := scanTeamMember(r.db.QueryRowContext(ctx, query, teamID, placeholderID), tm)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return tm, nil
}

func (r *teamRepository) UpdateMember(ctx context.Context, tm *domain.TeamMember) error {
	query := `UPDATE team_members SET role=$1, left_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, tm.Role, tm.LeftOn, tm.ID)
	return err
}

func (r *teamRepository) ListMembers(ctx context.Context, teamID int32) ([]domain.TeamMember, error) {
	query := `SELECT id, team_id, user_id, placeholder_member_id, role, joined_on, left_on
	          FROM team_members WHERE team_id = $1 AND left_on IS NULL ORDER BY joined_on`
	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.TeamMember
	for rows.Next() {
		var tm domain.TeamMember
		if err := scanTeamMember(rows, &tm); err != nil {
			return nil, err
		}
		members = append(members, tm)
	}
	return members, rows.Err()
}

func (r *teamRepository) GetMember(ctx context.Context, id int32) (*domain.TeamMember, error) {
	tm := &domain.TeamMember{}
	query := `SELECT id, team_id, user_id, placeholder_member_id, role, joined_on, left_on FROM team_members WHERE id = $1`
	err := scanTeamMember(r.db.QueryRowContext(ctx, query, id), tm)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return tm, nil
}
