package postgres

import (
	"context"
	"database/sql"
	"errors"

	"leaguehq-backend/internal/domain"
	"leaguehq-backend/internal/repository"
)

type leagueRepository struct {
	db DBTX
}

func NewLeagueRepository(db DBTX) repository.LeagueRepository {
	return &leagueRepository{db: db}
}

const leagueColumns = `id, name, COALESCE(description, ''), visibility, is_archived, created_by, created_on`

func scanLeague(row interface{ Scan(...any) error }, l *domain.League) error {
	return row.Scan(&l.ID, &l.Name, &l.Description, &l.Visibility, &l.IsArchived, &l.CreatedBy, &l.CreatedOn)
}

func (r *leagueRepository) Create(ctx context.Context, l *domain.League) error {
	query := `INSERT INTO leagues (name, description, visibility, is_archived, created_by, created_on)
	          VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, l.Name, l.Description, l.Visibility, l.IsArchived, l.CreatedBy).Scan(&l.ID, &l.CreatedOn)
}

func (r *leagueRepository) GetByID(ctx context.Context, id int32) (*domain.League, error) {
	l := &domain.League{}
	query := `SELECT ` + leagueColumns + ` FROM leagues WHERE id = $1`
	err := scanLeague(r.db.QueryRowContext(ctx, query, id), l)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *leagueRepository) Update(ctx context.Context, l *domain.League) error {
	query := `UPDATE leagues SET name=$1, description=$2, visibility=$3, is_archived=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, l.Name, l.Description, l.Visibility, l.IsArchived, l.ID)
	return err
}

func (r *leagueRepository) Delete(ctx context.Context, id int32) error {
	// League-scoped rows cascade via foreign keys.
	_, err := r.db.ExecContext(ctx, `DELETE FROM leagues WHERE id = $1`, id)
	return err
}

func (r *leagueRepository) ListByUser(ctx context.Context, userID int32) ([]domain.League, error) {
	query := `SELECT l.id, l.name, COALESCE(l.description, ''), l.visibility, l.is_archived, l.created_by, l.created_on
	          FROM leagues l
	          JOIN league_members m ON l.id = m.league_id
	          WHERE m.user_id = $1
	          ORDER BY l.name`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leagues []domain.League
	for rows.Next() {
		var l domain.League
		if err := scanLeague(rows, &l); err != nil {
			return nil, err
		}
		leagues = append(leagues, l)
	}
	return leagues, rows.Err()
}

func (r *leagueRepository) ListPublic(ctx context.Context) ([]domain.League, error) {
	query := `SELECT ` + leagueColumns + ` FROM leagues WHERE visibility = $1 AND is_archived = FALSE ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, domain.LeagueVisibilityPublic)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leagues []domain.League
	for rows.Next() {
		var l domain.League
		if err := scanLeague(rows, &l); err != nil {
			return nil, err
		}
		leagues = append(leagues, l)
	}
	return leagues, rows.Err()
}
