package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"leaguehq-backend/internal/domain"
	"leaguehq-backend/internal/repository"
)

type placeholderMemberRepository struct {
	db DBTX
}

func NewPlaceholderMemberRepository(db DBTX) repository.PlaceholderMemberRepository {
	return &placeholderMemberRepository{db: db}
}

func scanPlaceholder(row interface{ Scan(...any) error }, pm *domain.PlaceholderMember) error {
	var linkedUserID sql.NullInt32
	var retiredOn sql.NullTime
	err := row.Scan(&pm.ID, &pm.LeagueID, &pm.DisplayName, &linkedUserID, &retiredOn, &pm.CreatedOn)
	if err != nil {
		return err
	}
	if linkedUserID.Valid {
		pm.LinkedUserID = &linkedUserID.Int32
	}
	if retiredOn.Valid {
		pm.RetiredOn = &retiredOn.Time
	}
	return nil
}

func (r *placeholderMemberRepository) Create(ctx context.Context, pm *domain.PlaceholderMember) error {
	query := `INSERT INTO placeholder_members (league_id, display_name, linked_user_id, created_on)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	pm.CreatedOn = time.Now()
	return r.db.QueryRowContext(ctx, query, pm.LeagueID, pm.DisplayName, pm.LinkedUserID, pm.CreatedOn).Scan(&pm.ID)
}

func (r *placeholderMemberRepository) GetByID(ctx context.Context, id int32) (*domain.PlaceholderMember, error) {
	pm := &domain.PlaceholderMember{}
	query := `SELECT id, league_id, display_name, linked_user_id, retired_on, created_on FROM placeholder_members WHERE id = $1`
	err := scanPlaceholder(r.db.QueryRowContext(ctx, query, id), pm)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return pm, nil
}

func (r *placeholderMemberRepository) Update(ctx context.Context, pm *domain.PlaceholderMember) error {
	query := `UPDATE placeholder_members SET display_name=$1, linked_user_id=$2, retired_on=$3 WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query, pm.DisplayName, pm.LinkedUserID, pm.RetiredOn, pm.ID)
	return err
}

func (r *placeholderMemberRepository) ListByLeague(ctx context.Context, leagueID int32, includeRetired bool) ([]domain.PlaceholderMember, error) {
	query := `SELECT id, league_id, display_name, linked_user_id, retired_on, created_on FROM placeholder_members WHERE league_id = $1`
	if !includeRetired {
		query += ` AND retired_on IS NULL`
	}
	query += ` ORDER BY display_name`

	rows, err := r.db.QueryContext(ctx, query, leagueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pms []domain.PlaceholderMember
	for rows.Next() {
		var pm domain.PlaceholderMember
		if err := scanPlaceholder(rows, &pm); err != nil {
			return nil, err
		}
		pms = append(pms, pm)
	}
	return pms, rows.Err()
}
