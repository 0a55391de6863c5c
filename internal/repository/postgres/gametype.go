package postgres

import (
	"context"
	"database/sql"
	"errors"

	"leaguehq-backend/internal/domain"
	"leaguehq-backend/internal/repository"
)

type gameTypeRepository struct {
	db DBTX
}

func NewGameTypeRepository(db DBTX) repository.GameTypeRepository {
	return &gameTypeRepository{db: db}
}

const gameTypeColumns = `id, league_id, name, category, config, is_archived, created_by, created_on`

func scanGameType(row interface{ Scan(...any) error }, gt *domain.GameType) error {
	var config []byte
	err := row.Scan(&gt.ID, &gt.LeagueID, &gt.Name, &gt.Category, &config, &gt.IsArchived, &gt.CreatedBy, &gt.CreatedOn)
	if err != nil {
		return err
	}
	gt.Config = config
	return nil
}

func (r *gameTypeRepository) Create(ctx context.Context, gt *domain.GameType) error {
	query := `INSERT INTO game_types (league_id, name, category, config, is_archived, created_by, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query,
		gt.LeagueID, gt.Name, gt.Category, []byte(gt.Config), gt.IsArchived, gt.CreatedBy,
	).Scan(&gt.ID, &gt.CreatedOn)
}

func (r *gameTypeRepository) GetByID(ctx context.Context, id int32) (*domain.GameType, error) {
	gt := &domain.GameType{}
	query := `SELECT ` + gameTypeColumns + ` FROM game_types WHERE id = $1`
	err := scanGameType(r.db.QueryRowContext(ctx, query, id), gt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return gt, nil
}

func (r *gameTypeRepository) GetByName(ctx context.Context, leagueID int32, name string) (*domain.GameType, error) {
	gt := &domain.GameType{}
	query := `SELECT ` + gameTypeColumns + ` FROM game_types WHERE league_id = $1 AND LOWER(name) = LOWER($2)`
	err := scanGameType(r.db.QueryRowContext(ctx, query, leagueID, name), gt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return gt, nil
}

func (r *gameTypeRepository) Update(ctx context.Context, gt *domain.GameType) error {
	query := `UPDATE game_types SET name=$1, config=$2, is_archived=$3 WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query, gt.Name, []byte(gt.Config), gt.IsArchived, gt.ID)
	return err
}

func (r *gameTypeRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM game_types WHERE id = $1`, id)
	return err
}

func (r *gameTypeRepository) ListByLeague(ctx context.Context, leagueID int32, includeArchived bool) ([]domain.GameType, error) {
	query := `SELECT ` + gameTypeColumns + ` FROM game_types WHERE league_id = $1`
	if !includeArchived {
		query += ` AND is_archived = FALSE`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, leagueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gts []domain.GameType
	for rows.Next() {
		var gt domain.GameType
		if err := scanGameType(rows, &gt); err != nil {
			return nil, err
		}
		gts = append(gts, gt)
	}
	return gts, rows.Err()
}

func (r *gameTypeRepository) CountByLeague(ctx context.Context, leagueID int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM game_types WHERE league_id = $1`, leagueID).Scan(&count)
	return count, err
}
