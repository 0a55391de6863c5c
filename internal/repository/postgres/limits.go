package postgres

import (
	"context"
	"database/sql"
	"errors"

	"leaguehq-backend/internal/domain"
	"leaguehq-backend/internal/repository"
)

type limitOverrideRepository struct {
	db DBTX
}

func NewLimitOverrideRepository(db DBTX) repository.LimitOverrideRepository {
	return &limitOverrideRepository{db: db}
}

func scanOverride(row interface{ Scan(...any) error }, o *domain.LimitOverride) error {
	var userID, leagueID, limitValue sql.NullInt32
	err := row.Scan(&o.ID, &o.LimitType, &userID, &leagueID, &limitValue)
	if err != nil {
		return err
	}
	if userID.Valid {
		o.UserID = &userID.Int32
	}
	if leagueID.Valid {
		o.LeagueID = &leagueID.Int32
	}
	if limitValue.Valid {
		o.LimitValue = &limitValue.Int32
	}
	return nil
}

func (r *limitOverrideRepository) GetForUser(ctx context.Context, userID int32, limitType domain.LimitType) (*domain.LimitOverride, error) {
	o := &domain.LimitOverride{}
	query := `SELECT id, limit_type, user_id, league_id, limit_value FROM limit_overrides WHERE user_id = $1 AND limit_type = $2`
	err := scanOverride(r.db.QueryRowContext(ctx, query, userID, limitType), o)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *limitOverrideRepository) GetForLeague(ctx context.Context, leagueID int32, limitType domain.LimitType) (*domain.LimitOverride, error) {
	o := &domain.LimitOverride{}
	query := `SELECT id, limit_type, user_id, league_id, limit_value FROM limit_overrides WHERE league_id = $1 AND limit_type = $2`
	err := scanOverride(r.db.QueryRowContext(ctx, query, leagueID, limitType), o)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *limitOverrideRepository) Upsert(ctx context.Context, o *domain.LimitOverride) error {
	if o.UserID != nil {
		query := `INSERT INTO limit_overrides (limit_type, user_id, limit_value) VALUES ($1, $2, $3)
		          ON CONFLICT (limit_type, user_id) WHERE user_id IS NOT NULL
		          DO UPDATE SET limit_value = EXCLUDED.limit_value
		          RETURNING id`
		return r.db.QueryRowContext(ctx, query, o.LimitType, o.UserID, o.LimitValue).Scan(&o.ID)
	}
	query := `INSERT INTO limit_overrides (limit_type, league_id, limit_value) VALUES ($1, $2, $3)
	          ON CONFLICT (limit_type, league_id) WHERE league_id IS NOT NULL
	          DO UPDATE SET limit_value = EXCLUDED.limit_value
	          RETURNING id`
	return r.db.QueryRowContext(ctx, query, o.LimitType, o.LeagueID, o.LimitValue).Scan(&o.ID)
}

func (r *limitOverrideRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM limit_overrides WHERE id = $1`, id)
	return err
}
