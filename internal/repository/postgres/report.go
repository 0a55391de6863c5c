package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"leaguehq-backend/internal/domain"
	"leaguehq-backend/internal/repository"
)

type reportRepository struct {
	db DBTX
}

func NewReportRepository(db DBTX) repository.ReportRepository {
	return &reportRepository{db: db}
}

const reportColumns = `id, league_id, reporter_id, reported_user_id, reason, COALESCE(description, ''), COALESCE(evidence, ''), status, created_on`

func scanReport(row interface{ Scan(...any) error }, rep *domain.Report) error {
	return row.Scan(&rep.ID, &rep.LeagueID, &rep.ReporterID, &rep.ReportedUserID, &rep.Reason, &rep.Description, &rep.Evidence, &rep.Status, &rep.CreatedOn)
}

func (r *reportRepository) Create(ctx context.Context, rep *domain.Report) error {
	query := `INSERT INTO reports (league_id, reporter_id, reported_user_id, reason, description, evidence, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, NOW()) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query,
		rep.LeagueID, rep.ReporterID, rep.ReportedUserID, rep.Reason, rep.Description, rep.Evidence, rep.Status,
	).Scan(&rep.ID, &rep.CreatedOn)
}

func (r *reportRepository) GetByID(ctx context.Context, id int32) (*domain.Report, error) {
	rep := &domain.Report{}
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`
	err := scanReport(r.db.QueryRowContext(ctx, query, id), rep)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *reportRepository) GetPending(ctx context.Context, leagueID, reporterID, reportedUserID int32) (*domain.Report, error) {
	rep := &domain.Report{}
	query := `SELECT ` + reportColumns + ` FROM reports
	          WHERE league_id = $1 AND reporter_id = $2 AND reported_user_id = $3 AND status = $4`
	err := scanReport(r.db.QueryRowContext(ctx, query, leagueID, reporterID, reportedUserID, domain.ReportStatusPending), rep)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *reportRepository) Update(ctx context.Context, rep *domain.Report) error {
	query := `UPDATE reports SET status=$1 WHERE id=$2`
	_, err := r.db.ExecContext(ctx, query, rep.Status, rep.ID)
	return err
}

func (r *reportRepository) ListByLeague(ctx context.Context, leagueID int32, status domain.ReportStatus) ([]domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE league_id = $1`
	args := []any{leagueID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_on DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		var rep domain.Report
		if err := scanReport(rows, &rep); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

type moderationActionRepository struct {
	db DBTX
}

func NewModerationActionRepository(db DBTX) repository.ModerationActionRepository {
	return &moderationActionRepository{db: db}
}

const actionColumns = `id, report_id, league_id, moderator_id, target_user_id, action, reason, suspended_until, acknowledged_on, created_on`

func scanAction(row interface{ Scan(...any) error }, a *domain.ModerationAction) error {
	var reportID sql.NullInt32
	var suspendedUntil, acknowledgedOn sql.NullTime
	err := row.Scan(&a.ID, &reportID, &a.LeagueID, &a.ModeratorID, &a.TargetUserID, &a.Action, &a.Reason, &suspendedUntil, &acknowledgedOn, &a.CreatedOn)
	if err != nil {
		return err
	}
	if reportID.Valid {
		a.ReportID = &reportID.Int32
	}
	if suspendedUntil.Valid {
		a.SuspendedUntil = &suspendedUntil.Time
	}
	if acknowledgedOn.Valid {
		a.AcknowledgedOn = &acknowledgedOn.Time
	}
	return nil
}

func (r *moderationActionRepository) Create(ctx context.Context, a *domain.ModerationAction) error {
	query := `INSERT INTO moderation_actions (report_id, league_id, moderator_id, target_user_id, action, reason, suspended_until, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, NOW()) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query,
		a.ReportID, a.LeagueID, a.ModeratorID, a.TargetUserID, a.Action, a.Reason, a.SuspendedUntil,
	).Scan(&a.ID, &a.CreatedOn)
}

func (r *moderationActionRepository) GetByID(ctx context.Context, id int32) (*domain.ModerationAction, error) {
	a := &domain.ModerationAction{}
	query := `SELECT ` + actionColumns + ` FROM moderation_actions WHERE id = $1`
	err := scanAction(r.db.QueryRowContext(ctx, query, id), a)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *moderationActionRepository) ListByLeague(ctx context.Context, leagueID int32) ([]domain.ModerationAction, error) {
	query := `SELECT ` + actionColumns + ` FROM moderation_actions WHERE league_id = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, leagueID)
}

func (r *moderationActionRepository) ListForUser(ctx context.Context, leagueID, userID int32) ([]domain.ModerationAction, error) {
	query := `SELECT ` + actionColumns + ` FROM moderation_actions WHERE league_id = $1 AND target_user_id = $2 ORDER BY created_on DESC`
	return r.list(ctx, query, leagueID, userID)
}

func (r *moderationActionRepository) list(ctx context.Context, query string, args ...any) ([]domain.ModerationAction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []domain.ModerationAction
	for rows.Next() {
		var a domain.ModerationAction
		if err := scanAction(rows, &a); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

func (r *moderationActionRepository) Acknowledge(ctx context.Context, id int32, at time.Time) error {
	query := `UPDATE moderation_actions SET acknowledged_on = $1 WHERE id = $2 AND acknowledged_on IS NULL`
	_, err := r.db.ExecContext(ctx, query, at, id)
	return err
}
