package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"leaguehq-backend/internal/domain"
	"leaguehq-backend/internal/repository"
)

type invitationRepository struct {
	db DBTX
}

func NewInvitationRepository(db DBTX) repository.InvitationRepository {
	return &invitationRepository{db: db}
}

const invitationColumns = `id, league_id, invitee_user_id, token, role, status, created_by, expires_on, max_uses, use_count, created_on`

func scanInvitation(row interface{ Scan(...any) error }, inv *domain.Invitation) error {
	var inviteeUserID, maxUses sql.NullInt32
	var token sql.NullString
	var expiresOn sql.NullTime
	err := row.Scan(&inv.ID, &inv.LeagueID, &inviteeUserID, &token, &inv.Role, &inv.Status, &inv.CreatedBy, &expiresOn, &maxUses, &inv.UseCount, &inv.CreatedOn)
	if err != nil {
		return err
	}
	if inviteeUserID.Valid {
		inv.InviteeUserID = &inviteeUserID.Int32
	}
	if token.Valid {
		inv.Token = &token.String
	}
	if expiresOn.Valid {
		inv.ExpiresOn = &expiresOn.Time
	}
	if maxUses.Valid {
		inv.MaxUses = &maxUses.Int32
	}
	return nil
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `INSERT INTO invitations (league_id, invitee_user_id, token, role, status, created_by, expires_on, max_uses, use_count, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW()) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query,
		inv.LeagueID, inv.InviteeUserID, inv.Token, inv.Role, inv.Status, inv.CreatedBy, inv.ExpiresOn, inv.MaxUses, inv.UseCount,
	).Scan(&inv.ID, &inv.CreatedOn)
}

func (r *invitationRepository) GetByID(ctx context.Context, id int32) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE id = $1`
	err := scanInvitation(r.db.QueryRowContext(ctx, query, id), inv)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) GetByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE token = $1`
	err := scanInvitation(r.db.QueryRowContext(ctx, query, token), inv)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) GetPendingDirect(ctx context.Context, leagueID, inviteeUserID int32) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	query := `SELECT ` + invitationColumns + ` FROM invitations
	          WHERE league_id = $1 AND invitee_user_id = $2 AND status = $3`
	err := scanInvitation(r.db.QueryRowContext(ctx, query, leagueID, inviteeUserID, domain.InvitationStatusPending), inv)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) ListPendingForUser(ctx context.Context, userID int32) ([]domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations
	          WHERE invitee_user_id = $1 AND status = $2 ORDER BY created_on DESC`
	return r.list(ctx, query, userID, domain.InvitationStatusPending)
}

func (r *invitationRepository) ListByLeague(ctx context.Context, leagueID int32) ([]domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE league_id = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, leagueID)
}

func (r *invitationRepository) list(ctx context.Context, query string, args ...any) ([]domain.Invitation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invs []domain.Invitation
	for rows.Next() {
		var inv domain.Invitation
		if err := scanInvitation(rows, &inv); err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}

func (r *invitationRepository) Update(ctx context.Context, inv *domain.Invitation) error {
	query := `UPDATE invitations SET status=$1, use_count=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, inv.Status, inv.UseCount, inv.ID)
	return err
}

func (r *invitationRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM invitations WHERE id = $1`, id)
	return err
}

func (r *invitationRepository) DeleteResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM invitations
	          WHERE created_on < $1
	            AND (status IN ($2, $3)
	                 OR (token IS NOT NULL AND expires_on IS NOT NULL AND expires_on < NOW())
	                 OR (token IS NOT NULL AND max_uses IS NOT NULL AND use_count >= max_uses))`
	res, err := r.db.ExecContext(ctx, query, cutoff, domain.InvitationStatusDeclined, domain.InvitationStatusExpired)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
