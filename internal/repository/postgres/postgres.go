package postgres

import (
	"context"
	"database/sql"

	"leaguehq-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so every repository can run
// standalone or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.Registry
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:       db,
		Registry: newRegistry(db),
	}
}

func newRegistry(db DBTX) repository.Registry {
	return repository.Registry{
		Users:        NewUserRepository(db),
		Leagues:      NewLeagueRepository(db),
		Members:      NewMemberRepository(db),
		Invitations:  NewInvitationRepository(db),
		Placeholders: NewPlaceholderMemberRepository(db),
		Teams:        NewTeamRepository(db),
		Reports:      NewReportRepository(db),
		Actions:      NewModerationActionRepository(db),
		GameTypes:    NewGameTypeRepository(db),
		Overrides:    NewLimitOverrideRepository(db),
	}
}

// WithinTx runs fn against a registry bound to one transaction. If fn returns
// an error the transaction rolls back, else it commits.
func (s *Store) WithinTx(ctx context.Context, fn func(r *repository.Registry) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	reg := newRegistry(tx)
	if err := fn(&reg); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
