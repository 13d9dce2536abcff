package postgres

import (
	"context"
	"database/sql"

	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/repository"
)

type accountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, a *domain.Account) error {
	query := `INSERT INTO accounts (uid, email, password_hash, admin, created_at) VALUES ($1, LOWER($2), $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, a.UID, a.Email, a.PasswordHash, a.Admin, a.CreatedAt)
	return err
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.get(ctx, `SELECT uid, email, password_hash, admin, created_at FROM accounts WHERE email = LOWER($1)`, email)
}

func (r *accountRepository) GetByUID(ctx context.Context, uid string) (*domain.Account, error) {
	return r.get(ctx, `SELECT uid, email, password_hash, admin, created_at FROM accounts WHERE uid = $1`, uid)
}

func (r *accountRepository) get(ctx context.Context, query string, arg string) (*domain.Account, error) {
	a := &domain.Account{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&a.UID, &a.Email, &a.PasswordHash, &a.Admin, &a.CreatedAt)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return a, nil
}

func (r *accountRepository) SetAdmin(ctx context.Context, uid string, admin bool) error {
	return affected(r.db.ExecContext(ctx, `UPDATE accounts SET admin = $1 WHERE uid = $2`, admin, uid))
}

func (r *accountRepository) Delete(ctx context.Context, uid string) error {
	return affected(r.db.ExecContext(ctx, `DELETE FROM accounts WHERE uid = $1`, uid))
}
