package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"admin-account/internal/domain"
)

// AccountRepository define el contrato de persistencia para cuentas.
type AccountRepository interface {
	// FindConflicting busca una fila cuyo username, email o mobile coincida
	// con alguno de los valores no vacíos. Devuelve pgx.ErrNoRows si no hay
	// coincidencia o si el filtro queda vacío.
	FindConflicting(ctx context.Context, username, email, mobile string) (domain.Account, error)
	FindByID(ctx context.Context, id int64) (domain.Account, error)
	FindByUsername(ctx context.Context, username string) (domain.Account, error)
	FetchPasswordHash(ctx context.Context, id int64) (string, error)
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	Save(ctx context.Context, account domain.Account) error
	UpdatePassword(ctx context.Context, id int64, password string) error
	DeleteByID(ctx context.Context, id int64) (int64, error)
}

// PgAccountRepository implementa AccountRepository usando pgxpool.
type PgAccountRepository struct {
	pool *pgxpool.Pool
}

func NewPgAccountRepository(pool *pgxpool.Pool) *PgAccountRepository {
	return &PgAccountRepository{pool: pool}
}

func (r *PgAccountRepository) FindConflicting(ctx context.Context, username, email, mobile string) (domain.Account, error) {
	var (
		clauses []string
		args    []any
	)
	if username != "" {
		args = append(args, username)
		clauses = append(clauses, fmt.Sprintf("username = $%d", len(args)))
	}
	if email != "" {
		args = append(args, email)
		clauses = append(clauses, fmt.Sprintf("email = $%d", len(args)))
	}
	if mobile != "" {
		args = append(args, mobile)
		clauses = append(clauses, fmt.Sprintf("mobile = $%d", len(args)))
	}
	if len(clauses) == 0 {
		return domain.Account{}, pgx.ErrNoRows
	}

	// Solo se seleccionan las claves alternas de la fila en conflicto.
	query := `
		SELECT username, email, mobile
		FROM accounts
		WHERE ` + strings.Join(clauses, " OR ") + `
		LIMIT 1
	`
	var a domain.Account
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&a.Username,
		&a.Email,
		&a.Mobile,
	)
	return a, err
}

func (r *PgAccountRepository) FindByID(ctx context.Context, id int64) (domain.Account, error) {
	const query = `
		SELECT id, username, email, mobile, password, status, platform, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	return r.scanAccount(r.pool.QueryRow(ctx, query, id))
}

func (r *PgAccountRepository) FindByUsername(ctx context.Context, username string) (domain.Account, error) {
	const query = `
		SELECT id, username, email, mobile, password, status, platform, created_at, updated_at
		FROM accounts
		WHERE username = $1 AND username <> ''
	`
	return r.scanAccount(r.pool.QueryRow(ctx, query, username))
}

func (r *PgAccountRepository) FetchPasswordHash(ctx context.Context, id int64) (string, error) {
	const query = `
		SELECT password
		FROM accounts
		WHERE id = $1
	`
	var password string
	err := r.pool.QueryRow(ctx, query, id).Scan(&password)
	return password, err
}

func (r *PgAccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
		INSERT INTO accounts (username, email, mobile, password, status, platform, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		account.Username,
		account.Email,
		account.Mobile,
		account.Password,
		account.Status,
		account.Platform,
		account.CreatedAt,
		account.UpdatedAt,
	).Scan(&account.ID)
	return account, err
}

// Save inserta la cuenta cuando no tiene identificador y la actualiza
// cuando lo tiene. No toca la columna password.
func (r *PgAccountRepository) Save(ctx context.Context, account domain.Account) error {
	if account.ID == 0 {
		_, err := r.Create(ctx, account)
		return err
	}
	const query = `
		UPDATE accounts
		SET username = $2, email = $3, mobile = $4, status = $5, platform = $6, updated_at = $7
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		account.ID,
		account.Username,
		account.Email,
		account.Mobile,
		account.Status,
		account.Platform,
		account.UpdatedAt,
	)
	return err
}

func (r *PgAccountRepository) UpdatePassword(ctx context.Context, id int64, password string) error {
	const query = `
		UPDATE accounts
		SET password = $2, updated_at = now()
		WHERE id = $1
	`
	ct, err := r.pool.Exec(ctx, query, id, password)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgAccountRepository) DeleteByID(ctx context.Context, id int64) (int64, error) {
	const query = `
		DELETE FROM accounts
		WHERE id = $1
	`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (r *PgAccountRepository) scanAccount(row pgx.Row) (domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.Email,
		&a.Mobile,
		&a.Password,
		&a.Status,
		&a.Platform,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}
