package account

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/regform/pkg/pg"
)

// Migrations holds the schema for PGStorage, to be applied with pg.Migrate
// from the "migrations" directory.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations.
const MigrationsDir = "migrations"

// DB is the subset of *pgxpool.Pool used by PGStorage.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGStorage stores accounts in PostgreSQL.
type PGStorage struct {
	db DB
}

func NewPGStorage(db DB) *PGStorage {
	return &PGStorage{db: db}
}

const insertAccount = `INSERT INTO accounts (id, username, email, password_hash, created_at)
VALUES ($1, $2, $3, $4, $5)`

func (s *PGStorage) CreateAccount(ctx context.Context, a *Account) error {
	_, err := s.db.Exec(ctx, insertAccount, a.ID, a.Username, a.Email, a.PasswordHash, a.CreatedAt)
	if err == nil {
		return nil
	}
	if pg.IsDuplicateKeyError(err) {
		switch pg.ConstraintName(err) {
		case "accounts_username_key":
			return ErrUsernameTaken
		case "accounts_email_key":
			return ErrEmailTaken
		}
	}
	return fmt.Errorf("insert account: %w", err)
}

const selectAccountByEmail = `SELECT id, username, email, password_hash, created_at
FROM accounts WHERE email = $1`

func (s *PGStorage) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	var a Account
	err := s.db.QueryRow(ctx, selectAccountByEmail, email).
		Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if pg.IsNotFoundError(err) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select account: %w", err)
	}
	return &a, nil
}
