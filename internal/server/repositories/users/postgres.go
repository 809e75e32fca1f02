package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// emailConstraint is the unique constraint on users.email, named in the
// create_users migration.
const emailConstraint = "users_email_key"

// DB is what PostgresRepository needs from a connection pool; *sql.DB
// satisfies it.
type DB interface {
	dbx.DBTX
	dbx.TxBeginner
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, email, name, created_at FROM users
		 WHERE id = $1`

	u := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt)
	if err != nil {
		// ids come from token claims; a value that is not a uuid cannot exist
		if errors.Is(err, sql.ErrNoRows) || pgCode(err) == pgerrcode.InvalidTextRepresentation {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return u, nil
}

func (r *PostgresRepository) FindCredentialByEmail(ctx context.Context, email string) (*models.Account, error) {
	query :=
		`SELECT u.id, u.email, u.name, u.created_at, c.hash FROM credentials c
		 JOIN users u ON u.id = c.user_id
		 WHERE u.email = $1`

	a := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&a.User.ID, &a.User.Email, &a.User.Name, &a.User.CreatedAt, &a.Hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) CreateUserWithCredential(ctx context.Context, email, name, hash string) (*models.User, error) {
	u := &models.User{Email: email, Name: name}

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		err := tx.QueryRowContext(ctx,
			`INSERT INTO users (email, name)
			 VALUES ($1, $2)
			 RETURNING id, created_at`,
			email, name).Scan(&u.ID, &u.CreatedAt)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO credentials (user_id, hash)
			 VALUES ($1, $2)`,
			u.ID, hash)
		return err
	})
	if err != nil {
		if isEmailViolation(err) {
			return nil, common.ErrEmailTaken
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return u, nil
}

func isEmailViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		pgErr.ConstraintName == emailConstraint
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
