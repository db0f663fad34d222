package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jmorf/pranks/pkg/utils/passwords"
)

// ErrEmailTaken is returned when an insert loses the race on the users email
// unique constraint.
var ErrEmailTaken = errors.New("email already registered")

// Advisory lock key serializing registrations; arbitrary but fixed.
const registrationLockID = 2286

// NewUserParams contains the parameters for creating a new user.
type NewUserParams struct {
	Email    string
	Name     string
	Password string // plaintext password
	Role     UserRole
}

const userColumns = "id, email, name, password, role, enabled, created_at, updated_at"

func scanUser(row interface{ Scan(dest ...any) error }) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Password, &u.Role, &u.Enabled, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// NewUser creates a user with a hashed password.
func (q *Queries) NewUser(ctx context.Context, params NewUserParams) (*User, error) {
	hashed, err := passwords.NewPassword(passwords.PasswordInput{Password: params.Password})
	if err != nil {
		return nil, err
	}

	role := params.Role
	if role == "" {
		role = UserRoleUser
	}

	id := pgtype.UUID{Bytes: uuid.New(), Valid: true}

	row := q.db.QueryRow(ctx, `
		INSERT INTO users (id, email, name, password, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		id, params.Email, params.Name, hashed, role)

	u, err := scanUser(row)
	if IsUniqueViolation(err, "users_email_key") {
		return nil, ErrEmailTaken
	}
	return u, err
}

// LockRegistration takes a transaction-scoped advisory lock so concurrent
// registrations serialize. It covers both the email existence check and the
// first-user-becomes-admin election; the lock releases with the transaction.
func (q *Queries) LockRegistration(ctx context.Context) error {
	_, err := q.db.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(registrationLockID))
	return err
}

func (q *Queries) SelectUserByEmail(ctx context.Context, email string) (*User, error) {
	row := q.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (q *Queries) SelectUserByID(ctx context.Context, id pgtype.UUID) (*User, error) {
	row := q.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (q *Queries) EmailRegistered(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (q *Queries) SetUserRole(ctx context.Context, id pgtype.UUID, role UserRole) error {
	_, err := q.db.Exec(ctx, `UPDATE users SET role = $2, updated_at = now() WHERE id = $1`, id, role)
	return err
}

func (q *Queries) SetUserEnabled(ctx context.Context, id pgtype.UUID, enabled bool) error {
	_, err := q.db.Exec(ctx, `UPDATE users SET enabled = $2, updated_at = now() WHERE id = $1`, id, enabled)
	return err
}
