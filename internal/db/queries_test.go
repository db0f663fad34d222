package db

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"
)

type errRow struct{ err error }

func (r errRow) Scan(dest ...any) error { return r.err }

// errDB answers every QueryRow with a fixed error, which is enough to
// exercise the constraint-violation mapping in the insert paths.
type errDB struct{ err error }

func (f errDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (f errDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, f.err
}

func (f errDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return errRow{f.err}
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func TestNewUserMapsEmailUniqueViolation(t *testing.T) {
	q := New(errDB{err: uniqueViolation("users_email_key")})

	_, err := q.NewUser(context.Background(), NewUserParams{
		Email:    "dupe@example.com",
		Name:     "Dupe",
		Password: "hunter2hunter2",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateVideoMapsSlugUniqueViolation(t *testing.T) {
	q := New(errDB{err: uniqueViolation("videos_slug_key")})

	_, err := q.CreateVideo(context.Background(), CreateVideoParams{
		Title: "Taken",
		Slug:  "taken-abc123",
	})
	require.ErrorIs(t, err, ErrSlugTaken)
}

func TestCreateLikeMapsUniqueViolation(t *testing.T) {
	q := New(errDB{err: uniqueViolation("likes_video_id_user_id_key")})

	_, err := q.CreateLike(context.Background(), pgtype.UUID{}, pgtype.UUID{})
	require.ErrorIs(t, err, ErrAlreadyLiked)
}

func TestUnrelatedErrorPassesThrough(t *testing.T) {
	q := New(errDB{err: uniqueViolation("some_other_key")})

	_, err := q.NewUser(context.Background(), NewUserParams{
		Email:    "x@example.com",
		Name:     "X",
		Password: "hunter2hunter2",
	})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrEmailTaken)
}
