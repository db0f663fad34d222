package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

var (
	ErrAlreadyLiked = errors.New("already liked")
	ErrNotLiked     = errors.New("not liked")
)

// CreateLike records one like per (video, user); the unique constraint is the
// source of truth and a duplicate maps to ErrAlreadyLiked.
func (q *Queries) CreateLike(ctx context.Context, videoID, userID pgtype.UUID) (*Like, error) {
	id := pgtype.UUID{Bytes: uuid.New(), Valid: true}

	row := q.db.QueryRow(ctx, `
		INSERT INTO likes (id, video_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, video_id, user_id, created_at`,
		id, videoID, userID)

	var l Like
	err := row.Scan(&l.ID, &l.VideoID, &l.UserID, &l.CreatedAt)
	if IsUniqueViolation(err, "likes_video_id_user_id_key") {
		return nil, ErrAlreadyLiked
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (q *Queries) DeleteLike(ctx context.Context, videoID, userID pgtype.UUID) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM likes WHERE video_id = $1 AND user_id = $2`, videoID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotLiked
	}
	return nil
}

func (q *Queries) HasLiked(ctx context.Context, videoID, userID pgtype.UUID) (bool, error) {
	var liked bool
	err := q.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM likes WHERE video_id = $1 AND user_id = $2)`,
		videoID, userID).Scan(&liked)
	return liked, err
}

func (q *Queries) CountLikes(ctx context.Context, videoID pgtype.UUID) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE video_id = $1`, videoID).Scan(&n)
	return n, err
}
