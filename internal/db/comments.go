package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CreateCommentParams struct {
	VideoID   pgtype.UUID
	AuthorID  pgtype.UUID
	Content   string // already validated and sanitized
	IPAddress string
	UserAgent string
}

// CreateComment stores an already-validated comment. Comments are
// auto-approved; moderation can flip the status afterwards.
func (q *Queries) CreateComment(ctx context.Context, params CreateCommentParams) (*Comment, error) {
	id := pgtype.UUID{Bytes: uuid.New(), Valid: true}

	row := q.db.QueryRow(ctx, `
		INSERT INTO comments (id, video_id, author_id, content, status, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, video_id, author_id, content, status, ip_address, user_agent, created_at`,
		id, params.VideoID, params.AuthorID, params.Content, StatusApproved,
		params.IPAddress, params.UserAgent)

	var c Comment
	err := row.Scan(&c.ID, &c.VideoID, &c.AuthorID, &c.Content, &c.Status, &c.IPAddress, &c.UserAgent, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCommentsForVideo returns approved comments newest first, joined with
// the author's display name.
func (q *Queries) ListCommentsForVideo(ctx context.Context, videoID pgtype.UUID, limit int32) ([]*Comment, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := q.db.Query(ctx, `
		SELECT c.id, c.video_id, c.author_id, u.name, c.content, c.status, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.video_id = $1 AND c.status = $2
		ORDER BY c.created_at DESC
		LIMIT $3`,
		videoID, StatusApproved, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.VideoID, &c.AuthorID, &c.AuthorName, &c.Content, &c.Status, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (q *Queries) GetCommentByID(ctx context.Context, id pgtype.UUID) (*Comment, error) {
	row := q.db.QueryRow(ctx, `
		SELECT id, video_id, author_id, content, status, ip_address, user_agent, created_at
		FROM comments WHERE id = $1`, id)

	var c Comment
	err := row.Scan(&c.ID, &c.VideoID, &c.AuthorID, &c.Content, &c.Status, &c.IPAddress, &c.UserAgent, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (q *Queries) SetCommentStatus(ctx context.Context, id pgtype.UUID, status ModerationStatus) error {
	tag, err := q.db.Exec(ctx, `UPDATE comments SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("comment %s not found", uuid.UUID(id.Bytes))
	}
	return nil
}

func (q *Queries) DeleteComment(ctx context.Context, id pgtype.UUID) error {
	_, err := q.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	return err
}
