package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// ErrSlugTaken is returned when an insert loses the race on the videos slug
// unique constraint. Callers regenerate the random suffix and retry.
var ErrSlugTaken = errors.New("slug already taken")

const videoColumns = `id, title, display_title, tags, slug, description, source_url,
	embed_url, platform, thumbnail_url, original_author, original_author_url,
	view_count, status, submitted_by, created_at, updated_at`

func scanVideo(row interface{ Scan(dest ...any) error }) (*Video, error) {
	var v Video
	err := row.Scan(
		&v.ID, &v.Title, &v.DisplayTitle, &v.Tags, &v.Slug, &v.Description, &v.SourceURL,
		&v.EmbedURL, &v.Platform, &v.ThumbnailURL, &v.OriginalAuthor, &v.OriginalAuthorURL,
		&v.ViewCount, &v.Status, &v.SubmittedBy, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

type CreateVideoParams struct {
	Title             string
	DisplayTitle      string
	Tags              []string
	Slug              string
	Description       string
	SourceURL         string
	EmbedURL          string
	Platform          string
	ThumbnailURL      string
	OriginalAuthor    string
	OriginalAuthorURL string
	SubmittedBy       pgtype.UUID
}

// CreateVideo inserts a freshly derived video with status pending. A unique
// violation on the slug maps to ErrSlugTaken so the submit path can reslug
// and retry instead of surfacing a 500.
func (q *Queries) CreateVideo(ctx context.Context, params CreateVideoParams) (*Video, error) {
	id := pgtype.UUID{Bytes: uuid.New(), Valid: true}

	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	row := q.db.QueryRow(ctx, `
		INSERT INTO videos (
			id, title, display_title, tags, slug, description, source_url,
			embed_url, platform, thumbnail_url, original_author, original_author_url,
			submitted_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+videoColumns,
		id, params.Title, params.DisplayTitle, tags, params.Slug, params.Description,
		params.SourceURL, params.EmbedURL, params.Platform, params.ThumbnailURL,
		params.OriginalAuthor, params.OriginalAuthorURL, params.SubmittedBy)

	v, err := scanVideo(row)
	if IsUniqueViolation(err, "videos_slug_key") {
		return nil, ErrSlugTaken
	}
	return v, err
}

func (q *Queries) GetVideoByID(ctx context.Context, id pgtype.UUID) (*Video, error) {
	row := q.db.QueryRow(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = $1`, id)
	return scanVideo(row)
}

func (q *Queries) GetVideoBySlug(ctx context.Context, slug string) (*Video, error) {
	row := q.db.QueryRow(ctx, `SELECT `+videoColumns+` FROM videos WHERE slug = $1`, slug)
	return scanVideo(row)
}

// IncrementViewCount bumps the on-platform view counter. This deliberately
// skips the status check: the player fires it for any video it can render.
func (q *Queries) IncrementViewCount(ctx context.Context, id pgtype.UUID) error {
	_, err := q.db.Exec(ctx, `UPDATE videos SET view_count = view_count + 1, updated_at = now() WHERE id = $1`, id)
	return err
}

func (q *Queries) SetVideoStatus(ctx context.Context, id pgtype.UUID, status ModerationStatus) error {
	tag, err := q.db.Exec(ctx, `UPDATE videos SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("video %s not found", uuid.UUID(id.Bytes))
	}
	return nil
}

// ListVideosParams filters the public listing. Zero values mean "no filter";
// Status is required so the public surface can never accidentally list
// unreviewed submissions.
type ListVideosParams struct {
	Status   ModerationStatus
	Platform string
	Tag      string
	Sort     string // "newest" (default) or "popular"
	Limit    int32
	Offset   int32
}

type ListVideosRow struct {
	Video
	TotalCount int64
}

// ListVideos assembles the filtered listing dynamically. The total row count
// rides along as a window aggregate so pagination needs no second query.
func (q *Queries) ListVideos(ctx context.Context, params ListVideosParams) ([]*ListVideosRow, error) {
	builder := psql.
		Select(videoColumns, "COUNT(*) OVER() AS total_count").
		From("videos").
		Where(squirrel.Eq{"status": params.Status})

	if params.Platform != "" {
		builder = builder.Where(squirrel.Eq{"platform": params.Platform})
	}
	if params.Tag != "" {
		builder = builder.Where("tags @> ?::jsonb", fmt.Sprintf(`[%q]`, params.Tag))
	}

	switch params.Sort {
	case "popular":
		builder = builder.OrderBy("view_count DESC", "created_at DESC")
	default:
		builder = builder.OrderBy("created_at DESC")
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	builder = builder.Limit(uint64(limit))
	if params.Offset > 0 {
		builder = builder.Offset(uint64(params.Offset))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*ListVideosRow
	for rows.Next() {
		var r ListVideosRow
		err := rows.Scan(
			&r.ID, &r.Title, &r.DisplayTitle, &r.Tags, &r.Slug, &r.Description, &r.SourceURL,
			&r.EmbedURL, &r.Platform, &r.ThumbnailURL, &r.OriginalAuthor, &r.OriginalAuthorURL,
			&r.ViewCount, &r.Status, &r.SubmittedBy, &r.CreatedAt, &r.UpdatedAt,
			&r.TotalCount,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}
