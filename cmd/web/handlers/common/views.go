package common

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jmorf/pranks/internal/db"
)

// VideoResponse is the JSON shape for a video record.
type VideoResponse struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	DisplayTitle      string   `json:"displayTitle"`
	Tags              []string `json:"tags"`
	Slug              string   `json:"slug"`
	Description       string   `json:"description,omitempty"`
	SourceURL         string   `json:"sourceUrl"`
	EmbedURL          string   `json:"embedUrl"`
	Platform          string   `json:"platform"`
	ThumbnailURL      string   `json:"thumbnailUrl"`
	OriginalAuthor    string   `json:"originalAuthor"`
	OriginalAuthorURL string   `json:"originalAuthorUrl,omitempty"`
	ViewCount         int64    `json:"viewCount"`
	Status            string   `json:"status"`
	SubmittedAt       string   `json:"submittedAt,omitempty"`
	SubmittedAgo      string   `json:"submittedAgo,omitempty"`
}

func NewVideoResponse(v *db.Video) VideoResponse {
	resp := VideoResponse{
		ID:                UUIDString(v.ID),
		Title:             v.Title,
		DisplayTitle:      v.DisplayTitle,
		Tags:              v.Tags,
		Slug:              v.Slug,
		Description:       v.Description,
		SourceURL:         v.SourceURL,
		EmbedURL:          v.EmbedURL,
		Platform:          v.Platform,
		ThumbnailURL:      v.ThumbnailURL,
		OriginalAuthor:    v.OriginalAuthor,
		OriginalAuthorURL: v.OriginalAuthorURL,
		ViewCount:         v.ViewCount,
		Status:            string(v.Status),
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if v.CreatedAt.Valid {
		resp.SubmittedAt = v.CreatedAt.Time.UTC().Format(time.RFC3339)
		resp.SubmittedAgo = humanize.Time(v.CreatedAt.Time)
	}
	return resp
}

// CommentResponse is the JSON shape for a comment.
type CommentResponse struct {
	ID        string `json:"id"`
	VideoID   string `json:"videoId"`
	Author    string `json:"author,omitempty"`
	Content   string `json:"content"`
	Status    string `json:"status"`
	PostedAt  string `json:"postedAt,omitempty"`
	PostedAgo string `json:"postedAgo,omitempty"`
}

func NewCommentResponse(cm *db.Comment) CommentResponse {
	resp := CommentResponse{
		ID:      UUIDString(cm.ID),
		VideoID: UUIDString(cm.VideoID),
		Author:  cm.AuthorName,
		Content: cm.Content,
		Status:  string(cm.Status),
	}
	if cm.CreatedAt.Valid {
		resp.PostedAt = cm.CreatedAt.Time.UTC().Format(time.RFC3339)
		resp.PostedAgo = humanize.Time(cm.CreatedAt.Time)
	}
	return resp
}

func UUIDString(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	return uuid.UUID(id.Bytes).String()
}
