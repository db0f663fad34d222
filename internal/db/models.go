package db

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jmorf/pranks/pkg/utils/passwords"
)

// UserRole controls what a signed-in user may do. Admins moderate; everyone
// else submits and engages.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// ModerationStatus is the review state shared by videos and comments.
type ModerationStatus string

const (
	StatusPending  ModerationStatus = "pending"
	StatusApproved ModerationStatus = "approved"
	StatusRejected ModerationStatus = "rejected"
)

func (s ModerationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type User struct {
	ID        pgtype.UUID
	Email     string
	Name      string
	Password  passwords.Password
	Role      UserRole
	Enabled   bool
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

// Video is the persisted canonical metadata record. Everything except Status
// and ViewCount is immutable after ingestion.
type Video struct {
	ID                pgtype.UUID
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
	ViewCount         int64
	Status            ModerationStatus
	SubmittedBy       pgtype.UUID
	CreatedAt         pgtype.Timestamptz
	UpdatedAt         pgtype.Timestamptz
}

type Comment struct {
	ID         pgtype.UUID
	VideoID    pgtype.UUID
	AuthorID   pgtype.UUID
	AuthorName string
	Content    string
	Status     ModerationStatus
	IPAddress  string
	UserAgent  string
	CreatedAt  pgtype.Timestamptz
}

type Like struct {
	ID        pgtype.UUID
	VideoID   pgtype.UUID
	UserID    pgtype.UUID
	CreatedAt pgtype.Timestamptz
}
