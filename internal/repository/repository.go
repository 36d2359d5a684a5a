// Package repository implements the data access layer for the application.
// Every aggregate has two implementations: a gorm/PostgreSQL one used in
// production and a memstore-backed one that drives the in-memory query
// engine, used as a drop-in substitute in development and tests.
package repository

import (
	"context"

	"agora/internal/models"

	"github.com/google/uuid"
)

// IDGenerator produces the unique suffix for entity ids
// (thread-<id>, comment-<id>, reply-<id>, commentlike-<id>).
type IDGenerator func() string

// DefaultIDGenerator returns random UUID suffixes.
func DefaultIDGenerator() string {
	return uuid.NewString()
}

// NewThread is the input for creating a thread.
type NewThread struct {
	Title   string
	Body    string
	OwnerID string
}

// NewComment is the input for adding a comment to a thread.
type NewComment struct {
	Content  string
	ThreadID string
	UserID   string
}

// NewReply is the input for adding a reply to a comment.
type NewReply struct {
	Content   string
	CommentID string
	UserID    string
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	VerifyAvailableUsername(ctx context.Context, username string) error
}

// ThreadRepository defines persistence operations for threads.
type ThreadRepository interface {
	Create(ctx context.Context, in NewThread) (*models.AddedThread, error)
	// GetDetailByID returns the thread joined with its owner's username.
	GetDetailByID(ctx context.Context, id string) (*models.ThreadRow, error)
	VerifyThreadExists(ctx context.Context, id string) error
}

// CommentRepository defines persistence operations for comments and likes.
type CommentRepository interface {
	Add(ctx context.Context, in NewComment) (*models.AddedComment, error)
	// GetByThreadID returns comments with author usernames and like counts,
	// ascending by date.
	GetByThreadID(ctx context.Context, threadID string) ([]models.CommentRow, error)
	VerifyCommentExists(ctx context.Context, id string) error
	VerifyCommentOwner(ctx context.Context, id, userID string) error
	VerifyCommentInThread(ctx context.Context, id, threadID string) error
	SoftDeleteByID(ctx context.Context, id string) error

	HasUserLikedComment(ctx context.Context, commentID, userID string) (bool, error)
	AddCommentLike(ctx context.Context, commentID, userID string) error
	RemoveCommentLike(ctx context.Context, commentID, userID string) error
}

// ReplyRepository defines persistence operations for replies.
type ReplyRepository interface {
	Add(ctx context.Context, in NewReply) (*models.AddedReply, error)
	// GetByThreadID returns replies for every comment of the thread,
	// with author usernames, ascending by date.
	GetByThreadID(ctx context.Context, threadID string) ([]models.ReplyRow, error)
	GetByCommentIDs(ctx context.Context, commentIDs []string) ([]models.ReplyRow, error)
	VerifyReplyExists(ctx context.Context, id string) error
	VerifyReplyOwner(ctx context.Context, id, userID string) error
	SoftDeleteByID(ctx context.Context, id string) error
}
