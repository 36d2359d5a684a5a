// Package seed provides helpers to create test and demo data for the
// application. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"math/rand"
	"time"

	"agora/internal/models"
	"agora/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Factory builds domain entities and persists them through the repository
// layer, so the same presets work against Postgres and the in-memory store.
type Factory struct {
	userRepo    repository.UserRepository
	threadRepo  repository.ThreadRepository
	commentRepo repository.CommentRepository
	replyRepo   repository.ReplyRepository
	rng         *rand.Rand
}

// NewFactory creates a Factory bound to the provided repositories.
func NewFactory(
	userRepo repository.UserRepository,
	threadRepo repository.ThreadRepository,
	commentRepo repository.CommentRepository,
	replyRepo repository.ReplyRepository,
) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		userRepo:    userRepo,
		threadRepo:  threadRepo,
		commentRepo: commentRepo,
		replyRepo:   replyRepo,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a fake user and returns it. The password is always
// "password" hashed with bcrypt, handy for manual login during development.
func (f *Factory) CreateUser(ctx context.Context) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		ID:       "user-" + uuid.NewString(),
		Username: gofakeit.Username(),
		Password: string(hashed),
		FullName: gofakeit.Name(),
	}
	if err := f.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateThread persists a fake thread owned by the given user.
func (f *Factory) CreateThread(ctx context.Context, owner *models.User) (*models.AddedThread, error) {
	return f.threadRepo.Create(ctx, repository.NewThread{
		Title:   gofakeit.Sentence(5),
		Body:    gofakeit.Paragraph(1, 3, 5, "\n"),
		OwnerID: owner.ID,
	})
}

// CreateComment persists a fake comment on the given thread.
func (f *Factory) CreateComment(ctx context.Context, threadID string, author *models.User) (*models.AddedComment, error) {
	return f.commentRepo.Add(ctx, repository.NewComment{
		Content:  gofakeit.Sentence(8),
		ThreadID: threadID,
		UserID:   author.ID,
	})
}

// CreateReply persists a fake reply to the given comment.
func (f *Factory) CreateReply(ctx context.Context, commentID string, author *models.User) (*models.AddedReply, error) {
	return f.replyRepo.Add(ctx, repository.NewReply{
		Content:   gofakeit.Sentence(6),
		CommentID: commentID,
		UserID:    author.ID,
	})
}

// LikeComment records a like by the given user if they have not liked the
// comment yet.
func (f *Factory) LikeComment(ctx context.Context, commentID string, user *models.User) error {
	liked, err := f.commentRepo.HasUserLikedComment(ctx, commentID, user.ID)
	if err != nil {
		return err
	}
	if liked {
		return nil
	}
	return f.commentRepo.AddCommentLike(ctx, commentID, user.ID)
}

func (f *Factory) pick(users []*models.User) *models.User {
	return users[f.rng.Intn(len(users))]
}
