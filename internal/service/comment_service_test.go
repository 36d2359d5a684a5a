package service

import (
	"context"
	"testing"
	"time"

	"agora/internal/memstore"
	"agora/internal/models"
	"agora/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memEnv wires services against the in-memory engine so tests exercise the
// real repository and engine code paths.
type memEnv struct {
	engine      *memstore.Engine
	userRepo    repository.UserRepository
	threadRepo  repository.ThreadRepository
	commentRepo repository.CommentRepository
	replyRepo   repository.ReplyRepository
}

func newMemEnv(t *testing.T) *memEnv {
	t.Helper()
	engine := memstore.NewEngine(memstore.NewTableStore())
	return &memEnv{
		engine:      engine,
		userRepo:    repository.NewMemUserRepository(engine),
		threadRepo:  repository.NewMemThreadRepository(engine, nil),
		commentRepo: repository.NewMemCommentRepository(engine, nil),
		replyRepo:   repository.NewMemReplyRepository(engine, nil),
	}
}

func (env *memEnv) seedUserAndThread(t *testing.T, ctx context.Context) (userID, threadID string) {
	t.Helper()
	user := &models.User{ID: "user-1", Username: "alice", Password: "x", FullName: "Alice"}
	require.NoError(t, env.userRepo.Create(ctx, user))

	thread, err := env.threadRepo.Create(ctx, repository.NewThread{
		Title: "Topic", Body: "Body", OwnerID: user.ID,
	})
	require.NoError(t, err)
	return user.ID, thread.ID
}

func (env *memEnv) likeCountOf(t *testing.T, ctx context.Context, threadID, commentID string) int {
	t.Helper()
	rows, err := env.commentRepo.GetByThreadID(ctx, threadID)
	require.NoError(t, err)
	for _, row := range rows {
		if row.ID == commentID {
			return normalizeLikeCount(row.LikeCount)
		}
	}
	t.Fatalf("comment %s not found in thread %s", commentID, threadID)
	return 0
}

func TestCommentService_AddComment(t *testing.T) {
	t.Parallel()

	env := newMemEnv(t)
	ctx := context.Background()
	userID, threadID := env.seedUserAndThread(t, ctx)

	svc := NewCommentService(env.commentRepo, env.threadRepo)

	t.Run("empty content", func(t *testing.T) {
		_, err := svc.AddComment(ctx, AddCommentInput{ThreadID: threadID, UserID: userID})
		assertValidationError(t, err)
	})

	t.Run("missing thread", func(t *testing.T) {
		_, err := svc.AddComment(ctx, AddCommentInput{
			Content: "hi", ThreadID: "thread-404", UserID: userID,
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("success", func(t *testing.T) {
		added, err := svc.AddComment(ctx, AddCommentInput{
			Content: "hello", ThreadID: threadID, UserID: userID,
		})
		require.NoError(t, err)
		assert.Equal(t, "hello", added.Content)
		assert.Equal(t, userID, added.Owner)
	})
}

func TestCommentService_DeleteComment(t *testing.T) {
	t.Parallel()

	env := newMemEnv(t)
	ctx := context.Background()
	userID, threadID := env.seedUserAndThread(t, ctx)

	svc := NewCommentService(env.commentRepo, env.threadRepo)
	added, err := svc.AddComment(ctx, AddCommentInput{Content: "hi", ThreadID: threadID, UserID: userID})
	require.NoError(t, err)

	t.Run("not the owner", func(t *testing.T) {
		err := svc.DeleteComment(ctx, threadID, added.ID, "user-2")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	})

	t.Run("comment from another thread", func(t *testing.T) {
		other, err := env.threadRepo.Create(ctx, repository.NewThread{
			Title: "Other", Body: "Body", OwnerID: userID,
		})
		require.NoError(t, err)

		err = svc.DeleteComment(ctx, other.ID, added.ID, userID)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("soft delete keeps the row", func(t *testing.T) {
		require.NoError(t, svc.DeleteComment(ctx, threadID, added.ID, userID))

		rows, err := env.commentRepo.GetByThreadID(ctx, threadID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.True(t, rows[0].IsDeleted)
		assert.Equal(t, "hi", rows[0].Content)
	})
}

func TestCommentService_ToggleCommentLike(t *testing.T) {
	t.Parallel()

	env := newMemEnv(t)
	ctx := context.Background()
	userID, threadID := env.seedUserAndThread(t, ctx)

	svc := NewCommentService(env.commentRepo, env.threadRepo)
	added, err := svc.AddComment(ctx, AddCommentInput{Content: "hi", ThreadID: threadID, UserID: userID})
	require.NoError(t, err)

	liked, err := svc.ToggleCommentLike(ctx, threadID, added.ID, userID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, env.likeCountOf(t, ctx, threadID, added.ID))

	// A second toggle by the same user takes the like back.
	liked, err = svc.ToggleCommentLike(ctx, threadID, added.ID, userID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, env.likeCountOf(t, ctx, threadID, added.ID))

	// Odd number of toggles leaves exactly one like.
	for i := 0; i < 3; i++ {
		_, err = svc.ToggleCommentLike(ctx, threadID, added.ID, userID)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, env.likeCountOf(t, ctx, threadID, added.ID))
}

func TestCommentService_LikesFromDistinctUsersAccumulate(t *testing.T) {
	t.Parallel()

	env := newMemEnv(t)
	ctx := context.Background()
	userID, threadID := env.seedUserAndThread(t, ctx)

	other := &models.User{ID: "user-2", Username: "bob", Password: "x", FullName: "Bob"}
	require.NoError(t, env.userRepo.Create(ctx, other))

	svc := NewCommentService(env.commentRepo, env.threadRepo)
	added, err := svc.AddComment(ctx, AddCommentInput{Content: "hi", ThreadID: threadID, UserID: userID})
	require.NoError(t, err)

	_, err = svc.ToggleCommentLike(ctx, threadID, added.ID, userID)
	require.NoError(t, err)
	_, err = svc.ToggleCommentLike(ctx, threadID, added.ID, other.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, env.likeCountOf(t, ctx, threadID, added.ID))

	_, err = svc.ToggleCommentLike(ctx, threadID, added.ID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, env.likeCountOf(t, ctx, threadID, added.ID))
}

func TestCommentService_DeletedCommentStillVisibleInDetail(t *testing.T) {
	t.Parallel()

	env := newMemEnv(t)
	ctx := context.Background()
	userID, threadID := env.seedUserAndThread(t, ctx)

	commentSvc := NewCommentService(env.commentRepo, env.threadRepo)
	threadSvc := NewThreadService(env.threadRepo, env.commentRepo, env.replyRepo)

	added, err := commentSvc.AddComment(ctx, AddCommentInput{Content: "visible once", ThreadID: threadID, UserID: userID})
	require.NoError(t, err)
	require.NoError(t, commentSvc.DeleteComment(ctx, threadID, added.ID, userID))

	detail, err := threadSvc.GetThreadDetail(ctx, threadID)
	require.NoError(t, err)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, DeletedCommentContent, detail.Comments[0].Content)
	assert.True(t, detail.Comments[0].IsDeleted)

	// Date from the engine is a time.Time and must serialize as RFC 3339.
	_, parseErr := time.Parse(time.RFC3339Nano, detail.Comments[0].Date)
	assert.NoError(t, parseErr)
}
