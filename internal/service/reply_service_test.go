package service

import (
	"context"
	"testing"

	"agora/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyService_AddReply(t *testing.T) {
	t.Parallel()

	env := newMemEnv(t)
	ctx := context.Background()
	userID, threadID := env.seedUserAndThread(t, ctx)

	commentSvc := NewCommentService(env.commentRepo, env.threadRepo)
	comment, err := commentSvc.AddComment(ctx, AddCommentInput{Content: "c", ThreadID: threadID, UserID: userID})
	require.NoError(t, err)

	svc := NewReplyService(env.replyRepo, env.commentRepo, env.threadRepo)

	t.Run("empty content", func(t *testing.T) {
		_, err := svc.AddReply(ctx, AddReplyInput{ThreadID: threadID, CommentID: comment.ID, UserID: userID})
		assertValidationError(t, err)
	})

	t.Run("comment not in thread", func(t *testing.T) {
		_, err := svc.AddReply(ctx, AddReplyInput{
			Content: "r", ThreadID: threadID, CommentID: "comment-404", UserID: userID,
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("success", func(t *testing.T) {
		added, err := svc.AddReply(ctx, AddReplyInput{
			Content: "reply!", ThreadID: threadID, CommentID: comment.ID, UserID: userID,
		})
		require.NoError(t, err)
		assert.Equal(t, "reply!", added.Content)
		assert.Equal(t, userID, added.Owner)
	})
}

func TestReplyService_DeleteReply(t *testing.T) {
	t.Parallel()

	env := newMemEnv(t)
	ctx := context.Background()
	userID, threadID := env.seedUserAndThread(t, ctx)

	commentSvc := NewCommentService(env.commentRepo, env.threadRepo)
	comment, err := commentSvc.AddComment(ctx, AddCommentInput{Content: "c", ThreadID: threadID, UserID: userID})
	require.NoError(t, err)

	svc := NewReplyService(env.replyRepo, env.commentRepo, env.threadRepo)
	reply, err := svc.AddReply(ctx, AddReplyInput{
		Content: "r", ThreadID: threadID, CommentID: comment.ID, UserID: userID,
	})
	require.NoError(t, err)

	t.Run("missing reply", func(t *testing.T) {
		err := svc.DeleteReply(ctx, threadID, comment.ID, "reply-404", userID)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("not the owner", func(t *testing.T) {
		err := svc.DeleteReply(ctx, threadID, comment.ID, reply.ID, "user-2")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
	})

	t.Run("soft delete redacts in detail view", func(t *testing.T) {
		require.NoError(t, svc.DeleteReply(ctx, threadID, comment.ID, reply.ID, userID))

		threadSvc := NewThreadService(env.threadRepo, env.commentRepo, env.replyRepo)
		detail, err := threadSvc.GetThreadDetail(ctx, threadID)
		require.NoError(t, err)
		require.Len(t, detail.Comments, 1)
		require.Len(t, detail.Comments[0].Replies, 1)
		assert.Equal(t, DeletedReplyContent, detail.Comments[0].Replies[0].Content)
	})
}
