package service

import (
	"context"

	"agora/internal/cache"
	"agora/internal/models"
	"agora/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	threadRepo  repository.ThreadRepository
}

type AddCommentInput struct {
	Content  string
	ThreadID string
	UserID   string
}

func NewCommentService(commentRepo repository.CommentRepository, threadRepo repository.ThreadRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, threadRepo: threadRepo}
}

func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.AddedComment, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if err := s.threadRepo.VerifyThreadExists(ctx, in.ThreadID); err != nil {
		return nil, err
	}

	added, err := s.commentRepo.Add(ctx, repository.NewComment{
		Content:  in.Content,
		ThreadID: in.ThreadID,
		UserID:   in.UserID,
	})
	if err != nil {
		return nil, err
	}

	cache.Delete(ctx, cache.ThreadDetailKey(in.ThreadID))
	return added, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, threadID, commentID, userID string) error {
	if err := s.threadRepo.VerifyThreadExists(ctx, threadID); err != nil {
		return err
	}
	if err := s.commentRepo.VerifyCommentInThread(ctx, commentID, threadID); err != nil {
		return err
	}
	if err := s.commentRepo.VerifyCommentOwner(ctx, commentID, userID); err != nil {
		return err
	}
	if err := s.commentRepo.SoftDeleteByID(ctx, commentID); err != nil {
		return err
	}

	cache.Delete(ctx, cache.ThreadDetailKey(threadID))
	return nil
}

// ToggleCommentLike flips the like state of a comment for a user and reports
// the resulting state: true when the call added a like.
func (s *CommentService) ToggleCommentLike(ctx context.Context, threadID, commentID, userID string) (bool, error) {
	if err := s.threadRepo.VerifyThreadExists(ctx, threadID); err != nil {
		return false, err
	}
	if err := s.commentRepo.VerifyCommentInThread(ctx, commentID, threadID); err != nil {
		return false, err
	}

	liked, err := s.commentRepo.HasUserLikedComment(ctx, commentID, userID)
	if err != nil {
		return false, err
	}

	if liked {
		err = s.commentRepo.RemoveCommentLike(ctx, commentID, userID)
	} else {
		err = s.commentRepo.AddCommentLike(ctx, commentID, userID)
	}
	if err != nil {
		return false, err
	}

	cache.Delete(ctx, cache.ThreadDetailKey(threadID))
	return !liked, nil
}
