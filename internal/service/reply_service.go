package service

import (
	"context"

	"agora/internal/cache"
	"agora/internal/models"
	"agora/internal/repository"
)

type ReplyService struct {
	replyRepo   repository.ReplyRepository
	commentRepo repository.CommentRepository
	threadRepo  repository.ThreadRepository
}

type AddReplyInput struct {
	Content   string
	ThreadID  string
	CommentID string
	UserID    string
}

func NewReplyService(
	replyRepo repository.ReplyRepository,
	commentRepo repository.CommentRepository,
	threadRepo repository.ThreadRepository,
) *ReplyService {
	return &ReplyService{
		replyRepo:   replyRepo,
		commentRepo: commentRepo,
		threadRepo:  threadRepo,
	}
}

func (s *ReplyService) AddReply(ctx context.Context, in AddReplyInput) (*models.AddedReply, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if err := s.threadRepo.VerifyThreadExists(ctx, in.ThreadID); err != nil {
		return nil, err
	}
	if err := s.commentRepo.VerifyCommentInThread(ctx, in.CommentID, in.ThreadID); err != nil {
		return nil, err
	}

	added, err := s.replyRepo.Add(ctx, repository.NewReply{
		Content:   in.Content,
		CommentID: in.CommentID,
		UserID:    in.UserID,
	})
	if err != nil {
		return nil, err
	}

	cache.Delete(ctx, cache.ThreadDetailKey(in.ThreadID))
	return added, nil
}

func (s *ReplyService) DeleteReply(ctx context.Context, threadID, commentID, replyID, userID string) error {
	if err := s.threadRepo.VerifyThreadExists(ctx, threadID); err != nil {
		return err
	}
	if err := s.commentRepo.VerifyCommentInThread(ctx, commentID, threadID); err != nil {
		return err
	}
	if err := s.replyRepo.VerifyReplyExists(ctx, replyID); err != nil {
		return err
	}
	if err := s.replyRepo.VerifyReplyOwner(ctx, replyID, userID); err != nil {
		return err
	}
	if err := s.replyRepo.SoftDeleteByID(ctx, replyID); err != nil {
		return err
	}

	cache.Delete(ctx, cache.ThreadDetailKey(threadID))
	return nil
}
