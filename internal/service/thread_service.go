package service

import (
	"context"

	"agora/internal/cache"
	"agora/internal/models"
	"agora/internal/observability"
	"agora/internal/repository"
)

type ThreadService struct {
	threadRepo  repository.ThreadRepository
	commentRepo repository.CommentRepository
	replyRepo   repository.ReplyRepository
}

type CreateThreadInput struct {
	Title   string
	Body    string
	OwnerID string
}

func NewThreadService(
	threadRepo repository.ThreadRepository,
	commentRepo repository.CommentRepository,
	replyRepo repository.ReplyRepository,
) *ThreadService {
	return &ThreadService{
		threadRepo:  threadRepo,
		commentRepo: commentRepo,
		replyRepo:   replyRepo,
	}
}

func (s *ThreadService) CreateThread(ctx context.Context, in CreateThreadInput) (*models.AddedThread, error) {
	const maxTitleLen = 150

	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 150 characters)")
	}
	if in.Body == "" {
		return nil, models.NewValidationError("Body is required")
	}

	return s.threadRepo.Create(ctx, repository.NewThread{
		Title:   in.Title,
		Body:    in.Body,
		OwnerID: in.OwnerID,
	})
}

// GetThreadDetail assembles the nested view for a thread, serving from Redis
// when a fresh copy exists. Write paths invalidate the key.
func (s *ThreadService) GetThreadDetail(ctx context.Context, threadID string) (*models.ThreadDetail, error) {
	var detail models.ThreadDetail
	fetched := false

	err := cache.Aside(ctx, cache.ThreadDetailKey(threadID), &detail, cache.ThreadDetailTTL, func() error {
		fetched = true
		assembled, err := s.fetchThreadDetail(ctx, threadID)
		if err != nil {
			return err
		}
		detail = *assembled
		return nil
	})
	if err != nil {
		return nil, err
	}

	outcome := "hit"
	if fetched {
		outcome = "miss"
	}
	observability.ThreadDetailCache.WithLabelValues(outcome).Inc()

	return &detail, nil
}

func (s *ThreadService) fetchThreadDetail(ctx context.Context, threadID string) (*models.ThreadDetail, error) {
	thread, err := s.threadRepo.GetDetailByID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.GetByThreadID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	replies, err := s.replyRepo.GetByThreadID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	return AssembleThreadDetail(thread, comments, replies), nil
}
