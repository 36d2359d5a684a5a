package repository

import (
	"context"
	"errors"
	"time"

	"agora/internal/models"
	"agora/internal/observability"

	"gorm.io/gorm"
)

type commentRepository struct {
	db    *gorm.DB
	idGen IDGenerator
}

// NewCommentRepository returns a PostgreSQL-backed CommentRepository.
func NewCommentRepository(db *gorm.DB, idGen IDGenerator) CommentRepository {
	if idGen == nil {
		idGen = DefaultIDGenerator
	}
	return &commentRepository{db: db, idGen: idGen}
}

func (r *commentRepository) Add(ctx context.Context, in NewComment) (*models.AddedComment, error) {
	comment := models.Comment{
		ID:       "comment-" + r.idGen(),
		Content:  in.Content,
		Date:     time.Now().UTC(),
		ThreadID: in.ThreadID,
		UserID:   in.UserID,
	}
	if err := r.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &models.AddedComment{ID: comment.ID, Content: comment.Content, Owner: comment.UserID}, nil
}

// commentRowScan is the join projection of a comment with author and likes.
type commentRowScan struct {
	ID        string
	Username  string
	Date      time.Time
	Content   string
	IsDeleted bool
	LikeCount int64
}

func (r *commentRepository) GetByThreadID(ctx context.Context, threadID string) ([]models.CommentRow, error) {
	defer observability.ObserveQuery("select_by_thread", "comments", time.Now())

	var scans []commentRowScan
	err := r.db.WithContext(ctx).
		Table("comments").
		Select(`comments.id, users.username, comments.date, comments.content, comments.is_deleted,
			COALESCE(like_counts.like_count, 0) AS like_count`).
		Joins("JOIN users ON comments.user_id = users.id").
		Joins(`LEFT JOIN (
			SELECT comment_id, COUNT(*) AS like_count
			FROM comment_likes
			GROUP BY comment_id
		) AS like_counts ON like_counts.comment_id = comments.id`).
		Where("comments.thread_id = ?", threadID).
		Order("comments.date ASC").
		Scan(&scans).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	rows := make([]models.CommentRow, 0, len(scans))
	for _, s := range scans {
		rows = append(rows, models.CommentRow{
			ID:        s.ID,
			Username:  s.Username,
			Date:      s.Date,
			Content:   s.Content,
			IsDeleted: s.IsDeleted,
			LikeCount: s.LikeCount,
		})
	}
	return rows, nil
}

func (r *commentRepository) VerifyCommentExists(ctx context.Context, id string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return models.NewInternalError(err)
	}
	if count == 0 {
		return models.NewNotFoundError("Comment", id)
	}
	return nil
}

func (r *commentRepository) VerifyCommentOwner(ctx context.Context, id, userID string) error {
	var comment models.Comment
	err := r.db.WithContext(ctx).Select("user_id").Where("id = ?", id).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Comment", id)
		}
		return models.NewInternalError(err)
	}
	if comment.UserID != userID {
		return models.NewUnauthorizedError("You do not own this comment")
	}
	return nil
}

func (r *commentRepository) VerifyCommentInThread(ctx context.Context, id, threadID string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ? AND thread_id = ?", id, threadID).
		Count(&count).Error; err != nil {
		return models.NewInternalError(err)
	}
	if count == 0 {
		return models.NewNotFoundError("Comment", id)
	}
	return nil
}

func (r *commentRepository) SoftDeleteByID(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ?", id).
		Update("is_deleted", true)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Comment", id)
	}
	return nil
}

func (r *commentRepository) HasUserLikedComment(ctx context.Context, commentID, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CommentLike{}).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *commentRepository) AddCommentLike(ctx context.Context, commentID, userID string) error {
	like := models.CommentLike{
		ID:        "commentlike-" + r.idGen(),
		CommentID: commentID,
		UserID:    userID,
	}
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) RemoveCommentLike(ctx context.Context, commentID, userID string) error {
	if err := r.db.WithContext(ctx).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Delete(&models.CommentLike{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
