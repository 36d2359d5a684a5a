package repository

import (
	"context"
	"errors"
	"time"

	"agora/internal/models"
	"agora/internal/observability"

	"gorm.io/gorm"
)

type replyRepository struct {
	db    *gorm.DB
	idGen IDGenerator
}

// NewReplyRepository returns a PostgreSQL-backed ReplyRepository.
func NewReplyRepository(db *gorm.DB, idGen IDGenerator) ReplyRepository {
	if idGen == nil {
		idGen = DefaultIDGenerator
	}
	return &replyRepository{db: db, idGen: idGen}
}

func (r *replyRepository) Add(ctx context.Context, in NewReply) (*models.AddedReply, error) {
	reply := models.Reply{
		ID:        "reply-" + r.idGen(),
		Content:   in.Content,
		CommentID: in.CommentID,
		UserID:    in.UserID,
		Date:      time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&reply).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &models.AddedReply{ID: reply.ID, Content: reply.Content, Owner: reply.UserID}, nil
}

// replyRowScan is the join projection of a reply with its author.
type replyRowScan struct {
	ID        string
	CommentID string
	Content   string
	Date      time.Time
	IsDeleted bool
	Username  string
}

func (r *replyRepository) GetByThreadID(ctx context.Context, threadID string) ([]models.ReplyRow, error) {
	defer observability.ObserveQuery("select_by_thread", "replies", time.Now())

	var scans []replyRowScan
	err := r.db.WithContext(ctx).
		Table("replies").
		Select("replies.id, replies.comment_id, replies.content, replies.date, replies.is_deleted, users.username").
		Joins("JOIN comments ON comments.id = replies.comment_id").
		Joins("JOIN users ON users.id = replies.user_id").
		Where("comments.thread_id = ?", threadID).
		Order("replies.date ASC").
		Scan(&scans).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return replyRowsFromScans(scans), nil
}

func (r *replyRepository) GetByCommentIDs(ctx context.Context, commentIDs []string) ([]models.ReplyRow, error) {
	if len(commentIDs) == 0 {
		return nil, nil
	}

	var scans []replyRowScan
	err := r.db.WithContext(ctx).
		Table("replies").
		Select("replies.id, replies.comment_id, replies.content, replies.date, replies.is_deleted, users.username").
		Joins("LEFT JOIN users ON users.id = replies.user_id").
		Where("replies.comment_id IN ?", commentIDs).
		Order("replies.date ASC").
		Scan(&scans).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return replyRowsFromScans(scans), nil
}

func (r *replyRepository) VerifyReplyExists(ctx context.Context, id string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Reply{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return models.NewInternalError(err)
	}
	if count == 0 {
		return models.NewNotFoundError("Reply", id)
	}
	return nil
}

func (r *replyRepository) VerifyReplyOwner(ctx context.Context, id, userID string) error {
	var reply models.Reply
	err := r.db.WithContext(ctx).Select("user_id").Where("id = ?", id).First(&reply).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Reply", id)
		}
		return models.NewInternalError(err)
	}
	if reply.UserID != userID {
		return models.NewUnauthorizedError("You do not own this reply")
	}
	return nil
}

func (r *replyRepository) SoftDeleteByID(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&models.Reply{}).
		Where("id = ?", id).
		Update("is_deleted", true)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Reply", id)
	}
	return nil
}

func replyRowsFromScans(scans []replyRowScan) []models.ReplyRow {
	rows := make([]models.ReplyRow, 0, len(scans))
	for _, s := range scans {
		rows = append(rows, models.ReplyRow{
			ID:        s.ID,
			CommentID: s.CommentID,
			Content:   s.Content,
			Date:      s.Date,
			IsDeleted: s.IsDeleted,
			Username:  s.Username,
		})
	}
	return rows
}
