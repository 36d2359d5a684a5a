package repository

import (
	"context"
	"time"

	"agora/internal/memstore"
	"agora/internal/models"
)

type memReplyRepository struct {
	engine *memstore.Engine
	idGen  IDGenerator
}

// NewMemReplyRepository returns a ReplyRepository backed by the in-memory engine.
func NewMemReplyRepository(engine *memstore.Engine, idGen IDGenerator) ReplyRepository {
	if idGen == nil {
		idGen = DefaultIDGenerator
	}
	return &memReplyRepository{engine: engine, idGen: idGen}
}

func (r *memReplyRepository) Add(ctx context.Context, in NewReply) (*models.AddedReply, error) {
	res, err := r.engine.Exec(memstore.InsertReply{
		ID:        "reply-" + r.idGen(),
		Content:   in.Content,
		CommentID: in.CommentID,
		UserID:    in.UserID,
		Date:      time.Now().UTC(),
		Returning: true,
	})
	if err != nil {
		return nil, models.NewUnsupportedOperationError(err)
	}
	row := res.Rows[0]
	return &models.AddedReply{
		ID:      rowString(row, "id"),
		Content: rowString(row, "content"),
		Owner:   rowString(row, "owner"),
	}, nil
}

func (r *memReplyRepository) GetByThreadID(ctx context.Context, threadID string) ([]models.ReplyRow, error) {
	res, err := r.engine.Exec(memstore.SelectRepliesByThread{ThreadID: threadID})
	if err != nil {
		return nil, models.NewUnsupportedOperationError(err)
	}
	rows := make([]models.ReplyRow, 0, len(res.Rows))
	for _, row := range res.Rows {
		rows = append(rows, replyRowFromMem(row))
	}
	return rows, nil
}

func (r *memReplyRepository) GetByCommentIDs(ctx context.Context, commentIDs []string) ([]models.ReplyRow, error) {
	if len(commentIDs) == 0 {
		return nil, nil
	}
	res, err := r.engine.Exec(memstore.SelectRepliesByCommentIDs{CommentIDs: commentIDs})
	if err != nil {
		return nil, models.NewUnsupportedOperationError(err)
	}
	rows := make([]models.ReplyRow, 0, len(res.Rows))
	for _, row := range res.Rows {
		rows = append(rows, replyRowFromMem(row))
	}
	return rows, nil
}

func (r *memReplyRepository) VerifyReplyExists(ctx context.Context, id string) error {
	res, err := r.engine.Exec(memstore.ReplyExists{ID: id})
	if err != nil {
		return models.NewUnsupportedOperationError(err)
	}
	if res.RowCount == 0 {
		return models.NewNotFoundError("Reply", id)
	}
	return nil
}

func (r *memReplyRepository) VerifyReplyOwner(ctx context.Context, id, userID string) error {
	res, err := r.engine.Exec(memstore.SelectReplyByID{ID: id})
	if err != nil {
		return models.NewUnsupportedOperationError(err)
	}
	if res.RowCount == 0 {
		return models.NewNotFoundError("Reply", id)
	}
	if rowString(res.Rows[0], "user_id") != userID {
		return models.NewUnauthorizedError("You do not own this reply")
	}
	return nil
}

func (r *memReplyRepository) SoftDeleteByID(ctx context.Context, id string) error {
	res, err := r.engine.Exec(memstore.SoftDeleteReply{ID: id})
	if err != nil {
		return models.NewUnsupportedOperationError(err)
	}
	if res.RowCount == 0 {
		return models.NewNotFoundError("Reply", id)
	}
	return nil
}
