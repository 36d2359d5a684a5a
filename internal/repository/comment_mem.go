package repository

import (
	"context"
	"time"

	"agora/internal/memstore"
	"agora/internal/models"
)

type memCommentRepository struct {
	engine *memstore.Engine
	idGen  IDGenerator
}

// NewMemCommentRepository returns a CommentRepository backed by the in-memory engine.
func NewMemCommentRepository(engine *memstore.Engine, idGen IDGenerator) CommentRepository {
	if idGen == nil {
		idGen = DefaultIDGenerator
	}
	return &memCommentRepository{engine: engine, idGen: idGen}
}

func (r *memCommentRepository) Add(ctx context.Context, in NewComment) (*models.AddedComment, error) {
	res, err := r.engine.Exec(memstore.InsertComment{
		ID:        "comment-" + r.idGen(),
		Content:   in.Content,
		Date:      time.Now().UTC(),
		ThreadID:  in.ThreadID,
		UserID:    in.UserID,
		Returning: true,
	})
	if err != nil {
		return nil, models.NewUnsupportedOperationError(err)
	}
	row := res.Rows[0]
	return &models.AddedComment{
		ID:      rowString(row, "id"),
		Content: rowString(row, "content"),
		Owner:   rowString(row, "owner"),
	}, nil
}

func (r *memCommentRepository) GetByThreadID(ctx context.Context, threadID string) ([]models.CommentRow, error) {
	res, err := r.engine.Exec(memstore.SelectCommentsByThread{ThreadID: threadID})
	if err != nil {
		return nil, models.NewUnsupportedOperationError(err)
	}
	rows := make([]models.CommentRow, 0, len(res.Rows))
	for _, row := range res.Rows {
		rows = append(rows, commentRowFromMem(row))
	}
	return rows, nil
}

func (r *memCommentRepository) VerifyCommentExists(ctx context.Context, id string) error {
	res, err := r.engine.Exec(memstore.SelectCommentByID{ID: id})
	if err != nil {
		return models.NewUnsupportedOperationError(err)
	}
	if res.RowCount == 0 {
		return models.NewNotFoundError("Comment", id)
	}
	return nil
}

func (r *memCommentRepository) VerifyCommentOwner(ctx context.Context, id, userID string) error {
	res, err := r.engine.Exec(memstore.SelectCommentField{Field: "user_id", ID: id})
	if err != nil {
		return models.NewUnsupportedOperationError(err)
	}
	if res.RowCount == 0 {
		return models.NewNotFoundError("Comment", id)
	}
	if rowString(res.Rows[0], "user_id") != userID {
		return models.NewUnauthorizedError("You do not own this comment")
	}
	return nil
}

func (r *memCommentRepository) VerifyCommentInThread(ctx context.Context, id, threadID string) error {
	res, err := r.engine.Exec(memstore.CommentInThread{ID: id, ThreadID: threadID})
	if err != nil {
		return models.NewUnsupportedOperationError(err)
	}
	if res.RowCount == 0 {
		return models.NewNotFoundError("Comment", id)
	}
	return nil
}

func (r *memCommentRepository) SoftDeleteByID(ctx context.Context, id string) error {
	res, err := r.engine.Exec(memstore.SoftDeleteComment{ID: id})
	if err != nil {
		return models.NewUnsupportedOperationError(err)
	}
	if res.RowCount == 0 {
		return models.NewNotFoundError("Comment", id)
	}
	return nil
}

func (r *memCommentRepository) HasUserLikedComment(ctx context.Context, commentID, userID string) (bool, error) {
	res, err := r.engine.Exec(memstore.CommentLikeExists{CommentID: commentID, UserID: userID})
	if err != nil {
		return false, models.NewUnsupportedOperationError(err)
	}
	return res.RowCount > 0, nil
}

func (r *memCommentRepository) AddCommentLike(ctx context.Context, commentID, userID string) error {
	_, err := r.engine.Exec(memstore.InsertCommentLike{
		ID:        "commentlike-" + r.idGen(),
		CommentID: commentID,
		UserID:    userID,
	})
	if err != nil {
		return models.NewUnsupportedOperationError(err)
	}
	return nil
}

func (r *memCommentRepository) RemoveCommentLike(ctx context.Context, commentID, userID string) error {
	_, err := r.engine.Exec(memstore.DeleteCommentLike{CommentID: commentID, UserID: userID})
	if err != nil {
		return models.NewUnsupportedOperationError(err)
	}
	return nil
}
