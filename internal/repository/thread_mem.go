package repository

import (
	"context"
	"time"

	"agora/internal/memstore"
	"agora/internal/models"
)

type memThreadRepository struct {
	engine *memstore.Engine
	idGen  IDGenerator
}

// NewMemThreadRepository returns a ThreadRepository backed by the in-memory engine.
func NewMemThreadRepository(engine *memstore.Engine, idGen IDGenerator) ThreadRepository {
	if idGen == nil {
		idGen = DefaultIDGenerator
	}
	return &memThreadRepository{engine: engine, idGen: idGen}
}

func (r *memThreadRepository) Create(ctx context.Context, in NewThread) (*models.AddedThread, error) {
	res, err := r.engine.Exec(memstore.InsertThread{
		ID:        "thread-" + r.idGen(),
		Title:     in.Title,
		Body:      in.Body,
		Owner:     in.OwnerID,
		Date:      time.Now().UTC(),
		Returning: true,
	})
	if err != nil {
		return nil, models.NewUnsupportedOperationError(err)
	}
	row := res.Rows[0]
	return &models.AddedThread{
		ID:    rowString(row, "id"),
		Title: rowString(row, "title"),
		Owner: rowString(row, "owner"),
	}, nil
}

func (r *memThreadRepository) GetDetailByID(ctx context.Context, id string) (*models.ThreadRow, error) {
	res, err := r.engine.Exec(memstore.SelectThreadDetail{ID: id})
	if err != nil {
		return nil, models.NewUnsupportedOperationError(err)
	}
	if res.RowCount == 0 {
		return nil, models.NewNotFoundError("Thread", id)
	}
	row := res.Rows[0]
	return &models.ThreadRow{
		ID:       rowString(row, "id"),
		Title:    rowString(row, "title"),
		Body:     rowString(row, "body"),
		Date:     row["date"],
		Username: rowString(row, "username"),
	}, nil
}

func (r *memThreadRepository) VerifyThreadExists(ctx context.Context, id string) error {
	res, err := r.engine.Exec(memstore.ThreadExists{ID: id})
	if err != nil {
		return models.NewUnsupportedOperationError(err)
	}
	if res.RowCount == 0 {
		return models.NewNotFoundError("Thread", id)
	}
	return nil
}
