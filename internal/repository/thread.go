package repository

import (
	"context"
	"errors"
	"time"

	"agora/internal/models"
	"agora/internal/observability"

	"gorm.io/gorm"
)

type threadRepository struct {
	db    *gorm.DB
	idGen IDGenerator
}

// NewThreadRepository returns a PostgreSQL-backed ThreadRepository.
func NewThreadRepository(db *gorm.DB, idGen IDGenerator) ThreadRepository {
	if idGen == nil {
		idGen = DefaultIDGenerator
	}
	return &threadRepository{db: db, idGen: idGen}
}

func (r *threadRepository) Create(ctx context.Context, in NewThread) (*models.AddedThread, error) {
	owner := in.OwnerID
	thread := models.Thread{
		ID:      "thread-" + r.idGen(),
		Title:   in.Title,
		Body:    in.Body,
		Date:    time.Now().UTC(),
		OwnerID: &owner,
	}
	if err := r.db.WithContext(ctx).Create(&thread).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &models.AddedThread{ID: thread.ID, Title: thread.Title, Owner: owner}, nil
}

// threadDetailScan is the join projection of a thread with its owner.
type threadDetailScan struct {
	ID       string
	Title    string
	Body     string
	Date     time.Time
	Username string
}

func (r *threadRepository) GetDetailByID(ctx context.Context, id string) (*models.ThreadRow, error) {
	defer observability.ObserveQuery("select_detail", "threads", time.Now())

	var row threadDetailScan
	err := r.db.WithContext(ctx).
		Table("threads").
		Select("threads.id, threads.title, threads.body, threads.date, users.username").
		Joins("LEFT JOIN users ON threads.owner = users.id").
		Where("threads.id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Thread", id)
		}
		return nil, models.NewInternalError(err)
	}

	return &models.ThreadRow{
		ID:       row.ID,
		Title:    row.Title,
		Body:     row.Body,
		Date:     row.Date,
		Username: row.Username,
	}, nil
}

func (r *threadRepository) VerifyThreadExists(ctx context.Context, id string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Thread{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return models.NewInternalError(err)
	}
	if count == 0 {
		return models.NewNotFoundError("Thread", id)
	}
	return nil
}
