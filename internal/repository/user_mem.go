package repository

import (
	"context"

	"agora/internal/memstore"
	"agora/internal/models"
)

type memUserRepository struct {
	engine *memstore.Engine
}

// NewMemUserRepository returns a UserRepository backed by the in-memory engine.
func NewMemUserRepository(engine *memstore.Engine) UserRepository {
	return &memUserRepository{engine: engine}
}

func (r *memUserRepository) Create(ctx context.Context, user *models.User) error {
	_, err := r.engine.Exec(memstore.InsertUser{
		ID:       user.ID,
		Username: user.Username,
		Password: user.Password,
		FullName: user.FullName,
	})
	if err != nil {
		return models.NewUnsupportedOperationError(err)
	}
	return nil
}

func (r *memUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	res, err := r.engine.Exec(memstore.SelectUserByID{ID: id})
	if err != nil {
		return nil, models.NewUnsupportedOperationError(err)
	}
	if res.RowCount == 0 {
		return nil, models.NewNotFoundError("User", id)
	}
	row := res.Rows[0]
	return &models.User{
		ID:       rowString(row, "id"),
		Username: rowString(row, "username"),
		Password: rowString(row, "password"),
		FullName: rowString(row, "fullname"),
	}, nil
}

func (r *memUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	idRes, err := r.engine.Exec(memstore.SelectUserField{Field: "id", Username: username})
	if err != nil {
		return nil, models.NewUnsupportedOperationError(err)
	}
	if idRes.RowCount == 0 {
		return nil, models.NewNotFoundError("User", username)
	}
	return r.GetByID(ctx, rowString(idRes.Rows[0], "id"))
}

func (r *memUserRepository) VerifyAvailableUsername(ctx context.Context, username string) error {
	res, err := r.engine.Exec(memstore.SelectUserField{Field: "username", Username: username})
	if err != nil {
		return models.NewUnsupportedOperationError(err)
	}
	if res.RowCount > 0 {
		return models.NewValidationError("Username is not available")
	}
	return nil
}
