package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	userDatamodel "github.com/frahmantamala/permit-management/internal/core/datamodel/user"
	"github.com/frahmantamala/permit-management/internal/user"
	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewRepository(db *sqlx.DB, logger *slog.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var dm userDatamodel.User
	err := r.db.GetContext(ctx, &dm,
		`SELECT id, email, name, password_hash, is_active, created_at, updated_at
		 FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		r.logger.Error("failed to get user", "error", err, "user_id", id)
		return nil, err
	}

	return &user.User{
		ID:        dm.ID,
		Email:     dm.Email,
		Name:      dm.Name,
		IsActive:  dm.IsActive,
		CreatedAt: dm.CreatedAt,
		UpdatedAt: dm.UpdatedAt,
	}, nil
}

func (r *UserRepository) HasPermission(ctx context.Context, userID int64, permission string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*)
		 FROM user_permissions up
		 JOIN permissions p ON p.id = up.permission_id
		 WHERE up.user_id = $1 AND p.name = $2`, userID, permission)
	if err != nil {
		r.logger.Error("failed to check permission", "error", err, "user_id", userID, "permission", permission)
		return false, err
	}
	return count > 0, nil
}
