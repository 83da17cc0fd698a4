package userrepo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mert-chat/internal/domain/user"
	"mert-chat/internal/infrastructure/database/entities"
	"mert-chat/internal/utils/platformerrors"
)

// PostgresRepository persists user profiles via GORM.
type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ user.Repository = (*PostgresRepository)(nil)

func (r *PostgresRepository) FindByUserID(ctx context.Context, userID string) (*user.Profile, error) {
	var rows []entities.UserProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Limit(1).Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeInternal,
			"find user profile", err, "0b2d4f6a-8c1e-4a3b-9d5f-7b9c1d3e5f11")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].EtoD(), nil
}

// CreateIfAbsent relies on the unique user_id index; a conflicting insert is a no-op.
func (r *PostgresRepository) CreateIfAbsent(ctx context.Context, profile *user.Profile) (bool, error) {
	row := entities.NewUserProfile(profile)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(row)
	if result.Error != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeInternal,
			"create user profile", result.Error, "1c3e5a7b-9d2f-4b4c-8e6a-8c0d2e4f6a12")
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	profile.ID = row.ID
	return true, nil
}

func (r *PostgresRepository) TouchLastActive(ctx context.Context, userID string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.UserProfile{}).
		Where("user_id = ?", userID).
		Update("last_active", at)
	if result.Error != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeInternal,
			"touch last active", result.Error, "2d4f6b8c-0e3a-4c5d-9f7b-9d1e3f5a7b13")
	}
	return result.RowsAffected > 0, nil
}
