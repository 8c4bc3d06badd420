package repository

import (
	"context"
	"errors"

	constant "github.com/SeakMengs/ConfPortal/internal/constant"
	"github.com/SeakMengs/ConfPortal/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	*baseRepository
}

func (ur UserRepository) GetById(ctx context.Context, tx *gorm.DB, userId string) (*model.User, error) {
	ur.logger.Debugf("Get user by id: %s \n", userId)

	db := ur.getDB(tx)
	var user *model.User

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userId).First(&user).Error; err != nil {
		return user, err
	}

	return user, nil
}

func (ur *UserRepository) Create(ctx context.Context, tx *gorm.DB, newUser *model.User) error {
	ur.logger.Debugf("Create user with data: %v \n", newUser)

	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if newUser.Role == "" {
		newUser.Role = constant.RoleAuthor
	}

	if err := db.WithContext(ctx).Model(&model.User{}).Create(newUser).Error; err != nil {
		return err
	}

	return nil
}

// Sync upserts a user coming from the identity provider, keyed by id. Profile
// fields and role follow the token on every call.
func (ur *UserRepository) Sync(ctx context.Context, tx *gorm.DB, user *model.User) error {
	ur.logger.Debugf("Sync user from identity: %s \n", user.ID)

	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if user.ID == "" {
		return errors.New("user id is required")
	}

	if user.Role == "" {
		user.Role = constant.RoleAuthor
	}

	return db.WithContext(ctx).Model(&model.User{}).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "first_name", "last_name", "role", "updated_at"}),
	}).Create(user).Error
}
