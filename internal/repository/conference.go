package repository

import (
	"context"

	constant "github.com/SeakMengs/ConfPortal/internal/constant"
	"github.com/SeakMengs/ConfPortal/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConferenceRepository struct {
	*baseRepository
}

func (cr ConferenceRepository) Create(ctx context.Context, tx *gorm.DB, conference *model.Conference) error {
	cr.logger.Debugf("Create conference with data: %v \n", conference)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.Conference{}).Omit("Organizer").Create(conference).Error
}

func (cr ConferenceRepository) GetById(ctx context.Context, tx *gorm.DB, id string) (*model.Conference, error) {
	cr.logger.Debugf("Get conference by id: %s \n", id)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var conference model.Conference
	if err := db.WithContext(ctx).Model(&model.Conference{}).Where("id = ?", id).First(&conference).Error; err != nil {
		return nil, err
	}

	return &conference, nil
}

// GetByIdForUpdate locks the conference row until tx ends. Agenda writers
// serialize on it so room checks see every committed slot.
func (cr ConferenceRepository) GetByIdForUpdate(ctx context.Context, tx *gorm.DB, id string) (*model.Conference, error) {
	cr.logger.Debugf("Get conference for update by id: %s \n", id)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var conference model.Conference
	if err := db.WithContext(ctx).Model(&model.Conference{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&conference).Error; err != nil {
		return nil, err
	}

	return &conference, nil
}

func (cr ConferenceRepository) List(ctx context.Context, tx *gorm.DB, page, pageSize uint) ([]model.Conference, int64, error) {
	cr.logger.Debugf("List conferences page: %d, pageSize: %d \n", page, pageSize)

	db := cr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var total int64
	if err := db.WithContext(ctx).Model(&model.Conference{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	conferences := []model.Conference{}
	if err := db.WithContext(ctx).Model(&model.Conference{}).
		Order("starts_on desc").
		Offset(offset(page, pageSize)).Limit(limit(pageSize)).
		Find(&conferences).Error; err != nil {
		return nil, 0, err
	}

	return conferences, total, nil
}
