package repository

import (
	"context"

	constant "github.com/SeakMengs/ConfPortal/internal/constant"
	"github.com/SeakMengs/ConfPortal/internal/model"
	"gorm.io/gorm"
)

type AgendaRepository struct {
	*baseRepository
}

func (ar AgendaRepository) Create(ctx context.Context, tx *gorm.DB, item *model.AgendaItem) error {
	ar.logger.Debugf("Create agenda item with data: %v \n", item)

	db := ar.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.AgendaItem{}).Omit("Conference", "Paper").Create(item).Error
}

func (ar AgendaRepository) ListByConference(ctx context.Context, tx *gorm.DB, conferenceId string) ([]model.AgendaItem, error) {
	ar.logger.Debugf("List agenda items by conferenceId: %s \n", conferenceId)

	db := ar.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	items := []model.AgendaItem{}
	if err := db.WithContext(ctx).Model(&model.AgendaItem{}).
		Where("conference_id = ?", conferenceId).
		Order("starts_at asc").Order("room asc").
		Find(&items).Error; err != nil {
		return items, err
	}

	return items, nil
}

func (ar AgendaRepository) Delete(ctx context.Context, tx *gorm.DB, conferenceId, itemId string) error {
	ar.logger.Debugf("Delete agenda item with id: %s \n", itemId)

	db := ar.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	result := db.WithContext(ctx).Where("id = ? AND conference_id = ?", itemId, conferenceId).Delete(&model.AgendaItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
