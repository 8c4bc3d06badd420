package repository

import (
	"context"

	constant "github.com/SeakMengs/ConfPortal/internal/constant"
	"github.com/SeakMengs/ConfPortal/internal/model"
	"gorm.io/gorm"
)

type StatusHistoryRepository struct {
	*baseRepository
}

func (shr StatusHistoryRepository) Create(ctx context.Context, tx *gorm.DB, history *model.PaperStatusHistory) error {
	shr.logger.Debugf("Record paper status change: %v \n", history)

	db := shr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.PaperStatusHistory{}).Create(history).Error
}

func (shr StatusHistoryRepository) GetByPaperId(ctx context.Context, tx *gorm.DB, paperId string) ([]model.PaperStatusHistory, error) {
	shr.logger.Debugf("Get paper status history by paperId: %s", paperId)

	db := shr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	history := []model.PaperStatusHistory{}
	if err := db.WithContext(ctx).Model(&model.PaperStatusHistory{}).
		Where("paper_id = ?", paperId).
		Order("changed_at asc").Find(&history).Error; err != nil {
		return history, err
	}

	return history, nil
}
