package repository

import (
	"context"

	constant "github.com/SeakMengs/ConfPortal/internal/constant"
	"github.com/SeakMengs/ConfPortal/internal/model"
	"gorm.io/gorm"
)

type DecisionRepository struct {
	*baseRepository
}

func (dr DecisionRepository) Create(ctx context.Context, tx *gorm.DB, decision *model.Decision) error {
	dr.logger.Debugf("Create decision with data: %v \n", decision)

	db := dr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.Decision{}).Omit("Organizer").Create(decision).Error
}

func (dr DecisionRepository) GetByPaperId(ctx context.Context, tx *gorm.DB, paperId string) (*model.Decision, error) {
	dr.logger.Debugf("Get decision by paperId: %s \n", paperId)

	db := dr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var decision model.Decision
	if err := db.WithContext(ctx).Model(&model.Decision{}).Where("paper_id = ?", paperId).First(&decision).Error; err != nil {
		return nil, err
	}

	return &decision, nil
}

func (dr DecisionRepository) Update(ctx context.Context, tx *gorm.DB, decisionId string, organizerId string, value constant.DecisionValue, comment string) error {
	dr.logger.Debugf("Update decision with id: %s, value: %s \n", decisionId, value)

	db := dr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	// map so an empty comment still overwrites
	return db.WithContext(ctx).Model(&model.Decision{}).Where("id = ?", decisionId).Updates(map[string]any{
		"value":        value,
		"comment":      comment,
		"organizer_id": organizerId,
	}).Error
}
