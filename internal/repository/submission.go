package repository

import (
	"context"

	constant "github.com/SeakMengs/ConfPortal/internal/constant"
	"github.com/SeakMengs/ConfPortal/internal/model"
	"gorm.io/gorm"
)

type SubmissionRepository struct {
	*baseRepository
}

// Create the submission together with its author rows.
func (sr SubmissionRepository) Create(ctx context.Context, tx *gorm.DB, submission *model.Submission) error {
	sr.logger.Debugf("Create submission for paperId: %s \n", submission.PaperID)

	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.Submission{}).Create(submission).Error
}

func (sr SubmissionRepository) GetByPaperId(ctx context.Context, tx *gorm.DB, paperId string) (*model.Submission, error) {
	sr.logger.Debugf("Get submission by paperId: %s \n", paperId)

	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var submission model.Submission
	if err := db.WithContext(ctx).Model(&model.Submission{}).
		Preload("Authors", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Where("paper_id = ?", paperId).First(&submission).Error; err != nil {
		return nil, err
	}

	return &submission, nil
}

// Touch marks a resubmission.
func (sr SubmissionRepository) Touch(ctx context.Context, tx *gorm.DB, paperId string, values map[string]any) error {
	sr.logger.Debugf("Update submission for paperId: %s with data: %v \n", paperId, values)

	db := sr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.Submission{}).Where("paper_id = ?", paperId).Updates(values).Error
}
