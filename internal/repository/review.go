package repository

import (
	"context"
	"errors"
	"fmt"

	constant "github.com/SeakMengs/ConfPortal/internal/constant"
	"github.com/SeakMengs/ConfPortal/internal/model"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	*baseRepository
}

func (rr ReviewRepository) Create(ctx context.Context, tx *gorm.DB, review *model.PaperReview) error {
	rr.logger.Debugf("Create paper review for assignmentId: %s \n", review.AssignmentID)

	if !review.Status.IsValid() {
		return fmt.Errorf("unknown review status %q", review.Status)
	}

	db := rr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.PaperReview{}).Omit("Assignment", "Reviewer").Create(review).Error
}

func (rr ReviewRepository) ExistsForAssignment(ctx context.Context, tx *gorm.DB, assignmentId string) (bool, error) {
	rr.logger.Debugf("Check review exists for assignmentId: %s \n", assignmentId)

	db := rr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var review model.PaperReview
	err := db.WithContext(ctx).Model(&model.PaperReview{}).Select("id").Where("assignment_id = ?", assignmentId).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (rr ReviewRepository) ListByPaper(ctx context.Context, tx *gorm.DB, paperId string) ([]model.PaperReview, error) {
	rr.logger.Debugf("List reviews by paperId: %s \n", paperId)

	db := rr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	reviews := []model.PaperReview{}
	if err := db.WithContext(ctx).Model(&model.PaperReview{}).
		Where("paper_id = ?", paperId).
		Order("submitted_at asc").
		Find(&reviews).Error; err != nil {
		return reviews, err
	}

	return reviews, nil
}
