package repository

import (
	"context"

	constant "github.com/SeakMengs/ConfPortal/internal/constant"
	"github.com/SeakMengs/ConfPortal/internal/model"
	"gorm.io/gorm"
)

type AssignmentRepository struct {
	*baseRepository
}

func (ar AssignmentRepository) Create(ctx context.Context, tx *gorm.DB, assignment *model.PaperAssignment) error {
	ar.logger.Debugf("Create paper assignment with data: %v \n", assignment)

	db := ar.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.PaperAssignment{}).Omit("Paper", "Reviewer", "Assigner").Create(assignment).Error
}

func (ar AssignmentRepository) GetById(ctx context.Context, tx *gorm.DB, assignmentId string) (*model.PaperAssignment, error) {
	ar.logger.Debugf("Get paper assignment by id: %s \n", assignmentId)

	db := ar.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var assignment model.PaperAssignment
	if err := db.WithContext(ctx).Model(&model.PaperAssignment{}).Where("id = ?", assignmentId).First(&assignment).Error; err != nil {
		return nil, err
	}

	return &assignment, nil
}

// CountActiveByPaper counts assignments of a paper that are not cancelled.
func (ar AssignmentRepository) CountActiveByPaper(ctx context.Context, tx *gorm.DB, paperId string) (int64, error) {
	ar.logger.Debugf("Count active assignments by paperId: %s \n", paperId)

	db := ar.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var count int64
	if err := db.WithContext(ctx).Model(&model.PaperAssignment{}).
		Where("paper_id = ? AND status <> ?", paperId, constant.AssignmentStatusCancelled).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (ar AssignmentRepository) ExistsActiveForReviewer(ctx context.Context, tx *gorm.DB, paperId, reviewerId string) (bool, error) {
	ar.logger.Debugf("Check active assignment for paperId: %s, reviewerId: %s \n", paperId, reviewerId)

	db := ar.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var count int64
	if err := db.WithContext(ctx).Model(&model.PaperAssignment{}).
		Where("paper_id = ? AND reviewer_id = ? AND status <> ?", paperId, reviewerId, constant.AssignmentStatusCancelled).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// UpdateStatus moves an assignment from one status to another. It reports
// false when the row was not in the expected status anymore.
func (ar AssignmentRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, assignmentId string, from, to constant.AssignmentStatus) (bool, error) {
	ar.logger.Debugf("Update assignment status with id: %s from: %s to: %s \n", assignmentId, from, to)

	db := ar.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	result := db.WithContext(ctx).Model(&model.PaperAssignment{}).
		Where("id = ? AND status = ?", assignmentId, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

func (ar AssignmentRepository) ListByPaper(ctx context.Context, tx *gorm.DB, paperId string) ([]model.PaperAssignment, error) {
	ar.logger.Debugf("List assignments by paperId: %s \n", paperId)

	db := ar.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	assignments := []model.PaperAssignment{}
	if err := db.WithContext(ctx).Model(&model.PaperAssignment{}).
		Preload("Reviewer").
		Where("paper_id = ?", paperId).
		Order("created_at asc").
		Find(&assignments).Error; err != nil {
		return assignments, err
	}

	return assignments, nil
}

func (ar AssignmentRepository) ListByReviewer(ctx context.Context, tx *gorm.DB, reviewerId string, status []constant.AssignmentStatus, page, pageSize uint) ([]model.PaperAssignment, int64, error) {
	ar.logger.Debugf("List assignments by reviewerId: %s \n", reviewerId)

	db := ar.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.PaperAssignment{}).Where("reviewer_id = ?", reviewerId)
	if len(status) > 0 {
		query = query.Where("status IN (?)", status)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	assignments := []model.PaperAssignment{}
	if err := query.
		Preload("Paper").
		Order("due_date asc").
		Offset(offset(page, pageSize)).Limit(limit(pageSize)).
		Find(&assignments).Error; err != nil {
		return nil, 0, err
	}

	return assignments, total, nil
}
