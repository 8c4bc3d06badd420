package repository

import (
	"context"
	"strings"

	constant "github.com/SeakMengs/ConfPortal/internal/constant"
	"github.com/SeakMengs/ConfPortal/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaperRepository struct {
	*baseRepository
}

func (pr PaperRepository) Create(ctx context.Context, tx *gorm.DB, paper *model.Paper) (*model.Paper, error) {
	pr.logger.Debugf("Create paper with data: %v \n", paper)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.Paper{}).Omit(clause.Associations).Create(paper).Error; err != nil {
		return paper, err
	}

	return paper, nil
}

func (pr PaperRepository) GetById(ctx context.Context, tx *gorm.DB, paperId string) (*model.Paper, error) {
	pr.logger.Debugf("Get paper by id: %s \n", paperId)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var paper model.Paper
	if err := db.WithContext(ctx).Model(&model.Paper{}).Where("id = ?", paperId).First(&paper).Error; err != nil {
		return nil, err
	}

	return &paper, nil
}

// GetByIdWithDetails loads the paper with its author, submission and decision.
func (pr PaperRepository) GetByIdWithDetails(ctx context.Context, tx *gorm.DB, paperId string) (*model.Paper, error) {
	pr.logger.Debugf("Get paper with details by id: %s \n", paperId)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var paper model.Paper
	if err := db.WithContext(ctx).Model(&model.Paper{}).
		Preload("Author").
		Preload("Submission.Authors", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Preload("Decision").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("changed_at asc")
		}).
		Where("id = ?", paperId).First(&paper).Error; err != nil {
		return nil, err
	}

	return &paper, nil
}

// GetByIdForUpdate locks the paper row until tx ends. Writers that check a
// per paper invariant (reviewer cap, single decision) serialize on this lock.
func (pr PaperRepository) GetByIdForUpdate(ctx context.Context, tx *gorm.DB, paperId string) (*model.Paper, error) {
	pr.logger.Debugf("Get paper for update by id: %s \n", paperId)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var paper model.Paper
	if err := db.WithContext(ctx).Model(&model.Paper{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", paperId).First(&paper).Error; err != nil {
		return nil, err
	}

	return &paper, nil
}

func (pr PaperRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, paperId string, status constant.PaperStatus) error {
	pr.logger.Debugf("Update paper status with paperId: %s, status: %s \n", paperId, status)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	result := db.WithContext(ctx).Model(&model.Paper{}).Where("id = ?", paperId).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (pr PaperRepository) UpdateFilePath(ctx context.Context, tx *gorm.DB, paperId string, filePath string) error {
	pr.logger.Debugf("Update paper file path with paperId: %s \n", paperId)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.Paper{}).Where("id = ?", paperId).Update("file_path", filePath).Error
}

type PaperFilter struct {
	AuthorID     string
	ConferenceID string
	Status       []constant.PaperStatus
	Search       string
}

type PaperSummary struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	Topic        constant.PaperTopic  `json:"topic"`
	Status       constant.PaperStatus `json:"status"`
	AuthorID     string               `json:"authorId"`
	ConferenceID string               `json:"conferenceId"`
	ReviewCount  int64                `json:"reviewCount"`
}

func (pr PaperRepository) List(ctx context.Context, tx *gorm.DB, filter PaperFilter, page, pageSize uint) ([]PaperSummary, int64, error) {
	pr.logger.Debugf("List papers with filter: %+v \n", filter)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.Paper{})

	if filter.AuthorID != "" {
		query = query.Where("papers.author_id = ?", filter.AuthorID)
	}

	if filter.ConferenceID != "" {
		query = query.Where("papers.conference_id = ?", filter.ConferenceID)
	}

	if len(filter.Status) > 0 {
		query = query.Where("papers.status IN (?)", filter.Status)
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("LOWER(papers.title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	papers := []PaperSummary{}
	if err := query.
		Select("papers.id, papers.title, papers.topic, papers.status, papers.author_id, papers.conference_id, " +
			"(SELECT COUNT(*) FROM paper_reviews WHERE paper_reviews.paper_id = papers.id) AS review_count").
		Order("papers.created_at desc").
		Offset(offset(page, pageSize)).Limit(limit(pageSize)).
		Scan(&papers).Error; err != nil {
		return nil, 0, err
	}

	return papers, total, nil
}
