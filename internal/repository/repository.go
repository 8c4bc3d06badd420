package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type baseRepository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

type Repository struct {
	// DB can be used for transaction. Prefer WithTx, which passes tx to the
	// repository functions and rolls back when fn returns an error.
	DB            *gorm.DB
	User          *UserRepository
	Conference    *ConferenceRepository
	Paper         *PaperRepository
	Submission    *SubmissionRepository
	Assignment    *AssignmentRepository
	Review        *ReviewRepository
	Decision      *DecisionRepository
	StatusHistory *StatusHistoryRepository
	Agenda        *AgendaRepository

	base *baseRepository
}

func newBaseRepository(db *gorm.DB, logger *zap.SugaredLogger) *baseRepository {
	return &baseRepository{db: db, logger: logger}
}

func NewRepository(db *gorm.DB, logger *zap.SugaredLogger) *Repository {
	br := newBaseRepository(db, logger)

	return &Repository{
		DB:            db,
		User:          &UserRepository{baseRepository: br},
		Conference:    &ConferenceRepository{baseRepository: br},
		Paper:         &PaperRepository{baseRepository: br},
		Submission:    &SubmissionRepository{baseRepository: br},
		Assignment:    &AssignmentRepository{baseRepository: br},
		Review:        &ReviewRepository{baseRepository: br},
		Decision:      &DecisionRepository{baseRepository: br},
		StatusHistory: &StatusHistoryRepository{baseRepository: br},
		Agenda:        &AgendaRepository{baseRepository: br},
		base:          br,
	}
}

// WithTx runs fn inside a single database transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.base.withTx(r.DB.WithContext(ctx), fn)
}

// Docs: https://gorm.io/docs/transactions.html
func (b baseRepository) withTx(db *gorm.DB, fn func(*gorm.DB) error) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		return fn(tx)
	})

	if err != nil {
		b.logger.Debugf("withTx transaction rolled back: %v", err)
	}

	return err
}

func (b baseRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}

	return b.db
}
