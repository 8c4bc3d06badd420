// Package workflow implements the paper lifecycle: submission, reviewer
// assignment, reviews and decisions. All paper status changes go through it.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SeakMengs/ConfPortal/internal/constant"
	"github.com/SeakMengs/ConfPortal/internal/metrics"
	"github.com/SeakMengs/ConfPortal/internal/model"
	"github.com/SeakMengs/ConfPortal/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	repo     *repository.Repository
	notifier Notifier
	logger   *zap.SugaredLogger
	metrics  *metrics.Metrics
	now      func() time.Time
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo *repository.Repository, notifier Notifier, logger *zap.SugaredLogger, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) observe(operation string, started time.Time, err *error) {
	result := "ok"
	if *err != nil {
		result = string(KindOf(*err))
		if result == "" {
			result = "error"
		}
	}
	s.metrics.ObserveOperation(operation, result, time.Since(started))
}

// changeStatus is the only place a paper status is written. It must run inside
// the transaction of the operation that causes the change.
func (s *Service) changeStatus(ctx context.Context, tx *gorm.DB, paper *model.Paper, to constant.PaperStatus, actor Actor, reason string) error {
	from := paper.Status
	if from == to {
		return nil
	}

	if err := s.repo.Paper.UpdateStatus(ctx, tx, paper.ID, to); err != nil {
		return fmt.Errorf("failed to update paper status: %w", err)
	}

	if err := s.repo.StatusHistory.Create(ctx, tx, &model.PaperStatusHistory{
		PaperID:    paper.ID,
		FromStatus: from,
		ToStatus:   to,
		ChangedBy:  actor.ID,
		Reason:     reason,
		ChangedAt:  s.now(),
	}); err != nil {
		return fmt.Errorf("failed to record paper status history: %w", err)
	}

	paper.Status = to
	return nil
}

// notFoundOr maps a missing row to a NotFound rejection and wraps anything else.
func notFoundOr(err error, field, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newError(KindNotFound, field, "%s not found", what)
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}
