package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SeakMengs/ConfPortal/internal/constant"
	"github.com/SeakMengs/ConfPortal/internal/model"
	"gorm.io/gorm"
)

// RecordDecision stores the single decision of a paper and moves it to the
// mapped status. The author is notified after commit.
func (s *Service) RecordDecision(ctx context.Context, actor Actor, paperID string, value constant.DecisionValue, comment string) (decision *model.Decision, err error) {
	defer s.observe("record_decision", time.Now(), &err)

	if err := actor.require(constant.PaperApprove); err != nil {
		return nil, err
	}

	if !value.IsValid() {
		return nil, newError(KindInvalidInput, "value", "decision must be one of Accept, Reject or Revise")
	}

	var paper *model.Paper
	err = s.repo.WithTx(ctx, func(tx *gorm.DB) error {
		p, err := s.repo.Paper.GetByIdForUpdate(ctx, tx, paperID)
		if err != nil {
			return notFoundOr(err, "paperId", "paper")
		}

		if _, err := s.repo.Decision.GetByPaperId(ctx, tx, p.ID); err == nil {
			return newError(KindAlreadyDecided, "paperId", "paper already has a decision, update it instead")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing decision: %w", err)
		}

		if err := CheckTransition(p.Status, value.PaperStatus(), actor); err != nil {
			return err
		}

		d := &model.Decision{
			Value:       value,
			Comment:     comment,
			PaperID:     p.ID,
			OrganizerID: actor.ID,
		}
		if err := s.repo.Decision.Create(ctx, tx, d); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return newError(KindAlreadyDecided, "paperId", "paper already has a decision, update it instead")
			}
			return fmt.Errorf("failed to create decision: %w", err)
		}

		if err := s.changeStatus(ctx, tx, p, value.PaperStatus(), actor, "decision "+string(value)); err != nil {
			return err
		}

		paper = p
		decision = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveTransition(string(constant.PaperStatusUnderReview), string(paper.Status))
	s.notifyDecision(ctx, paper, decision)

	return decision, nil
}

// UpdateDecision overwrites the decision and re-applies its status. The author
// is only told again when notify is set.
func (s *Service) UpdateDecision(ctx context.Context, actor Actor, paperID string, value constant.DecisionValue, comment string, notify bool) (decision *model.Decision, err error) {
	defer s.observe("update_decision", time.Now(), &err)

	if err := actor.require(constant.PaperApprove); err != nil {
		return nil, err
	}

	if !value.IsValid() {
		return nil, newError(KindInvalidInput, "value", "decision must be one of Accept, Reject or Revise")
	}

	var paper *model.Paper
	var from constant.PaperStatus
	err = s.repo.WithTx(ctx, func(tx *gorm.DB) error {
		p, err := s.repo.Paper.GetByIdForUpdate(ctx, tx, paperID)
		if err != nil {
			return notFoundOr(err, "paperId", "paper")
		}

		d, err := s.repo.Decision.GetByPaperId(ctx, tx, p.ID)
		if err != nil {
			return notFoundOr(err, "paperId", "decision")
		}

		if err := CheckDecisionRevision(p.Status, value.PaperStatus(), actor); err != nil {
			return err
		}

		if err := s.repo.Decision.Update(ctx, tx, d.ID, actor.ID, value, comment); err != nil {
			return fmt.Errorf("failed to update decision: %w", err)
		}

		from = p.Status
		if err := s.changeStatus(ctx, tx, p, value.PaperStatus(), actor, "decision changed to "+string(value)); err != nil {
			return err
		}

		d.Value = value
		d.Comment = comment
		d.OrganizerID = actor.ID
		paper = p
		decision = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	if from != paper.Status {
		s.metrics.ObserveTransition(string(from), string(paper.Status))
	}

	if notify {
		s.notifyDecision(ctx, paper, decision)
	}

	return decision, nil
}

func (s *Service) GetDecision(ctx context.Context, actor Actor, paperID string) (*model.Decision, error) {
	paper, err := s.repo.Paper.GetById(ctx, nil, paperID)
	if err != nil {
		return nil, notFoundOr(err, "paperId", "paper")
	}

	if paper.AuthorID != actor.ID && !actor.Can(constant.PaperApprove) && !actor.Can(constant.PaperAssign) {
		return nil, newError(KindUnauthorized, "", "you cannot read the decision of this paper")
	}

	decision, err := s.repo.Decision.GetByPaperId(ctx, nil, paper.ID)
	if err != nil {
		return nil, notFoundOr(err, "paperId", "decision")
	}

	return decision, nil
}

// notifyDecision never fails the caller. The decision is already committed.
func (s *Service) notifyDecision(ctx context.Context, paper *model.Paper, decision *model.Decision) {
	if s.notifier == nil {
		return
	}

	// the request may finish before the broker answers
	ctx = context.WithoutCancel(ctx)

	author, err := s.repo.User.GetById(ctx, nil, paper.AuthorID)
	if err != nil {
		s.logger.Errorw("Failed to load author for decision notification", "paperId", paper.ID, "err", err)
		s.metrics.ObserveNotification("failed")
		return
	}

	err = s.notifier.NotifyDecision(ctx, DecisionNotification{
		PaperID:     paper.ID,
		PaperTitle:  paper.Title,
		AuthorName:  author.FullName(),
		AuthorEmail: author.Email,
		Decision:    decision.Value,
		Comment:     decision.Comment,
	})
	if err != nil {
		s.logger.Errorw("Failed to send decision notification", "paperId", paper.ID, "decision", decision.Value, "err", err)
		s.metrics.ObserveNotification("failed")
		return
	}

	s.metrics.ObserveNotification("enqueued")
}
