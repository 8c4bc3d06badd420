package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SeakMengs/ConfPortal/internal/constant"
	"github.com/SeakMengs/ConfPortal/internal/model"
	"github.com/SeakMengs/ConfPortal/internal/util"
	"gorm.io/gorm"
)

type AssignInput struct {
	ReviewerID string
	DueDate    *time.Time
	Notes      string
}

// Assign adds a reviewer to a paper. A paper holds at most
// constant.MaxReviewersPerPaper non-cancelled assignments; the first one moves
// it from submitted to under review.
func (s *Service) Assign(ctx context.Context, actor Actor, paperID string, in AssignInput) (assignment *model.PaperAssignment, err error) {
	defer s.observe("assign", time.Now(), &err)

	if err := actor.require(constant.PaperAssign); err != nil {
		return nil, err
	}

	if in.DueDate != nil && !in.DueDate.After(s.now()) {
		return nil, newError(KindInvalidInput, "dueDate", "due date must be in the future")
	}

	var from constant.PaperStatus
	err = s.repo.WithTx(ctx, func(tx *gorm.DB) error {
		// serialises concurrent assigns on the same paper
		paper, err := s.repo.Paper.GetByIdForUpdate(ctx, tx, paperID)
		if err != nil {
			return notFoundOr(err, "paperId", "paper")
		}
		from = paper.Status

		reviewer, err := s.repo.User.GetById(ctx, tx, in.ReviewerID)
		if err != nil {
			return notFoundOr(err, "reviewerId", "reviewer")
		}

		if !util.HasCapability([]constant.Role{reviewer.Role}, []constant.Capability{constant.PaperReview}) {
			return newError(KindInvalidInput, "reviewerId", "user %s cannot review papers", reviewer.Email)
		}

		if reviewer.ID == paper.AuthorID {
			return newError(KindInvalidInput, "reviewerId", "authors cannot review their own paper")
		}

		if paper.Status != constant.PaperStatusSubmitted && paper.Status != constant.PaperStatusUnderReview {
			return newError(KindInvalidTransition, "paperId", "cannot assign reviewers to a paper in status %s", paper.Status)
		}

		exists, err := s.repo.Assignment.ExistsActiveForReviewer(ctx, tx, paper.ID, reviewer.ID)
		if err != nil {
			return fmt.Errorf("failed to check existing assignment: %w", err)
		}
		if exists {
			return newError(KindDuplicateAssignment, "reviewerId", "reviewer is already assigned to this paper")
		}

		active, err := s.repo.Assignment.CountActiveByPaper(ctx, tx, paper.ID)
		if err != nil {
			return fmt.Errorf("failed to count assignments: %w", err)
		}
		if active >= constant.MaxReviewersPerPaper {
			return newError(KindCapacityExceeded, "reviewerId", "paper already has %d reviewers", constant.MaxReviewersPerPaper)
		}

		a := &model.PaperAssignment{
			Status:     constant.AssignmentStatusPending,
			DueDate:    in.DueDate,
			Notes:      in.Notes,
			PaperID:    paper.ID,
			ReviewerID: reviewer.ID,
			AssignerID: actor.ID,
		}
		if err := s.repo.Assignment.Create(ctx, tx, a); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return newError(KindDuplicateAssignment, "reviewerId", "reviewer is already assigned to this paper")
			}
			return fmt.Errorf("failed to create assignment: %w", err)
		}

		if paper.Status == constant.PaperStatusSubmitted {
			if err := CheckTransition(paper.Status, constant.PaperStatusUnderReview, actor); err != nil {
				return err
			}
			if err := s.changeStatus(ctx, tx, paper, constant.PaperStatusUnderReview, actor, "reviewer assigned"); err != nil {
				return err
			}
		}

		assignment = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	if from != constant.PaperStatusUnderReview {
		s.metrics.ObserveTransition(string(from), string(constant.PaperStatusUnderReview))
	}

	return assignment, nil
}

// Cancel frees the reviewer slot. The row is kept as history.
func (s *Service) Cancel(ctx context.Context, actor Actor, assignmentID string) (assignment *model.PaperAssignment, err error) {
	defer s.observe("cancel_assignment", time.Now(), &err)

	if err := actor.require(constant.PaperAssign); err != nil {
		return nil, err
	}

	err = s.repo.WithTx(ctx, func(tx *gorm.DB) error {
		a, err := s.repo.Assignment.GetById(ctx, tx, assignmentID)
		if err != nil {
			return notFoundOr(err, "assignmentId", "assignment")
		}

		if a.AssignerID != actor.ID && !actor.IsAdmin() {
			return newError(KindUnauthorized, "", "only the assigner or an admin can cancel this assignment")
		}

		if !a.Status.Active() || a.Status == constant.AssignmentStatusCompleted {
			return newError(KindInvalidTransition, "status", "cannot cancel a %s assignment", a.Status)
		}

		ok, err := s.repo.Assignment.UpdateStatus(ctx, tx, a.ID, a.Status, constant.AssignmentStatusCancelled)
		if err != nil {
			return fmt.Errorf("failed to cancel assignment: %w", err)
		}
		if !ok {
			return newError(KindInvalidTransition, "status", "assignment changed while cancelling, try again")
		}

		a.Status = constant.AssignmentStatusCancelled
		assignment = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	return assignment, nil
}

var assignmentProgress = map[constant.AssignmentStatus]constant.AssignmentStatus{
	constant.AssignmentStatusPending:    constant.AssignmentStatusInProgress,
	constant.AssignmentStatusInProgress: constant.AssignmentStatusCompleted,
}

// UpdateAssignmentStatus lets the assigned reviewer move their assignment one
// step forward. Assignments never move backwards.
func (s *Service) UpdateAssignmentStatus(ctx context.Context, actor Actor, assignmentID string, to constant.AssignmentStatus) (assignment *model.PaperAssignment, err error) {
	defer s.observe("update_assignment_status", time.Now(), &err)

	if err := actor.require(constant.PaperReview); err != nil {
		return nil, err
	}

	if !to.IsValid() {
		return nil, newError(KindInvalidInput, "status", "unknown assignment status %q", to)
	}

	err = s.repo.WithTx(ctx, func(tx *gorm.DB) error {
		a, err := s.repo.Assignment.GetById(ctx, tx, assignmentID)
		if err != nil {
			return notFoundOr(err, "assignmentId", "assignment")
		}

		if a.ReviewerID != actor.ID {
			return newError(KindNotAssigned, "assignmentId", "you are not assigned to this assignment")
		}

		if next, ok := assignmentProgress[a.Status]; !ok || next != to {
			return newError(KindInvalidTransition, "status", "assignment cannot move from %s to %s", a.Status, to)
		}

		ok, err := s.repo.Assignment.UpdateStatus(ctx, tx, a.ID, a.Status, to)
		if err != nil {
			return fmt.Errorf("failed to update assignment status: %w", err)
		}
		if !ok {
			return newError(KindInvalidTransition, "status", "assignment changed while updating, try again")
		}

		a.Status = to
		assignment = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	return assignment, nil
}

func (s *Service) ListAssignmentsForPaper(ctx context.Context, actor Actor, paperID string) ([]model.PaperAssignment, error) {
	if !actor.Can(constant.PaperAssign) && !actor.Can(constant.PaperApprove) {
		return nil, newError(KindUnauthorized, "", "only organizers can list the reviewers of a paper")
	}

	if _, err := s.repo.Paper.GetById(ctx, nil, paperID); err != nil {
		return nil, notFoundOr(err, "paperId", "paper")
	}

	assignments, err := s.repo.Assignment.ListByPaper(ctx, nil, paperID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	return assignments, nil
}

// ListAssignmentsForReviewer returns the actor's own assignments, soonest due first.
func (s *Service) ListAssignmentsForReviewer(ctx context.Context, actor Actor, status []constant.AssignmentStatus, page, pageSize uint) ([]model.PaperAssignment, int64, error) {
	if err := actor.require(constant.PaperReview); err != nil {
		return nil, 0, err
	}

	for _, st := range status {
		if !st.IsValid() {
			return nil, 0, newError(KindInvalidInput, "status", "unknown assignment status %q", st)
		}
	}

	assignments, total, err := s.repo.Assignment.ListByReviewer(ctx, nil, actor.ID, status, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assignments: %w", err)
	}

	return assignments, total, nil
}
