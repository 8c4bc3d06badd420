package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SeakMengs/ConfPortal/internal/constant"
	"github.com/SeakMengs/ConfPortal/internal/model"
	"github.com/SeakMengs/ConfPortal/internal/repository"
	"gorm.io/gorm"
)

type CreatePaperInput struct {
	ConferenceID string
	Title        string
	Topic        constant.PaperTopic
	Keyword      string
	Abstract     string
	FilePath     string
}

// CreatePaper stores a new draft owned by actor.
func (s *Service) CreatePaper(ctx context.Context, actor Actor, in CreatePaperInput) (paper *model.Paper, err error) {
	defer s.observe("create_paper", time.Now(), &err)

	if err := actor.require(constant.PaperCreate); err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Title) == "" {
		return nil, newError(KindInvalidInput, "title", "title is required")
	}

	if !in.Topic.IsValid() {
		return nil, newError(KindInvalidInput, "topic", "unknown topic %q", in.Topic)
	}

	if _, err := s.repo.Conference.GetById(ctx, nil, in.ConferenceID); err != nil {
		return nil, notFoundOr(err, "conferenceId", "conference")
	}

	paper = &model.Paper{
		Title:        strings.TrimSpace(in.Title),
		Topic:        in.Topic,
		Keyword:      in.Keyword,
		Abstract:     in.Abstract,
		FilePath:     in.FilePath,
		Status:       constant.PaperStatusDraft,
		AuthorID:     actor.ID,
		ConferenceID: in.ConferenceID,
	}

	if _, err := s.repo.Paper.Create(ctx, nil, paper); err != nil {
		return nil, fmt.Errorf("failed to create paper: %w", err)
	}

	return paper, nil
}

type AuthorInput struct {
	FirstName       string
	LastName        string
	Email           string
	Affiliation     string
	Country         string
	Role            constant.AuthorRole
	IsCorresponding bool
}

type SubmitPaperInput struct {
	Track              string
	SubmittedElsewhere bool
	OriginalSubmission bool
	Authors            []AuthorInput
	// FilePath replaces the draft's file when set. A draft created without
	// one must bring it here.
	FilePath string
}

func (in SubmitPaperInput) validate() error {
	if strings.TrimSpace(in.Track) == "" {
		return newError(KindInvalidInput, "track", "track is required")
	}

	if len(in.Authors) == 0 {
		return newError(KindInvalidInput, "authors", "at least one author is required")
	}

	corresponding := 0
	for i, a := range in.Authors {
		if strings.TrimSpace(a.FirstName) == "" || strings.TrimSpace(a.LastName) == "" || strings.TrimSpace(a.Email) == "" {
			return newError(KindInvalidInput, "authors", "author %d needs a name and an email", i+1)
		}
		if !a.Role.IsValid() {
			return newError(KindInvalidInput, "authors", "author %d has unknown role %q", i+1, a.Role)
		}
		if a.IsCorresponding {
			corresponding++
		}
	}

	if corresponding != 1 {
		return newError(KindInvalidInput, "authors", "exactly one corresponding author is required")
	}

	return nil
}

// SubmitPaper moves a draft to submitted and snapshots the submission form.
func (s *Service) SubmitPaper(ctx context.Context, actor Actor, paperID string, in SubmitPaperInput) (paper *model.Paper, err error) {
	defer s.observe("submit_paper", time.Now(), &err)

	if err := actor.require(constant.PaperSubmit); err != nil {
		return nil, err
	}

	if err := in.validate(); err != nil {
		return nil, err
	}

	var from constant.PaperStatus
	err = s.repo.WithTx(ctx, func(tx *gorm.DB) error {
		p, err := s.repo.Paper.GetByIdForUpdate(ctx, tx, paperID)
		if err != nil {
			return notFoundOr(err, "paperId", "paper")
		}

		if p.AuthorID != actor.ID {
			return newError(KindUnauthorized, "", "only the author can submit this paper")
		}

		if p.Status == constant.PaperStatusNeedsRevision {
			return newError(KindInvalidTransition, "paperId", "paper needs revision, resubmit it instead")
		}

		if err := CheckTransition(p.Status, constant.PaperStatusSubmitted, actor); err != nil {
			return err
		}

		if in.FilePath != "" {
			if err := s.repo.Paper.UpdateFilePath(ctx, tx, p.ID, in.FilePath); err != nil {
				return fmt.Errorf("failed to update paper file: %w", err)
			}
			p.FilePath = in.FilePath
		}

		if p.FilePath == "" {
			return newError(KindInvalidInput, "paperFile", "a paper file is required before submission")
		}

		conference, err := s.repo.Conference.GetById(ctx, tx, p.ConferenceID)
		if err != nil {
			return notFoundOr(err, "conferenceId", "conference")
		}

		now := s.now()
		if !conference.SubmissionDeadline.IsZero() && now.After(conference.SubmissionDeadline) {
			return newError(KindInvalidTransition, "conferenceId", "submission deadline has passed")
		}

		authors := make([]model.AuthorInfo, 0, len(in.Authors))
		for i, a := range in.Authors {
			authors = append(authors, model.AuthorInfo{
				FirstName:       strings.TrimSpace(a.FirstName),
				LastName:        strings.TrimSpace(a.LastName),
				Email:           strings.TrimSpace(a.Email),
				Affiliation:     a.Affiliation,
				Country:         a.Country,
				Role:            a.Role,
				IsCorresponding: a.IsCorresponding,
				Position:        i + 1,
			})
		}

		if err := s.repo.Submission.Create(ctx, tx, &model.Submission{
			PaperID:            p.ID,
			Track:              strings.TrimSpace(in.Track),
			SubmittedElsewhere: in.SubmittedElsewhere,
			OriginalSubmission: in.OriginalSubmission,
			SubmittedAt:        now,
			Authors:            authors,
		}); err != nil {
			return fmt.Errorf("failed to create submission: %w", err)
		}

		from = p.Status
		if err := s.changeStatus(ctx, tx, p, constant.PaperStatusSubmitted, actor, "submitted by author"); err != nil {
			return err
		}

		paper = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveTransition(string(from), string(paper.Status))
	return paper, nil
}

// ResubmitPaper sends a paper that needs revision back to submitted. An empty
// filePath keeps the current file.
func (s *Service) ResubmitPaper(ctx context.Context, actor Actor, paperID string, filePath string) (paper *model.Paper, err error) {
	defer s.observe("resubmit_paper", time.Now(), &err)

	if err := actor.require(constant.PaperSubmit); err != nil {
		return nil, err
	}

	err = s.repo.WithTx(ctx, func(tx *gorm.DB) error {
		p, err := s.repo.Paper.GetByIdForUpdate(ctx, tx, paperID)
		if err != nil {
			return notFoundOr(err, "paperId", "paper")
		}

		if p.AuthorID != actor.ID {
			return newError(KindUnauthorized, "", "only the author can resubmit this paper")
		}

		if p.Status != constant.PaperStatusNeedsRevision {
			return newError(KindInvalidTransition, "paperId", "cannot resubmit a paper in status %s", p.Status)
		}

		if err := CheckTransition(p.Status, constant.PaperStatusSubmitted, actor); err != nil {
			return err
		}

		if filePath != "" {
			if err := s.repo.Paper.UpdateFilePath(ctx, tx, p.ID, filePath); err != nil {
				return fmt.Errorf("failed to update paper file: %w", err)
			}
			p.FilePath = filePath
		}

		if err := s.repo.Submission.Touch(ctx, tx, p.ID, map[string]any{
			"original_submission": false,
			"submitted_at":        s.now(),
		}); err != nil {
			return fmt.Errorf("failed to update submission: %w", err)
		}

		if err := s.changeStatus(ctx, tx, p, constant.PaperStatusSubmitted, actor, "resubmitted after revision"); err != nil {
			return err
		}

		paper = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveTransition(string(constant.PaperStatusNeedsRevision), string(constant.PaperStatusSubmitted))
	return paper, nil
}

// ReopenReview puts a resubmitted paper that still has active reviewers back
// under review without a new assignment.
func (s *Service) ReopenReview(ctx context.Context, actor Actor, paperID string) (paper *model.Paper, err error) {
	defer s.observe("reopen_review", time.Now(), &err)

	if err := actor.require(constant.PaperAssign); err != nil {
		return nil, err
	}

	err = s.repo.WithTx(ctx, func(tx *gorm.DB) error {
		p, err := s.repo.Paper.GetByIdForUpdate(ctx, tx, paperID)
		if err != nil {
			return notFoundOr(err, "paperId", "paper")
		}

		if err := CheckTransition(p.Status, constant.PaperStatusUnderReview, actor); err != nil {
			return err
		}

		active, err := s.repo.Assignment.CountActiveByPaper(ctx, tx, p.ID)
		if err != nil {
			return fmt.Errorf("failed to count assignments: %w", err)
		}
		if active == 0 {
			return newError(KindInvalidTransition, "paperId", "paper has no reviewers, assign one instead")
		}

		if err := s.changeStatus(ctx, tx, p, constant.PaperStatusUnderReview, actor, "review reopened"); err != nil {
			return err
		}

		paper = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveTransition(string(constant.PaperStatusSubmitted), string(constant.PaperStatusUnderReview))
	return paper, nil
}

// canView reports whether actor may read a paper: its author, organizers, and
// reviewers assigned to it.
func (s *Service) canView(ctx context.Context, actor Actor, paper *model.Paper) (bool, error) {
	if paper.AuthorID == actor.ID || actor.Can(constant.PaperAssign) || actor.Can(constant.PaperApprove) {
		return true, nil
	}

	if !actor.Can(constant.PaperReview) {
		return false, nil
	}

	return s.repo.Assignment.ExistsActiveForReviewer(ctx, nil, paper.ID, actor.ID)
}

func (s *Service) GetPaper(ctx context.Context, actor Actor, paperID string) (*model.Paper, error) {
	paper, err := s.repo.Paper.GetByIdWithDetails(ctx, nil, paperID)
	if err != nil {
		return nil, notFoundOr(err, "paperId", "paper")
	}

	ok, err := s.canView(ctx, actor, paper)
	if err != nil {
		return nil, fmt.Errorf("failed to check paper access: %w", err)
	}
	if !ok {
		return nil, newError(KindUnauthorized, "", "you do not have access to this paper")
	}

	return paper, nil
}

// ListPapers lists papers visible to actor. Authors only ever see their own.
func (s *Service) ListPapers(ctx context.Context, actor Actor, filter repository.PaperFilter, page, pageSize uint) ([]repository.PaperSummary, int64, error) {
	if !actor.Can(constant.PaperAssign) && !actor.Can(constant.PaperApprove) {
		filter.AuthorID = actor.ID
	}

	for _, status := range filter.Status {
		if !status.IsValid() {
			return nil, 0, newError(KindInvalidInput, "status", "unknown paper status %q", status)
		}
	}

	papers, total, err := s.repo.Paper.List(ctx, nil, filter, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list papers: %w", err)
	}

	return papers, total, nil
}
