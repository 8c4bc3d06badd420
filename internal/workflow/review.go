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

type Ratings struct {
	TechnicalQuality      int
	Originality           int
	Clarity               int
	Relevance             int
	OverallRecommendation int
}

// Validate rejects the first rating outside [constant.MinRating, constant.MaxRating].
func (r Ratings) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"technicalQuality", r.TechnicalQuality},
		{"originality", r.Originality},
		{"clarity", r.Clarity},
		{"relevance", r.Relevance},
		{"overallRecommendation", r.OverallRecommendation},
	}

	for _, f := range fields {
		if f.value < constant.MinRating || f.value > constant.MaxRating {
			return newError(KindInvalidRating, f.name, "%s must be between %d and %d, got %d", f.name, constant.MinRating, constant.MaxRating, f.value)
		}
	}

	return nil
}

// SubmitReview stores the assignee's review and completes the assignment.
// Reviews are write once.
func (s *Service) SubmitReview(ctx context.Context, actor Actor, assignmentID string, ratings Ratings, comments string) (review *model.PaperReview, err error) {
	defer s.observe("submit_review", time.Now(), &err)

	if err := actor.require(constant.PaperReview); err != nil {
		return nil, err
	}

	if err := ratings.Validate(); err != nil {
		return nil, err
	}

	err = s.repo.WithTx(ctx, func(tx *gorm.DB) error {
		a, err := s.repo.Assignment.GetById(ctx, tx, assignmentID)
		if err != nil {
			return notFoundOr(err, "assignmentId", "assignment")
		}

		if a.ReviewerID != actor.ID || !a.Status.Active() {
			return newError(KindNotAssigned, "assignmentId", "you are not assigned to review this paper")
		}

		paper, err := s.repo.Paper.GetById(ctx, tx, a.PaperID)
		if err != nil {
			return notFoundOr(err, "paperId", "paper")
		}

		if paper.Status != constant.PaperStatusUnderReview {
			return newError(KindInvalidTransition, "assignmentId", "paper is %s, reviews are closed", paper.Status)
		}

		exists, err := s.repo.Review.ExistsForAssignment(ctx, tx, a.ID)
		if err != nil {
			return fmt.Errorf("failed to check existing review: %w", err)
		}
		if exists {
			return newError(KindAlreadyReviewed, "assignmentId", "a review was already submitted for this assignment")
		}

		r := &model.PaperReview{
			TechnicalQuality:      ratings.TechnicalQuality,
			Originality:           ratings.Originality,
			Clarity:               ratings.Clarity,
			Relevance:             ratings.Relevance,
			OverallRecommendation: ratings.OverallRecommendation,
			Comments:              comments,
			SubmittedAt:           s.now(),
			Status:                constant.ReviewStatusSubmitted,
			AssignmentID:          a.ID,
			PaperID:               a.PaperID,
			ReviewerID:            actor.ID,
		}
		if err := s.repo.Review.Create(ctx, tx, r); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return newError(KindAlreadyReviewed, "assignmentId", "a review was already submitted for this assignment")
			}
			return fmt.Errorf("failed to create review: %w", err)
		}

		if a.Status != constant.AssignmentStatusCompleted {
			ok, err := s.repo.Assignment.UpdateStatus(ctx, tx, a.ID, a.Status, constant.AssignmentStatusCompleted)
			if err != nil {
				return fmt.Errorf("failed to complete assignment: %w", err)
			}
			if !ok {
				return newError(KindNotAssigned, "assignmentId", "assignment changed while submitting, try again")
			}
		}

		review = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

type CriterionAverages struct {
	TechnicalQuality      float64 `json:"technicalQuality"`
	Originality           float64 `json:"originality"`
	Clarity               float64 `json:"clarity"`
	Relevance             float64 `json:"relevance"`
	OverallRecommendation float64 `json:"overallRecommendation"`
}

type ReviewSummary struct {
	PaperID  string                                `json:"paperId"`
	Total    int                                   `json:"total"`
	Buckets  map[constant.RecommendationBucket]int `json:"buckets"`
	Averages CriterionAverages                     `json:"averages"`
}

// Summarize buckets reviews by overall recommendation. Every bucket is present
// even when empty.
func Summarize(paperID string, reviews []model.PaperReview) ReviewSummary {
	summary := ReviewSummary{
		PaperID: paperID,
		Buckets: map[constant.RecommendationBucket]int{
			constant.BucketAccept: 0,
			constant.BucketRevise: 0,
			constant.BucketReject: 0,
		},
	}

	if len(reviews) == 0 {
		return summary
	}

	var sum CriterionAverages
	for _, r := range reviews {
		summary.Buckets[constant.BucketOf(r.OverallRecommendation)]++
		sum.TechnicalQuality += float64(r.TechnicalQuality)
		sum.Originality += float64(r.Originality)
		sum.Clarity += float64(r.Clarity)
		sum.Relevance += float64(r.Relevance)
		sum.OverallRecommendation += float64(r.OverallRecommendation)
	}

	n := float64(len(reviews))
	summary.Total = len(reviews)
	summary.Averages = CriterionAverages{
		TechnicalQuality:      sum.TechnicalQuality / n,
		Originality:           sum.Originality / n,
		Clarity:               sum.Clarity / n,
		Relevance:             sum.Relevance / n,
		OverallRecommendation: sum.OverallRecommendation / n,
	}

	return summary
}

// reviewsVisibleTo loads a paper's reviews if actor may read them. Organizers
// always can; the author only once the paper is decided, without reviewer ids.
func (s *Service) reviewsVisibleTo(ctx context.Context, actor Actor, paperID string) ([]model.PaperReview, error) {
	paper, err := s.repo.Paper.GetById(ctx, nil, paperID)
	if err != nil {
		return nil, notFoundOr(err, "paperId", "paper")
	}

	organizer := actor.Can(constant.PaperAssign) || actor.Can(constant.PaperApprove)
	author := paper.AuthorID == actor.ID && paper.Status.Decided()
	if !organizer && !author {
		return nil, newError(KindUnauthorized, "", "you cannot read the reviews of this paper")
	}

	reviews, err := s.repo.Review.ListByPaper(ctx, nil, paper.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	if !organizer {
		for i := range reviews {
			reviews[i].ReviewerID = ""
		}
	}

	return reviews, nil
}

func (s *Service) ListReviews(ctx context.Context, actor Actor, paperID string) ([]model.PaperReview, error) {
	return s.reviewsVisibleTo(ctx, actor, paperID)
}

func (s *Service) SummarizeReviews(ctx context.Context, actor Actor, paperID string) (ReviewSummary, error) {
	reviews, err := s.reviewsVisibleTo(ctx, actor, paperID)
	if err != nil {
		return ReviewSummary{}, err
	}

	return Summarize(paperID, reviews), nil
}
