package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/SeakMengs/ConfPortal/internal/constant"
	"github.com/SeakMengs/ConfPortal/internal/model"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type seed struct {
	ctx       context.Context
	repo      *Repository
	organizer *model.User
	reviewer  *model.User
	paper     *model.Paper
}

func newSeed(t *testing.T) *seed {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "repository.db") + "?_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	s := &seed{ctx: context.Background(), repo: NewRepository(db, zap.NewNop().Sugar())}

	s.organizer = s.user(t, "chair@confportal.test", constant.RoleAdmin)
	s.reviewer = s.user(t, "reviewer@confportal.test", constant.RoleReviewer)
	author := s.user(t, "author@confportal.test", constant.RoleAuthor)

	now := time.Now().UTC()
	conference := &model.Conference{
		Name:               "Systems Week",
		Acronym:            "SYSW",
		StartsOn:           now.AddDate(0, 2, 0),
		EndsOn:             now.AddDate(0, 2, 1),
		SubmissionDeadline: now.AddDate(0, 1, 0),
		OrganizerID:        s.organizer.ID,
	}
	if err := s.repo.Conference.Create(s.ctx, nil, conference); err != nil {
		t.Fatalf("failed to create conference: %v", err)
	}

	s.paper, err = s.repo.Paper.Create(s.ctx, nil, &model.Paper{
		Title:        "Unique rows",
		Topic:        constant.PaperTopicOther,
		Abstract:     "Indexes hold under races.",
		Status:       constant.PaperStatusUnderReview,
		AuthorID:     author.ID,
		ConferenceID: conference.ID,
	})
	if err != nil {
		t.Fatalf("failed to create paper: %v", err)
	}

	return s
}

func (s *seed) user(t *testing.T, email string, role constant.Role) *model.User {
	t.Helper()

	user := &model.User{Email: email, FirstName: "Test", LastName: string(role), Role: role}
	if err := s.repo.User.Create(s.ctx, nil, user); err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func (s *seed) assignment() *model.PaperAssignment {
	return &model.PaperAssignment{
		Status:     constant.AssignmentStatusPending,
		PaperID:    s.paper.ID,
		ReviewerID: s.reviewer.ID,
		AssignerID: s.organizer.ID,
	}
}

func (s *seed) review(assignmentID string) *model.PaperReview {
	return &model.PaperReview{
		TechnicalQuality:      7,
		Originality:           7,
		Clarity:               7,
		Relevance:             7,
		OverallRecommendation: 7,
		SubmittedAt:           time.Now().UTC(),
		Status:                constant.ReviewStatusSubmitted,
		AssignmentID:          assignmentID,
		PaperID:               s.paper.ID,
		ReviewerID:            s.reviewer.ID,
	}
}

func TestActiveAssignmentIsUnique(t *testing.T) {
	s := newSeed(t)

	first := s.assignment()
	if err := s.repo.Assignment.Create(s.ctx, nil, first); err != nil {
		t.Fatalf("first assignment: %v", err)
	}

	if err := s.repo.Assignment.Create(s.ctx, nil, s.assignment()); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("second active assignment: got %v, want ErrDuplicatedKey", err)
	}

	ok, err := s.repo.Assignment.UpdateStatus(s.ctx, nil, first.ID, constant.AssignmentStatusPending, constant.AssignmentStatusCancelled)
	if err != nil || !ok {
		t.Fatalf("cancel assignment: ok=%v err=%v", ok, err)
	}

	// cancelled rows are history and do not block a new assignment
	again := s.assignment()
	if err := s.repo.Assignment.Create(s.ctx, nil, again); err != nil {
		t.Fatalf("assignment after cancel: %v", err)
	}

	if err := s.repo.Assignment.Create(s.ctx, nil, s.assignment()); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate after cancel: got %v, want ErrDuplicatedKey", err)
	}

	count, err := s.repo.Assignment.CountActiveByPaper(s.ctx, nil, s.paper.ID)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("active assignments = %d, want 1", count)
	}
}

func TestReviewIsUniquePerAssignment(t *testing.T) {
	s := newSeed(t)

	assignment := s.assignment()
	if err := s.repo.Assignment.Create(s.ctx, nil, assignment); err != nil {
		t.Fatalf("assignment: %v", err)
	}

	if err := s.repo.Review.Create(s.ctx, nil, s.review(assignment.ID)); err != nil {
		t.Fatalf("first review: %v", err)
	}
	if err := s.repo.Review.Create(s.ctx, nil, s.review(assignment.ID)); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("second review: got %v, want ErrDuplicatedKey", err)
	}

	draft := s.review(assignment.ID)
	draft.Status = "draft"
	if err := s.repo.Review.Create(s.ctx, nil, draft); err == nil || errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("unknown status: got %v, want a status error", err)
	}

	exists, err := s.repo.Review.ExistsForAssignment(s.ctx, nil, assignment.ID)
	if err != nil || !exists {
		t.Errorf("review exists = %v, err = %v", exists, err)
	}
}

func TestDecisionIsUniquePerPaper(t *testing.T) {
	s := newSeed(t)

	decision := func(value constant.DecisionValue) *model.Decision {
		return &model.Decision{Value: value, PaperID: s.paper.ID, OrganizerID: s.organizer.ID}
	}

	if err := s.repo.Decision.Create(s.ctx, nil, decision(constant.DecisionAccept)); err != nil {
		t.Fatalf("first decision: %v", err)
	}
	if err := s.repo.Decision.Create(s.ctx, nil, decision(constant.DecisionReject)); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("second decision: got %v, want ErrDuplicatedKey", err)
	}

	got, err := s.repo.Decision.GetByPaperId(s.ctx, nil, s.paper.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Value != constant.DecisionAccept {
		t.Errorf("decision = %s, want the first one kept", got.Value)
	}
}
