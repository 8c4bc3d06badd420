package workflow

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/SeakMengs/ConfPortal/internal/constant"
	"github.com/SeakMengs/ConfPortal/internal/model"
	"github.com/SeakMengs/ConfPortal/internal/repository"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []DecisionNotification
	err  error
}

func (n *recordingNotifier) NotifyDecision(ctx context.Context, notification DecisionNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, notification)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type fixture struct {
	t        *testing.T
	ctx      context.Context
	db       *gorm.DB
	repo     *repository.Repository
	svc      *Service
	notifier *recordingNotifier
	now      time.Time

	admin      Actor
	author     Actor
	reviewers  []Actor
	conference *model.Conference
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return openTestDB(t, 1)
}

// openTestDB with maxConns above one runs transactions on separate
// connections. BEGIN IMMEDIATE makes them queue on the sqlite write lock
// instead of failing with "database is locked" on upgrade.
func openTestDB(t *testing.T, maxConns int) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "confportal.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)&_txlock=immediate"
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
	sqlDB.SetMaxOpenConns(maxConns)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, newTestDB(t))
}

func newFixtureWith(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()

	repo := repository.NewRepository(db, zap.NewNop().Sugar())
	notifier := &recordingNotifier{}
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	f := &fixture{
		t:        t,
		ctx:      context.Background(),
		db:       db,
		repo:     repo,
		notifier: notifier,
		now:      now,
	}
	f.svc = NewService(repo, notifier, zap.NewNop().Sugar(), WithClock(func() time.Time { return f.now }))

	f.admin = f.createUser("chair@confportal.test", constant.RoleAdmin)
	f.author = f.createUser("author@confportal.test", constant.RoleAuthor)
	for i := 1; i <= 5; i++ {
		f.reviewers = append(f.reviewers, f.createUser(fmt.Sprintf("reviewer%d@confportal.test", i), constant.RoleReviewer))
	}

	conference, err := f.svc.CreateConference(f.ctx, f.admin, CreateConferenceInput{
		Name:               "International Conference on Systems",
		Acronym:            "icsys",
		Venue:              "Phnom Penh",
		StartsOn:           now.AddDate(0, 3, 0),
		EndsOn:             now.AddDate(0, 3, 2),
		SubmissionDeadline: now.AddDate(0, 1, 0),
	})
	if err != nil {
		t.Fatalf("failed to create conference: %v", err)
	}
	f.conference = conference

	return f
}

func (f *fixture) createUser(email string, role constant.Role) Actor {
	f.t.Helper()

	user := &model.User{Email: email, FirstName: "Test", LastName: string(role), Role: role}
	if err := f.repo.User.Create(f.ctx, nil, user); err != nil {
		f.t.Fatalf("failed to create user %s: %v", email, err)
	}

	return NewActor(user.ID, user.Email, user.Role)
}

func (f *fixture) draftPaper() *model.Paper {
	f.t.Helper()

	paper, err := f.svc.CreatePaper(f.ctx, f.author, CreatePaperInput{
		ConferenceID: f.conference.ID,
		Title:        "Bounded reviewer assignment",
		Topic:        constant.PaperTopicSoftwareEngineering,
		Keyword:      "workflow",
		Abstract:     "We study reviewer assignment.",
		FilePath:     "papers/example.pdf",
	})
	if err != nil {
		f.t.Fatalf("failed to create paper: %v", err)
	}

	return paper
}

func submission() SubmitPaperInput {
	return SubmitPaperInput{
		Track:              "Research",
		OriginalSubmission: true,
		Authors: []AuthorInput{
			{FirstName: "Ada", LastName: "Lovelace", Email: "ada@confportal.test", Role: constant.AuthorRoleAuthor, IsCorresponding: true},
			{FirstName: "Alan", LastName: "Turing", Email: "alan@confportal.test", Role: constant.AuthorRoleCoAuthor},
		},
	}
}

func (f *fixture) submittedPaper() *model.Paper {
	f.t.Helper()

	paper := f.draftPaper()
	paper, err := f.svc.SubmitPaper(f.ctx, f.author, paper.ID, submission())
	if err != nil {
		f.t.Fatalf("failed to submit paper: %v", err)
	}

	return paper
}

func (f *fixture) assign(paperID string, reviewer Actor) *model.PaperAssignment {
	f.t.Helper()

	assignment, err := f.svc.Assign(f.ctx, f.admin, paperID, AssignInput{ReviewerID: reviewer.ID})
	if err != nil {
		f.t.Fatalf("failed to assign %s: %v", reviewer.Email, err)
	}

	return assignment
}

func (f *fixture) paperStatus(paperID string) constant.PaperStatus {
	f.t.Helper()

	paper, err := f.repo.Paper.GetById(f.ctx, nil, paperID)
	if err != nil {
		f.t.Fatalf("failed to reload paper: %v", err)
	}

	return paper.Status
}

func (f *fixture) count(m any, query string, args ...any) int64 {
	f.t.Helper()

	var n int64
	if err := f.db.Model(m).Where(query, args...).Count(&n).Error; err != nil {
		f.t.Fatalf("failed to count: %v", err)
	}

	return n
}

func assertKind(t *testing.T, err error, want *Error) {
	t.Helper()

	if !errors.Is(err, want) {
		t.Fatalf("expected %s error, got %v", want.Kind, err)
	}
}

var goodRatings = Ratings{TechnicalQuality: 7, Originality: 8, Clarity: 6, Relevance: 7, OverallRecommendation: 7}
