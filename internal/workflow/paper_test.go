package workflow

import (
	"testing"

	"github.com/SeakMengs/ConfPortal/internal/constant"
	"github.com/SeakMengs/ConfPortal/internal/model"
	"github.com/SeakMengs/ConfPortal/internal/repository"
)

func TestCreatePaper(t *testing.T) {
	f := newFixture(t)

	paper := f.draftPaper()
	if paper.Status != constant.PaperStatusDraft {
		t.Errorf("new paper status = %s, want draft", paper.Status)
	}
	if paper.AuthorID != f.author.ID {
		t.Errorf("paper author = %s, want %s", paper.AuthorID, f.author.ID)
	}

	_, err := f.svc.CreatePaper(f.ctx, f.author, CreatePaperInput{ConferenceID: f.conference.ID, Title: "x", Topic: "Astrology"})
	assertKind(t, err, ErrInvalidInput)

	_, err = f.svc.CreatePaper(f.ctx, f.author, CreatePaperInput{ConferenceID: "missing", Title: "x", Topic: constant.PaperTopicAI})
	assertKind(t, err, ErrNotFound)

	_, err = f.svc.CreatePaper(f.ctx, f.admin, CreatePaperInput{ConferenceID: f.conference.ID, Title: "x", Topic: constant.PaperTopicAI})
	assertKind(t, err, ErrUnauthorized)
}

func TestSubmitPaper(t *testing.T) {
	f := newFixture(t)
	paper := f.draftPaper()

	_, err := f.svc.SubmitPaper(f.ctx, f.reviewers[0], paper.ID, submission())
	assertKind(t, err, ErrUnauthorized)

	bad := submission()
	bad.Authors[1].IsCorresponding = true
	_, err = f.svc.SubmitPaper(f.ctx, f.author, paper.ID, bad)
	assertKind(t, err, ErrInvalidInput)

	submitted, err := f.svc.SubmitPaper(f.ctx, f.author, paper.ID, submission())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if submitted.Status != constant.PaperStatusSubmitted {
		t.Errorf("status = %s, want submitted", submitted.Status)
	}

	sub, err := f.repo.Submission.GetByPaperId(f.ctx, nil, paper.ID)
	if err != nil {
		t.Fatalf("submission not stored: %v", err)
	}
	if len(sub.Authors) != 2 {
		t.Errorf("stored %d authors, want 2", len(sub.Authors))
	}

	history, err := f.repo.StatusHistory.GetByPaperId(f.ctx, nil, paper.ID)
	if err != nil {
		t.Fatalf("failed to load history: %v", err)
	}
	if len(history) != 1 || history[0].FromStatus != constant.PaperStatusDraft || history[0].ToStatus != constant.PaperStatusSubmitted {
		t.Errorf("unexpected history %+v", history)
	}

	_, err = f.svc.SubmitPaper(f.ctx, f.author, paper.ID, submission())
	assertKind(t, err, ErrInvalidTransition)
}

func TestSubmitDraftCreatedWithoutFile(t *testing.T) {
	f := newFixture(t)

	paper, err := f.svc.CreatePaper(f.ctx, f.author, CreatePaperInput{
		ConferenceID: f.conference.ID,
		Title:        "Paper first, file later",
		Topic:        constant.PaperTopicAI,
		Abstract:     "The file comes with the submission.",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = f.svc.SubmitPaper(f.ctx, f.author, paper.ID, submission())
	assertKind(t, err, ErrInvalidInput)
	if got := f.paperStatus(paper.ID); got != constant.PaperStatusDraft {
		t.Fatalf("status = %s, want draft", got)
	}

	in := submission()
	in.FilePath = "papers/late.pdf"
	submitted, err := f.svc.SubmitPaper(f.ctx, f.author, paper.ID, in)
	if err != nil {
		t.Fatalf("submit with file failed: %v", err)
	}
	if submitted.Status != constant.PaperStatusSubmitted || submitted.FilePath != "papers/late.pdf" {
		t.Errorf("unexpected paper after submit: %+v", submitted)
	}

	stored, err := f.repo.Paper.GetById(f.ctx, nil, paper.ID)
	if err != nil {
		t.Fatalf("failed to reload paper: %v", err)
	}
	if stored.FilePath != "papers/late.pdf" {
		t.Errorf("stored file path = %q", stored.FilePath)
	}
}

func TestSubmitPaperAfterDeadline(t *testing.T) {
	f := newFixture(t)
	paper := f.draftPaper()

	f.now = f.conference.SubmissionDeadline.Add(1)
	_, err := f.svc.SubmitPaper(f.ctx, f.author, paper.ID, submission())
	assertKind(t, err, ErrInvalidTransition)

	if got := f.paperStatus(paper.ID); got != constant.PaperStatusDraft {
		t.Errorf("status = %s, want draft", got)
	}
}

func TestResubmitPaper(t *testing.T) {
	f := newFixture(t)
	paper := f.submittedPaper()

	_, err := f.svc.ResubmitPaper(f.ctx, f.author, paper.ID, "")
	assertKind(t, err, ErrInvalidTransition)

	f.assign(paper.ID, f.reviewers[0])
	if _, err := f.svc.RecordDecision(f.ctx, f.admin, paper.ID, constant.DecisionRevise, "tighten section 3"); err != nil {
		t.Fatalf("record decision failed: %v", err)
	}

	// a late revision is still accepted
	f.now = f.conference.SubmissionDeadline.AddDate(0, 0, 7)
	resubmitted, err := f.svc.ResubmitPaper(f.ctx, f.author, paper.ID, "papers/revised.pdf")
	if err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}
	if resubmitted.Status != constant.PaperStatusSubmitted || resubmitted.FilePath != "papers/revised.pdf" {
		t.Errorf("unexpected paper after resubmit: %+v", resubmitted)
	}

	reopened, err := f.svc.ReopenReview(f.ctx, f.admin, paper.ID)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if reopened.Status != constant.PaperStatusUnderReview {
		t.Errorf("status = %s, want under_review", reopened.Status)
	}

	if n := f.count(&model.PaperStatusHistory{}, "paper_id = ?", paper.ID); n != 5 {
		t.Errorf("history rows = %d, want 5", n)
	}
}

func TestGetPaperAccess(t *testing.T) {
	f := newFixture(t)
	paper := f.submittedPaper()

	if _, err := f.svc.GetPaper(f.ctx, f.author, paper.ID); err != nil {
		t.Errorf("author should read own paper: %v", err)
	}

	_, err := f.svc.GetPaper(f.ctx, f.reviewers[0], paper.ID)
	assertKind(t, err, ErrUnauthorized)

	f.assign(paper.ID, f.reviewers[0])
	got, err := f.svc.GetPaper(f.ctx, f.reviewers[0], paper.ID)
	if err != nil {
		t.Fatalf("assigned reviewer should read paper: %v", err)
	}
	if got.Submission == nil {
		t.Errorf("expected submission to be preloaded")
	}

	_, err = f.svc.GetPaper(f.ctx, f.admin, "missing")
	assertKind(t, err, ErrNotFound)
}

func TestListPapersScopesAuthors(t *testing.T) {
	f := newFixture(t)
	f.submittedPaper()
	f.draftPaper()

	other := f.createUser("other@confportal.test", constant.RoleAuthor)
	papers, total, err := f.svc.ListPapers(f.ctx, other, repository.PaperFilter{}, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 0 || len(papers) != 0 {
		t.Errorf("other author sees %d papers, want 0", total)
	}

	papers, total, err = f.svc.ListPapers(f.ctx, f.admin, repository.PaperFilter{Status: []constant.PaperStatus{constant.PaperStatusSubmitted}}, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(papers) != 1 {
		t.Errorf("admin sees %d submitted papers, want 1", total)
	}

	_, _, err = f.svc.ListPapers(f.ctx, f.admin, repository.PaperFilter{Status: []constant.PaperStatus{"archived"}}, 1, 10)
	assertKind(t, err, ErrInvalidInput)
}
