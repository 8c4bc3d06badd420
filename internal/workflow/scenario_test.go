package workflow

import (
	"testing"

	"github.com/SeakMengs/ConfPortal/internal/constant"
	"github.com/SeakMengs/ConfPortal/internal/metrics"
	"github.com/SeakMengs/ConfPortal/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Submit, assign four reviewers, reject a fifth, review and accept.
func TestReviewScenario(t *testing.T) {
	f := newFixture(t)
	registry := prometheus.NewRegistry()
	WithMetrics(metrics.New(registry))(f.svc)

	paper := f.submittedPaper()

	var assignments []*model.PaperAssignment
	for _, r := range f.reviewers[:4] {
		assignments = append(assignments, f.assign(paper.ID, r))
	}
	if got := f.paperStatus(paper.ID); got != constant.PaperStatusUnderReview {
		t.Fatalf("paper status = %s, want under_review", got)
	}

	_, err := f.svc.Assign(f.ctx, f.admin, paper.ID, AssignInput{ReviewerID: f.reviewers[4].ID})
	assertKind(t, err, ErrCapacityExceeded)

	if _, err := f.svc.SubmitReview(f.ctx, f.reviewers[0], assignments[0].ID, Ratings{7, 8, 6, 7, 7}, "clear contribution"); err != nil {
		t.Fatalf("submit review failed: %v", err)
	}

	a, err := f.repo.Assignment.GetById(f.ctx, nil, assignments[0].ID)
	if err != nil {
		t.Fatalf("failed to reload assignment: %v", err)
	}
	if a.Status != constant.AssignmentStatusCompleted {
		t.Errorf("assignment status = %s, want completed", a.Status)
	}

	if _, err := f.svc.RecordDecision(f.ctx, f.admin, paper.ID, constant.DecisionAccept, "Great work"); err != nil {
		t.Fatalf("record decision failed: %v", err)
	}
	if got := f.paperStatus(paper.ID); got != constant.PaperStatusAccepted {
		t.Errorf("paper status = %s, want accepted", got)
	}
	if f.notifier.count() != 1 || f.notifier.sent[0].Decision != constant.DecisionAccept {
		t.Errorf("expected one accept notification, got %+v", f.notifier.sent)
	}

	_, err = f.svc.RecordDecision(f.ctx, f.admin, paper.ID, constant.DecisionReject, "")
	assertKind(t, err, ErrAlreadyDecided)

	if got, _ := testutil.GatherAndCount(registry, "confportal_workflow_operations_total"); got == 0 {
		t.Errorf("expected workflow operations to be counted")
	}
}
