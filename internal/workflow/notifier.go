package workflow

import (
	"context"

	"github.com/SeakMengs/ConfPortal/internal/constant"
)

// DecisionNotification is what the author is told about a decision.
type DecisionNotification struct {
	PaperID     string                 `json:"paperId"`
	PaperTitle  string                 `json:"paperTitle"`
	AuthorName  string                 `json:"authorName"`
	AuthorEmail string                 `json:"authorEmail"`
	Decision    constant.DecisionValue `json:"decision"`
	Comment     string                 `json:"comment,omitempty"`
}

// Notifier delivers decision notifications. Delivery is best effort: an error
// is logged by the caller and never undoes the decision.
type Notifier interface {
	NotifyDecision(ctx context.Context, notification DecisionNotification) error
}

type NotifierFunc func(ctx context.Context, notification DecisionNotification) error

func (f NotifierFunc) NotifyDecision(ctx context.Context, notification DecisionNotification) error {
	return f(ctx, notification)
}
