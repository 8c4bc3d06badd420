package workflow

import "github.com/SeakMengs/ConfPortal/internal/constant"

type transition struct {
	from constant.PaperStatus
	to   constant.PaperStatus
}

// Legal paper status edges and the capability each one needs.
var transitions = map[transition]constant.Capability{
	{constant.PaperStatusDraft, constant.PaperStatusSubmitted}:           constant.PaperSubmit,
	{constant.PaperStatusSubmitted, constant.PaperStatusUnderReview}:     constant.PaperAssign,
	{constant.PaperStatusUnderReview, constant.PaperStatusAccepted}:      constant.PaperApprove,
	{constant.PaperStatusUnderReview, constant.PaperStatusRejected}:      constant.PaperApprove,
	{constant.PaperStatusUnderReview, constant.PaperStatusNeedsRevision}: constant.PaperApprove,
	{constant.PaperStatusNeedsRevision, constant.PaperStatusSubmitted}:   constant.PaperSubmit,
}

// CheckTransition reports whether actor may move a paper from one status to
// another. It has no side effects.
func CheckTransition(from, to constant.PaperStatus, actor Actor) error {
	if !from.IsValid() || !to.IsValid() {
		return newError(KindInvalidTransition, "status", "unknown paper status %q -> %q", from, to)
	}

	capability, ok := transitions[transition{from, to}]
	if !ok {
		return newError(KindInvalidTransition, "status", "paper cannot move from %s to %s", from, to)
	}

	if !actor.Can(capability) {
		return newError(KindUnauthorized, "", "moving a paper from %s to %s requires %s", from, to, capability)
	}

	return nil
}

// CheckDecisionRevision covers changing an existing decision. From under
// review it is a regular transition; between decided states the organizer may
// swap the outcome directly.
func CheckDecisionRevision(from, to constant.PaperStatus, actor Actor) error {
	if !actor.Can(constant.PaperApprove) {
		return newError(KindUnauthorized, "", "revising a decision requires %s", constant.PaperApprove)
	}

	if from == constant.PaperStatusUnderReview {
		return CheckTransition(from, to, actor)
	}

	if from.Decided() && to.Decided() {
		return nil
	}

	return newError(KindInvalidTransition, "status", "decision cannot be revised while paper is %s", from)
}
