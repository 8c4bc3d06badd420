package constant

import "slices"

const (
	MaxReviewersPerPaper = 4
	MinRating            = 1
	MaxRating            = 10
)

type AssignmentStatus string

const (
	AssignmentStatusPending    AssignmentStatus = "pending"
	AssignmentStatusInProgress AssignmentStatus = "in_progress"
	AssignmentStatusCompleted  AssignmentStatus = "completed"
	AssignmentStatusCancelled  AssignmentStatus = "cancelled"
)

var assignmentStatuses = []AssignmentStatus{
	AssignmentStatusPending,
	AssignmentStatusInProgress,
	AssignmentStatusCompleted,
	AssignmentStatusCancelled,
}

func (s AssignmentStatus) IsValid() bool {
	return slices.Contains(assignmentStatuses, s)
}

// Active assignments count towards the reviewer cap of a paper.
func (s AssignmentStatus) Active() bool {
	return s != AssignmentStatusCancelled
}

type ReviewStatus string

const (
	ReviewStatusSubmitted ReviewStatus = "submitted"
)

func (s ReviewStatus) IsValid() bool {
	return s == ReviewStatusSubmitted
}

type DecisionValue string

const (
	DecisionAccept DecisionValue = "Accept"
	DecisionReject DecisionValue = "Reject"
	DecisionRevise DecisionValue = "Revise"
)

var decisionStatus = map[DecisionValue]PaperStatus{
	DecisionAccept: PaperStatusAccepted,
	DecisionReject: PaperStatusRejected,
	DecisionRevise: PaperStatusNeedsRevision,
}

func (d DecisionValue) IsValid() bool {
	_, ok := decisionStatus[d]
	return ok
}

// PaperStatus returns the paper status a decision moves the paper to.
func (d DecisionValue) PaperStatus() PaperStatus {
	return decisionStatus[d]
}

type RecommendationBucket string

const (
	BucketAccept RecommendationBucket = "Accept"
	BucketRevise RecommendationBucket = "Revise"
	BucketReject RecommendationBucket = "Reject"
)

// Bucket an overall recommendation score: 7-10 accept, 4-6 revise, 1-3 reject.
func BucketOf(overallRecommendation int) RecommendationBucket {
	switch {
	case overallRecommendation >= 7:
		return BucketAccept
	case overallRecommendation >= 4:
		return BucketRevise
	default:
		return BucketReject
	}
}
