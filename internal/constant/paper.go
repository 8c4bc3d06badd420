package constant

import "slices"

type PaperStatus string

const (
	PaperStatusDraft         PaperStatus = "draft"
	PaperStatusSubmitted     PaperStatus = "submitted"
	PaperStatusUnderReview   PaperStatus = "under_review"
	PaperStatusAccepted      PaperStatus = "accepted"
	PaperStatusRejected      PaperStatus = "rejected"
	PaperStatusNeedsRevision PaperStatus = "needs_revision"
)

var paperStatuses = []PaperStatus{
	PaperStatusDraft,
	PaperStatusSubmitted,
	PaperStatusUnderReview,
	PaperStatusAccepted,
	PaperStatusRejected,
	PaperStatusNeedsRevision,
}

func (s PaperStatus) IsValid() bool {
	return slices.Contains(paperStatuses, s)
}

// Decided reports whether a decision has put the paper in this status.
func (s PaperStatus) Decided() bool {
	return s == PaperStatusAccepted || s == PaperStatusRejected || s == PaperStatusNeedsRevision
}

type PaperTopic string

const (
	PaperTopicAI                  PaperTopic = "AI"
	PaperTopicML                  PaperTopic = "ML"
	PaperTopicDataScience         PaperTopic = "Data Science"
	PaperTopicSoftwareEngineering PaperTopic = "Software Engineering"
	PaperTopicComputerNetworks    PaperTopic = "Computer Networks"
	PaperTopicCybersecurity       PaperTopic = "Cybersecurity"
	PaperTopicOther               PaperTopic = "Other"
)

var paperTopics = []PaperTopic{
	PaperTopicAI,
	PaperTopicML,
	PaperTopicDataScience,
	PaperTopicSoftwareEngineering,
	PaperTopicComputerNetworks,
	PaperTopicCybersecurity,
	PaperTopicOther,
}

func (t PaperTopic) IsValid() bool {
	return slices.Contains(paperTopics, t)
}

type AuthorRole string

const (
	AuthorRoleAuthor   AuthorRole = "author"
	AuthorRoleCoAuthor AuthorRole = "co_author"
)

func (r AuthorRole) IsValid() bool {
	return r == AuthorRoleAuthor || r == AuthorRoleCoAuthor
}
