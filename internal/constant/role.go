package constant

type Role string

const (
	// Organizer of a conference
	RoleAdmin    Role = "Admin"
	RoleReviewer Role = "Reviewer"
	RoleAuthor   Role = "Author"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleReviewer || r == RoleAuthor
}

type Capability string

const (
	PaperCreate      Capability = "paper-create"
	PaperSubmit      Capability = "paper-submit"
	PaperAssign      Capability = "paper-assign"
	PaperReview      Capability = "paper-review"
	PaperApprove     Capability = "paper-approve"
	ConferenceManage Capability = "conference-manage"
	AgendaManage     Capability = "agenda-manage"
)
