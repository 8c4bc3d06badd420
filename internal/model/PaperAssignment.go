package model

import (
	"time"

	"github.com/SeakMengs/ConfPortal/internal/constant"
)

type PaperAssignment struct {
	BaseModel
	Status  constant.AssignmentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	DueDate *time.Time                `json:"dueDate"`
	Notes   string                    `gorm:"type:text" json:"notes"`

	// one active assignment per reviewer and paper, cancelled rows are history
	PaperID    string `gorm:"type:text;not null;index;uniqueIndex:idx_active_reviewer_assignment,where:status <> 'cancelled'" json:"paperId"`
	Paper      Paper  `gorm:"constraint:OnDelete:CASCADE" json:"paper,omitempty"`
	ReviewerID string `gorm:"type:text;not null;index;uniqueIndex:idx_active_reviewer_assignment,where:status <> 'cancelled'" json:"reviewerId"`
	Reviewer   User   `gorm:"constraint:OnDelete:CASCADE" json:"reviewer,omitempty"`
	AssignerID string `gorm:"type:text;not null" json:"assignerId"`
	Assigner   User   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (pa PaperAssignment) TableName() string {
	return "paper_assignments"
}
