package model

import "github.com/SeakMengs/ConfPortal/internal/constant"

// Paper is the aggregate root of the review workflow. Its status only changes
// through the workflow package.
type Paper struct {
	BaseModel
	Title    string               `gorm:"type:varchar(255);not null" json:"title"`
	Topic    constant.PaperTopic  `gorm:"type:varchar(50);not null" json:"topic"`
	Keyword  string               `gorm:"type:varchar(255)" json:"keyword"`
	Abstract string               `gorm:"type:text;not null" json:"abstract"`
	FilePath string               `gorm:"type:text" json:"filePath"`
	Status   constant.PaperStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`

	AuthorID     string     `gorm:"type:text;not null;index" json:"authorId"`
	Author       User       `gorm:"constraint:OnDelete:CASCADE" json:"author,omitempty"`
	ConferenceID string     `gorm:"type:text;not null;index" json:"conferenceId"`
	Conference   Conference `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Submission  *Submission          `gorm:"constraint:OnDelete:CASCADE" json:"submission,omitempty"`
	Decision    *Decision            `gorm:"constraint:OnDelete:CASCADE" json:"decision,omitempty"`
	Assignments []PaperAssignment    `gorm:"constraint:OnDelete:CASCADE" json:"assignments,omitempty"`
	Reviews     []PaperReview        `gorm:"constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	History     []PaperStatusHistory `gorm:"constraint:OnDelete:CASCADE" json:"history,omitempty"`
}

func (p Paper) TableName() string {
	return "papers"
}
