package model

import "github.com/SeakMengs/ConfPortal/internal/constant"

type Decision struct {
	BaseModel
	Value   constant.DecisionValue `gorm:"type:varchar(10);not null" json:"value"`
	Comment string                 `gorm:"type:text" json:"comment"`

	PaperID     string `gorm:"type:text;not null;uniqueIndex" json:"paperId"`
	OrganizerID string `gorm:"type:text;not null;index" json:"organizerId"`
	Organizer   User   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (d Decision) TableName() string {
	return "decisions"
}
