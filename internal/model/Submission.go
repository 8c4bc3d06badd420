package model

import "time"

type Submission struct {
	BaseModel
	Track              string    `gorm:"type:varchar(100);not null" json:"track"`
	SubmittedElsewhere bool      `gorm:"type:boolean;default:false" json:"submittedElsewhere"`
	OriginalSubmission bool      `gorm:"type:boolean;default:true" json:"originalSubmission"`
	SubmittedAt        time.Time `gorm:"not null" json:"submittedAt"`

	PaperID string       `gorm:"type:text;not null;uniqueIndex" json:"paperId"`
	Authors []AuthorInfo `gorm:"constraint:OnDelete:CASCADE" json:"authors"`
}

func (s Submission) TableName() string {
	return "submissions"
}
