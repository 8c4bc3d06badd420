package model

import "time"

type Conference struct {
	BaseModel
	Name               string    `gorm:"type:varchar(200);not null" json:"name"`
	Acronym            string    `gorm:"type:varchar(30);not null;uniqueIndex" json:"acronym"`
	Venue              string    `gorm:"type:text" json:"venue"`
	StartsOn           time.Time `gorm:"type:date;not null" json:"startsOn"`
	EndsOn             time.Time `gorm:"type:date;not null" json:"endsOn"`
	SubmissionDeadline time.Time `gorm:"not null" json:"submissionDeadline"`

	OrganizerID string `gorm:"type:text;not null;index" json:"organizerId"`
	Organizer   User   `gorm:"constraint:OnDelete:CASCADE" json:"organizer,omitempty"`
}

func (c Conference) TableName() string {
	return "conferences"
}
