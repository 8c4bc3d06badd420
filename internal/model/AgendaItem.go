package model

import "time"

type AgendaItem struct {
	BaseModel
	Title    string    `gorm:"type:varchar(255);not null" json:"title"`
	Speaker  string    `gorm:"type:varchar(255)" json:"speaker"`
	Room     string    `gorm:"type:varchar(100)" json:"room"`
	StartsAt time.Time `gorm:"not null;index" json:"startsAt"`
	EndsAt   time.Time `gorm:"not null" json:"endsAt"`

	ConferenceID string     `gorm:"type:text;not null;index" json:"conferenceId"`
	Conference   Conference `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	PaperID      *string    `gorm:"type:text" json:"paperId,omitempty"`
	Paper        *Paper     `gorm:"constraint:OnDelete:SET NULL" json:"paper,omitempty"`
}

func (a AgendaItem) TableName() string {
	return "agenda_items"
}
