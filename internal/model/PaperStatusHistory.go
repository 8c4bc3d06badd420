package model

import (
	"time"

	"github.com/SeakMengs/ConfPortal/internal/constant"
)

// PaperStatusHistory records every paper status change and who caused it.
type PaperStatusHistory struct {
	BaseModel
	FromStatus constant.PaperStatus `gorm:"type:varchar(20);not null" json:"fromStatus"`
	ToStatus   constant.PaperStatus `gorm:"type:varchar(20);not null" json:"toStatus"`
	Reason     string               `gorm:"type:text" json:"reason"`
	ChangedAt  time.Time            `gorm:"not null" json:"changedAt"`

	PaperID   string `gorm:"type:text;not null;index" json:"paperId"`
	ChangedBy string `gorm:"type:text;not null" json:"changedBy"`
}

func (h PaperStatusHistory) TableName() string {
	return "paper_status_histories"
}
