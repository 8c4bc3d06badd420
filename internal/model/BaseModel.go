package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseModel struct {
	ID        string     `gorm:"type:text;primaryKey" json:"id"`
	CreatedAt *time.Time `gorm:"default:CURRENT_TIMESTAMP;not null" json:"createdAt"`
	UpdatedAt *time.Time `gorm:"default:CURRENT_TIMESTAMP;not null" json:"-"`
}

func (bm *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4, keep caller supplied ids
	if bm.ID == "" {
		bm.ID = uuid.NewString()
	}
	return
}
