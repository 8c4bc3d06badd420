package model

import (
	"time"

	"github.com/SeakMengs/ConfPortal/internal/constant"
)

type PaperReview struct {
	BaseModel
	TechnicalQuality      int                   `gorm:"type:int;not null;check:technical_quality BETWEEN 1 AND 10" json:"technicalQuality"`
	Originality           int                   `gorm:"type:int;not null;check:originality BETWEEN 1 AND 10" json:"originality"`
	Clarity               int                   `gorm:"type:int;not null;check:clarity BETWEEN 1 AND 10" json:"clarity"`
	Relevance             int                   `gorm:"type:int;not null;check:relevance BETWEEN 1 AND 10" json:"relevance"`
	OverallRecommendation int                   `gorm:"type:int;not null;check:overall_recommendation BETWEEN 1 AND 10" json:"overallRecommendation"`
	Comments              string                `gorm:"type:text" json:"comments"`
	SubmittedAt           time.Time             `gorm:"not null" json:"submittedAt"`
	Status                constant.ReviewStatus `gorm:"type:varchar(20);not null;default:'submitted'" json:"status"`

	AssignmentID string          `gorm:"type:text;not null;uniqueIndex" json:"assignmentId"`
	Assignment   PaperAssignment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	PaperID      string          `gorm:"type:text;not null;index" json:"paperId"`
	ReviewerID   string          `gorm:"type:text;not null;index" json:"reviewerId"`
	Reviewer     User            `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (pr PaperReview) TableName() string {
	return "paper_reviews"
}
