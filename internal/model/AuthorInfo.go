package model

import "github.com/SeakMengs/ConfPortal/internal/constant"

// AuthorInfo is the author snapshot taken at submission time. It is not tied
// to a user account.
type AuthorInfo struct {
	BaseModel
	FirstName       string              `gorm:"type:varchar(50);not null" json:"firstName"`
	LastName        string              `gorm:"type:varchar(50);not null" json:"lastName"`
	Email           string              `gorm:"type:text;not null" json:"email"`
	Affiliation     string              `gorm:"type:text" json:"affiliation"`
	Country         string              `gorm:"type:varchar(60)" json:"country"`
	Role            constant.AuthorRole `gorm:"type:varchar(20);not null" json:"role"`
	IsCorresponding bool                `gorm:"type:boolean;default:false" json:"isCorresponding"`
	Position        int                 `gorm:"type:int;not null" json:"position"`

	SubmissionID string `gorm:"type:text;not null;index" json:"submissionId"`
}

func (a AuthorInfo) TableName() string {
	return "author_infos"
}
