package models

import (
	"time"
)

// Comment is a reply to a review. ReviewID is a plain indexed column without
// a foreign-key constraint; comments of a deleted review are removed in the
// review delete transaction instead.
type Comment struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Text string `json:"text" gorm:"not null"`

	ReviewID uint `json:"-" gorm:"not null;index"`

	AuthorID uint `json:"-" gorm:"not null"`
	Author   User `json:"-" gorm:"constraint:OnDelete:CASCADE"`

	PubDate time.Time `json:"pub_date" gorm:"autoCreateTime;index"`
}

func (Comment) TableName() string {
	return "comments"
}
