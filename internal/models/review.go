package models

import (
	"time"
)

// Review is a user's scored opinion on a title. A user may hold at most one
// review per title; the unique index is the authority under concurrent writes.
type Review struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Text string `json:"text" gorm:"not null"`

	TitleID uint  `json:"-" gorm:"not null;uniqueIndex:idx_reviews_title_author"`
	Title   Title `json:"-" gorm:"constraint:OnDelete:CASCADE"`

	AuthorID uint `json:"-" gorm:"not null;uniqueIndex:idx_reviews_title_author"`
	Author   User `json:"-" gorm:"constraint:OnDelete:CASCADE"`

	Score int `json:"score" gorm:"not null;check:score >= 1 AND score <= 10"`

	PubDate time.Time `json:"pub_date" gorm:"autoCreateTime;index"`
}

func (Review) TableName() string {
	return "reviews"
}
