package models

import (
	"time"
)

// Post represents one crawled Threads post. ContentHash is the uniqueness
// key: two posts whose content differs only by case or whitespace hash the
// same and are treated as the same post.
type Post struct {
	ID          uint   `gorm:"primaryKey"`
	ContentHash string `gorm:"uniqueIndex;not null"`
	Content     string `gorm:"not null"`
	OriginURL   string
	CreatedAt   time.Time
	Published   bool `gorm:"index;not null;default:false"`
	PublishedAt *time.Time

	Images      []PostImage  `gorm:"constraint:OnDelete:CASCADE"`
	Videos      []PostVideo  `gorm:"constraint:OnDelete:CASCADE"`
	ShopeeLinks []ShopeeLink `gorm:"constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name
func (Post) TableName() string {
	return "posts"
}
