package models

import (
	"time"
)

const (
	DefaultPostImage    = "https://cdn.pixabay.com/photo/2015/10/05/22/37/blank-profile-picture-973460_1280.png"
	DefaultPostCategory = "uncategorized"
)

type Post struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"userId" gorm:"index;not null"`
	Title     string    `json:"title" gorm:"uniqueIndex;not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Category  string    `json:"category" gorm:"index;not null;default:'uncategorized'"`
	Image     string    `json:"image" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategoryCount is one row of the category listing.
type CategoryCount struct {
	Category  string `json:"category"`
	PostCount int64  `json:"postCount"`
}
