package models

import "time"

type Comment struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	PostID    uint      `json:"postId" gorm:"index;not null"`
	UserID    uint      `json:"userId" gorm:"index;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}
