package model

import "time"

// Note is a retrospective journal entry. Every note belongs to exactly one
// user; the index on UserID backs the owner-scoped queries — a note is only
// ever addressed by (owner, id), never by id alone.
type Note struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	UserID    uint      `json:"-" gorm:"index;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
