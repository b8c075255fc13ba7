package models

import "time"

// Comments are append-only: created and deleted, never edited in place.
type Comment struct {
	ID        uint   `gorm:"primarykey"`
	Body      string `gorm:"not null"`
	CreatedAt time.Time
	PostID    uint `gorm:"not null;index"`
	AuthorID  uint `gorm:"not null;index"`

	// Relationships
	Post   Post `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Author User `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
