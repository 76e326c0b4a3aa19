package models

import (
	"time"

	"gorm.io/gorm"
)

// Announcement is a club post without scheduling fields. It shares the club
// post status lifecycle with Event.
type Announcement struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Title     string         `gorm:"type:varchar(255);not null" json:"title"`
	Body      string         `gorm:"type:text" json:"body"`
	Status    PostStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	ClubID    uint64         `gorm:"not null;index" json:"club_id"`
	CreatorID uint64         `gorm:"not null" json:"creator_id"`
	ImageURL  string         `gorm:"type:varchar(512)" json:"image_url,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Club    *Club `gorm:"foreignKey:ClubID" json:"club,omitempty"`
	Creator *User `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
}
