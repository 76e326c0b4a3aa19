package models

import (
	"time"

	"gorm.io/gorm"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPending   PostStatus = "pending"
	PostStatusApproved  PostStatus = "approved"
	PostStatusPublished PostStatus = "published"
	PostStatusRejected  PostStatus = "rejected"
	PostStatusHidden    PostStatus = "hidden"
)

type EventVisibility string

const (
	VisibilityPublic      EventVisibility = "public"
	VisibilityInstitution EventVisibility = "institution"
	VisibilityRestricted  EventVisibility = "restricted"
)

// Event is owned either directly by an institution (InstitutionID set) or by
// a club (ClubID set); exactly one of the two is non-nil. Deleting an event
// sets Status to hidden and removes its image file.
type Event struct {
	ID            uint64          `gorm:"primarykey" json:"id"`
	Title         string          `gorm:"type:varchar(255);not null" json:"title"`
	Description   string          `gorm:"type:text" json:"description"`
	StartAt       *time.Time      `json:"start_at"`
	EndAt         *time.Time      `json:"end_at"`
	Venue         string          `gorm:"type:varchar(255)" json:"venue,omitempty"`
	Visibility    EventVisibility `gorm:"type:varchar(20);not null;default:'public'" json:"visibility"`
	Status        PostStatus      `gorm:"type:varchar(20);not null;index" json:"status"`
	InstitutionID *uint64         `gorm:"index" json:"institution_id,omitempty"`
	ClubID        *uint64         `gorm:"index" json:"club_id,omitempty"`
	CreatorID     uint64          `gorm:"not null" json:"creator_id"`
	ImageURL      string          `gorm:"type:varchar(512)" json:"image_url,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	Institution *User  `gorm:"foreignKey:InstitutionID" json:"institution,omitempty"`
	Club        *Club  `gorm:"foreignKey:ClubID" json:"club,omitempty"`
	Creator     *User  `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Tags        []Tag  `gorm:"many2many:event_tags" json:"tags,omitempty"`
	RSVPs       []RSVP `gorm:"foreignKey:EventID" json:"-"`
}

// Tag is deduplicated by name (upsert-on-write).
type Tag struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

// EventCheckIn records attendance at an event. The count feeds the RSVP
// summary; there is no write endpoint yet.
// TODO: add the check-in endpoint once the attendance flow is settled.
type EventCheckIn struct {
	EventID   uint64    `gorm:"primarykey" json:"event_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
