package models

import (
	"fmt"
	"time"
)

type RSVPState string

const (
	RSVPGoing      RSVPState = "going"
	RSVPInterested RSVPState = "interested"
)

// RSVP is keyed by the synthetic "<userID>-<eventID>" key, which makes the
// upsert idempotent per (user, event). Clearing an RSVP deletes the row
// outright; there is no soft delete here.
type RSVP struct {
	Key       string    `gorm:"primarykey;type:varchar(50);column:rsvp_key" json:"rsvp_key"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	EventID   uint64    `gorm:"not null;index" json:"event_id"`
	State     RSVPState `gorm:"type:varchar(20);not null" json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

// RSVPKey builds the composite primary key for a (user, event) pair.
func RSVPKey(userID, eventID uint64) string {
	return fmt.Sprintf("%d-%d", userID, eventID)
}

// RSVPCounts is the attendance summary for an event. CheckedIn is read from
// event_check_ins, which currently has no write path.
type RSVPCounts struct {
	Going      int64 `json:"going"`
	Interested int64 `json:"interested"`
	CheckedIn  int64 `json:"checkedIn"`
}
