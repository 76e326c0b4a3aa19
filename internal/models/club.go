package models

import (
	"time"

	"gorm.io/gorm"
)

type ClubStatus string

const (
	ClubStatusPending   ClubStatus = "pending"
	ClubStatusApproved  ClubStatus = "approved"
	ClubStatusSuspended ClubStatus = "suspended"
)

type ClubMemberRole string

const (
	ClubRoleMember  ClubMemberRole = "member"
	ClubRoleOfficer ClubMemberRole = "officer"
)

// Club belongs to an institution. ClubName mirrors Name for clients that
// still read the legacy field. Slug is display-only and not checked for
// collisions. AdvisorID is the one optional advising employee.
type Club struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	ClubName      string         `gorm:"type:varchar(255);not null" json:"club_name"`
	Acronym       string         `gorm:"type:varchar(50)" json:"acronym,omitempty"`
	Slug          string         `gorm:"type:varchar(255)" json:"slug"`
	Status        ClubStatus     `gorm:"type:varchar(20);not null" json:"status"`
	InstitutionID uint64         `gorm:"not null;index" json:"institution_id"`
	AdvisorID     *uint64        `gorm:"index" json:"advisor_id,omitempty"`
	LogoURL       string         `gorm:"type:varchar(512)" json:"logo_url,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Institution *User        `gorm:"foreignKey:InstitutionID" json:"institution,omitempty"`
	Advisor     *User        `gorm:"foreignKey:AdvisorID" json:"advisor,omitempty"`
	Members     []ClubMember `gorm:"foreignKey:ClubID" json:"members,omitempty"`
}

// ClubMember links a user to a club with a role.
type ClubMember struct {
	ClubID   uint64         `gorm:"primarykey" json:"club_id"`
	UserID   uint64         `gorm:"primarykey" json:"user_id"`
	Role     ClubMemberRole `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt time.Time      `json:"joined_at"`

	Club *Club `gorm:"foreignKey:ClubID" json:"club,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
