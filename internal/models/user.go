package models

import (
	"time"

	"gorm.io/gorm"
)

type PlatformRole string

const (
	RoleStudent     PlatformRole = "student"
	RoleEmployee    PlatformRole = "employee"
	RoleInstitution PlatformRole = "institution"
	RoleSuperAdmin  PlatformRole = "super_admin"
)

type UserStatus string

const (
	// Institutions move pending -> approved/rejected; other accounts are
	// active until disabled.
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
	UserStatusPending  UserStatus = "pending"
	UserStatusApproved UserStatus = "approved"
	UserStatusRejected UserStatus = "rejected"
)

// User covers every account on the platform; institutions are users with
// PlatformRole "institution". Email, phone and id_number are unique across
// all rows including soft-deleted ones, so an address used by a removed
// account can never be registered again. Phone and id_number are nullable
// pointers: account kinds without them store NULL, which the unique indexes
// admit any number of times.
type User struct {
	ID           uint64       `gorm:"primarykey" json:"id"`
	Name         string       `gorm:"type:varchar(255);not null" json:"name"`
	Email        string       `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone        *string      `gorm:"type:varchar(20);uniqueIndex" json:"phone,omitempty"`
	IDNumber     *string      `gorm:"type:varchar(50);uniqueIndex" json:"id_number,omitempty"`
	PasswordHash string       `gorm:"type:varchar(255);not null" json:"-"`
	PlatformRole PlatformRole `gorm:"type:varchar(20);not null" json:"platform_role"`
	Status       UserStatus   `gorm:"type:varchar(20);not null" json:"status"`

	// Slug and LogoURL are only set for institution accounts. Slugs are
	// display-only and not checked for collisions.
	Slug    string `gorm:"type:varchar(255)" json:"slug,omitempty"`
	LogoURL string `gorm:"type:varchar(512)" json:"logo_url,omitempty"`

	// InstitutionID is the single active institution relationship of a
	// student or employee.
	InstitutionID *uint64 `gorm:"index" json:"institution_id,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Institution *User `gorm:"foreignKey:InstitutionID" json:"institution,omitempty"`
}
