package models

import (
	"time"

	"gorm.io/gorm"
)

// College is an institution-level organizational unit.
type College struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	InstitutionID uint64         `gorm:"not null;index" json:"institution_id"`
	LogoURL       string         `gorm:"type:varchar(512)" json:"logo_url,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Institution *User        `gorm:"foreignKey:InstitutionID" json:"institution,omitempty"`
	Departments []Department `gorm:"foreignKey:CollegeID" json:"departments,omitempty"`
}

// Department belongs to a college. InstitutionID is denormalized so scoping
// checks do not need to walk the chain on every read; the service keeps it
// consistent with the college at creation time.
type Department struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	CollegeID     uint64         `gorm:"not null;index" json:"college_id"`
	InstitutionID uint64         `gorm:"not null;index" json:"institution_id"`
	LogoURL       string         `gorm:"type:varchar(512)" json:"logo_url,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	College  *College  `gorm:"foreignKey:CollegeID" json:"college,omitempty"`
	Programs []Program `gorm:"foreignKey:DepartmentID" json:"programs,omitempty"`
}

// Program belongs to a department.
type Program struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	DepartmentID  uint64         `gorm:"not null;index" json:"department_id"`
	InstitutionID uint64         `gorm:"not null;index" json:"institution_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}
