package repository

import (
	"github.com/rbgonzales/campus-engagement-api/internal/models"
	"gorm.io/gorm"
)

// GormAnnouncementRepository is a GORM implementation of AnnouncementRepository
type GormAnnouncementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &GormAnnouncementRepository{db: db}
}

// Create creates a new announcement
func (r *GormAnnouncementRepository) Create(announcement *models.Announcement) error {
	return r.db.Create(announcement).Error
}

// FindByID finds an announcement with its club and creator
func (r *GormAnnouncementRepository) FindByID(id uint64) (*models.Announcement, error) {
	var announcement models.Announcement
	if err := r.db.
		Preload("Club").
		Preload("Creator").
		First(&announcement, id).Error; err != nil {
		return nil, err
	}
	return &announcement, nil
}

// ListForClub lists a club's announcements, optionally filtered by status
func (r *GormAnnouncementRepository) ListForClub(clubID uint64, statuses []models.PostStatus) ([]models.Announcement, error) {
	var announcements []models.Announcement
	query := r.db.Where("club_id = ?", clubID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if err := query.Order("created_at DESC").Find(&announcements).Error; err != nil {
		return nil, err
	}
	return announcements, nil
}

// UpdateStatus sets an announcement's status
func (r *GormAnnouncementRepository) UpdateStatus(id uint64, status models.PostStatus) error {
	return r.db.Model(&models.Announcement{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ListPendingForInstitution lists pending announcements across the institution's clubs
func (r *GormAnnouncementRepository) ListPendingForInstitution(institutionID uint64) ([]models.Announcement, error) {
	var announcements []models.Announcement
	clubSubQuery := r.db.Model(&models.Club{}).
		Select("id").
		Where("institution_id = ?", institutionID)

	if err := r.db.
		Where("status = ? AND club_id IN (?)", models.PostStatusPending, clubSubQuery).
		Preload("Club").
		Preload("Creator").
		Order("created_at ASC").
		Find(&announcements).Error; err != nil {
		return nil, err
	}
	return announcements, nil
}
