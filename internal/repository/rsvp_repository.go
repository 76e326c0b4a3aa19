package repository

import (
	"github.com/rbgonzales/campus-engagement-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRSVPRepository is a GORM implementation of RSVPRepository
type GormRSVPRepository struct {
	db *gorm.DB
}

// NewRSVPRepository creates a new RSVPRepository
func NewRSVPRepository(db *gorm.DB) RSVPRepository {
	return &GormRSVPRepository{db: db}
}

// Upsert creates or updates the RSVP keyed by its (user, event) key. The
// deterministic key makes repeated calls idempotent.
func (r *GormRSVPRepository) Upsert(rsvp *models.RSVP) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "rsvp_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"state", "updated_at"}),
		}).
		Create(rsvp).Error
}

// Delete removes the RSVP row entirely in a single statement, so there is
// no window where edges survive without the record.
func (r *GormRSVPRepository) Delete(key string) error {
	return r.db.Where("rsvp_key = ?", key).Delete(&models.RSVP{}).Error
}

// FindByKey finds an RSVP by its composite key
func (r *GormRSVPRepository) FindByKey(key string) (*models.RSVP, error) {
	var rsvp models.RSVP
	if err := r.db.Where("rsvp_key = ?", key).First(&rsvp).Error; err != nil {
		return nil, err
	}
	return &rsvp, nil
}

// ListByUser lists a user's RSVPs with their events
func (r *GormRSVPRepository) ListByUser(userID uint64) ([]models.RSVP, error) {
	var rsvps []models.RSVP
	if err := r.db.Preload("Event").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&rsvps).Error; err != nil {
		return nil, err
	}
	return rsvps, nil
}

// Counts returns the attendance summary for an event. CheckedIn reads
// event_check_ins, which has no write path yet.
func (r *GormRSVPRepository) Counts(eventID uint64) (models.RSVPCounts, error) {
	var counts models.RSVPCounts

	if err := r.db.Model(&models.RSVP{}).
		Where("event_id = ? AND state = ?", eventID, models.RSVPGoing).
		Count(&counts.Going).Error; err != nil {
		return counts, err
	}

	if err := r.db.Model(&models.RSVP{}).
		Where("event_id = ? AND state = ?", eventID, models.RSVPInterested).
		Count(&counts.Interested).Error; err != nil {
		return counts, err
	}

	if err := r.db.Model(&models.EventCheckIn{}).
		Where("event_id = ?", eventID).
		Count(&counts.CheckedIn).Error; err != nil {
		return counts, err
	}

	return counts, nil
}
