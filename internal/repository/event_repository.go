package repository

import (
	"github.com/rbgonzales/campus-engagement-api/internal/database"
	"github.com/rbgonzales/campus-engagement-api/internal/models"
	"gorm.io/gorm"
)

// GormEventRepository is a GORM implementation of EventRepository
type GormEventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &GormEventRepository{db: db}
}

// Create creates an event and upserts its tags by name in one transaction.
// Tags are deduplicated platform-wide, so concurrent writers of the same
// tag name converge on a single row.
func (r *GormEventRepository) Create(event *models.Event, tagNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}

		for _, name := range tagNames {
			if name == "" {
				continue
			}
			var tag models.Tag
			if err := tx.Where(models.Tag{Name: name}).
				FirstOrCreate(&tag).Error; err != nil {
				return err
			}
			if err := tx.Model(event).Association("Tags").Append(&tag); err != nil {
				return err
			}
		}

		return nil
	})
}

// FindByID finds an event with its owner, creator and tags
func (r *GormEventRepository) FindByID(id uint64) (*models.Event, error) {
	var event models.Event
	if err := r.db.
		Preload("Institution").
		Preload("Club").
		Preload("Creator").
		Preload("Tags").
		First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// List retrieves events matching the filter with pagination
func (r *GormEventRepository) List(filter EventFilter) ([]models.Event, int64, error) {
	var events []models.Event

	query := r.db.Model(&models.Event{})

	if len(filter.Statuses) > 0 {
		query = query.Where("events.status IN ?", filter.Statuses)
	}
	if filter.ClubID != nil {
		query = query.Where("events.club_id = ?", *filter.ClubID)
	}
	if filter.InstitutionID != nil {
		// Events owned by the institution directly or hosted by its clubs.
		clubSubQuery := r.db.Model(&models.Club{}).
			Select("id").
			Where("institution_id = ?", *filter.InstitutionID)
		query = query.Where("events.institution_id = ? OR events.club_id IN (?)",
			*filter.InstitutionID, clubSubQuery)
	}
	if filter.Visibility != nil {
		query = query.Where("events.visibility = ?", *filter.Visibility)
	}
	if filter.RestrictVisibility {
		visible := r.db.Where("events.visibility = ?", models.VisibilityPublic)
		if filter.ActorInstitutionID != nil {
			ownClubs := r.db.Model(&models.Club{}).
				Select("id").
				Where("institution_id = ?", *filter.ActorInstitutionID)
			visible = visible.Or(
				r.db.Where("events.visibility = ?", models.VisibilityInstitution).
					Where("events.institution_id = ? OR events.club_id IN (?)",
						*filter.ActorInstitutionID, ownClubs),
			)
		}
		if len(filter.ActorClubIDs) > 0 {
			visible = visible.Or(
				r.db.Where("events.visibility = ?", models.VisibilityRestricted).
					Where("events.club_id IN ?", filter.ActorClubIDs),
			)
		}
		query = query.Where(visible)
	}
	if filter.Tag != nil {
		query = query.
			Joins("JOIN event_tags ON event_tags.event_id = events.id").
			Joins("JOIN tags ON tags.id = event_tags.tag_id").
			Where("tags.name = ?", *filter.Tag)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.
		Order("events.start_at ASC, events.created_at DESC").
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.Preload("Club").Preload("Tags").Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// Update updates an event
func (r *GormEventRepository) Update(event *models.Event) error {
	return r.db.Save(event).Error
}

// UpdateStatus sets an event's status
func (r *GormEventRepository) UpdateStatus(id uint64, status models.PostStatus) error {
	return r.db.Model(&models.Event{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ListPendingForInstitution lists pending club events across the institution's clubs
func (r *GormEventRepository) ListPendingForInstitution(institutionID uint64) ([]models.Event, error) {
	var events []models.Event
	clubSubQuery := r.db.Model(&models.Club{}).
		Select("id").
		Where("institution_id = ?", institutionID)

	if err := r.db.
		Where("status = ? AND club_id IN (?)", models.PostStatusPending, clubSubQuery).
		Preload("Club").
		Preload("Creator").
		Order("created_at ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// CountByStatus counts events in a given status
func (r *GormEventRepository) CountByStatus(status models.PostStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Event{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
