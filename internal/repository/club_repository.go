package repository

import (
	"github.com/rbgonzales/campus-engagement-api/internal/models"
	"gorm.io/gorm"
)

// GormClubRepository is a GORM implementation of ClubRepository
type GormClubRepository struct {
	db *gorm.DB
}

// NewClubRepository creates a new ClubRepository
func NewClubRepository(db *gorm.DB) ClubRepository {
	return &GormClubRepository{db: db}
}

// Create creates a club and the creator's officer membership atomically
func (r *GormClubRepository) Create(club *models.Club, creator *models.ClubMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(club).Error; err != nil {
			return err
		}

		if creator != nil {
			creator.ClubID = club.ID
			if err := tx.Create(creator).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// FindByID finds a club with its institution and advisor
func (r *GormClubRepository) FindByID(id uint64) (*models.Club, error) {
	var club models.Club
	if err := r.db.
		Preload("Institution").
		Preload("Advisor").
		First(&club, id).Error; err != nil {
		return nil, err
	}
	return &club, nil
}

// List lists clubs matching the filter
func (r *GormClubRepository) List(filter ClubFilter) ([]models.Club, error) {
	var clubs []models.Club
	query := r.db.Model(&models.Club{})
	if filter.InstitutionID != nil {
		query = query.Where("institution_id = ?", *filter.InstitutionID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if err := query.Preload("Advisor").Order("name ASC").Find(&clubs).Error; err != nil {
		return nil, err
	}
	return clubs, nil
}

// Update updates a club
func (r *GormClubRepository) Update(club *models.Club) error {
	return r.db.Save(club).Error
}

// UpdateStatus sets a club's status
func (r *GormClubRepository) UpdateStatus(id uint64, status models.ClubStatus) error {
	return r.db.Model(&models.Club{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// AddMember adds a member to a club
func (r *GormClubRepository) AddMember(member *models.ClubMember) error {
	return r.db.Create(member).Error
}

// FindMember finds a specific club membership
func (r *GormClubRepository) FindMember(clubID, userID uint64) (*models.ClubMember, error) {
	var member models.ClubMember
	if err := r.db.Where("club_id = ? AND user_id = ?", clubID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateMemberRole changes a member's role within a club
func (r *GormClubRepository) UpdateMemberRole(clubID, userID uint64, role models.ClubMemberRole) error {
	return r.db.Model(&models.ClubMember{}).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		Update("role", role).Error
}

// ListMembers lists all members of a club with their users
func (r *GormClubRepository) ListMembers(clubID uint64) ([]models.ClubMember, error) {
	var members []models.ClubMember
	if err := r.db.Preload("User").
		Where("club_id = ?", clubID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListMemberClubIDs lists the IDs of clubs the user belongs to
func (r *GormClubRepository) ListMemberClubIDs(userID uint64) ([]uint64, error) {
	var clubIDs []uint64
	if err := r.db.Model(&models.ClubMember{}).
		Where("user_id = ?", userID).
		Pluck("club_id", &clubIDs).Error; err != nil {
		return nil, err
	}
	return clubIDs, nil
}

// ListAdvised lists clubs an employee advises
func (r *GormClubRepository) ListAdvised(employeeID uint64) ([]models.Club, error) {
	var clubs []models.Club
	if err := r.db.Where("advisor_id = ?", employeeID).
		Order("name ASC").
		Find(&clubs).Error; err != nil {
		return nil, err
	}
	return clubs, nil
}
