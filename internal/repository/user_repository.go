package repository

import (
	"errors"
	"fmt"

	"github.com/rbgonzales/campus-engagement-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrEmailTaken is returned when the email was ever used by any account.
	ErrEmailTaken = errors.New("user repository: email already registered")
	// ErrPhoneTaken is returned when the phone number belongs to another account.
	ErrPhoneTaken = errors.New("user repository: phone already registered")
	// ErrIDNumberTaken is returned when the ID number belongs to another account.
	ErrIDNumberTaken = errors.New("user repository: id number already registered")
	// ErrIdentityTaken is returned when the insert itself trips a unique
	// index: a concurrent registration won the race after the checks passed.
	ErrIdentityTaken = errors.New("user repository: email, phone or id number already registered")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Register creates a user inside a single transaction. The count-checks run
// first so the common sequential duplicate gets a precise error; checks run
// Unscoped, so an email used by a soft-deleted account is still taken. The
// unique indexes on email, phone and id_number are the authoritative guard:
// when two registrations race past the checks on separate snapshots, the
// second insert fails on the index and surfaces as ErrIdentityTaken.
func (r *GormUserRepository) Register(user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Unscoped().Model(&models.User{}).
			Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if count > 0 {
			return ErrEmailTaken
		}

		if user.Phone != nil {
			if err := tx.Unscoped().Model(&models.User{}).
				Where("phone = ?", *user.Phone).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check phone: %w", err)
			}
			if count > 0 {
				return ErrPhoneTaken
			}
		}

		if user.IDNumber != nil {
			if err := tx.Unscoped().Model(&models.User{}).
					Where("id_number = ?", *user.IDNumber).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check id number: %w", err)
			}
			if count > 0 {
				return ErrIDNumberTaken
			}
		}

		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrIdentityTaken
			}
			return err
		}
		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailExists reports whether the email was ever used, soft-deleted rows included.
func (r *GormUserRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Unscoped().Model(&models.User{}).
		Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// FindInstitution finds an institution account by ID
func (r *GormUserRepository) FindInstitution(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.
		Where("id = ? AND platform_role = ?", id, models.RoleInstitution).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListInstitutions lists institution accounts, optionally filtered by status
func (r *GormUserRepository) ListInstitutions(status *models.UserStatus) ([]models.User, error) {
	var institutions []models.User
	query := r.db.Where("platform_role = ?", models.RoleInstitution)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if err := query.Order("created_at DESC").Find(&institutions).Error; err != nil {
		return nil, err
	}
	return institutions, nil
}

// UpdateStatus sets a user's status
func (r *GormUserRepository) UpdateStatus(id uint64, status models.UserStatus) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// CountByRole counts users per platform role
func (r *GormUserRepository) CountByRole(role models.PlatformRole) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("platform_role = ?", role).
		Count(&count).Error
	return count, err
}
