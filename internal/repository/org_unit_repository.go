package repository

import (
	"github.com/rbgonzales/campus-engagement-api/internal/models"
	"gorm.io/gorm"
)

// GormOrgUnitRepository is a GORM implementation of OrgUnitRepository
type GormOrgUnitRepository struct {
	db *gorm.DB
}

// NewOrgUnitRepository creates a new OrgUnitRepository
func NewOrgUnitRepository(db *gorm.DB) OrgUnitRepository {
	return &GormOrgUnitRepository{db: db}
}

// CreateCollege creates a new college
func (r *GormOrgUnitRepository) CreateCollege(college *models.College) error {
	return r.db.Create(college).Error
}

// FindCollege finds a college by ID
func (r *GormOrgUnitRepository) FindCollege(id uint64) (*models.College, error) {
	var college models.College
	if err := r.db.First(&college, id).Error; err != nil {
		return nil, err
	}
	return &college, nil
}

// ListColleges lists an institution's colleges
func (r *GormOrgUnitRepository) ListColleges(institutionID uint64) ([]models.College, error) {
	var colleges []models.College
	if err := r.db.Where("institution_id = ?", institutionID).
		Order("name ASC").
		Find(&colleges).Error; err != nil {
		return nil, err
	}
	return colleges, nil
}

// UpdateCollege updates a college
func (r *GormOrgUnitRepository) UpdateCollege(college *models.College) error {
	return r.db.Save(college).Error
}

// DeleteCollege removes a college and its child units in one transaction
func (r *GormOrgUnitRepository) DeleteCollege(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var departmentIDs []uint64
		if err := tx.Model(&models.Department{}).
			Where("college_id = ?", id).
			Pluck("id", &departmentIDs).Error; err != nil {
			return err
		}

		if len(departmentIDs) > 0 {
			if err := tx.Where("department_id IN ?", departmentIDs).
				Delete(&models.Program{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("college_id = ?", id).
			Delete(&models.Department{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.College{}, id).Error
	})
}

// CreateDepartment creates a new department
func (r *GormOrgUnitRepository) CreateDepartment(department *models.Department) error {
	return r.db.Create(department).Error
}

// FindDepartment finds a department by ID
func (r *GormOrgUnitRepository) FindDepartment(id uint64) (*models.Department, error) {
	var department models.Department
	if err := r.db.First(&department, id).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

// ListDepartments lists an institution's departments, optionally by college
func (r *GormOrgUnitRepository) ListDepartments(institutionID uint64, collegeID *uint64) ([]models.Department, error) {
	var departments []models.Department
	query := r.db.Where("institution_id = ?", institutionID)
	if collegeID != nil {
		query = query.Where("college_id = ?", *collegeID)
	}
	if err := query.Preload("College").Order("name ASC").Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

// CreateProgram creates a new program
func (r *GormOrgUnitRepository) CreateProgram(program *models.Program) error {
	return r.db.Create(program).Error
}

// ListPrograms lists an institution's programs, optionally by department
func (r *GormOrgUnitRepository) ListPrograms(institutionID uint64, departmentID *uint64) ([]models.Program, error) {
	var programs []models.Program
	query := r.db.Where("institution_id = ?", institutionID)
	if departmentID != nil {
		query = query.Where("department_id = ?", *departmentID)
	}
	if err := query.Preload("Department").Order("name ASC").Find(&programs).Error; err != nil {
		return nil, err
	}
	return programs, nil
}
