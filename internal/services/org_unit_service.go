package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rbgonzales/campus-engagement-api/internal/apperrors"
	"github.com/rbgonzales/campus-engagement-api/internal/models"
	"github.com/rbgonzales/campus-engagement-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrOrgUnitNameRequired = apperrors.Validation("name is required")
	// Foreign parents answer not-found rather than forbidden so callers
	// cannot probe other institutions' org charts.
	ErrCollegeNotFound    = apperrors.NotFound("college not found")
	ErrDepartmentNotFound = apperrors.NotFound("department not found")
)

// OrgUnitService manages the college -> department -> program hierarchy.
// Every child unit must chain up to the caller's institution.
type OrgUnitService struct {
	orgUnitRepo repository.OrgUnitRepository
}

// NewOrgUnitService creates a new OrgUnitService.
func NewOrgUnitService(orgUnitRepo repository.OrgUnitRepository) *OrgUnitService {
	return &OrgUnitService{
		orgUnitRepo: orgUnitRepo,
	}
}

// CreateCollege creates a college under the actor's institution.
func (s *OrgUnitService) CreateCollege(actor Actor, name, logoURL string) (*models.College, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrOrgUnitNameRequired
	}

	college := &models.College{
		Name:          name,
		InstitutionID: actor.ID,
		LogoURL:       logoURL,
	}

	if err := s.orgUnitRepo.CreateCollege(college); err != nil {
		return nil, fmt.Errorf("failed to create college: %w", err)
	}
	return college, nil
}

// ListColleges lists the actor's colleges.
func (s *OrgUnitService) ListColleges(actor Actor) ([]models.College, error) {
	colleges, err := s.orgUnitRepo.ListColleges(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list colleges: %w", err)
	}
	return colleges, nil
}

// UpdateCollege renames a college owned by the actor's institution.
func (s *OrgUnitService) UpdateCollege(actor Actor, collegeID uint64, name string) (*models.College, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrOrgUnitNameRequired
	}

	college, err := s.findOwnCollege(actor, collegeID)
	if err != nil {
		return nil, err
	}

	college.Name = name
	if err := s.orgUnitRepo.UpdateCollege(college); err != nil {
		return nil, fmt.Errorf("failed to update college: %w", err)
	}
	return college, nil
}

// DeleteCollege removes a college with its departments and programs.
func (s *OrgUnitService) DeleteCollege(actor Actor, collegeID uint64) error {
	if _, err := s.findOwnCollege(actor, collegeID); err != nil {
		return err
	}

	if err := s.orgUnitRepo.DeleteCollege(collegeID); err != nil {
		return fmt.Errorf("failed to delete college: %w", err)
	}
	return nil
}

// CreateDepartment creates a department under a college of the actor's
// institution. A college of another institution answers not-found.
func (s *OrgUnitService) CreateDepartment(actor Actor, collegeID uint64, name, logoURL string) (*models.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrOrgUnitNameRequired
	}

	college, err := s.findOwnCollege(actor, collegeID)
	if err != nil {
		return nil, err
	}

	department := &models.Department{
		Name:          name,
		CollegeID:     college.ID,
		InstitutionID: college.InstitutionID,
		LogoURL:       logoURL,
	}

	if err := s.orgUnitRepo.CreateDepartment(department); err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}
	return department, nil
}

// ListDepartments lists the actor's departments, optionally by college.
func (s *OrgUnitService) ListDepartments(actor Actor, collegeID *uint64) ([]models.Department, error) {
	departments, err := s.orgUnitRepo.ListDepartments(actor.ID, collegeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}

// CreateProgram creates a program under a department whose chain ends in the
// actor's institution.
func (s *OrgUnitService) CreateProgram(actor Actor, departmentID uint64, name string) (*models.Program, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrOrgUnitNameRequired
	}

	department, err := s.orgUnitRepo.FindDepartment(departmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to find department: %w", err)
	}
	if department.InstitutionID != actor.ID {
		return nil, ErrDepartmentNotFound
	}

	program := &models.Program{
		Name:          name,
		DepartmentID:  department.ID,
		InstitutionID: department.InstitutionID,
	}

	if err := s.orgUnitRepo.CreateProgram(program); err != nil {
		return nil, fmt.Errorf("failed to create program: %w", err)
	}
	return program, nil
}

// ListPrograms lists the actor's programs, optionally by department.
func (s *OrgUnitService) ListPrograms(actor Actor, departmentID *uint64) ([]models.Program, error) {
	programs, err := s.orgUnitRepo.ListPrograms(actor.ID, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	return programs, nil
}

func (s *OrgUnitService) findOwnCollege(actor Actor, collegeID uint64) (*models.College, error) {
	college, err := s.orgUnitRepo.FindCollege(collegeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollegeNotFound
		}
		return nil, fmt.Errorf("failed to find college: %w", err)
	}
	if college.InstitutionID != actor.ID {
		return nil, ErrCollegeNotFound
	}
	return college, nil
}
