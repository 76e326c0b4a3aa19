package services

import (
	"errors"
	"fmt"

	"github.com/rbgonzales/campus-engagement-api/internal/apperrors"
	"github.com/rbgonzales/campus-engagement-api/internal/models"
	"github.com/rbgonzales/campus-engagement-api/internal/repository"
	"github.com/rbgonzales/campus-engagement-api/internal/workflow"
	"gorm.io/gorm"
)

var (
	ErrNotSuperAdmin         = apperrors.Forbidden("only the super admin can perform this action")
	ErrInstitutionNotPending = apperrors.Conflict("institution is not pending review")
)

// AdminService covers the super-admin surface: institution review and
// platform-wide dashboards.
type AdminService struct {
	userRepo  repository.UserRepository
	clubRepo  repository.ClubRepository
	eventRepo repository.EventRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(userRepo repository.UserRepository, clubRepo repository.ClubRepository, eventRepo repository.EventRepository) *AdminService {
	return &AdminService{
		userRepo:  userRepo,
		clubRepo:  clubRepo,
		eventRepo: eventRepo,
	}
}

// ListInstitutions lists institution accounts, optionally by status.
func (s *AdminService) ListInstitutions(status *models.UserStatus) ([]models.User, error) {
	institutions, err := s.userRepo.ListInstitutions(status)
	if err != nil {
		return nil, fmt.Errorf("failed to list institutions: %w", err)
	}
	return institutions, nil
}

// ReviewInstitution transitions a pending institution to approved or
// rejected. Only the super admin holds the required capability.
func (s *AdminService) ReviewInstitution(actor Actor, institutionID uint64, to models.UserStatus) (*models.User, error) {
	institution, err := s.userRepo.FindInstitution(institutionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstitutionNotFound
		}
		return nil, fmt.Errorf("failed to find institution: %w", err)
	}

	var caps []workflow.Capability
	if actor.Role == models.RoleSuperAdmin {
		caps = append(caps, workflow.CapSuperAdmin)
	}

	if !workflow.Allowed(workflow.EntityInstitution, string(institution.Status), string(to), caps...) {
		if institution.Status != models.UserStatusPending {
			return nil, ErrInstitutionNotPending
		}
		return nil, ErrNotSuperAdmin
	}

	if err := s.userRepo.UpdateStatus(institution.ID, to); err != nil {
		return nil, fmt.Errorf("failed to update institution status: %w", err)
	}

	institution.Status = to
	return institution, nil
}

// PlatformStats is the super-admin dashboard summary, computed as pure
// reads with no cached state.
type PlatformStats struct {
	Students        int64 `json:"students"`
	Employees       int64 `json:"employees"`
	Institutions    int64 `json:"institutions"`
	PublishedEvents int64 `json:"published_events"`
	PendingEvents   int64 `json:"pending_events"`
}

// Stats returns platform-wide counts.
func (s *AdminService) Stats() (*PlatformStats, error) {
	var stats PlatformStats
	var err error

	if stats.Students, err = s.userRepo.CountByRole(models.RoleStudent); err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}
	if stats.Employees, err = s.userRepo.CountByRole(models.RoleEmployee); err != nil {
		return nil, fmt.Errorf("failed to count employees: %w", err)
	}
	if stats.Institutions, err = s.userRepo.CountByRole(models.RoleInstitution); err != nil {
		return nil, fmt.Errorf("failed to count institutions: %w", err)
	}
	if stats.PublishedEvents, err = s.eventRepo.CountByStatus(models.PostStatusPublished); err != nil {
		return nil, fmt.Errorf("failed to count published events: %w", err)
	}
	if stats.PendingEvents, err = s.eventRepo.CountByStatus(models.PostStatusPending); err != nil {
		return nil, fmt.Errorf("failed to count pending events: %w", err)
	}

	return &stats, nil
}
