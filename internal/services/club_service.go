package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rbgonzales/campus-engagement-api/internal/apperrors"
	"github.com/rbgonzales/campus-engagement-api/internal/models"
	"github.com/rbgonzales/campus-engagement-api/internal/repository"
	"github.com/rbgonzales/campus-engagement-api/internal/utils"
	"github.com/rbgonzales/campus-engagement-api/internal/workflow"
	"gorm.io/gorm"
)

var (
	ErrClubNameRequired     = apperrors.Validation("club name is required")
	ErrClubNotFound         = apperrors.NotFound("club not found")
	ErrClubNotApproved      = apperrors.Forbidden("club is not approved")
	ErrClubTransitionDenied = apperrors.Forbidden("not allowed to change the club status")
	ErrAlreadyClubMember    = apperrors.Conflict("already a member of this club")
	ErrClubMemberNotFound   = apperrors.NotFound("club member not found")
	ErrNotClubAdvisor       = apperrors.Forbidden("only the club advisor can manage member roles")
	ErrAdvisorNotEmployee   = apperrors.Validation("advisor must be an employee of the institution")
	ErrInvalidMemberRole    = apperrors.Validation("role must be member or officer")
)

// ClubService manages clubs, their membership and their lifecycle.
type ClubService struct {
	clubRepo repository.ClubRepository
	userRepo repository.UserRepository
}

// NewClubService creates a new ClubService.
func NewClubService(clubRepo repository.ClubRepository, userRepo repository.UserRepository) *ClubService {
	return &ClubService{
		clubRepo: clubRepo,
		userRepo: userRepo,
	}
}

// CreateClubInput represents parameters to create a club.
type CreateClubInput struct {
	Name    string
	Acronym string
	LogoURL string
	// InstitutionID is required for student self-service; institution
	// actors always create under themselves.
	InstitutionID uint64
}

// CreateClub creates a club. Institution staff create approved clubs under
// their own institution; students create pending clubs under theirs and
// become the founding officer.
func (s *ClubService) CreateClub(actor Actor, input CreateClubInput) (*models.Club, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrClubNameRequired
	}

	var caps []workflow.Capability
	institutionID := input.InstitutionID
	switch actor.Role {
	case models.RoleSuperAdmin:
		caps = append(caps, workflow.CapSuperAdmin)
	case models.RoleInstitution:
		caps = append(caps, workflow.CapInstitutionStaff)
		institutionID = actor.ID
	default:
		if actor.InstitutionID == nil {
			return nil, ErrInstitutionNotFound
		}
		institutionID = *actor.InstitutionID
	}

	institution, err := s.userRepo.FindInstitution(institutionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstitutionNotFound
		}
		return nil, fmt.Errorf("failed to find institution: %w", err)
	}
	if institution.Status != models.UserStatusApproved {
		return nil, ErrInstitutionNotReady
	}

	club := &models.Club{
		Name:          name,
		ClubName:      name,
		Acronym:       strings.TrimSpace(input.Acronym),
		Slug:          utils.Slugify(name),
		Status:        workflow.ClubCreationStatus(caps...),
		InstitutionID: institution.ID,
		LogoURL:       input.LogoURL,
	}

	// Student founders become the club's officer straight away, even while
	// the club waits for approval.
	var founder *models.ClubMember
	if actor.Role == models.RoleStudent {
		founder = &models.ClubMember{
			UserID:   actor.ID,
			Role:     models.ClubRoleOfficer,
			JoinedAt: time.Now(),
		}
	}

	if err := s.clubRepo.Create(club, founder); err != nil {
		return nil, fmt.Errorf("failed to create club: %w", err)
	}

	return club, nil
}

// GetClub returns a club with its members.
func (s *ClubService) GetClub(clubID uint64) (*models.Club, []models.ClubMember, error) {
	club, err := s.clubRepo.FindByID(clubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrClubNotFound
		}
		return nil, nil, fmt.Errorf("failed to find club: %w", err)
	}

	members, err := s.clubRepo.ListMembers(clubID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list club members: %w", err)
	}

	return club, members, nil
}

// ListClubs lists clubs matching the filter.
func (s *ClubService) ListClubs(filter repository.ClubFilter) ([]models.Club, error) {
	clubs, err := s.clubRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	return clubs, nil
}

// ListAdvisedClubs lists the clubs an employee advises.
func (s *ClubService) ListAdvisedClubs(actor Actor) ([]models.Club, error) {
	clubs, err := s.clubRepo.ListAdvised(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list advised clubs: %w", err)
	}
	return clubs, nil
}

// TransitionClub moves a club to the requested status if the workflow table
// grants it to one of the actor's capabilities.
func (s *ClubService) TransitionClub(actor Actor, clubID uint64, to models.ClubStatus) (*models.Club, error) {
	club, err := s.findClub(clubID)
	if err != nil {
		return nil, err
	}

	caps, err := clubCapabilities(s.clubRepo, actor, club)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve capabilities: %w", err)
	}

	if !workflow.Allowed(workflow.EntityClub, string(club.Status), string(to), caps...) {
		return nil, ErrClubTransitionDenied
	}

	if err := s.clubRepo.UpdateStatus(club.ID, to); err != nil {
		return nil, fmt.Errorf("failed to update club status: %w", err)
	}

	club.Status = to
	return club, nil
}

// AssignAdvisor sets the advising employee of a club. Only the owning
// institution (or super admin) may assign; the advisor must be an employee
// enrolled at the same institution.
func (s *ClubService) AssignAdvisor(actor Actor, clubID, employeeID uint64) (*models.Club, error) {
	club, err := s.findClub(clubID)
	if err != nil {
		return nil, err
	}

	if actor.Role != models.RoleSuperAdmin && !actor.ownsInstitution(club.InstitutionID) {
		return nil, ErrClubNotFound
	}

	employee, err := s.userRepo.FindByID(employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdvisorNotEmployee
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	if employee.PlatformRole != models.RoleEmployee ||
		employee.InstitutionID == nil || *employee.InstitutionID != club.InstitutionID {
		return nil, ErrAdvisorNotEmployee
	}

	club.AdvisorID = &employee.ID
	if err := s.clubRepo.Update(club); err != nil {
		return nil, fmt.Errorf("failed to assign advisor: %w", err)
	}

	return club, nil
}

// JoinClub adds the actor as a plain member of an approved club in their
// institution. A student or employee may join the same club once.
func (s *ClubService) JoinClub(actor Actor, clubID uint64) (*models.ClubMember, error) {
	club, err := s.findClub(clubID)
	if err != nil {
		return nil, err
	}
	if club.Status != models.ClubStatusApproved {
		return nil, ErrClubNotApproved
	}
	if actor.InstitutionID == nil || *actor.InstitutionID != club.InstitutionID {
		return nil, ErrClubNotFound
	}

	if _, err := s.clubRepo.FindMember(club.ID, actor.ID); err == nil {
		return nil, ErrAlreadyClubMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.ClubMember{
		ClubID:   club.ID,
		UserID:   actor.ID,
		Role:     models.ClubRoleMember,
		JoinedAt: time.Now(),
	}

	if err := s.clubRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to join club: %w", err)
	}

	return member, nil
}

// SetMemberRole reassigns a member's role. Only the club advisor may do
// this; officers manage members in other ways but never roles.
func (s *ClubService) SetMemberRole(actor Actor, clubID, userID uint64, role models.ClubMemberRole) (*models.ClubMember, error) {
	if role != models.ClubRoleMember && role != models.ClubRoleOfficer {
		return nil, ErrInvalidMemberRole
	}

	club, err := s.findClub(clubID)
	if err != nil {
		return nil, err
	}

	if club.AdvisorID == nil || *club.AdvisorID != actor.ID {
		return nil, ErrNotClubAdvisor
	}

	member, err := s.clubRepo.FindMember(club.ID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClubMemberNotFound
		}
		return nil, fmt.Errorf("failed to find club member: %w", err)
	}

	if err := s.clubRepo.UpdateMemberRole(club.ID, userID, role); err != nil {
		return nil, fmt.Errorf("failed to update member role: %w", err)
	}

	member.Role = role
	return member, nil
}

func (s *ClubService) findClub(clubID uint64) (*models.Club, error) {
	club, err := s.clubRepo.FindByID(clubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to find club: %w", err)
	}
	return club, nil
}
