package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rbgonzales/campus-engagement-api/internal/apperrors"
	"github.com/rbgonzales/campus-engagement-api/internal/constants"
	"github.com/rbgonzales/campus-engagement-api/internal/models"
	"github.com/rbgonzales/campus-engagement-api/internal/repository"
	"github.com/rbgonzales/campus-engagement-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrNameRequired         = apperrors.Validation("name is required")
	ErrPasswordTooShort     = apperrors.Validation(fmt.Sprintf("password must be at least %d characters", constants.MinPasswordLength))
	ErrInvalidPhone         = apperrors.Validation("phone must be a valid 11-digit number")
	ErrIDNumberRequired     = apperrors.Validation("id number is required")
	ErrEmailAlreadyExists   = apperrors.Conflict("email already exists")
	ErrPhoneAlreadyExists   = apperrors.Conflict("phone already exists")
	ErrIDNumberExists       = apperrors.Conflict("id number already exists")
	ErrIdentityInUse        = apperrors.Conflict("email, phone or id number already exists")
	ErrInvalidCredentials   = apperrors.New(apperrors.KindUnauthorized, "invalid email or password")
	ErrAccountNotActive     = apperrors.Forbidden("account is not active")
	ErrUserNotFound         = apperrors.NotFound("user not found")
	ErrInstitutionNotFound  = apperrors.NotFound("institution not found")
	ErrInstitutionNotReady  = apperrors.Forbidden("institution is not approved")
)

// AuthService handles registration and authentication.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// RegisterMemberInput registers a student or employee under an institution.
type RegisterMemberInput struct {
	Name          string
	Email         string
	Phone         string
	IDNumber      string
	Password      string
	InstitutionID uint64
}

// RegisterMember creates a student or employee account. The institution must
// exist and be approved; email, phone and id number must never have been
// used by any account.
func (s *AuthService) RegisterMember(role models.PlatformRole, input RegisterMemberInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	idNumber := strings.TrimSpace(input.IDNumber)
	if idNumber == "" {
		return nil, ErrIDNumberRequired
	}

	phone, ok := utils.NormalizePhone(input.Phone)
	if !ok {
		return nil, ErrInvalidPhone
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if taken, err := s.userRepo.EmailExists(email); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if taken {
		return nil, ErrEmailAlreadyExists
	}

	institution, err := s.userRepo.FindInstitution(input.InstitutionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstitutionNotFound
		}
		return nil, fmt.Errorf("failed to find institution: %w", err)
	}
	if institution.Status != models.UserStatusApproved {
		return nil, ErrInstitutionNotReady
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:          name,
		Email:         email,
		Phone:         &phone,
		IDNumber:      &idNumber,
		PasswordHash:  string(hashed),
		PlatformRole:  role,
		Status:        models.UserStatusActive,
		InstitutionID: &institution.ID,
	}

	if err := s.userRepo.Register(user); err != nil {
		return nil, registrationError(err)
	}

	return user, nil
}

// RegisterInstitutionInput registers an institution account.
type RegisterInstitutionInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// RegisterInstitution creates an institution account in pending status with
// a slug derived from its name. Slugs are not deduplicated.
func (s *AuthService) RegisterInstitution(input RegisterInstitutionInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	var phone *string
	if strings.TrimSpace(input.Phone) != "" {
		normalized, ok := utils.NormalizePhone(input.Phone)
		if !ok {
			return nil, ErrInvalidPhone
		}
		phone = &normalized
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if taken, err := s.userRepo.EmailExists(email); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if taken {
		return nil, ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hashed),
		PlatformRole: models.RoleInstitution,
		Status:       models.UserStatusPending,
		Slug:         utils.Slugify(name),
	}

	if err := s.userRepo.Register(user); err != nil {
		return nil, registrationError(err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user. Disabled
// and rejected accounts cannot log in; pending institutions can, so they
// can see their review status.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Status == models.UserStatusDisabled || user.Status == models.UserStatusRejected {
		return nil, ErrAccountNotActive
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

func registrationError(err error) error {
	switch {
	case errors.Is(err, repository.ErrEmailTaken):
		return ErrEmailAlreadyExists
	case errors.Is(err, repository.ErrPhoneTaken):
		return ErrPhoneAlreadyExists
	case errors.Is(err, repository.ErrIDNumberTaken):
		return ErrIDNumberExists
	case errors.Is(err, repository.ErrIdentityTaken):
		return ErrIdentityInUse
	default:
		return fmt.Errorf("failed to register: %w", err)
	}
}
