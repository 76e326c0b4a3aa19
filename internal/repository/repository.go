package repository

import (
	"github.com/rbgonzales/campus-engagement-api/internal/models"
)

// UserRepository defines the interface for user and institution data access
type UserRepository interface {
	// Register creates a user after re-checking the global uniqueness of
	// email, phone and id number inside the same transaction as the insert.
	Register(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// EmailExists reports whether the email was ever used by any account,
	// including soft-deleted ones.
	EmailExists(email string) (bool, error)

	// FindInstitution finds an institution account by ID
	FindInstitution(id uint64) (*models.User, error)

	// ListInstitutions lists institution accounts, optionally by status
	ListInstitutions(status *models.UserStatus) ([]models.User, error)

	// UpdateStatus sets a user's status
	UpdateStatus(id uint64, status models.UserStatus) error

	// CountByRole counts active users per platform role
	CountByRole(role models.PlatformRole) (int64, error)
}

// OrgUnitRepository defines the interface for college/department/program data access
type OrgUnitRepository interface {
	CreateCollege(college *models.College) error
	FindCollege(id uint64) (*models.College, error)
	ListColleges(institutionID uint64) ([]models.College, error)
	UpdateCollege(college *models.College) error
	// DeleteCollege removes a college together with its departments and
	// programs in one transaction.
	DeleteCollege(id uint64) error

	CreateDepartment(department *models.Department) error
	FindDepartment(id uint64) (*models.Department, error)
	ListDepartments(institutionID uint64, collegeID *uint64) ([]models.Department, error)

	CreateProgram(program *models.Program) error
	ListPrograms(institutionID uint64, departmentID *uint64) ([]models.Program, error)
}

// ClubFilter holds filtering options for listing clubs
type ClubFilter struct {
	InstitutionID *uint64
	Status        *models.ClubStatus
}

// ClubRepository defines the interface for club and membership data access
type ClubRepository interface {
	// Create creates a club and, when creator is non-nil, the creator's
	// officer membership in the same transaction.
	Create(club *models.Club, creator *models.ClubMember) error

	FindByID(id uint64) (*models.Club, error)
	List(filter ClubFilter) ([]models.Club, error)
	Update(club *models.Club) error
	UpdateStatus(id uint64, status models.ClubStatus) error

	AddMember(member *models.ClubMember) error
	FindMember(clubID, userID uint64) (*models.ClubMember, error)
	UpdateMemberRole(clubID, userID uint64, role models.ClubMemberRole) error
	ListMembers(clubID uint64) ([]models.ClubMember, error)

	// ListAdvised lists clubs an employee advises
	ListAdvised(employeeID uint64) ([]models.Club, error)

	// ListMemberClubIDs lists the IDs of clubs the user belongs to
	ListMemberClubIDs(userID uint64) ([]uint64, error)
}

// EventFilter holds filtering options for the event feed
type EventFilter struct {
	Statuses      []models.PostStatus
	ClubID        *uint64
	InstitutionID *uint64
	Tag           *string
	Visibility    *models.EventVisibility

	// RestrictVisibility scopes the feed to what the actor may see: public
	// events, institution-visibility events of ActorInstitutionID, and
	// restricted events of clubs in ActorClubIDs.
	RestrictVisibility bool
	ActorInstitutionID *uint64
	ActorClubIDs       []uint64

	Page     int
	PageSize int
}

// EventRepository defines the interface for event data access
type EventRepository interface {
	// Create creates an event and upserts its tags by name in one
	// transaction (tags are deduplicated platform-wide).
	Create(event *models.Event, tagNames []string) error

	FindByID(id uint64) (*models.Event, error)
	List(filter EventFilter) ([]models.Event, int64, error)
	Update(event *models.Event) error
	UpdateStatus(id uint64, status models.PostStatus) error

	// ListPendingForInstitution lists pending club events across an
	// institution's clubs.
	ListPendingForInstitution(institutionID uint64) ([]models.Event, error)

	CountByStatus(status models.PostStatus) (int64, error)
}

// AnnouncementRepository defines the interface for announcement data access
type AnnouncementRepository interface {
	Create(announcement *models.Announcement) error
	FindByID(id uint64) (*models.Announcement, error)
	ListForClub(clubID uint64, statuses []models.PostStatus) ([]models.Announcement, error)
	UpdateStatus(id uint64, status models.PostStatus) error
	ListPendingForInstitution(institutionID uint64) ([]models.Announcement, error)
}

// RSVPRepository defines the interface for RSVP data access
type RSVPRepository interface {
	// Upsert creates or updates the RSVP for its (user, event) key
	Upsert(rsvp *models.RSVP) error

	// Delete removes the RSVP row for the key entirely
	Delete(key string) error

	FindByKey(key string) (*models.RSVP, error)
	ListByUser(userID uint64) ([]models.RSVP, error)

	// Counts returns the going/interested/checked-in summary for an event
	Counts(eventID uint64) (models.RSVPCounts, error)
}
