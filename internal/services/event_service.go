package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/rbgonzales/campus-engagement-api/internal/apperrors"
	"github.com/rbgonzales/campus-engagement-api/internal/models"
	"github.com/rbgonzales/campus-engagement-api/internal/repository"
	"github.com/rbgonzales/campus-engagement-api/internal/storage"
	"github.com/rbgonzales/campus-engagement-api/internal/workflow"
	"gorm.io/gorm"
)

var (
	ErrEventTitleRequired    = apperrors.Validation("title is required")
	ErrEventSchedule         = apperrors.Validation("end_at must be after start_at")
	ErrEventNotFound         = apperrors.NotFound("event not found")
	ErrNotClubPoster         = apperrors.Forbidden("not a member, officer or advisor of this club")
	ErrPostTransitionDenied  = apperrors.Forbidden("not allowed to change the post status")
	ErrPostDeleteDenied      = apperrors.Forbidden("not allowed to delete this post")
	ErrInvalidVisibility     = apperrors.Validation("visibility must be public, institution or restricted")
)

// EventService manages events owned by institutions or hosted by clubs.
type EventService struct {
	eventRepo repository.EventRepository
	clubRepo  repository.ClubRepository
	files     storage.FileStore
}

// NewEventService creates a new EventService.
func NewEventService(eventRepo repository.EventRepository, clubRepo repository.ClubRepository, files storage.FileStore) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		clubRepo:  clubRepo,
		files:     files,
	}
}

// CreateEventInput represents parameters to create an event.
type CreateEventInput struct {
	Title       string
	Description string
	StartAt     *time.Time
	EndAt       *time.Time
	Venue       string
	Visibility  models.EventVisibility
	Tags        []string
	ImageURL    string
}

func (input *CreateEventInput) validate() error {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return ErrEventTitleRequired
	}
	if input.StartAt != nil && input.EndAt != nil && !input.EndAt.After(*input.StartAt) {
		return ErrEventSchedule
	}
	switch input.Visibility {
	case "":
		input.Visibility = models.VisibilityPublic
	case models.VisibilityPublic, models.VisibilityInstitution, models.VisibilityRestricted:
	default:
		return ErrInvalidVisibility
	}
	return nil
}

// CreateInstitutionEvent creates an event owned directly by the actor's
// institution. Institution staff publish without review.
func (s *EventService) CreateInstitutionEvent(actor Actor, input CreateEventInput) (*models.Event, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	institutionID := actor.ID
	event := &models.Event{
		Title:         input.Title,
		Description:   input.Description,
		StartAt:       input.StartAt,
		EndAt:         input.EndAt,
		Venue:         input.Venue,
		Visibility:    input.Visibility,
		Status:        models.PostStatusApproved,
		InstitutionID: &institutionID,
		CreatorID:     actor.ID,
		ImageURL:      input.ImageURL,
	}

	if err := s.eventRepo.Create(event, input.Tags); err != nil {
		s.cleanupImage(input.ImageURL)
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// CreateClubEvent creates an event hosted by a club. The starting status is
// decided by the actor's capability, never by the request: advisors post
// approved, officers and members enter the pending queue.
func (s *EventService) CreateClubEvent(actor Actor, clubID uint64, input CreateEventInput) (*models.Event, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	club, err := s.clubRepo.FindByID(clubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.cleanupImage(input.ImageURL)
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to find club: %w", err)
	}
	if club.Status != models.ClubStatusApproved {
		s.cleanupImage(input.ImageURL)
		return nil, ErrClubNotApproved
	}

	caps, err := clubCapabilities(s.clubRepo, actor, club)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve capabilities: %w", err)
	}
	if !workflow.CanPostToClub(caps...) {
		s.cleanupImage(input.ImageURL)
		return nil, ErrNotClubPoster
	}

	event := &models.Event{
		Title:       input.Title,
		Description: input.Description,
		StartAt:     input.StartAt,
		EndAt:       input.EndAt,
		Venue:       input.Venue,
		Visibility:  input.Visibility,
		Status:      workflow.ClubPostCreationStatus(caps...),
		ClubID:      &club.ID,
		CreatorID:   actor.ID,
		ImageURL:    input.ImageURL,
	}

	if err := s.eventRepo.Create(event, input.Tags); err != nil {
		s.cleanupImage(input.ImageURL)
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// GetEvent returns an event under the same visibility rules as the feed.
// The club's own people and the owning institution's staff see it in any
// state, pending included; everyone else only sees a live event their
// standing admits. Hidden and invisible events both answer not-found.
func (s *EventService) GetEvent(actor Actor, eventID uint64) (*models.Event, error) {
	event, err := s.findEvent(eventID)
	if err != nil {
		return nil, err
	}
	if event.Status == models.PostStatusHidden {
		return nil, ErrEventNotFound
	}

	caps, err := s.eventCapabilities(actor, event)
	if err != nil {
		return nil, err
	}
	if len(caps) > 0 {
		return event, nil
	}

	if event.Status != models.PostStatusApproved && event.Status != models.PostStatusPublished {
		return nil, ErrEventNotFound
	}

	switch event.Visibility {
	case models.VisibilityPublic:
		return event, nil
	case models.VisibilityInstitution:
		institutionID, err := s.owningInstitution(event)
		if err != nil {
			return nil, err
		}
		if actor.InstitutionID != nil && *actor.InstitutionID == institutionID {
			return event, nil
		}
	}

	// Restricted events are only visible to the club's own people, all of
	// whom carry a capability above.
	return nil, ErrEventNotFound
}

// owningInstitution resolves the institution an event ultimately belongs
// to: its direct owner, or the institution of its hosting club.
func (s *EventService) owningInstitution(event *models.Event) (uint64, error) {
	if event.InstitutionID != nil {
		return *event.InstitutionID, nil
	}
	club, err := s.clubRepo.FindByID(*event.ClubID)
	if err != nil {
		return 0, fmt.Errorf("failed to find club: %w", err)
	}
	return club.InstitutionID, nil
}

// ListFeedInput represents the event feed query.
type ListFeedInput struct {
	ClubID   *uint64
	Tag      *string
	Page     int
	PageSize int
}

// ListFeed lists approved and published events the actor may see: public
// ones, institution-visibility ones of their institution, and restricted
// ones of clubs they belong to.
func (s *EventService) ListFeed(actor Actor, input ListFeedInput) ([]models.Event, int64, error) {
	clubIDs, err := s.clubRepo.ListMemberClubIDs(actor.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list memberships: %w", err)
	}

	filter := repository.EventFilter{
		Statuses:           []models.PostStatus{models.PostStatusApproved, models.PostStatusPublished},
		ClubID:             input.ClubID,
		Tag:                input.Tag,
		RestrictVisibility: true,
		ActorInstitutionID: actor.InstitutionID,
		ActorClubIDs:       clubIDs,
		Page:               input.Page,
		PageSize:           input.PageSize,
	}

	events, total, err := s.eventRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	return events, total, nil
}

// ListPendingForInstitution lists the club events waiting for the
// institution's review.
func (s *EventService) ListPendingForInstitution(actor Actor) ([]models.Event, error) {
	events, err := s.eventRepo.ListPendingForInstitution(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending events: %w", err)
	}
	return events, nil
}

// TransitionEvent moves a club event through its lifecycle (approve,
// reject, publish) if the workflow table grants it to the actor.
func (s *EventService) TransitionEvent(actor Actor, eventID uint64, to models.PostStatus) (*models.Event, error) {
	event, err := s.findEvent(eventID)
	if err != nil {
		return nil, err
	}

	caps, err := s.eventCapabilities(actor, event)
	if err != nil {
		return nil, err
	}

	if !workflow.Allowed(workflow.EntityClubPost, string(event.Status), string(to), caps...) {
		return nil, ErrPostTransitionDenied
	}

	if err := s.eventRepo.UpdateStatus(event.ID, to); err != nil {
		return nil, fmt.Errorf("failed to update event status: %w", err)
	}

	event.Status = to
	return event, nil
}

// DeleteEvent soft deletes an event by hiding it and removes its image
// file. Advisors, officers and the owning institution's staff may delete.
func (s *EventService) DeleteEvent(actor Actor, eventID uint64) error {
	event, err := s.findEvent(eventID)
	if err != nil {
		return err
	}

	caps, err := s.eventCapabilities(actor, event)
	if err != nil {
		return err
	}
	if len(caps) == 0 {
		// No standing with the owner at all: the event does not exist
		// for this actor.
		return ErrEventNotFound
	}
	if !workflow.CanDeleteClubPost(caps...) {
		return ErrPostDeleteDenied
	}

	if err := s.eventRepo.UpdateStatus(event.ID, models.PostStatusHidden); err != nil {
		return fmt.Errorf("failed to hide event: %w", err)
	}

	// The record survives as hidden; only the image file is physically
	// removed.
	s.cleanupImage(event.ImageURL)
	return nil
}

// eventCapabilities resolves the actor's standing relative to the event's
// owner: the club for club posts, the institution for institution events.
func (s *EventService) eventCapabilities(actor Actor, event *models.Event) ([]workflow.Capability, error) {
	if event.ClubID != nil {
		club, err := s.clubRepo.FindByID(*event.ClubID)
		if err != nil {
			return nil, fmt.Errorf("failed to find club: %w", err)
		}
		caps, err := clubCapabilities(s.clubRepo, actor, club)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve capabilities: %w", err)
		}
		return caps, nil
	}

	var caps []workflow.Capability
	if actor.Role == models.RoleSuperAdmin {
		caps = append(caps, workflow.CapSuperAdmin)
	}
	if event.InstitutionID != nil && actor.ownsInstitution(*event.InstitutionID) {
		caps = append(caps, workflow.CapInstitutionStaff)
	}
	return caps, nil
}

func (s *EventService) findEvent(eventID uint64) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	return event, nil
}

func (s *EventService) cleanupImage(url string) {
	if url == "" || s.files == nil {
		return
	}
	if err := s.files.Delete(url); err != nil {
		log.Printf("Failed to delete upload %s: %v", url, err)
	}
}
