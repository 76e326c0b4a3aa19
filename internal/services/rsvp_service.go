package services

import (
	"errors"
	"fmt"

	"github.com/rbgonzales/campus-engagement-api/internal/apperrors"
	"github.com/rbgonzales/campus-engagement-api/internal/models"
	"github.com/rbgonzales/campus-engagement-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidRSVPState = apperrors.Validation("state must be going or interested")
	ErrEventNotOpen     = apperrors.Validation("event is not open for RSVPs")
)

// RSVPService manages per-user event RSVPs. An RSVP is strictly
// self-service: the actor only ever touches their own row.
type RSVPService struct {
	rsvpRepo  repository.RSVPRepository
	eventRepo repository.EventRepository
}

// NewRSVPService creates a new RSVPService.
func NewRSVPService(rsvpRepo repository.RSVPRepository, eventRepo repository.EventRepository) *RSVPService {
	return &RSVPService{
		rsvpRepo:  rsvpRepo,
		eventRepo: eventRepo,
	}
}

// SetRSVP upserts the actor's RSVP for an event. The deterministic
// (user, event) key makes repeated calls with the same state idempotent.
func (s *RSVPService) SetRSVP(actor Actor, eventID uint64, state models.RSVPState) (*models.RSVP, error) {
	if state != models.RSVPGoing && state != models.RSVPInterested {
		return nil, ErrInvalidRSVPState
	}

	if err := s.ensureOpenEvent(eventID); err != nil {
		return nil, err
	}

	rsvp := &models.RSVP{
		Key:     models.RSVPKey(actor.ID, eventID),
		UserID:  actor.ID,
		EventID: eventID,
		State:   state,
	}

	if err := s.rsvpRepo.Upsert(rsvp); err != nil {
		return nil, fmt.Errorf("failed to save rsvp: %w", err)
	}

	return rsvp, nil
}

// ClearRSVP removes the actor's RSVP for an event entirely. Clearing an
// RSVP that does not exist is a no-op.
func (s *RSVPService) ClearRSVP(actor Actor, eventID uint64) error {
	if err := s.rsvpRepo.Delete(models.RSVPKey(actor.ID, eventID)); err != nil {
		return fmt.Errorf("failed to clear rsvp: %w", err)
	}
	return nil
}

// Mine returns the actor's RSVP for an event, or nil when they have none.
func (s *RSVPService) Mine(actor Actor, eventID uint64) (*models.RSVP, error) {
	rsvp, err := s.rsvpRepo.FindByKey(models.RSVPKey(actor.ID, eventID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find rsvp: %w", err)
	}
	return rsvp, nil
}

// ListMine lists the actor's RSVPs with their events.
func (s *RSVPService) ListMine(actor Actor) ([]models.RSVP, error) {
	rsvps, err := s.rsvpRepo.ListByUser(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rsvps: %w", err)
	}
	return rsvps, nil
}

// Counts returns the going/interested/checked-in summary for an event.
func (s *RSVPService) Counts(eventID uint64) (*models.RSVPCounts, error) {
	if err := s.ensureOpenEvent(eventID); err != nil {
		return nil, err
	}

	counts, err := s.rsvpRepo.Counts(eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to count rsvps: %w", err)
	}
	return &counts, nil
}

func (s *RSVPService) ensureOpenEvent(eventID uint64) error {
	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to find event: %w", err)
	}

	switch event.Status {
	case models.PostStatusApproved, models.PostStatusPublished:
		return nil
	case models.PostStatusHidden:
		return ErrEventNotFound
	default:
		return ErrEventNotOpen
	}
}
