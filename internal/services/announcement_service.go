package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/rbgonzales/campus-engagement-api/internal/apperrors"
	"github.com/rbgonzales/campus-engagement-api/internal/models"
	"github.com/rbgonzales/campus-engagement-api/internal/repository"
	"github.com/rbgonzales/campus-engagement-api/internal/storage"
	"github.com/rbgonzales/campus-engagement-api/internal/workflow"
	"gorm.io/gorm"
)

var (
	ErrAnnouncementTitleRequired = apperrors.Validation("title is required")
	ErrAnnouncementNotFound      = apperrors.NotFound("announcement not found")
)

// AnnouncementService manages club announcements. They share the club post
// lifecycle with events, minus scheduling.
type AnnouncementService struct {
	announcementRepo repository.AnnouncementRepository
	clubRepo         repository.ClubRepository
	files            storage.FileStore
}

// NewAnnouncementService creates a new AnnouncementService.
func NewAnnouncementService(announcementRepo repository.AnnouncementRepository, clubRepo repository.ClubRepository, files storage.FileStore) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
		clubRepo:         clubRepo,
		files:            files,
	}
}

// CreateAnnouncementInput represents parameters to create an announcement.
type CreateAnnouncementInput struct {
	Title    string
	Body     string
	ImageURL string
}

// CreateAnnouncement creates a club announcement with its starting status
// decided by the actor's capability.
func (s *AnnouncementService) CreateAnnouncement(actor Actor, clubID uint64, input CreateAnnouncementInput) (*models.Announcement, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, ErrAnnouncementTitleRequired
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

	announcement := &models.Announcement{
		Title:     input.Title,
		Body:      input.Body,
		Status:    workflow.ClubPostCreationStatus(caps...),
		ClubID:    club.ID,
		CreatorID: actor.ID,
		ImageURL:  input.ImageURL,
	}

	if err := s.announcementRepo.Create(announcement); err != nil {
		s.cleanupImage(input.ImageURL)
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}

	return announcement, nil
}

// ListForClub lists a club's visible announcements.
func (s *AnnouncementService) ListForClub(clubID uint64) ([]models.Announcement, error) {
	announcements, err := s.announcementRepo.ListForClub(clubID, []models.PostStatus{
		models.PostStatusApproved,
		models.PostStatusPublished,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return announcements, nil
}

// ListPendingForInstitution lists announcements waiting for review across
// the institution's clubs.
func (s *AnnouncementService) ListPendingForInstitution(actor Actor) ([]models.Announcement, error) {
	announcements, err := s.announcementRepo.ListPendingForInstitution(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending announcements: %w", err)
	}
	return announcements, nil
}

// TransitionAnnouncement moves an announcement through its lifecycle if
// the workflow table grants it to the actor.
func (s *AnnouncementService) TransitionAnnouncement(actor Actor, announcementID uint64, to models.PostStatus) (*models.Announcement, error) {
	announcement, caps, err := s.findWithCapabilities(actor, announcementID)
	if err != nil {
		return nil, err
	}

	if !workflow.Allowed(workflow.EntityClubPost, string(announcement.Status), string(to), caps...) {
		return nil, ErrPostTransitionDenied
	}

	if err := s.announcementRepo.UpdateStatus(announcement.ID, to); err != nil {
		return nil, fmt.Errorf("failed to update announcement status: %w", err)
	}

	announcement.Status = to
	return announcement, nil
}

// DeleteAnnouncement hides an announcement and removes its image file.
func (s *AnnouncementService) DeleteAnnouncement(actor Actor, announcementID uint64) error {
	announcement, caps, err := s.findWithCapabilities(actor, announcementID)
	if err != nil {
		return err
	}

	if len(caps) == 0 {
		// No standing with the club at all: the announcement does not
		// exist for this actor.
		return ErrAnnouncementNotFound
	}
	if !workflow.CanDeleteClubPost(caps...) {
		return ErrPostDeleteDenied
	}

	if err := s.announcementRepo.UpdateStatus(announcement.ID, models.PostStatusHidden); err != nil {
		return fmt.Errorf("failed to hide announcement: %w", err)
	}

	s.cleanupImage(announcement.ImageURL)
	return nil
}

func (s *AnnouncementService) findWithCapabilities(actor Actor, announcementID uint64) (*models.Announcement, []workflow.Capability, error) {
	announcement, err := s.announcementRepo.FindByID(announcementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrAnnouncementNotFound
		}
		return nil, nil, fmt.Errorf("failed to find announcement: %w", err)
	}

	club, err := s.clubRepo.FindByID(announcement.ClubID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find club: %w", err)
	}

	caps, err := clubCapabilities(s.clubRepo, actor, club)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve capabilities: %w", err)
	}

	return announcement, caps, nil
}

func (s *AnnouncementService) cleanupImage(url string) {
	if url == "" || s.files == nil {
		return
	}
	if err := s.files.Delete(url); err != nil {
		log.Printf("Failed to delete upload %s: %v", url, err)
	}
}
