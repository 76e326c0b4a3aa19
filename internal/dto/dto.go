package dto

import (
	"time"

	"github.com/rbgonzales/campus-engagement-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID            uint64              `json:"id"`
	Name          string              `json:"name"`
	Email         string              `json:"email,omitempty"`
	PlatformRole  models.PlatformRole `json:"platform_role"`
	Status        models.UserStatus   `json:"status"`
	InstitutionID *uint64             `json:"institution_id,omitempty"`
}

// InstitutionDTO represents an institution account in API responses
type InstitutionDTO struct {
	ID      uint64            `json:"id"`
	Name    string            `json:"name"`
	Slug    string            `json:"slug"`
	Status  models.UserStatus `json:"status"`
	LogoURL string            `json:"logo_url,omitempty"`
}

// ClubDTO represents a club in API responses
type ClubDTO struct {
	ID            uint64            `json:"id"`
	Name          string            `json:"name"`
	ClubName      string            `json:"club_name"`
	Acronym       string            `json:"acronym,omitempty"`
	Slug          string            `json:"slug"`
	Status        models.ClubStatus `json:"status"`
	InstitutionID uint64            `json:"institution_id"`
	AdvisorID     *uint64           `json:"advisor_id,omitempty"`
	Advisor       *UserDTO          `json:"advisor,omitempty"`
	LogoURL       string            `json:"logo_url,omitempty"`
}

// ClubMemberDTO represents a club membership in API responses
type ClubMemberDTO struct {
	User     UserDTO               `json:"user"`
	Role     models.ClubMemberRole `json:"role"`
	JoinedAt time.Time             `json:"joined_at"`
}

// EventDTO represents an event in API responses
type EventDTO struct {
	ID            uint64                 `json:"id"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description,omitempty"`
	StartAt       *time.Time             `json:"start_at"`
	EndAt         *time.Time             `json:"end_at"`
	Venue         string                 `json:"venue,omitempty"`
	Visibility    models.EventVisibility `json:"visibility"`
	Status        models.PostStatus      `json:"status"`
	InstitutionID *uint64                `json:"institution_id,omitempty"`
	ClubID        *uint64                `json:"club_id,omitempty"`
	Club          *ClubDTO               `json:"club,omitempty"`
	Tags          []string               `json:"tags,omitempty"`
	ImageURL      string                 `json:"image_url,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

// AnnouncementDTO represents an announcement in API responses
type AnnouncementDTO struct {
	ID        uint64            `json:"id"`
	Title     string            `json:"title"`
	Body      string            `json:"body,omitempty"`
	Status    models.PostStatus `json:"status"`
	ClubID    uint64            `json:"club_id"`
	ImageURL  string            `json:"image_url,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// RSVPDTO represents an RSVP in API responses
type RSVPDTO struct {
	EventID uint64           `json:"event_id"`
	State   models.RSVPState `json:"state"`
	Event   *EventDTO        `json:"event,omitempty"`
}

// ToUserDTO converts a User model to UserDTO. Email is only included when
// includeEmail is set (the user viewing their own account).
func ToUserDTO(user models.User, includeEmail bool) UserDTO {
	dto := UserDTO{
		ID:            user.ID,
		Name:          user.Name,
		PlatformRole:  user.PlatformRole,
		Status:        user.Status,
		InstitutionID: user.InstitutionID,
	}
	if includeEmail {
		dto.Email = user.Email
	}
	return dto
}

// ToInstitutionDTO converts an institution account to InstitutionDTO
func ToInstitutionDTO(user models.User) InstitutionDTO {
	return InstitutionDTO{
		ID:      user.ID,
		Name:    user.Name,
		Slug:    user.Slug,
		Status:  user.Status,
		LogoURL: user.LogoURL,
	}
}

// ToClubDTO converts a Club model to ClubDTO
func ToClubDTO(club models.Club) ClubDTO {
	dto := ClubDTO{
		ID:            club.ID,
		Name:          club.Name,
		ClubName:      club.ClubName,
		Acronym:       club.Acronym,
		Slug:          club.Slug,
		Status:        club.Status,
		InstitutionID: club.InstitutionID,
		AdvisorID:     club.AdvisorID,
		LogoURL:       club.LogoURL,
	}
	if club.Advisor != nil {
		advisor := ToUserDTO(*club.Advisor, false)
		dto.Advisor = &advisor
	}
	return dto
}

// ToClubMemberDTO converts a membership to ClubMemberDTO
func ToClubMemberDTO(member models.ClubMember) ClubMemberDTO {
	dto := ClubMemberDTO{
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	}
	if member.User != nil {
		dto.User = ToUserDTO(*member.User, false)
	}
	return dto
}

// ToEventDTO converts an Event model to EventDTO
func ToEventDTO(event models.Event) EventDTO {
	dto := EventDTO{
		ID:            event.ID,
		Title:         event.Title,
		Description:   event.Description,
		StartAt:       event.StartAt,
		EndAt:         event.EndAt,
		Venue:         event.Venue,
		Visibility:    event.Visibility,
		Status:        event.Status,
		InstitutionID: event.InstitutionID,
		ClubID:        event.ClubID,
		ImageURL:      event.ImageURL,
		CreatedAt:     event.CreatedAt,
	}
	if event.Club != nil {
		club := ToClubDTO(*event.Club)
		dto.Club = &club
	}
	for _, tag := range event.Tags {
		dto.Tags = append(dto.Tags, tag.Name)
	}
	return dto
}

// ToEventDTOs converts a slice of events
func ToEventDTOs(events []models.Event) []EventDTO {
	dtos := make([]EventDTO, len(events))
	for i, event := range events {
		dtos[i] = ToEventDTO(event)
	}
	return dtos
}

// ToAnnouncementDTO converts an Announcement model to AnnouncementDTO
func ToAnnouncementDTO(announcement models.Announcement) AnnouncementDTO {
	return AnnouncementDTO{
		ID:        announcement.ID,
		Title:     announcement.Title,
		Body:      announcement.Body,
		Status:    announcement.Status,
		ClubID:    announcement.ClubID,
		ImageURL:  announcement.ImageURL,
		CreatedAt: announcement.CreatedAt,
	}
}

// ToRSVPDTO converts an RSVP model to RSVPDTO
func ToRSVPDTO(rsvp models.RSVP) RSVPDTO {
	dto := RSVPDTO{
		EventID: rsvp.EventID,
		State:   rsvp.State,
	}
	if rsvp.Event != nil {
		event := ToEventDTO(*rsvp.Event)
		dto.Event = &event
	}
	return dto
}
