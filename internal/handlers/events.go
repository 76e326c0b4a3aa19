package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rbgonzales/campus-engagement-api/internal/apperrors"
	"github.com/rbgonzales/campus-engagement-api/internal/dto"
	"github.com/rbgonzales/campus-engagement-api/internal/middleware"
	"github.com/rbgonzales/campus-engagement-api/internal/models"
	"github.com/rbgonzales/campus-engagement-api/internal/repository"
	"github.com/rbgonzales/campus-engagement-api/internal/services"
	"github.com/rbgonzales/campus-engagement-api/internal/utils"
)

// EventsHandler serves the shared authenticated surface: the event feed,
// club directory, RSVP counts and post deletion.
type EventsHandler struct {
	clubService         *services.ClubService
	eventService        *services.EventService
	announcementService *services.AnnouncementService
	rsvpService         *services.RSVPService
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(
	clubService *services.ClubService,
	eventService *services.EventService,
	announcementService *services.AnnouncementService,
	rsvpService *services.RSVPService,
) *EventsHandler {
	return &EventsHandler{
		clubService:         clubService,
		eventService:        eventService,
		announcementService: announcementService,
		rsvpService:         rsvpService,
	}
}

// ListFeed lists the approved and published events visible to the caller,
// paginated and optionally filtered by club or tag.
func (h *EventsHandler) ListFeed(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	pagination := utils.GetPaginationParams(c)

	input := services.ListFeedInput{
		Page:     pagination.Page,
		PageSize: pagination.Limit,
	}
	if s := c.Query("club_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			apperrors.BadRequest(c, "Invalid club_id")
			return
		}
		input.ClubID = &id
	}
	if tag := c.Query("tag"); tag != "" {
		input.Tag = &tag
	}

	events, total, err := h.eventService.ListFeed(actor, input)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"events":     dto.ToEventDTOs(events),
		"pagination": pagination.Response(total),
	})
}

// GetEvent fetches one event; hidden and invisible events answer not found.
func (h *EventsHandler) GetEvent(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}

	event, err := h.eventService.GetEvent(actor, eventID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"event": dto.ToEventDTO(*event),
	})
}

// GetRSVPCounts returns the going, interested and checked-in tallies of an
// event, along with the caller's own RSVP state.
func (h *EventsHandler) GetRSVPCounts(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}

	counts, err := h.rsvpService.Counts(eventID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	var myState *models.RSVPState
	if mine, err := h.rsvpService.Mine(actor, eventID); err != nil {
		apperrors.Respond(c, err)
		return
	} else if mine != nil {
		myState = &mine.State
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"counts":  counts,
		"my_rsvp": myState,
	})
}

// DeleteEvent hides a club event and removes its image from storage.
func (h *EventsHandler) DeleteEvent(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.eventService.DeleteEvent(actor, eventID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Event deleted successfully",
	})
}

// DeleteAnnouncement hides an announcement and removes its image from
// storage.
func (h *EventsHandler) DeleteAnnouncement(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	announcementID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.announcementService.DeleteAnnouncement(actor, announcementID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Announcement deleted successfully",
	})
}

// ListClubs lists approved clubs, optionally scoped to an institution.
func (h *EventsHandler) ListClubs(c *gin.Context) {
	status := models.ClubStatusApproved
	filter := repository.ClubFilter{Status: &status}

	if s := c.Query("institution_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			apperrors.BadRequest(c, "Invalid institution_id")
			return
		}
		filter.InstitutionID = &id
	}

	clubs, err := h.clubService.ListClubs(filter)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	dtos := make([]dto.ClubDTO, len(clubs))
	for i, club := range clubs {
		dtos[i] = dto.ToClubDTO(club)
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"clubs": dtos,
	})
}

// GetClub fetches one club with its member roster.
func (h *EventsHandler) GetClub(c *gin.Context) {
	clubID, ok := pathID(c, "id")
	if !ok {
		return
	}

	club, members, err := h.clubService.GetClub(clubID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	memberDTOs := make([]dto.ClubMemberDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = dto.ToClubMemberDTO(member)
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"club":    dto.ToClubDTO(*club),
		"members": memberDTOs,
	})
}

// ListClubAnnouncements lists a club's approved and published
// announcements.
func (h *EventsHandler) ListClubAnnouncements(c *gin.Context) {
	clubID, ok := pathID(c, "id")
	if !ok {
		return
	}

	announcements, err := h.announcementService.ListForClub(clubID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	dtos := make([]dto.AnnouncementDTO, len(announcements))
	for i, announcement := range announcements {
		dtos[i] = dto.ToAnnouncementDTO(announcement)
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":            true,
		"announcements": dtos,
	})
}
