package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rbgonzales/campus-engagement-api/internal/apperrors"
	"github.com/rbgonzales/campus-engagement-api/internal/dto"
	"github.com/rbgonzales/campus-engagement-api/internal/middleware"
	"github.com/rbgonzales/campus-engagement-api/internal/models"
	"github.com/rbgonzales/campus-engagement-api/internal/services"
	"github.com/rbgonzales/campus-engagement-api/internal/storage"
)

// StudentHandler serves the student surface: founding and joining clubs,
// club posts and RSVPs.
type StudentHandler struct {
	clubService         *services.ClubService
	eventService        *services.EventService
	announcementService *services.AnnouncementService
	rsvpService         *services.RSVPService
	files               storage.FileStore
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(
	clubService *services.ClubService,
	eventService *services.EventService,
	announcementService *services.AnnouncementService,
	rsvpService *services.RSVPService,
	files storage.FileStore,
) *StudentHandler {
	return &StudentHandler{
		clubService:         clubService,
		eventService:        eventService,
		announcementService: announcementService,
		rsvpService:         rsvpService,
		files:               files,
	}
}

// CreateClub founds a club; it starts pending and the founder becomes an
// officer.
func (h *StudentHandler) CreateClub(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	type createClubRequest struct {
		Name    string `json:"name" form:"name" binding:"required"`
		Acronym string `json:"acronym" form:"acronym"`
	}

	var req createClubRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.BadRequest(c, "")
		return
	}

	logoURL, err := saveUpload(c, h.files, "logo", "clubs")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	club, err := h.clubService.CreateClub(actor, services.CreateClubInput{
		Name:    req.Name,
		Acronym: req.Acronym,
		LogoURL: logoURL,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":   true,
		"club": dto.ToClubDTO(*club),
	})
}

// JoinClub enrolls the student as a member of an approved club.
func (h *StudentHandler) JoinClub(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	clubID, ok := pathID(c, "id")
	if !ok {
		return
	}

	member, err := h.clubService.JoinClub(actor, clubID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":     true,
		"member": dto.ToClubMemberDTO(*member),
	})
}

// CreateClubEvent creates an event on a club the student belongs to;
// officer posts start pending.
func (h *StudentHandler) CreateClubEvent(c *gin.Context) {
	createClubEvent(c, h.eventService, h.files)
}

// CreateClubAnnouncement creates an announcement on a club the student
// belongs to.
func (h *StudentHandler) CreateClubAnnouncement(c *gin.Context) {
	createClubAnnouncement(c, h.announcementService, h.files)
}

// SetRSVP records or updates the student's RSVP on an open event.
func (h *StudentHandler) SetRSVP(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}

	type setRSVPRequest struct {
		State models.RSVPState `json:"state" binding:"required"`
	}

	var req setRSVPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "")
		return
	}

	rsvp, err := h.rsvpService.SetRSVP(actor, eventID, req.State)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"rsvp": dto.ToRSVPDTO(*rsvp),
	})
}

// ClearRSVP removes the student's RSVP; clearing an absent RSVP succeeds.
func (h *StudentHandler) ClearRSVP(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.rsvpService.ClearRSVP(actor, eventID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "RSVP cleared",
	})
}

// ListMyRSVPs lists the student's RSVPs.
func (h *StudentHandler) ListMyRSVPs(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	rsvps, err := h.rsvpService.ListMine(actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	dtos := make([]dto.RSVPDTO, len(rsvps))
	for i, rsvp := range rsvps {
		dtos[i] = dto.ToRSVPDTO(rsvp)
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"rsvps": dtos,
	})
}
