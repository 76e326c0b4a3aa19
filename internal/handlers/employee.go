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

// EmployeeHandler serves the advisor surface: advised clubs, club posts and
// member role management.
type EmployeeHandler struct {
	clubService         *services.ClubService
	eventService        *services.EventService
	announcementService *services.AnnouncementService
	files               storage.FileStore
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(
	clubService *services.ClubService,
	eventService *services.EventService,
	announcementService *services.AnnouncementService,
	files storage.FileStore,
) *EmployeeHandler {
	return &EmployeeHandler{
		clubService:         clubService,
		eventService:        eventService,
		announcementService: announcementService,
		files:               files,
	}
}

// ListAdvisedClubs lists the clubs the employee advises.
func (h *EmployeeHandler) ListAdvisedClubs(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	clubs, err := h.clubService.ListAdvisedClubs(actor)
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

// CreateClubEvent creates an event on an advised club; advisor posts are
// approved immediately.
func (h *EmployeeHandler) CreateClubEvent(c *gin.Context) {
	createClubEvent(c, h.eventService, h.files)
}

// CreateClubAnnouncement creates an announcement on an advised club.
func (h *EmployeeHandler) CreateClubAnnouncement(c *gin.Context) {
	createClubAnnouncement(c, h.announcementService, h.files)
}

// ApproveEvent transitions a pending club event to approved.
func (h *EmployeeHandler) ApproveEvent(c *gin.Context) {
	h.transitionEvent(c, models.PostStatusApproved)
}

// PublishEvent transitions an approved club event to published.
func (h *EmployeeHandler) PublishEvent(c *gin.Context) {
	h.transitionEvent(c, models.PostStatusPublished)
}

// RejectEvent transitions a pending club event to rejected.
func (h *EmployeeHandler) RejectEvent(c *gin.Context) {
	h.transitionEvent(c, models.PostStatusRejected)
}

func (h *EmployeeHandler) transitionEvent(c *gin.Context, to models.PostStatus) {
	actor, _ := middleware.GetActor(c)

	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}

	event, err := h.eventService.TransitionEvent(actor, eventID, to)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"event": dto.ToEventDTO(*event),
	})
}

// ApproveAnnouncement transitions a pending announcement to approved.
func (h *EmployeeHandler) ApproveAnnouncement(c *gin.Context) {
	h.transitionAnnouncement(c, models.PostStatusApproved)
}

// PublishAnnouncement transitions an approved announcement to published.
func (h *EmployeeHandler) PublishAnnouncement(c *gin.Context) {
	h.transitionAnnouncement(c, models.PostStatusPublished)
}

// RejectAnnouncement transitions a pending announcement to rejected.
func (h *EmployeeHandler) RejectAnnouncement(c *gin.Context) {
	h.transitionAnnouncement(c, models.PostStatusRejected)
}

func (h *EmployeeHandler) transitionAnnouncement(c *gin.Context, to models.PostStatus) {
	actor, _ := middleware.GetActor(c)

	announcementID, ok := pathID(c, "id")
	if !ok {
		return
	}

	announcement, err := h.announcementService.TransitionAnnouncement(actor, announcementID, to)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"announcement": dto.ToAnnouncementDTO(*announcement),
	})
}

// SetMemberRole promotes or demotes a member of an advised club.
func (h *EmployeeHandler) SetMemberRole(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	clubID, ok := pathID(c, "id")
	if !ok {
		return
	}

	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	type setMemberRoleRequest struct {
		Role models.ClubMemberRole `json:"role" binding:"required"`
	}

	var req setMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "")
		return
	}

	member, err := h.clubService.SetMemberRole(actor, clubID, userID, req.Role)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"member": dto.ToClubMemberDTO(*member),
	})
}
