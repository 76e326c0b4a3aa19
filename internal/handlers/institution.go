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
	"github.com/rbgonzales/campus-engagement-api/internal/storage"
)

// InstitutionHandler serves the institution-admin surface: org units, club
// administration and club post review.
type InstitutionHandler struct {
	orgUnitService      *services.OrgUnitService
	clubService         *services.ClubService
	eventService        *services.EventService
	announcementService *services.AnnouncementService
	files               storage.FileStore
}

// NewInstitutionHandler creates a new InstitutionHandler.
func NewInstitutionHandler(
	orgUnitService *services.OrgUnitService,
	clubService *services.ClubService,
	eventService *services.EventService,
	announcementService *services.AnnouncementService,
	files storage.FileStore,
) *InstitutionHandler {
	return &InstitutionHandler{
		orgUnitService:      orgUnitService,
		clubService:         clubService,
		eventService:        eventService,
		announcementService: announcementService,
		files:               files,
	}
}

// CreateCollege creates a college, optionally with a logo upload.
func (h *InstitutionHandler) CreateCollege(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	type createCollegeRequest struct {
		Name string `json:"name" form:"name" binding:"required"`
	}

	var req createCollegeRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.BadRequest(c, "")
		return
	}

	logoURL, err := saveUpload(c, h.files, "logo", "colleges")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	college, err := h.orgUnitService.CreateCollege(actor, req.Name, logoURL)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":      true,
		"college": college,
	})
}

// ListColleges lists the institution's colleges.
func (h *InstitutionHandler) ListColleges(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	colleges, err := h.orgUnitService.ListColleges(actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"colleges": colleges,
	})
}

// UpdateCollege renames a college.
func (h *InstitutionHandler) UpdateCollege(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	collegeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	type updateCollegeRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req updateCollegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "")
		return
	}

	college, err := h.orgUnitService.UpdateCollege(actor, collegeID, req.Name)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"college": college,
	})
}

// DeleteCollege removes a college with its departments and programs.
func (h *InstitutionHandler) DeleteCollege(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	collegeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.orgUnitService.DeleteCollege(actor, collegeID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "College deleted successfully",
	})
}

// CreateDepartment creates a department under one of the institution's
// colleges.
func (h *InstitutionHandler) CreateDepartment(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	type createDepartmentRequest struct {
		Name      string `json:"name" form:"name" binding:"required"`
		CollegeID uint64 `json:"college_id" form:"college_id" binding:"required"`
	}

	var req createDepartmentRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.BadRequest(c, "")
		return
	}

	logoURL, err := saveUpload(c, h.files, "logo", "departments")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	department, err := h.orgUnitService.CreateDepartment(actor, req.CollegeID, req.Name, logoURL)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":         true,
		"department": department,
	})
}

// ListDepartments lists departments, optionally filtered by college.
func (h *InstitutionHandler) ListDepartments(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var collegeID *uint64
	if s := c.Query("college_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			apperrors.BadRequest(c, "Invalid college_id")
			return
		}
		collegeID = &id
	}

	departments, err := h.orgUnitService.ListDepartments(actor, collegeID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"departments": departments,
	})
}

// CreateProgram creates a program under one of the institution's
// departments.
func (h *InstitutionHandler) CreateProgram(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	type createProgramRequest struct {
		Name         string `json:"name" binding:"required"`
		DepartmentID uint64 `json:"department_id" binding:"required"`
	}

	var req createProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "")
		return
	}

	program, err := h.orgUnitService.CreateProgram(actor, req.DepartmentID, req.Name)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":      true,
		"program": program,
	})
}

// ListPrograms lists programs, optionally filtered by department.
func (h *InstitutionHandler) ListPrograms(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var departmentID *uint64
	if s := c.Query("department_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			apperrors.BadRequest(c, "Invalid department_id")
			return
		}
		departmentID = &id
	}

	programs, err := h.orgUnitService.ListPrograms(actor, departmentID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"programs": programs,
	})
}

// CreateClub creates a club under the institution; it is approved
// immediately.
func (h *InstitutionHandler) CreateClub(c *gin.Context) {
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

// ListClubs lists the institution's clubs, optionally by status.
func (h *InstitutionHandler) ListClubs(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	filter := repository.ClubFilter{InstitutionID: &actor.ID}
	if s := c.Query("status"); s != "" {
		status := models.ClubStatus(s)
		filter.Status = &status
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

// ApproveClub transitions a club to approved.
func (h *InstitutionHandler) ApproveClub(c *gin.Context) {
	h.transitionClub(c, models.ClubStatusApproved)
}

// SuspendClub transitions a club to suspended.
func (h *InstitutionHandler) SuspendClub(c *gin.Context) {
	h.transitionClub(c, models.ClubStatusSuspended)
}

func (h *InstitutionHandler) transitionClub(c *gin.Context, to models.ClubStatus) {
	actor, _ := middleware.GetActor(c)

	clubID, ok := pathID(c, "id")
	if !ok {
		return
	}

	club, err := h.clubService.TransitionClub(actor, clubID, to)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"club": dto.ToClubDTO(*club),
	})
}

// AssignAdvisor sets the advising employee of a club.
func (h *InstitutionHandler) AssignAdvisor(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	clubID, ok := pathID(c, "id")
	if !ok {
		return
	}

	type assignAdvisorRequest struct {
		EmployeeID uint64 `json:"employee_id" binding:"required"`
	}

	var req assignAdvisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "")
		return
	}

	club, err := h.clubService.AssignAdvisor(actor, clubID, req.EmployeeID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"club": dto.ToClubDTO(*club),
	})
}

// CreateEvent creates an institution-owned event; it is approved
// immediately.
func (h *InstitutionHandler) CreateEvent(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	req, ok := bindEventRequest(c)
	if !ok {
		return
	}

	imageURL, err := saveUpload(c, h.files, "image", "events")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	input := req.toInput()
	input.ImageURL = imageURL

	event, err := h.eventService.CreateInstitutionEvent(actor, input)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":    true,
		"event": dto.ToEventDTO(*event),
	})
}

// ListPendingEvents lists club events waiting for the institution's review.
func (h *InstitutionHandler) ListPendingEvents(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	events, err := h.eventService.ListPendingForInstitution(actor)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"events": dto.ToEventDTOs(events),
	})
}

// ApproveEvent transitions a pending club event to approved.
func (h *InstitutionHandler) ApproveEvent(c *gin.Context) {
	h.transitionEvent(c, models.PostStatusApproved)
}

// RejectEvent transitions a pending club event to rejected.
func (h *InstitutionHandler) RejectEvent(c *gin.Context) {
	h.transitionEvent(c, models.PostStatusRejected)
}

func (h *InstitutionHandler) transitionEvent(c *gin.Context, to models.PostStatus) {
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

// ListPendingAnnouncements lists announcements waiting for review.
func (h *InstitutionHandler) ListPendingAnnouncements(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	announcements, err := h.announcementService.ListPendingForInstitution(actor)
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

// ApproveAnnouncement transitions a pending announcement to approved.
func (h *InstitutionHandler) ApproveAnnouncement(c *gin.Context) {
	h.transitionAnnouncement(c, models.PostStatusApproved)
}

// RejectAnnouncement transitions a pending announcement to rejected.
func (h *InstitutionHandler) RejectAnnouncement(c *gin.Context) {
	h.transitionAnnouncement(c, models.PostStatusRejected)
}

func (h *InstitutionHandler) transitionAnnouncement(c *gin.Context, to models.PostStatus) {
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
