package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rbgonzales/campus-engagement-api/internal/apperrors"
	"github.com/rbgonzales/campus-engagement-api/internal/dto"
	"github.com/rbgonzales/campus-engagement-api/internal/middleware"
	"github.com/rbgonzales/campus-engagement-api/internal/models"
	"github.com/rbgonzales/campus-engagement-api/internal/services"
)

// AdminHandler serves the super-admin surface.
type AdminHandler struct {
	adminService *services.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// ListInstitutions lists institution accounts, optionally by status.
func (h *AdminHandler) ListInstitutions(c *gin.Context) {
	var status *models.UserStatus
	if s := c.Query("status"); s != "" {
		v := models.UserStatus(s)
		status = &v
	}

	institutions, err := h.adminService.ListInstitutions(status)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	dtos := make([]dto.InstitutionDTO, len(institutions))
	for i, institution := range institutions {
		dtos[i] = dto.ToInstitutionDTO(institution)
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"institutions": dtos,
	})
}

// ApproveInstitution transitions a pending institution to approved.
func (h *AdminHandler) ApproveInstitution(c *gin.Context) {
	h.reviewInstitution(c, models.UserStatusApproved)
}

// RejectInstitution transitions a pending institution to rejected.
func (h *AdminHandler) RejectInstitution(c *gin.Context) {
	h.reviewInstitution(c, models.UserStatusRejected)
}

func (h *AdminHandler) reviewInstitution(c *gin.Context, to models.UserStatus) {
	actor, _ := middleware.GetActor(c)

	institutionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid institution ID")
		return
	}

	institution, err := h.adminService.ReviewInstitution(actor, institutionID, to)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"institution": dto.ToInstitutionDTO(*institution),
	})
}

// Stats returns platform-wide counts.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"stats": stats,
	})
}
