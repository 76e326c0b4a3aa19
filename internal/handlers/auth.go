package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rbgonzales/campus-engagement-api/internal/apperrors"
	"github.com/rbgonzales/campus-engagement-api/internal/constants"
	"github.com/rbgonzales/campus-engagement-api/internal/dto"
	"github.com/rbgonzales/campus-engagement-api/internal/middleware"
	"github.com/rbgonzales/campus-engagement-api/internal/models"
	"github.com/rbgonzales/campus-engagement-api/internal/services"
)

// AuthHandler coordinates registration and session handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type registerMemberRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required"`
	IDNumber      string `json:"id_number" binding:"required"`
	Password      string `json:"password" binding:"required"`
	InstitutionID uint64 `json:"institution_id" binding:"required"`
}

// RegisterStudent registers a student under an approved institution.
func (h *AuthHandler) RegisterStudent(c *gin.Context) {
	h.registerMember(c, models.RoleStudent)
}

// RegisterEmployee registers an employee under an approved institution.
func (h *AuthHandler) RegisterEmployee(c *gin.Context) {
	h.registerMember(c, models.RoleEmployee)
}

func (h *AuthHandler) registerMember(c *gin.Context, role models.PlatformRole) {
	var req registerMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "")
		return
	}

	user, err := h.authService.RegisterMember(role, services.RegisterMemberInput{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		IDNumber:      req.IDNumber,
		Password:      req.Password,
		InstitutionID: req.InstitutionID,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":   true,
		"user": dto.ToUserDTO(*user, true),
	})
}

// RegisterInstitution registers an institution account; it enters the
// super-admin review queue as pending.
func (h *AuthHandler) RegisterInstitution(c *gin.Context) {
	type registerInstitutionRequest struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Phone    string `json:"phone"`
		Password string `json:"password" binding:"required"`
	}

	var req registerInstitutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "")
		return
	}

	user, err := h.authService.RegisterInstitution(services.RegisterInstitutionInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":          true,
		"institution": dto.ToInstitutionDTO(*user),
	})
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type loginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	session.Set(constants.ContextKeyUserRole, string(user.PlatformRole))
	// Institutions are scoped to themselves; students and employees to
	// their enrolled institution.
	if user.PlatformRole == models.RoleInstitution {
		session.Set(constants.ContextKeyInstitutionID, user.ID)
	} else if user.InstitutionID != nil {
		session.Set(constants.ContextKeyInstitutionID, *user.InstitutionID)
	}
	if err := session.Save(); err != nil {
		apperrors.Respond(c, apperrors.Internal("Failed to save session"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"user": dto.ToUserDTO(*user, true),
	})
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apperrors.Respond(c, apperrors.Internal("Failed to logout"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"user": dto.ToUserDTO(*user, true),
	})
}
