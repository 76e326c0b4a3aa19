package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rbgonzales/campus-engagement-api/internal/apperrors"
	"github.com/rbgonzales/campus-engagement-api/internal/constants"
	"github.com/rbgonzales/campus-engagement-api/internal/models"
	"github.com/rbgonzales/campus-engagement-api/internal/services"
)

// RequireAuth checks if the user is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID == nil {
			apperrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		if role := session.Get(constants.ContextKeyUserRole); role != nil {
			c.Set(constants.ContextKeyUserRole, role)
		}
		if institutionID := session.Get(constants.ContextKeyInstitutionID); institutionID != nil {
			c.Set(constants.ContextKeyInstitutionID, institutionID)
		}
		c.Next()
	}
}

// RequireRole gates a route group by platform role. This is the declared
// allow-list per route; handlers never re-check roles themselves.
func RequireRole(roles ...models.PlatformRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			apperrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}

		apperrors.ForbiddenResponse(c, "")
		c.Abort()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetActor assembles the resolved session identity for service calls.
func GetActor(c *gin.Context) (services.Actor, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		return services.Actor{}, false
	}

	actor := services.Actor{ID: userID}

	if role, exists := c.Get(constants.ContextKeyUserRole); exists {
		switch v := role.(type) {
		case string:
			actor.Role = models.PlatformRole(v)
		case models.PlatformRole:
			actor.Role = v
		}
	}

	if institutionID, exists := c.Get(constants.ContextKeyInstitutionID); exists {
		switch v := institutionID.(type) {
		case uint64:
			actor.InstitutionID = &v
		case uint:
			id := uint64(v)
			actor.InstitutionID = &id
		case int:
			if v >= 0 {
				id := uint64(v)
				actor.InstitutionID = &id
			}
		}
	}

	return actor, true
}
