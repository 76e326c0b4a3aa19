package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rbgonzales/campus-engagement-api/internal/apperrors"
	"github.com/rbgonzales/campus-engagement-api/internal/dto"
	"github.com/rbgonzales/campus-engagement-api/internal/middleware"
	"github.com/rbgonzales/campus-engagement-api/internal/models"
	"github.com/rbgonzales/campus-engagement-api/internal/services"
	"github.com/rbgonzales/campus-engagement-api/internal/storage"
)

// pathID parses a numeric :param from the URL.
func pathID(c *gin.Context, param string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, "Invalid "+param)
		return 0, false
	}
	return id, true
}

// saveUpload stores an optional multipart file field and returns its public
// URL, or "" when the field is absent.
func saveUpload(c *gin.Context, files storage.FileStore, field, kind string) (string, error) {
	if files == nil {
		return "", nil
	}
	file, err := c.FormFile(field)
	if err != nil {
		// Absent file field; JSON requests land here too.
		return "", nil
	}
	url, err := files.Save(kind, file)
	if err != nil {
		return "", apperrors.Storage("Failed to store upload")
	}
	return url, nil
}

// eventRequest is shared by the institution and club event creation
// endpoints. Timestamps are RFC 3339.
type eventRequest struct {
	Title       string   `json:"title" form:"title" binding:"required"`
	Description string   `json:"description" form:"description"`
	StartAt     string   `json:"start_at" form:"start_at"`
	EndAt       string   `json:"end_at" form:"end_at"`
	Venue       string   `json:"venue" form:"venue"`
	Visibility  string   `json:"visibility" form:"visibility"`
	Tags        []string `json:"tags" form:"tags"`
}

func bindEventRequest(c *gin.Context) (*eventRequest, bool) {
	var req eventRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.BadRequest(c, "")
		return nil, false
	}
	if req.StartAt != "" {
		if _, err := time.Parse(time.RFC3339, req.StartAt); err != nil {
			apperrors.BadRequest(c, "Invalid start_at")
			return nil, false
		}
	}
	if req.EndAt != "" {
		if _, err := time.Parse(time.RFC3339, req.EndAt); err != nil {
			apperrors.BadRequest(c, "Invalid end_at")
			return nil, false
		}
	}
	return &req, true
}

// createClubEvent is the shared implementation behind the officer and
// advisor club event endpoints; the service decides the initial status.
func createClubEvent(c *gin.Context, eventService *services.EventService, files storage.FileStore) {
	actor, _ := middleware.GetActor(c)

	clubID, ok := pathID(c, "id")
	if !ok {
		return
	}

	req, ok := bindEventRequest(c)
	if !ok {
		return
	}

	imageURL, err := saveUpload(c, files, "image", "events")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	input := req.toInput()
	input.ImageURL = imageURL

	event, err := eventService.CreateClubEvent(actor, clubID, input)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":    true,
		"event": dto.ToEventDTO(*event),
	})
}

// createClubAnnouncement mirrors createClubEvent for announcements.
func createClubAnnouncement(c *gin.Context, announcementService *services.AnnouncementService, files storage.FileStore) {
	actor, _ := middleware.GetActor(c)

	clubID, ok := pathID(c, "id")
	if !ok {
		return
	}

	type announcementRequest struct {
		Title string `json:"title" form:"title" binding:"required"`
		Body  string `json:"body" form:"body"`
	}

	var req announcementRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.BadRequest(c, "")
		return
	}

	imageURL, err := saveUpload(c, files, "image", "announcements")
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	announcement, err := announcementService.CreateAnnouncement(actor, clubID, services.CreateAnnouncementInput{
		Title:    req.Title,
		Body:     req.Body,
		ImageURL: imageURL,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":           true,
		"announcement": dto.ToAnnouncementDTO(*announcement),
	})
}

func (r *eventRequest) toInput() services.CreateEventInput {
	input := services.CreateEventInput{
		Title:       r.Title,
		Description: r.Description,
		Venue:       r.Venue,
		Visibility:  models.EventVisibility(r.Visibility),
		Tags:        r.Tags,
	}
	if r.StartAt != "" {
		t, _ := time.Parse(time.RFC3339, r.StartAt)
		input.StartAt = &t
	}
	if r.EndAt != "" {
		t, _ := time.Parse(time.RFC3339, r.EndAt)
		input.EndAt = &t
	}
	return input
}
