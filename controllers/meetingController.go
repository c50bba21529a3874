package controllers

import (
	"net/http"
	"strings"

	"societyhub-be/models"
	"societyhub-be/services"

	"github.com/gin-gonic/gin"
)

type MeetingController struct {
	meetings *services.MeetingService
}

func NewMeetingController(meetings *services.MeetingService) *MeetingController {
	return &MeetingController{meetings: meetings}
}

func (mc *MeetingController) CreateMeeting(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input struct {
		Title    string `json:"title" binding:"required,max=200"`
		Agenda   string `json:"agenda" binding:"required"`
		Date     string `json:"date" binding:"required"`
		Location string `json:"location"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	date, err := parseDate(input.Date)
	if err != nil {
		respondError(c, err)
		return
	}

	meeting := &models.Meeting{
		Title:    input.Title,
		Agenda:   input.Agenda,
		Date:     *date,
		Location: input.Location,
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := mc.meetings.Create(ctx, meeting, actor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Meeting created successfully",
		"meeting": meeting,
	})
}

// GetMeetings lists meetings, earliest first.
func (mc *MeetingController) GetMeetings(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	meetings, err := mc.meetings.List(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meetings)
}

func (mc *MeetingController) GetMeetingByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	meeting, err := mc.meetings.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meeting)
}

func (mc *MeetingController) UpdateMeeting(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Title    *string `json:"title" binding:"omitempty,max=200"`
		Agenda   *string `json:"agenda"`
		Date     *string `json:"date"`
		Location *string `json:"location"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	upd := models.MeetingUpdate{
		Title:    trimmed(input.Title),
		Agenda:   trimmed(input.Agenda),
		Location: trimmed(input.Location),
	}
	if input.Date != nil {
		date, err := parseDate(*input.Date)
		if err != nil || date == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
			return
		}
		upd.Date = date
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	meeting, err := mc.meetings.Update(ctx, id, upd, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Meeting updated successfully",
		"meeting": meeting,
	})
}

func (mc *MeetingController) DeleteMeeting(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := mc.meetings.Delete(ctx, id, actor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Meeting deleted successfully"})
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
