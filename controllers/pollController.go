package controllers

import (
	"net/http"

	"societyhub-be/services"

	"github.com/gin-gonic/gin"
)

type PollController struct {
	polls *services.PollService
}

func NewPollController(polls *services.PollService) *PollController {
	return &PollController{polls: polls}
}

// CreatePoll handles POST /meetings/:id/poll
func (pc *PollController) CreatePoll(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	meetingID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Question string   `json:"question" binding:"required"`
		Options  []string `json:"options"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	poll, err := pc.polls.CreatePoll(ctx, meetingID, input.Question, input.Options, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Poll created successfully",
		"poll":    poll,
	})
}

// Vote handles POST /meetings/:id/vote. The tally is not returned to voters.
func (pc *PollController) Vote(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	meetingID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input struct {
		OptionIndex *int `json:"optionIndex" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := pc.polls.Vote(ctx, meetingID, *input.OptionIndex, actor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Vote submitted"})
}

// Results handles GET /meetings/:id/results
func (pc *PollController) Results(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	meetingID, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	tally, err := pc.polls.Results(ctx, meetingID, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tally)
}

// DeletePoll handles DELETE /meetings/:id/poll
func (pc *PollController) DeletePoll(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	meetingID, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := pc.polls.DeletePoll(ctx, meetingID, actor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Poll deleted successfully"})
}
