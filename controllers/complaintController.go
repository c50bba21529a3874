package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"societyhub-be/models"
	"societyhub-be/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ComplaintController struct {
	complaints *services.ComplaintService
}

func NewComplaintController(complaints *services.ComplaintService) *ComplaintController {
	return &ComplaintController{complaints: complaints}
}

// optionalFile returns the uploaded file under field, or nil when none was sent.
func optionalFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	return fh, err
}

// GetComplaints returns all complaints to admins and their own to residents.
func (cc *ComplaintController) GetComplaints(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	complaints, err := cc.complaints.List(ctx, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"count":      len(complaints),
		"complaints": complaints,
	})
}

func (cc *ComplaintController) CreateComplaint(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input struct {
		Title       string `form:"title" json:"title" binding:"required,max=200"`
		Description string `form:"description" json:"description" binding:"required"`
	}
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err)
		return
	}
	image, err := optionalFile(c, "image")
	if err != nil {
		bindError(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	complaint, err := cc.complaints.Create(ctx, services.ComplaintInput{
		Title:       input.Title,
		Description: input.Description,
	}, image, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Complaint created successfully",
		"complaint": complaint,
	})
}

// UpdateComplaint is the admin triage: status, assignee and notes.
func (cc *ComplaintController) UpdateComplaint(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Status     *string `json:"status"`
		AssignedTo *string `json:"assignedTo"`
		AdminNotes *string `json:"adminNotes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	review := services.ComplaintReview{AdminNotes: input.AdminNotes}
	if input.Status != nil {
		status := models.ComplaintStatus(*input.Status)
		review.Status = &status
	}
	if input.AssignedTo != nil && *input.AssignedTo != "" {
		assignee, err := primitive.ObjectIDFromHex(*input.AssignedTo)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignee ID"})
			return
		}
		review.AssignedTo = &assignee
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	complaint, err := cc.complaints.Review(ctx, id, review, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Complaint updated successfully",
		"complaint": complaint,
	})
}

// EditComplaint lets the resident who filed the complaint change it.
func (cc *ComplaintController) EditComplaint(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Title       *string `form:"title" json:"title"`
		Description *string `form:"description" json:"description"`
	}
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err)
		return
	}
	image, err := optionalFile(c, "image")
	if err != nil {
		bindError(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	complaint, err := cc.complaints.Edit(ctx, id, services.ComplaintEdit{
		Title:       input.Title,
		Description: input.Description,
	}, image, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Complaint updated successfully",
		"complaint": complaint,
	})
}

func (cc *ComplaintController) DeleteComplaint(c *gin.Context) {
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

	if err := cc.complaints.Delete(ctx, id, actor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Complaint deleted successfully"})
}
