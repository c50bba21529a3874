package controllers

import (
	"context"
	"net/http"

	"societyhub-be/models"
	"societyhub-be/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentController struct {
	payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

type paymentLister func(ctx context.Context, actor models.Actor) ([]models.Payment, error)

func (pc *PaymentController) respondList(c *gin.Context, list paymentLister) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	payments, err := list(ctx, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(payments), "payments": payments})
}

// GetPayments returns all payments to admins and their own to residents.
func (pc *PaymentController) GetPayments(c *gin.Context) {
	pc.respondList(c, pc.payments.List)
}

func (pc *PaymentController) GetMyPayments(c *gin.Context) {
	pc.respondList(c, pc.payments.History)
}

func (pc *PaymentController) GetAllPayments(c *gin.Context) {
	pc.respondList(c, pc.payments.All)
}

// CreatePayment raises a due against a resident.
func (pc *PaymentController) CreatePayment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input struct {
		Resident    string   `json:"resident" binding:"required"`
		Amount      *float64 `json:"amount" binding:"required,min=0"`
		DueDate     string   `json:"dueDate" binding:"required"`
		Description string   `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	resident, err := primitive.ObjectIDFromHex(input.Resident)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resident ID"})
		return
	}
	dueDate, err := parseDate(input.DueDate)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	payment, err := pc.payments.Create(ctx, services.PaymentInput{
		Resident:    resident,
		Amount:      *input.Amount,
		DueDate:     dueDate,
		Description: input.Description,
	}, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Payment created successfully",
		"payment": payment,
	})
}

// SubmitPayment records a resident's maintenance payment with its proof image.
func (pc *PaymentController) SubmitPayment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input struct {
		Month       string `form:"month"`
		ReferenceID string `form:"referenceId"`
		Description string `form:"description"`
		DueDate     string `form:"dueDate"`
	}
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err)
		return
	}
	dueDate, err := parseDate(input.DueDate)
	if err != nil {
		respondError(c, err)
		return
	}
	proof, err := optionalFile(c, "proofImage")
	if err != nil {
		bindError(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	payment, err := pc.payments.Submit(ctx, services.PaymentSubmission{
		Month:       input.Month,
		ReferenceID: input.ReferenceID,
		Description: input.Description,
		DueDate:     dueDate,
	}, proof, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment submitted successfully!",
		"payment": payment,
	})
}

func (pc *PaymentController) UpdateStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Status string `json:"status" binding:"required,oneof=Pending Paid Unpaid"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	payment, err := pc.payments.UpdateStatus(ctx, id, models.PaymentStatus(input.Status), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Status updated successfully",
		"payment": payment,
	})
}
