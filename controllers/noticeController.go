package controllers

import (
	"mime/multipart"
	"net/http"

	"societyhub-be/services"

	"github.com/gin-gonic/gin"
)

type NoticeController struct {
	notices *services.NoticeService
}

func NewNoticeController(notices *services.NoticeService) *NoticeController {
	return &NoticeController{notices: notices}
}

type noticeForm struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
	Category    string `form:"category" json:"category"`
}

func attachments(c *gin.Context) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	return form.File["attachments"]
}

func (nc *NoticeController) GetNotices(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	notices, err := nc.notices.List(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(notices), "notices": notices})
}

func (nc *NoticeController) GetNoticeByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	notice, err := nc.notices.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "notice": notice})
}

func (nc *NoticeController) CreateNotice(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var input noticeForm
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	notice, err := nc.notices.Create(ctx, services.NoticeInput(input), attachments(c), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Notice created", "notice": notice})
}

// UpdateNotice changes the sent fields and appends new attachments.
func (nc *NoticeController) UpdateNotice(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input noticeForm
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	notice, err := nc.notices.Update(ctx, id, services.NoticeInput(input), attachments(c), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notice updated", "notice": notice})
}

func (nc *NoticeController) DeleteNotice(c *gin.Context) {
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

	if err := nc.notices.Delete(ctx, id, actor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notice deleted"})
}
