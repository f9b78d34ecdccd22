package handler

import (
	"net/http"

	"paxala/internal/access"
	"paxala/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments *service.CommentService
	guard    *Guard
}

func NewCommentHandler(comments *service.CommentService, guard *Guard) *CommentHandler {
	return &CommentHandler{comments: comments, guard: guard}
}

func (h *CommentHandler) List(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, _, ok := h.guard.Project(c, projectID, access.ViewProject); !ok {
		return
	}
	comments, err := h.comments.List(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

type commentRequest struct {
	Body string `json:"body" binding:"required"`
}

// Create posts a comment on the project. Markup is stripped.
// @Summary  Post comment
// @Tags     Comments
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "Project ID"
// @Success  201 {object} model.Comment
// @Failure  400 {object} map[string]string
// @Router   /projects/{id}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, _, ok := h.guard.Project(c, projectID, access.PostComment)
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	comment, err := h.comments.Create(c.Request.Context(), projectID, p.UserID, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	comment, err := h.comments.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !h.guard.Comment(c, comment, access.DeleteComment) {
		return
	}
	if err := h.comments.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
