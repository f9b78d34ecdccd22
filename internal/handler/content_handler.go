package handler

import (
	"net/http"

	"paxala/internal/i18n"
	"paxala/internal/repository"
	"paxala/internal/service"

	"github.com/gin-gonic/gin"
)

// ContentHandler serves the public blog and portfolio in the request's
// locale, and their admin CRUD.
type ContentHandler struct {
	content *service.ContentService
}

func NewContentHandler(content *service.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

func (h *ContentHandler) filter(c *gin.Context, publishedOnly bool) (repository.ContentFilter, bool) {
	f, err := repository.ContentFilterFromQuery(c.Request.URL.Query(), publishedOnly)
	if err != nil {
		respondError(c, err)
		return f, false
	}
	return f, true
}

// ListPosts returns published posts.
// @Summary  List blog posts
// @Tags     Content
// @Produce  json
// @Param    x-locale header string false "en, ar or he"
// @Success  200 {array} service.PostView
// @Router   /blog [get]
func (h *ContentHandler) ListPosts(c *gin.Context) {
	f, ok := h.filter(c, true)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	posts, err := h.content.ListPosts(ctx, i18n.FromContext(ctx), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// @Summary  Get blog post
// @Tags     Content
// @Produce  json
// @Param    slug path string true "Slug"
// @Success  200 {object} service.PostView
// @Failure  404 {object} map[string]string
// @Router   /blog/{slug} [get]
func (h *ContentHandler) GetPost(c *gin.Context) {
	ctx := c.Request.Context()
	post, err := h.content.GetPost(ctx, i18n.FromContext(ctx), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *ContentHandler) ListPortfolio(c *gin.Context) {
	f, ok := h.filter(c, true)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	items, err := h.content.ListPortfolio(ctx, i18n.FromContext(ctx), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ContentHandler) GetPortfolio(c *gin.Context) {
	ctx := c.Request.Context()
	item, err := h.content.GetPortfolio(ctx, i18n.FromContext(ctx), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ContentHandler) AdminListPosts(c *gin.Context) {
	f, ok := h.filter(c, false)
	if !ok {
		return
	}
	posts, err := h.content.AdminListPosts(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *ContentHandler) CreatePost(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req service.PostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	post, err := h.content.CreatePost(c.Request.Context(), p.UserID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *ContentHandler) UpdatePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.PostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	post, err := h.content.UpdatePost(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *ContentHandler) DeletePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.content.DeletePost(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ContentHandler) AdminListPortfolio(c *gin.Context) {
	f, ok := h.filter(c, false)
	if !ok {
		return
	}
	items, err := h.content.AdminListPortfolio(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ContentHandler) CreatePortfolio(c *gin.Context) {
	var req service.PortfolioInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.content.CreatePortfolio(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *ContentHandler) UpdatePortfolio(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req service.PortfolioInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.content.UpdatePortfolio(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ContentHandler) DeletePortfolio(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.content.DeletePortfolio(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
