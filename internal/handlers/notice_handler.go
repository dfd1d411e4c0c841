package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ayanna-kiyanna/institute-service/internal/models"
	"github.com/ayanna-kiyanna/institute-service/internal/repositories"
	"github.com/ayanna-kiyanna/institute-service/internal/services"
	"github.com/ayanna-kiyanna/institute-service/internal/utils"
)

type NoticeHandler struct {
	BaseHandler
	service services.NoticeService
}

func NewNoticeHandler(service services.NoticeService, logger utils.Logger) *NoticeHandler {
	return &NoticeHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateNotice publishes an announcement.
func (h *NoticeHandler) CreateNotice(c *gin.Context) {
	h.LogRequest(c, "Creating notice")

	var req services.NoticeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "invalid request body",
		})
		return
	}

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	notice, err := h.service.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, notice)
}

// GetNotice returns a single announcement.
func (h *NoticeHandler) GetNotice(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	notice, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, notice)
}

// UpdateNotice patches an announcement.
func (h *NoticeHandler) UpdateNotice(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Updating notice", "notice_id", id)

	var req services.NoticeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "invalid request body",
		})
		return
	}

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}
	role, err := GetUserRoleFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	notice, err := h.service.Update(c.Request.Context(), id, &req, userID, role)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, notice)
}

// DeleteNotice removes an announcement.
func (h *NoticeHandler) DeleteNotice(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting notice", "notice_id", id)

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}
	role, err := GetUserRoleFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID, role); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListNotices returns announcements, pinned first.
func (h *NoticeHandler) ListNotices(c *gin.Context) {
	filters := h.parseNoticeFilters(c)

	resp, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *NoticeHandler) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "invalid notice ID",
		})
		return 0, false
	}
	return uint(id), true
}

func (h *NoticeHandler) parseNoticeFilters(c *gin.Context) repositories.NoticeFilters {
	filters := repositories.NoticeFilters{
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}

	if audience := c.Query("audience"); audience != "" {
		a := models.NoticeAudience(audience)
		filters.Audience = &a
	}
	if pinned := c.Query("pinned"); pinned != "" {
		p := pinned == "true"
		filters.Pinned = &p
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size < 1 {
		size = 10
	}
	if size > 100 {
		size = 100
	}

	filters.Limit = size
	filters.Offset = (page - 1) * size
	return filters
}
