package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetAnalytics handles GET /api/v1/analytics?page=&page_size=. Non-integer
// parameters fail validation; out-of-range values are clamped by the service.
func (h *Handler) GetAnalytics(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "page must be an integer"})
		return
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "page_size must be an integer"})
		return
	}

	result, err := h.analytics.GetAnalytics(c.Request.Context(), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}

	c.JSON(http.StatusOK, result)
}
