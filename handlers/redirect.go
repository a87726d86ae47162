package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"linktracker/services"
)

// Redirect handles GET /:code. The fraud check and click insert complete
// before the redirect is issued, so every served redirect has its click row.
func (h *Handler) Redirect(c *gin.Context) {
	shortCode := c.Param("code")

	ipAddress := c.ClientIP()
	userAgent := c.Request.UserAgent()

	link, _, err := h.analytics.RecordClick(c.Request.Context(), shortCode, ipAddress, userAgent)
	if err != nil {
		if errors.Is(err, services.ErrLinkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Short link not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record click"})
		return
	}

	c.Redirect(http.StatusSeeOther, link.OriginalURL)
}
