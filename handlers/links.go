package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"linktracker/services"
)

type CreateLinkRequest struct {
	OriginalURL string `json:"original_url" binding:"required,url"`
}

type LinkResponse struct {
	OriginalURL string    `json:"original_url"`
	ShortURL    string    `json:"short_url"`
	ShortCode   string    `json:"short_code"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateLink handles POST /api/v1/link. Submitting an already-known URL
// returns the existing link unchanged.
func (h *Handler) CreateLink(c *gin.Context) {
	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	link, err := h.links.GetOrCreate(c.Request.Context(), req.OriginalURL)
	if err != nil {
		if errors.Is(err, services.ErrInvalidURL) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "original_url must be a valid http or https URL"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create short link"})
		return
	}

	c.JSON(http.StatusCreated, LinkResponse{
		OriginalURL: link.OriginalURL,
		ShortURL:    h.baseURL + "/" + link.ShortCode,
		ShortCode:   link.ShortCode,
		CreatedAt:   link.CreatedAt,
	})
}

func bindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0]
		if field.Tag() == "required" {
			return "original_url is required"
		}
		return "original_url must be a valid http or https URL"
	}
	return err.Error()
}
