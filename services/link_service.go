package services

import (
	"context"
	"errors"
	"net/url"
	"time"

	"linktracker/models"
	"linktracker/storage"

	"github.com/rs/zerolog/log"
)

// maxCodeAttempts bounds the salted retry loop on code collisions.
const maxCodeAttempts = 5

// LinkService creates and resolves short links.
type LinkService struct {
	links storage.LinkStore
}

func NewLinkService(links storage.LinkStore) *LinkService {
	return &LinkService{links: links}
}

// GetOrCreate returns the existing link for a URL or creates one. Creation is
// idempotent: re-submitting the same URL string never creates a second row
// and never changes the short code.
func (s *LinkService) GetOrCreate(ctx context.Context, originalURL string) (*models.Link, error) {
	if err := validateURL(originalURL); err != nil {
		return nil, err
	}

	existing, err := s.links.FindByURL(ctx, originalURL)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		link := &models.Link{
			OriginalURL: originalURL,
			ShortCode:   GenerateCode(originalURL, attempt),
			CreatedAt:   time.Now().UTC(),
		}

		err := s.links.Create(ctx, link)
		if err == nil {
			log.Info().Str("short_code", link.ShortCode).Str("original_url", originalURL).Msg("Created short link")
			return link, nil
		}
		if !errors.Is(err, storage.ErrDuplicate) {
			return nil, err
		}

		// Either a concurrent request inserted the same URL first, or the
		// code collided with a different URL. The re-read settles which.
		winner, findErr := s.links.FindByURL(ctx, originalURL)
		if findErr == nil {
			return winner, nil
		}
		if !errors.Is(findErr, storage.ErrNotFound) {
			return nil, findErr
		}
	}

	return nil, ErrCodeSpaceExhausted
}

// Resolve looks up a link by its short code.
func (s *LinkService) Resolve(ctx context.Context, shortCode string) (*models.Link, error) {
	link, err := s.links.FindByCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	return link, nil
}

// List returns links ordered newest first plus the total link count.
func (s *LinkService) List(ctx context.Context, offset, limit int) ([]models.Link, int64, error) {
	return s.links.List(ctx, offset, limit)
}

func validateURL(originalURL string) error {
	parsed, err := url.Parse(originalURL)
	if err != nil {
		return ErrInvalidURL
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ErrInvalidURL
	}
	if parsed.Host == "" {
		return ErrInvalidURL
	}
	return nil
}
