package storage

import (
	"context"
	"errors"

	"linktracker/models"
)

var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate indicates a uniqueness constraint rejected the insert.
	ErrDuplicate = errors.New("duplicate record")
)

// MonthCount is one year-month bucket of valid clicks for a link.
type MonthCount struct {
	Month       string `json:"month"`
	ValidClicks int64  `json:"valid_clicks"`
}

// LinkStore owns Link rows. Create must fail with ErrDuplicate when the
// short code or original URL is already taken.
type LinkStore interface {
	Create(ctx context.Context, link *models.Link) error
	FindByCode(ctx context.Context, shortCode string) (*models.Link, error)
	FindByURL(ctx context.Context, originalURL string) (*models.Link, error)
	// List returns links ordered by creation time descending (id as
	// tiebreak), plus the total link count.
	List(ctx context.Context, offset, limit int) ([]models.Link, int64, error)
}

// ClickStore owns Click rows. Clicks are append-only.
type ClickStore interface {
	Create(ctx context.Context, click *models.Click) error
	// CountByLink returns the total and valid click counts for a link.
	CountByLink(ctx context.Context, linkID uint) (total int64, valid int64, err error)
	// MonthlyValidCounts returns valid-click counts bucketed by the click
	// timestamp's year-month ("2006-01"), sorted ascending by month.
	MonthlyValidCounts(ctx context.Context, linkID uint) ([]MonthCount, error)
}
