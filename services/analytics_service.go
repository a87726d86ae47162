package services

import (
	"context"
	"time"

	"linktracker/models"
	"linktracker/storage"

	"github.com/rs/zerolog/log"
)

const maxPageSize = 100

// MonthlyStats is one month of valid-click accounting for a link.
type MonthlyStats struct {
	Month       string  `json:"month"`
	ValidClicks int64   `json:"valid_clicks"`
	Earnings    float64 `json:"earnings"`
}

// LinkStats is a link with its derived click and earnings aggregates.
type LinkStats struct {
	OriginalURL  string         `json:"original_url"`
	ShortURL     string         `json:"short_url"`
	ShortCode    string         `json:"short_code"`
	CreatedAt    time.Time      `json:"created_at"`
	TotalClicks  int64          `json:"total_clicks"`
	ValidClicks  int64          `json:"valid_clicks"`
	Earnings     float64        `json:"earnings"`
	MonthlyStats []MonthlyStats `json:"monthly_stats"`
}

// AnalyticsPage is one page of per-link statistics.
type AnalyticsPage struct {
	Links      []LinkStats `json:"links"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// AnalyticsService records clicks and aggregates per-link statistics. It owns
// no state of its own.
type AnalyticsService struct {
	links          *LinkService
	clicks         storage.ClickStore
	fraud          FraudChecker
	baseURL        string
	creditPerClick int // cents
}

func NewAnalyticsService(links *LinkService, clicks storage.ClickStore, fraud FraudChecker, baseURL string, creditPerClick int) *AnalyticsService {
	return &AnalyticsService{
		links:          links,
		clicks:         clicks,
		fraud:          fraud,
		baseURL:        baseURL,
		creditPerClick: creditPerClick,
	}
}

// RecordClick resolves the short code, runs the fraud gate and appends
// exactly one click row with the resulting validity flag. Fraudulent clicks
// are stored as invalid, not dropped. A fraud gate failure also records the
// click as invalid rather than aborting.
func (s *AnalyticsService) RecordClick(ctx context.Context, shortCode, ipAddress, userAgent string) (*models.Link, *models.Click, error) {
	link, err := s.links.Resolve(ctx, shortCode)
	if err != nil {
		return nil, nil, err
	}

	valid, err := s.fraud.Validate(ctx, ipAddress, userAgent)
	if err != nil {
		log.Warn().Err(err).Str("short_code", shortCode).Msg("Fraud check failed, recording click as invalid")
		valid = false
	}

	click := &models.Click{
		LinkID:    link.ID,
		ClickedAt: time.Now().UTC(),
		IPAddress: ipAddress,
		UserAgent: userAgent,
		IsValid:   valid,
	}
	if err := s.clicks.Create(ctx, click); err != nil {
		return nil, nil, err
	}

	log.Info().Str("short_code", shortCode).Bool("is_valid", valid).Msg("Recorded click")
	return link, click, nil
}

// GetAnalytics returns one page of per-link statistics, links ordered newest
// first. page is clamped to >= 1 and pageSize to [1, 100]; out-of-range
// values never error.
func (s *AnalyticsService) GetAnalytics(ctx context.Context, page, pageSize int) (*AnalyticsPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	links, total, err := s.links.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	stats := make([]LinkStats, 0, len(links))
	for _, link := range links {
		totalClicks, validClicks, err := s.clicks.CountByLink(ctx, link.ID)
		if err != nil {
			return nil, err
		}

		buckets, err := s.clicks.MonthlyValidCounts(ctx, link.ID)
		if err != nil {
			return nil, err
		}

		monthly := make([]MonthlyStats, 0, len(buckets))
		for _, bucket := range buckets {
			monthly = append(monthly, MonthlyStats{
				Month:       bucket.Month,
				ValidClicks: bucket.ValidClicks,
				Earnings:    s.earnings(bucket.ValidClicks),
			})
		}

		stats = append(stats, LinkStats{
			OriginalURL:  link.OriginalURL,
			ShortURL:     s.baseURL + "/" + link.ShortCode,
			ShortCode:    link.ShortCode,
			CreatedAt:    link.CreatedAt,
			TotalClicks:  totalClicks,
			ValidClicks:  validClicks,
			Earnings:     s.earnings(validClicks),
			MonthlyStats: monthly,
		})
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &AnalyticsPage{
		Links:      stats,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// earnings converts a valid-click count into decimal dollars.
func (s *AnalyticsService) earnings(validClicks int64) float64 {
	return float64(validClicks) * float64(s.creditPerClick) / 100
}
