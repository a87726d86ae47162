package storage

import (
	"context"
	"sort"
	"sync"

	"linktracker/models"
)

// MemoryLinkStore is an in-memory LinkStore used in tests and local runs
// without Postgres. It enforces the same uniqueness rules as the SQL schema.
type MemoryLinkStore struct {
	mu     sync.RWMutex
	nextID uint
	links  []models.Link
}

func NewMemoryLinkStore() *MemoryLinkStore {
	return &MemoryLinkStore{nextID: 1}
}

func (s *MemoryLinkStore) Create(ctx context.Context, link *models.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.links {
		if existing.ShortCode == link.ShortCode || existing.OriginalURL == link.OriginalURL {
			return ErrDuplicate
		}
	}

	link.ID = s.nextID
	s.nextID++
	s.links = append(s.links, *link)
	return nil
}

func (s *MemoryLinkStore) FindByCode(ctx context.Context, shortCode string) (*models.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, link := range s.links {
		if link.ShortCode == shortCode {
			found := link
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryLinkStore) FindByURL(ctx context.Context, originalURL string) (*models.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, link := range s.links {
		if link.OriginalURL == originalURL {
			found := link
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryLinkStore) List(ctx context.Context, offset, limit int) ([]models.Link, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ordered := make([]models.Link, len(s.links))
	copy(ordered, s.links)
	sort.Slice(ordered, func(i, j int) bool {
		if !ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
		}
		return ordered[i].ID > ordered[j].ID
	})

	total := int64(len(ordered))
	if offset >= len(ordered) {
		return []models.Link{}, total, nil
	}
	end := offset + limit
	if end > len(ordered) {
		end = len(ordered)
	}
	return ordered[offset:end], total, nil
}

// MemoryClickStore is the in-memory ClickStore counterpart.
type MemoryClickStore struct {
	mu     sync.RWMutex
	nextID uint
	clicks []models.Click
}

func NewMemoryClickStore() *MemoryClickStore {
	return &MemoryClickStore{nextID: 1}
}

func (s *MemoryClickStore) Create(ctx context.Context, click *models.Click) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	click.ID = s.nextID
	s.nextID++
	s.clicks = append(s.clicks, *click)
	return nil
}

func (s *MemoryClickStore) CountByLink(ctx context.Context, linkID uint) (int64, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total, valid int64
	for _, click := range s.clicks {
		if click.LinkID != linkID {
			continue
		}
		total++
		if click.IsValid {
			valid++
		}
	}
	return total, valid, nil
}

func (s *MemoryClickStore) MonthlyValidCounts(ctx context.Context, linkID uint) ([]MonthCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int64)
	for _, click := range s.clicks {
		if click.LinkID != linkID || !click.IsValid {
			continue
		}
		counts[click.ClickedAt.Format("2006-01")]++
	}

	months := make([]string, 0, len(counts))
	for month := range counts {
		months = append(months, month)
	}
	sort.Strings(months)

	buckets := make([]MonthCount, 0, len(months))
	for _, month := range months {
		buckets = append(buckets, MonthCount{Month: month, ValidClicks: counts[month]})
	}
	return buckets, nil
}
