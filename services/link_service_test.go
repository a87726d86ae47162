package services

import (
	"context"
	"errors"
	"testing"

	"linktracker/models"
	"linktracker/storage"
)

func TestGetOrCreate_NewLink(t *testing.T) {
	svc := NewLinkService(storage.NewMemoryLinkStore())

	link, err := svc.GetOrCreate(context.Background(), "https://www.fiverr.com/u/gig")
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	if link.ShortCode == "" {
		t.Error("GetOrCreate() returned empty short code")
	}
	if link.OriginalURL != "https://www.fiverr.com/u/gig" {
		t.Errorf("GetOrCreate() original URL = %q", link.OriginalURL)
	}
	if link.CreatedAt.IsZero() {
		t.Error("GetOrCreate() created_at not set")
	}
}

func TestGetOrCreate_IdempotentDedup(t *testing.T) {
	store := storage.NewMemoryLinkStore()
	svc := NewLinkService(store)
	url := "https://www.fiverr.com/johndoe/design-awesome-logo"

	first, err := svc.GetOrCreate(context.Background(), url)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	second, err := svc.GetOrCreate(context.Background(), url)
	if err != nil {
		t.Fatalf("GetOrCreate() second call error = %v", err)
	}

	if first.ShortCode != second.ShortCode {
		t.Errorf("Duplicate submission changed short code: %q != %q", first.ShortCode, second.ShortCode)
	}

	_, total, err := store.List(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 1 {
		t.Errorf("Link count = %d, want exactly 1", total)
	}
}

func TestGetOrCreate_ExactStringDedup(t *testing.T) {
	svc := NewLinkService(storage.NewMemoryLinkStore())

	// Trailing slash is a different URL string, so it gets its own link.
	first, err := svc.GetOrCreate(context.Background(), "https://example.com/page")
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	second, err := svc.GetOrCreate(context.Background(), "https://example.com/page/")
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	if first.ShortCode == second.ShortCode {
		t.Error("Distinct URL strings share a short code")
	}
}

func TestGetOrCreate_InvalidURL(t *testing.T) {
	svc := NewLinkService(storage.NewMemoryLinkStore())

	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"no scheme", "www.example.com"},
		{"bad scheme", "ftp://example.com/file"},
		{"no host", "https://"},
		{"garbage", "not a url at all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetOrCreate(context.Background(), tt.url)
			if !errors.Is(err, ErrInvalidURL) {
				t.Errorf("GetOrCreate(%q) error = %v, want ErrInvalidURL", tt.url, err)
			}
		})
	}
}

func TestGetOrCreate_CodeCollisionRetriesWithSalt(t *testing.T) {
	store := storage.NewMemoryLinkStore()
	svc := NewLinkService(store)
	url := "https://example.com/colliding"

	// Occupy the code this URL would normally get with a different URL.
	taken := &models.Link{
		OriginalURL: "https://example.com/other",
		ShortCode:   GenerateCode(url, 0),
	}
	if err := store.Create(context.Background(), taken); err != nil {
		t.Fatalf("seed Create() error = %v", err)
	}

	link, err := svc.GetOrCreate(context.Background(), url)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if link.ShortCode == taken.ShortCode {
		t.Error("GetOrCreate() reused an occupied short code")
	}
	if link.ShortCode != GenerateCode(url, 1) {
		t.Errorf("GetOrCreate() code = %q, want first salted candidate %q", link.ShortCode, GenerateCode(url, 1))
	}
}

// alwaysDuplicateStore simulates a store where every code candidate is taken
// by some other URL.
type alwaysDuplicateStore struct {
	storage.LinkStore
}

func (s *alwaysDuplicateStore) Create(ctx context.Context, link *models.Link) error {
	return storage.ErrDuplicate
}

func (s *alwaysDuplicateStore) FindByURL(ctx context.Context, originalURL string) (*models.Link, error) {
	return nil, storage.ErrNotFound
}

func TestGetOrCreate_CodeSpaceExhausted(t *testing.T) {
	svc := NewLinkService(&alwaysDuplicateStore{})

	_, err := svc.GetOrCreate(context.Background(), "https://example.com/doomed")
	if !errors.Is(err, ErrCodeSpaceExhausted) {
		t.Errorf("GetOrCreate() error = %v, want ErrCodeSpaceExhausted", err)
	}
}

// raceWinnerStore rejects the insert but then serves the row a concurrent
// request would have written.
type raceWinnerStore struct {
	storage.LinkStore
	winner *models.Link
	reads  int
}

func (s *raceWinnerStore) Create(ctx context.Context, link *models.Link) error {
	return storage.ErrDuplicate
}

func (s *raceWinnerStore) FindByURL(ctx context.Context, originalURL string) (*models.Link, error) {
	s.reads++
	if s.reads == 1 {
		// First lookup happens before the concurrent writer commits.
		return nil, storage.ErrNotFound
	}
	return s.winner, nil
}

func TestGetOrCreate_ConcurrentFirstCreate(t *testing.T) {
	url := "https://example.com/raced"
	winner := &models.Link{ID: 7, OriginalURL: url, ShortCode: GenerateCode(url, 0)}
	svc := NewLinkService(&raceWinnerStore{winner: winner})

	link, err := svc.GetOrCreate(context.Background(), url)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v, want the concurrent winner's row", err)
	}
	if link.ID != winner.ID || link.ShortCode != winner.ShortCode {
		t.Errorf("GetOrCreate() = %+v, want winner row %+v", link, winner)
	}
}

func TestResolve(t *testing.T) {
	svc := NewLinkService(storage.NewMemoryLinkStore())

	created, err := svc.GetOrCreate(context.Background(), "https://www.fiverr.com/u/gig")
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	link, err := svc.Resolve(context.Background(), created.ShortCode)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if link.OriginalURL != created.OriginalURL {
		t.Errorf("Resolve() URL = %q, want %q", link.OriginalURL, created.OriginalURL)
	}

	if _, err := svc.Resolve(context.Background(), "unknown"); !errors.Is(err, ErrLinkNotFound) {
		t.Errorf("Resolve(unknown) error = %v, want ErrLinkNotFound", err)
	}
}
