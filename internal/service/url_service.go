package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"technext-be/internal/apperr"
	"technext-be/internal/cache"
	"technext-be/internal/entities"
	"technext-be/internal/models"
	"technext-be/internal/repository"
	"technext-be/internal/shortcode"

	"go.uber.org/zap"
)

const (
	defaultPage  = 1
	defaultLimit = 10

	redirectCacheTTL = 1 * time.Hour
)

// URLService defines the business logic for shortened URLs
type URLService interface {
	CreateShortURL(ctx context.Context, originalURL, userID string) (*models.ShortURLResponse, error)
	GetURLByShortCode(ctx context.Context, shortCode string) (*entities.ShortenedURL, error)
	Resolve(ctx context.Context, shortCode string) (string, error)
	IncrementClicks(ctx context.Context, shortCode string) error
	GetUserURLs(ctx context.Context, userID string, page, limit int) (*models.UserURLsResponse, error)
	DeleteURL(ctx context.Context, shortCode, userID string) error
	GetURLAnalytics(ctx context.Context, shortCode, userID string) (*models.ShortURLResponse, error)
}

type urlService struct {
	repo      repository.URLRepository
	allocator *shortcode.Allocator
	cache     cache.Cache // nil when Redis is not configured
	baseURL   string
	logger    *zap.Logger
}

// NewURLService creates a new URL service. cacheClient may be nil; every
// lookup then goes straight to the repository.
func NewURLService(repo repository.URLRepository, allocator *shortcode.Allocator, cacheClient cache.Cache, baseURL string, logger *zap.Logger) URLService {
	return &urlService{
		repo:      repo,
		allocator: allocator,
		cache:     cacheClient,
		baseURL:   strings.TrimRight(baseURL, "/"),
		logger:    logger,
	}
}

func (s *urlService) shortURL(shortCode string) string {
	return s.baseURL + "/" + shortCode
}

func (s *urlService) toResponse(u *entities.ShortenedURL) *models.ShortURLResponse {
	return &models.ShortURLResponse{
		ShortenedURL: *u,
		ShortURL:     s.shortURL(u.ShortCode),
	}
}

func (s *urlService) cacheKey(shortCode string) string {
	return "url:" + shortCode
}

// CreateShortURL validates the original URL, allocates a unique short code
// and persists the mapping with a zero click counter.
func (s *urlService) CreateShortURL(ctx context.Context, originalURL, userID string) (*models.ShortURLResponse, error) {
	parsed, err := url.Parse(originalURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, apperr.ErrInvalidURL
	}

	code, err := s.allocator.Allocate(ctx)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, originalURL, code, userID)
	if err != nil {
		// The allocator only checked before the insert; the unique index is
		// the real guarantee and losing the race here counts as exhaustion.
		if errors.Is(err, repository.ErrDuplicateShortCode) {
			return nil, apperr.ErrAllocationExhausted
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, s.cacheKey(code), created.OriginalURL, redirectCacheTTL); err != nil {
			s.logger.Warn("failed to cache short URL", zap.String("short_code", code), zap.Error(err))
		}
	}

	return s.toResponse(created), nil
}

// GetURLByShortCode is the public lookup used by redirection. No ownership check.
func (s *urlService) GetURLByShortCode(ctx context.Context, shortCode string) (*entities.ShortenedURL, error) {
	return s.repo.FindByShortCode(ctx, shortCode)
}

// Resolve returns the destination for a short code, consulting the cache
// first when one is configured.
func (s *urlService) Resolve(ctx context.Context, shortCode string) (string, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, s.cacheKey(shortCode)); err == nil {
			return cached, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("redirect cache read failed", zap.String("short_code", shortCode), zap.Error(err))
		}
	}

	record, err := s.repo.FindByShortCode(ctx, shortCode)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, s.cacheKey(shortCode), record.OriginalURL, redirectCacheTTL); err != nil {
			s.logger.Warn("failed to cache short URL", zap.String("short_code", shortCode), zap.Error(err))
		}
	}

	return record.OriginalURL, nil
}

// IncrementClicks records one visit
func (s *urlService) IncrementClicks(ctx context.Context, shortCode string) error {
	return s.repo.IncrementClicks(ctx, shortCode)
}

// GetUserURLs returns one page of the user's URLs, newest first
func (s *urlService) GetUserURLs(ctx context.Context, userID string, page, limit int) (*models.UserURLsResponse, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}

	urls, err := s.repo.GetByUser(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.ShortURLResponse, 0, len(urls))
	for _, u := range urls {
		responses = append(responses, s.toResponse(u))
	}

	return &models.UserURLsResponse{
		Urls:       responses,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

// DeleteURL removes a URL the caller owns. A missing row and someone else's
// row produce the same error.
func (s *urlService) DeleteURL(ctx context.Context, shortCode, userID string) error {
	if err := s.repo.Delete(ctx, shortCode, userID); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, s.cacheKey(shortCode)); err != nil {
			s.logger.Warn("failed to invalidate cached short URL", zap.String("short_code", shortCode), zap.Error(err))
		}
	}

	return nil
}

// GetURLAnalytics returns the row with its click counter for an owned URL
func (s *urlService) GetURLAnalytics(ctx context.Context, shortCode, userID string) (*models.ShortURLResponse, error) {
	record, err := s.repo.FindOwned(ctx, shortCode, userID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(record), nil
}
