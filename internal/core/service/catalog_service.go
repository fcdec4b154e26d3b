package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/linkbasket/catalog/internal/core/domain"
	"github.com/linkbasket/catalog/internal/core/ports"
)

type catalogService struct {
	repo  ports.CatalogRepository
	files ports.FileStore
	log   zerolog.Logger
}

// NewCatalogService returns a CatalogService backed by the given
// repository and upload store.
func NewCatalogService(repo ports.CatalogRepository, files ports.FileStore, log zerolog.Logger) ports.CatalogService {
	return &catalogService{repo: repo, files: files, log: log}
}

// Search returns products matching term, newest first. An empty or
// whitespace-only term returns the whole catalog.
func (s *catalogService) Search(ctx context.Context, term string) ([]*domain.Product, error) {
	products, err := s.repo.Search(ctx, strings.TrimSpace(term))
	if err != nil {
		s.log.Error().Err(err).Str("term", term).Msg("catalog search failed")
		return nil, fmt.Errorf("search products: %w", err)
	}
	return products, nil
}

// Create validates the submitted fields and persists a new listing.
// When an upload is present it is stored first and its reference replaces
// any caller-supplied image URL.
func (s *catalogService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	title := strings.TrimSpace(in.Title)
	imageURL := strings.TrimSpace(in.ImageURL)
	affiliateURL := strings.TrimSpace(in.AffiliateURL)

	if title == "" || affiliateURL == "" || (imageURL == "" && in.Upload == nil) {
		return nil, domain.ErrValidation
	}

	if in.Upload != nil {
		ref, err := s.files.Save(ctx, in.Upload.Filename, in.Upload.Content)
		if err != nil {
			s.log.Error().Err(err).Str("filename", in.Upload.Filename).Msg("upload store failed")
			return nil, fmt.Errorf("store upload: %w", err)
		}
		imageURL = ref
	}

	now := time.Now().UTC()
	product := &domain.Product{
		Title:        title,
		ImageURL:     imageURL,
		AffiliateURL: affiliateURL,
		Price:        parsePrice(in.Price),
		Description:  strings.TrimSpace(in.Description),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Insert(ctx, product)
	if err != nil {
		s.log.Error().Err(err).Str("title", title).Msg("product insert failed")
		return nil, fmt.Errorf("insert product: %w", err)
	}

	s.log.Info().Str("id", created.ID).Str("title", created.Title).Msg("product created")
	return created, nil
}

// Delete removes a listing by id. A missing id is a success: delete is
// idempotent, only storage failures are reported.
func (s *catalogService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("product delete failed")
		return fmt.Errorf("delete product: %w", err)
	}
	s.log.Info().Str("id", id).Msg("product deleted")
	return nil
}

// parsePrice converts the raw form value to a price. Anything that is not
// a finite, non-negative number yields no price rather than an error.
func parsePrice(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	p, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return nil
	}
	return &p
}
