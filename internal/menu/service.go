package menu

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"comanda/internal/inventory"
)

// Storage uploads menu icons to an object store and returns the
// public URL.
type Storage interface {
	Upload(ctx context.Context, key string, file multipart.File, contentType string) (string, error)
}

type Service struct {
	repo    Repository
	ledger  *inventory.Ledger
	storage Storage
}

// NewService wires the catalog. storage may be nil when no object
// store is configured; icon uploads then fail with a service error.
func NewService(repo Repository, ledger *inventory.Ledger, storage Storage) *Service {
	return &Service{repo: repo, ledger: ledger, storage: storage}
}

// --------------------------------------------------
// Create recipe
// --------------------------------------------------
func (s *Service) Create(ctx context.Context, recipe Recipe) (*Recipe, error) {
	recipe.Name = strings.TrimSpace(recipe.Name)
	if recipe.Name == "" {
		return nil, errors.New("menu name is required")
	}
	if recipe.Price < 0 {
		return nil, errors.New("price cannot be negative")
	}
	for _, ing := range recipe.Ingredients {
		if inventory.NormalizeName(ing.Name) == "" {
			return nil, errors.New("every ingredient needs a name")
		}
		if ing.Quantity <= 0 {
			return nil, fmt.Errorf("ingredient %q needs a positive quantity", ing.Name)
		}
	}

	if _, err := s.repo.GetByName(ctx, recipe.Name); err == nil {
		return nil, errors.New("menu already exists")
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	recipe.Quantity = 1
	if err := s.repo.Create(ctx, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// --------------------------------------------------
// Catalog with availability flags
// --------------------------------------------------

type CatalogEntry struct {
	Recipe
	Available bool `json:"available"`
}

func (s *Service) List(ctx context.Context) ([]CatalogEntry, error) {
	recipes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]CatalogEntry, len(recipes))
	for i, rec := range recipes {
		out[i] = CatalogEntry{Recipe: rec, Available: rec.IsAvailable(s.ledger)}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, name string) (*Recipe, error) {
	return s.repo.GetByName(ctx, name)
}

// Availability checks a single recipe against the current ledger.
func (s *Service) Availability(ctx context.Context, name string) (bool, error) {
	recipe, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return false, err
	}
	return recipe.IsAvailable(s.ledger), nil
}

func (s *Service) Delete(ctx context.Context, name string) error {
	return s.repo.Delete(ctx, name)
}

// --------------------------------------------------
// Icon upload
// --------------------------------------------------
func (s *Service) UploadIcon(
	ctx context.Context,
	name string,
	file multipart.File,
	filename string,
	contentType string,
) (string, error) {

	if s.storage == nil {
		return "", errors.New("icon storage not configured")
	}
	if _, err := s.repo.GetByName(ctx, name); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("icons/%s%s", uuid.New().String(), ext)

	url, err := s.storage.Upload(ctx, key, file, contentType)
	if err != nil {
		return "", err
	}

	if err := s.repo.SetIconURL(ctx, name, url); err != nil {
		return "", err
	}
	return url, nil
}
