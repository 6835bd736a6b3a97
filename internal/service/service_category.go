package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-expense-ledger/internal/logger"
	"github.com/MKhiriev/go-expense-ledger/internal/store"
	"github.com/MKhiriev/go-expense-ledger/internal/validators"
	"github.com/MKhiriev/go-expense-ledger/models"
)

// categoryService owns category mutations. Names are trimmed and compared
// case-sensitively.
type categoryService struct {
	categoryRepository store.CategoryRepository
	validator          validators.Validator

	logger *logger.Logger
}

func NewCategoryService(categories store.CategoryRepository, logger *logger.Logger) CategoryService {
	return &categoryService{
		categoryRepository: categories,
		validator:          validators.NewRequestValidator(),
		logger:             logger,
	}
}

func (s *categoryService) CreateCategory(ctx context.Context, userID int64, req models.CategoryRequest) (int64, error) {
	log := logger.FromContext(ctx)

	category, err := s.prepare(ctx, userID, req)
	if err != nil {
		return 0, err
	}

	if err = s.ensureNameFree(ctx, userID, category.Name, 0); err != nil {
		return 0, err
	}

	id, err := s.categoryRepository.CreateCategory(context.WithoutCancel(ctx), category)
	if errors.Is(err, store.ErrCategoryAlreadyExists) {
		return 0, ErrDuplicateCategory
	}
	if err != nil {
		log.Err(err).Str("func", "*categoryService.CreateCategory").Int64("user_id", userID).Msg("error creating category")
		return 0, fmt.Errorf("error creating category: %w", err)
	}

	return id, nil
}

func (s *categoryService) ListCategories(ctx context.Context, userID int64) ([]models.Category, error) {
	categories, err := s.categoryRepository.ListCategories(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*categoryService.ListCategories").Int64("user_id", userID).Msg("error listing categories")
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) RenameCategory(ctx context.Context, userID, categoryID int64, req models.CategoryRequest) error {
	log := logger.FromContext(ctx)

	category, err := s.prepare(ctx, userID, req)
	if err != nil {
		return err
	}
	category.CategoryID = categoryID

	if err = s.ensureNameFree(ctx, userID, category.Name, categoryID); err != nil {
		return err
	}

	err = s.categoryRepository.RenameCategory(context.WithoutCancel(ctx), category)
	switch {
	case errors.Is(err, store.ErrCategoryNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrCategoryAlreadyExists):
		return ErrDuplicateCategory
	case err != nil:
		log.Err(err).Str("func", "*categoryService.RenameCategory").Int64("category_id", categoryID).Msg("error renaming category")
		return fmt.Errorf("error renaming category: %w", err)
	}

	return nil
}

// DeleteCategory removes the category; its expenses become uncategorized.
func (s *categoryService) DeleteCategory(ctx context.Context, userID, categoryID int64) error {
	err := s.categoryRepository.DeleteCategory(context.WithoutCancel(ctx), userID, categoryID)
	if errors.Is(err, store.ErrCategoryNotFound) {
		return ErrNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*categoryService.DeleteCategory").Int64("category_id", categoryID).Msg("error deleting category")
		return fmt.Errorf("error deleting category: %w", err)
	}

	return nil
}

func (s *categoryService) prepare(ctx context.Context, userID int64, req models.CategoryRequest) (models.Category, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.Category{}, err
	}

	category := models.Category{
		UserID:    userID,
		Name:      strings.TrimSpace(req.Name),
		IsDefault: req.IsDefault,
	}
	if req.Color != nil && *req.Color != "" {
		color := *req.Color
		category.Color = &color
	}

	return category, nil
}

// ensureNameFree fails with ErrDuplicateCategory when another category of
// the owner already uses name. selfID is skipped so renaming to the same
// name succeeds.
func (s *categoryService) ensureNameFree(ctx context.Context, userID int64, name string, selfID int64) error {
	existing, err := s.categoryRepository.FindCategoryByName(ctx, userID, name)
	if errors.Is(err, store.ErrCategoryNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking category name: %w", err)
	}
	if existing.CategoryID == selfID {
		return nil
	}

	return ErrDuplicateCategory
}
